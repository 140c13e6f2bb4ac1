package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawDebugInfo 绘制调试信息（F3 切换）
func (s *GameScene) drawDebugInfo(screen *ebiten.Image) {
	if !s.showDebug {
		return
	}

	session := s.sessionSystem.Session()
	online, known := s.gameState.Leaderboard.Online()
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nPhase: %v  Elapsed: %.2fs\nTargets: %d  Entities: %d\nAPI: online=%v known=%v",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		session.Phase(), session.Elapsed(),
		s.sessionSystem.ActiveTargets(), s.sessionSystem.EntityManager().EntityCount(),
		online, known)
	ebitenutil.DebugPrintAt(screen, msg, 10, 90)
}
