package modules

import (
	"image/color"

	"github.com/gonewx/dermamon/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// StatusSource API 状态来源
// *game.LeaderboardManager 实现了该接口
type StatusSource interface {
	Online() (online bool, known bool)
}

// StatusIndicatorModule 左下角的 API 在线状态
type StatusIndicatorModule struct {
	source StatusSource
	x, y   float64
	face   text.Face
}

// NewStatusIndicatorModule 创建状态指示器
func NewStatusIndicatorModule(source StatusSource, x, y float64) *StatusIndicatorModule {
	return &StatusIndicatorModule{source: source, x: x, y: y, face: utils.DefaultFace()}
}

// Label 当前显示的文字和颜色
func (m *StatusIndicatorModule) Label() (string, color.NRGBA) {
	online, known := m.source.Online()
	switch {
	case !known:
		return "Checking API...", color.NRGBA{0x9C, 0xA3, 0xAF, 0xFF}
	case online:
		return "API Online", color.NRGBA{0x10, 0xB9, 0x81, 0xFF}
	default:
		return "API Offline", color.NRGBA{0xEF, 0x44, 0x44, 0xFF}
	}
}

// Draw 绘制状态点和文字
func (m *StatusIndicatorModule) Draw(screen *ebiten.Image) {
	label, clr := m.Label()
	vector.DrawFilledCircle(screen, float32(m.x+6), float32(m.y+6), 5, clr, true)
	utils.DrawLabel(screen, label, m.face, m.x+18, m.y, 1, color.NRGBA{0x37, 0x41, 0x51, 0xFF}, utils.AlignLeft)
}
