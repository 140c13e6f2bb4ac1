package systems

import (
	"log"

	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/ecs"
	"github.com/gonewx/dermamon/pkg/entities"
	"github.com/gonewx/dermamon/pkg/game"
)

// ScoreReporter 接收一局的最终得分（通常提交到排行榜）
type ScoreReporter interface {
	SubmitScore(score int)
}

// HighScoreRecorder 本地最高分
type HighScoreRecorder interface {
	Record(score int) (bool, error)
	HighScore() int
}

// GameOverInfo 一局结束时的结算信息
type GameOverInfo struct {
	Score     int
	HighScore int
	NewRecord bool
	Reason    game.EndReason
}

// SessionSystem 一局游戏的调度中心
//
// 持有会话状态和实体管理器，每帧：
//  1. 更新目标移动与各类效果
//  2. 推进会话调度器
//  3. 按到期事件生成目标、执行加速，或结束本局
//
// 暂停时整个画布冻结，包括效果。
type SessionSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.GameplayConfig
	session       *game.Session

	movementSystem   *MovementSystem
	ringSystem       *RingEffectSystem
	particleSystem   *ParticleSystem
	popupSystem      *ScorePopupSystem
	lifetimeSystem   *LifetimeSystem
	flashSystem      *FlashEffectSystem
	spawnSystem      *SpawnSystem
	escalationSystem *EscalationSystem
	hitSystem        *HitSystem

	highScores HighScoreRecorder
	reporter   ScoreReporter

	gameOver   *GameOverInfo
	onGameOver func(GameOverInfo)
}

// NewSessionSystem 创建会话调度系统
//
// 参数:
//   - em: 实体管理器（会话独占）
//   - cfg: 玩法配置
//   - rng: 生成与粒子使用的随机数来源
//   - highScores: 本地最高分，可为 nil
//   - reporter: 成绩上报，可为 nil
func NewSessionSystem(em *ecs.EntityManager, cfg *config.GameplayConfig, rng entities.Rand,
	highScores HighScoreRecorder, reporter ScoreReporter) *SessionSystem {
	width := float64(cfg.Canvas.Width)
	height := float64(cfg.Canvas.Height)

	return &SessionSystem{
		entityManager:    em,
		cfg:              cfg,
		session:          game.NewSession(cfg),
		movementSystem:   NewMovementSystem(em, width, height),
		ringSystem:       NewRingEffectSystem(em),
		particleSystem:   NewParticleSystem(em),
		popupSystem:      NewScorePopupSystem(em),
		lifetimeSystem:   NewLifetimeSystem(em),
		flashSystem:      NewFlashEffectSystem(em),
		spawnSystem:      NewSpawnSystem(em, cfg, rng),
		escalationSystem: NewEscalationSystem(em, cfg),
		hitSystem:        NewHitSystem(em, cfg, rng),
		highScores:       highScores,
		reporter:         reporter,
	}
}

// Session 返回会话状态（只读使用）
func (s *SessionSystem) Session() *game.Session {
	return s.session
}

// EntityManager 返回画布实体
func (s *SessionSystem) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// FlashSystem 返回闪屏系统（渲染时查询当前闪屏）
func (s *SessionSystem) FlashSystem() *FlashEffectSystem {
	return s.flashSystem
}

// SetGameOverHandler 设置结束回调
func (s *SessionSystem) SetGameOverHandler(fn func(GameOverInfo)) {
	s.onGameOver = fn
}

// GameOver 返回最近一局的结算信息；开始新局或重置后清空
func (s *SessionSystem) GameOver() (GameOverInfo, bool) {
	if s.gameOver == nil {
		return GameOverInfo{}, false
	}
	return *s.gameOver, true
}

// ActiveTargets 当前同屏目标数量
func (s *SessionSystem) ActiveTargets() int {
	return s.spawnSystem.ActiveCount()
}

// Start 开始新的一局并生成初始目标
// 已在进行中时不做任何事
func (s *SessionSystem) Start() bool {
	if !s.session.Start() {
		return false
	}
	s.entityManager.Clear()
	s.gameOver = nil
	spawned := s.spawnSystem.SpawnInitial(s.session.SpeedMultiplier())
	log.Printf("[SessionSystem] Round started with %d targets", spawned)
	return true
}

// TogglePause 切换暂停，返回切换后是否暂停
func (s *SessionSystem) TogglePause() bool {
	paused := s.session.TogglePause()
	if s.session.IsRunning() {
		log.Printf("[SessionSystem] Paused: %v", paused)
	}
	return paused
}

// End 结束当前局：保存最高分、上报成绩并进入结算画面
// 只在 playing/paused 时生效，重复调用不会重复上报
func (s *SessionSystem) End(reason game.EndReason) bool {
	if !s.session.End(reason) {
		return false
	}
	s.entityManager.Clear()

	score := s.session.Score()
	info := GameOverInfo{Score: score, HighScore: score, Reason: reason}

	if s.highScores != nil {
		newRecord, err := s.highScores.Record(score)
		if err != nil {
			log.Printf("[SessionSystem] Warning: Failed to save high score: %v", err)
		}
		info.NewRecord = newRecord
		info.HighScore = s.highScores.HighScore()
	}

	if s.reporter != nil {
		s.reporter.SubmitScore(score)
	}

	s.gameOver = &info
	if s.onGameOver != nil {
		s.onGameOver(info)
	}
	return true
}

// Reset 结束进行中的局（如有），然后把会话恢复为默认值并清空画布
func (s *SessionSystem) Reset() {
	s.End(game.EndReset)
	s.session.Reset()
	s.entityManager.Clear()
	s.gameOver = nil
}

// HandleClick 处理画布坐标上的点击，只在进行中生效
func (s *SessionSystem) HandleClick(x, y float64) []HitResult {
	if s.session.Phase() != game.PhasePlaying {
		return nil
	}
	results := s.hitSystem.HandleClick(x, y, s.session)
	s.entityManager.RemoveMarkedEntities()
	return results
}

// Update 推进一帧
func (s *SessionSystem) Update(dt float64) {
	if s.session.Phase() != game.PhasePlaying {
		return
	}

	// 先更新已有实体，本帧新生成的目标和闪屏保持初始状态被绘制一次
	s.movementSystem.Update(dt)
	s.ringSystem.Update(dt)
	s.particleSystem.Update(dt)
	s.popupSystem.Update(dt)
	s.lifetimeSystem.Update(dt)
	s.flashSystem.Update(dt)
	s.entityManager.RemoveMarkedEntities()

	ev := s.session.Advance(dt)
	if ev.Ended {
		s.End(game.EndTimeUp)
		return
	}

	// 大步长跨过多个阈值时按到期顺序应用，加速只影响当时已存在的目标
	for _, e := range ev.Schedule {
		switch e.Kind {
		case game.ScheduledSpawn:
			s.spawnSystem.TrySpawn(e.Multiplier)
		case game.ScheduledEscalation:
			s.escalationSystem.Escalate(e.Multiplier)
		}
	}
}
