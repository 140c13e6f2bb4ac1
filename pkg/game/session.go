package game

import (
	"log"

	"github.com/gonewx/dermamon/pkg/config"
)

// Phase 一局游戏所处的阶段
//
// 状态转换: idle → playing ⇄ paused → idle
type Phase int

const (
	// PhaseIdle 未开始或已结束（初始态与终态）
	PhaseIdle Phase = iota
	// PhasePlaying 进行中
	PhasePlaying
	// PhasePaused 已暂停
	PhasePaused
)

// String 返回阶段名称（用于日志）
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// EndReason 一局结束的原因
type EndReason int

const (
	// EndTimeUp 倒计时归零
	EndTimeUp EndReason = iota
	// EndClosed 游戏弹窗在进行中被关闭
	EndClosed
	// EndReset 玩家点击重置
	EndReset
	// EndQuit 应用退出
	EndQuit
)

// String 返回结束原因名称（用于日志）
func (r EndReason) String() string {
	switch r {
	case EndTimeUp:
		return "time-up"
	case EndClosed:
		return "closed"
	case EndReset:
		return "reset"
	case EndQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// TickEvents 一次 Advance 中触发的调度事件
type TickEvents struct {
	CountdownTicks int  // 倒计时减少的秒数
	Spawns         int  // 到期的补充生成次数
	Escalations    int  // 到期的加速次数
	Ended          bool // 本次推进中倒计时归零

	// SpawnMultipliers 每次生成到期时的速度倍率，按时间顺序
	// 与加速同时到期的生成使用加速前的倍率
	SpawnMultipliers []float64

	// Schedule 生成与加速按到期顺序排列，调用方应依次应用
	Schedule []ScheduledEvent
}

// ScheduledKind 调度事件类型
type ScheduledKind int

const (
	// ScheduledSpawn 补充生成一个目标
	ScheduledSpawn ScheduledKind = iota
	// ScheduledEscalation 加速一次
	ScheduledEscalation
)

// ScheduledEvent 一次到期的生成或加速
// Multiplier 对生成是生成时的倍率，对加速是加速后的倍率
type ScheduledEvent struct {
	Kind       ScheduledKind
	Multiplier float64
}

// schedulerEpsilon 浮点累加误差容忍度
const schedulerEpsilon = 1e-9

// Session 一局 Dermamon 游戏的状态
//
// 由游戏组件独占持有，不是全局单例。三个周期性行为（倒计时、补充生成、加速）
// 统一由 Advance 驱动：每次推进只累加未暂停的时间，跨过阈值时产生事件。
// 同一时刻到期时按 倒计时 → 生成 → 加速 的顺序处理，倒计时归零后不再产生其他事件。
type Session struct {
	cfg *config.GameplayConfig

	score           int
	timeLeft        int
	combo           int
	speedMultiplier float64
	phase           Phase

	countdownAcc  float64
	spawnAcc      float64
	escalationAcc float64
	elapsed       float64 // 未暂停的累计游戏时间（秒）
}

// NewSession 创建处于 idle 阶段的会话
func NewSession(cfg *config.GameplayConfig) *Session {
	if cfg == nil {
		cfg = config.DefaultGameplayConfig()
	}
	s := &Session{cfg: cfg}
	s.Reset()
	return s
}

// Reset 将计分、时间、连击和速度倍率恢复为默认值
// 不改变阶段；进行中的局应先调用 End
func (s *Session) Reset() {
	s.score = 0
	s.timeLeft = s.cfg.Session.DurationSeconds
	s.combo = 0
	s.speedMultiplier = 1.0
	s.countdownAcc = 0
	s.spawnAcc = 0
	s.escalationAcc = 0
	s.elapsed = 0
}

// Start 开始新的一局
// 仅在 idle 阶段有效，返回是否真正开始
func (s *Session) Start() bool {
	if s.phase != PhaseIdle {
		return false
	}
	s.Reset()
	s.phase = PhasePlaying
	log.Printf("[Session] Started: duration=%ds", s.timeLeft)
	return true
}

// TogglePause 在 playing 与 paused 之间切换
// 返回切换后是否处于暂停状态；idle 阶段不做任何事
func (s *Session) TogglePause() bool {
	switch s.phase {
	case PhasePlaying:
		s.phase = PhasePaused
	case PhasePaused:
		s.phase = PhasePlaying
	}
	return s.phase == PhasePaused
}

// End 结束当前局
// 仅对 playing/paused 有效；重复调用返回 false，保证结束逻辑只执行一次
func (s *Session) End(reason EndReason) bool {
	if s.phase == PhaseIdle {
		return false
	}
	s.phase = PhaseIdle
	log.Printf("[Session] Ended (%s): score=%d, timeLeft=%d, elapsed=%.2fs", reason, s.score, s.timeLeft, s.elapsed)
	return true
}

// Advance 推进调度器
//
// 只有 playing 阶段会累加时间；暂停期间三个计时器都保持原值，恢复后从原处继续。
// 单次推进跨过多个阈值时，按时间顺序逐个触发。
func (s *Session) Advance(dt float64) TickEvents {
	var ev TickEvents
	if s.phase != PhasePlaying || dt <= 0 {
		return ev
	}

	countdownInterval := s.cfg.Session.CountdownInterval
	spawnInterval := s.cfg.Spawn.Interval
	escalationInterval := s.cfg.Escalation.Interval

	remaining := dt
	for remaining > 0 {
		step := remaining
		step = minFloat(step, countdownInterval-s.countdownAcc)
		step = minFloat(step, spawnInterval-s.spawnAcc)
		step = minFloat(step, escalationInterval-s.escalationAcc)
		if step < 0 {
			step = 0
		}

		s.countdownAcc += step
		s.spawnAcc += step
		s.escalationAcc += step
		s.elapsed += step
		remaining -= step

		if s.countdownAcc >= countdownInterval-schedulerEpsilon {
			s.countdownAcc = maxFloat(0, s.countdownAcc-countdownInterval)
			s.timeLeft--
			ev.CountdownTicks++
			if s.timeLeft <= 0 {
				s.timeLeft = 0
				ev.Ended = true
				return ev
			}
		}

		if s.spawnAcc >= spawnInterval-schedulerEpsilon {
			s.spawnAcc = maxFloat(0, s.spawnAcc-spawnInterval)
			ev.Spawns++
			ev.SpawnMultipliers = append(ev.SpawnMultipliers, s.speedMultiplier)
			ev.Schedule = append(ev.Schedule, ScheduledEvent{Kind: ScheduledSpawn, Multiplier: s.speedMultiplier})
		}

		if s.escalationAcc >= escalationInterval-schedulerEpsilon {
			s.escalationAcc = maxFloat(0, s.escalationAcc-escalationInterval)
			s.speedMultiplier += s.cfg.Escalation.MultiplierStep
			ev.Escalations++
			ev.Schedule = append(ev.Schedule, ScheduledEvent{Kind: ScheduledEscalation, Multiplier: s.speedMultiplier})
		}
	}

	return ev
}

// RegisterHit 记录一次命中，返回本次得分
// 连击先加一，得分 = PointsPerCombo × 连击数
func (s *Session) RegisterHit() int {
	s.combo++
	points := s.cfg.Scoring.PointsPerCombo * s.combo
	s.score += points
	return points
}

// RegisterMiss 记录一次未命中，连击归零
func (s *Session) RegisterMiss() {
	s.combo = 0
}

// Score 当前得分
func (s *Session) Score() int { return s.score }

// TimeLeft 剩余秒数
func (s *Session) TimeLeft() int { return s.timeLeft }

// Combo 当前连击数
func (s *Session) Combo() int { return s.combo }

// SpeedMultiplier 当前速度倍率（用于新生成的目标）
func (s *Session) SpeedMultiplier() float64 { return s.speedMultiplier }

// Phase 当前阶段
func (s *Session) Phase() Phase { return s.phase }

// IsRunning 是否处于一局之中（进行中或暂停）
func (s *Session) IsRunning() bool { return s.phase != PhaseIdle }

// IsPaused 是否暂停
func (s *Session) IsPaused() bool { return s.phase == PhasePaused }

// Elapsed 未暂停的累计游戏时间（秒）
func (s *Session) Elapsed() float64 { return s.elapsed }

// Config 会话使用的配置
func (s *Session) Config() *config.GameplayConfig { return s.cfg }

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
