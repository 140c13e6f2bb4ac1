package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/gonewx/dermamon/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultGameplayConfigPath 嵌入的默认配置路径
const DefaultGameplayConfigPath = "data/dermamon.yaml"

// ErrInvalidConfig 配置校验失败时返回的哨兵错误
var ErrInvalidConfig = errors.New("invalid gameplay config")

// GameplayConfig Dermamon 小游戏的全部可调参数
//
// 配置文件位置: data/dermamon.yaml（默认嵌入到二进制中）
//
// 所有“每帧”单位均以 60 TPS 为基准，系统会按 dt*60 缩放，
// 所以改变 TPS 不会改变游戏手感。
type GameplayConfig struct {
	Canvas      CanvasConfig      `yaml:"canvas"`
	Session     SessionConfig     `yaml:"session"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Escalation  EscalationConfig  `yaml:"escalation"`
	Target      TargetConfig      `yaml:"target"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Ring        RingConfig        `yaml:"ring"`
	Particles   ParticleConfig    `yaml:"particles"`
	Popup       PopupConfig       `yaml:"popup"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// CanvasConfig 画布逻辑尺寸
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SessionConfig 单局时长与倒计时
type SessionConfig struct {
	DurationSeconds   int     `yaml:"durationSeconds"`   // 单局时长（秒）
	CountdownInterval float64 `yaml:"countdownInterval"` // 倒计时步长（秒）
}

// SpawnConfig 目标生成策略
type SpawnConfig struct {
	Interval     float64 `yaml:"interval"`     // 补充生成间隔（秒）
	InitialCount int     `yaml:"initialCount"` // 开局生成数量
	MaxTargets   int     `yaml:"maxTargets"`   // 同屏目标上限
	Margin       float64 `yaml:"margin"`       // 生成位置距画布边缘的最小距离
}

// EscalationConfig 周期性加速
type EscalationConfig struct {
	Interval       float64 `yaml:"interval"`       // 加速间隔（秒）
	MultiplierStep float64 `yaml:"multiplierStep"` // 每次加速的倍率增量
	VelocityScale  float64 `yaml:"velocityScale"`  // 现存目标的速度缩放系数（复利叠加）
	FlashFrames    int     `yaml:"flashFrames"`    // 闪屏持续帧数
	FlashIntensity float64 `yaml:"flashIntensity"` // 闪屏覆盖层不透明度
}

// TargetConfig 目标外观与基础速度
type TargetConfig struct {
	Size      float64 `yaml:"size"`
	BaseSpeed float64 `yaml:"baseSpeed"`
	Glyph     string  `yaml:"glyph"`
}

// ScoringConfig 计分规则
type ScoringConfig struct {
	PointsPerCombo int `yaml:"pointsPerCombo"` // 每次命中得分 = PointsPerCombo × combo
}

// RingConfig 水环效果参数
type RingConfig struct {
	MaxRadius float64 `yaml:"maxRadius"`
	GrowRate  float64 `yaml:"growRate"`
	FadeRate  float64 `yaml:"fadeRate"`
}

// ParticleConfig 粒子效果参数
type ParticleConfig struct {
	Count   int     `yaml:"count"`
	Spread  float64 `yaml:"spread"` // 初速度分量范围 (-Spread/2, Spread/2)
	Gravity float64 `yaml:"gravity"`
	Decay   float64 `yaml:"decay"`
	MinSize float64 `yaml:"minSize"`
	MaxSize float64 `yaml:"maxSize"`
}

// PopupConfig 得分浮字参数
type PopupConfig struct {
	Duration  float64 `yaml:"duration"`  // 显示时长（秒）
	OffsetY   float64 `yaml:"offsetY"`   // 相对目标中心的向上偏移
	RiseSpeed float64 `yaml:"riseSpeed"` // 上浮速度（像素/秒）
}

// LeaderboardConfig 排行榜提交参数
type LeaderboardConfig struct {
	GameType string `yaml:"gameType"` // 提交时携带的固定游戏类型标签
	TopN     int    `yaml:"topN"`     // 显示条数
}

// DefaultGameplayConfig 返回默认配置（与 data/dermamon.yaml 一致）
func DefaultGameplayConfig() *GameplayConfig {
	return &GameplayConfig{
		Canvas: CanvasConfig{Width: 600, Height: 400},
		Session: SessionConfig{
			DurationSeconds:   60,
			CountdownInterval: 1.0,
		},
		Spawn: SpawnConfig{
			Interval:     3.0,
			InitialCount: 2,
			MaxTargets:   5,
			Margin:       40,
		},
		Escalation: EscalationConfig{
			Interval:       10.0,
			MultiplierStep: 0.3,
			VelocityScale:  1.15,
			FlashFrames:    1,
			FlashIntensity: 0.3,
		},
		Target: TargetConfig{
			Size:      60,
			BaseSpeed: 2,
			Glyph:     "🧴",
		},
		Scoring: ScoringConfig{PointsPerCombo: 10},
		Ring: RingConfig{
			MaxRadius: 50,
			GrowRate:  5,
			FadeRate:  0.05,
		},
		Particles: ParticleConfig{
			Count:   15,
			Spread:  8,
			Gravity: 0.2,
			Decay:   0.02,
			MinSize: 5,
			MaxSize: 15,
		},
		Popup: PopupConfig{
			Duration:  0.6,
			OffsetY:   40,
			RiseSpeed: 30,
		},
		Leaderboard: LeaderboardConfig{
			GameType: "balloon_hit",
			TopN:     10,
		},
	}
}

// LoadGameplayConfig 从文件加载游戏配置
//
// 参数:
//   - path: 配置文件路径（如 "data/dermamon.yaml"）
//
// 返回:
//   - *GameplayConfig: 加载并校验后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameplayConfig(path string) (*GameplayConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gameplay config: %w", err)
	}
	return ParseGameplayConfig(data)
}

// LoadEmbeddedGameplayConfig 从嵌入资源加载游戏配置
// 调用前必须先调用 embedded.Init()
func LoadEmbeddedGameplayConfig(path string) (*GameplayConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded gameplay config %s: %w", path, err)
	}
	return ParseGameplayConfig(data)
}

// ParseGameplayConfig 解析 YAML 数据
//
// 文件中缺省的字段保留默认值，因此覆盖文件只需写需要修改的部分。
func ParseGameplayConfig(data []byte) (*GameplayConfig, error) {
	cfg := DefaultGameplayConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gameplay config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate 验证配置有效性
func (c *GameplayConfig) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas size must be positive (%dx%d)", ErrInvalidConfig, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Session.DurationSeconds <= 0 {
		return fmt.Errorf("%w: session.durationSeconds must be positive", ErrInvalidConfig)
	}
	if c.Session.CountdownInterval <= 0 {
		return fmt.Errorf("%w: session.countdownInterval must be positive", ErrInvalidConfig)
	}
	if c.Spawn.Interval <= 0 || c.Escalation.Interval <= 0 {
		return fmt.Errorf("%w: spawn/escalation intervals must be positive", ErrInvalidConfig)
	}
	if c.Spawn.MaxTargets <= 0 {
		return fmt.Errorf("%w: spawn.maxTargets must be positive", ErrInvalidConfig)
	}
	if c.Spawn.InitialCount < 0 || c.Spawn.InitialCount > c.Spawn.MaxTargets {
		return fmt.Errorf("%w: spawn.initialCount(%d) must be within [0, maxTargets(%d)]",
			ErrInvalidConfig, c.Spawn.InitialCount, c.Spawn.MaxTargets)
	}
	if c.Target.Size <= 0 {
		return fmt.Errorf("%w: target.size must be positive", ErrInvalidConfig)
	}
	if float64(c.Canvas.Width) < 2*c.Spawn.Margin || float64(c.Canvas.Height) < 2*c.Spawn.Margin {
		return fmt.Errorf("%w: spawn.margin(%.1f) too large for canvas", ErrInvalidConfig, c.Spawn.Margin)
	}
	if c.Escalation.VelocityScale <= 0 {
		return fmt.Errorf("%w: escalation.velocityScale must be positive", ErrInvalidConfig)
	}
	if c.Scoring.PointsPerCombo <= 0 {
		return fmt.Errorf("%w: scoring.pointsPerCombo must be positive", ErrInvalidConfig)
	}
	if c.Ring.GrowRate <= 0 || c.Ring.FadeRate <= 0 {
		return fmt.Errorf("%w: ring rates must be positive", ErrInvalidConfig)
	}
	if c.Particles.Decay <= 0 {
		return fmt.Errorf("%w: particles.decay must be positive", ErrInvalidConfig)
	}
	if c.Particles.MinSize > c.Particles.MaxSize {
		return fmt.Errorf("%w: particles.minSize(%.1f) > maxSize(%.1f)",
			ErrInvalidConfig, c.Particles.MinSize, c.Particles.MaxSize)
	}
	if c.Leaderboard.TopN <= 0 {
		return fmt.Errorf("%w: leaderboard.topN must be positive", ErrInvalidConfig)
	}
	return nil
}

// FrameDuration 单帧时长（秒），与“每帧”单位对应
const FrameDuration = 1.0 / 60.0

// FlashDuration 返回加速闪屏持续时间（秒）
func (c *GameplayConfig) FlashDuration() float64 {
	frames := c.Escalation.FlashFrames
	if frames < 1 {
		frames = 1
	}
	return float64(frames) * FrameDuration
}
