package entities

import (
	"fmt"

	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/ecs"
)

// Rand 工厂使用的随机数来源
// *rand.Rand 满足该接口；测试中传入固定种子以获得确定结果
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewDermamon 创建一个移动目标
//
// 位置在画布内距边缘 Spawn.Margin 的范围内均匀随机；
// 速度每个分量为 (rand-0.5) × BaseSpeed × speedMultiplier（像素/帧）。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 玩法配置
//   - rng: 随机数来源
//   - speedMultiplier: 当前速度倍率
//
// 返回:
//   - ecs.EntityID: 新目标的实体ID
//   - error: 参数无效时返回错误
func NewDermamon(em *ecs.EntityManager, cfg *config.GameplayConfig, rng Rand, speedMultiplier float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil || rng == nil {
		return 0, fmt.Errorf("config and rng cannot be nil")
	}

	margin := cfg.Spawn.Margin
	width := float64(cfg.Canvas.Width)
	height := float64(cfg.Canvas.Height)

	x := rng.Float64()*(width-2*margin) + margin
	y := rng.Float64()*(height-2*margin) + margin

	speed := cfg.Target.BaseSpeed * speedMultiplier
	vx := (rng.Float64() - 0.5) * speed
	vy := (rng.Float64() - 0.5) * speed

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: vx, VY: vy})
	ecs.AddComponent(em, id, &components.DermamonComponent{
		Size:  cfg.Target.Size,
		Glyph: cfg.Target.Glyph,
	})

	return id, nil
}
