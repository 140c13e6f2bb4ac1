package entities

import (
	"fmt"

	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/ecs"
)

// NewHitParticles 在命中位置迸发 Particles.Count 个粒子
//
// 每个粒子：
//   - 初速度分量在 (-Spread/2, Spread/2) 内随机
//   - 尺寸在 [MinSize, MaxSize) 内随机
//   - 外观在水滴、水花、闪光中随机
//   - 生命值从 1.0 开始按 Decay 逐帧递减
//
// 返回:
//   - []ecs.EntityID: 创建的粒子实体
//   - error: 参数无效时返回错误
func NewHitParticles(em *ecs.EntityManager, cfg *config.GameplayConfig, rng Rand, x, y float64) ([]ecs.EntityID, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil || rng == nil {
		return nil, fmt.Errorf("config and rng cannot be nil")
	}

	p := cfg.Particles
	ids := make([]ecs.EntityID, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
		ecs.AddComponent(em, id, &components.ParticleComponent{
			VelocityX: (rng.Float64() - 0.5) * p.Spread,
			VelocityY: (rng.Float64() - 0.5) * p.Spread,
			Gravity:   p.Gravity,
			Life:      1.0,
			Decay:     p.Decay,
			Size:      p.MinSize + rng.Float64()*(p.MaxSize-p.MinSize),
			Glyph:     components.ParticleGlyph(rng.Intn(components.ParticleGlyphCount)),
		})
		ids = append(ids, id)
	}
	return ids, nil
}
