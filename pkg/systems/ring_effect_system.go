package systems

import (
	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/ecs"
)

// RingEffectSystem 驱动命中水环的扩散与淡出
type RingEffectSystem struct {
	entityManager *ecs.EntityManager
}

// NewRingEffectSystem 创建水环系统
func NewRingEffectSystem(em *ecs.EntityManager) *RingEffectSystem {
	return &RingEffectSystem{entityManager: em}
}

// Update 扩散阶段每帧增大半径，到达上限后转为淡出；不透明度降到 0 时移除
func (s *RingEffectSystem) Update(dt float64) {
	frames := framesFor(dt)
	for _, id := range ecs.GetEntitiesWith1[*components.RingEffectComponent](s.entityManager) {
		ring, _ := ecs.GetComponent[*components.RingEffectComponent](s.entityManager, id)

		if ring.Growing {
			ring.Radius += ring.GrowRate * frames
			if ring.Radius >= ring.MaxRadius {
				ring.Radius = ring.MaxRadius
				ring.Growing = false
			}
			continue
		}

		ring.Opacity -= ring.FadeRate * frames
		if ring.Opacity <= 0 {
			ring.Opacity = 0
			s.entityManager.DestroyEntity(id)
		}
	}
}
