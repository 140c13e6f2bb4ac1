package systems

import (
	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/ecs"
)

// ParticleSystem 更新命中粒子
type ParticleSystem struct {
	entityManager *ecs.EntityManager
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(em *ecs.EntityManager) *ParticleSystem {
	return &ParticleSystem{entityManager: em}
}

// Update 移动粒子、施加重力并衰减生命值，生命值耗尽的粒子被移除
func (s *ParticleSystem) Update(dt float64) {
	frames := framesFor(dt)
	entities := ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](s.entityManager)

	for _, id := range entities {
		p, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		pos.X += p.VelocityX * frames
		pos.Y += p.VelocityY * frames
		p.VelocityY += p.Gravity * frames
		p.Life -= p.Decay * frames

		if p.Life <= 0 {
			p.Life = 0
			s.entityManager.DestroyEntity(id)
		}
	}
}

// ParticleCount 当前存活的粒子数量
func (s *ParticleSystem) ParticleCount() int {
	return len(ecs.GetEntitiesWith1[*components.ParticleComponent](s.entityManager))
}
