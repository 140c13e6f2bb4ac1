package systems

import (
	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/ecs"
)

// LifetimeSystem 推进 LifetimeComponent 的计时，到期的实体标记删除
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{entityManager: em}
}

// Update 返回本次到期的实体数
func (s *LifetimeSystem) Update(dt float64) int {
	expired := 0
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		lifetime.Elapsed += dt
		if lifetime.Expired() {
			s.entityManager.DestroyEntity(id)
			expired++
		}
	}
	return expired
}
