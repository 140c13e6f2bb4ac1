package systems

import (
	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/ecs"
)

// ScorePopupSystem 让得分浮字上浮，移除由 LifetimeSystem 负责
type ScorePopupSystem struct {
	entityManager *ecs.EntityManager
}

// NewScorePopupSystem 创建浮字系统
func NewScorePopupSystem(em *ecs.EntityManager) *ScorePopupSystem {
	return &ScorePopupSystem{entityManager: em}
}

// Update 按 RiseSpeed 上移浮字
func (s *ScorePopupSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith2[*components.ScorePopupComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		popup, _ := ecs.GetComponent[*components.ScorePopupComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		pos.Y -= popup.RiseSpeed * dt
	}
}
