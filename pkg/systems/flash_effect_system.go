package systems

import (
	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/ecs"
)

// FlashEffectSystem 闪屏效果系统
// 管理加速闪屏的生命周期，结束后移除闪屏实体
type FlashEffectSystem struct {
	entityManager *ecs.EntityManager
}

// NewFlashEffectSystem 创建闪屏效果系统
func NewFlashEffectSystem(em *ecs.EntityManager) *FlashEffectSystem {
	return &FlashEffectSystem{
		entityManager: em,
	}
}

// Update 更新所有闪屏效果
// 参数：
//   - dt: 时间增量（秒）
func (s *FlashEffectSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.FlashEffectComponent](s.entityManager)

	for _, entity := range entities {
		flashComp, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, entity)
		if !ok || !flashComp.IsActive {
			continue
		}

		flashComp.Elapsed += dt

		// 闪屏结束，移除实体
		if flashComp.Elapsed >= flashComp.Duration {
			s.entityManager.DestroyEntity(entity)
		}
	}
}

// ActiveFlash 返回当前激活的闪屏（如有）
func (s *FlashEffectSystem) ActiveFlash() (*components.FlashEffectComponent, bool) {
	for _, entity := range ecs.GetEntitiesWith1[*components.FlashEffectComponent](s.entityManager) {
		flashComp, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, entity)
		if ok && flashComp.IsActive {
			return flashComp, true
		}
	}
	return nil, false
}
