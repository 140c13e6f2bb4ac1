package systems

import (
	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/ecs"
)

// MovementSystem 移动目标并在画布边缘反弹
//
// 每帧先按速度移动；中心越过 [Size/2, 边长-Size/2] 时对应速度分量取反，
// 然后把中心夹回该范围内。
type MovementSystem struct {
	entityManager *ecs.EntityManager
	width         float64
	height        float64
}

// NewMovementSystem 创建移动系统
// width/height 为画布逻辑尺寸
func NewMovementSystem(em *ecs.EntityManager, width, height float64) *MovementSystem {
	return &MovementSystem{
		entityManager: em,
		width:         width,
		height:        height,
	}
}

// Update 移动所有目标
func (s *MovementSystem) Update(dt float64) {
	frames := framesFor(dt)
	entities := ecs.GetEntitiesWith3[
		*components.DermamonComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](s.entityManager)

	for _, id := range entities {
		d, _ := ecs.GetComponent[*components.DermamonComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		pos.X += vel.VX * frames
		pos.Y += vel.VY * frames

		half := d.Size / 2
		if pos.X < half || pos.X > s.width-half {
			vel.VX = -vel.VX
		}
		if pos.Y < half || pos.Y > s.height-half {
			vel.VY = -vel.VY
		}

		pos.X = clamp(pos.X, half, s.width-half)
		pos.Y = clamp(pos.Y, half, s.height-half)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
