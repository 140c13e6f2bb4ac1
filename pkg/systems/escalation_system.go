package systems

import (
	"log"

	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/ecs"
	"github.com/gonewx/dermamon/pkg/entities"
)

// EscalationSystem 执行周期性加速
//
// 倍率本身由会话维护，这里负责现存目标的速度缩放和闪屏提示。
type EscalationSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.GameplayConfig
}

// NewEscalationSystem 创建加速系统
func NewEscalationSystem(em *ecs.EntityManager, cfg *config.GameplayConfig) *EscalationSystem {
	return &EscalationSystem{
		entityManager: em,
		cfg:           cfg,
	}
}

// Escalate 将所有现存目标的速度乘以 VelocityScale，并显示闪屏
// 缩放是复利的：同一目标经历 n 次加速后速度为初速的 VelocityScale^n 倍
func (s *EscalationSystem) Escalate(newMultiplier float64) {
	scale := s.cfg.Escalation.VelocityScale
	targets := ecs.GetEntitiesWith2[*components.DermamonComponent, *components.VelocityComponent](s.entityManager)
	for _, id := range targets {
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		vel.VX *= scale
		vel.VY *= scale
	}

	if _, err := entities.NewSpeedUpFlash(s.entityManager, s.cfg); err != nil {
		log.Printf("[EscalationSystem] Failed to create flash: %v", err)
	}
	log.Printf("[EscalationSystem] Speed up: multiplier=%.1f, targets=%d", newMultiplier, len(targets))
}
