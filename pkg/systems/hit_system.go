package systems

import (
	"log"
	"math"

	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/ecs"
	"github.com/gonewx/dermamon/pkg/entities"
)

// HitScorer 为一次命中计分，返回本次得分
type HitScorer interface {
	RegisterHit() int
	RegisterMiss()
}

// HitResult 一次点击命中的目标
type HitResult struct {
	Entity ecs.EntityID
	X, Y   float64
	Points int
}

// HitSystem 处理画布点击
//
// 点击点到目标中心的距离严格小于 Size/2 视为命中。
// 一次点击会命中所有重叠的目标，每个目标单独累加连击；一个都没命中时连击归零。
type HitSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.GameplayConfig
	rng           entities.Rand
}

// NewHitSystem 创建命中系统
func NewHitSystem(em *ecs.EntityManager, cfg *config.GameplayConfig, rng entities.Rand) *HitSystem {
	return &HitSystem{
		entityManager: em,
		cfg:           cfg,
		rng:           rng,
	}
}

// HandleClick 处理画布坐标 (x, y) 上的一次点击
func (s *HitSystem) HandleClick(x, y float64, scorer HitScorer) []HitResult {
	var results []HitResult

	targets := ecs.GetEntitiesWith2[*components.DermamonComponent, *components.PositionComponent](s.entityManager)
	for _, id := range targets {
		d, _ := ecs.GetComponent[*components.DermamonComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if d.Hit || !IsInsideTarget(x, y, pos.X, pos.Y, d.Size) {
			continue
		}

		d.Hit = true
		s.entityManager.DestroyEntity(id)

		points := scorer.RegisterHit()
		s.spawnHitEffects(pos.X, pos.Y, points)
		results = append(results, HitResult{Entity: id, X: pos.X, Y: pos.Y, Points: points})
	}

	if len(results) == 0 {
		scorer.RegisterMiss()
	}
	return results
}

func (s *HitSystem) spawnHitEffects(x, y float64, points int) {
	if _, err := entities.NewRingEffect(s.entityManager, s.cfg, x, y); err != nil {
		log.Printf("[HitSystem] Failed to create ring: %v", err)
	}
	if _, err := entities.NewHitParticles(s.entityManager, s.cfg, s.rng, x, y); err != nil {
		log.Printf("[HitSystem] Failed to create particles: %v", err)
	}
	if _, err := entities.NewScorePopup(s.entityManager, s.cfg, x, y, points); err != nil {
		log.Printf("[HitSystem] Failed to create score popup: %v", err)
	}
}

// IsInsideTarget 判断点是否在以 (cx, cy) 为中心、直径为 size 的圆内（不含边界）
func IsInsideTarget(x, y, cx, cy, size float64) bool {
	return math.Hypot(x-cx, y-cy) < size/2
}
