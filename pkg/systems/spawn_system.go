package systems

import (
	"log"

	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/ecs"
	"github.com/gonewx/dermamon/pkg/entities"
)

// SpawnSystem 生成目标，保证同屏目标数不超过上限
type SpawnSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.GameplayConfig
	rng           entities.Rand
}

// NewSpawnSystem 创建生成系统
func NewSpawnSystem(em *ecs.EntityManager, cfg *config.GameplayConfig, rng entities.Rand) *SpawnSystem {
	return &SpawnSystem{
		entityManager: em,
		cfg:           cfg,
		rng:           rng,
	}
}

// ActiveCount 当前未被命中的目标数量
func (s *SpawnSystem) ActiveCount() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.DermamonComponent](s.entityManager) {
		d, _ := ecs.GetComponent[*components.DermamonComponent](s.entityManager, id)
		if !d.Hit {
			count++
		}
	}
	return count
}

// SpawnInitial 开局生成 InitialCount 个目标
func (s *SpawnSystem) SpawnInitial(speedMultiplier float64) int {
	spawned := 0
	for i := 0; i < s.cfg.Spawn.InitialCount; i++ {
		if s.TrySpawn(speedMultiplier) {
			spawned++
		}
	}
	return spawned
}

// TrySpawn 在未达上限时生成一个目标
// 返回是否真正生成
func (s *SpawnSystem) TrySpawn(speedMultiplier float64) bool {
	if s.ActiveCount() >= s.cfg.Spawn.MaxTargets {
		return false
	}
	if _, err := entities.NewDermamon(s.entityManager, s.cfg, s.rng, speedMultiplier); err != nil {
		log.Printf("[SpawnSystem] Failed to spawn target: %v", err)
		return false
	}
	return true
}
