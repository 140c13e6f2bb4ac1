package entities

import (
	"fmt"

	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/ecs"
)

// SpeedUpLabel 加速闪屏上显示的文字
const SpeedUpLabel = "SPEED UP!"

// NewRingEffect 在命中位置创建扩散水环
//
// 参数:
//   - em: 实体管理器
//   - cfg: 玩法配置（Ring 组）
//   - x, y: 被命中目标的中心（画布坐标）
func NewRingEffect(em *ecs.EntityManager, cfg *config.GameplayConfig, x, y float64) (ecs.EntityID, error) {
	if em == nil || cfg == nil {
		return 0, fmt.Errorf("entity manager and config cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.RingEffectComponent{
		Radius:    0,
		MaxRadius: cfg.Ring.MaxRadius,
		GrowRate:  cfg.Ring.GrowRate,
		FadeRate:  cfg.Ring.FadeRate,
		Opacity:   1.0,
		Growing:   true,
	})
	return id, nil
}

// NewScorePopup 创建得分浮字，如 "+30"
// 浮字出现在目标中心上方 Popup.OffsetY 处，Popup.Duration 秒后消失
func NewScorePopup(em *ecs.EntityManager, cfg *config.GameplayConfig, x, y float64, points int) (ecs.EntityID, error) {
	if em == nil || cfg == nil {
		return 0, fmt.Errorf("entity manager and config cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y - cfg.Popup.OffsetY})
	ecs.AddComponent(em, id, &components.ScorePopupComponent{
		Text:      fmt.Sprintf("+%d", points),
		RiseSpeed: cfg.Popup.RiseSpeed,
	})
	ecs.AddComponent(em, id, &components.LifetimeComponent{
		Duration: cfg.Popup.Duration,
	})
	return id, nil
}

// NewSpeedUpFlash 创建加速时的全画布闪屏
func NewSpeedUpFlash(em *ecs.EntityManager, cfg *config.GameplayConfig) (ecs.EntityID, error) {
	if em == nil || cfg == nil {
		return 0, fmt.Errorf("entity manager and config cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.FlashEffectComponent{
		Duration:  cfg.FlashDuration(),
		Intensity: cfg.Escalation.FlashIntensity,
		Label:     SpeedUpLabel,
		IsActive:  true,
	})
	return id, nil
}
