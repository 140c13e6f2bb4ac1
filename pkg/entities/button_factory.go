package entities

import (
	"fmt"
	"image/color"

	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/ecs"
)

// ButtonSpec 描述一个纯色按钮
type ButtonSpec struct {
	X, Y          float64
	Width, Height float64
	Text          string
	TextScale     float64
	Fill          color.NRGBA
	TextColor     color.NRGBA
	OnClick       func()
}

// NewButton 创建按钮实体
//
// 参数：
//   - em: 实体管理器
//   - bs: 位置、尺寸、文字与回调
//
// 返回：
//   - 按钮实体ID
//   - 错误信息（尺寸非法时）
//
// 新按钮默认可见且启用。
func NewButton(em *ecs.EntityManager, bs ButtonSpec) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager is nil")
	}
	if bs.Width <= 0 || bs.Height <= 0 {
		return 0, fmt.Errorf("button %q has invalid size %.0fx%.0f", bs.Text, bs.Width, bs.Height)
	}

	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.PositionComponent{X: bs.X, Y: bs.Y})
	ecs.AddComponent(em, entity, &components.ButtonComponent{
		Text:      bs.Text,
		TextScale: bs.TextScale,
		Fill:      bs.Fill,
		TextColor: bs.TextColor,
		Width:     bs.Width,
		Height:    bs.Height,
		State:     components.UINormal,
		Enabled:   true,
		Visible:   true,
		OnClick:   bs.OnClick,
	})
	return entity, nil
}
