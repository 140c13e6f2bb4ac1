package systems

import (
	"image/color"

	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/ecs"
	"github.com/gonewx/dermamon/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var disabledButtonColor = color.NRGBA{0xB0, 0xB0, 0xB8, 0xFF}

// ButtonRenderSystem 按钮渲染系统
// 负责渲染所有可见的按钮实体
//
// 职责：
//   - 渲染按钮背景（按状态加深或置灰）
//   - 渲染按钮文字（自动居中，带阴影）
type ButtonRenderSystem struct {
	entityManager *ecs.EntityManager
	face          text.Face
}

// NewButtonRenderSystem 创建按钮渲染系统
// face 为 nil 时使用默认字体
func NewButtonRenderSystem(em *ecs.EntityManager, face text.Face) *ButtonRenderSystem {
	if face == nil {
		face = utils.DefaultFace()
	}
	return &ButtonRenderSystem{
		entityManager: em,
		face:          face,
	}
}

// Draw 渲染所有按钮
func (s *ButtonRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		s.DrawButton(screen, entityID)
	}
}

// DrawButton 渲染单个按钮实体
// 用于需要精确控制渲染顺序的场景
func (s *ButtonRenderSystem) DrawButton(screen *ebiten.Image, entityID ecs.EntityID) {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
	if !ok || !button.Visible {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
	if !ok {
		return
	}

	fill := buttonFill(button)
	x, y := float32(pos.X), float32(pos.Y)
	w, h := float32(button.Width), float32(button.Height)
	vector.DrawFilledRect(screen, x, y+2, w, h, color.NRGBA{0, 0, 0, 0x40}, true)
	vector.DrawFilledRect(screen, x, y, w, h, fill, true)

	if button.Text == "" {
		return
	}
	scale := button.TextScale
	if scale <= 0 {
		scale = 1
	}
	_, lineHeight := text.Measure(button.Text, s.face, 0)
	cx := pos.X + button.Width/2
	cy := pos.Y + button.Height/2 - lineHeight*scale/2
	utils.DrawLabelWithShadow(screen, button.Text, s.face, cx, cy, scale, button.TextColor, utils.AlignCenter)
}

// buttonFill 根据状态计算背景色
func buttonFill(button *components.ButtonComponent) color.NRGBA {
	if !button.Enabled || button.State == components.UIDisabled {
		return disabledButtonColor
	}
	switch button.State {
	case components.UIHovered:
		return darken(button.Fill, 0.9)
	case components.UIClicked:
		return darken(button.Fill, 0.75)
	default:
		return button.Fill
	}
}

func darken(c color.NRGBA, factor float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
