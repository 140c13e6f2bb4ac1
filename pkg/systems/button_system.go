package systems

import (
	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ButtonSystem 按钮交互系统
// 负责处理按钮的鼠标悬停、点击等交互逻辑
//
// 职责：
//   - 检测鼠标悬停（更新按钮状态为 UIHovered）
//   - 检测鼠标点击（释放时触发 OnClick 回调）
//   - 根据 Enabled/Visible 决定是否响应交互
type ButtonSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
	}
}

// Update 读取鼠标状态并更新按钮
func (s *ButtonSystem) Update(deltaTime float64) {
	mouseX, mouseY := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	// 触摸：抬起的一帧按释放处理
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		s.HandlePointer(float64(x), float64(y), false, true)
		return
	}

	s.HandlePointer(float64(mouseX), float64(mouseY), pressed, released)
}

// HandlePointer 按给定的指针状态更新所有按钮
// 返回是否有按钮在本次调用中被点击
func (s *ButtonSystem) HandlePointer(x, y float64, pressed, released bool) bool {
	clicked := false
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if !button.Visible {
			button.State = components.UINormal
			continue
		}
		// 禁用状态不响应交互
		if !button.Enabled {
			button.State = components.UIDisabled
			continue
		}

		if !isPointInButton(x, y, pos.X, pos.Y, button.Width, button.Height) {
			button.State = components.UINormal
			continue
		}

		switch {
		case pressed:
			button.State = components.UIClicked
		case released:
			button.State = components.UIHovered
			if button.OnClick != nil {
				button.OnClick()
			}
			clicked = true
		default:
			button.State = components.UIHovered
		}
	}
	return clicked
}

// ButtonAt 返回包含该点的可见按钮
func (s *ButtonSystem) ButtonAt(x, y float64) (ecs.EntityID, bool) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
		if button.Visible && isPointInButton(x, y, pos.X, pos.Y, button.Width, button.Height) {
			return entityID, true
		}
	}
	return 0, false
}

// isPointInButton 检测点是否在按钮范围内
func isPointInButton(px, py, buttonX, buttonY, buttonWidth, buttonHeight float64) bool {
	return px >= buttonX &&
		px <= buttonX+buttonWidth &&
		py >= buttonY &&
		py <= buttonY+buttonHeight
}
