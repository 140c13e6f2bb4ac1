package modules

import (
	"fmt"
	"image/color"
	"log"

	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/ecs"
	"github.com/gonewx/dermamon/pkg/entities"
	"github.com/gonewx/dermamon/pkg/systems"
	"github.com/gonewx/dermamon/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HelpLines 帮助面板显示的玩法与快捷键说明
var HelpLines = []string{
	"Click the floating Dermamon to score.",
	"Each hit scores 10 x combo. A miss resets the combo.",
	"Every 10 seconds everything speeds up.",
	"A round lasts 60 seconds.",
	"",
	"Space  start / pause / resume",
	"R      reset the round",
	"L      toggle the leaderboard",
	"H      show this help",
	"Esc    close the game popup",
	"F11    toggle fullscreen",
	"",
	"Hold Ctrl (Cmd on Mac) to drag the floating buttons.",
}

const (
	helpPanelWidth  = 520.0
	helpPanelHeight = 360.0
)

// HelpPanelModule 帮助面板模块
//
// 职责：
//   - 创建和管理 "Got it" 按钮
//   - 处理面板显示/隐藏逻辑
//   - 渲染遮罩、面板、帮助文本（按钮由 ButtonRenderSystem 渲染）
type HelpPanelModule struct {
	entityManager      *ecs.EntityManager
	buttonSystem       *systems.ButtonSystem       // 按钮交互（引用，不拥有）
	buttonRenderSystem *systems.ButtonRenderSystem // 按钮渲染（引用，不拥有）

	confirmButtonEntity ecs.EntityID

	visible bool
	onClose func()

	windowWidth  float64
	windowHeight float64
	face         text.Face
}

// NewHelpPanelModule 创建帮助面板模块
//
// 参数:
//   - em: UI 实体管理器
//   - buttonSystem: 按钮交互系统（引用，不拥有）
//   - buttonRenderSystem: 按钮渲染系统（引用，不拥有）
//   - windowWidth, windowHeight: 游戏窗口尺寸
//   - onClose: 关闭面板回调函数（可选）
func NewHelpPanelModule(
	em *ecs.EntityManager,
	buttonSystem *systems.ButtonSystem,
	buttonRenderSystem *systems.ButtonRenderSystem,
	windowWidth, windowHeight float64,
	onClose func(),
) (*HelpPanelModule, error) {
	m := &HelpPanelModule{
		entityManager:      em,
		buttonSystem:       buttonSystem,
		buttonRenderSystem: buttonRenderSystem,
		onClose:            onClose,
		windowWidth:        windowWidth,
		windowHeight:       windowHeight,
		face:               utils.DefaultFace(),
	}

	panel := m.panelRect()
	entity, err := entities.NewButton(em, entities.ButtonSpec{
		X:         panel.X + (panel.Width-140)/2,
		Y:         panel.Y + panel.Height - 56,
		Width:     140,
		Height:    40,
		Text:      "Got it",
		TextScale: 1.5,
		Fill:      color.NRGBA{0x10, 0xB9, 0x81, 0xFF},
		TextColor: color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF},
		OnClick: func() {
			log.Printf("[HelpPanelModule] Confirm button clicked!")
			m.Hide()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create confirm button: %w", err)
	}
	m.confirmButtonEntity = entity
	m.setButtonVisible(false)

	log.Printf("[HelpPanelModule] Initialized successfully")
	return m, nil
}

// IsActive 面板是否显示
func (m *HelpPanelModule) IsActive() bool {
	return m.visible
}

// Show 显示帮助面板
func (m *HelpPanelModule) Show() {
	m.visible = true
	m.setButtonVisible(true)
	log.Printf("[HelpPanelModule] Help panel shown")
}

// Hide 隐藏帮助面板
func (m *HelpPanelModule) Hide() {
	if !m.visible {
		return
	}
	m.visible = false
	m.setButtonVisible(false)
	log.Printf("[HelpPanelModule] Help panel hidden")
	if m.onClose != nil {
		m.onClose()
	}
}

// Toggle 切换显示
func (m *HelpPanelModule) Toggle() {
	if m.visible {
		m.Hide()
	} else {
		m.Show()
	}
}

func (m *HelpPanelModule) setButtonVisible(visible bool) {
	if button, ok := ecs.GetComponent[*components.ButtonComponent](m.entityManager, m.confirmButtonEntity); ok {
		button.Visible = visible
	}
}

func (m *HelpPanelModule) panelRect() utils.Rect {
	return utils.Rect{
		X:      (m.windowWidth - helpPanelWidth) / 2,
		Y:      (m.windowHeight - helpPanelHeight) / 2,
		Width:  helpPanelWidth,
		Height: helpPanelHeight,
	}
}

// Draw 渲染帮助面板
func (m *HelpPanelModule) Draw(screen *ebiten.Image) {
	if !m.visible {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, float32(m.windowWidth), float32(m.windowHeight), color.NRGBA{0, 0, 0, 0x80}, false)

	p := m.panelRect()
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), color.NRGBA{0xFF, 0xFB, 0xEB, 0xFF}, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), 2, color.NRGBA{0xD9, 0x77, 0x06, 0xFF}, true)
	utils.DrawLabel(screen, "How to play", m.face, p.X+p.Width/2, p.Y+16, 2, color.NRGBA{0x92, 0x40, 0x0E, 0xFF}, utils.AlignCenter)

	y := p.Y + 56
	for _, line := range HelpLines {
		utils.DrawLabel(screen, line, m.face, p.X+32, y, 1, color.NRGBA{0x1F, 0x29, 0x37, 0xFF}, utils.AlignLeft)
		y += 18
	}

	m.buttonRenderSystem.DrawButton(screen, m.confirmButtonEntity)
}

// Cleanup 清理模块资源
func (m *HelpPanelModule) Cleanup() {
	m.entityManager.DestroyEntity(m.confirmButtonEntity)
	m.entityManager.RemoveMarkedEntities()
}
