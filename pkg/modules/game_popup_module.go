package modules

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/ecs"
	"github.com/gonewx/dermamon/pkg/entities"
	"github.com/gonewx/dermamon/pkg/game"
	"github.com/gonewx/dermamon/pkg/systems"
	"github.com/gonewx/dermamon/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ErrNoCanvas 画布尺寸为 0 时无法创建游戏弹窗
var ErrNoCanvas = errors.New("game canvas has zero size")

// GamePopupModule 游戏弹窗模块
// 封装所有与游戏弹窗相关的功能，包括：
//   - 弹窗框架、标题栏和关闭按钮
//   - HUD（得分、剩余时间、连击、最高分、速度）
//   - 画布（离屏绘制后缩放到显示矩形）
//   - 控制按钮（开始、暂停/继续、重置、排行榜）
//
// 按钮是 UI 实体管理器中的实体，交互由场景持有的 ButtonSystem 统一处理；
// 画布实体属于 SessionSystem 自己的实体管理器。
type GamePopupModule struct {
	// UI 实体（按钮）
	entityManager      *ecs.EntityManager
	buttonSystem       *systems.ButtonSystem       // 按钮交互（引用，不拥有）
	buttonRenderSystem *systems.ButtonRenderSystem // 按钮渲染（引用，不拥有）

	startButton       ecs.EntityID
	pauseButton       ecs.EntityID
	resetButton       ecs.EntityID
	leaderboardButton ecs.EntityID
	closeButton       ecs.EntityID
	buttonEntities    []ecs.EntityID

	// 游戏
	session      *systems.SessionSystem
	renderSystem *systems.RenderSystem
	highScores   systems.HighScoreRecorder
	canvas       *ebiten.Image
	canvasWidth  int
	canvasHeight int
	display      utils.Rect

	visible   bool
	wasPaused bool
	face      text.Face

	onClose func()
}

// GamePopupCallbacks 弹窗按钮回调
// 开始、暂停、重置直接作用于 SessionSystem，这里只需要场景级的回调
type GamePopupCallbacks struct {
	OnLeaderboard func() // "Leaderboard" 按钮
	OnClose       func() // 关闭按钮（弹窗已隐藏之后调用）
}

// NewGamePopupModule 创建游戏弹窗模块
//
// 参数:
//   - em: UI 实体管理器（按钮实体创建在这里）
//   - buttonSystem: 按钮交互系统（引用，不拥有）
//   - buttonRenderSystem: 按钮渲染系统（引用，不拥有）
//   - session: 会话调度系统
//   - highScores: 本地最高分（HUD 显示），可为 nil
//   - cfg: 玩法配置（画布尺寸）
//   - callbacks: 回调函数集合
//
// 返回:
//   - *GamePopupModule: 新创建的模块实例
//   - error: 画布尺寸为 0 时返回 ErrNoCanvas
//
// 弹窗初始为隐藏。
func NewGamePopupModule(
	em *ecs.EntityManager,
	buttonSystem *systems.ButtonSystem,
	buttonRenderSystem *systems.ButtonRenderSystem,
	session *systems.SessionSystem,
	highScores systems.HighScoreRecorder,
	cfg *config.GameplayConfig,
	callbacks GamePopupCallbacks,
) (*GamePopupModule, error) {
	if cfg.Canvas.Width <= 0 || cfg.Canvas.Height <= 0 {
		return nil, ErrNoCanvas
	}

	face := utils.DefaultFace()
	m := &GamePopupModule{
		entityManager:      em,
		buttonSystem:       buttonSystem,
		buttonRenderSystem: buttonRenderSystem,
		session:            session,
		renderSystem:       systems.NewRenderSystem(session.EntityManager(), cfg, face),
		highScores:         highScores,
		canvasWidth:        cfg.Canvas.Width,
		canvasHeight:       cfg.Canvas.Height,
		display: utils.Rect{
			X:      config.CanvasDisplayX,
			Y:      config.CanvasDisplayY,
			Width:  config.CanvasDisplayWidth,
			Height: config.CanvasDisplayHeight,
		},
		face:    face,
		onClose: callbacks.OnClose,
	}

	if err := m.createButtons(callbacks); err != nil {
		return nil, fmt.Errorf("failed to create game popup buttons: %w", err)
	}
	m.setButtonsVisible(false)

	log.Printf("[GamePopupModule] Initialized with %d buttons (canvas %dx%d)", len(m.buttonEntities), m.canvasWidth, m.canvasHeight)
	return m, nil
}

// createButtons 创建控制按钮和关闭按钮
func (m *GamePopupModule) createButtons(callbacks GamePopupCallbacks) error {
	white := color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
	specs := []struct {
		target *ecs.EntityID
		text   string
		fill   color.NRGBA
		click  func()
	}{
		{&m.startButton, "Start", color.NRGBA{0x10, 0xB9, 0x81, 0xFF}, func() { m.session.Start() }},
		{&m.pauseButton, "Pause", color.NRGBA{0xF5, 0x9E, 0x0B, 0xFF}, func() { m.session.TogglePause() }},
		{&m.resetButton, "Reset", color.NRGBA{0xEF, 0x44, 0x44, 0xFF}, func() { m.session.Reset() }},
		{&m.leaderboardButton, "Leaderboard", color.NRGBA{0x8B, 0x5C, 0xF6, 0xFF}, callbacks.OnLeaderboard},
	}

	rowWidth := float64(len(specs))*config.ButtonWidth + float64(len(specs)-1)*config.ButtonSpacing
	x := config.PopupX + (config.PopupWidth-rowWidth)/2
	for _, s := range specs {
		id, err := entities.NewButton(m.entityManager, entities.ButtonSpec{
			X:         x,
			Y:         config.ButtonRowY,
			Width:     config.ButtonWidth,
			Height:    config.ButtonHeight,
			Text:      s.text,
			TextScale: 1.5,
			Fill:      s.fill,
			TextColor: white,
			OnClick:   s.click,
		})
		if err != nil {
			return fmt.Errorf("failed to create %s button: %w", s.text, err)
		}
		*s.target = id
		m.buttonEntities = append(m.buttonEntities, id)
		x += config.ButtonWidth + config.ButtonSpacing
	}

	id, err := entities.NewButton(m.entityManager, entities.ButtonSpec{
		X:         config.PopupX + config.PopupWidth - config.CloseButtonSize - 8,
		Y:         config.PopupY + (config.PopupHeaderHeight-config.CloseButtonSize)/2,
		Width:     config.CloseButtonSize,
		Height:    config.CloseButtonSize,
		Text:      "X",
		TextScale: 1.5,
		Fill:      color.NRGBA{0x4F, 0x46, 0xE5, 0xFF},
		TextColor: white,
		OnClick:   m.Close,
	})
	if err != nil {
		return fmt.Errorf("failed to create close button: %w", err)
	}
	m.closeButton = id
	m.buttonEntities = append(m.buttonEntities, id)
	return nil
}

// IsVisible 弹窗是否打开
func (m *GamePopupModule) IsVisible() bool {
	return m.visible
}

// Show 打开弹窗
func (m *GamePopupModule) Show() {
	if m.visible {
		return
	}
	m.visible = true
	m.setButtonsVisible(true)
	log.Printf("[GamePopupModule] Popup opened")
}

// Close 关闭弹窗；进行中的一局随之结束
func (m *GamePopupModule) Close() {
	if !m.visible {
		return
	}
	m.visible = false
	m.setButtonsVisible(false)
	m.session.End(game.EndClosed)
	log.Printf("[GamePopupModule] Popup closed")
	if m.onClose != nil {
		m.onClose()
	}
}

// Toggle 切换弹窗
func (m *GamePopupModule) Toggle() {
	if m.visible {
		m.Close()
	} else {
		m.Show()
	}
}

func (m *GamePopupModule) setButtonsVisible(visible bool) {
	for _, id := range m.buttonEntities {
		if button, ok := ecs.GetComponent[*components.ButtonComponent](m.entityManager, id); ok {
			button.Visible = visible
		}
	}
}

// Update 按会话状态同步按钮
//
// 注意：
//   - 按钮交互由 ButtonSystem 处理（外部调用）
//   - 游戏本身由 SessionSystem.Update 推进（场景调用）
func (m *GamePopupModule) Update(deltaTime float64) {
	m.syncButtons()
}

// syncButtons 按会话阶段更新按钮的启用状态和文字
func (m *GamePopupModule) syncButtons() {
	s := m.session.Session()
	paused := s.IsPaused()
	if paused != m.wasPaused {
		log.Printf("[GamePopupModule] Paused: %v", paused)
		m.wasPaused = paused
	}

	if start, ok := ecs.GetComponent[*components.ButtonComponent](m.entityManager, m.startButton); ok {
		start.Enabled = !s.IsRunning()
	}
	if pause, ok := ecs.GetComponent[*components.ButtonComponent](m.entityManager, m.pauseButton); ok {
		pause.Enabled = s.IsRunning()
		if paused {
			pause.Text = "Resume"
		} else {
			pause.Text = "Pause"
		}
	}
}

// HandleButtons 以给定的指针状态处理按钮（不读取输入设备）
func (m *GamePopupModule) HandleButtons(x, y float64, pressed, released bool) bool {
	m.syncButtons()
	if !m.visible {
		return false
	}
	return m.buttonSystem.HandlePointer(x, y, pressed, released)
}

// Contains 点是否落在打开的弹窗上
func (m *GamePopupModule) Contains(x, y float64) bool {
	if !m.visible {
		return false
	}
	return utils.Rect{X: config.PopupX, Y: config.PopupY, Width: config.PopupWidth, Height: config.PopupHeight}.Contains(x, y)
}

// HandleCanvasClick 把屏幕坐标换算为画布坐标后交给 SessionSystem
// 落在画布外或弹窗关闭时返回 nil
func (m *GamePopupModule) HandleCanvasClick(screenX, screenY float64) []systems.HitResult {
	if !m.visible {
		return nil
	}
	cx, cy, inside := utils.ScreenToCanvas(screenX, screenY, m.display, float64(m.canvasWidth), float64(m.canvasHeight))
	if !inside {
		return nil
	}
	return m.session.HandleClick(cx, cy)
}

// HUDLines HUD 上显示的各项文字
func (m *GamePopupModule) HUDLines() []string {
	s := m.session.Session()
	high := 0
	if m.highScores != nil {
		high = m.highScores.HighScore()
	}
	return []string{
		fmt.Sprintf("Score: %d", s.Score()),
		fmt.Sprintf("Time: %ds", s.TimeLeft()),
		fmt.Sprintf("Combo: x%d", s.Combo()),
		fmt.Sprintf("Best: %d", high),
		fmt.Sprintf("Speed: %.1fx", s.SpeedMultiplier()),
	}
}

// Draw 绘制弹窗（框架、HUD、画布、按钮）
func (m *GamePopupModule) Draw(screen *ebiten.Image) {
	if !m.visible {
		return
	}

	px, py := float32(config.PopupX), float32(config.PopupY)
	pw, ph := float32(config.PopupWidth), float32(config.PopupHeight)
	vector.DrawFilledRect(screen, px, py+6, pw, ph, color.NRGBA{0, 0, 0, 0x40}, true)
	vector.DrawFilledRect(screen, px, py, pw, ph, color.White, true)
	vector.DrawFilledRect(screen, px, py, pw, float32(config.PopupHeaderHeight), color.NRGBA{0x63, 0x66, 0xF1, 0xFF}, true)
	utils.DrawLabel(screen, "Dermamon Hunt", m.face, config.PopupX+16, config.PopupY+(config.PopupHeaderHeight-26)/2, 2, color.White, utils.AlignLeft)

	// HUD
	lines := m.HUDLines()
	slot := config.CanvasDisplayWidth / float64(len(lines))
	hudY := config.PopupY + config.PopupHeaderHeight + (config.PopupHUDHeight-13*1.5)/2
	for i, line := range lines {
		x := config.CanvasDisplayX + slot*float64(i) + slot/2
		utils.DrawLabel(screen, line, m.face, x, hudY, 1.5, color.NRGBA{0x1F, 0x29, 0x37, 0xFF}, utils.AlignCenter)
	}

	// 画布
	if m.canvas == nil {
		m.canvas = ebiten.NewImage(m.canvasWidth, m.canvasHeight)
	}
	m.canvas.Clear()
	m.renderSystem.Draw(m.canvas, m.session)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(m.display.Width/float64(m.canvasWidth), m.display.Height/float64(m.canvasHeight))
	op.GeoM.Translate(m.display.X, m.display.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(m.canvas, op)
	vector.StrokeRect(screen, float32(m.display.X), float32(m.display.Y), float32(m.display.Width), float32(m.display.Height), 2, color.NRGBA{0x63, 0x66, 0xF1, 0xFF}, true)

	for _, id := range m.buttonEntities {
		m.buttonRenderSystem.DrawButton(screen, id)
	}
}

// Cleanup 销毁按钮实体
func (m *GamePopupModule) Cleanup() {
	for _, id := range m.buttonEntities {
		m.entityManager.DestroyEntity(id)
	}
	m.entityManager.RemoveMarkedEntities()
	m.buttonEntities = nil
}
