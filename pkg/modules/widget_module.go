package modules

import (
	"image/color"
	"log"
	"math"

	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/game"
	"github.com/gonewx/dermamon/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// tapSlop 触摸按下后移动不超过该距离（像素）仍视为轻点
const tapSlop = 8.0

// FloatingWidget 悬浮按钮
type FloatingWidget struct {
	ID       string
	Label    string
	Fill     color.NRGBA
	X, Y     float64 // 左上角（屏幕坐标）
	Size     float64
	Disabled bool // 禁用时不响应点击，但仍可拖拽
}

// Bounds 悬浮按钮的屏幕矩形
func (w *FloatingWidget) Bounds() utils.Rect {
	return utils.Rect{X: w.X, Y: w.Y, Width: w.Size, Height: w.Size}
}

// WidgetStore 悬浮按钮位置的持久化
// *game.LocalStore 实现了该接口
type WidgetStore interface {
	WidgetPosition(widgetID string) (game.WidgetPosition, bool)
	SaveWidgetPosition(widgetID string, pos game.WidgetPosition) error
}

// WidgetModule 可拖拽的悬浮按钮
//
// 交互规则：
//   - 鼠标按下时按住 Ctrl/Cmd：开始拖拽
//   - 鼠标按下未按修饰键：激活按钮（触发 onActivate）
//   - 触摸按下：开始拖拽；抬起时移动距离很小则视为轻点并激活
//
// 拖拽中按钮被限制在窗口内并与边缘保持 config.WidgetMargin，
// 松开时按按钮 ID 保存位置，下次启动时恢复。
type WidgetModule struct {
	store   WidgetStore
	widgets []*FloatingWidget

	windowWidth  float64
	windowHeight float64

	// 当前拖拽
	dragging     *FloatingWidget
	grabDX       float64
	grabDY       float64
	touchPending bool    // 触摸拖拽尚未超出 tapSlop
	startX       float64 // 按下位置
	startY       float64

	onActivate func(widgetID string)
	face       text.Face
}

// NewWidgetModule 创建悬浮按钮模块
//
// 参数:
//   - store: 位置持久化，可为 nil（不保存）
//   - windowWidth, windowHeight: 窗口逻辑尺寸
//   - widgets: 按钮列表，X/Y 为默认位置；有保存的位置时覆盖
//   - onActivate: 按钮被点击时的回调
//
// 返回:
//   - *WidgetModule: 新创建的模块实例
func NewWidgetModule(store WidgetStore, windowWidth, windowHeight float64, widgets []*FloatingWidget, onActivate func(widgetID string)) *WidgetModule {
	m := &WidgetModule{
		store:        store,
		widgets:      widgets,
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
		onActivate:   onActivate,
		face:         utils.DefaultFace(),
	}

	restored := 0
	for _, w := range widgets {
		if w.Size <= 0 {
			w.Size = config.WidgetSize
		}
		if store != nil {
			if pos, ok := store.WidgetPosition(w.ID); ok {
				w.X, w.Y = pos.X, pos.Y
				restored++
			}
		}
		// 窗口尺寸可能变化，恢复的位置也要重新限制
		w.X, w.Y = utils.ClampToBounds(w.X, w.Y, w.Size, w.Size, windowWidth, windowHeight, config.WidgetMargin)
	}

	log.Printf("[WidgetModule] Initialized with %d widgets (%d restored positions)", len(widgets), restored)
	return m
}

// Widget 按 ID 查找悬浮按钮
func (m *WidgetModule) Widget(id string) *FloatingWidget {
	for _, w := range m.widgets {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// IsDragging 是否正在拖拽某个按钮
func (m *WidgetModule) IsDragging() bool {
	return m.dragging != nil && !m.touchPending
}

// Update 根据拖拽管理器的状态分发指针事件
func (m *WidgetModule) Update(dm *utils.DragManager) bool {
	info := dm.Info()
	switch {
	case dm.JustStarted():
		return m.PointerDown(float64(info.StartX), float64(info.StartY), info.Modifier, info.Touch)
	case dm.IsDragging():
		m.PointerMove(float64(info.CurrentX), float64(info.CurrentY))
		return m.dragging != nil
	case dm.JustEnded():
		return m.PointerUp()
	}
	return false
}

// PointerDown 处理指针按下，返回事件是否被悬浮按钮消费
func (m *WidgetModule) PointerDown(x, y float64, modifier, touch bool) bool {
	w := m.widgetAt(x, y)
	if w == nil {
		return false
	}

	if modifier || touch {
		m.dragging = w
		m.grabDX = x - w.X
		m.grabDY = y - w.Y
		m.touchPending = touch && !modifier
		m.startX, m.startY = x, y
		return true
	}

	m.activate(w)
	return true
}

// PointerMove 拖拽中移动按钮
func (m *WidgetModule) PointerMove(x, y float64) {
	if m.dragging == nil {
		return
	}
	if m.touchPending {
		if math.Hypot(x-m.startX, y-m.startY) <= tapSlop {
			return
		}
		m.touchPending = false
	}
	w := m.dragging
	w.X, w.Y = utils.ClampToBounds(x-m.grabDX, y-m.grabDY, w.Size, w.Size, m.windowWidth, m.windowHeight, config.WidgetMargin)
}

// PointerUp 结束拖拽并保存位置；触摸轻点视为激活
func (m *WidgetModule) PointerUp() bool {
	w := m.dragging
	if w == nil {
		return false
	}
	tap := m.touchPending
	m.dragging = nil
	m.touchPending = false

	if tap {
		m.activate(w)
		return true
	}

	if m.store != nil {
		if err := m.store.SaveWidgetPosition(w.ID, game.WidgetPosition{X: w.X, Y: w.Y}); err != nil {
			log.Printf("[WidgetModule] Warning: Failed to save position of %s: %v", w.ID, err)
		}
	}
	log.Printf("[WidgetModule] %s moved to (%.0f, %.0f)", w.ID, w.X, w.Y)
	return true
}

func (m *WidgetModule) activate(w *FloatingWidget) {
	if w.Disabled {
		log.Printf("[WidgetModule] %s is disabled", w.ID)
		return
	}
	if m.onActivate != nil {
		m.onActivate(w.ID)
	}
}

// widgetAt 返回包含该点的最上层按钮（后绘制的在上层）
func (m *WidgetModule) widgetAt(x, y float64) *FloatingWidget {
	for i := len(m.widgets) - 1; i >= 0; i-- {
		if m.widgets[i].Bounds().Contains(x, y) {
			return m.widgets[i]
		}
	}
	return nil
}

// Draw 绘制悬浮按钮
func (m *WidgetModule) Draw(screen *ebiten.Image) {
	for _, w := range m.widgets {
		cx, cy := w.Bounds().Center()
		r := float32(w.Size / 2)
		fill := w.Fill
		if w.Disabled {
			fill = color.NRGBA{0x9C, 0xA3, 0xAF, 0xFF}
		}
		if w == m.dragging && !m.touchPending {
			vector.DrawFilledCircle(screen, float32(cx), float32(cy), r+6, color.NRGBA{0xFF, 0xFF, 0xFF, 0x80}, true)
		}
		vector.DrawFilledCircle(screen, float32(cx), float32(cy+3), r, color.NRGBA{0, 0, 0, 0x40}, true)
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), r, fill, true)
		utils.DrawLabel(screen, w.Label, m.face, cx, cy-13, 2, color.White, utils.AlignCenter)
	}
}
