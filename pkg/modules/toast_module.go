package modules

import (
	"image/color"
	"log"

	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ToastKind 提示类型，决定背景色
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// Toast 一条提示消息
type Toast struct {
	Message   string
	Kind      ToastKind
	Remaining float64 // 剩余显示时间（秒）
}

// maxToasts 同时显示的提示上限，超出时丢弃最早的一条
const maxToasts = 4

var (
	toastSuccessColor = color.NRGBA{0x10, 0xB9, 0x81, 0xF0}
	toastErrorColor   = color.NRGBA{0xEF, 0x44, 0x44, 0xF0}
)

// ToastModule 右上角的临时提示消息
//
// 每条消息显示固定时长后自动消失，新消息排在最下方。
type ToastModule struct {
	toasts   []Toast
	duration float64
	face     text.Face

	windowWidth float64
}

// NewToastModule 创建提示模块
// duration <= 0 时使用 config.ToastDuration
func NewToastModule(duration float64, windowWidth float64, face text.Face) *ToastModule {
	if duration <= 0 {
		duration = config.ToastDuration
	}
	if face == nil {
		face = utils.DefaultFace()
	}
	return &ToastModule{
		duration:    duration,
		face:        face,
		windowWidth: windowWidth,
	}
}

// Show 显示一条成功提示
func (m *ToastModule) Show(message string) {
	m.push(message, ToastSuccess)
}

// ShowError 显示一条错误提示
func (m *ToastModule) ShowError(message string) {
	m.push(message, ToastError)
}

func (m *ToastModule) push(message string, kind ToastKind) {
	log.Printf("[ToastModule] %s", message)
	m.toasts = append(m.toasts, Toast{Message: message, Kind: kind, Remaining: m.duration})
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
}

// Update 递减剩余时间并移除过期消息
func (m *ToastModule) Update(dt float64) {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		t.Remaining -= dt
		if t.Remaining > 0 {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// Active 当前显示中的消息（从旧到新）
func (m *ToastModule) Active() []Toast {
	return m.toasts
}

// Draw 绘制所有提示
func (m *ToastModule) Draw(screen *ebiten.Image) {
	const (
		width   = 360.0
		height  = 36.0
		spacing = 8.0
		top     = 16.0
	)
	x := m.windowWidth - width - 16
	for i, t := range m.toasts {
		y := top + float64(i)*(height+spacing)
		bg := toastSuccessColor
		if t.Kind == ToastError {
			bg = toastErrorColor
		}
		// 最后半秒淡出
		alpha := 1.0
		if t.Remaining < 0.5 {
			alpha = t.Remaining / 0.5
		}
		bg.A = uint8(float64(bg.A) * alpha)
		vector.DrawFilledRect(screen, float32(x), float32(y), width, height, bg, true)

		lines := utils.WrapText(t.Message, m.face, width-24)
		utils.DrawLabel(screen, lines[0], m.face, x+12, y+(height-13)/2, 1, color.NRGBA{0xFF, 0xFF, 0xFF, uint8(255 * alpha)}, utils.AlignLeft)
	}
}
