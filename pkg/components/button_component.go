package components

import "image/color"

// ButtonComponent 按钮组件（ECS 架构）
// 包含按钮的外观、文字、状态和回调
//
// 按钮使用纯色圆角矩形绘制，不依赖图片资源。
// 位置由同一实体上的 PositionComponent 给出（左上角，屏幕坐标）。
type ButtonComponent struct {
	// Text 按钮上显示的文字
	Text string
	// TextScale 文字缩放（基础字体为 7x13 像素）
	TextScale float64

	// Fill 正常状态的背景色，悬停和按下时自动加深
	Fill color.NRGBA
	// TextColor 文字颜色
	TextColor color.NRGBA

	// Width, Height 按钮尺寸（像素）
	Width  float64
	Height float64

	// State 当前交互状态（Normal/Hover/Clicked/Disabled）
	State UIState
	// Enabled 是否启用（禁用时不响应点击，并以灰色绘制）
	Enabled bool
	// Visible 是否显示；隐藏的按钮既不绘制也不响应点击
	Visible bool

	// OnClick 点击回调函数（鼠标释放时触发）
	OnClick func()
}

// UIState 按钮的交互状态，由 ButtonSystem 每帧更新
type UIState int

const (
	UINormal  UIState = iota
	UIHovered         // 指针悬停
	UIClicked         // 按下未释放
	UIDisabled
)
