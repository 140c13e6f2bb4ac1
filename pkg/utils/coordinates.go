// Package utils 提供游戏开发中常用的工具函数
//
// coordinates.go 提供屏幕坐标与画布坐标之间的转换。
//
// # 坐标系统概述
//
//   - **屏幕坐标**：相对于游戏窗口左上角，所有指针输入使用此坐标
//   - **画布坐标**：相对于游戏画布左上角，尺寸为画布逻辑大小（如 600×400）
//
// 画布以离屏图片绘制，再缩放到弹窗内的显示矩形中。显示尺寸与逻辑尺寸不同，
// 点击位置需要按比例换算：
//
//	canvasX = (screenX - rect.X) × logicalWidth  / rect.Width
//	canvasY = (screenY - rect.Y) × logicalHeight / rect.Height
package utils

// Rect 屏幕上的矩形区域（左上角 + 尺寸）
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains 判断点是否在矩形内（含左上边界，不含右下边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Center 矩形中心
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// ScreenToCanvas 将屏幕坐标换算为画布逻辑坐标
//
// # 参数
//
//   - screenX, screenY: 指针的屏幕坐标
//   - display: 画布在屏幕上的显示矩形
//   - logicalWidth, logicalHeight: 画布逻辑尺寸
//
// # 返回值
//
//   - canvasX, canvasY: 画布坐标
//   - inside: 点是否落在显示矩形内
func ScreenToCanvas(screenX, screenY float64, display Rect, logicalWidth, logicalHeight float64) (canvasX, canvasY float64, inside bool) {
	if display.Width <= 0 || display.Height <= 0 {
		return 0, 0, false
	}
	canvasX = (screenX - display.X) * logicalWidth / display.Width
	canvasY = (screenY - display.Y) * logicalHeight / display.Height
	return canvasX, canvasY, display.Contains(screenX, screenY)
}

// ClampToBounds 把尺寸为 (w, h) 的元素左上角限制在边界内，并与边缘保持 margin
//
// 边界放不下元素时贴靠 margin 处的左上边。
func ClampToBounds(x, y, w, h, boundsWidth, boundsHeight, margin float64) (float64, float64) {
	maxX := boundsWidth - w - margin
	maxY := boundsHeight - h - margin
	if x > maxX {
		x = maxX
	}
	if y > maxY {
		y = maxY
	}
	if x < margin {
		x = margin
	}
	if y < margin {
		y = margin
	}
	return x, y
}
