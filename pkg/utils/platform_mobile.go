//go:build mobile

package utils

// IsMobile 移动端构建总是返回 true，拖拽提示改用触摸文案
func IsMobile() bool { return true }
