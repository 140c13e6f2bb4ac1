package utils

// 缓动函数接受进度 t ∈ [0, 1]，返回缓动后的进度。
// 用于浮字、光环等特效的淡出曲线。

// EaseInQuad 二次方缓入：开始慢，结束快
// 浮字前半段几乎不透明，临近消失时才快速变淡
func EaseInQuad(t float64) float64 {
	t = Clamp01(t)
	return t * t
}

// Lerp 在 a 和 b 之间线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把进度限制在 [0, 1]
func Clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
