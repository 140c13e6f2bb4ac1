package components

// FlashEffectComponent 全屏闪烁效果组件
// 用于速度升级时的红色闪屏提示
type FlashEffectComponent struct {
	// Duration 闪烁持续时间（秒）
	Duration float64

	// Elapsed 已经过的时间（秒）
	Elapsed float64

	// Intensity 闪烁强度（0.0 - 1.0），作为覆盖层的不透明度
	Intensity float64

	// Label 闪屏中央显示的文字
	Label string

	// IsActive 是否激活（用于临时禁用效果）
	IsActive bool
}
