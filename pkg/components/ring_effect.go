package components

// RingEffectComponent 命中时扩散的水环效果
//
// 先以 GrowRate 扩大到 MaxRadius，然后以 FadeRate 逐帧降低不透明度，
// 不透明度降到 0 以下时实体被移除。
type RingEffectComponent struct {
	Radius    float64
	MaxRadius float64
	GrowRate  float64 // 每帧半径增量
	FadeRate  float64 // 每帧不透明度减量
	Opacity   float64 // 0.0 ~ 1.0
	Growing   bool
}
