package components

// ScorePopupComponent 命中后浮出的得分文字（如 "+30"）
// 生命周期由 LifetimeComponent 控制
type ScorePopupComponent struct {
	Text      string
	RiseSpeed float64 // 上浮速度（像素/秒）
}
