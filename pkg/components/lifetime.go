package components

// LifetimeComponent 限时存在的实体（得分浮字）
// 到期后由 LifetimeSystem 移除
type LifetimeComponent struct {
	Duration float64 // 总时长（秒）
	Elapsed  float64 // 已存在时间（秒）
}

// Progress 返回 [0, 1] 的进度，Duration 为 0 时视为已结束
func (l *LifetimeComponent) Progress() float64 {
	if l.Duration <= 0 {
		return 1
	}
	if p := l.Elapsed / l.Duration; p < 1 {
		return p
	}
	return 1
}

// Expired 是否已到期
func (l *LifetimeComponent) Expired() bool {
	return l.Elapsed >= l.Duration
}
