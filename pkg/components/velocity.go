package components

// VelocityComponent 实体速度（像素/帧，以 60 TPS 为基准）
type VelocityComponent struct {
	VX, VY float64
}
