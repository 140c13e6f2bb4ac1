package components

// PositionComponent 实体中心在画布逻辑坐标系中的位置
type PositionComponent struct {
	X, Y float64
}
