package components

// DermamonComponent 标记一个可点击的目标（Dermamon）
//
// 目标以 Size 为直径的圆形区域参与命中检测，
// 命中后 Hit 置为 true 并在本帧末尾被销毁，避免同一目标被重复计分。
type DermamonComponent struct {
	Size  float64 // 固定尺寸（像素），命中半径为 Size/2
	Glyph string  // 显示的表情符号，如 "🧴"
	Hit   bool    // 是否已被命中
}
