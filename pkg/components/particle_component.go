package components

// ParticleGlyph 粒子的外观种类
type ParticleGlyph int

const (
	// GlyphDroplet 水滴 💧
	GlyphDroplet ParticleGlyph = iota
	// GlyphSplash 水花 💦
	GlyphSplash
	// GlyphSparkle 闪光 ✨
	GlyphSparkle
)

// ParticleGlyphCount 粒子外观种类数量
const ParticleGlyphCount = 3

// String 返回粒子对应的表情符号
func (g ParticleGlyph) String() string {
	switch g {
	case GlyphDroplet:
		return "💧"
	case GlyphSplash:
		return "💦"
	case GlyphSparkle:
		return "✨"
	default:
		return "?"
	}
}

// ParticleComponent 命中时迸发的单个粒子
//
// 位置由 PositionComponent 保存。每帧:
//
//	pos += velocity
//	VelocityY += Gravity
//	Life -= Decay
//
// Life 降到 0 及以下时粒子被移除，Life 同时作为绘制透明度。
type ParticleComponent struct {
	VelocityX float64
	VelocityY float64
	Gravity   float64
	Life      float64
	Decay     float64
	Size      float64
	Glyph     ParticleGlyph
}
