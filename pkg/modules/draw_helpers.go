package modules

import (
	"image/color"
	"math"
	"strconv"

	"github.com/gonewx/dermamon/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawStar 以 (cx, cy) 为中心绘制五角星，r 为外接圆半径
// 轮廓用线段连接，内部用内切圆填充
func drawStar(dst *ebiten.Image, cx, cy, r float64, clr color.Color) {
	inner := r * 0.45
	var xs, ys [10]float32
	for i := 0; i < 10; i++ {
		radius := r
		if i%2 == 1 {
			radius = inner
		}
		angle := -math.Pi/2 + float64(i)*math.Pi/5
		xs[i] = float32(cx + math.Cos(angle)*radius)
		ys[i] = float32(cy + math.Sin(angle)*radius)
	}
	for i := 0; i < 10; i++ {
		j := (i + 1) % 10
		vector.StrokeLine(dst, xs[i], ys[i], xs[j], ys[j], 3, clr, true)
		// 每个尖角再连一条到中心的线，填满尖角内部
		vector.StrokeLine(dst, xs[i], ys[i], float32(cx), float32(cy), float32(inner*0.9), clr, true)
	}
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(inner), clr, true)
}

// drawTextButton 绘制不经过 ECS 的简单按钮（模态弹窗内使用）
func drawTextButton(dst *ebiten.Image, face text.Face, r utils.Rect, label string, fill color.NRGBA) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), fill, true)
	cx, cy := r.Center()
	utils.DrawLabel(dst, label, face, cx, cy-6.5, 1, color.White, utils.AlignCenter)
}

// drawMedal 前三名的奖牌圆片
func drawMedal(dst *ebiten.Image, face text.Face, cx, cy float64, rank int) {
	fills := [...]color.NRGBA{
		{0xF5, 0xC5, 0x18, 0xFF},
		{0xC0, 0xC0, 0xC8, 0xFF},
		{0xCD, 0x7F, 0x32, 0xFF},
	}
	if rank < 1 || rank > len(fills) {
		return
	}
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), 11, fills[rank-1], true)
	vector.StrokeCircle(dst, float32(cx), float32(cy), 11, 1.5, color.NRGBA{0x7C, 0x5E, 0x10, 0xFF}, true)
	utils.DrawLabel(dst, strconv.Itoa(rank), face, cx, cy-6.5, 1, color.NRGBA{0x1F, 0x29, 0x37, 0xFF}, utils.AlignCenter)
}
