package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/ecs"
	"github.com/gonewx/dermamon/pkg/game"
	"github.com/gonewx/dermamon/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 画布配色
var (
	skyTopColor    = color.NRGBA{0x87, 0xCE, 0xEB, 0xFF}
	skyBottomColor = color.NRGBA{0xE0, 0xF6, 0xFF, 0xFF}
	glowColor      = color.NRGBA{0x63, 0x66, 0xF1, 0x60}
	bottleColor    = color.NRGBA{0xF5, 0xF0, 0xFA, 0xFF}
	bottleLabel    = color.NRGBA{0x8B, 0x5C, 0xF6, 0xFF}
	capColor       = color.NRGBA{0x4F, 0x46, 0xE5, 0xFF}
	ringColor      = color.NRGBA{0x4F, 0xC3, 0xF7, 0xFF}
	popupColor     = color.NRGBA{0x10, 0xB9, 0x81, 0xFF}
	flashColor     = color.NRGBA{0xFF, 0x6B, 0x6B, 0xFF}
)

// gradientBands 背景渐变的分段数
const gradientBands = 40

// RenderSystem 把画布实体绘制到离屏画布上
//
// 表情符号使用矢量图形近似绘制：目标为带盖的瓶子，粒子按外观分别为水滴、水花和闪光。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	width         float64
	height        float64
	face          text.Face
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, cfg *config.GameplayConfig, face text.Face) *RenderSystem {
	if face == nil {
		face = utils.DefaultFace()
	}
	return &RenderSystem{
		entityManager: em,
		width:         float64(cfg.Canvas.Width),
		height:        float64(cfg.Canvas.Height),
		face:          face,
	}
}

// Draw 绘制整张画布
func (s *RenderSystem) Draw(canvas *ebiten.Image, ss *SessionSystem) {
	s.drawBackground(canvas)

	if info, ok := ss.GameOver(); ok {
		s.drawGameOver(canvas, info)
		return
	}

	s.drawTargets(canvas)
	s.drawRings(canvas)
	s.drawParticles(canvas)
	s.drawPopups(canvas)

	if flash, ok := ss.FlashSystem().ActiveFlash(); ok {
		s.drawFlash(canvas, flash)
	}

	switch ss.Session().Phase() {
	case game.PhasePaused:
		s.drawOverlay(canvas, 0.5)
		utils.DrawLabelWithShadow(canvas, "PAUSED", s.face, s.width/2, s.height/2-26, 4, color.White, utils.AlignCenter)
	case game.PhaseIdle:
		utils.DrawLabelWithShadow(canvas, "Press Start to play", s.face, s.width/2, s.height/2-13, 2, color.White, utils.AlignCenter)
	}
}

func (s *RenderSystem) drawBackground(canvas *ebiten.Image) {
	bandHeight := s.height / gradientBands
	for i := 0; i < gradientBands; i++ {
		t := float64(i) / float64(gradientBands-1)
		clr := lerpColor(skyTopColor, skyBottomColor, t)
		vector.DrawFilledRect(canvas, 0, float32(float64(i)*bandHeight), float32(s.width), float32(bandHeight+1), clr, false)
	}
}

func (s *RenderSystem) drawTargets(canvas *ebiten.Image) {
	targets := ecs.GetEntitiesWith2[*components.DermamonComponent, *components.PositionComponent](s.entityManager)
	for _, id := range targets {
		d, _ := ecs.GetComponent[*components.DermamonComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		drawBottle(canvas, pos.X, pos.Y, d.Size, !d.Hit)
	}
}

// drawBottle 以 (cx, cy) 为中心绘制一个乳液瓶，整体占 size×size
func drawBottle(dst *ebiten.Image, cx, cy, size float64, glow bool) {
	if glow {
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(size*0.55), glowColor, true)
	}

	bodyW := size * 0.5
	bodyH := size * 0.6
	bodyX := cx - bodyW/2
	bodyY := cy - bodyH/2 + size*0.1
	vector.DrawFilledRect(dst, float32(bodyX), float32(bodyY), float32(bodyW), float32(bodyH), bottleColor, true)
	vector.StrokeRect(dst, float32(bodyX), float32(bodyY), float32(bodyW), float32(bodyH), 1.5, capColor, true)
	vector.DrawFilledRect(dst, float32(bodyX), float32(bodyY+bodyH*0.35), float32(bodyW), float32(bodyH*0.3), bottleLabel, true)

	neckW := size * 0.2
	neckH := size * 0.15
	vector.DrawFilledRect(dst, float32(cx-neckW/2), float32(bodyY-neckH), float32(neckW), float32(neckH), capColor, true)
	vector.DrawFilledRect(dst, float32(cx-neckW*0.15), float32(bodyY-neckH-size*0.08), float32(neckW*0.3), float32(size*0.08), capColor, true)
}

func (s *RenderSystem) drawRings(canvas *ebiten.Image) {
	rings := ecs.GetEntitiesWith2[*components.RingEffectComponent, *components.PositionComponent](s.entityManager)
	for _, id := range rings {
		ring, _ := ecs.GetComponent[*components.RingEffectComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if ring.Radius <= 0 || ring.Opacity <= 0 {
			continue
		}

		vector.DrawFilledCircle(canvas, float32(pos.X), float32(pos.Y), float32(ring.Radius), withAlpha(ringColor, ring.Opacity), true)

		// 环上的 5 个水珠
		droplet := withAlpha(color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}, 0.5*ring.Opacity)
		for i := 0; i < 5; i++ {
			angle := 2 * math.Pi / 5 * float64(i)
			dx := math.Cos(angle) * ring.Radius * 0.6
			dy := math.Sin(angle) * ring.Radius * 0.6
			vector.DrawFilledCircle(canvas, float32(pos.X+dx), float32(pos.Y+dy), 5, droplet, true)
		}
	}
}

func (s *RenderSystem) drawParticles(canvas *ebiten.Image) {
	particles := ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](s.entityManager)
	for _, id := range particles {
		p, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if p.Life <= 0 {
			continue
		}
		drawParticleGlyph(canvas, p.Glyph, pos.X, pos.Y, p.Size, p.Life)
	}
}

func drawParticleGlyph(dst *ebiten.Image, glyph components.ParticleGlyph, x, y, size, alpha float64) {
	r := float32(size / 2)
	fx, fy := float32(x), float32(y)
	switch glyph {
	case components.GlyphDroplet:
		clr := withAlpha(color.NRGBA{0x29, 0xB6, 0xF6, 0xFF}, alpha)
		vector.DrawFilledCircle(dst, fx, fy, r*0.7, clr, true)
		vector.StrokeLine(dst, fx, fy-r, fx, fy-r*0.3, r*0.5, clr, true)
	case components.GlyphSplash:
		clr := withAlpha(color.NRGBA{0x81, 0xD4, 0xFA, 0xFF}, alpha)
		vector.DrawFilledCircle(dst, fx-r*0.4, fy, r*0.45, clr, true)
		vector.DrawFilledCircle(dst, fx+r*0.4, fy-r*0.3, r*0.35, clr, true)
	default:
		clr := withAlpha(color.NRGBA{0xFF, 0xD5, 0x4F, 0xFF}, alpha)
		vector.StrokeLine(dst, fx-r, fy, fx+r, fy, 2, clr, true)
		vector.StrokeLine(dst, fx, fy-r, fx, fy+r, 2, clr, true)
	}
}

func (s *RenderSystem) drawPopups(canvas *ebiten.Image) {
	popups := ecs.GetEntitiesWith3[*components.ScorePopupComponent, *components.PositionComponent, *components.LifetimeComponent](s.entityManager)
	for _, id := range popups {
		popup, _ := ecs.GetComponent[*components.ScorePopupComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)

		alpha := 1 - utils.EaseInQuad(lifetime.Progress())
		utils.DrawLabel(canvas, popup.Text, s.face, pos.X, pos.Y-13, 2.5, withAlpha(popupColor, alpha), utils.AlignCenter)
	}
}

func (s *RenderSystem) drawFlash(canvas *ebiten.Image, flash *components.FlashEffectComponent) {
	vector.DrawFilledRect(canvas, 0, 0, float32(s.width), float32(s.height), withAlpha(flashColor, flash.Intensity), false)
	utils.DrawLabelWithShadow(canvas, flash.Label, s.face, s.width/2, s.height/2-20, 3, color.White, utils.AlignCenter)
}

func (s *RenderSystem) drawOverlay(canvas *ebiten.Image, alpha float64) {
	vector.DrawFilledRect(canvas, 0, 0, float32(s.width), float32(s.height), withAlpha(color.NRGBA{0, 0, 0, 0xFF}, alpha), false)
}

func (s *RenderSystem) drawGameOver(canvas *ebiten.Image, info GameOverInfo) {
	s.drawOverlay(canvas, 0.7)
	cx, cy := s.width/2, s.height/2
	utils.DrawLabelWithShadow(canvas, "Game Over!", s.face, cx, cy-50-26, 4, color.White, utils.AlignCenter)
	utils.DrawLabel(canvas, fmt.Sprintf("Final Score: %d", info.Score), s.face, cx, cy+10-20, 3, color.White, utils.AlignCenter)
	utils.DrawLabel(canvas, fmt.Sprintf("High Score: %d", info.HighScore), s.face, cx, cy+50-13, 2, color.White, utils.AlignCenter)
	if info.NewRecord {
		utils.DrawLabel(canvas, "New High Score!", s.face, cx, cy+80-13, 2, popupColor, utils.AlignCenter)
	}
}

// withAlpha 返回不透明度按 alpha (0~1) 缩放后的颜色
func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(float64(c.A) * alpha)
	return c
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(utils.Lerp(float64(a.R), float64(b.R), t)),
		G: uint8(utils.Lerp(float64(a.G), float64(b.G), t)),
		B: uint8(utils.Lerp(float64(a.B), float64(b.B), t)),
		A: 0xFF,
	}
}
