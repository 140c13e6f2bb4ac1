package modules

import (
	"image/color"
	"log"
	"unicode"

	"github.com/gonewx/dermamon/pkg/game"
	"github.com/gonewx/dermamon/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// MaxRating 星级评分上限
const MaxRating = 5

// MaxCommentLength 留言最多字符数
const MaxCommentLength = 200

// FlagStore 一次性标志的持久化
// *game.LocalStore 实现了该接口
type FlagStore interface {
	Flag(name string) bool
	SetFlag(name string, value bool) error
}

// 反馈弹窗布局（屏幕坐标）
const (
	feedbackWidth        = 440.0
	feedbackHeight       = 330.0
	starSize             = 44.0
	starSpacing          = 12.0
	feedbackButtonWidth  = 120.0
	feedbackButtonHeight = 36.0
	commentBoxHeight     = 56.0
	commentVisibleRunes  = 46
)

// FeedbackModule 离开前的评分弹窗
//
// 只在用户从未提交或跳过过反馈时显示：
//   - 关闭窗口时由场景调用 Show，返回 true 表示需要推迟退出
//   - 使用满 autoDelay 秒后自动弹出一次
//
// 提交或跳过都会写入 feedbackGiven 标志，之后不再弹出。
// 留言框获得焦点后按键输入写入留言，此时数字键不再选择星级。
type FeedbackModule struct {
	store  FlagStore
	toasts *ToastModule

	visible   bool
	given     bool
	rating    int
	comments  []rune
	typing    bool
	elapsed   float64
	autoDelay float64

	onClosed func()

	windowWidth  float64
	windowHeight float64
	face         text.Face
}

// NewFeedbackModule 创建反馈弹窗模块
//
// 参数:
//   - store: 标志持久化
//   - toasts: 提交后的感谢提示，可为 nil
//   - autoDelay: 自动弹出的延迟（秒），<= 0 表示不自动弹出
//   - windowWidth, windowHeight: 窗口逻辑尺寸
//   - onClosed: 提交或跳过后回调（例如继续退出流程），可为 nil
func NewFeedbackModule(store FlagStore, toasts *ToastModule, autoDelay, windowWidth, windowHeight float64, onClosed func()) *FeedbackModule {
	m := &FeedbackModule{
		store:        store,
		toasts:       toasts,
		autoDelay:    autoDelay,
		onClosed:     onClosed,
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
		face:         utils.DefaultFace(),
	}
	m.given = store.Flag(game.FlagFeedbackGiven)
	log.Printf("[FeedbackModule] Initialized (feedback given: %v)", m.given)
	return m
}

// Pending 是否还需要收集反馈
func (m *FeedbackModule) Pending() bool {
	return !m.given
}

// IsVisible 弹窗是否显示中
func (m *FeedbackModule) IsVisible() bool {
	return m.visible
}

// Rating 当前选择的星级，0 表示未选择
func (m *FeedbackModule) Rating() int {
	return m.rating
}

// Comments 当前留言
func (m *FeedbackModule) Comments() string {
	return string(m.comments)
}

// CommentsFocused 留言框是否接收输入
func (m *FeedbackModule) CommentsFocused() bool {
	return m.visible && m.typing
}

// FocusComments 设置留言框焦点，弹窗隐藏时无效
func (m *FeedbackModule) FocusComments(focused bool) {
	if !m.visible {
		return
	}
	m.typing = focused
}

// TypeComment 追加输入的字符，忽略控制字符，超出 MaxCommentLength 的部分丢弃
func (m *FeedbackModule) TypeComment(chars []rune) {
	if !m.CommentsFocused() {
		return
	}
	for _, r := range chars {
		if len(m.comments) >= MaxCommentLength {
			return
		}
		if unicode.IsPrint(r) {
			m.comments = append(m.comments, r)
		}
	}
}

// Backspace 删除留言的最后一个字符
func (m *FeedbackModule) Backspace() {
	if !m.CommentsFocused() || len(m.comments) == 0 {
		return
	}
	m.comments = m.comments[:len(m.comments)-1]
}

// Show 显示弹窗；已反馈过时不显示并返回 false
func (m *FeedbackModule) Show() bool {
	if m.given {
		return false
	}
	if !m.visible {
		m.visible = true
		m.rating = 0
		m.comments = nil
		m.typing = false
		log.Printf("[FeedbackModule] Prompt shown")
	}
	return true
}

// SelectRating 选择星级，超出 1..MaxRating 的值被忽略
func (m *FeedbackModule) SelectRating(rating int) {
	if rating < 1 || rating > MaxRating {
		return
	}
	m.rating = rating
}

// Submit 提交评分；未选择星级时返回 false 并保持弹窗
func (m *FeedbackModule) Submit() bool {
	if !m.visible || m.rating == 0 {
		return false
	}
	log.Printf("[FeedbackModule] Feedback submitted: rating=%d, comments=%q", m.rating, string(m.comments))
	if m.toasts != nil {
		m.toasts.Show("Thank you for your feedback!")
	}
	m.close()
	return true
}

// Skip 跳过反馈
func (m *FeedbackModule) Skip() {
	if !m.visible {
		return
	}
	log.Printf("[FeedbackModule] Feedback skipped")
	m.close()
}

func (m *FeedbackModule) close() {
	m.visible = false
	m.typing = false
	m.given = true
	if err := m.store.SetFlag(game.FlagFeedbackGiven, true); err != nil {
		log.Printf("[FeedbackModule] Warning: Failed to save feedback flag: %v", err)
	}
	if m.onClosed != nil {
		m.onClosed()
	}
}

// Update 累计使用时间，到达 autoDelay 时自动弹出
func (m *FeedbackModule) Update(dt float64) {
	if m.given || m.visible || m.autoDelay <= 0 {
		return
	}
	m.elapsed += dt
	if m.elapsed >= m.autoDelay {
		m.Show()
	}
}

// HandleClick 处理弹窗内的点击
// 弹窗显示时消费所有点击（模态），返回是否消费
func (m *FeedbackModule) HandleClick(x, y float64) bool {
	if !m.visible {
		return false
	}
	if m.commentRect().Contains(x, y) {
		m.typing = true
		return true
	}
	m.typing = false
	for i := 1; i <= MaxRating; i++ {
		if m.starRect(i).Contains(x, y) {
			m.SelectRating(i)
			return true
		}
	}
	if m.submitRect().Contains(x, y) {
		m.Submit()
		return true
	}
	if m.skipRect().Contains(x, y) {
		m.Skip()
	}
	return true
}

func (m *FeedbackModule) panelRect() utils.Rect {
	return utils.Rect{
		X:      (m.windowWidth - feedbackWidth) / 2,
		Y:      (m.windowHeight - feedbackHeight) / 2,
		Width:  feedbackWidth,
		Height: feedbackHeight,
	}
}

func (m *FeedbackModule) starRect(rating int) utils.Rect {
	p := m.panelRect()
	rowWidth := MaxRating*starSize + (MaxRating-1)*starSpacing
	x := p.X + (p.Width-rowWidth)/2 + float64(rating-1)*(starSize+starSpacing)
	return utils.Rect{X: x, Y: p.Y + 90, Width: starSize, Height: starSize}
}

func (m *FeedbackModule) commentRect() utils.Rect {
	p := m.panelRect()
	return utils.Rect{X: p.X + 32, Y: p.Y + 160, Width: p.Width - 64, Height: commentBoxHeight}
}

func (m *FeedbackModule) submitRect() utils.Rect {
	p := m.panelRect()
	return utils.Rect{X: p.X + p.Width/2 - feedbackButtonWidth - 10, Y: p.Y + p.Height - feedbackButtonHeight - 24, Width: feedbackButtonWidth, Height: feedbackButtonHeight}
}

func (m *FeedbackModule) skipRect() utils.Rect {
	p := m.panelRect()
	return utils.Rect{X: p.X + p.Width/2 + 10, Y: p.Y + p.Height - feedbackButtonHeight - 24, Width: feedbackButtonWidth, Height: feedbackButtonHeight}
}

// Draw 绘制遮罩和弹窗
func (m *FeedbackModule) Draw(screen *ebiten.Image) {
	if !m.visible {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, float32(m.windowWidth), float32(m.windowHeight), color.NRGBA{0, 0, 0, 0x99}, false)

	p := m.panelRect()
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), color.White, true)
	utils.DrawLabel(screen, "Before you go...", m.face, p.X+p.Width/2, p.Y+24, 2, color.NRGBA{0x1F, 0x29, 0x37, 0xFF}, utils.AlignCenter)
	utils.DrawLabel(screen, "How would you rate your experience?", m.face, p.X+p.Width/2, p.Y+60, 1, color.NRGBA{0x6B, 0x72, 0x80, 0xFF}, utils.AlignCenter)

	for i := 1; i <= MaxRating; i++ {
		r := m.starRect(i)
		cx, cy := r.Center()
		clr := color.NRGBA{0xD1, 0xD5, 0xDB, 0xFF}
		if i <= m.rating {
			clr = color.NRGBA{0xFB, 0xBF, 0x24, 0xFF}
		}
		drawStar(screen, cx, cy, starSize/2, clr)
	}

	m.drawComments(screen)

	submitFill := color.NRGBA{0x63, 0x66, 0xF1, 0xFF}
	if m.rating == 0 {
		submitFill = color.NRGBA{0xB0, 0xB0, 0xB8, 0xFF}
	}
	drawTextButton(screen, m.face, m.submitRect(), "Submit", submitFill)
	drawTextButton(screen, m.face, m.skipRect(), "Skip", color.NRGBA{0x9C, 0xA3, 0xAF, 0xFF})
}

// drawComments 绘制留言框，只显示末尾 commentVisibleRunes 个字符
func (m *FeedbackModule) drawComments(screen *ebiten.Image) {
	r := m.commentRect()
	border := color.NRGBA{0xD1, 0xD5, 0xDB, 0xFF}
	if m.typing {
		border = color.NRGBA{0x63, 0x66, 0xF1, 0xFF}
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), color.NRGBA{0xF9, 0xFA, 0xFB, 0xFF}, true)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 2, border, true)

	label := string(m.comments)
	clr := color.Color(color.NRGBA{0x1F, 0x29, 0x37, 0xFF})
	switch {
	case len(m.comments) > commentVisibleRunes:
		label = "..." + string(m.comments[len(m.comments)-commentVisibleRunes+3:])
	case len(m.comments) == 0 && !m.typing:
		label = "Any comments? (click or Tab to type)"
		clr = color.NRGBA{0x9C, 0xA3, 0xAF, 0xFF}
	}
	if m.typing {
		label += "_"
	}
	utils.DrawLabel(screen, label, m.face, r.X+10, r.Y+r.Height/2-7, 1, clr, utils.AlignLeft)
}
