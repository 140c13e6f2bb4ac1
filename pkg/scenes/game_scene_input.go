package scenes

import (
	"github.com/gonewx/dermamon/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ratingKeys 反馈弹窗中 1~5 星的快捷键
var ratingKeys = map[ebiten.Key]int{
	ebiten.Key1: 1,
	ebiten.Key2: 2,
	ebiten.Key3: 3,
	ebiten.Key4: 4,
	ebiten.Key5: 5,
}

func (s *GameScene) handleKeyboard() {
	if s.feedback.CommentsFocused() {
		s.feedback.TypeComment(ebiten.AppendInputChars(nil))
	}
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		s.handleKey(key)
	}
}

// handleKey 处理一次按键
// 反馈弹窗显示时只接受评分相关的按键；留言框有焦点时数字键作为文字输入
func (s *GameScene) handleKey(key ebiten.Key) {
	if s.feedback.IsVisible() {
		if rating, ok := ratingKeys[key]; ok && !s.feedback.CommentsFocused() {
			s.feedback.SelectRating(rating)
			return
		}
		switch key {
		case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
			s.feedback.Submit()
		case ebiten.KeyEscape:
			s.feedback.Skip()
		case ebiten.KeyTab:
			s.feedback.FocusComments(!s.feedback.CommentsFocused())
		case ebiten.KeyBackspace:
			s.feedback.Backspace()
		}
		return
	}

	switch key {
	case ebiten.KeyF3:
		s.showDebug = !s.showDebug
	case ebiten.KeyH:
		if s.help != nil {
			s.help.Toggle()
		}
	case ebiten.KeyL:
		s.leaderboardPanel.Toggle()
	case ebiten.KeyEscape:
		switch {
		case s.help != nil && s.help.IsActive():
			s.help.Hide()
		case s.popup != nil && s.popup.IsVisible():
			s.popup.Close()
		}
	case ebiten.KeySpace:
		if s.popup == nil || !s.popup.IsVisible() {
			return
		}
		if s.sessionSystem.Session().IsRunning() {
			s.sessionSystem.TogglePause()
		} else {
			s.sessionSystem.Start()
		}
	case ebiten.KeyR:
		if s.popup != nil && s.popup.IsVisible() {
			s.sessionSystem.Reset()
		}
	}
}

// handlePointer 按层级分发指针事件，上层消费后下层不再处理：
//  1. 反馈弹窗（模态）
//  2. 帮助面板（只有确认按钮可点）
//  3. 悬浮按钮（点击或拖拽）
//  4. 游戏画布与弹窗按钮
func (s *GameScene) handlePointer() {
	s.dragManager.Update()

	pressed, px, py := utils.IsJustTouchedOrClicked()

	if s.feedback.IsVisible() {
		if pressed {
			s.feedback.HandleClick(float64(px), float64(py))
		}
		s.dragManager.Reset()
		return
	}

	if s.help != nil && s.help.IsActive() {
		s.dragManager.Reset()
		s.buttonSystem.Update(0)
		return
	}

	if s.widgets.Update(s.dragManager) {
		return
	}

	if pressed {
		s.handleCanvasPress(float64(px), float64(py))
	}

	s.buttonSystem.Update(0)
}

// handleCanvasPress 弹窗显示时把按下位置交给画布命中检测
func (s *GameScene) handleCanvasPress(x, y float64) {
	if s.popup == nil || !s.popup.IsVisible() {
		return
	}
	s.popup.HandleCanvasClick(x, y)
}
