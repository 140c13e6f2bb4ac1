package modules

import (
	"log"

	"github.com/gonewx/dermamon/pkg/game"
	"github.com/gonewx/dermamon/pkg/utils"
)

// 首次启动时的拖拽提示
const (
	DragTipMessage      = "Tip: Hold Ctrl (or Cmd on Mac) and drag the chat/game buttons to move them!"
	DragTipMessageTouch = "Tip: Drag the chat/game buttons to move them!"
)

// DragTipModule 首次启动后延迟显示一次拖拽提示
type DragTipModule struct {
	store   FlagStore
	toasts  *ToastModule
	delay   float64
	elapsed float64
	done    bool
}

// NewDragTipModule 创建拖拽提示模块
// 已看过提示时模块直接处于完成状态
func NewDragTipModule(store FlagStore, toasts *ToastModule, delay float64) *DragTipModule {
	return &DragTipModule{
		store:  store,
		toasts: toasts,
		delay:  delay,
		done:   store.Flag(game.FlagSeenDragTip),
	}
}

// Done 提示是否已经显示过
func (m *DragTipModule) Done() bool {
	return m.done
}

// Update 计时，到期后显示提示并记录标志
func (m *DragTipModule) Update(dt float64) {
	if m.done {
		return
	}
	m.elapsed += dt
	if m.elapsed < m.delay {
		return
	}
	m.done = true
	if utils.IsMobile() {
		m.toasts.Show(DragTipMessageTouch)
	} else {
		m.toasts.Show(DragTipMessage)
	}
	if err := m.store.SetFlag(game.FlagSeenDragTip, true); err != nil {
		log.Printf("[DragTipModule] Warning: Failed to save tip flag: %v", err)
	}
}
