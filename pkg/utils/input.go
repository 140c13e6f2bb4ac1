// Package utils 提供输入、坐标换算、文字绘制等通用工具
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 本帧是否有新的触摸或左键按下，以及按下位置
// 触摸优先
func IsJustTouchedOrClicked() (bool, int, int) {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return true, x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}

// IsDragModifierPressed 鼠标拖动悬浮按钮需要按住 Ctrl 或 Cmd
func IsDragModifierPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

// DragState 拖拽阶段
type DragState int

const (
	DragStateNone     DragState = iota
	DragStateStarted            // 本帧刚按下
	DragStateDragging           // 按住中
	DragStateEnded              // 本帧刚释放，只持续一帧
)

// PointerSample 一帧的指针采样
type PointerSample struct {
	Pressed  bool // 本帧刚按下
	Down     bool // 当前处于按下状态
	X, Y     int
	Touch    bool
	TouchID  ebiten.TouchID
	Modifier bool // Ctrl/Cmd
}

// DragInfo 当前（或刚结束的）一次拖拽
type DragInfo struct {
	State              DragState
	StartX, StartY     int
	CurrentX, CurrentY int
	Touch              bool
	TouchID            ebiten.TouchID // 鼠标为 -1
	Modifier           bool           // 按下时是否按住了 Ctrl/Cmd
}

// DragManager 跟踪一次按下、移动、释放的过程
//
// 场景每帧调用一次 Update；悬浮按钮模块读取 Info 决定是拖动还是点击。
type DragManager struct {
	info DragInfo
}

func NewDragManager() *DragManager {
	dm := &DragManager{}
	dm.Reset()
	return dm
}

// Update 采样 ebiten 输入并推进状态
func (dm *DragManager) Update() {
	dm.Step(dm.sample())
}

// Step 用一帧采样推进状态
//
// 只在刚按下时开始新的拖拽；释放的那一帧保留最后的位置。
func (dm *DragManager) Step(p PointerSample) {
	switch dm.info.State {
	case DragStateEnded:
		dm.Reset()
		fallthrough
	case DragStateNone:
		if p.Pressed {
			dm.info = DragInfo{
				State:    DragStateStarted,
				StartX:   p.X,
				StartY:   p.Y,
				CurrentX: p.X,
				CurrentY: p.Y,
				Touch:    p.Touch,
				TouchID:  p.TouchID,
				Modifier: p.Modifier,
			}
		}
	case DragStateStarted, DragStateDragging:
		if !p.Down {
			dm.info.State = DragStateEnded
			return
		}
		dm.info.State = DragStateDragging
		dm.info.CurrentX, dm.info.CurrentY = p.X, p.Y
	}
}

// sample 读取本帧输入；拖拽中的触摸按 ID 跟踪同一根手指
func (dm *DragManager) sample() PointerSample {
	mod := IsDragModifierPressed()
	active := dm.info.State == DragStateStarted || dm.info.State == DragStateDragging

	if active && dm.info.Touch {
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if id == dm.info.TouchID {
				x, y := ebiten.TouchPosition(id)
				return PointerSample{Down: true, X: x, Y: y, Touch: true, TouchID: id, Modifier: mod}
			}
		}
		return PointerSample{Touch: true, TouchID: dm.info.TouchID, Modifier: mod}
	}
	if !active {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			x, y := ebiten.TouchPosition(ids[0])
			return PointerSample{Pressed: true, Down: true, X: x, Y: y, Touch: true, TouchID: ids[0], Modifier: mod}
		}
	}

	x, y := ebiten.CursorPosition()
	return PointerSample{
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Down:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:        x,
		Y:        y,
		TouchID:  -1,
		Modifier: mod,
	}
}

// Reset 放弃当前拖拽（例如弹窗接管了这次点击）
func (dm *DragManager) Reset() {
	dm.info = DragInfo{State: DragStateNone, TouchID: -1}
}

func (dm *DragManager) Info() DragInfo { return dm.info }

func (dm *DragManager) State() DragState { return dm.info.State }

func (dm *DragManager) IsDragging() bool  { return dm.info.State == DragStateDragging }
func (dm *DragManager) JustStarted() bool { return dm.info.State == DragStateStarted }
func (dm *DragManager) JustEnded() bool   { return dm.info.State == DragStateEnded }

// Distance 从按下点到当前位置的位移
func (dm *DragManager) Distance() (dx, dy int) {
	return dm.info.CurrentX - dm.info.StartX, dm.info.CurrentY - dm.info.StartY
}
