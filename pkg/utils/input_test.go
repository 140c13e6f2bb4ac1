package utils

import "testing"

func TestDragManagerInitialState(t *testing.T) {
	dm := NewDragManager()

	if dm.State() != DragStateNone {
		t.Errorf("State() = %v, want DragStateNone", dm.State())
	}
	if dm.IsDragging() || dm.JustStarted() || dm.JustEnded() {
		t.Error("new manager should be idle")
	}
	if dm.Info().TouchID != -1 {
		t.Errorf("TouchID = %d, want -1", dm.Info().TouchID)
	}
}

// TestDragManagerStep 按帧模拟一次鼠标拖拽
func TestDragManagerStep(t *testing.T) {
	dm := NewDragManager()

	steps := []struct {
		name      string
		sample    PointerSample
		wantState DragState
		wantX     int
		wantY     int
		wantDx    int
		wantDy    int
	}{
		{name: "hover", sample: PointerSample{X: 5, Y: 5}, wantState: DragStateNone},
		{name: "press", sample: PointerSample{Pressed: true, Down: true, X: 100, Y: 200, TouchID: -1, Modifier: true}, wantState: DragStateStarted, wantX: 100, wantY: 200},
		{name: "move", sample: PointerSample{Down: true, X: 130, Y: 210}, wantState: DragStateDragging, wantX: 130, wantY: 210, wantDx: 30, wantDy: 10},
		{name: "move again", sample: PointerSample{Down: true, X: 150, Y: 280}, wantState: DragStateDragging, wantX: 150, wantY: 280, wantDx: 50, wantDy: 80},
		{name: "release keeps last position", sample: PointerSample{X: 999, Y: 999}, wantState: DragStateEnded, wantX: 150, wantY: 280, wantDx: 50, wantDy: 80},
		{name: "idle after end", sample: PointerSample{X: 999, Y: 999}, wantState: DragStateNone},
	}

	for _, step := range steps {
		dm.Step(step.sample)
		info := dm.Info()
		if info.State != step.wantState {
			t.Fatalf("%s: State = %v, want %v", step.name, info.State, step.wantState)
		}
		if step.wantState == DragStateNone {
			continue
		}
		if info.CurrentX != step.wantX || info.CurrentY != step.wantY {
			t.Errorf("%s: current = (%d, %d), want (%d, %d)", step.name, info.CurrentX, info.CurrentY, step.wantX, step.wantY)
		}
		if dx, dy := dm.Distance(); dx != step.wantDx || dy != step.wantDy {
			t.Errorf("%s: Distance() = (%d, %d), want (%d, %d)", step.name, dx, dy, step.wantDx, step.wantDy)
		}
		if !info.Modifier {
			t.Errorf("%s: modifier captured at press should be kept", step.name)
		}
	}
}

// TestDragManagerTap 按下后同一帧内释放，下一帧即结束
func TestDragManagerTap(t *testing.T) {
	dm := NewDragManager()
	dm.Step(PointerSample{Pressed: true, Down: true, X: 10, Y: 20, Touch: true, TouchID: 3})
	if !dm.JustStarted() || !dm.Info().Touch || dm.Info().TouchID != 3 {
		t.Fatalf("Info() = %+v, want a started touch", dm.Info())
	}

	dm.Step(PointerSample{Touch: true, TouchID: 3})
	if !dm.JustEnded() {
		t.Fatalf("State() = %v, want DragStateEnded", dm.State())
	}
	if dx, dy := dm.Distance(); dx != 0 || dy != 0 {
		t.Errorf("Distance() = (%d, %d), want (0, 0)", dx, dy)
	}
}

// TestDragManagerHeldAfterReset 重置后仍按住不会开始新的拖拽
func TestDragManagerHeldAfterReset(t *testing.T) {
	dm := NewDragManager()
	dm.Step(PointerSample{Pressed: true, Down: true, X: 1, Y: 1, TouchID: -1})
	dm.Reset()

	dm.Step(PointerSample{Down: true, X: 40, Y: 40, TouchID: -1})
	if dm.State() != DragStateNone {
		t.Errorf("State() = %v, want DragStateNone until the next press", dm.State())
	}

	dm.Step(PointerSample{Pressed: true, Down: true, X: 50, Y: 60, TouchID: -1})
	if !dm.JustStarted() || dm.Info().StartX != 50 || dm.Info().StartY != 60 {
		t.Errorf("Info() = %+v, want a new drag at (50, 60)", dm.Info())
	}
}

// TestDragManagerPressRightAfterEnd 结束帧同时按下时直接开始下一次拖拽
func TestDragManagerPressRightAfterEnd(t *testing.T) {
	dm := NewDragManager()
	dm.Step(PointerSample{Pressed: true, Down: true, X: 1, Y: 1, TouchID: -1})
	dm.Step(PointerSample{TouchID: -1})
	if !dm.JustEnded() {
		t.Fatalf("State() = %v, want ended", dm.State())
	}

	dm.Step(PointerSample{Pressed: true, Down: true, X: 7, Y: 8, TouchID: -1})
	if !dm.JustStarted() || dm.Info().StartX != 7 {
		t.Errorf("Info() = %+v, want a new drag at (7, 8)", dm.Info())
	}
}
