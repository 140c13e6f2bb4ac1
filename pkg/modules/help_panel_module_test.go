package modules

import (
	"testing"

	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/ecs"
	"github.com/gonewx/dermamon/pkg/systems"
)

// TestHelpPanelModule_ShowHide 验证确认按钮随面板显示，点击后关闭面板
func TestHelpPanelModule_ShowHide(t *testing.T) {
	em := ecs.NewEntityManager()
	buttons := systems.NewButtonSystem(em)
	closed := 0
	m, err := NewHelpPanelModule(em, buttons, systems.NewButtonRenderSystem(em, nil), 1200, 760, func() { closed++ })
	if err != nil {
		t.Fatalf("NewHelpPanelModule() error = %v", err)
	}

	button, _ := ecs.GetComponent[*components.ButtonComponent](em, m.confirmButtonEntity)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, m.confirmButtonEntity)
	if button.Visible {
		t.Fatal("confirm button should start hidden")
	}

	m.Show()
	if !m.IsActive() || !button.Visible {
		t.Fatal("Show() should activate the panel and its button")
	}

	buttons.HandlePointer(pos.X+10, pos.Y+10, false, true)
	if m.IsActive() {
		t.Error("clicking the confirm button should hide the panel")
	}
	if button.Visible {
		t.Error("confirm button should be hidden again")
	}
	if closed != 1 {
		t.Errorf("onClose called %d times, want 1", closed)
	}

	// 隐藏状态下再次 Hide 不触发回调
	m.Hide()
	if closed != 1 {
		t.Errorf("onClose called %d times after redundant Hide, want 1", closed)
	}
}
