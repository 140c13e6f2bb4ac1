package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 持有当前场景，并把每帧的更新、绘制和退出通知转发给它
type SceneManager struct {
	current Scene
}

func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo 切换当前场景，下一帧起生效
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.current = scene
}

// Current 当前场景，可能为 nil
func (sm *SceneManager) Current() Scene {
	return sm.current
}

// HandleExit 窗口关闭时调用，返回 true 表示可以立即退出
// 场景没有实现 ExitHandler 时总是可以退出
func (sm *SceneManager) HandleExit() bool {
	handler, ok := sm.current.(ExitHandler)
	if !ok {
		return true
	}
	if !handler.OnExit() {
		log.Printf("[SceneManager] Exit deferred by current scene")
		return false
	}
	return true
}

// QuitRequested 推迟的退出是否已经可以完成
func (sm *SceneManager) QuitRequested() bool {
	requester, ok := sm.current.(QuitRequester)
	return ok && requester.QuitRequested()
}

func (sm *SceneManager) Update(deltaTime float64) {
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}
