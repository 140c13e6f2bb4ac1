package game

import "github.com/hajimehoshi/ebiten/v2"

// Scene 由 SceneManager 驱动的场景，目前只有承载悬浮按钮和游戏弹窗的 GameScene
type Scene interface {
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
}

// ExitHandler 窗口关闭时收到通知的场景
//
// OnExit 返回 false 表示推迟退出（例如先显示反馈弹窗），之后通过 QuitRequester 告知可以退出。
type ExitHandler interface {
	OnExit() bool
}

// QuitRequester 主动请求结束应用的场景
type QuitRequester interface {
	QuitRequested() bool
}
