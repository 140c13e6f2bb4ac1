package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/ecs"
	"github.com/gonewx/dermamon/pkg/entities"
	"github.com/gonewx/dermamon/pkg/game"
	"github.com/gonewx/dermamon/pkg/modules"
	"github.com/gonewx/dermamon/pkg/systems"
	"github.com/gonewx/dermamon/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 页面配色
var (
	pageColor  = color.NRGBA{0xF3, 0xF4, 0xF6, 0xFF}
	gameWidget = color.NRGBA{0x63, 0x66, 0xF1, 0xFF}
	chatWidget = color.NRGBA{0x10, 0xB9, 0x81, 0xFF}
)

// chatMessage 聊天按钮的占位提示
const chatMessage = "Chat is not available in this build"

// GameScene 承载游戏弹窗的主场景
//
// 场景模拟原网页的宿主环境：右下角的悬浮按钮打开游戏弹窗，
// 右侧是排行榜面板，左下角是 API 状态，提示消息显示在顶部。
// 画布实体和 UI 按钮实体使用两个独立的 EntityManager。
type GameScene struct {
	gameState    *game.GameState
	sceneManager *game.SceneManager

	// UI 按钮实体，只由场景持有的 ButtonSystem 处理，避免重复触发
	uiEntityManager    *ecs.EntityManager
	buttonSystem       *systems.ButtonSystem
	buttonRenderSystem *systems.ButtonRenderSystem
	dragManager        *utils.DragManager

	sessionSystem *systems.SessionSystem

	popup            *modules.GamePopupModule // 画布不可用时为 nil
	widgets          *modules.WidgetModule
	toasts           *modules.ToastModule
	feedback         *modules.FeedbackModule
	dragTip          *modules.DragTipModule
	leaderboardPanel *modules.LeaderboardPanelModule
	status           *modules.StatusIndicatorModule
	help             *modules.HelpPanelModule

	face text.Face

	showDebug         bool
	exitAfterFeedback bool
	quitRequested     bool
}

// NewGameScene 创建主场景
//
// 参数:
//   - gs: 共享状态（配置、存储、排行榜）
//   - sm: 场景管理器
//   - rng: 生成目标和粒子使用的随机数来源，nil 时使用当前时间作为种子
func NewGameScene(gs *game.GameState, sm *game.SceneManager, rng entities.Rand) *GameScene {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	windowWidth := float64(config.GameWindowWidth)
	windowHeight := float64(config.GameWindowHeight)

	s := &GameScene{
		gameState:       gs,
		sceneManager:    sm,
		uiEntityManager: ecs.NewEntityManager(),
		dragManager:     utils.NewDragManager(),
		face:            utils.DefaultFace(),
	}
	s.buttonSystem = systems.NewButtonSystem(s.uiEntityManager)
	s.buttonRenderSystem = systems.NewButtonRenderSystem(s.uiEntityManager, s.face)

	// 画布会话：成绩同时写入本地最高分并提交到排行榜
	s.sessionSystem = systems.NewSessionSystem(ecs.NewEntityManager(), gs.Gameplay, rng, gs.HighScore, gs.Leaderboard)
	s.sessionSystem.SetGameOverHandler(s.onGameOver)

	s.toasts = modules.NewToastModule(config.ToastDuration, windowWidth, s.face)
	s.leaderboardPanel = modules.NewLeaderboardPanelModule(gs.Leaderboard)
	s.status = modules.NewStatusIndicatorModule(gs.Leaderboard, config.StatusX, config.StatusY)
	s.feedback = modules.NewFeedbackModule(gs.Store, s.toasts, config.FeedbackPromptDelay, windowWidth, windowHeight, s.onFeedbackClosed)
	s.dragTip = modules.NewDragTipModule(gs.Store, s.toasts, config.DragTipDelay)

	popup, err := modules.NewGamePopupModule(s.uiEntityManager, s.buttonSystem, s.buttonRenderSystem,
		s.sessionSystem, gs.HighScore, gs.Gameplay, modules.GamePopupCallbacks{
			OnLeaderboard: func() { s.leaderboardPanel.Toggle() },
		})
	if err != nil {
		// 没有画布时游戏入口静默失效
		log.Printf("[GameScene] Game popup unavailable: %v", err)
	} else {
		s.popup = popup
	}

	help, err := modules.NewHelpPanelModule(s.uiEntityManager, s.buttonSystem, s.buttonRenderSystem, windowWidth, windowHeight, nil)
	if err != nil {
		log.Printf("[GameScene] Warning: Failed to create help panel: %v", err)
	} else {
		s.help = help
	}

	s.widgets = modules.NewWidgetModule(gs.Store, windowWidth, windowHeight, []*modules.FloatingWidget{
		{
			ID:    config.ChatWidgetID,
			Label: "Chat",
			Fill:  chatWidget,
			X:     config.ChatWidgetDefaultX,
			Y:     config.ChatWidgetDefaultY,
			Size:  config.WidgetSize,
		},
		{
			ID:       config.GameWidgetID,
			Label:    "Play",
			Fill:     gameWidget,
			X:        config.GameWidgetDefaultX,
			Y:        config.GameWidgetDefaultY,
			Size:     config.WidgetSize,
			Disabled: s.popup == nil,
		},
	}, s.onWidgetActivated)

	gs.Leaderboard.CheckHealth()
	gs.Leaderboard.Refresh()

	log.Printf("[GameScene] Initialized (persistent storage: %v, high score: %d)", gs.Store.IsPersistent(), gs.HighScore.HighScore())
	return s
}

// Session 返回会话调度系统
func (s *GameScene) Session() *systems.SessionSystem {
	return s.sessionSystem
}

// QuitRequested 退出前的反馈弹窗已关闭，应用可以结束
func (s *GameScene) QuitRequested() bool {
	return s.quitRequested
}

// OnExit 应用即将退出
//
// 结束进行中的一局（成绩照常保存和提交）。从未反馈过时先显示反馈弹窗并推迟退出，
// 弹窗关闭后 QuitRequested 返回 true；弹窗显示期间再次关闭窗口则直接退出。
func (s *GameScene) OnExit() bool {
	s.sessionSystem.End(game.EndQuit)

	if s.quitRequested || s.exitAfterFeedback {
		return true
	}
	if s.feedback.Show() {
		s.exitAfterFeedback = true
		log.Printf("[GameScene] Exit deferred until feedback prompt closes")
		return false
	}
	return true
}

func (s *GameScene) onFeedbackClosed() {
	if s.exitAfterFeedback {
		s.quitRequested = true
	}
}

func (s *GameScene) onGameOver(info systems.GameOverInfo) {
	log.Printf("[GameScene] Game over: score=%d high=%d reason=%v", info.Score, info.HighScore, info.Reason)
	if info.NewRecord {
		s.toasts.Show(fmt.Sprintf("New High Score: %d!", info.HighScore))
	}
}

func (s *GameScene) onWidgetActivated(widgetID string) {
	switch widgetID {
	case config.GameWidgetID:
		if s.popup != nil {
			s.popup.Toggle()
		}
	case config.ChatWidgetID:
		s.toasts.Show(chatMessage)
	}
}

// Update 每帧更新
func (s *GameScene) Update(deltaTime float64) {
	// 应用后台网络请求的结果
	s.gameState.Leaderboard.Poll()

	s.toasts.Update(deltaTime)
	s.dragTip.Update(deltaTime)
	s.feedback.Update(deltaTime)

	s.handleKeyboard()
	s.handlePointer()

	if s.popup != nil {
		s.popup.Update(deltaTime)
	}

	// 会话调度（倒计时、生成、加速、效果）
	s.sessionSystem.Update(deltaTime)
}

// Draw 绘制场景，后绘制的在上层
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(pageColor)

	utils.DrawLabel(screen, "Dermamon", s.face, 20, 16, 3, color.NRGBA{0x4F, 0x46, 0xE5, 0xFF}, utils.AlignLeft)
	utils.DrawLabel(screen, "Press H for help", s.face, 20, 60, 1.5, color.NRGBA{0x6B, 0x72, 0x80, 0xFF}, utils.AlignLeft)

	if s.popup != nil {
		s.popup.Draw(screen)
	}
	s.leaderboardPanel.Draw(screen)
	s.widgets.Draw(screen)
	s.status.Draw(screen)

	if s.help != nil {
		s.help.Draw(screen)
	}
	s.feedback.Draw(screen)
	s.toasts.Draw(screen)

	s.drawDebugInfo(screen)
}
