package scenes

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/gonewx/dermamon/pkg/api"
	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/ecs"
	"github.com/gonewx/dermamon/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// stubLeaderboardClient 总是成功的排行榜后端
type stubLeaderboardClient struct{}

func (stubLeaderboardClient) SubmitScore(ctx context.Context, s api.ScoreSubmission) error {
	return nil
}

func (stubLeaderboardClient) FetchLeaderboard(ctx context.Context) ([]api.LeaderboardEntry, error) {
	return []api.LeaderboardEntry{{UserID: "alice", Score: 120}}, nil
}

func (stubLeaderboardClient) Health(ctx context.Context) error {
	return nil
}

// newTestScene 使用内存存储创建场景
func newTestScene(t *testing.T, cfg *config.GameplayConfig) (*GameScene, *game.GameState, *game.SceneManager) {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultGameplayConfig()
	}
	gs := game.NewGameState(cfg, nil, nil, stubLeaderboardClient{})
	t.Cleanup(gs.Close)

	sm := game.NewSceneManager()
	scene := NewGameScene(gs, sm, rand.New(rand.NewSource(3)))
	sm.SwitchTo(scene)
	return scene, gs, sm
}

func toastMessages(s *GameScene) string {
	var msgs []string
	for _, toast := range s.toasts.Active() {
		msgs = append(msgs, toast.Message)
	}
	return strings.Join(msgs, "|")
}

// TestGameSceneImplementsSceneInterface 验证场景实现了所需接口
func TestGameSceneImplementsSceneInterface(t *testing.T) {
	scene, _, _ := newTestScene(t, nil)

	var _ Scene = scene
	var _ game.ExitHandler = scene
	var _ game.QuitRequester = scene
}

// TestNewGameScene 验证初始化时探测 API 并加载排行榜
func TestNewGameScene(t *testing.T) {
	scene, gs, _ := newTestScene(t, nil)

	if scene.popup == nil {
		t.Fatal("popup should be created for a valid canvas")
	}
	if scene.popup.IsVisible() {
		t.Error("popup should start hidden")
	}
	if w := scene.widgets.Widget(config.GameWidgetID); w == nil || w.Disabled {
		t.Errorf("game widget = %+v, want enabled", w)
	}

	gs.Leaderboard.Wait()
	gs.Leaderboard.Poll()

	if online, known := gs.Leaderboard.Online(); !known || !online {
		t.Errorf("Online() = %v, %v; want online", online, known)
	}
	if label, _ := scene.status.Label(); label != "API Online" {
		t.Errorf("status label = %q, want API Online", label)
	}
	if entries := gs.Leaderboard.Entries(); len(entries) != 1 || entries[0].Name != "alice" {
		t.Errorf("Entries() = %+v", entries)
	}
}

// TestGameSceneWithoutCanvas 验证画布不可用时游戏按钮静默失效
func TestGameSceneWithoutCanvas(t *testing.T) {
	cfg := config.DefaultGameplayConfig()
	cfg.Canvas.Width = 0
	scene, _, _ := newTestScene(t, cfg)

	if scene.popup != nil {
		t.Fatal("popup should be nil without a canvas")
	}
	if w := scene.widgets.Widget(config.GameWidgetID); w == nil || !w.Disabled {
		t.Errorf("game widget = %+v, want disabled", w)
	}

	// 以下操作都不应 panic
	scene.onWidgetActivated(config.GameWidgetID)
	scene.handleKey(ebiten.KeySpace)
	scene.handleCanvasPress(100, 100)
	if scene.sessionSystem.Session().IsRunning() {
		t.Error("session should not start without a canvas")
	}
}

// TestGameSceneKeyboard 验证快捷键控制游戏流程
func TestGameSceneKeyboard(t *testing.T) {
	scene, _, _ := newTestScene(t, nil)
	session := scene.sessionSystem.Session()

	// 弹窗隐藏时空格无效
	scene.handleKey(ebiten.KeySpace)
	if session.Phase() != game.PhaseIdle {
		t.Fatalf("phase = %v, want idle while popup is hidden", session.Phase())
	}

	scene.onWidgetActivated(config.GameWidgetID)
	if !scene.popup.IsVisible() {
		t.Fatal("game widget should open the popup")
	}

	steps := []struct {
		key  ebiten.Key
		want game.Phase
	}{
		{key: ebiten.KeySpace, want: game.PhasePlaying},
		{key: ebiten.KeySpace, want: game.PhasePaused},
		{key: ebiten.KeySpace, want: game.PhasePlaying},
		{key: ebiten.KeyR, want: game.PhaseIdle},
	}
	for i, step := range steps {
		scene.handleKey(step.key)
		if session.Phase() != step.want {
			t.Fatalf("step %d: phase = %v, want %v", i, session.Phase(), step.want)
		}
	}
	if _, over := scene.sessionSystem.GameOver(); over {
		t.Error("reset should not leave a game-over overlay")
	}

	scene.handleKey(ebiten.KeyL)
	if !scene.leaderboardPanel.IsVisible() {
		t.Error("L should show the leaderboard panel")
	}
	scene.handleKey(ebiten.KeyH)
	if !scene.help.IsActive() {
		t.Error("H should show the help panel")
	}
	scene.handleKey(ebiten.KeyEscape)
	if scene.help.IsActive() {
		t.Error("Esc should close the help panel first")
	}
	if !scene.popup.IsVisible() {
		t.Error("popup should stay open while Esc closes help")
	}
	scene.handleKey(ebiten.KeyEscape)
	if scene.popup.IsVisible() {
		t.Error("second Esc should close the popup")
	}
}

// TestGameSceneNewHighScoreToast 验证刷新最高分时显示提示
func TestGameSceneNewHighScoreToast(t *testing.T) {
	scene, gs, _ := newTestScene(t, nil)
	scene.onWidgetActivated(config.GameWidgetID)
	scene.handleKey(ebiten.KeySpace)

	em := scene.sessionSystem.EntityManager()
	targets := ecs.GetEntitiesWith1[*components.DermamonComponent](em)
	if len(targets) != 2 {
		t.Fatalf("targets = %d, want 2", len(targets))
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, targets[0])

	scaleX := config.CanvasDisplayWidth / float64(gs.Gameplay.Canvas.Width)
	scaleY := config.CanvasDisplayHeight / float64(gs.Gameplay.Canvas.Height)
	scene.handleCanvasPress(config.CanvasDisplayX+pos.X*scaleX, config.CanvasDisplayY+pos.Y*scaleY)
	if got := scene.sessionSystem.Session().Score(); got < 10 {
		t.Fatalf("Score() = %d, want at least 10", got)
	}

	scene.popup.Close()
	score := scene.sessionSystem.Session().Score()
	if gs.HighScore.HighScore() != score {
		t.Errorf("HighScore() = %d, want %d", gs.HighScore.HighScore(), score)
	}
	if !strings.Contains(toastMessages(scene), "New High Score") {
		t.Errorf("toasts = %q, want a new high score message", toastMessages(scene))
	}
}

// TestGameSceneExitShowsFeedback 验证退出时先收集反馈再结束应用
func TestGameSceneExitShowsFeedback(t *testing.T) {
	scene, gs, sm := newTestScene(t, nil)
	scene.onWidgetActivated(config.GameWidgetID)
	scene.handleKey(ebiten.KeySpace)

	if sm.HandleExit() {
		t.Fatal("HandleExit() should be deferred while feedback is pending")
	}
	info, over := scene.sessionSystem.GameOver()
	if !over || info.Reason != game.EndQuit {
		t.Errorf("GameOver() = %+v, %v; want reason EndQuit", info, over)
	}
	if !scene.feedback.IsVisible() {
		t.Fatal("feedback prompt should be visible")
	}
	if sm.QuitRequested() {
		t.Fatal("quit should wait for the prompt")
	}

	// 弹窗显示时快捷键只作用于评分
	scene.handleKey(ebiten.KeyL)
	if scene.leaderboardPanel.IsVisible() {
		t.Error("L should be ignored while the feedback prompt is visible")
	}
	scene.handleKey(ebiten.Key4)
	if scene.feedback.Rating() != 4 {
		t.Errorf("Rating() = %d, want 4", scene.feedback.Rating())
	}
	scene.handleKey(ebiten.KeyEnter)

	if !sm.QuitRequested() {
		t.Error("QuitRequested() should be true after the prompt closes")
	}
	if !gs.Store.Flag(game.FlagFeedbackGiven) {
		t.Error("feedback flag should be stored")
	}
	if !sm.HandleExit() {
		t.Error("HandleExit() should succeed once quit was requested")
	}
}

// TestGameSceneFeedbackComments 验证留言框有焦点时数字键不改变星级
func TestGameSceneFeedbackComments(t *testing.T) {
	scene, _, sm := newTestScene(t, nil)
	if sm.HandleExit() {
		t.Fatal("HandleExit() should be deferred while feedback is pending")
	}

	scene.handleKey(ebiten.Key3)
	scene.handleKey(ebiten.KeyTab)
	if !scene.feedback.CommentsFocused() {
		t.Fatal("Tab should focus the comment box")
	}
	scene.handleKey(ebiten.Key5)
	if scene.feedback.Rating() != 3 {
		t.Errorf("Rating() = %d, want 3 while typing", scene.feedback.Rating())
	}
	scene.feedback.TypeComment([]rune("55"))
	scene.handleKey(ebiten.KeyBackspace)
	if got := scene.feedback.Comments(); got != "5" {
		t.Errorf("Comments() = %q, want %q", got, "5")
	}

	scene.handleKey(ebiten.KeyEnter)
	if scene.feedback.IsVisible() || !sm.QuitRequested() {
		t.Error("Enter should submit and continue the exit")
	}
}

// TestGameSceneExitWithoutPendingFeedback 验证已反馈过时直接退出
func TestGameSceneExitWithoutPendingFeedback(t *testing.T) {
	scene, gs, sm := newTestScene(t, nil)
	if err := gs.Store.SetFlag(game.FlagFeedbackGiven, true); err != nil {
		t.Fatalf("SetFlag() error = %v", err)
	}
	// 重新创建场景以读取标志
	scene = NewGameScene(gs, sm, rand.New(rand.NewSource(5)))
	sm.SwitchTo(scene)

	if !sm.HandleExit() {
		t.Error("HandleExit() should succeed when feedback was already given")
	}
	if scene.feedback.IsVisible() {
		t.Error("feedback prompt should not be shown")
	}
}

// TestGameSceneChatWidget 验证聊天按钮只显示占位提示
func TestGameSceneChatWidget(t *testing.T) {
	scene, _, _ := newTestScene(t, nil)
	scene.onWidgetActivated(config.ChatWidgetID)

	if got := toastMessages(scene); got != chatMessage {
		t.Errorf("toasts = %q, want %q", got, chatMessage)
	}
	if scene.popup.IsVisible() {
		t.Error("chat widget should not open the game popup")
	}
}

// TestGameSceneSecondCloseExits 验证反馈弹窗显示时再次关闭窗口直接退出
func TestGameSceneSecondCloseExits(t *testing.T) {
	scene, _, sm := newTestScene(t, nil)

	if sm.HandleExit() {
		t.Fatal("first HandleExit() should be deferred")
	}
	if !sm.HandleExit() {
		t.Error("second HandleExit() should exit")
	}
	if !scene.feedback.Pending() {
		t.Error("closing without answering should not mark feedback as given")
	}
}
