// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/dermamon/pkg/api"
	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/game"
	"github.com/gonewx/dermamon/pkg/scenes"
	"github.com/gonewx/dermamon/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// GameplayConfigPath 覆盖玩法参数的 YAML 文件，为空则使用嵌入的 data/dermamon.yaml
	GameplayConfigPath string
	// EnvFile .env 文件路径，为空则只读取进程环境变量
	EnvFile string
	// APIURL 覆盖环境变量中的 API 地址
	APIURL string
	// UserID 覆盖环境变量中的用户ID
	UserID string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	gameState                *game.GameState
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	terminated               bool
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameplay := LoadGameplayConfig(cfg.GameplayConfigPath)

	clientConfig, err := config.LoadClientConfig(cfg.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("客户端配置加载失败: %w", err)
	}
	if cfg.APIURL != "" {
		clientConfig.APIURL = cfg.APIURL
	}
	if cfg.UserID != "" {
		clientConfig.UserID = cfg.UserID
	}
	log.Printf("[App] API: %s, user: %s (logged in: %v)", clientConfig.APIURL, clientConfig.UserID, clientConfig.IsLoggedIn())

	// Android 需要先确保存储目录存在，gdata 才能写入
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: Failed to prepare storage dir: %v", err)
	}
	storage := game.OpenStorage(clientConfig.AppName)

	client := api.NewClient(clientConfig.APIURL, clientConfig.UserToken, nil)
	gameState := game.NewGameState(gameplay, clientConfig, storage, client)

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewGameScene(gameState, sceneManager, nil))

	// 关闭窗口时先让场景收尾（结束本局、显示反馈弹窗）
	ebiten.SetWindowClosingHandled(true)

	return &App{
		sceneManager: sceneManager,
		gameState:    gameState,
	}, nil
}

// LoadGameplayConfig 加载玩法配置
//
// 依次尝试覆盖文件、嵌入的默认文件，都失败时使用代码中的默认值。
// 失败只记录警告，不会阻止启动。
func LoadGameplayConfig(overridePath string) *config.GameplayConfig {
	if overridePath != "" {
		cfg, err := config.LoadGameplayConfig(overridePath)
		if err == nil {
			log.Printf("[Config] Loaded gameplay config from %s", overridePath)
			return cfg
		}
		log.Printf("[Config] Warning: %v, falling back to embedded config", err)
	}

	cfg, err := config.LoadEmbeddedGameplayConfig(config.DefaultGameplayConfigPath)
	if err != nil {
		log.Printf("[Config] Warning: %v, using built-in defaults", err)
		return config.DefaultGameplayConfig()
	}
	return cfg
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.terminated {
		return ebiten.Termination
	}

	// 窗口关闭：场景可以推迟退出（例如显示反馈弹窗）
	if ebiten.IsWindowBeingClosed() && a.sceneManager.HandleExit() {
		return a.shutdown()
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)

	// 推迟的退出在反馈弹窗关闭后完成
	if a.sceneManager.QuitRequested() {
		return a.shutdown()
	}
	return nil
}

// shutdown 取消后台请求并结束游戏循环
func (a *App) shutdown() error {
	if !a.terminated {
		a.terminated = true
		a.gameState.Close()
		log.Printf("[App] Shutting down")
	}
	return ebiten.Termination
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear // 使用线性滤波减少锯齿和模糊
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}
