package game

import (
	"log"

	"github.com/gonewx/dermamon/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// GameState 跨场景共享的状态与服务
//
// 由入口显式创建并传给场景，不使用全局单例。
type GameState struct {
	Gameplay *config.GameplayConfig
	Client   *config.ClientConfig

	Store       *LocalStore
	HighScore   *HighScoreManager
	Leaderboard *LeaderboardManager
}

// OpenStorage 打开 gdata 跨平台存储
// 失败时返回 nil，调用方进入降级模式（仅内存存储）
func OpenStorage(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[GameState] Warning: Failed to open gdata storage: %v (values will not persist)", err)
		return nil
	}
	log.Printf("[GameState] gdata storage opened (app=%s)", appName)
	return manager
}

// NewGameState 组装共享状态
//
// 参数：
//   - gameplay: 玩法配置，nil 时使用默认值
//   - client: 客户端配置（用户身份）
//   - storage: gdata 存储，可为 nil（降级模式）
//   - lbClient: 排行榜后端
func NewGameState(gameplay *config.GameplayConfig, client *config.ClientConfig, storage *gdata.Manager, lbClient LeaderboardClient) *GameState {
	if gameplay == nil {
		gameplay = config.DefaultGameplayConfig()
	}
	if client == nil {
		client = &config.ClientConfig{UserID: config.DefaultUserID}
	}

	store := NewLocalStore(storage)
	return &GameState{
		Gameplay:    gameplay,
		Client:      client,
		Store:       store,
		HighScore:   NewHighScoreManager(store),
		Leaderboard: NewLeaderboardManager(lbClient, client.UserID, gameplay.Leaderboard.GameType, gameplay.Leaderboard.TopN),
	}
}

// Close 取消进行中的网络请求，未完成的成绩提交最多等待 SubmitFlushTimeout
func (gs *GameState) Close() {
	gs.Leaderboard.Close()
}
