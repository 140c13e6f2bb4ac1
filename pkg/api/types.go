// Package api 定义与 Dermamon 后端通信的数据结构和 HTTP 客户端
package api

// DefaultGameType 提交成绩时默认携带的游戏类型标签
const DefaultGameType = "balloon_hit"

// GuestUserID 未登录用户提交成绩时使用的用户ID
const GuestUserID = "guest"

// ScoreSubmission POST /game/score 的请求体
type ScoreSubmission struct {
	Score    int    `json:"score"`
	GameType string `json:"game_type"`
	UserID   string `json:"user_id"`
}

// ScoreResponse POST /game/score 的响应体
type ScoreResponse struct {
	Success bool   `json:"success"`
	Score   int    `json:"score"`
	Error   string `json:"error,omitempty"`
}

// LeaderboardEntry 排行榜中的一条成绩
type LeaderboardEntry struct {
	UserID string `json:"user_id"`
	Score  int    `json:"score"`
}

// LeaderboardResponse GET /game/leaderboard 的响应体
// 服务端负责排序，客户端按原顺序取前 N 条
type LeaderboardResponse struct {
	Success     bool               `json:"success"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Error       string             `json:"error,omitempty"`
}

// HealthResponse GET /health 的响应体
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse 服务端错误响应
type ErrorResponse struct {
	Error string `json:"error"`
}
