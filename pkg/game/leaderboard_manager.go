package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gonewx/dermamon/pkg/api"
)

// LeaderboardClient 排行榜后端
// *api.Client 实现了该接口，测试中可替换为假实现
type LeaderboardClient interface {
	SubmitScore(ctx context.Context, submission api.ScoreSubmission) error
	FetchLeaderboard(ctx context.Context) ([]api.LeaderboardEntry, error)
	Health(ctx context.Context) error
}

// LeaderboardEventKind 后台请求结果类型
type LeaderboardEventKind int

const (
	// LeaderboardLoaded 排行榜获取成功
	LeaderboardLoaded LeaderboardEventKind = iota
	// LeaderboardLoadFailed 排行榜获取失败
	LeaderboardLoadFailed
	// ScoreSubmitted 成绩提交成功
	ScoreSubmitted
	// ScoreSubmitFailed 成绩提交失败
	ScoreSubmitFailed
	// HealthChecked API 健康检查完成（Online 表示结果）
	HealthChecked
)

// LeaderboardEvent 一次后台请求的结果
type LeaderboardEvent struct {
	Kind    LeaderboardEventKind
	Entries []api.LeaderboardEntry
	Score   int
	Online  bool
	Err     error
}

// RankedEntry 用于显示的排行榜行
type RankedEntry struct {
	Rank  int    // 从 1 开始
	Name  string // user_id，为空时显示 "Guest"
	Score int
	Medal string // 前三名奖牌，其余为空
}

var medals = [...]string{"🥇", "🥈", "🥉"}

// guestDisplayName 排行榜中缺少 user_id 时显示的名字
const guestDisplayName = "Guest"

// SubmitFlushTimeout Close 等待未完成成绩提交的最长时间
const SubmitFlushTimeout = 2 * time.Second

// LeaderboardManager 排行榜与成绩提交
//
// 网络请求在后台 goroutine 中执行，结果写入 results 通道；
// 游戏循环每帧调用 Poll 在主线程应用结果，因此其余字段只在主线程访问。
// 多个获取请求同时进行时以最后到达的结果为准。
type LeaderboardManager struct {
	client   LeaderboardClient
	userID   string
	gameType string
	topN     int

	ctx     context.Context
	cancel  context.CancelFunc
	results chan LeaderboardEvent
	wg      sync.WaitGroup

	// 成绩提交不随 Close 立即取消，退出时最多等待 flushTimeout
	submitCtx    context.Context
	submitCancel context.CancelFunc
	submits      sync.WaitGroup
	flushTimeout time.Duration

	entries     []RankedEntry
	online      bool
	statusKnown bool
	lastErr     error
}

// NewLeaderboardManager 创建排行榜管理器
//
// 参数：
//   - client: 后端客户端
//   - userID: 提交成绩使用的用户ID，为空时使用 "guest"
//   - gameType: 游戏类型标签，为空时使用 "balloon_hit"
//   - topN: 显示的条数上限
func NewLeaderboardManager(client LeaderboardClient, userID, gameType string, topN int) *LeaderboardManager {
	if userID == "" {
		userID = api.GuestUserID
	}
	if gameType == "" {
		gameType = api.DefaultGameType
	}
	ctx, cancel := context.WithCancel(context.Background())
	submitCtx, submitCancel := context.WithCancel(context.Background())
	return &LeaderboardManager{
		client:       client,
		userID:       userID,
		gameType:     gameType,
		topN:         topN,
		ctx:          ctx,
		cancel:       cancel,
		results:      make(chan LeaderboardEvent, 32),
		submitCtx:    submitCtx,
		submitCancel: submitCancel,
		flushTimeout: SubmitFlushTimeout,
	}
}

// Refresh 在后台获取排行榜
func (m *LeaderboardManager) Refresh() {
	m.goRequest(func(ctx context.Context) {
		m.fetch(ctx)
	})
}

// SubmitScore 在后台提交成绩，成功后自动刷新排行榜
// 失败只记录日志，不重试。应用退出时 Close 会等待提交完成
func (m *LeaderboardManager) SubmitScore(score int) {
	submission := api.ScoreSubmission{
		Score:    score,
		GameType: m.gameType,
		UserID:   m.userID,
	}
	m.wg.Add(1)
	m.submits.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.submits.Done()

		if err := m.client.SubmitScore(m.submitCtx, submission); err != nil {
			log.Printf("[Leaderboard] Failed to submit score %d: %v", score, err)
			m.emit(m.ctx, LeaderboardEvent{Kind: ScoreSubmitFailed, Score: score, Err: err})
			return
		}
		log.Printf("[Leaderboard] Score submitted: %d (user=%s)", score, submission.UserID)
		m.emit(m.ctx, LeaderboardEvent{Kind: ScoreSubmitted, Score: score})
		if m.ctx.Err() == nil {
			m.fetch(m.ctx)
		}
	}()
}

// CheckHealth 在后台探测 API 状态
func (m *LeaderboardManager) CheckHealth() {
	m.goRequest(func(ctx context.Context) {
		err := m.client.Health(ctx)
		if err != nil {
			log.Printf("[Leaderboard] API offline: %v", err)
		}
		m.emit(ctx, LeaderboardEvent{Kind: HealthChecked, Online: err == nil, Err: err})
	})
}

// Poll 取出所有已完成的结果并应用，不阻塞
// 返回本次取出的事件，供调用方显示提示
func (m *LeaderboardManager) Poll() []LeaderboardEvent {
	var events []LeaderboardEvent
	for {
		select {
		case ev := <-m.results:
			m.apply(ev)
			events = append(events, ev)
		default:
			return events
		}
	}
}

// Wait 等待所有后台请求结束
func (m *LeaderboardManager) Wait() {
	m.wg.Wait()
}

// Close 取消进行中的获取和健康检查，等待未完成的成绩提交（最多 flushTimeout）后退出
func (m *LeaderboardManager) Close() {
	m.cancel()

	flushed := make(chan struct{})
	go func() {
		m.submits.Wait()
		close(flushed)
	}()
	select {
	case <-flushed:
	case <-time.After(m.flushTimeout):
		log.Printf("[Leaderboard] Pending score submission abandoned after %v", m.flushTimeout)
	}

	m.submitCancel()
	m.wg.Wait()
}

// Entries 当前显示的排行榜（最多 topN 条）
func (m *LeaderboardManager) Entries() []RankedEntry {
	return m.entries
}

// Online 最近一次健康检查结果；known 为 false 表示尚未检查完成
func (m *LeaderboardManager) Online() (online bool, known bool) {
	return m.online, m.statusKnown
}

// LastError 最近一次失败的请求错误
func (m *LeaderboardManager) LastError() error {
	return m.lastErr
}

func (m *LeaderboardManager) goRequest(fn func(ctx context.Context)) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		fn(m.ctx)
	}()
}

func (m *LeaderboardManager) fetch(ctx context.Context) {
	entries, err := m.client.FetchLeaderboard(ctx)
	if err != nil {
		log.Printf("[Leaderboard] Failed to load leaderboard: %v", err)
		m.emit(ctx, LeaderboardEvent{Kind: LeaderboardLoadFailed, Err: err})
		return
	}
	m.emit(ctx, LeaderboardEvent{Kind: LeaderboardLoaded, Entries: entries})
}

func (m *LeaderboardManager) emit(ctx context.Context, ev LeaderboardEvent) {
	select {
	case m.results <- ev:
	case <-ctx.Done():
	}
}

func (m *LeaderboardManager) apply(ev LeaderboardEvent) {
	switch ev.Kind {
	case LeaderboardLoaded:
		m.entries = RankEntries(ev.Entries, m.topN)
	case HealthChecked:
		m.online = ev.Online
		m.statusKnown = true
	}
	if ev.Err != nil {
		m.lastErr = ev.Err
	}
}

// RankEntries 按服务端顺序取前 topN 条并编号
// topN <= 0 时不截断
func RankEntries(entries []api.LeaderboardEntry, topN int) []RankedEntry {
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	ranked := make([]RankedEntry, 0, len(entries))
	for i, e := range entries {
		name := e.UserID
		if name == "" {
			name = guestDisplayName
		}
		r := RankedEntry{Rank: i + 1, Name: name, Score: e.Score}
		if i < len(medals) {
			r.Medal = medals[i]
		}
		ranked = append(ranked, r)
	}
	return ranked
}
