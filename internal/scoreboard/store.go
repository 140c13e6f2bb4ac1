// Package scoreboard 实现排行榜 HTTP 服务
//
// 成绩保存在 Repository 中：MemoryStore 进程退出即丢失，SQLiteStore 写入本地数据库文件。
package scoreboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record 一条已保存的成绩
type Record struct {
	ID        string     `json:"id,omitempty"`
	UserID    string     `json:"user_id"`
	Score     int        `json:"score"`
	GameType  string     `json:"game_type,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"` // 示例数据没有创建时间
}

// DemoRecords 没有任何成绩时返回的示例数据
var DemoRecords = []Record{
	{UserID: "Demo Player 1", Score: 350},
	{UserID: "Demo Player 2", Score: 280},
	{UserID: "Demo Player 3", Score: 210},
}

// Repository 成绩存储
//
// Top 按分数降序返回前 n 条，同分时先保存的在前；n <= 0 时返回全部。
type Repository interface {
	Add(ctx context.Context, userID string, score int, gameType string) (Record, error)
	Top(ctx context.Context, n int) ([]Record, error)
	Count(ctx context.Context) (int, error)
}

// newRecord 分配 ID 和创建时间
func newRecord(userID string, score int, gameType string, now time.Time) Record {
	created := now.UTC()
	return Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		Score:     score,
		GameType:  gameType,
		CreatedAt: &created,
	}
}

// MemoryStore 并发安全的内存成绩表
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
	now     func() time.Time
}

// NewMemoryStore 创建空的内存成绩表
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Add 保存一条成绩
func (s *MemoryStore) Add(ctx context.Context, userID string, score int, gameType string) (Record, error) {
	rec := newRecord(userID, score, gameType, s.now())

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
	return rec, nil
}

// Count 已保存的成绩条数
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Top 见 Repository
func (s *MemoryStore) Top(ctx context.Context, n int) ([]Record, error) {
	s.mu.RLock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	s.mu.RUnlock()

	// 稳定排序保留插入顺序
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}
