package game

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gonewx/dermamon/pkg/api"
)

// fakeLeaderboardClient 记录调用并返回预设结果
type fakeLeaderboardClient struct {
	mu          sync.Mutex
	submissions []api.ScoreSubmission
	entries     []api.LeaderboardEntry
	submitErr   error
	fetchErr    error
	healthErr   error
	fetchCalls  int
}

func (f *fakeLeaderboardClient) SubmitScore(ctx context.Context, s api.ScoreSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions = append(f.submissions, s)
	if f.submitErr == nil {
		f.entries = append(f.entries, api.LeaderboardEntry{UserID: s.UserID, Score: s.Score})
	}
	return f.submitErr
}

func (f *fakeLeaderboardClient) FetchLeaderboard(ctx context.Context) ([]api.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]api.LeaderboardEntry, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *fakeLeaderboardClient) Health(ctx context.Context) error {
	return f.healthErr
}

func TestRankEntries(t *testing.T) {
	var entries []api.LeaderboardEntry
	for i := 0; i < 12; i++ {
		entries = append(entries, api.LeaderboardEntry{UserID: "player", Score: 1000 - i*10})
	}
	entries[1].UserID = ""

	ranked := RankEntries(entries, 10)
	if len(ranked) != 10 {
		t.Fatalf("len(ranked) = %d, want 10", len(ranked))
	}

	wantMedals := []string{"🥇", "🥈", "🥉", ""}
	for i, want := range wantMedals {
		if ranked[i].Medal != want {
			t.Errorf("rank %d medal = %q, want %q", i+1, ranked[i].Medal, want)
		}
	}
	for i, r := range ranked {
		if r.Rank != i+1 {
			t.Errorf("entry %d Rank = %d, want %d", i, r.Rank, i+1)
		}
		if r.Score != entries[i].Score {
			t.Errorf("entry %d Score = %d, want %d (server order kept)", i, r.Score, entries[i].Score)
		}
	}
	if ranked[1].Name != "Guest" {
		t.Errorf("empty user_id name = %q, want Guest", ranked[1].Name)
	}

	if got := RankEntries(nil, 10); len(got) != 0 {
		t.Errorf("RankEntries(nil) len = %d, want 0", len(got))
	}
}

// TestLeaderboardSubmitRefreshes 验证提交成功后自动刷新排行榜
func TestLeaderboardSubmitRefreshes(t *testing.T) {
	client := &fakeLeaderboardClient{}
	m := NewLeaderboardManager(client, "", "", 10)
	defer m.Close()

	m.SubmitScore(0)
	m.Wait()
	events := m.Poll()

	if len(client.submissions) != 1 {
		t.Fatalf("submissions = %d, want 1", len(client.submissions))
	}
	sub := client.submissions[0]
	if sub.Score != 0 || sub.GameType != "balloon_hit" || sub.UserID != "guest" {
		t.Errorf("submission = %+v, want score 0, balloon_hit, guest", sub)
	}

	if len(events) != 2 || events[0].Kind != ScoreSubmitted || events[1].Kind != LeaderboardLoaded {
		t.Fatalf("events = %+v, want [ScoreSubmitted LeaderboardLoaded]", events)
	}
	entries := m.Entries()
	if len(entries) != 1 || entries[0].Name != "guest" || entries[0].Score != 0 {
		t.Errorf("Entries() = %+v", entries)
	}
}

// TestLeaderboardSubmitFailure 验证提交失败不刷新、不重试
func TestLeaderboardSubmitFailure(t *testing.T) {
	client := &fakeLeaderboardClient{submitErr: errors.New("connection refused")}
	m := NewLeaderboardManager(client, "alice", "balloon_hit", 10)
	defer m.Close()

	m.SubmitScore(120)
	m.Wait()
	events := m.Poll()

	if len(events) != 1 || events[0].Kind != ScoreSubmitFailed {
		t.Fatalf("events = %+v, want [ScoreSubmitFailed]", events)
	}
	if client.fetchCalls != 0 {
		t.Errorf("fetchCalls = %d, want 0", client.fetchCalls)
	}
	if len(client.submissions) != 1 {
		t.Errorf("submissions = %d, want 1 (no retry)", len(client.submissions))
	}
	if m.LastError() == nil {
		t.Error("LastError() should be set")
	}
}

// TestLeaderboardFetchFailureKeepsEntries 验证获取失败时保留已显示内容
func TestLeaderboardFetchFailureKeepsEntries(t *testing.T) {
	client := &fakeLeaderboardClient{entries: []api.LeaderboardEntry{{UserID: "bob", Score: 300}}}
	m := NewLeaderboardManager(client, "bob", "", 10)
	defer m.Close()

	m.Refresh()
	m.Wait()
	m.Poll()
	if len(m.Entries()) != 1 {
		t.Fatalf("Entries() len = %d, want 1", len(m.Entries()))
	}

	client.mu.Lock()
	client.fetchErr = api.ErrUnsuccessful
	client.mu.Unlock()

	m.Refresh()
	m.Wait()
	events := m.Poll()
	if len(events) != 1 || events[0].Kind != LeaderboardLoadFailed {
		t.Fatalf("events = %+v, want [LeaderboardLoadFailed]", events)
	}
	if len(m.Entries()) != 1 {
		t.Errorf("Entries() len after failure = %d, want 1", len(m.Entries()))
	}
}

func TestLeaderboardHealth(t *testing.T) {
	tests := []struct {
		name       string
		healthErr  error
		wantOnline bool
	}{
		{name: "online", healthErr: nil, wantOnline: true},
		{name: "offline", healthErr: errors.New("dial tcp: refused"), wantOnline: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLeaderboardManager(&fakeLeaderboardClient{healthErr: tt.healthErr}, "", "", 10)
			defer m.Close()

			if _, known := m.Online(); known {
				t.Fatal("status should be unknown before check")
			}
			m.CheckHealth()
			m.Wait()
			m.Poll()

			online, known := m.Online()
			if !known {
				t.Fatal("status should be known after check")
			}
			if online != tt.wantOnline {
				t.Errorf("Online() = %v, want %v", online, tt.wantOnline)
			}
		})
	}
}

// TestLeaderboardPollEmpty 验证没有结果时 Poll 不阻塞
func TestLeaderboardPollEmpty(t *testing.T) {
	m := NewLeaderboardManager(&fakeLeaderboardClient{}, "", "", 10)
	defer m.Close()
	if events := m.Poll(); len(events) != 0 {
		t.Errorf("Poll() = %+v, want none", events)
	}
}

// TestLeaderboardCloseFlushesSubmission 验证退出前提交的成绩在 Close 之后仍送达服务器
func TestLeaderboardCloseFlushesSubmission(t *testing.T) {
	var mu sync.Mutex
	var received []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method != http.MethodPost {
			json.NewEncoder(w).Encode(api.LeaderboardResponse{Success: true})
			return
		}
		var s api.ScoreSubmission
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		received = append(received, s.Score)
		mu.Unlock()
		json.NewEncoder(w).Encode(api.ScoreResponse{Success: true, Score: s.Score})
	}))
	defer srv.Close()

	const rounds = 20
	for i := 0; i < rounds; i++ {
		m := NewLeaderboardManager(api.NewClient(srv.URL, "", srv.Client()), "alice", "", 10)
		m.SubmitScore(42)
		m.Close()
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != rounds {
		t.Fatalf("scores received = %d, want %d", len(received), rounds)
	}
	for i, score := range received {
		if score != 42 {
			t.Errorf("submission %d score = %d, want 42", i, score)
		}
	}
}

// hangingLeaderboardClient 提交一直阻塞到 ctx 取消
type hangingLeaderboardClient struct {
	fakeLeaderboardClient
	cancelled chan error
}

func (c *hangingLeaderboardClient) SubmitScore(ctx context.Context, s api.ScoreSubmission) error {
	<-ctx.Done()
	c.cancelled <- ctx.Err()
	return ctx.Err()
}

// TestLeaderboardCloseGivesUpOnHangingSubmission 验证后端无响应时 Close 在超时后返回
func TestLeaderboardCloseGivesUpOnHangingSubmission(t *testing.T) {
	client := &hangingLeaderboardClient{cancelled: make(chan error, 1)}
	m := NewLeaderboardManager(client, "", "", 10)
	m.flushTimeout = 20 * time.Millisecond

	m.SubmitScore(7)
	start := time.Now()
	m.Close()
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Close() took %v, want about %v", elapsed, m.flushTimeout)
	}

	select {
	case err := <-client.cancelled:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("submit ctx error = %v, want context.Canceled", err)
		}
	default:
		t.Error("submission should have been cancelled before Close returned")
	}
}
