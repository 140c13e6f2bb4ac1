package modules

import (
	"testing"

	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/game"
)

type fakeLeaderboardSource struct {
	entries   []game.RankedEntry
	refreshes int
	online    bool
	known     bool
}

func (f *fakeLeaderboardSource) Entries() []game.RankedEntry { return f.entries }
func (f *fakeLeaderboardSource) Refresh() { f.refreshes++ }
func (f *fakeLeaderboardSource) Online() (bool, bool) { return f.online, f.known }

// TestLeaderboardPanelToggle 验证打开面板时刷新数据
func TestLeaderboardPanelToggle(t *testing.T) {
	src := &fakeLeaderboardSource{}
	m := NewLeaderboardPanelModule(src)

	if m.IsVisible() {
		t.Fatal("panel should start hidden")
	}
	if !m.Toggle() {
		t.Fatal("first Toggle() should show the panel")
	}
	if src.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", src.refreshes)
	}
	if !m.Contains(config.LeaderboardPanelX+10, config.LeaderboardPanelY+10) {
		t.Error("Contains() should be true inside the visible panel")
	}
	if m.Toggle() {
		t.Fatal("second Toggle() should hide the panel")
	}
	if src.refreshes != 1 {
		t.Errorf("hiding should not refresh, refreshes = %d", src.refreshes)
	}
	if m.Contains(config.LeaderboardPanelX+10, config.LeaderboardPanelY+10) {
		t.Error("hidden panel should not contain points")
	}
}

func TestFormatRow(t *testing.T) {
	tests := []struct {
		entry     game.RankedEntry
		wantRank  string
		wantName  string
		wantScore string
	}{
		{game.RankedEntry{Rank: 1, Name: "alice", Score: 350, Medal: "🥇"}, "1.", "alice", "350 pts"},
		{game.RankedEntry{Rank: 10, Name: "Guest", Score: 0}, "10.", "Guest", "0 pts"},
	}
	for _, tt := range tests {
		rank, name, score := FormatRow(tt.entry)
		if rank != tt.wantRank || name != tt.wantName || score != tt.wantScore {
			t.Errorf("FormatRow(%+v) = %q %q %q", tt.entry, rank, name, score)
		}
	}
}

func TestStatusIndicatorLabel(t *testing.T) {
	tests := []struct {
		name   string
		online bool
		known  bool
		want   string
	}{
		{name: "unknown", want: "Checking API..."},
		{name: "online", online: true, known: true, want: "API Online"},
		{name: "offline", known: true, want: "API Offline"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStatusIndicatorModule(&fakeLeaderboardSource{online: tt.online, known: tt.known}, 0, 0)
			if got, _ := m.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
