package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestSubmitScore(t *testing.T) {
	var got ScoreSubmission
	var authHeader, contentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/game/score" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		authHeader = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(ScoreResponse{Success: true, Score: got.Score})
	}))
	defer srv.Close()

	t.Run("with token", func(t *testing.T) {
		c := NewClient(srv.URL+"/api/", "tok", srv.Client())
		err := c.SubmitScore(context.Background(), ScoreSubmission{Score: 60, GameType: DefaultGameType, UserID: "u1"})
		if err != nil {
			t.Fatalf("SubmitScore error: %v", err)
		}
		if got.Score != 60 || got.GameType != "balloon_hit" || got.UserID != "u1" {
			t.Errorf("server received %+v", got)
		}
		if authHeader != "Bearer tok" {
			t.Errorf("Authorization: got %q", authHeader)
		}
		if contentType != "application/json" {
			t.Errorf("Content-Type: got %q", contentType)
		}
	})

	t.Run("without token", func(t *testing.T) {
		c := NewClient(srv.URL+"/api", "", srv.Client())
		if err := c.SubmitScore(context.Background(), ScoreSubmission{UserID: GuestUserID}); err != nil {
			t.Fatalf("SubmitScore error: %v", err)
		}
		if authHeader != "" {
			t.Errorf("Authorization should be absent, got %q", authHeader)
		}
	})
}

func TestSubmitScoreStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", srv.Client())
	err := c.SubmitScore(context.Background(), ScoreSubmission{})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode: got %d", statusErr.StatusCode)
	}
}

func TestFetchLeaderboard(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLen int
		wantErr bool
	}{
		{"ok", `{"success":true,"leaderboard":[{"user_id":"a","score":30},{"user_id":"b","score":20}]}`, 2, false},
		{"unsuccessful", `{"success":false,"error":"boom"}`, 0, true},
		{"missing list", `{"success":true}`, 0, true},
		{"malformed", `{"success":`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/game/leaderboard" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			entries, err := NewClient(srv.URL, "", srv.Client()).FetchLeaderboard(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchLeaderboard error: %v", err)
			}
			if len(entries) != tt.wantLen {
				t.Errorf("entries: got %d, want %d", len(entries), tt.wantLen)
			}
			if entries[0].UserID != "a" || entries[0].Score != 30 {
				t.Errorf("order not preserved: %+v", entries)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", srv.Client())
	if err := c.Health(context.Background()); err != nil {
		t.Errorf("Health with 200: %v", err)
	}

	status.Store(http.StatusServiceUnavailable)
	if err := c.Health(context.Background()); err == nil {
		t.Error("Health with 503 should fail")
	}

	srv.Close()
	if err := c.Health(context.Background()); err == nil {
		t.Error("Health with closed server should fail")
	}
}
