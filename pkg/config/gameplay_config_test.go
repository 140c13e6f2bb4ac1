package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultGameplayConfig 测试默认值与玩法约定一致
func TestDefaultGameplayConfig(t *testing.T) {
	cfg := DefaultGameplayConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"session.durationSeconds", float64(cfg.Session.DurationSeconds), 60},
		{"spawn.interval", cfg.Spawn.Interval, 3},
		{"spawn.initialCount", float64(cfg.Spawn.InitialCount), 2},
		{"spawn.maxTargets", float64(cfg.Spawn.MaxTargets), 5},
		{"escalation.interval", cfg.Escalation.Interval, 10},
		{"escalation.multiplierStep", cfg.Escalation.MultiplierStep, 0.3},
		{"escalation.velocityScale", cfg.Escalation.VelocityScale, 1.15},
		{"target.size", cfg.Target.Size, 60},
		{"scoring.pointsPerCombo", float64(cfg.Scoring.PointsPerCombo), 10},
		{"particles.count", float64(cfg.Particles.Count), 15},
		{"leaderboard.topN", float64(cfg.Leaderboard.TopN), 10},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}

	if cfg.Leaderboard.GameType != "balloon_hit" {
		t.Errorf("leaderboard.gameType: got %q, want balloon_hit", cfg.Leaderboard.GameType)
	}
}

// TestParseGameplayConfigPartialOverride 测试部分覆盖保留默认值
func TestParseGameplayConfigPartialOverride(t *testing.T) {
	data := []byte(`
session:
  durationSeconds: 30
spawn:
  maxTargets: 8
`)
	cfg, err := ParseGameplayConfig(data)
	if err != nil {
		t.Fatalf("ParseGameplayConfig error: %v", err)
	}

	if cfg.Session.DurationSeconds != 30 {
		t.Errorf("durationSeconds: got %d, want 30", cfg.Session.DurationSeconds)
	}
	if cfg.Spawn.MaxTargets != 8 {
		t.Errorf("maxTargets: got %d, want 8", cfg.Spawn.MaxTargets)
	}
	// 未覆盖的字段保持默认
	if cfg.Spawn.Interval != 3 {
		t.Errorf("spawn.interval: got %v, want 3", cfg.Spawn.Interval)
	}
	if cfg.Session.CountdownInterval != 1 {
		t.Errorf("countdownInterval: got %v, want 1", cfg.Session.CountdownInterval)
	}
}

// TestValidateRejectsBadValues 测试校验规则
func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *GameplayConfig)
	}{
		{"zero canvas", func(c *GameplayConfig) { c.Canvas.Width = 0 }},
		{"zero duration", func(c *GameplayConfig) { c.Session.DurationSeconds = 0 }},
		{"zero spawn interval", func(c *GameplayConfig) { c.Spawn.Interval = 0 }},
		{"initial above cap", func(c *GameplayConfig) { c.Spawn.InitialCount = 6 }},
		{"zero target size", func(c *GameplayConfig) { c.Target.Size = 0 }},
		{"margin too large", func(c *GameplayConfig) { c.Spawn.Margin = 500 }},
		{"particle sizes inverted", func(c *GameplayConfig) { c.Particles.MinSize = 20 }},
		{"zero points", func(c *GameplayConfig) { c.Scoring.PointsPerCombo = 0 }},
		{"zero topN", func(c *GameplayConfig) { c.Leaderboard.TopN = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGameplayConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

// TestLoadGameplayConfigFile 测试从文件加载
func TestLoadGameplayConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dermamon.yaml")
	if err := os.WriteFile(path, []byte("canvas:\n  width: 800\n  height: 500\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGameplayConfig(path)
	if err != nil {
		t.Fatalf("LoadGameplayConfig error: %v", err)
	}
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 500 {
		t.Errorf("canvas: got %dx%d, want 800x500", cfg.Canvas.Width, cfg.Canvas.Height)
	}

	if _, err := LoadGameplayConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("canvas: [1, 2"), 0644)
	if _, err := LoadGameplayConfig(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

// TestFlashDuration 测试闪屏时长换算
func TestFlashDuration(t *testing.T) {
	cfg := DefaultGameplayConfig()
	if got := cfg.FlashDuration(); got != FrameDuration {
		t.Errorf("FlashDuration: got %v, want one frame (%v)", got, FrameDuration)
	}

	cfg.Escalation.FlashFrames = 0
	if got := cfg.FlashDuration(); got != FrameDuration {
		t.Errorf("FlashDuration with 0 frames: got %v, want %v", got, FrameDuration)
	}

	cfg.Escalation.FlashFrames = 30
	if got := cfg.FlashDuration(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("FlashDuration with 30 frames: got %v, want 0.5", got)
	}
}
