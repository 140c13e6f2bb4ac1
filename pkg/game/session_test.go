package game

import (
	"math"
	"testing"

	"github.com/gonewx/dermamon/pkg/config"
)

const frame = 1.0 / 60.0

func newTestSession() *Session {
	return NewSession(config.DefaultGameplayConfig())
}

// TestSessionStartResetsState 验证开局时所有计数恢复默认值
func TestSessionStartResetsState(t *testing.T) {
	s := newTestSession()
	if s.Phase() != PhaseIdle {
		t.Fatalf("initial phase = %v, want idle", s.Phase())
	}

	if !s.Start() {
		t.Fatal("Start() on idle session returned false")
	}
	if s.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing", s.Phase())
	}
	if s.Score() != 0 || s.Combo() != 0 {
		t.Errorf("score/combo = %d/%d, want 0/0", s.Score(), s.Combo())
	}
	if s.TimeLeft() != 60 {
		t.Errorf("TimeLeft() = %d, want 60", s.TimeLeft())
	}
	if s.SpeedMultiplier() != 1.0 {
		t.Errorf("SpeedMultiplier() = %v, want 1.0", s.SpeedMultiplier())
	}

	// 进行中再次 Start 无效
	if s.Start() {
		t.Error("Start() while playing should return false")
	}
}

// TestSessionComboScoring 验证连击得分为 10×combo 的三角数累加
func TestSessionComboScoring(t *testing.T) {
	tests := []struct {
		name      string
		hits      int
		wantScore int
	}{
		{name: "single hit", hits: 1, wantScore: 10},
		{name: "three hits", hits: 3, wantScore: 60},
		{name: "five hits", hits: 5, wantScore: 150},
		{name: "ten hits", hits: 10, wantScore: 550},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			s.Start()
			for i := 1; i <= tt.hits; i++ {
				if got := s.RegisterHit(); got != 10*i {
					t.Errorf("hit %d points = %d, want %d", i, got, 10*i)
				}
			}
			if s.Score() != tt.wantScore {
				t.Errorf("Score() = %d, want %d", s.Score(), tt.wantScore)
			}
			if s.Combo() != tt.hits {
				t.Errorf("Combo() = %d, want %d", s.Combo(), tt.hits)
			}
		})
	}
}

// TestSessionMissResetsCombo 验证未命中清零连击但保留得分
func TestSessionMissResetsCombo(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.RegisterHit()
	s.RegisterHit()
	s.RegisterMiss()

	if s.Combo() != 0 {
		t.Errorf("Combo() after miss = %d, want 0", s.Combo())
	}
	if s.Score() != 30 {
		t.Errorf("Score() after miss = %d, want 30", s.Score())
	}
	if got := s.RegisterHit(); got != 10 {
		t.Errorf("first hit after miss = %d, want 10", got)
	}
}

// TestSessionFullRoundSchedule 验证 60 秒一局的调度事件数量
func TestSessionFullRoundSchedule(t *testing.T) {
	s := newTestSession()
	s.Start()

	var ticks, spawns, escalations, ended, endFrame int
	for i := 1; i <= 60*60+120; i++ {
		ev := s.Advance(frame)
		ticks += ev.CountdownTicks
		spawns += ev.Spawns
		escalations += ev.Escalations
		if ev.Ended {
			ended++
			endFrame = i
			s.End(EndTimeUp)
		}
	}

	if ended != 1 {
		t.Fatalf("Ended reported %d times, want 1", ended)
	}
	if endFrame != 3600 {
		t.Errorf("ended at frame %d, want 3600", endFrame)
	}
	if ticks != 60 {
		t.Errorf("countdown ticks = %d, want 60", ticks)
	}
	// 3s, 6s, ..., 57s；60s 时倒计时先结束
	if spawns != 19 {
		t.Errorf("spawns = %d, want 19", spawns)
	}
	// 10s, 20s, ..., 50s
	if escalations != 5 {
		t.Errorf("escalations = %d, want 5", escalations)
	}
	if math.Abs(s.SpeedMultiplier()-2.5) > 1e-9 {
		t.Errorf("SpeedMultiplier() = %v, want 2.5", s.SpeedMultiplier())
	}
	if s.TimeLeft() != 0 {
		t.Errorf("TimeLeft() = %d, want 0", s.TimeLeft())
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", s.Phase())
	}
}

// TestSessionLargeStepKeepsOrder 验证一次大步长推进按时间顺序触发所有事件
func TestSessionLargeStepKeepsOrder(t *testing.T) {
	s := newTestSession()
	s.Start()

	ev := s.Advance(10.0)
	if ev.CountdownTicks != 10 {
		t.Errorf("CountdownTicks = %d, want 10", ev.CountdownTicks)
	}
	if ev.Spawns != 3 {
		t.Errorf("Spawns = %d, want 3", ev.Spawns)
	}
	if ev.Escalations != 1 {
		t.Errorf("Escalations = %d, want 1", ev.Escalations)
	}
	for i, m := range ev.SpawnMultipliers {
		if m != 1.0 {
			t.Errorf("SpawnMultipliers[%d] = %v, want 1.0", i, m)
		}
	}
	if ev.Ended {
		t.Error("Ended should be false after 10s")
	}
	if s.TimeLeft() != 50 {
		t.Errorf("TimeLeft() = %d, want 50", s.TimeLeft())
	}

	// 越过结束点时其余事件不再触发
	ev = s.Advance(100.0)
	if !ev.Ended {
		t.Fatal("Ended should be true")
	}
	if ev.CountdownTicks != 50 {
		t.Errorf("CountdownTicks = %d, want 50", ev.CountdownTicks)
	}
	if ev.Escalations != 4 {
		t.Errorf("Escalations = %d, want 4 (20s..50s)", ev.Escalations)
	}
}

// TestSessionPauseFreezesTimers 验证暂停期间计时器不推进
func TestSessionPauseFreezesTimers(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.Advance(2.5)

	if paused := s.TogglePause(); !paused {
		t.Fatal("TogglePause() should report paused")
	}
	for i := 0; i < 600; i++ {
		ev := s.Advance(frame)
		if ev.CountdownTicks != 0 || ev.Spawns != 0 || ev.Escalations != 0 || ev.Ended {
			t.Fatalf("events while paused: %+v", ev)
		}
	}
	if s.TimeLeft() != 58 {
		t.Errorf("TimeLeft() while paused = %d, want 58", s.TimeLeft())
	}

	if paused := s.TogglePause(); paused {
		t.Fatal("TogglePause() should report resumed")
	}
	// 恢复后 0.5s 内到达 3s 的生成点，而不是重新计时
	ev := s.Advance(0.5)
	if ev.Spawns != 1 {
		t.Errorf("Spawns after resume = %d, want 1", ev.Spawns)
	}
	if ev.CountdownTicks != 1 {
		t.Errorf("CountdownTicks after resume = %d, want 1", ev.CountdownTicks)
	}
	if math.Abs(s.Elapsed()-3.0) > 1e-9 {
		t.Errorf("Elapsed() = %v, want 3.0", s.Elapsed())
	}
}

// TestSessionTogglePauseWhileIdle 验证 idle 时切换暂停无效
func TestSessionTogglePauseWhileIdle(t *testing.T) {
	s := newTestSession()
	if s.TogglePause() {
		t.Error("TogglePause() on idle session should not pause")
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", s.Phase())
	}
}

// TestSessionEndIsIdempotent 验证结束只生效一次
func TestSessionEndIsIdempotent(t *testing.T) {
	s := newTestSession()
	if s.End(EndReset) {
		t.Error("End() on idle session should return false")
	}

	s.Start()
	s.TogglePause()
	if !s.End(EndClosed) {
		t.Error("End() on paused session should return true")
	}
	if s.End(EndClosed) {
		t.Error("second End() should return false")
	}
	if s.IsRunning() {
		t.Error("IsRunning() should be false after End")
	}
}

// TestSessionResetAfterEnd 验证重置恢复默认值
func TestSessionResetAfterEnd(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.RegisterHit()
	s.Advance(12)
	s.End(EndReset)
	s.Reset()

	if s.Score() != 0 || s.Combo() != 0 || s.TimeLeft() != 60 || s.SpeedMultiplier() != 1.0 {
		t.Errorf("after reset: score=%d combo=%d timeLeft=%d speed=%v",
			s.Score(), s.Combo(), s.TimeLeft(), s.SpeedMultiplier())
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", s.Phase())
	}
}

// TestSessionSpawnBeforeEscalation 验证同时到期时生成使用加速前的倍率
func TestSessionSpawnBeforeEscalation(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.Advance(29.5)

	ev := s.Advance(0.5) // 30s: 生成与加速同时到期
	if ev.Spawns != 1 || ev.Escalations != 1 {
		t.Fatalf("events at 30s = %+v, want one spawn and one escalation", ev)
	}
	if math.Abs(ev.SpawnMultipliers[0]-1.6) > 1e-9 {
		t.Errorf("spawn multiplier = %v, want 1.6 (before third escalation)", ev.SpawnMultipliers[0])
	}
	if math.Abs(s.SpeedMultiplier()-1.9) > 1e-9 {
		t.Errorf("SpeedMultiplier() = %v, want 1.9", s.SpeedMultiplier())
	}
}

// TestSessionScheduleOrder 验证大步长推进时生成与加速按到期顺序排列
func TestSessionScheduleOrder(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.Advance(8.5)

	ev := s.Advance(4.0) // 9s 生成, 10s 加速, 12s 生成
	want := []ScheduledEvent{
		{Kind: ScheduledSpawn, Multiplier: 1.0},
		{Kind: ScheduledEscalation, Multiplier: 1.3},
		{Kind: ScheduledSpawn, Multiplier: 1.3},
	}
	if len(ev.Schedule) != len(want) {
		t.Fatalf("Schedule = %+v, want %+v", ev.Schedule, want)
	}
	for i, w := range want {
		got := ev.Schedule[i]
		if got.Kind != w.Kind || math.Abs(got.Multiplier-w.Multiplier) > 1e-9 {
			t.Errorf("Schedule[%d] = %+v, want %+v", i, got, w)
		}
	}
}
