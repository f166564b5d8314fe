package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	got := clock.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", got, before, after)
	}
}

func TestRealClock_TickerDelivers(t *testing.T) {
	clock := RealClock{}
	ticker := clock.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	select {
	case <-ticker.C():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a tick within 2s")
	}
}

func TestMockClock_NowAdvances(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	if got := clock.Now(); !got.Equal(start) {
		t.Errorf("expected %v, got %v", start, got)
	}

	clock.Advance(90 * time.Second)
	if got := clock.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Errorf("expected %v, got %v", start.Add(90*time.Second), got)
	}
}

func TestMockClock_SleepRecordsWithoutWaiting(t *testing.T) {
	clock := NewMockClock(time.Now())

	begun := time.Now()
	clock.Sleep(time.Hour)
	clock.Sleep(2 * time.Second)
	if elapsed := time.Since(begun); elapsed > time.Second {
		t.Fatalf("Sleep blocked for %v", elapsed)
	}

	sleeps := clock.Sleeps()
	if len(sleeps) != 2 {
		t.Fatalf("expected 2 recorded sleeps, got %d", len(sleeps))
	}
	if sleeps[0] != time.Hour || sleeps[1] != 2*time.Second {
		t.Errorf("unexpected sleeps: %v", sleeps)
	}
}

func TestMockClock_AdvanceFiresTicker(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)
	ticker := clock.NewTicker(20 * time.Millisecond)

	select {
	case tick := <-ticker.C():
		t.Fatalf("unexpected tick %v before Advance", tick)
	default:
	}

	clock.Advance(25 * time.Millisecond)
	select {
	case tick := <-ticker.C():
		if want := start.Add(20 * time.Millisecond); !tick.Equal(want) {
			t.Errorf("expected tick at %v, got %v", want, tick)
		}
	default:
		t.Fatal("expected a tick after advancing past the period")
	}

	clock.Advance(20 * time.Millisecond)
	select {
	case <-ticker.C():
	default:
		t.Fatal("expected a second tick")
	}
}

func TestMockTicker_StopSuppressesTicks(t *testing.T) {
	clock := NewMockClock(time.Now())
	ticker := clock.NewTicker(10 * time.Millisecond)
	ticker.Stop()

	clock.Advance(50 * time.Millisecond)
	select {
	case tick := <-ticker.C():
		t.Fatalf("unexpected tick %v after Stop", tick)
	default:
	}
}
