package graphics

import (
	"testing"
	"time"
)

// fakeClock drives a pacer deterministically.
type fakeClock struct {
	now    time.Time
	slept  time.Duration
	sleeps int
}

func newFakePacer() (*FramePacer, *fakeClock) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	pacer := NewFramePacer()
	pacer.now = func() time.Time { return clock.now }
	pacer.sleep = func(d time.Duration) {
		clock.slept += d
		clock.sleeps++
		clock.now = clock.now.Add(d)
	}
	return pacer, clock
}

func TestFramePacerNoLimitNeverSleeps(t *testing.T) {
	pacer, clock := newFakePacer()

	pacer.BeginFrameStage()
	clock.now = clock.now.Add(time.Millisecond)
	pacer.WaitForFrame()

	if clock.sleeps != 0 {
		t.Errorf("sleeps = %d, want 0 without a framerate limit", clock.sleeps)
	}
}

func TestFramePacerLimitSleepsRemainder(t *testing.T) {
	pacer, clock := newFakePacer()
	pacer.SetLimitFramerate(LimitFramerate{Enabled: true, Rate: 100})

	pacer.BeginFrameStage()
	clock.now = clock.now.Add(4 * time.Millisecond)
	pacer.WaitForFrame()

	if clock.sleeps != 1 {
		t.Fatalf("sleeps = %d, want 1", clock.sleeps)
	}
	if clock.slept != 6*time.Millisecond {
		t.Errorf("slept = %v, want 6ms of a 10ms interval", clock.slept)
	}
}

func TestFramePacerStaleStageIgnored(t *testing.T) {
	pacer, clock := newFakePacer()

	stale := pacer.BeginFrameStage()
	clock.now = clock.now.Add(2 * time.Millisecond)
	current := pacer.BeginFrameStage()

	clock.now = clock.now.Add(5 * time.Millisecond)
	pacer.EndFrameStage(stale)
	if pacer.CPUTime() != 0 {
		t.Errorf("CPU time from stale stage = %v, want 0", pacer.CPUTime())
	}

	pacer.EndFrameStage(current)
	if pacer.CPUTime() != 5*time.Millisecond {
		t.Errorf("CPU time = %v, want 5ms", pacer.CPUTime())
	}
}

func TestFramePacerFrameTimeSmoothing(t *testing.T) {
	pacer, clock := newFakePacer()

	pacer.BeginFrameStage()
	clock.now = clock.now.Add(16 * time.Millisecond)
	pacer.BeginFrameStage()
	if pacer.FrameTime() != 16*time.Millisecond {
		t.Fatalf("first frame time = %v, want 16ms", pacer.FrameTime())
	}

	clock.now = clock.now.Add(32 * time.Millisecond)
	pacer.BeginFrameStage()
	// EWMA with 1/4 step: 16 + (32-16)/4.
	if pacer.FrameTime() != 20*time.Millisecond {
		t.Errorf("smoothed frame time = %v, want 20ms", pacer.FrameTime())
	}
}
