package tick

import (
	"testing"
	"time"
)

// fakeClock is a manually advanced Clock for deterministic FPS tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	// Any fixed starting instant works; only relative advances matter to
	// FpsMonitor.
	return &fakeClock{now: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// S7 — FPS pacing.
func TestShouldRenderAtTargetInterval(t *testing.T) {
	clock := newFakeClock()
	f := NewFpsMonitorWithClock(60, clock)

	f.StartFrame()
	clock.advance(10 * time.Millisecond)
	if f.ShouldRender() {
		t.Errorf("expected ShouldRender() == false at 10ms with target_fps=60 (interval ~16.7ms)")
	}

	clock.advance(10 * time.Millisecond) // total 20ms
	if !f.ShouldRender() {
		t.Errorf("expected ShouldRender() == true at 20ms with target_fps=60")
	}
}

func TestRemainingFrameMsAtTenMillis(t *testing.T) {
	clock := newFakeClock()
	f := NewFpsMonitorWithClock(60, clock)

	clock.advance(10 * time.Millisecond)
	remaining := f.RemainingFrameMs()
	if remaining != 6 && remaining != 7 {
		t.Errorf("expected remaining ~6-7ms at 10ms elapsed with target_fps=60, got %d", remaining)
	}
}

func TestRemainingFrameMsNeverNegative(t *testing.T) {
	clock := newFakeClock()
	f := NewFpsMonitorWithClock(60, clock)

	clock.advance(time.Second)
	if f.RemainingFrameMs() != 0 {
		t.Errorf("expected remaining to clamp to 0 once well past the interval, got %d", f.RemainingFrameMs())
	}
}

func TestTargetFPSClampedToRange(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 1},
		{-5, 1},
		{60, 60},
		{241, 240},
		{1000, 240},
	}
	for _, c := range cases {
		f := NewFpsMonitor(c.in)
		if f.TargetFPS() != c.want {
			t.Errorf("NewFpsMonitor(%d).TargetFPS() = %d, want %d", c.in, f.TargetFPS(), c.want)
		}
	}
}

func TestEndFrameUpdatesLastRenderAndResetsShouldRender(t *testing.T) {
	clock := newFakeClock()
	f := NewFpsMonitorWithClock(60, clock)

	clock.advance(20 * time.Millisecond)
	if !f.ShouldRender() {
		t.Fatalf("sanity: should render before EndFrame")
	}
	f.EndFrame()
	if f.ShouldRender() {
		t.Errorf("expected ShouldRender() == false immediately after EndFrame")
	}
}

func TestCurrentFPSUpdatesAfterOneSecondWindow(t *testing.T) {
	clock := newFakeClock()
	f := NewFpsMonitorWithClock(60, clock)

	for i := 0; i < 60; i++ {
		clock.advance(16 * time.Millisecond)
		f.EndFrame()
	}
	// 60 frames at 16ms = 960ms, not yet a full second: no update expected.
	if f.CurrentFPS() != 0 {
		t.Errorf("expected no FPS estimate before a full second elapses, got %f", f.CurrentFPS())
	}

	clock.advance(50 * time.Millisecond)
	f.EndFrame()
	if f.CurrentFPS() <= 0 {
		t.Errorf("expected a positive FPS estimate once a full second has elapsed, got %f", f.CurrentFPS())
	}
}

func TestResizeSnapshotDetectsAdvance(t *testing.T) {
	w := &ResizeWatcher{}
	var snap Snapshot

	if snap.Advanced(w) {
		t.Errorf("a freshly constructed watcher with no signals should not report an advance")
	}

	w.counter = 1
	if !snap.Advanced(w) {
		t.Errorf("expected the snapshot to detect the counter moving")
	}
	if snap.Advanced(w) {
		t.Errorf("a second check with no further change should not report an advance")
	}
}
