// Package tick implements the timing primitives behind celina's main
// loop from spec.md §4.5: FPS pacing and the global SIGWINCH resize
// counter.
package tick

import "time"

const (
	minTargetFPS = 1
	maxTargetFPS = 240
)

// Clock abstracts time.Now so FpsMonitor can be driven by a simulated
// clock in tests, per spec.md §8 scenario S7 ("simulated monotonic
// clock").
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// FpsMonitor tracks the target frame interval, the timestamp of the last
// render, and a rolling current-FPS estimate, per spec.md §4.4:
// "target FPS (clamped 1..240), last-render timestamp, frame counter
// (reset each second), cached current FPS."
type FpsMonitor struct {
	clock      Clock
	targetFPS  int
	interval   time.Duration
	lastRender time.Time

	windowStart time.Time
	frameCount  int
	currentFPS  float64
}

// NewFpsMonitor creates an FpsMonitor driven by the real system clock,
// clamping targetFPS to [1, 240].
func NewFpsMonitor(targetFPS int) *FpsMonitor {
	return NewFpsMonitorWithClock(targetFPS, systemClock{})
}

// NewFpsMonitorWithClock creates an FpsMonitor driven by an arbitrary
// Clock, for deterministic testing.
func NewFpsMonitorWithClock(targetFPS int, clock Clock) *FpsMonitor {
	if targetFPS < minTargetFPS {
		targetFPS = minTargetFPS
	}
	if targetFPS > maxTargetFPS {
		targetFPS = maxTargetFPS
	}
	now := clock.Now()
	return &FpsMonitor{
		clock:       clock,
		targetFPS:   targetFPS,
		interval:    time.Second / time.Duration(targetFPS),
		lastRender:  now,
		windowStart: now,
	}
}

// TargetFPS returns the clamped target frame rate.
func (f *FpsMonitor) TargetFPS() int { return f.targetFPS }

// CurrentFPS returns the most recently computed actual frame rate,
// updated once per second of wall-clock time by EndFrame.
func (f *FpsMonitor) CurrentFPS() float64 { return f.currentFPS }

// StartFrame marks the beginning of a render attempt. It does not itself
// gate rendering — ShouldRender does — but callers invoke it per
// spec.md §4.5 step 5 before the render callback runs.
func (f *FpsMonitor) StartFrame() {}

// ShouldRender reports whether at least one target interval has elapsed
// since the last completed frame.
func (f *FpsMonitor) ShouldRender() bool {
	return f.clock.Now().Sub(f.lastRender) >= f.interval
}

// RemainingFrameMs returns how many milliseconds remain until the next
// frame is due, clamped to zero. The main loop uses this as the
// poll_events timeout.
func (f *FpsMonitor) RemainingFrameMs() int {
	remaining := f.interval - f.clock.Now().Sub(f.lastRender)
	if remaining < 0 {
		remaining = 0
	}
	return int(remaining.Milliseconds())
}

// EndFrame records that a frame was just rendered, advancing the
// last-render timestamp and rolling the one-second FPS counter.
func (f *FpsMonitor) EndFrame() {
	now := f.clock.Now()
	f.lastRender = now
	f.frameCount++

	if elapsed := now.Sub(f.windowStart); elapsed >= time.Second {
		f.currentFPS = float64(f.frameCount) / elapsed.Seconds()
		f.frameCount = 0
		f.windowStart = now
	}
}
