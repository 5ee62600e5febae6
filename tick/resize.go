package tick

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// ResizeWatcher installs a SIGWINCH handler that does the smallest
// permissible amount of work — incrementing an atomic counter — per
// spec.md §9's design note and §5's "signal-handler interaction" rule.
// The main loop takes a cheap plain read of Count() each tick and
// compares it against its own last-seen snapshot; since the counter is
// monotonic and single-producer, that comparison is race-free without
// needing a lock on the signal-handling side, grounded on the teacher's
// SIGWINCH wiring in tui/screen.go (signal.Notify + a dedicated goroutine).
type ResizeWatcher struct {
	counter int32
	sigCh   chan os.Signal
	stopCh  chan struct{}
}

// NewResizeWatcher installs the SIGWINCH handler and starts watching.
func NewResizeWatcher() *ResizeWatcher {
	w := &ResizeWatcher{
		sigCh:  make(chan os.Signal, 1),
		stopCh: make(chan struct{}),
	}
	signal.Notify(w.sigCh, syscall.SIGWINCH)
	go w.loop()
	return w
}

func (w *ResizeWatcher) loop() {
	for {
		select {
		case <-w.stopCh:
			return
		case <-w.sigCh:
			atomic.AddInt32(&w.counter, 1)
		}
	}
}

// Count returns the current resize generation. It advances by one for
// each SIGWINCH the watcher receives between NewResizeWatcher and Stop;
// signals that arrive while an earlier one is still queued are coalesced
// into a single advance.
func (w *ResizeWatcher) Count() int32 {
	return atomic.LoadInt32(&w.counter)
}

// Stop unregisters the signal handler and halts the watcher goroutine.
// Safe to call once; Count remains readable afterward.
func (w *ResizeWatcher) Stop() {
	signal.Stop(w.sigCh)
	close(w.stopCh)
}

// Snapshot tracks a ResizeWatcher's last-observed generation from the
// perspective of a single consumer (the App's main loop).
type Snapshot struct {
	lastSeen int32
}

// Advanced reports whether w's counter has moved since the last call,
// updating the snapshot's internal state as a side effect.
func (s *Snapshot) Advanced(w *ResizeWatcher) bool {
	current := w.Count()
	if current != s.lastSeen {
		s.lastSeen = current
		return true
	}
	return false
}
