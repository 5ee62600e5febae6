package app

import (
	"errors"

	"celina/buffer"
	"celina/events"
	"celina/geometry"

	"testing"
)

// fakeBackend is a scriptable terminal.Backend: PollReady/ReadByte serve
// bytes from an in-memory queue so the tick loop runs deterministically
// without a real tty, mirroring the fakes in renderer_test.go and
// decoder_test.go.
type fakeBackend struct {
	queue []byte
	size  geometry.Size

	rawModeEnables  int
	rawModeDisables int
	written         []byte
}

func (f *fakeBackend) EnableRawMode() error {
	f.rawModeEnables++
	return nil
}

func (f *fakeBackend) DisableRawMode() error {
	f.rawModeDisables++
	return nil
}

func (f *fakeBackend) Size() (geometry.Size, error) { return f.size, nil }

func (f *fakeBackend) PollReady(timeoutMs int) (bool, error) {
	return len(f.queue) > 0, nil
}

func (f *fakeBackend) ReadByte() (byte, error) {
	if len(f.queue) == 0 {
		return 0, errors.New("no data queued")
	}
	b := f.queue[0]
	f.queue = f.queue[1:]
	return b, nil
}

func (f *fakeBackend) TryReadByte() (byte, bool, error) {
	if len(f.queue) == 0 {
		return 0, false, nil
	}
	b := f.queue[0]
	f.queue = f.queue[1:]
	return b, true, nil
}

func (f *fakeBackend) Write(p []byte) error {
	f.written = append(f.written, p...)
	return nil
}

func TestRunDrainsEventsAndStopsOnQuit(t *testing.T) {
	fb := &fakeBackend{queue: []byte{'a', 0x03}, size: geometry.Size{Width: 10, Height: 5}}
	a, err := New(DefaultConfig(), fb)
	if err != nil {
		t.Fatal(err)
	}

	var seen []events.Event
	onEvent := func(ev events.Event) bool {
		seen = append(seen, ev)
		return true
	}
	rendered := 0
	onRender := func(buf *buffer.Buffer) { rendered++ }

	if err := a.Run(onEvent, onRender); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("expected 2 events (key, quit), got %d", len(seen))
	}
	if _, ok := seen[1].(events.QuitEvent); !ok {
		t.Errorf("expected second event to be QuitEvent, got %T", seen[1])
	}
	if a.Stats().EventsDrained != 2 {
		t.Errorf("expected EventsDrained == 2, got %d", a.Stats().EventsDrained)
	}
	if a.Stats().TicksRun == 0 {
		t.Errorf("expected at least one tick")
	}
	if fb.rawModeEnables != 1 || fb.rawModeDisables != 1 {
		t.Errorf("expected raw mode enabled and disabled exactly once, got %d/%d", fb.rawModeEnables, fb.rawModeDisables)
	}
}

func TestRunStopsWhenEventHandlerReturnsFalse(t *testing.T) {
	fb := &fakeBackend{queue: []byte{'a', 'b', 'c'}, size: geometry.Size{Width: 10, Height: 5}}
	a, err := New(DefaultConfig(), fb)
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	onEvent := func(ev events.Event) bool {
		count++
		return count < 1
	}

	if err := a.Run(onEvent, func(*buffer.Buffer) {}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected the loop to stop after the first event returned false, got %d calls", count)
	}
}

func TestQuitSetsFlagObservedAtEndOfTick(t *testing.T) {
	fb := &fakeBackend{queue: []byte{'a'}, size: geometry.Size{Width: 10, Height: 5}}
	a, err := New(DefaultConfig(), fb)
	if err != nil {
		t.Fatal(err)
	}

	onEvent := func(ev events.Event) bool {
		a.Quit()
		return true
	}

	if err := a.Run(onEvent, func(*buffer.Buffer) {}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if a.Stats().EventsDrained != 1 {
		t.Errorf("expected exactly 1 event drained before quitting, got %d", a.Stats().EventsDrained)
	}
}

func TestSuspendResumeTogglesRawMode(t *testing.T) {
	fb := &fakeBackend{size: geometry.Size{Width: 10, Height: 5}}
	a, err := New(DefaultConfig(), fb)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.enable(); err != nil {
		t.Fatal(err)
	}

	resume := a.Suspend()
	if fb.rawModeDisables != 1 {
		t.Fatalf("expected Suspend to disable raw mode once, got %d", fb.rawModeDisables)
	}
	resume()
	if fb.rawModeEnables != 2 {
		t.Errorf("expected resume to re-enable raw mode, got %d enables", fb.rawModeEnables)
	}
}

func TestWindowModeDispatchesDrainedEventsToManager(t *testing.T) {
	fb := &fakeBackend{queue: []byte{'a', 0x03}, size: geometry.Size{Width: 10, Height: 5}}
	cfg := DefaultConfig()
	cfg.WindowMode = true
	a, err := New(cfg, fb)
	if err != nil {
		t.Fatal(err)
	}
	if a.Manager() == nil {
		t.Fatal("expected a window manager in WindowMode")
	}

	dispatched := 0
	w := a.Manager().CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 5, Height: 5}, "w")
	w.OnKey(func(events.KeyEvent) bool {
		dispatched++
		return true
	})
	a.Manager().Focus(w.ID())

	if err := a.Run(func(events.Event) bool { return true }, func(*buffer.Buffer) {}); err != nil {
		t.Fatal(err)
	}
	if dispatched != 1 {
		t.Errorf("expected the window's key handler to see the 'a' key, got %d calls", dispatched)
	}
}
