package app

import (
	"celina/buffer"
	"celina/cerrors"
	"celina/cursor"
	"celina/events"
	"celina/geometry"
	"celina/log"
	"celina/renderer"
	"celina/terminal"
	"celina/tick"
	"celina/windows"
)

// EventHandler is invoked once per drained input event. It returns false
// to request the loop exit, per spec.md §4.5 step 4.
type EventHandler func(events.Event) bool

// RenderFunc populates buf for the current frame. It runs only on ticks
// where the FpsMonitor says a render is due, per spec.md §4.5 step 5.
type RenderFunc func(buf *buffer.Buffer)

// maxEventsPerTick bounds how many queued events are drained before the
// loop checks whether a render is due, per spec.md §4.5 step 4: "a hard
// cap to prevent starvation of the render step".
const maxEventsPerTick = 5

// Stats exposes read-only counters accumulated over a Run, supplementing
// spec.md §4.5's tick algorithm with the kind of summary the teacher's
// demos print on exit.
type Stats struct {
	FramesRendered uint64
	EventsDrained  uint64
	TicksRun       uint64
}

// App wires a terminal.Backend, an event decoder, a renderer, an optional
// window manager, and FPS/resize pacing into the tick loop from
// spec.md §4.5, grounded on the teacher's Screen (tui/screen.go): the same
// init-raw-mode / watch-SIGWINCH / hide-cursor sequence, generalized past
// one fixed buffer pair into celina's buffer+renderer+windows stack.
type App struct {
	config  Config
	backend terminal.Backend
	decoder *events.Decoder
	render  *renderer.Renderer
	fps     *tick.FpsMonitor
	resize  *tick.ResizeWatcher
	resizeSnap tick.Snapshot
	manager *windows.Manager

	features featureSet
	quitFlag bool
	stats    Stats

	buf *buffer.Buffer
}

// New constructs an App over backend with cfg. If cfg.WindowMode is set,
// the App carries its own windows.Manager and composites it each render.
func New(cfg Config, backend terminal.Backend) (*App, error) {
	size, err := backend.Size()
	if err != nil {
		log.Warn("falling back to default terminal size", "width", 80, "height", 24, "error", err)
		size = geometry.Size{Width: 80, Height: 24}
	}

	a := &App{
		config:  cfg,
		backend: backend,
		decoder: events.NewDecoder(backend),
		render:  renderer.New(backend),
		fps:     tick.NewFpsMonitor(cfg.normalizedTargetFPS()),
		resize:  tick.NewResizeWatcher(),
		buf:     buffer.New(geometry.NewRect(0, 0, size.Width, size.Height)),
	}
	if cfg.WindowMode {
		a.manager = windows.NewManager()
	}
	return a, nil
}

// Manager returns the App's window manager, or nil if the App was built
// without WindowMode.
func (a *App) Manager() *windows.Manager { return a.manager }

// Stats returns a snapshot of the App's run counters.
func (a *App) Stats() Stats { return a.stats }

// Quit requests that Run stop at the end of the current tick.
func (a *App) Quit() { a.quitFlag = true }

// SetCursor records the cursor presentation the renderer should
// reconcile into the next rendered frame: visible at pos in the given
// DECSCUSR shape, or hidden when visible is false.
func (a *App) SetCursor(visible bool, pos cursor.Position, style cursor.Style) {
	a.render.SetCursor(renderer.CursorState{Visible: visible, Position: pos, Style: style})
}

func (a *App) write(s string) error {
	return a.backend.Write([]byte(s))
}

func (a *App) swallow(err error) {
	if err != nil {
		log.Warn("cleanup step failed, continuing", "error", err)
	}
}

// Run enables the configured terminal features, executes the tick loop
// until onEvent returns false, a Quit event arrives, a.Quit is called, or
// an unrecoverable error occurs, then guarantees cleanup — the init/undo
// symmetry from spec.md §4.5/§7.
func (a *App) Run(onEvent EventHandler, onRender RenderFunc) (err error) {
	if err := a.enable(); err != nil {
		a.disable()
		a.resize.Stop()
		return cerrors.Wrap(cerrors.KindTerminal, cerrors.SubTerminalConfig, "enabling terminal features", err)
	}
	defer func() {
		a.disable()
		a.resize.Stop()
	}()

	for {
		a.stats.TicksRun++

		if a.resizeSnap.Advanced(a.resize) {
			if tErr := a.handleResize(onEvent); tErr != nil {
				return tErr
			}
			if a.quitFlag {
				return nil
			}
		}

		remainingMs := a.fps.RemainingFrameMs()

		ready, pollErr := a.decoder.PollEvents(remainingMs)
		if pollErr != nil {
			return cerrors.Wrap(cerrors.KindIO, cerrors.SubIORead, "polling for input", pollErr)
		}

		if ready {
			if stop, dErr := a.drainEvents(onEvent); dErr != nil {
				return dErr
			} else if stop {
				return nil
			}
		}

		if a.fps.ShouldRender() {
			a.fps.StartFrame()
			onRender(a.buf)
			if rErr := a.render.Render(a.buf); rErr != nil {
				return cerrors.Wrap(cerrors.KindIO, cerrors.SubIOWrite, "rendering frame", rErr)
			}
			a.fps.EndFrame()
			a.stats.FramesRendered++
		}

		if a.quitFlag {
			return nil
		}
	}
}

// handleResize implements spec.md §4.5 step 1: resize the buffer, force a
// full redraw, and dispatch a Resize event to the user handler (and, in
// windowed mode, nowhere else — windows don't themselves own the root
// terminal size).
func (a *App) handleResize(onEvent EventHandler) error {
	size, err := a.backend.Size()
	if err != nil {
		log.Warn("resize query failed, keeping previous size", "error", err)
		return nil
	}
	a.buf.Resize(geometry.NewRect(0, 0, size.Width, size.Height))
	a.render.ForceFullRedraw()

	ev := events.ResizeEvent{Width: size.Width, Height: size.Height}
	if !onEvent(ev) {
		a.quitFlag = true
	}
	return nil
}

// drainEvents implements spec.md §4.5 step 4: up to maxEventsPerTick
// events, each routed to the user handler first, then (in windowed mode)
// to the window manager. Returns stop=true if the loop should exit.
func (a *App) drainEvents(onEvent EventHandler) (stop bool, err error) {
	for i := 0; i < maxEventsPerTick; i++ {
		ev, err := a.decoder.ReadKeyBlocking()
		if err != nil {
			return false, cerrors.Wrap(cerrors.KindIO, cerrors.SubIORead, "reading input event", err)
		}
		a.stats.EventsDrained++

		if !onEvent(ev) {
			return true, nil
		}
		if _, isQuit := ev.(events.QuitEvent); isQuit {
			return true, nil
		}
		if a.manager != nil {
			a.manager.Dispatch(ev)
		}

		more, pollErr := a.decoder.PollEvents(0)
		if pollErr != nil {
			return false, cerrors.Wrap(cerrors.KindIO, cerrors.SubIORead, "polling for input", pollErr)
		}
		if !more {
			break
		}
	}
	return false, nil
}

// Suspend disables every enabled feature and restores the cursor, for
// shelling out to an external program (an editor, a pager). Resume must
// always run afterward, even if the caller's scoped work panics; Suspend
// returns a resume func precisely so callers can defer it immediately.
//
//	resume := a.Suspend()
//	defer resume()
//	runEditor()
func (a *App) Suspend() (resume func()) {
	saved := a.features
	a.disable()
	return func() {
		a.features = featureSet{}
		a.reenable(saved)
		a.render.ForceFullRedraw()
	}
}

// reenable restores exactly the features that were on before Suspend,
// in the normal init order.
func (a *App) reenable(saved featureSet) {
	cfg := a.config
	cfg.RawMode = saved.rawMode
	cfg.AlternateScreen = saved.alternateScreen
	cfg.FocusEvents = saved.focusEvents
	cfg.BracketedPaste = saved.bracketedPaste
	cfg.MouseCapture = saved.mouse

	prev := a.config
	a.config = cfg
	if err := a.enable(); err != nil {
		log.Error("failed to restore terminal features after suspend", "error", err)
	}
	a.config = prev
}
