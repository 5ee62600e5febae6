// Package windows implements celina's window manager from spec.md §4.6:
// Z-ordered sub-rects with independent content buffers, focus tracking,
// and event routing down to per-window handler slots.
package windows

import (
	"celina/buffer"
	"celina/events"
	"celina/geometry"

	"github.com/google/uuid"
)

// State is a window's visibility/presentation mode.
type State int

const (
	StateNormal State = iota
	StateMinimized
	StateMaximized
	StateHidden
)

// WindowId is an opaque handle with distinct-equality semantics — callers
// never construct one directly, they only ever copy one returned by the
// Manager.
type WindowId struct {
	id int
}

// KeyHandler, MouseHandler, ResizeHandler and GeneralHandler are the
// per-window handler-table slots from spec.md §9's "Closures in Windows"
// design note: one optional callback per event kind instead of a single
// closure captured over ambient state, so a Window is plain data the
// Manager can own by value-ish id rather than by captured reference.
type (
	KeyHandler     func(events.KeyEvent) bool
	MouseHandler   func(events.MouseEvent) bool
	ResizeHandler  func(events.ResizeEvent) bool
	GeneralHandler func(events.Event) bool
)

// Flags are the independent boolean properties of a window.
type Flags struct {
	Visible       bool
	Focused       bool
	Resizable     bool
	Movable       bool
	Modal         bool
	AcceptsEvents bool
}

// Window owns an outer area, a border-shrunken content area, and a content
// Buffer always stored at origin (0,0) — the manager is solely responsible
// for translating that buffer into absolute terminal space at composite
// time, per spec.md §4.6's content-buffer invariant.
type Window struct {
	id          WindowId
	area        geometry.Rect
	contentArea geometry.Rect
	content     *buffer.Buffer
	title       string
	zIndex      int
	state       State
	border      BorderStyle
	flags       Flags

	keyHandler     KeyHandler
	mouseHandler   MouseHandler
	resizeHandler  ResizeHandler
	generalHandler GeneralHandler

	// debugTag is a supplemental diagnostic identity beyond the small
	// WindowId int — a random UUID that stays unique across processes and
	// sessions, where WindowIds restart from 0 in every new Manager.
	debugTag uuid.UUID
}

func newWindow(id WindowId, area geometry.Rect, title string) *Window {
	w := &Window{
		id:     id,
		area:   area,
		title:  title,
		border: NoBorder(),
		flags:  Flags{Visible: true, AcceptsEvents: true},
		debugTag: uuid.New(),
	}
	w.recompute()
	return w
}

// ID returns the window's identity.
func (w *Window) ID() WindowId { return w.id }

// DebugTag returns a stable per-window diagnostic identifier, distinct
// from the small per-Manager WindowId.
func (w *Window) DebugTag() string { return w.debugTag.String() }

// Title returns the window's title.
func (w *Window) Title() string { return w.title }

// SetTitle changes the window's title.
func (w *Window) SetTitle(title string) { w.title = title }

// Area returns the window's outer (absolute) area.
func (w *Window) Area() geometry.Rect { return w.area }

// ContentArea returns the absolute area available to the window's content,
// after border shrinkage.
func (w *Window) ContentArea() geometry.Rect { return w.contentArea }

// Buffer returns the window's content buffer, always addressed at origin
// (0,0) regardless of the window's position on screen.
func (w *Window) Buffer() *buffer.Buffer { return w.content }

// ZIndex returns the window's current stacking order key.
func (w *Window) ZIndex() int { return w.zIndex }

// State returns the window's presentation state.
func (w *Window) State() State { return w.state }

// SetState changes the window's presentation state.
func (w *Window) SetState(s State) { w.state = s }

// Flags returns a copy of the window's boolean properties.
func (w *Window) Flags() Flags { return w.flags }

// SetFlags replaces the window's boolean properties.
func (w *Window) SetFlags(f Flags) { w.flags = f }

// SetArea moves/resizes the window, recomputing the content area and
// resizing the content buffer in place (preserving overlapping content).
func (w *Window) SetArea(area geometry.Rect) {
	w.area = area
	w.recompute()
}

// SetBorder changes the window's border configuration, recomputing the
// content area and buffer.
func (w *Window) SetBorder(b BorderStyle) {
	w.border = b
	w.recompute()
}

// Border returns the window's current border configuration.
func (w *Window) Border() BorderStyle { return w.border }

// OnKey installs the window's key-event handler.
func (w *Window) OnKey(h KeyHandler) { w.keyHandler = h }

// OnMouse installs the window's mouse-event handler.
func (w *Window) OnMouse(h MouseHandler) { w.mouseHandler = h }

// OnResize installs the window's resize-event handler.
func (w *Window) OnResize(h ResizeHandler) { w.resizeHandler = h }

// OnEvent installs the window's general (fallback) event handler.
func (w *Window) OnEvent(h GeneralHandler) { w.generalHandler = h }

// dispatch tries the specific handler matching ev's kind first, falling
// back to the general handler if unset, per spec.md §4.6.
func (w *Window) dispatch(ev events.Event) bool {
	switch e := ev.(type) {
	case events.KeyEvent:
		if w.keyHandler != nil {
			return w.keyHandler(e)
		}
	case events.MouseEvent:
		if w.mouseHandler != nil {
			return w.mouseHandler(e)
		}
	case events.ResizeEvent:
		if w.resizeHandler != nil {
			return w.resizeHandler(e)
		}
	}
	if w.generalHandler != nil {
		return w.generalHandler(ev)
	}
	return false
}

// recompute shrinks area by the active border sides into contentArea, and
// resizes the content buffer (always origin (0,0)) to match — any stray
// mutation of content's area field to an absolute rect elsewhere would be
// a bug, per spec.md §4.6; recompute is the single place that invariant is
// enforced.
func (w *Window) recompute() {
	ca := w.area

	if w.border.Sides.Has(BorderTop) {
		ca.Y++
		ca.Height--
	}
	if w.border.Sides.Has(BorderBottom) {
		ca.Height--
	}
	if w.border.Sides.Has(BorderLeft) {
		ca.X++
		ca.Width--
	}
	if w.border.Sides.Has(BorderRight) {
		ca.Width--
	}
	if ca.Width < 0 {
		ca.Width = 0
	}
	if ca.Height < 0 {
		ca.Height = 0
	}
	w.contentArea = ca

	origin := geometry.Rect{X: 0, Y: 0, Width: ca.Width, Height: ca.Height}
	if w.content == nil {
		w.content = buffer.New(origin)
	} else {
		w.content.Resize(origin)
	}
}
