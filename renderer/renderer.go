// Package renderer implements celina's differential renderer from
// spec.md §4.2: it diffs a freshly drawn buffer.Buffer against the
// previously rendered one and writes only the cells that changed,
// batching cursor repositioning and style escapes the way
// AhnafCodes-basementui/tui/screen.go's Screen.renderUnlocked does.
package renderer

import (
	"bufio"

	"celina/buffer"
	"celina/cell"
	"celina/cursor"
	"celina/geometry"
	"celina/terminal"
)

// backendWriter adapts terminal.Backend.Write(p []byte) error to io.Writer
// so the renderer can sit a buffered writer in front of it, mirroring the
// teacher's bufio.NewWriterSize(os.Stdout, 64*1024) wrapping.
type backendWriter struct {
	backend terminal.Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.backend.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// writeBufSize matches the teacher's 64KB output buffer.
const writeBufSize = 64 * 1024

// CursorState is the desired terminal cursor presentation for the frame
// about to be rendered: whether it should be visible, where (in
// buffer-local coordinates), and in which DECSCUSR shape. The zero value
// is "hidden", matching the App's own hide-at-startup default.
type CursorState struct {
	Visible  bool
	Position cursor.Position
	Style    cursor.Style
}

// Renderer owns the previously painted buffer and the batching state
// needed to emit a minimal ANSI stream for the next one.
type Renderer struct {
	backend terminal.Backend
	out     *bufio.Writer

	prev *buffer.Buffer

	curX, curY    int
	lastStyle     cell.Style
	styleSet      bool
	lastHyperlink string
	linkOpen      bool

	cursorState     CursorState
	lastCursorStyle cursor.Style
	cursorStyleSet  bool
}

// New creates a Renderer writing to backend.
func New(backend terminal.Backend) *Renderer {
	return &Renderer{
		backend: backend,
		out:     bufio.NewWriterSize(backendWriter{backend}, writeBufSize),
		curX:    -1,
		curY:    -1,
	}
}

// SetCursor records the cursor state the next Render call should
// reconcile the terminal to, per spec.md §4.2's "(previous buffer, new
// buffer, cursor state) triple".
func (r *Renderer) SetCursor(state CursorState) {
	r.cursorState = state
}

// ForceFullRedraw discards the previously rendered buffer so the next
// Render call repaints every cell, per spec.md §4.5's resize/suspend-
// resume requirement that the following frame not rely on stale state.
func (r *Renderer) ForceFullRedraw() {
	r.prev = nil
	r.curX, r.curY = -1, -1
	r.styleSet = false
	r.linkOpen = false
	r.lastStyle = cell.Style{}
	r.lastHyperlink = ""
	r.cursorStyleSet = false
}

// Render diffs buf against the last rendered frame and flushes the
// resulting escape sequence stream to the backend. The first call, and
// any call after ForceFullRedraw or an area change, repaints every cell.
// The previous-buffer state is updated only once the flush succeeds, per
// spec.md §4.2: a failed write leaves it intact so the next frame's diff
// still targets the actual terminal state.
func (r *Renderer) Render(buf *buffer.Buffer) error {
	if r.prev == nil || r.prev.Area() != buf.Area() {
		r.fullRepaint(buf)
	} else {
		changes := buffer.Diff(r.prev, buf)
		for _, c := range changes {
			r.emit(c)
		}
	}

	if r.styleSet {
		r.out.WriteString(terminal.SGRReset)
		r.styleSet = false
		r.lastStyle = cell.Style{}
	}
	if r.linkOpen {
		r.out.WriteString(terminal.Hyperlink(""))
		r.linkOpen = false
		r.lastHyperlink = ""
	}

	r.writeCursorReconciliation()

	if err := r.out.Flush(); err != nil {
		// bufio.Writer keeps a write error forever; start the next frame
		// with a fresh writer and no assumptions about the cursor.
		r.out.Reset(backendWriter{r.backend})
		r.curX, r.curY = -1, -1
		r.cursorStyleSet = false
		return err
	}
	r.prev = buf.Clone()
	buf.ClearDirty()
	return nil
}

// writeCursorReconciliation folds the frame's cursor presentation into
// the same output string, per spec.md §4.2: "after cell diffs, emit
// (optional cursor style if changed, then show+position) or hide, in
// that order" — preventing visible cursor flicker.
func (r *Renderer) writeCursorReconciliation() {
	cs := r.cursorState
	if !cs.Visible || !cs.Position.IsSet() {
		r.out.WriteString(terminal.CursorHide)
		return
	}

	if !r.cursorStyleSet || cs.Style != r.lastCursorStyle {
		r.out.WriteString(terminal.CursorStyleSeq(cs.Style))
		r.lastCursorStyle = cs.Style
		r.cursorStyleSet = true
	}
	r.out.WriteString(terminal.CursorShow)
	r.out.WriteString(terminal.CursorPosition(cs.Position.Row+1, cs.Position.Col+1))
}

func (r *Renderer) fullRepaint(buf *buffer.Buffer) {
	r.out.WriteString(terminal.ClearScreen)
	r.curX, r.curY = -1, -1
	r.styleSet = false
	r.linkOpen = false
	r.lastStyle = cell.Style{}
	r.lastHyperlink = ""

	area := buf.Area()
	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			r.emit(buffer.Change{Pos: geometry.Position{X: x, Y: y}, Cell: buf.Get(x, y)})
		}
	}
}

func (r *Renderer) emit(c buffer.Change) {
	if c.Cell.IsBlank() {
		// Trailing half of a wide character: never written on its own,
		// per cell.Cell's documented invariant.
		return
	}

	if r.curX != c.Pos.X || r.curY != c.Pos.Y {
		r.out.WriteString(terminal.CursorPosition(c.Pos.Y+1, c.Pos.X+1))
		r.curX, r.curY = c.Pos.X, c.Pos.Y
	}

	r.writeStyleTransition(c.Cell.Style)
	r.writeHyperlinkTransition(c.Cell.Hyperlink)

	r.out.WriteString(c.Cell.Symbol)
	r.curX += c.Cell.Width()
}

// writeStyleTransition emits the minimal escape sequence to move from
// lastStyle to next. A change of only the foreground, to a non-default
// foreground over the default background, skips the reset-and-reapply
// pair and emits just the new foreground code plus, per spec.md §4.2, an
// explicit background-default (49) so the terminal doesn't keep inheriting
// whatever background was active before. Every other transition,
// including a foreground-only change over a non-default background,
// resets and reapplies the full style.
func (r *Renderer) writeStyleTransition(next cell.Style) {
	if r.styleSet && next == r.lastStyle {
		return
	}

	fgOnlyChange := r.styleSet &&
		next.Modifiers == r.lastStyle.Modifiers &&
		next.Background == r.lastStyle.Background

	if fgOnlyChange && terminal.NeedsExplicitBackgroundDefault(next) {
		seq := terminal.SGR(cell.Style{Foreground: next.Foreground})
		if seq != "" {
			r.out.WriteString(seq[:len(seq)-1] + ";49m")
		}
	} else {
		if r.styleSet {
			r.out.WriteString(terminal.SGRReset)
		}
		r.out.WriteString(terminal.SGR(next))
	}

	r.lastStyle = next
	r.styleSet = true
}

func (r *Renderer) writeHyperlinkTransition(next string) {
	if r.linkOpen && next == r.lastHyperlink {
		return
	}
	if r.linkOpen {
		r.out.WriteString(terminal.Hyperlink(""))
	}
	if next != "" {
		r.out.WriteString(terminal.Hyperlink(next))
	}
	r.lastHyperlink = next
	r.linkOpen = next != ""
}
