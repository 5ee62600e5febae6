package events

// Event is celina's input event sum type: KeyEvent, MouseEvent,
// PasteEvent, FocusEvent, ResizeEvent, or QuitEvent. The unexported
// marker method keeps it a closed set, the idiomatic Go stand-in for the
// sealed variant types spec.md's design notes call for (§9:
// "Option-like signatures … model uniformly with a sum type").
type Event interface {
	isEvent()
}

// PasteEvent carries the full text of a bracketed paste.
type PasteEvent struct {
	Text string
}

func (PasteEvent) isEvent() {}

// FocusKind distinguishes a terminal focus-in from a focus-out event.
type FocusKind int

const (
	FocusIn FocusKind = iota
	FocusOut
)

// FocusEvent reports a terminal focus change.
type FocusEvent struct {
	Kind FocusKind
}

func (FocusEvent) isEvent() {}

// ResizeEvent reports a new terminal size, in cells.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) isEvent() {}

// QuitEvent is emitted for Ctrl-C (byte 0x03), per spec.md §4.3.
type QuitEvent struct{}

func (QuitEvent) isEvent() {}
