package events

// KeyCode enumerates the modeled key identities from spec.md §4.3.
type KeyCode int

const (
	KeyChar KeyCode = iota
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEsc
	KeySpace
	KeyArrowUp
	KeyArrowDown
	KeyArrowRight
	KeyArrowLeft
	KeyHome
	KeyEnd
	KeyBackTab
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifiers is the Shift/Alt/Ctrl bit set, using the same bit assignment
// spec.md §4.3 specifies for the CSI modifier digit: Shift=bit0, Alt=bit1,
// Ctrl=bit2.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << 0
	ModAlt   Modifiers = 1 << 1
	ModCtrl  Modifiers = 1 << 2
)

// Has reports whether m is present in the receiver set.
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m != 0
}

// KeyEvent is a decoded keyboard event.
type KeyEvent struct {
	Code KeyCode
	Rune rune
	Mods Modifiers
}

func (KeyEvent) isEvent() {}

// modifiersFromCSIDigit converts a CSI modifier parameter (2..8) to a
// Modifiers set, per spec.md §4.3: "subtract 1 from the modifier digit,
// then bit flags".
func modifiersFromCSIDigit(digit int) Modifiers {
	return Modifiers(digit - 1)
}
