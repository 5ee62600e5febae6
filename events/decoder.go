// Package events implements the byte-level input decoder from spec.md
// §4.3: a state machine turning raw terminal bytes into typed Key,
// Mouse, Paste, Focus, Resize and Quit events, in both blocking and
// non-blocking modes.
package events

import (
	"strconv"
	"strings"
)

// ByteSource is the minimal read surface the decoder needs. terminal.Backend
// satisfies this interface structurally; tests use a fake in-memory
// source so the decoder can be exercised without a real tty.
type ByteSource interface {
	// PollReady blocks up to timeoutMs milliseconds for a byte to become
	// available.
	PollReady(timeoutMs int) (bool, error)
	// ReadByte blocks until one byte is available.
	ReadByte() (byte, error)
	// TryReadByte attempts to read one byte without blocking.
	TryReadByte() (byte, bool, error)
}

// escFollowupTimeoutMs is how long the decoder waits, in both blocking
// and non-blocking mode, for a byte following an ESC before giving up
// and emitting a bare Escape key — spec.md §4.3's "wait ≤ 20 ms".
const escFollowupTimeoutMs = 20

// csiTimeoutMs bounds how long the decoder waits for each subsequent byte
// within a CSI/SS3/mouse sequence once it has committed to parsing one,
// grounded on the teacher pack's analogous csiTimeout constant
// (AhnafCodes-basementui/go/tui/input.go).
const csiTimeoutMs = 50

// Decoder turns bytes from a ByteSource into Events.
type Decoder struct {
	src ByteSource
}

// NewDecoder wraps a ByteSource in a Decoder.
func NewDecoder(src ByteSource) *Decoder {
	return &Decoder{src: src}
}

// PollEvents reports whether bytes are ready on the underlying source
// within timeoutMs, per spec.md §4.3.
func (d *Decoder) PollEvents(timeoutMs int) (bool, error) {
	return d.src.PollReady(timeoutMs)
}

// ReadKeyBlocking blocks until a complete event is decoded.
func (d *Decoder) ReadKeyBlocking() (Event, error) {
	b, err := d.src.ReadByte()
	if err != nil {
		return nil, err
	}
	return d.dispatch(b, true)
}

// ReadKeyNonblocking attempts to decode one event without blocking for
// the first byte. ok is false if no data was available.
func (d *Decoder) ReadKeyNonblocking() (ev Event, ok bool, err error) {
	b, ok, err := d.src.TryReadByte()
	if err != nil || !ok {
		return nil, false, err
	}
	ev, err = d.dispatch(b, false)
	return ev, true, err
}

// nextByte reads one more byte, blocking if blocking is true, or waiting
// up to timeoutMs and then trying non-blockingly otherwise. ok is false
// if no byte arrived (non-blocking mode only; blocking mode only returns
// with ok=false on error).
func (d *Decoder) nextByte(blocking bool, timeoutMs int) (b byte, ok bool, err error) {
	if blocking {
		b, err = d.src.ReadByte()
		return b, err == nil, err
	}
	ready, err := d.src.PollReady(timeoutMs)
	if err != nil || !ready {
		return 0, false, err
	}
	return d.src.TryReadByte()
}

func (d *Decoder) dispatch(b byte, blocking bool) (Event, error) {
	switch {
	case b == 0x03:
		return QuitEvent{}, nil
	case b == 0x00:
		return KeyEvent{Code: KeySpace, Rune: ' ', Mods: ModCtrl}, nil
	case b >= 0x1C && b <= 0x1F:
		return KeyEvent{Code: KeyChar, Rune: rune('4' + (b - 0x1C)), Mods: ModCtrl}, nil
	case b == 0x08 || b == 0x7F:
		return KeyEvent{Code: KeyBackspace}, nil
	case b == 0x09:
		return KeyEvent{Code: KeyTab}, nil
	case b == 0x0D || b == 0x0A:
		return KeyEvent{Code: KeyEnter}, nil
	case b == 0x20:
		return KeyEvent{Code: KeySpace, Rune: ' '}, nil
	case b == 0x1B:
		return d.dispatchEscape(blocking)
	case b >= 0x01 && b <= 0x1A:
		return KeyEvent{Code: KeyChar, Rune: rune('a' + (b - 0x01)), Mods: ModCtrl}, nil
	default:
		return d.decodeUTF8Rune(b, blocking)
	}
}

func (d *Decoder) decodeUTF8Rune(lead byte, blocking bool) (Event, error) {
	if lead < 0x80 {
		return KeyEvent{Code: KeyChar, Rune: rune(lead)}, nil
	}

	want := utf8ExpectedLen(lead)
	var continuations []byte
	for len(continuations) < want-1 {
		b, ok, err := d.nextByte(blocking, csiTimeoutMs)
		if err != nil {
			break
		}
		if !ok {
			// Non-blocking mode with nothing available: commit what we
			// have rather than waiting, per spec.md §4.3.
			break
		}
		if !isUTF8Continuation(b) {
			// Not a continuation byte: this sequence is truncated.
			// The byte we just read belongs to whatever comes next, but
			// since the decoder is single-byte-at-a-time with no
			// pushback buffer here, committing the malformed partial is
			// the documented lossy fallback.
			break
		}
		continuations = append(continuations, b)
	}

	s := buildString(lead, continuations)
	r := []rune(s)
	if len(r) == 0 {
		return KeyEvent{Code: KeyChar, Rune: rune(lead)}, nil
	}
	return KeyEvent{Code: KeyChar, Rune: r[0]}, nil
}

func (d *Decoder) dispatchEscape(blocking bool) (Event, error) {
	// A lone ESC is only distinguishable from the start of a sequence by
	// the absence of a follow-up byte, so even a blocking read waits at
	// most escFollowupTimeoutMs for one.
	ready, err := d.src.PollReady(escFollowupTimeoutMs)
	if err != nil {
		return nil, err
	}
	if !ready {
		return KeyEvent{Code: KeyEsc}, nil
	}
	b, ok, err := d.nextByte(blocking, escFollowupTimeoutMs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return KeyEvent{Code: KeyEsc}, nil
	}

	switch b {
	case '[':
		return d.parseCSI(blocking)
	case 'O':
		return d.parseSS3(blocking)
	default:
		// Alt+key: re-dispatch the byte with the Alt modifier folded in.
		ev, err := d.dispatch(b, blocking)
		if err != nil {
			return nil, err
		}
		if k, isKey := ev.(KeyEvent); isKey {
			k.Mods |= ModAlt
			return k, nil
		}
		return ev, nil
	}
}

func (d *Decoder) parseSS3(blocking bool) (Event, error) {
	b, ok, err := d.nextByte(blocking, csiTimeoutMs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return KeyEvent{Code: KeyEsc}, nil
	}
	switch b {
	case 'A':
		return KeyEvent{Code: KeyArrowUp}, nil
	case 'B':
		return KeyEvent{Code: KeyArrowDown}, nil
	case 'C':
		return KeyEvent{Code: KeyArrowRight}, nil
	case 'D':
		return KeyEvent{Code: KeyArrowLeft}, nil
	case 'H':
		return KeyEvent{Code: KeyHome}, nil
	case 'F':
		return KeyEvent{Code: KeyEnd}, nil
	case 'P':
		return KeyEvent{Code: KeyF1}, nil
	case 'Q':
		return KeyEvent{Code: KeyF2}, nil
	case 'R':
		return KeyEvent{Code: KeyF3}, nil
	case 'S':
		return KeyEvent{Code: KeyF4}, nil
	default:
		return KeyEvent{Code: KeyEsc}, nil
	}
}

// parseCSI handles everything after "ESC [": mouse (X10/SGR), focus,
// cursor/navigation keys, and bracketed paste.
func (d *Decoder) parseCSI(blocking bool) (Event, error) {
	first, ok, err := d.nextByte(blocking, csiTimeoutMs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return KeyEvent{Code: KeyEsc}, nil
	}

	switch first {
	case 'M':
		return d.parseX10Mouse(blocking)
	case '<':
		return d.parseSGRMouse(blocking)
	case 'A':
		return KeyEvent{Code: KeyArrowUp}, nil
	case 'B':
		return KeyEvent{Code: KeyArrowDown}, nil
	case 'C':
		return KeyEvent{Code: KeyArrowRight}, nil
	case 'D':
		return KeyEvent{Code: KeyArrowLeft}, nil
	case 'H':
		return KeyEvent{Code: KeyHome}, nil
	case 'F':
		return KeyEvent{Code: KeyEnd}, nil
	case 'Z':
		return KeyEvent{Code: KeyBackTab}, nil
	case 'I':
		return FocusEvent{Kind: FocusIn}, nil
	case 'O':
		return FocusEvent{Kind: FocusOut}, nil
	}

	if first >= '1' && first <= '9' {
		return d.parseNumericCSI(first, blocking)
	}

	// Unknown/unsupported sequence: resolve to the safe default.
	return KeyEvent{Code: KeyEsc}, nil
}

// parseNumericCSI handles the "ESC [ <digits> (~ | ; <mod> <final>)"
// family: single numeric keys, two-digit function keys, the three-digit
// paste markers, and modified arrow/navigation keys.
func (d *Decoder) parseNumericCSI(first byte, blocking bool) (Event, error) {
	var digits strings.Builder
	digits.WriteByte(first)

	for {
		b, ok, err := d.nextByte(blocking, csiTimeoutMs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return KeyEvent{Code: KeyEsc}, nil
		}

		switch {
		case b >= '0' && b <= '9':
			digits.WriteByte(b)
			continue
		case b == ';':
			return d.parseModifiedCSI(digits.String(), blocking)
		case b == '~':
			return d.resolveTildeKey(digits.String(), blocking), nil
		default:
			return KeyEvent{Code: KeyEsc}, nil
		}
	}
}

func (d *Decoder) resolveTildeKey(digits string, blocking bool) Event {
	if digits == "200" {
		return d.readPasteBody(blocking)
	}
	if digits == "201" {
		// A stray terminator with no open paste: ignore as unknown.
		return KeyEvent{Code: KeyEsc}
	}
	switch digits {
	case "1":
		return KeyEvent{Code: KeyHome}
	case "2":
		return KeyEvent{Code: KeyInsert}
	case "3":
		return KeyEvent{Code: KeyDelete}
	case "4":
		return KeyEvent{Code: KeyEnd}
	case "5":
		return KeyEvent{Code: KeyPageUp}
	case "6":
		return KeyEvent{Code: KeyPageDown}
	case "11":
		return KeyEvent{Code: KeyF1}
	case "12":
		return KeyEvent{Code: KeyF2}
	case "13":
		return KeyEvent{Code: KeyF3}
	case "14":
		return KeyEvent{Code: KeyF4}
	case "15":
		return KeyEvent{Code: KeyF5}
	case "17":
		return KeyEvent{Code: KeyF6}
	case "18":
		return KeyEvent{Code: KeyF7}
	case "19":
		return KeyEvent{Code: KeyF8}
	case "20":
		return KeyEvent{Code: KeyF9}
	case "21":
		return KeyEvent{Code: KeyF10}
	case "23":
		return KeyEvent{Code: KeyF11}
	case "24":
		return KeyEvent{Code: KeyF12}
	default:
		return KeyEvent{Code: KeyEsc}
	}
}

// parseModifiedCSI handles "ESC [ <digits> ; <modifier> <final>" —
// modified arrow/navigation/numeric keys.
func (d *Decoder) parseModifiedCSI(keyDigits string, blocking bool) (Event, error) {
	var modDigits strings.Builder
	for {
		b, ok, err := d.nextByte(blocking, csiTimeoutMs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return KeyEvent{Code: KeyEsc}, nil
		}
		if b >= '0' && b <= '9' {
			modDigits.WriteByte(b)
			continue
		}

		modNum, _ := strconv.Atoi(modDigits.String())
		mods := modifiersFromCSIDigit(modNum)

		if b == '~' {
			ev := d.resolveTildeKey(keyDigits, blocking)
			if k, isKey := ev.(KeyEvent); isKey {
				k.Mods |= mods
				return k, nil
			}
			return ev, nil
		}

		code, isKey := codeForModifiedFinal(b)
		if !isKey {
			return KeyEvent{Code: KeyEsc}, nil
		}
		return KeyEvent{Code: code, Mods: mods}, nil
	}
}

func codeForModifiedFinal(final byte) (KeyCode, bool) {
	switch final {
	case 'A':
		return KeyArrowUp, true
	case 'B':
		return KeyArrowDown, true
	case 'C':
		return KeyArrowRight, true
	case 'D':
		return KeyArrowLeft, true
	case 'H':
		return KeyHome, true
	case 'F':
		return KeyEnd, true
	default:
		return 0, false
	}
}

func (d *Decoder) parseX10Mouse(blocking bool) (Event, error) {
	var raw [3]byte
	for i := 0; i < 3; i++ {
		b, ok, err := d.nextByte(blocking, csiTimeoutMs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return KeyEvent{Code: KeyEsc}, nil
		}
		raw[i] = b
	}

	buttonByte := int(raw[0]) - 32
	x := int(raw[1]) - 33
	y := int(raw[2]) - 33

	if buttonByte&0x03 == 3 {
		return MouseEvent{Kind: MouseRelease, Button: MouseButtonNone, X: x, Y: y}, nil
	}

	button, kind, mods, _ := decodeMouseButtonByte(buttonByte)
	return MouseEvent{Kind: kind, Button: button, X: x, Y: y, Mods: mods}, nil
}

func (d *Decoder) parseSGRMouse(blocking bool) (Event, error) {
	var params strings.Builder
	var terminator byte

	for {
		b, ok, err := d.nextByte(blocking, csiTimeoutMs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return KeyEvent{Code: KeyEsc}, nil
		}
		if b == 'M' || b == 'm' {
			terminator = b
			break
		}
		params.WriteByte(b)
	}

	parts := strings.Split(params.String(), ";")
	if len(parts) != 3 {
		return KeyEvent{Code: KeyEsc}, nil
	}
	buttonByte, err1 := strconv.Atoi(parts[0])
	x1, err2 := strconv.Atoi(parts[1])
	y1, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return KeyEvent{Code: KeyEsc}, nil
	}

	x := x1 - 1
	y := y1 - 1

	button, kind, mods, isWheel := decodeMouseButtonByte(buttonByte)
	if terminator == 'm' && !isWheel {
		kind = MouseRelease
	}
	return MouseEvent{Kind: kind, Button: button, X: x, Y: y, Mods: mods}, nil
}

// readPasteBody collects bytes into a paste buffer until the terminator
// "ESC [ 201 ~" is seen, per spec.md §4.3's six-state bracketed-paste
// scanner. Any byte sequence that starts to look like the terminator but
// deviates is flushed back into the paste content byte-for-byte, so an
// ESC that is genuinely part of pasted text survives.
func (d *Decoder) readPasteBody(blocking bool) Event {
	var content []byte

	for {
		b, ok, err := d.nextByte(blocking, csiTimeoutMs)
		if err != nil || !ok {
			return PasteEvent{Text: string(content)}
		}
		if b != 0x1B {
			content = append(content, b)
			continue
		}

		// Saw ESC: tentatively buffer bytes while checking for the
		// terminator "ESC [ 201 ~". Any deviation flushes the buffered
		// bytes (including the leading ESC) back into the content.
		pending := []byte{0x1B}
		matched := true
		for _, want := range []byte{'[', '2', '0', '1', '~'} {
			nb, ok, err := d.nextByte(blocking, csiTimeoutMs)
			if err != nil || !ok {
				matched = false
				break
			}
			pending = append(pending, nb)
			if nb != want {
				matched = false
				break
			}
		}
		if matched {
			return PasteEvent{Text: string(content)}
		}
		content = append(content, pending...)
	}
}
