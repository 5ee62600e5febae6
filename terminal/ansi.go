package terminal

import (
	"strconv"
	"strings"

	"celina/cell"
	"celina/colors"
	"celina/cursor"
)

// The ANSI/VT byte vocabulary from spec.md §4.2, bit-exact with xterm's
// conventions. Every sequence celina emits is built from these constants
// rather than ad hoc string literals scattered through the renderer.
const (
	esc = "\x1b"
	csi = esc + "["
	osc = esc + "]"
	st  = esc + "\\"
)

const (
	AltScreenOn  = csi + "?1049h"
	AltScreenOff = csi + "?1049l"

	CursorHide = csi + "?25l"
	CursorShow = csi + "?25h"

	ClearScreen = csi + "2J"
	ClearLine   = csi + "2K"
	ClearToEOL  = csi + "0K"
	ClearToBOL  = csi + "1K"

	MouseSGROn     = csi + "?1006h"
	MouseSGROff    = csi + "?1006l"
	MouseBasicOn   = csi + "?1000h"
	MouseBasicOff  = csi + "?1000l"
	MouseDragOn    = csi + "?1002h"
	MouseDragOff   = csi + "?1002l"
	MouseAllOn     = csi + "?1003h"
	MouseAllOff    = csi + "?1003l"
	MouseX10On     = csi + "?9h"
	MouseX10Off    = csi + "?9l"

	BracketedPasteOn  = csi + "?2004h"
	BracketedPasteOff = csi + "?2004l"

	FocusEventsOn  = csi + "?1004h"
	FocusEventsOff = csi + "?1004l"

	SGRReset = csi + "0m"
)

// CursorPosition returns "ESC [ row ; col H" for the 1-based (row, col)
// terminal position.
func CursorPosition(row, col int) string {
	var b strings.Builder
	b.WriteString(csi)
	b.WriteString(strconv.Itoa(row))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(col))
	b.WriteByte('H')
	return b.String()
}

// CursorStyleSeq returns "ESC [ n SP q" selecting a DECSCUSR cursor shape.
func CursorStyleSeq(style cursor.Style) string {
	var b strings.Builder
	b.WriteString(csi)
	b.WriteString(strconv.Itoa(style.DECSCUSRParam()))
	b.WriteString(" q")
	return b.String()
}

// Hyperlink returns the OSC 8 sequence opening (url non-empty) or closing
// (url empty) a hyperlink region.
func Hyperlink(url string) string {
	return osc + "8;;" + url + st
}

// SGR renders the Select Graphic Rendition sequence for a style. An empty
// string means "no attributes differ from terminal default" (still valid
// to skip emitting).
func SGR(s cell.Style) string {
	var codes []string

	if s.Modifiers.Has(cell.Bold) {
		codes = append(codes, "1")
	}
	if s.Modifiers.Has(cell.Dim) {
		codes = append(codes, "2")
	}
	if s.Modifiers.Has(cell.Italic) {
		codes = append(codes, "3")
	}
	if s.Modifiers.Has(cell.Underline) {
		codes = append(codes, "4")
	}
	if s.Modifiers.Has(cell.SlowBlink) {
		codes = append(codes, "5")
	}
	if s.Modifiers.Has(cell.RapidBlink) {
		codes = append(codes, "6")
	}
	if s.Modifiers.Has(cell.Reversed) {
		codes = append(codes, "7")
	}
	if s.Modifiers.Has(cell.Hidden) {
		codes = append(codes, "8")
	}
	if s.Modifiers.Has(cell.Crossed) {
		codes = append(codes, "9")
	}

	codes = append(codes, fgCodes(s.Foreground)...)
	codes = append(codes, bgCodes(s.Background)...)

	if len(codes) == 0 {
		return ""
	}
	return csi + strings.Join(codes, ";") + "m"
}

func fgCodes(c colors.Color) []string {
	switch c.Kind {
	case colors.Default:
		return nil
	case colors.Indexed:
		if c.Index < 8 {
			return []string{strconv.Itoa(30 + int(c.Index))}
		}
		return []string{strconv.Itoa(90 + int(c.Index) - 8)}
	case colors.Indexed256:
		return []string{"38", "5", strconv.Itoa(int(c.Index))}
	case colors.RGB:
		return []string{"38", "2", strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B))}
	default:
		return nil
	}
}

func bgCodes(c colors.Color) []string {
	switch c.Kind {
	case colors.Default:
		return nil
	case colors.Indexed:
		if c.Index < 8 {
			return []string{strconv.Itoa(40 + int(c.Index))}
		}
		return []string{strconv.Itoa(100 + int(c.Index) - 8)}
	case colors.Indexed256:
		return []string{"48", "5", strconv.Itoa(int(c.Index))}
	case colors.RGB:
		return []string{"48", "2", strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B))}
	default:
		return nil
	}
}

// NeedsExplicitBackgroundDefault reports whether emitting only a
// foreground change for this style should still carry an explicit
// background-default code (49), per spec.md §4.2: "When writing only
// foreground, still emit explicit background-default ... to prevent
// terminals inheriting the prior bg."
func NeedsExplicitBackgroundDefault(s cell.Style) bool {
	return s.Background.Kind == colors.Default && len(fgCodes(s.Foreground)) > 0
}
