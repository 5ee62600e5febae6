package terminal

import (
	"os"
	"strings"
)

// MouseModeSet is the subset of mouse-tracking escape sequences a
// terminal is assumed to support.
type MouseModeSet int

const (
	// MouseModeConservative enables only X10 and basic button tracking
	// (1000, 9) — the safe default for an unrecognized TERM.
	MouseModeConservative MouseModeSet = iota
	// MouseModeFull enables SGR extended coordinates plus button-drag
	// tracking (9, 1000, 1002, 1006), for terminals known to support it.
	// Any-motion tracking (1003) is not enabled.
	MouseModeFull
)

var nonANSITerms = map[string]bool{
	"dumb":   true,
	"cons25": true,
	"emacs":  true,
}

// SupportsANSI reports whether the TERM environment variable names a
// terminal known to render ANSI/VT escape sequences. Per spec.md §6, a
// handful of known-non-ANSI values disable colored output; everything
// else is assumed capable.
func SupportsANSI() bool {
	return !nonANSITerms[strings.ToLower(os.Getenv("TERM"))]
}

var fullMouseSubstrings = []string{"xterm", "screen", "tmux"}

// DetectMouseMode inspects TERM to decide which mouse-tracking sequence
// set to enable, per spec.md §6.
func DetectMouseMode() MouseModeSet {
	term := strings.ToLower(os.Getenv("TERM"))
	for _, substr := range fullMouseSubstrings {
		if strings.Contains(term, substr) {
			return MouseModeFull
		}
	}
	return MouseModeConservative
}

// MouseEnableSequence returns the escape sequence(s) to enable the given
// mouse mode.
func MouseEnableSequence(mode MouseModeSet) string {
	switch mode {
	case MouseModeFull:
		return MouseX10On + MouseBasicOn + MouseDragOn + MouseSGROn
	default:
		return MouseX10On + MouseBasicOn
	}
}

// MouseDisableSequence returns the escape sequence(s) to disable the given
// mouse mode, in reverse order of enabling.
func MouseDisableSequence(mode MouseModeSet) string {
	switch mode {
	case MouseModeFull:
		return MouseSGROff + MouseDragOff + MouseBasicOff + MouseX10Off
	default:
		return MouseBasicOff + MouseX10Off
	}
}
