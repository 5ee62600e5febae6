package cell

import "github.com/mattn/go-runewidth"

// Cell is one character-sized screen position: a UTF-8 grapheme-equivalent
// symbol, a style, and an optional OSC-8 hyperlink target.
//
// An empty Symbol denotes the right half of a wide cell and must never be
// transmitted to the terminal on its own — see buffer.Buffer's trailing-half
// invariant.
type Cell struct {
	Symbol    string
	Style     Style
	Hyperlink string
}

// Empty returns the default blank cell: a single space, default style, no
// hyperlink.
func Empty() Cell {
	return Cell{Symbol: " "}
}

// Blank returns the zero-width placeholder cell used for the trailing half
// of a wide character.
func Blank() Cell {
	return Cell{}
}

// IsBlank reports whether c is a trailing-half placeholder (empty symbol).
func (c Cell) IsBlank() bool {
	return c.Symbol == ""
}

// Width returns the display width of the cell's symbol: 0 for the
// trailing-half placeholder, 1 for narrow/ambiguous/neutral runes, 2 for
// wide/full-width runes. Multi-rune grapheme clusters use the width of
// their first rune, matching terminal rendering behavior for the common
// case (combining marks contribute 0 additional columns).
func (c Cell) Width() int {
	return SymbolWidth(c.Symbol)
}

// SymbolWidth computes the terminal display width of a grapheme-equivalent
// string: 0 for an empty string, otherwise the East-Asian aware width of
// its leading rune via mattn/go-runewidth, the library the wider
// terminal-app ecosystem (bubbletea/lipgloss/termenv among them) uses for
// this exact purpose.
func SymbolWidth(symbol string) int {
	if symbol == "" {
		return 0
	}
	for _, r := range symbol {
		return runewidth.RuneWidth(r)
	}
	return 0
}
