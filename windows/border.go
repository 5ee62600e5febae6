package windows

import (
	"celina/buffer"
	"celina/cell"
)

// BorderSide is a bitset of the window edges carrying a border line.
type BorderSide uint8

const (
	BorderTop BorderSide = 1 << iota
	BorderBottom
	BorderLeft
	BorderRight
)

// BorderAll is every side set.
const BorderAll = BorderTop | BorderBottom | BorderLeft | BorderRight

// Has reports whether side is present in the set.
func (s BorderSide) Has(side BorderSide) bool { return s&side != 0 }

// BorderStyle is the box-drawing glyph set and active sides for a window's
// border, per spec.md §4.6: "a border configuration (which sides + style
// + six box-drawing strings)".
type BorderStyle struct {
	Sides BorderSide

	Horizontal string
	Vertical   string
	TopLeft    string
	TopRight   string
	BottomLeft string
	BottomRight string

	Style cell.Style
}

// NoBorder returns a BorderStyle with no active sides.
func NoBorder() BorderStyle {
	return BorderStyle{}
}

// DefaultBorder returns a single-line box-drawing border on all four
// sides, default style.
func DefaultBorder() BorderStyle {
	return BorderStyle{
		Sides:       BorderAll,
		Horizontal:  "─",
		Vertical:    "│",
		TopLeft:     "┌",
		TopRight:    "┐",
		BottomLeft:  "└",
		BottomRight: "┘",
	}
}

// DoubleBorder returns a double-line box-drawing border on all four
// sides, default style.
func DoubleBorder() BorderStyle {
	return BorderStyle{
		Sides:       BorderAll,
		Horizontal:  "═",
		Vertical:    "║",
		TopLeft:     "╔",
		TopRight:    "╗",
		BottomLeft:  "╚",
		BottomRight: "╝",
	}
}

// drawBorder paints w's border and title onto dest, in absolute
// coordinates, around w's outer area.
func drawBorder(dest *buffer.Buffer, w *Window) {
	b := w.border
	area := w.area
	if area.Width == 0 || area.Height == 0 {
		return
	}
	left := area.Left()
	right := area.Right() - 1
	top := area.Top()
	bottom := area.Bottom() - 1

	if b.Sides.Has(BorderTop) {
		for x := left; x <= right; x++ {
			dest.Set(x, top, cell.Cell{Symbol: b.Horizontal, Style: b.Style})
		}
	}
	if b.Sides.Has(BorderBottom) {
		for x := left; x <= right; x++ {
			dest.Set(x, bottom, cell.Cell{Symbol: b.Horizontal, Style: b.Style})
		}
	}
	if b.Sides.Has(BorderLeft) {
		for y := top; y <= bottom; y++ {
			dest.Set(left, y, cell.Cell{Symbol: b.Vertical, Style: b.Style})
		}
	}
	if b.Sides.Has(BorderRight) {
		for y := top; y <= bottom; y++ {
			dest.Set(right, y, cell.Cell{Symbol: b.Vertical, Style: b.Style})
		}
	}

	corner := func(x, y int, sym string) {
		if sym != "" {
			dest.Set(x, y, cell.Cell{Symbol: sym, Style: b.Style})
		}
	}
	if b.Sides.Has(BorderTop) && b.Sides.Has(BorderLeft) {
		corner(left, top, b.TopLeft)
	}
	if b.Sides.Has(BorderTop) && b.Sides.Has(BorderRight) {
		corner(right, top, b.TopRight)
	}
	if b.Sides.Has(BorderBottom) && b.Sides.Has(BorderLeft) {
		corner(left, bottom, b.BottomLeft)
	}
	if b.Sides.Has(BorderBottom) && b.Sides.Has(BorderRight) {
		corner(right, bottom, b.BottomRight)
	}

	if b.Sides.Has(BorderTop) && w.title != "" {
		dest.SetString(left+2, top, " "+w.title+" ", b.Style, "")
	}
}
