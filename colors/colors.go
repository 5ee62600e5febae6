// Package colors implements the tagged Color value from spec.md §3: the
// terminal-default variant, 16/256-color indexed variants, and true-color
// RGB, plus the construction helpers (hex parsing, HSV, linear
// interpolation, grayscale ramp, the 6x6x6 cube) the renderer and
// widgets use to build them.
package colors

import (
	"fmt"
	"strconv"
	"strings"

	"celina/log"
)

// Kind tags which variant a Color holds.
type Kind int

const (
	// Default means "use the terminal's own foreground/background" — not
	// Indexed(0). A zero-value Color is Default; this is the distinction
	// spec.md §9 warns implementations not to lose.
	Default Kind = iota
	Indexed
	Indexed256
	RGB
)

// Color is a tagged union over the four variants. Equality is structural:
// two Colors are equal iff their Kind and the fields relevant to that kind
// match.
type Color struct {
	Kind Kind
	// Index holds the 0..15 value for Indexed or the 0..255 value for
	// Indexed256.
	Index uint8
	R, G, B uint8
}

// NewDefault returns the terminal-default color (also the zero value).
func NewDefault() Color { return Color{Kind: Default} }

// NewIndexed returns one of the 16 standard/bright ANSI colors. The index
// is not range-checked here: out-of-range values are reduced to 0..15 by
// masking the low 4 bits (so 16 becomes 0), matching terminal behavior of
// wrapping rather than erroring.
func NewIndexed(i uint8) Color {
	return Color{Kind: Indexed, Index: i & 0x0F}
}

// NewIndexed256 returns one of the 256-color palette entries.
func NewIndexed256(i uint8) Color {
	return Color{Kind: Indexed256, Index: i}
}

// NewRGB returns a 24-bit true-color value.
func NewRGB(r, g, b uint8) Color {
	return Color{Kind: RGB, R: r, G: g, B: b}
}

// ParseHex parses a "#rrggbb" or "rrggbb" string into an RGB Color. On any
// malformed input it returns opaque black — callers never need to handle
// an error, matching spec.md §7 ("Color hex parsing … soft-fail to a
// documented default").
func ParseHex(s string) Color {
	orig := s
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		log.Warn("malformed hex color, falling back to black", "input", orig)
		return NewRGB(0, 0, 0)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		log.Warn("malformed hex color, falling back to black", "input", orig, "error", err)
		return NewRGB(0, 0, 0)
	}
	return NewRGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

// HSVToRGB converts hue (0..360), saturation and value (0..1) into an RGB
// Color.
func HSVToRGB(h, s, v float64) Color {
	for h < 0 {
		h += 360
	}
	h = mod360(h)
	c := v * s
	x := c * (1 - absf(mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return NewRGB(
		clampByte((r+m)*255),
		clampByte((g+m)*255),
		clampByte((b+m)*255),
	)
}

// Lerp linearly interpolates between two RGB colors. t is clamped to
// [0, 1]. Non-RGB inputs are treated as black for the purpose of blending.
func Lerp(from, to Color, t float64) Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	fr, fg, fb := rgbOf(from)
	tr, tg, tb := rgbOf(to)
	return NewRGB(
		lerpByte(fr, tr, t),
		lerpByte(fg, tg, t),
		lerpByte(fb, tb, t),
	)
}

func rgbOf(c Color) (float64, float64, float64) {
	if c.Kind == RGB {
		return float64(c.R), float64(c.G), float64(c.B)
	}
	return 0, 0, 0
}

func lerpByte(from, to, t float64) uint8 {
	return clampByte(from + (to-from)*t)
}

// Grayscale returns one of the 24 grayscale ramp entries (232..255) from
// the 256-color palette, given a level in 0..23.
func Grayscale(level int) Color {
	if level < 0 {
		level = 0
	}
	if level > 23 {
		level = 23
	}
	return NewIndexed256(uint8(232 + level))
}

// Cube returns the 256-color palette entry at (r, g, b) in the 6x6x6 color
// cube, each axis ranging 0..5.
func Cube(r, g, b int) Color {
	r = clampAxis(r)
	g = clampAxis(g)
	b = clampAxis(b)
	return NewIndexed256(uint8(16 + 36*r + 6*g + b))
}

func clampAxis(v int) int {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func mod(a, b float64) float64 {
	m := a
	for m >= b {
		m -= b
	}
	for m < 0 {
		m += b
	}
	return m
}

func mod360(h float64) float64 { return mod(h, 360) }

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// named is the ANSI-16 name table, generalized from the teacher's
// basement.GetColorCode name->escape-code map into a name->Color map.
var named = map[string]Color{
	"black":         NewIndexed(0),
	"red":           NewIndexed(1),
	"green":         NewIndexed(2),
	"yellow":        NewIndexed(3),
	"blue":          NewIndexed(4),
	"magenta":       NewIndexed(5),
	"cyan":          NewIndexed(6),
	"white":         NewIndexed(7),
	"grey":          NewIndexed(8),
	"gray":          NewIndexed(8),
	"bright_red":    NewIndexed(9),
	"bright_green":  NewIndexed(10),
	"bright_yellow": NewIndexed(11),
	"bright_blue":   NewIndexed(12),
	"bright_magenta": NewIndexed(13),
	"bright_cyan":   NewIndexed(14),
	"bright_white":  NewIndexed(15),
}

// Named looks up one of the 16 standard ANSI color names. The second
// return value is false for an unrecognized name.
func Named(name string) (Color, bool) {
	c, ok := named[strings.ToLower(name)]
	return c, ok
}

// String renders a Color for debugging.
func (c Color) String() string {
	switch c.Kind {
	case Default:
		return "Default"
	case Indexed:
		return fmt.Sprintf("Indexed(%d)", c.Index)
	case Indexed256:
		return fmt.Sprintf("Indexed256(%d)", c.Index)
	case RGB:
		return fmt.Sprintf("RGB(%d,%d,%d)", c.R, c.G, c.B)
	default:
		return "Unknown"
	}
}
