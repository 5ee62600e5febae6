package cell

import "celina/colors"

// Modifier is one bit of the style modifier set from spec.md §3.
type Modifier uint16

const (
	Bold Modifier = 1 << iota
	Dim
	Italic
	Underline
	SlowBlink
	RapidBlink
	Reversed
	Crossed
	Hidden
)

// Has reports whether m is set within the receiver set.
func (set Modifier) Has(m Modifier) bool {
	return set&m != 0
}

// Add returns set with m added.
func (set Modifier) Add(m Modifier) Modifier {
	return set | m
}

// Remove returns set with m cleared.
func (set Modifier) Remove(m Modifier) Modifier {
	return set &^ m
}

// Style is the (foreground, background, modifier set) triple from
// spec.md §3. The zero value is "terminal default, no modifiers" — the
// teacher's basement.Style made the mistake of defaulting Color/BgColor
// to empty strings that happened to mean "no escape emitted"; here the
// zero value is explicit via colors.Color's own Default variant so the
// two concepts (unset color vs. black) can never be confused.
type Style struct {
	Foreground colors.Color
	Background colors.Color
	Modifiers  Modifier
}

// Default is the zero-value Style: Default/Default/{}.
func Default() Style {
	return Style{}
}

// WithForeground returns a copy of the style with the foreground color
// replaced.
func (s Style) WithForeground(c colors.Color) Style {
	s.Foreground = c
	return s
}

// WithBackground returns a copy of the style with the background color
// replaced.
func (s Style) WithBackground(c colors.Color) Style {
	s.Background = c
	return s
}

// WithModifier returns a copy of the style with m added to the modifier
// set.
func (s Style) WithModifier(m Modifier) Style {
	s.Modifiers = s.Modifiers.Add(m)
	return s
}

// Patch overlays non-default fields of other onto s: any non-Default
// foreground/background in other replaces s's, and other's modifiers are
// unioned in. Used when merging a parent style into a child (§4.2's
// "only emit SGR when style differs" pairs naturally with patch-merge
// composition of nested styles).
func (s Style) Patch(other Style) Style {
	out := s
	if other.Foreground.Kind != colors.Default {
		out.Foreground = other.Foreground
	}
	if other.Background.Kind != colors.Default {
		out.Background = other.Background
	}
	out.Modifiers = out.Modifiers | other.Modifiers
	return out
}
