// Package layout implements the constraint-based rectangle solver from
// spec.md §4.4: a multi-pass fixed/min/fill/max resolver that subdivides
// a Rect along one axis.
package layout

import "celina/geometry"

// Direction is the axis a Layout subdivides along.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// ConstraintKind tags which of the six constraint variants a Constraint
// holds.
type ConstraintKind int

const (
	KindLength ConstraintKind = iota
	KindPercentage
	KindRatio
	KindMin
	KindMax
	KindFill
)

// Constraint is one slot's sizing rule. Only the fields relevant to Kind
// are meaningful; use the constructors below rather than building a
// Constraint literal.
type Constraint struct {
	Kind ConstraintKind
	// N is Length's cell count, Percentage's percent (0..100), Ratio's
	// numerator, Min/Max's cell count, or Fill's priority.
	N int
	// D is Ratio's denominator; unused otherwise.
	D int
}

// Length is a fixed cell count.
func Length(n int) Constraint {
	if n < 0 {
		n = 0
	}
	return Constraint{Kind: KindLength, N: n}
}

// Percentage is a percentage of the available span, 0..100. Out-of-range
// values saturate.
func Percentage(p int) Constraint {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return Constraint{Kind: KindPercentage, N: p}
}

// Ratio is n/d of the available span. A non-positive denominator
// saturates to 1 (spec.md §4.4: "Unknown/invalid values saturate").
func Ratio(n, d int) Constraint {
	if n < 0 {
		n = 0
	}
	if d <= 0 {
		d = 1
	}
	return Constraint{Kind: KindRatio, N: n, D: d}
}

// Min is a minimum cell count, assigned only if it fits within whatever
// span remains after fixed constraints are resolved.
func Min(n int) Constraint {
	if n < 0 {
		n = 0
	}
	return Constraint{Kind: KindMin, N: n}
}

// Max caps a slot's assigned size at n cells, applied as a post-process
// after Fill distribution (spec.md §4.4 step 4) — this can leave slack
// unallocated; that is the spec's documented, intentional behavior.
func Max(n int) Constraint {
	if n < 0 {
		n = 0
	}
	return Constraint{Kind: KindMax, N: n}
}

// Fill shares leftover span proportionally to its priority among all
// Fill constraints. Priority below 1 saturates to 1.
func Fill(priority int) Constraint {
	if priority < 1 {
		priority = 1
	}
	return Constraint{Kind: KindFill, N: priority}
}

// Layout describes how to subdivide a Rect: the axis, the constraints
// (one per output slot, in order), and the margin to shrink the input
// area by before solving.
type Layout struct {
	Direction   Direction
	Constraints []Constraint
	MarginH     int
	MarginV     int
}

// New builds a Layout with zero margins.
func New(direction Direction, constraints ...Constraint) Layout {
	return Layout{Direction: direction, Constraints: constraints}
}

// WithMargin sets a uniform margin on all four sides.
func (l Layout) WithMargin(margin int) Layout {
	l.MarginH = margin
	l.MarginV = margin
	return l
}

// WithMarginHV sets independent horizontal/vertical margins.
func (l Layout) WithMarginHV(h, v int) Layout {
	l.MarginH = h
	l.MarginV = v
	return l
}

// Split resolves the layout's constraints against area, returning one
// Rect per constraint in input order, laid out along Direction after
// shrinking area by the configured margins.
func Split(l Layout, area geometry.Rect) []geometry.Rect {
	working := area.ShrinkHV(l.MarginH, l.MarginV)

	span := working.Width
	if l.Direction == Vertical {
		span = working.Height
	}

	sizes := solve(l.Constraints, span)

	out := make([]geometry.Rect, len(l.Constraints))
	pos := 0
	for i, size := range sizes {
		if l.Direction == Horizontal {
			out[i] = geometry.NewRect(working.X+pos, working.Y, size, working.Height)
		} else {
			out[i] = geometry.NewRect(working.X, working.Y+pos, working.Width, size)
		}
		pos += size
	}
	return out
}

// solve runs the four-phase algorithm from spec.md §4.4 over the
// available span S, returning one resolved size per constraint in input
// order.
func solve(constraints []Constraint, span int) []int {
	n := len(constraints)
	sizes := make([]int, n)
	resolved := make([]bool, n)
	remaining := span

	// Phase 1: fixed (Length/Percentage/Ratio).
	for i, c := range constraints {
		var want int
		switch c.Kind {
		case KindLength:
			want = c.N
		case KindPercentage:
			want = span * c.N / 100
		case KindRatio:
			want = span * c.N / c.D
		default:
			continue
		}
		if want > remaining {
			want = remaining
		}
		if want < 0 {
			want = 0
		}
		sizes[i] = want
		resolved[i] = true
		remaining -= want
	}

	// Phase 2: Min — assign only if it fits in what's left.
	for i, c := range constraints {
		if c.Kind != KindMin || resolved[i] {
			continue
		}
		if c.N <= remaining {
			sizes[i] = c.N
			resolved[i] = true
			remaining -= c.N
		} else {
			resolved[i] = true // consumed, but assigned 0
		}
	}

	// Phase 3: Fill — distribute remaining span proportionally to
	// priority, then hand out the integer-division remainder in order.
	// Max constraints have not been resolved yet at this point; they
	// compete for remaining space as priority-1 Fill slots so that phase
	// 4 has something to cap — otherwise a bare Max(n) constraint would
	// always resolve to 0, which is not useful and not what "the
	// assigned size" in spec.md §4.4 step 4 implies.
	var fillIdx []int
	totalPriority := 0
	for i, c := range constraints {
		if !resolved[i] && (c.Kind == KindFill || c.Kind == KindMax) {
			fillIdx = append(fillIdx, i)
			if c.Kind == KindFill {
				totalPriority += c.N
			} else {
				totalPriority++
			}
		}
	}
	if len(fillIdx) > 0 && remaining > 0 && totalPriority > 0 {
		distributed := 0
		for _, i := range fillIdx {
			priority := constraints[i].N
			if constraints[i].Kind == KindMax {
				priority = 1
			}
			share := remaining * priority / totalPriority
			sizes[i] = share
			distributed += share
		}
		leftover := remaining - distributed
		for k := 0; leftover > 0 && k < len(fillIdx); k++ {
			sizes[fillIdx[k]]++
			leftover--
		}
		remaining = 0
	}
	for _, i := range fillIdx {
		resolved[i] = true
	}

	// Any Min constraints that never fit, and any stray unresolved slots,
	// default to zero (already the case via make([]int, n)).

	// Phase 4: Max cap — post-process, can leave slack unallocated. This
	// is intentional: spec.md §9 Open Questions preserves the source's
	// non-redistributing behavior rather than guessing a policy.
	for i, c := range constraints {
		if c.Kind == KindMax && sizes[i] > c.N {
			sizes[i] = c.N
		}
	}

	return sizes
}
