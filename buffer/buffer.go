// Package buffer implements the off-screen cell grid and its
// damage-tracked differential diff — the heart of celina's renderer, per
// spec.md §4.1. Applications populate a Buffer each tick; the renderer
// diffs it against the previous frame and emits only the changed cells.
package buffer

import (
	"unicode/utf8"

	"celina/cell"
	"celina/geometry"
)

// DirtyRegion is the inclusive bounding box of cells changed since the
// last successful render. A bounding box is chosen over a per-row bitmap
// or tiled tracking because typical TUI deltas are spatially localized,
// and Diff's adaptive full-scan fallback handles the pathological case of
// many scattered small changes — see Buffer.Diff.
type DirtyRegion struct {
	dirty          bool
	minX, minY     int
	maxX, maxY     int
}

// IsDirty reports whether any cell has changed since the region was last
// cleared.
func (d DirtyRegion) IsDirty() bool { return d.dirty }

// Bounds returns the inclusive min/max coordinates of the dirty region.
// The result is only meaningful when IsDirty() is true.
func (d DirtyRegion) Bounds() (minX, minY, maxX, maxY int) {
	return d.minX, d.minY, d.maxX, d.maxY
}

func (d *DirtyRegion) expand(x, y int) {
	if !d.dirty {
		d.dirty = true
		d.minX, d.maxX = x, x
		d.minY, d.maxY = y, y
		return
	}
	if x < d.minX {
		d.minX = x
	}
	if x > d.maxX {
		d.maxX = x
	}
	if y < d.minY {
		d.minY = y
	}
	if y > d.maxY {
		d.maxY = y
	}
}

func (d *DirtyRegion) expandRect(r geometry.Rect) {
	if r.IsEmpty() {
		return
	}
	d.expand(r.Left(), r.Top())
	d.expand(r.Right()-1, r.Bottom()-1)
}

func (d *DirtyRegion) clear() {
	*d = DirtyRegion{}
}

// dirtyCellCount is the adaptive-scan threshold from spec.md §4.1: above
// this many cells in the dirty bounding box, Diff scans the whole buffer
// in row-major order (cache-friendly) instead of walking the (possibly
// sparse) dirty rectangle.
const dirtyCellCount = 2000

// Buffer owns a Rect area, a 2-D grid of Cells sized to that area, and a
// DirtyRegion tracking cells changed since the last clear.
type Buffer struct {
	area  geometry.Rect
	cells []cell.Cell
	dirty DirtyRegion
}

// New creates a Buffer for the given area, filled with default blank
// cells (a single space, default style).
func New(area geometry.Rect) *Buffer {
	b := &Buffer{area: area}
	b.cells = make([]cell.Cell, area.Width*area.Height)
	for i := range b.cells {
		b.cells[i] = cell.Empty()
	}
	return b
}

// Area returns the buffer's current area.
func (b *Buffer) Area() geometry.Rect { return b.area }

// Dirty returns the current dirty region.
func (b *Buffer) Dirty() DirtyRegion { return b.dirty }

// ClearDirty resets the dirty region to "nothing changed", without
// touching cell content. Called by the renderer after a successful flush.
func (b *Buffer) ClearDirty() {
	b.dirty.clear()
}

func (b *Buffer) index(x, y int) (int, bool) {
	lx := x - b.area.X
	ly := y - b.area.Y
	if lx < 0 || ly < 0 || lx >= b.area.Width || ly >= b.area.Height {
		return 0, false
	}
	return ly*b.area.Width + lx, true
}

// Get returns the cell at absolute position (x, y). Out-of-bounds reads
// return a default empty cell, never panic.
func (b *Buffer) Get(x, y int) cell.Cell {
	idx, ok := b.index(x, y)
	if !ok {
		return cell.Empty()
	}
	return b.cells[idx]
}

// Set writes a single cell at absolute position (x, y). Out-of-bounds
// writes are silently dropped.
func (b *Buffer) Set(x, y int, c cell.Cell) {
	idx, ok := b.index(x, y)
	if !ok {
		return
	}
	b.cells[idx] = c
	b.dirty.expand(x, y)
}

// SetString writes text starting at (x, y), advancing by each rune's
// display width, stopping at the right edge of the buffer's area. A
// width-2 rune writes the rune at its column and an empty-symbol trailing
// cell at the next column, carrying the same style and hyperlink, so
// hyperlink hit-testing and style covers both halves. Malformed UTF-8
// truncates the write silently — it never panics or returns an error,
// per spec.md §7 ("Input parsing … never raises").
//
// SetString operates on a single row: an embedded newline is stored
// literally, as a one-column cell holding the newline rune, matching
// the narrow "cell grid" contract — line-breaking is the caller's job.
func (b *Buffer) SetString(x, y int, text string, style cell.Style, hyperlink string) {
	col := x
	right := b.area.Right()
	i := 0
	for i < len(text) {
		if col >= right {
			return
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size <= 1 {
			// Malformed UTF-8: stop silently rather than writing the
			// replacement character indefinitely.
			return
		}
		i += size

		w := cell.SymbolWidth(string(r))
		if w == 2 {
			if col+1 >= right {
				// Not enough space for the wide rune; stop without
				// writing a half character.
				return
			}
			b.Set(col, y, cell.Cell{Symbol: string(r), Style: style, Hyperlink: hyperlink})
			b.Set(col+1, y, cell.Cell{Symbol: "", Style: style, Hyperlink: hyperlink})
			col += 2
		} else {
			b.Set(col, y, cell.Cell{Symbol: string(r), Style: style, Hyperlink: hyperlink})
			col++
		}
	}
}

// Fill intersects rect with the buffer's area and writes c across that
// region, marking it dirty.
func (b *Buffer) Fill(rect geometry.Rect, c cell.Cell) {
	target := rect.Intersection(b.area)
	if target.IsEmpty() {
		return
	}
	for y := target.Top(); y < target.Bottom(); y++ {
		for x := target.Left(); x < target.Right(); x++ {
			idx, _ := b.index(x, y)
			b.cells[idx] = c
		}
	}
	b.dirty.expandRect(target)
}

// Clear fills the whole buffer area with c (default blank cell when c is
// the zero value's Empty counterpart) and marks everything dirty.
func (b *Buffer) Clear(c cell.Cell) {
	b.Fill(b.area, c)
}

// Resize re-allocates the grid to newArea, copying overlapping content
// from the old grid. The overlap is computed in absolute rect
// coordinates (old area ∩ new area) but the copy loop must translate
// those absolute coordinates into each grid's own local offsets — the
// two coordinate spaces are easy to conflate, per spec.md §4.1's note.
// The entire new area is marked dirty.
func (b *Buffer) Resize(newArea geometry.Rect) {
	oldArea := b.area
	oldCells := b.cells

	newCells := make([]cell.Cell, newArea.Width*newArea.Height)
	for i := range newCells {
		newCells[i] = cell.Empty()
	}

	overlap := oldArea.Intersection(newArea)
	if !overlap.IsEmpty() {
		for y := overlap.Top(); y < overlap.Bottom(); y++ {
			oldRowStart := (y-oldArea.Y)*oldArea.Width + (overlap.Left() - oldArea.X)
			newRowStart := (y-newArea.Y)*newArea.Width + (overlap.Left() - newArea.X)
			copy(newCells[newRowStart:newRowStart+overlap.Width], oldCells[oldRowStart:oldRowStart+overlap.Width])
		}
	}

	b.area = newArea
	b.cells = newCells
	b.dirty.clear()
	b.dirty.expandRect(newArea)
}

// Merge copies cells from src (clipped to srcRect ∩ src.area) into this
// buffer at destPos, translating coordinates. The trailing-half invariant
// must already hold in src; the destination's merged rectangle is marked
// dirty.
func (b *Buffer) Merge(src *Buffer, srcRect geometry.Rect, destPos geometry.Position) {
	clipped := srcRect.Intersection(src.area)
	if clipped.IsEmpty() {
		return
	}
	for y := clipped.Top(); y < clipped.Bottom(); y++ {
		for x := clipped.Left(); x < clipped.Right(); x++ {
			c := src.Get(x, y)
			dx := destPos.X + (x - clipped.Left())
			dy := destPos.Y + (y - clipped.Top())
			b.Set(dx, dy, c)
		}
	}
}

// Change is one emitted diff entry: the absolute position and the new
// cell value at that position.
type Change struct {
	Pos  geometry.Position
	Cell cell.Cell
}

// Diff computes the minimal set of cell changes needed to turn old into
// new, per the three-step algorithm in spec.md §4.1:
//
//  1. If the areas differ, this is a full rewrite: every cell of new is
//     emitted in row-major order.
//  2. If new has no dirty region, nothing changed: return empty.
//  3. If the dirty bounding box covers more than dirtyCellCount cells,
//     scan the whole buffer (row-major, cache-friendly); otherwise scan
//     only the dirty rectangle. Either way, only cells where
//     old[x,y] != new[x,y] are emitted.
func Diff(old, new *Buffer) []Change {
	if old.area != new.area {
		changes := make([]Change, 0, len(new.cells))
		for y := new.area.Top(); y < new.area.Bottom(); y++ {
			for x := new.area.Left(); x < new.area.Right(); x++ {
				changes = append(changes, Change{Pos: geometry.Position{X: x, Y: y}, Cell: new.Get(x, y)})
			}
		}
		return changes
	}

	if !new.dirty.IsDirty() {
		return nil
	}

	minX, minY, maxX, maxY := new.dirty.Bounds()
	dirtyWidth := maxX - minX + 1
	dirtyHeight := maxY - minY + 1
	dirtySize := dirtyWidth * dirtyHeight

	var changes []Change
	if dirtySize > dirtyCellCount {
		for y := new.area.Top(); y < new.area.Bottom(); y++ {
			for x := new.area.Left(); x < new.area.Right(); x++ {
				oc := old.Get(x, y)
				nc := new.Get(x, y)
				if oc != nc {
					changes = append(changes, Change{Pos: geometry.Position{X: x, Y: y}, Cell: nc})
				}
			}
		}
		return changes
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			oc := old.Get(x, y)
			nc := new.Get(x, y)
			if oc != nc {
				changes = append(changes, Change{Pos: geometry.Position{X: x, Y: y}, Cell: nc})
			}
		}
	}
	return changes
}

// Apply applies a sequence of changes onto the buffer, used by tests to
// verify that Diff(old, new) reproduces new when applied to a copy of
// old (spec.md §8, invariant 2).
func (b *Buffer) Apply(changes []Change) {
	for _, c := range changes {
		b.Set(c.Pos.X, c.Pos.Y, c.Cell)
	}
}

// Clone returns a deep copy of the buffer, including its dirty region.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		area:  b.area,
		cells: make([]cell.Cell, len(b.cells)),
		dirty: b.dirty,
	}
	copy(out.cells, b.cells)
	return out
}
