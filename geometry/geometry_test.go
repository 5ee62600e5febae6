package geometry

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 5, 20, 10)
	if !r.Contains(Position{X: 10, Y: 5}) {
		t.Errorf("expected top-left to be contained")
	}
	if r.Contains(Position{X: 30, Y: 5}) {
		t.Errorf("right edge is exclusive, should not be contained")
	}
	if r.Contains(Position{X: 9, Y: 5}) {
		t.Errorf("one left of the rect should not be contained")
	}
}

func TestRectIntersectionDisjoint(t *testing.T) {
	a := NewRect(0, 0, 5, 5)
	b := NewRect(10, 10, 5, 5)
	got := a.Intersection(b)
	if !got.IsEmpty() {
		t.Errorf("expected empty intersection, got %+v", got)
	}
}

func TestRectIntersectionOverlap(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	got := a.Intersection(b)
	want := NewRect(5, 5, 5, 5)
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 5, 5)
	b := NewRect(10, 10, 5, 5)
	got := a.Union(b)
	want := NewRect(0, 0, 15, 15)
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRectShrink(t *testing.T) {
	r := NewRect(0, 0, 80, 24)
	got := r.Shrink(1)
	want := NewRect(1, 1, 78, 22)
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRectShrinkSaturates(t *testing.T) {
	r := NewRect(0, 0, 2, 2)
	got := r.Shrink(5)
	if !got.IsEmpty() {
		t.Errorf("over-shrinking should saturate to empty, got %+v", got)
	}
}

func TestRectArea(t *testing.T) {
	r := NewRect(0, 0, 4, 3)
	if r.Area() != 12 {
		t.Errorf("expected area 12, got %d", r.Area())
	}
}

func TestNewRectClampsNegative(t *testing.T) {
	r := NewRect(0, 0, -5, -5)
	if r.Width != 0 || r.Height != 0 {
		t.Errorf("expected clamped dimensions, got %+v", r)
	}
}
