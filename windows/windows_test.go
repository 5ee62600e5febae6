package windows

import (
	"testing"

	"celina/buffer"
	"celina/events"
	"celina/geometry"
)

func TestNewWindowContentAreaShrinksByBorder(t *testing.T) {
	m := NewManager()
	w := m.CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 10, Height: 5}, "box")
	w.SetBorder(DefaultBorder())

	ca := w.ContentArea()
	want := geometry.Rect{X: 1, Y: 1, Width: 8, Height: 3}
	if ca != want {
		t.Errorf("expected content area %+v, got %+v", want, ca)
	}
	if w.Buffer().Area().Width != 8 || w.Buffer().Area().Height != 3 {
		t.Errorf("content buffer should match content area size, got %+v", w.Buffer().Area())
	}
}

func TestContentBufferAlwaysAtOrigin(t *testing.T) {
	m := NewManager()
	w := m.CreateWindow(geometry.Rect{X: 20, Y: 10, Width: 10, Height: 5}, "box")
	area := w.Buffer().Area()
	if area.X != 0 || area.Y != 0 {
		t.Errorf("content buffer must stay at origin regardless of window position, got %+v", area)
	}
}

func TestFocusPromotesZIndexAndClearsOthers(t *testing.T) {
	m := NewManager()
	a := m.CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 5, Height: 5}, "a")
	b := m.CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 5, Height: 5}, "b")

	m.Focus(a.ID())
	if !a.Flags().Visible {
		t.Fatalf("sanity: window should still be visible")
	}
	aZ := a.ZIndex()

	m.Focus(b.ID())
	if b.ZIndex() <= aZ {
		t.Errorf("focusing b should raise its z above a's prior z, got a=%d b=%d", aZ, b.ZIndex())
	}
	if !b.Flags().Focused {
		t.Errorf("b should be focused")
	}
	if a.Flags().Focused {
		t.Errorf("a should no longer be focused")
	}
	if m.Focused() != b {
		t.Errorf("manager should report b as focused")
	}
}

func TestMouseDispatchGoesToTopmostWindowAtPoint(t *testing.T) {
	m := NewManager()
	back := m.CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 20, Height: 20}, "back")
	front := m.CreateWindow(geometry.Rect{X: 5, Y: 5, Width: 10, Height: 10}, "front")

	var backHit, frontHit bool
	back.OnMouse(func(events.MouseEvent) bool { backHit = true; return true })
	front.OnMouse(func(events.MouseEvent) bool { frontHit = true; return true })

	consumed := m.Dispatch(events.MouseEvent{Kind: events.MousePress, X: 7, Y: 7})
	if !consumed {
		t.Fatalf("expected the event to be consumed")
	}
	if backHit || !frontHit {
		t.Errorf("expected only the front (topmost, higher z) window to receive the click")
	}
}

func TestMousePressPromotesFocus(t *testing.T) {
	m := NewManager()
	a := m.CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 20, Height: 20}, "a")
	b := m.CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 20, Height: 20}, "b")
	a.OnMouse(func(events.MouseEvent) bool { return true })
	b.OnMouse(func(events.MouseEvent) bool { return true })

	// b was created after a, so it sits above a in the Z-order without any
	// explicit Focus call; clicking the overlapping region should hit b
	// and promote it to focus.
	m.Dispatch(events.MouseEvent{Kind: events.MousePress, X: 1, Y: 1})

	if m.Focused() != b {
		t.Errorf("clicking b (topmost by creation order/z) should promote it to focus")
	}
}

func TestKeyEventGoesToFocusedWindow(t *testing.T) {
	m := NewManager()
	a := m.CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 5, Height: 5}, "a")
	b := m.CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 5, Height: 5}, "b")

	var aGotKey, bGotKey bool
	a.OnKey(func(events.KeyEvent) bool { aGotKey = true; return true })
	b.OnKey(func(events.KeyEvent) bool { bGotKey = true; return true })

	m.Focus(a.ID())
	m.Dispatch(events.KeyEvent{Code: events.KeyEnter})

	if !aGotKey || bGotKey {
		t.Errorf("key event should go only to the focused window a")
	}
}

func TestModalCapturesAllEvents(t *testing.T) {
	m := NewManager()
	normal := m.CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 20, Height: 20}, "normal")
	dialog := m.CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 5, Height: 5}, "dialog")

	var normalHit, dialogHit bool
	normal.OnEvent(func(events.Event) bool { normalHit = true; return true })
	dialog.OnEvent(func(events.Event) bool { dialogHit = true; return true })

	m.SetModal(dialog.ID())
	m.Dispatch(events.MouseEvent{Kind: events.MousePress, X: 15, Y: 15})

	if normalHit {
		t.Errorf("modal window should capture the event even though the click landed over the other window")
	}
	if !dialogHit {
		t.Errorf("modal window should have received the event")
	}
}

func TestSpecificHandlerTakesPrecedenceOverGeneral(t *testing.T) {
	m := NewManager()
	w := m.CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 5, Height: 5}, "w")
	var specificCalled, generalCalled bool
	w.OnKey(func(events.KeyEvent) bool { specificCalled = true; return true })
	w.OnEvent(func(events.Event) bool { generalCalled = true; return true })

	m.Focus(w.ID())
	m.Dispatch(events.KeyEvent{Code: events.KeyEnter})

	if !specificCalled || generalCalled {
		t.Errorf("specific key handler should be tried before the general handler")
	}
}

func TestFallsBackToGeneralHandlerWhenSpecificUnset(t *testing.T) {
	m := NewManager()
	w := m.CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 5, Height: 5}, "w")
	var generalCalled bool
	w.OnEvent(func(events.Event) bool { generalCalled = true; return true })

	m.Focus(w.ID())
	m.Dispatch(events.KeyEvent{Code: events.KeyEnter})

	if !generalCalled {
		t.Errorf("expected the general handler to run when no key handler is installed")
	}
}

func TestCloseClearsFocusAndModal(t *testing.T) {
	m := NewManager()
	w := m.CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 5, Height: 5}, "w")
	m.Focus(w.ID())
	m.SetModal(w.ID())

	m.Close(w.ID())

	if m.Focused() != nil {
		t.Errorf("closing the focused window should clear focus")
	}
	if m.Modal() != nil {
		t.Errorf("closing the modal window should clear modal capture")
	}
	if m.Find(w.ID()) != nil {
		t.Errorf("closed window should no longer be found")
	}
}

func TestCompositeMergesContentAtContentAreaOrigin(t *testing.T) {
	m := NewManager()
	w := m.CreateWindow(geometry.Rect{X: 2, Y: 3, Width: 5, Height: 3}, "w")
	w.Buffer().SetString(0, 0, "hi", w.Buffer().Get(0, 0).Style, "")

	dest := buffer.New(geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10})
	m.Composite(dest)

	got := dest.Get(2, 3)
	if got.Symbol != "h" {
		t.Errorf("expected window content merged at its content-area origin, got %q", got.Symbol)
	}
}

func TestBuilderConfiguresWindowFluently(t *testing.T) {
	m := NewManager()
	var keyHit bool
	w := m.Build(geometry.Rect{X: 0, Y: 0, Width: 5, Height: 5}, "w").
		WithBorder(DefaultBorder()).
		Resizable(true).
		Movable(true).
		OnKey(func(events.KeyEvent) bool { keyHit = true; return true }).
		Build()

	if !w.Flags().Resizable || !w.Flags().Movable {
		t.Errorf("builder should have set resizable/movable flags")
	}
	if w.Border().Sides != BorderAll {
		t.Errorf("builder should have applied the border style")
	}
	w.dispatch(events.KeyEvent{Code: events.KeyEnter})
	if !keyHit {
		t.Errorf("builder-installed key handler should fire")
	}
}

func TestDebugTagIsStableAndNonEmpty(t *testing.T) {
	m := NewManager()
	w := m.CreateWindow(geometry.Rect{X: 0, Y: 0, Width: 5, Height: 5}, "w")
	tag1 := w.DebugTag()
	tag2 := w.DebugTag()
	if tag1 == "" {
		t.Fatalf("debug tag should not be empty")
	}
	if tag1 != tag2 {
		t.Errorf("debug tag should be stable across calls, got %q then %q", tag1, tag2)
	}
}
