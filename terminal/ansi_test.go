package terminal

import (
	"testing"

	"celina/cell"
	"celina/colors"
	"celina/cursor"
)

func TestCursorPositionFormat(t *testing.T) {
	got := CursorPosition(6, 11)
	want := "\x1b[6;11H"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestCursorStyleSeq(t *testing.T) {
	got := CursorStyleSeq(cursor.StyleSteadyBar)
	want := "\x1b[6 q"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestHyperlinkOpenAndClose(t *testing.T) {
	open := Hyperlink("http://example.com")
	if open != "\x1b]8;;http://example.com\x1b\\" {
		t.Errorf("unexpected open sequence: %q", open)
	}
	closeSeq := Hyperlink("")
	if closeSeq != "\x1b]8;;\x1b\\" {
		t.Errorf("unexpected close sequence: %q", closeSeq)
	}
}

func TestSGRTrueColor(t *testing.T) {
	s := cell.Default().WithForeground(colors.NewRGB(1, 2, 3))
	got := SGR(s)
	want := "\x1b[38;2;1;2;3m"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestSGR256Color(t *testing.T) {
	s := cell.Default().WithBackground(colors.NewIndexed256(200))
	got := SGR(s)
	want := "\x1b[48;5;200m"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestSGRModifiersAndIndexed(t *testing.T) {
	s := cell.Default().WithForeground(colors.NewIndexed(9)).WithModifier(cell.Bold)
	got := SGR(s)
	want := "\x1b[1;91m"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestSGREmptyForDefaultStyle(t *testing.T) {
	if got := SGR(cell.Default()); got != "" {
		t.Errorf("expected empty SGR for default style, got %q", got)
	}
}

func TestNeedsExplicitBackgroundDefault(t *testing.T) {
	s := cell.Default().WithForeground(colors.NewIndexed(1))
	if !NeedsExplicitBackgroundDefault(s) {
		t.Errorf("foreground-only style should require explicit bg reset")
	}
	if NeedsExplicitBackgroundDefault(cell.Default()) {
		t.Errorf("fully default style has nothing to reset")
	}
}
