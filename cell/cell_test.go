package cell

import (
	"celina/colors"
	"testing"
)

func TestDefaultStyleIsInvisibleNeverBlackOnBlack(t *testing.T) {
	s := Default()
	if s.Foreground.Kind != colors.Default || s.Background.Kind != colors.Default {
		t.Errorf("Default() must mean terminal-default colors, got %+v", s)
	}
	if s.Modifiers != 0 {
		t.Errorf("Default() must have no modifiers, got %v", s.Modifiers)
	}
}

func TestModifierSet(t *testing.T) {
	var m Modifier
	m = m.Add(Bold).Add(Underline)
	if !m.Has(Bold) || !m.Has(Underline) {
		t.Errorf("expected Bold and Underline set, got %v", m)
	}
	if m.Has(Italic) {
		t.Errorf("Italic should not be set")
	}
	m = m.Remove(Bold)
	if m.Has(Bold) {
		t.Errorf("Bold should have been removed")
	}
}

func TestStylePatch(t *testing.T) {
	base := Default().WithForeground(colors.NewIndexed(1)).WithModifier(Bold)
	patch := Style{Background: colors.NewIndexed(2), Modifiers: Underline}
	got := base.Patch(patch)
	if got.Foreground != colors.NewIndexed(1) {
		t.Errorf("patch should not clobber base foreground when patch fg is Default")
	}
	if got.Background != colors.NewIndexed(2) {
		t.Errorf("patch should overlay background")
	}
	if !got.Modifiers.Has(Bold) || !got.Modifiers.Has(Underline) {
		t.Errorf("patch should union modifiers, got %v", got.Modifiers)
	}
}

func TestCellWidth(t *testing.T) {
	if Cell{Symbol: "a"}.Width() != 1 {
		t.Errorf("ascii should be width 1")
	}
	if Cell{Symbol: "あ"}.Width() != 2 {
		t.Errorf("wide rune should be width 2")
	}
	if Blank().Width() != 0 {
		t.Errorf("blank placeholder should be width 0")
	}
}

func TestBlankIsBlank(t *testing.T) {
	if !Blank().IsBlank() {
		t.Errorf("Blank() must report IsBlank() == true")
	}
	if Empty().IsBlank() {
		t.Errorf("Empty() is a real space cell, not a trailing-half placeholder")
	}
}
