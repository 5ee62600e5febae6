package app

import (
	"celina/terminal"
)

// featureSet tracks which optional terminal features are currently
// enabled, so disable only undoes what enable actually turned on.
type featureSet struct {
	rawMode        bool
	alternateScreen bool
	focusEvents    bool
	bracketedPaste bool
	mouse          bool
	cursorHidden   bool

	mouseMode terminal.MouseModeSet
}

// enable turns on the configured features in init order: raw mode,
// alternate screen, focus events, bracketed paste, mouse, then hides the
// cursor — the reverse of the cleanup order spec.md §7 documents
// ("cursor visible, mouse off, bracketed paste off, focus events off, alt
// screen off, raw mode off").
func (a *App) enable() error {
	f := &a.features
	cfg := a.config

	if cfg.RawMode {
		if err := a.backend.EnableRawMode(); err != nil {
			return err
		}
		f.rawMode = true
	}
	if cfg.AlternateScreen {
		if err := a.write(terminal.AltScreenOn); err != nil {
			return err
		}
		f.alternateScreen = true
	}
	if cfg.FocusEvents {
		if err := a.write(terminal.FocusEventsOn); err != nil {
			return err
		}
		f.focusEvents = true
	}
	if cfg.BracketedPaste {
		if err := a.write(terminal.BracketedPasteOn); err != nil {
			return err
		}
		f.bracketedPaste = true
	}
	if cfg.MouseCapture {
		f.mouseMode = terminal.DetectMouseMode()
		if err := a.write(terminal.MouseEnableSequence(f.mouseMode)); err != nil {
			return err
		}
		f.mouse = true
	}
	if err := a.write(terminal.CursorHide); err != nil {
		return err
	}
	f.cursorHidden = true
	return nil
}

// disable reverses enable, in the documented cleanup order. Each step's
// failure is swallowed — per spec.md §7, "any cleanup step that itself
// fails is swallowed" — except it is logged, so a stuck terminal mode
// leaves a trace.
func (a *App) disable() {
	f := &a.features

	if f.cursorHidden {
		a.swallow(a.write(terminal.CursorShow))
		f.cursorHidden = false
	}
	if f.mouse {
		a.swallow(a.write(terminal.MouseDisableSequence(f.mouseMode)))
		f.mouse = false
	}
	if f.bracketedPaste {
		a.swallow(a.write(terminal.BracketedPasteOff))
		f.bracketedPaste = false
	}
	if f.focusEvents {
		a.swallow(a.write(terminal.FocusEventsOff))
		f.focusEvents = false
	}
	if f.alternateScreen {
		a.swallow(a.write(terminal.AltScreenOff))
		f.alternateScreen = false
	}
	if f.rawMode {
		a.swallow(a.backend.DisableRawMode())
		f.rawMode = false
	}
}
