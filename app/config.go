// Package app wires together celina's terminal backend, event decoder,
// renderer, optional window manager, and FPS pacing into the tick loop
// from spec.md §4.5.
package app

// Config configures an App before Run, per spec.md §6.
type Config struct {
	Title string

	AlternateScreen bool
	MouseCapture    bool
	RawMode         bool
	WindowMode      bool
	BracketedPaste  bool
	FocusEvents     bool

	// TargetFPS is clamped to [1, 240] by FpsMonitor; 0 or negative is
	// substituted with 60 here, per spec.md §6.
	TargetFPS int
}

// DefaultConfig returns the spec's documented defaults: alternate screen
// and raw mode on, mouse capture/window mode/bracketed paste/focus events
// off, target_fps 60 — mirroring the teacher's NewScreen's own pattern of
// substituting a fallback (80x24) when a real value isn't available.
func DefaultConfig() Config {
	return Config{
		AlternateScreen: true,
		RawMode:         true,
		TargetFPS:       60,
	}
}

func (c Config) normalizedTargetFPS() int {
	if c.TargetFPS <= 0 {
		return 60
	}
	return c.TargetFPS
}
