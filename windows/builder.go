package windows

// WindowBuilder provides a fluent construction API over a Window already
// registered with a Manager, for the common case of configuring several
// properties at creation time in one expression.
type WindowBuilder struct {
	w *Window
}

// WithBorder sets the window's border style.
func (b *WindowBuilder) WithBorder(style BorderStyle) *WindowBuilder {
	b.w.SetBorder(style)
	return b
}

// WithZIndex overrides the window's Z-order key directly, bypassing the
// manager's front-on-focus bookkeeping; use Manager.Focus for the normal
// bring-to-front behavior.
func (b *WindowBuilder) WithZIndex(z int) *WindowBuilder {
	b.w.zIndex = z
	return b
}

// Resizable sets the resizable flag.
func (b *WindowBuilder) Resizable(v bool) *WindowBuilder {
	b.w.flags.Resizable = v
	return b
}

// Movable sets the movable flag.
func (b *WindowBuilder) Movable(v bool) *WindowBuilder {
	b.w.flags.Movable = v
	return b
}

// Visible sets the visible flag.
func (b *WindowBuilder) Visible(v bool) *WindowBuilder {
	b.w.flags.Visible = v
	return b
}

// OnKey installs the window's key handler.
func (b *WindowBuilder) OnKey(h KeyHandler) *WindowBuilder {
	b.w.OnKey(h)
	return b
}

// OnMouse installs the window's mouse handler.
func (b *WindowBuilder) OnMouse(h MouseHandler) *WindowBuilder {
	b.w.OnMouse(h)
	return b
}

// OnResize installs the window's resize handler.
func (b *WindowBuilder) OnResize(h ResizeHandler) *WindowBuilder {
	b.w.OnResize(h)
	return b
}

// OnEvent installs the window's general fallback handler.
func (b *WindowBuilder) OnEvent(h GeneralHandler) *WindowBuilder {
	b.w.OnEvent(h)
	return b
}

// Build returns the configured Window.
func (b *WindowBuilder) Build() *Window {
	return b.w
}
