package windows

import (
	"sort"

	"celina/buffer"
	"celina/events"
	"celina/geometry"
)

// Manager owns the ordered collection of windows, a monotonically
// increasing id counter, an optional focused id, and an optional modal
// id, per spec.md §4.6.
type Manager struct {
	windows []*Window
	nextID  int
	nextZ   int

	focused *WindowId
	modal   *WindowId
}

// NewManager creates an empty window manager.
func NewManager() *Manager {
	return &Manager{}
}

// CreateWindow adds a new window with the given outer area and title,
// assigning it the next id and bringing it to the front of the Z-order.
func (m *Manager) CreateWindow(area geometry.Rect, title string) *Window {
	id := WindowId{id: m.nextID}
	m.nextID++
	w := newWindow(id, area, title)
	m.nextZ++
	w.zIndex = m.nextZ
	m.windows = append(m.windows, w)
	return w
}

// Build starts a fluent WindowBuilder for a newly created window.
func (m *Manager) Build(area geometry.Rect, title string) *WindowBuilder {
	return &WindowBuilder{w: m.CreateWindow(area, title)}
}

// Windows returns all windows in manager (insertion) order.
func (m *Manager) Windows() []*Window {
	out := make([]*Window, len(m.windows))
	copy(out, m.windows)
	return out
}

// Find returns the window with the given id, or nil if it no longer
// exists.
func (m *Manager) Find(id WindowId) *Window {
	for _, w := range m.windows {
		if w.id == id {
			return w
		}
	}
	return nil
}

// Close removes a window from the manager, clearing the focused/modal
// reference if it pointed at the closed window.
func (m *Manager) Close(id WindowId) {
	for i, w := range m.windows {
		if w.id == id {
			m.windows = append(m.windows[:i], m.windows[i+1:]...)
			break
		}
	}
	if m.focused != nil && *m.focused == id {
		m.focused = nil
	}
	if m.modal != nil && *m.modal == id {
		m.modal = nil
	}
}

// Focus brings the window to the front of the Z-order (z = max(z)+1),
// clears the focused flag on every other window, and records it as the
// focused window.
func (m *Manager) Focus(id WindowId) {
	w := m.Find(id)
	if w == nil {
		return
	}
	top := m.nextZ
	for _, other := range m.windows {
		if other.zIndex > top {
			top = other.zIndex
		}
	}
	m.nextZ = top + 1
	w.zIndex = m.nextZ
	for _, other := range m.windows {
		other.flags.Focused = other.id == id
	}
	focused := id
	m.focused = &focused
}

// Focused returns the currently focused window, or nil if none is
// focused (or the focused window was since closed).
func (m *Manager) Focused() *Window {
	if m.focused == nil {
		return nil
	}
	return m.Find(*m.focused)
}

// SetModal marks a window as capturing all events until ClearModal is
// called.
func (m *Manager) SetModal(id WindowId) {
	w := m.Find(id)
	if w == nil {
		return
	}
	modal := id
	m.modal = &modal
	w.flags.Modal = true
}

// ClearModal releases modal capture, if any window holds it.
func (m *Manager) ClearModal() {
	if m.modal != nil {
		if w := m.Find(*m.modal); w != nil {
			w.flags.Modal = false
		}
	}
	m.modal = nil
}

// Modal returns the window currently capturing all events, or nil.
func (m *Manager) Modal() *Window {
	if m.modal == nil {
		return nil
	}
	return m.Find(*m.modal)
}

// paintOrder returns visible windows lowest-z first (painter's algorithm).
func (m *Manager) paintOrder() []*Window {
	out := make([]*Window, 0, len(m.windows))
	for _, w := range m.windows {
		if w.flags.Visible && w.state != StateHidden {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].zIndex < out[j].zIndex })
	return out
}

// topmostAt returns the front-most visible window whose area contains the
// absolute point (x, y).
func (m *Manager) topmostAt(x, y int) *Window {
	order := m.paintOrder()
	p := geometry.Position{X: x, Y: y}
	for i := len(order) - 1; i >= 0; i-- {
		if order[i].area.Contains(p) {
			return order[i]
		}
	}
	return nil
}

// Composite paints every visible window's border and content buffer onto
// dest, in Z-order (painter's algorithm: lowest z first, so higher
// windows draw over lower ones).
func (m *Manager) Composite(dest *buffer.Buffer) {
	for _, w := range m.paintOrder() {
		if w.border.Sides != 0 {
			drawBorder(dest, w)
		}
		srcRect := geometry.Rect{X: 0, Y: 0, Width: w.contentArea.Width, Height: w.contentArea.Height}
		dest.Merge(w.content, srcRect, geometry.Position{X: w.contentArea.X, Y: w.contentArea.Y})
	}
}

// Dispatch routes ev to the appropriate window per spec.md §4.6:
//   - a modal window, if any, receives every event alone;
//   - mouse events go to the top-most visible window containing the
//     point, promoting it to focus on Press;
//   - every other event goes to the focused window, if any.
//
// It reports whether some window consumed the event.
func (m *Manager) Dispatch(ev events.Event) bool {
	if modal := m.Modal(); modal != nil {
		return modal.dispatch(ev)
	}

	if mouse, ok := ev.(events.MouseEvent); ok {
		w := m.topmostAt(mouse.X, mouse.Y)
		if w == nil {
			return false
		}
		if mouse.Kind == events.MousePress {
			m.Focus(w.id)
		}
		return w.dispatch(ev)
	}

	w := m.Focused()
	if w == nil {
		return false
	}
	return w.dispatch(ev)
}
