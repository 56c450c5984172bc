// Package session owns per-component interaction state: the committed
// viewport, the in-flight gesture, and the current selection.
package session

import (
	"geoscope/internal/geo"
	"geoscope/internal/hittest"
)

// Phase is the gesture state. One tagged value instead of independent flags,
// so "panning while idle" is unrepresentable.
type Phase int

const (
	Idle Phase = iota
	Panning
)

func (p Phase) String() string {
	if p == Panning {
		return "panning"
	}
	return "idle"
}

// tapSlop is the micro-pixel movement budget under which a press-release
// still counts as a tap.
const tapSlop = 2.0

// State is the interaction state machine. Selection is orthogonal to the
// gesture phase; both are owned exclusively by the hosting component and
// mutated only on its event path.
type State struct {
	viewport geo.Viewport

	phase     Phase
	pressAt   geo.Offset
	dragDelta geo.Offset // transient; folded into viewport on EndPan
	moved     bool

	selection hittest.Hit
	hasSel    bool
}

func New(v geo.Viewport) *State {
	return &State{viewport: v}
}

func (s *State) Phase() Phase { return s.phase }

// Viewport returns the committed viewport, without any in-flight drag.
func (s *State) Viewport() geo.Viewport { return s.viewport }

// SetViewport replaces the committed viewport and drops any gesture.
func (s *State) SetViewport(v geo.Viewport) {
	s.viewport = v
	s.phase = Idle
	s.dragDelta = geo.Offset{}
	s.moved = false
}

// EffectiveViewport applies the transient drag so the map follows the
// pointer mid-gesture. Dragging right moves the center west, hence the
// subtraction.
func (s *State) EffectiveViewport(canvas geo.Size) geo.Viewport {
	if s.phase != Panning || (s.dragDelta == geo.Offset{}) {
		return s.viewport
	}
	center := geo.Offset{X: canvas.W/2 - s.dragDelta.X, Y: canvas.H/2 - s.dragDelta.Y}
	return geo.Viewport{
		Center: geo.Unproject(center, s.viewport, canvas),
		Zoom:   s.viewport.Zoom,
	}
}

// BeginPan starts a gesture at the given screen point.
func (s *State) BeginPan(at geo.Offset) {
	s.phase = Panning
	s.pressAt = at
	s.dragDelta = geo.Offset{}
	s.moved = false
}

// MovePan accumulates pointer motion into the transient delta.
func (s *State) MovePan(at geo.Offset) {
	if s.phase != Panning {
		return
	}
	s.dragDelta = geo.Offset{X: at.X - s.pressAt.X, Y: at.Y - s.pressAt.Y}
	if abs(s.dragDelta.X) > tapSlop || abs(s.dragDelta.Y) > tapSlop {
		s.moved = true
	}
}

// EndPan finishes the gesture. A release without meaningful movement is a
// tap and leaves the viewport untouched; otherwise the accumulated delta is
// committed into the viewport center and the transient resets to zero.
func (s *State) EndPan(canvas geo.Size) (tapped bool) {
	if s.phase != Panning {
		return false
	}
	defer func() {
		s.phase = Idle
		s.dragDelta = geo.Offset{}
		s.moved = false
	}()
	if !s.moved {
		return true
	}
	s.viewport = s.EffectiveViewport(canvas)
	return false
}

// PanBy commits a direct pan of the given screen delta, for key-driven
// movement outside a pointer gesture.
func (s *State) PanBy(dx, dy float64, canvas geo.Size) {
	center := geo.Offset{X: canvas.W/2 + dx, Y: canvas.H/2 + dy}
	s.viewport.Center = geo.Unproject(center, s.viewport, canvas)
}

// ZoomBy steps the zoom level, clamped to the projection's sane range.
func (s *State) ZoomBy(delta float64) {
	z := s.viewport.Zoom + delta
	if z < geo.MinZoom {
		z = geo.MinZoom
	}
	if z > geo.MaxZoom {
		z = geo.MaxZoom
	}
	s.viewport.Zoom = z
}

// Recenter resets the viewport to fit the given bounds.
func (s *State) Recenter(b geo.BBox, canvas geo.Size) {
	s.SetViewport(geo.FitViewport(b, canvas))
}

// Select records the tapped entity.
func (s *State) Select(h hittest.Hit) {
	s.selection = h
	s.hasSel = true
}

// Deselect clears the selection; background taps and explicit dismiss both
// land here.
func (s *State) Deselect() {
	s.selection = hittest.Hit{}
	s.hasSel = false
}

// Selection returns the current selection, if any.
func (s *State) Selection() (hittest.Hit, bool) {
	return s.selection, s.hasSel
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
