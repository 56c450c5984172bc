package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoscope/internal/geo"
	"geoscope/internal/hittest"
)

var (
	canvas = geo.Size{W: 100, H: 100}
	start  = geo.Viewport{Center: geo.LatLng{Lat: 5, Lon: 5}, Zoom: 10}
)

func TestPressReleaseWithoutMovementIsTap(t *testing.T) {
	s := New(start)
	s.BeginPan(geo.Offset{X: 40, Y: 40})
	assert.Equal(t, Panning, s.Phase())

	tapped := s.EndPan(canvas)
	assert.True(t, tapped)
	assert.Equal(t, Idle, s.Phase())
	assert.Equal(t, start, s.Viewport(), "a tap must not disturb the viewport")
}

func TestMovementWithinSlopStillTaps(t *testing.T) {
	s := New(start)
	s.BeginPan(geo.Offset{X: 40, Y: 40})
	s.MovePan(geo.Offset{X: 41, Y: 41})
	assert.True(t, s.EndPan(canvas))
	assert.Equal(t, start, s.Viewport())
}

func TestPanCommitsDeltaOnRelease(t *testing.T) {
	s := New(start)
	s.BeginPan(geo.Offset{X: 50, Y: 50})
	s.MovePan(geo.Offset{X: 70, Y: 50}) // drag 20 micro-pixels east

	// mid-gesture the effective viewport already follows the pointer
	eff := s.EffectiveViewport(canvas)
	assert.Less(t, eff.Center.Lon, start.Center.Lon, "dragging right moves the view west")
	assert.Equal(t, start, s.Viewport(), "committed viewport holds until release")

	tapped := s.EndPan(canvas)
	assert.False(t, tapped)
	assert.Equal(t, eff, s.Viewport(), "release commits exactly the effective viewport")
	assert.Equal(t, Idle, s.Phase())

	// transient is gone: the effective viewport now equals the committed one
	assert.Equal(t, s.Viewport(), s.EffectiveViewport(canvas))
}

func TestMovePanIgnoredWhenIdle(t *testing.T) {
	s := New(start)
	s.MovePan(geo.Offset{X: 90, Y: 90})
	assert.False(t, s.EndPan(canvas))
	assert.Equal(t, start, s.Viewport())
}

func TestSetViewportDropsGesture(t *testing.T) {
	s := New(start)
	s.BeginPan(geo.Offset{X: 10, Y: 10})
	s.MovePan(geo.Offset{X: 30, Y: 30})

	next := geo.Viewport{Center: geo.LatLng{Lat: 1, Lon: 1}, Zoom: 8}
	s.SetViewport(next)
	assert.Equal(t, Idle, s.Phase())
	assert.Equal(t, next, s.EffectiveViewport(canvas))
}

func TestPanByMovesCenter(t *testing.T) {
	s := New(start)
	s.PanBy(10, 0, canvas)
	assert.Greater(t, s.Viewport().Center.Lon, start.Center.Lon)
	assert.InDelta(t, start.Center.Lat, s.Viewport().Center.Lat, 1e-9)

	s = New(start)
	s.PanBy(0, -10, canvas)
	assert.Greater(t, s.Viewport().Center.Lat, start.Center.Lat)
}

func TestZoomByClamps(t *testing.T) {
	s := New(geo.Viewport{Zoom: 21})
	s.ZoomBy(5)
	assert.Equal(t, float64(geo.MaxZoom), s.Viewport().Zoom)
	s.ZoomBy(-100)
	assert.Equal(t, float64(geo.MinZoom), s.Viewport().Zoom)
	s.ZoomBy(3)
	assert.Equal(t, 3.0, s.Viewport().Zoom)
}

func TestRecenterFitsBounds(t *testing.T) {
	s := New(start)
	var b geo.BBox
	b = b.Extend(geo.LatLng{Lat: 0, Lon: 0})
	b = b.Extend(geo.LatLng{Lat: 10, Lon: 10})
	s.Recenter(b, canvas)

	got := s.Viewport()
	assert.InDelta(t, 5, got.Center.Lat, 0.5)
	assert.InDelta(t, 5, got.Center.Lon, 1e-9)
}

func TestSelectionLifecycle(t *testing.T) {
	s := New(start)
	_, ok := s.Selection()
	assert.False(t, ok)

	s.Select(hittest.Hit{Kind: hittest.KindMarker, ID: "a"})
	hit, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, "a", hit.ID)

	s.Deselect()
	hit, ok = s.Selection()
	assert.False(t, ok)
	assert.Zero(t, hit)
}

// Tap-to-select against projected marker positions, end to end: a tap on a
// marker selects it, a tap on empty water clears the selection.
func TestTapSelectionScenario(t *testing.T) {
	s := New(start)
	a := geo.LatLng{Lat: 0, Lon: 0}
	b := geo.LatLng{Lat: 10, Lon: 10}
	cands := []hittest.Candidate{
		{Kind: hittest.KindMarker, ID: "A", Pos: geo.Project(a, s.Viewport(), canvas), Tolerance: 4},
		{Kind: hittest.KindMarker, ID: "B", Pos: geo.Project(b, s.Viewport(), canvas), Tolerance: 4},
	}

	// press and release on A's projected position
	tapAt := cands[0].Pos
	s.BeginPan(tapAt)
	require.True(t, s.EndPan(canvas))
	if hit, ok := hittest.Resolve(tapAt, cands); ok {
		s.Select(hit)
	} else {
		s.Deselect()
	}
	hit, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, "A", hit.ID)
	assert.Equal(t, start, s.Viewport(), "selection must not move the map")

	// tap far from both markers
	miss := geo.Offset{X: 2, Y: 2}
	s.BeginPan(miss)
	require.True(t, s.EndPan(canvas))
	if hit, ok := hittest.Resolve(miss, cands); ok {
		s.Select(hit)
	} else {
		s.Deselect()
	}
	_, ok = s.Selection()
	assert.False(t, ok)
}
