package geo

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCenterLandsOnCanvasCenter(t *testing.T) {
	v := Viewport{Center: LatLng{Lat: 48.85, Lon: 2.35}, Zoom: 12}
	canvas := Size{W: 200, H: 100}
	o := Project(v.Center, v, canvas)
	assert.InDelta(t, 100, o.X, 1e-9)
	assert.InDelta(t, 50, o.Y, 1e-9)
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	viewports := []Viewport{
		{Center: LatLng{}, Zoom: 1},
		{Center: LatLng{Lat: 48.85, Lon: 2.35}, Zoom: 10},
		{Center: LatLng{Lat: -33.9, Lon: 151.2}, Zoom: 16},
	}
	canvas := Size{W: 160, H: 96}
	for _, v := range viewports {
		for lat := -85.0; lat <= 85.0; lat += 17 {
			for lon := -180.0; lon <= 180.0; lon += 36 {
				p := LatLng{Lat: lat, Lon: lon}
				got := Unproject(Project(p, v, canvas), v, canvas)
				assert.InDelta(t, p.Lat, got.Lat, 1e-6, "lat for %v via %v", p, v)
				assert.InDelta(t, p.Lon, got.Lon, 1e-6, "lon for %v via %v", p, v)
			}
		}
	}
}

func TestProjectClampsDegenerateInputs(t *testing.T) {
	canvas := Size{W: 100, H: 100}
	cases := []Viewport{
		{Center: LatLng{Lat: 89.9}, Zoom: 5},   // polar center
		{Center: LatLng{}, Zoom: -40},          // underflowing zoom
		{Center: LatLng{}, Zoom: 200},          // absurd zoom
		{Center: LatLng{Lat: -90, Lon: 0}, Zoom: 0},
	}
	for i, v := range cases {
		t.Run(fmt.Sprintf("case%d", i), func(t *testing.T) {
			o := Project(LatLng{Lat: 87, Lon: 10}, v, canvas)
			require.False(t, math.IsNaN(o.X) || math.IsInf(o.X, 0))
			require.False(t, math.IsNaN(o.Y) || math.IsInf(o.Y, 0))
			back := Unproject(o, v, canvas)
			require.False(t, math.IsNaN(back.Lat))
			assert.LessOrEqual(t, back.Lat, 90.0)
			assert.GreaterOrEqual(t, back.Lat, -90.0)
		})
	}
}

func TestFitViewport(t *testing.T) {
	canvas := Size{W: 200, H: 200}
	b := BBox{MinLon: 2.0, MinLat: 48.0, MaxLon: 3.0, MaxLat: 49.0}
	v := FitViewport(b, canvas)
	assert.Equal(t, b.Center(), v.Center)

	// every corner must land on the canvas
	for _, p := range []LatLng{
		{Lat: b.MinLat, Lon: b.MinLon},
		{Lat: b.MinLat, Lon: b.MaxLon},
		{Lat: b.MaxLat, Lon: b.MinLon},
		{Lat: b.MaxLat, Lon: b.MaxLon},
	} {
		o := Project(p, v, canvas)
		assert.GreaterOrEqual(t, o.X, -0.5)
		assert.LessOrEqual(t, o.X, canvas.W+0.5)
		assert.GreaterOrEqual(t, o.Y, -0.5)
		assert.LessOrEqual(t, o.Y, canvas.H+0.5)
	}

	// a zoomed-in viewport for a single point
	single := BBox{}.Extend(LatLng{Lat: 1, Lon: 1})
	v = FitViewport(single, canvas)
	assert.Equal(t, 15.0, v.Zoom)
	assert.Equal(t, LatLng{Lat: 1, Lon: 1}, v.Center)

	// empty box falls back to a world view
	v = FitViewport(BBox{}, canvas)
	assert.Equal(t, 2.0, v.Zoom)
}
