package geo

import "math"

// Web-Mercator limits. Latitudes beyond MaxLat project to infinity, so the
// projection clamps instead of diverging; longitude is not wrapped at ±180.
const (
	MaxLat  = 85.05113
	MinZoom = 0.0
	MaxZoom = 22.0
)

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64
	Lon float64
}

// Clamped returns a copy with latitude limited to the Mercator-safe range.
func (p LatLng) Clamped() LatLng {
	if p.Lat > MaxLat {
		p.Lat = MaxLat
	}
	if p.Lat < -MaxLat {
		p.Lat = -MaxLat
	}
	return p
}

// Viewport is the visible map window: a center coordinate and a zoom level.
type Viewport struct {
	Center LatLng
	Zoom   float64
}

// Size is a canvas extent in pixels.
type Size struct {
	W float64
	H float64
}

// Offset is a screen-space point in pixels, origin top-left.
type Offset struct {
	X float64
	Y float64
}

// BBox is a geographic bounding box in degrees.
type BBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// Extend grows the box to include p. The zero box adopts the first point,
// signalled by Empty.
func (b BBox) Extend(p LatLng) BBox {
	if b.Empty() {
		return BBox{MinLon: p.Lon, MinLat: p.Lat, MaxLon: p.Lon, MaxLat: p.Lat}
	}
	if p.Lon < b.MinLon {
		b.MinLon = p.Lon
	}
	if p.Lat < b.MinLat {
		b.MinLat = p.Lat
	}
	if p.Lon > b.MaxLon {
		b.MaxLon = p.Lon
	}
	if p.Lat > b.MaxLat {
		b.MaxLat = p.Lat
	}
	return b
}

// Empty reports whether the box has never been extended. A single point
// yields a degenerate but non-empty box.
func (b BBox) Empty() bool {
	return b == BBox{}
}

// Center returns the midpoint of the box.
func (b BBox) Center() LatLng {
	return LatLng{Lat: (b.MinLat + b.MaxLat) / 2, Lon: (b.MinLon + b.MaxLon) / 2}
}

// Contains reports whether p lies inside or on the box.
func (b BBox) Contains(p LatLng) bool {
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon && p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}

const earthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance between a and b in meters.
func Haversine(a, b LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
