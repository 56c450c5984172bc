package geo

import "math"

// tileSize is the Web-Mercator world tile edge in pixels at zoom 0.
const tileSize = 256.0

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// worldXY projects p onto the unit Mercator square: x in [0,1] west to east,
// y in [0,1] north to south.
func worldXY(p LatLng) (x, y float64) {
	p = p.Clamped()
	x = (p.Lon + 180) / 360
	latRad := p.Lat * math.Pi / 180
	y = (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2
	return x, y
}

// Project converts a geographic coordinate to a screen offset for the given
// viewport and canvas. The viewport center lands on the canvas center.
func Project(p LatLng, v Viewport, canvas Size) Offset {
	scale := tileSize * math.Pow(2, clampZoom(v.Zoom))
	px, py := worldXY(p)
	cx, cy := worldXY(v.Center)
	return Offset{
		X: canvas.W/2 + (px-cx)*scale,
		Y: canvas.H/2 + (py-cy)*scale,
	}
}

// Unproject is the inverse of Project, recovering a geographic coordinate
// from a screen offset. Longitude is linear; latitude comes back through
// atan(sinh).
func Unproject(o Offset, v Viewport, canvas Size) LatLng {
	scale := tileSize * math.Pow(2, clampZoom(v.Zoom))
	cx, cy := worldXY(v.Center)
	wx := cx + (o.X-canvas.W/2)/scale
	wy := cy + (o.Y-canvas.H/2)/scale
	lon := wx*360 - 180
	lat := math.Atan(math.Sinh(math.Pi*(1-2*wy))) * 180 / math.Pi
	return LatLng{Lat: lat, Lon: lon}
}

// FitViewport picks the centered viewport with the largest integer zoom that
// keeps the whole box on the canvas. Degenerate boxes get a fixed close-up
// zoom.
func FitViewport(b BBox, canvas Size) Viewport {
	v := Viewport{Center: b.Center(), Zoom: MaxZoom}
	if b.Empty() || canvas.W <= 0 || canvas.H <= 0 {
		return Viewport{Center: b.Center(), Zoom: 2}
	}
	x0, y0 := worldXY(LatLng{Lat: b.MaxLat, Lon: b.MinLon}.Clamped())
	x1, y1 := worldXY(LatLng{Lat: b.MinLat, Lon: b.MaxLon}.Clamped())
	dw, dh := x1-x0, y1-y0
	if dw <= 0 && dh <= 0 {
		v.Zoom = 15
		return v
	}
	for z := MaxZoom; z >= MinZoom; z-- {
		scale := tileSize * math.Pow(2, z)
		if dw*scale <= canvas.W && dh*scale <= canvas.H {
			v.Zoom = z
			return v
		}
	}
	v.Zoom = MinZoom
	return v
}
