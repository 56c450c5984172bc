// Package hittest resolves screen tap coordinates to the entity the user
// intended to interact with.
package hittest

import (
	"math"

	"geoscope/internal/geo"
)

// DefaultTolerance is the tap radius in pixels for point entities.
const DefaultTolerance = 16.0

// Kind tags the entity class a candidate belongs to.
type Kind int

const (
	KindMarker Kind = iota
	KindCluster
	KindRegion
	KindDataPoint
)

func (k Kind) String() string {
	switch k {
	case KindMarker:
		return "marker"
	case KindCluster:
		return "cluster"
	case KindRegion:
		return "region"
	case KindDataPoint:
		return "datapoint"
	}
	return "unknown"
}

// Candidate is one interactive entity in screen space. Point kinds use Pos
// and Tolerance; regions use Polygon (projected outer ring vertices).
type Candidate struct {
	Kind      Kind
	ID        string
	Pos       geo.Offset
	Tolerance float64 // 0 means DefaultTolerance
	Polygon   []geo.Offset
}

// Hit identifies the resolved entity.
type Hit struct {
	Kind Kind
	ID   string
}

// Resolve returns the first candidate, in input order, containing the tap.
// There is no closest-wins sort across the candidate set; list order is the
// tie-break. A false return means no entity was tapped and callers treat it
// as deselect.
func Resolve(tap geo.Offset, candidates []Candidate) (Hit, bool) {
	for _, c := range candidates {
		if c.contains(tap) {
			return Hit{Kind: c.Kind, ID: c.ID}, true
		}
	}
	return Hit{}, false
}

func (c Candidate) contains(tap geo.Offset) bool {
	if c.Kind == KindRegion {
		return len(c.Polygon) >= 3 && polygonContains(c.Polygon, tap)
	}
	tol := c.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	dx := tap.X - c.Pos.X
	dy := tap.Y - c.Pos.Y
	return math.Hypot(dx, dy) <= tol
}

// polygonContains runs a bounding-box quick reject, then an even-odd
// ray-cast against the ring edges. Points on the box edge pass the reject;
// concave shapes resolve correctly through the ray cast.
func polygonContains(ring []geo.Offset, p geo.Offset) bool {
	minX, minY := ring[0].X, ring[0].Y
	maxX, maxY := minX, minY
	for _, v := range ring[1:] {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	if p.X < minX || p.X > maxX || p.Y < minY || p.Y > maxY {
		return false
	}
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
