package geodata

import (
	"errors"

	"github.com/google/uuid"

	"geoscope/internal/geo"
)

var (
	ErrEmptyInput    = errors.New("geodata: empty input")
	ErrNoGeometries  = errors.New("geodata: no geometries found")
	ErrUnsupported   = errors.New("geodata: unsupported format")
	ErrMissingColumn = errors.New("geodata: latitude/longitude columns not found")
)

// Marker is a point entity. ID comes from the source when it carries one,
// otherwise a generated fallback, and is the handle selection state refers to.
type Marker struct {
	ID    string
	Pos   geo.LatLng
	Label string
	Color string
	Meta  map[string]string
}

// Track is a polyline entity.
type Track struct {
	ID    string
	Path  []geo.LatLng
	Label string
	Color string
	Meta  map[string]string
}

// Region is a polygon entity with rings (first outer, following holes).
type Region struct {
	ID    string
	Rings [][]geo.LatLng
	Label string
	Color string
	Meta  map[string]string
}

// Set is one load's worth of entities plus their combined bounds. It is a
// value snapshot: reloads replace the whole set, nothing mutates in place.
type Set struct {
	Markers []Marker
	Tracks  []Track
	Regions []Region
	BBox    geo.BBox
}

func (s Set) Empty() bool {
	return len(s.Markers) == 0 && len(s.Tracks) == 0 && len(s.Regions) == 0
}

// extend folds a coordinate into the set bounds.
func (s *Set) extend(p geo.LatLng) {
	s.BBox = s.BBox.Extend(p)
}

func fallbackID() string {
	return uuid.NewString()
}
