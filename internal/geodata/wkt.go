package geodata

import (
	"fmt"
	"strconv"
	"strings"

	"geoscope/internal/geo"
)

// ParseWKT parses a WKT subset into a Set.
// Supported: POINT(x y), MULTIPOINT(x y, ...), LINESTRING(x y, ...),
// POLYGON((x y, ...)[,(x y, ...)]).
func ParseWKT(wkt string) (Set, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Set{}, ErrEmptyInput
	}
	up := strings.ToUpper(s)

	var out Set
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"):
		body, err := parenBody(s, "(", ")")
		if err != nil {
			return Set{}, fmt.Errorf("wkt multipoint: %w", err)
		}
		for _, p := range parseTuples(body) {
			out.addMarker(Marker{ID: fallbackID(), Pos: p})
		}
	case strings.HasPrefix(up, "POINT"):
		body, err := parenBody(s, "(", ")")
		if err != nil {
			return Set{}, fmt.Errorf("wkt point: %w", err)
		}
		for _, p := range parseTuples(body) {
			out.addMarker(Marker{ID: fallbackID(), Pos: p})
		}
	case strings.HasPrefix(up, "LINESTRING"):
		body, err := parenBody(s, "(", ")")
		if err != nil {
			return Set{}, fmt.Errorf("wkt linestring: %w", err)
		}
		path := parseTuples(body)
		if len(path) > 0 {
			out.addTrack(Track{ID: fallbackID(), Path: path})
		}
	case strings.HasPrefix(up, "POLYGON"):
		body, err := parenBody(s, "((", "))")
		if err != nil {
			return Set{}, fmt.Errorf("wkt polygon: %w", err)
		}
		// normalize spacing around ring separators before splitting
		norm := strings.ReplaceAll(body, "), (", "),(")
		norm = strings.ReplaceAll(norm, ") , (", "),(")
		var rings [][]geo.LatLng
		for _, rp := range strings.Split(norm, "),(") {
			if ring := parseTuples(rp); len(ring) > 0 {
				rings = append(rings, ring)
			}
		}
		if len(rings) > 0 {
			out.addRegion(Region{ID: fallbackID(), Rings: rings})
		}
	default:
		return Set{}, fmt.Errorf("%w: wkt type", ErrUnsupported)
	}
	if out.Empty() {
		return Set{}, ErrNoGeometries
	}
	return out, nil
}

func parenBody(s, open, close string) (string, error) {
	i := strings.Index(s, open)
	j := strings.LastIndex(s, close)
	if i < 0 || j <= i {
		return "", ErrUnsupported
	}
	return s[i+len(open) : j], nil
}

// parseTuples splits "x y, x y, ..." into coordinates, skipping malformed
// tuples.
func parseTuples(block string) []geo.LatLng {
	var out []geo.LatLng
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, geo.LatLng{Lat: y, Lon: x})
	}
	return out
}
