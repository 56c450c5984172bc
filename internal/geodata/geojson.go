package geodata

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"geoscope/internal/geo"
)

// LoadGeoJSON reads a GeoJSON file into a Set. Supports Point, MultiPoint,
// LineString, MultiLineString, Polygon, MultiPolygon, bare geometries,
// Feature and FeatureCollection. Feature properties become entity metadata.
func LoadGeoJSON(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, err
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON parses GeoJSON bytes into a Set.
func ParseGeoJSON(data []byte) (Set, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Set{}, fmt.Errorf("geodata: invalid geojson: %w", err)
	}

	var s Set
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		parseFeature(&s, raw)
	case "FeatureCollection":
		fs, _ := raw["features"].([]any)
		for _, f := range fs {
			if fm, ok := f.(map[string]any); ok {
				parseFeature(&s, fm)
			}
		}
	case "":
		return Set{}, fmt.Errorf("%w: missing type", ErrUnsupported)
	default:
		// bare geometry document
		parseGeometry(&s, raw, nil)
	}
	if s.Empty() {
		return Set{}, ErrNoGeometries
	}
	return s, nil
}

func parseFeature(s *Set, fm map[string]any) {
	g, ok := fm["geometry"].(map[string]any)
	if !ok {
		return
	}
	props, _ := fm["properties"].(map[string]any)
	parseGeometry(s, g, props)
}

func parseGeometry(s *Set, g map[string]any, props map[string]any) {
	meta := flattenProps(props)
	id := propString(props, "id")
	if id == "" {
		id = fallbackID()
	}
	label := propString(props, "name")
	color := propString(props, "color")

	gt, _ := g["type"].(string)
	switch gt {
	case "Point":
		if p, ok := parseCoord(g["coordinates"]); ok {
			s.addMarker(Marker{ID: id, Pos: p, Label: label, Color: color, Meta: meta})
		}
	case "MultiPoint":
		pts, _ := parseCoordArray(g["coordinates"])
		for i, p := range pts {
			s.addMarker(Marker{ID: indexedID(id, i), Pos: p, Label: label, Color: color, Meta: meta})
		}
	case "LineString":
		if path, ok := parseCoordArray(g["coordinates"]); ok && len(path) > 0 {
			s.addTrack(Track{ID: id, Path: path, Label: label, Color: color, Meta: meta})
		}
	case "MultiLineString":
		arr, _ := g["coordinates"].([]any)
		for i, el := range arr {
			if path, ok := parseCoordArray(el); ok && len(path) > 0 {
				s.addTrack(Track{ID: indexedID(id, i), Path: path, Label: label, Color: color, Meta: meta})
			}
		}
	case "Polygon":
		if rings, ok := parseRings(g["coordinates"]); ok && len(rings) > 0 {
			s.addRegion(Region{ID: id, Rings: rings, Label: label, Color: color, Meta: meta})
		}
	case "MultiPolygon":
		arr, _ := g["coordinates"].([]any)
		for i, el := range arr {
			if rings, ok := parseRings(el); ok && len(rings) > 0 {
				s.addRegion(Region{ID: indexedID(id, i), Rings: rings, Label: label, Color: color, Meta: meta})
			}
		}
	}
}

func (s *Set) addMarker(m Marker) {
	s.extend(m.Pos)
	s.Markers = append(s.Markers, m)
}

func (s *Set) addTrack(t Track) {
	for _, p := range t.Path {
		s.extend(p)
	}
	s.Tracks = append(s.Tracks, t)
}

func (s *Set) addRegion(r Region) {
	for _, ring := range r.Rings {
		for _, p := range ring {
			s.extend(p)
		}
	}
	s.Regions = append(s.Regions, r)
}

func parseCoord(v any) (geo.LatLng, bool) {
	a, ok := v.([]any)
	if !ok || len(a) < 2 {
		return geo.LatLng{}, false
	}
	lon, lok := a[0].(float64)
	lat, aok := a[1].(float64)
	if !lok || !aok {
		return geo.LatLng{}, false
	}
	return geo.LatLng{Lat: lat, Lon: lon}, true
}

func parseCoordArray(v any) ([]geo.LatLng, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	var pts []geo.LatLng
	for _, el := range arr {
		if p, ok := parseCoord(el); ok {
			pts = append(pts, p)
		}
	}
	return pts, true
}

func parseRings(v any) ([][]geo.LatLng, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	var rings [][]geo.LatLng
	for _, el := range arr {
		if ring, ok := parseCoordArray(el); ok && len(ring) > 0 {
			rings = append(rings, ring)
		}
	}
	return rings, true
}

// flattenProps renders arbitrary GeoJSON properties into the closed string
// metadata schema. Nested values keep their JSON encoding.
func flattenProps(props map[string]any) map[string]string {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]string, len(props))
	for k, v := range props {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'g', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		default:
			b, _ := json.Marshal(t)
			out[k] = string(b)
		}
	}
	return out
}

func propString(props map[string]any, key string) string {
	if props == nil {
		return ""
	}
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}

func indexedID(id string, i int) string {
	if i == 0 {
		return id
	}
	return id + "/" + strconv.Itoa(i)
}
