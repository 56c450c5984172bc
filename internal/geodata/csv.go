package geodata

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"geoscope/internal/geo"
)

// LoadCSV reads a CSV with latitude/longitude columns into markers.
// Column detection is case-insensitive: lat|latitude|y and
// lon|lng|long|longitude|x. An id column keeps source identity; name and
// color columns map to display attributes; everything else lands in Meta.
func LoadCSV(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return Set{}, err
	}
	if len(recs) == 0 {
		return Set{}, ErrEmptyInput
	}

	header := recs[0]
	idxLat, idxLon, idxID, idxName, idxColor := -1, -1, -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "id":
			idxID = i
		case "name", "label", "title":
			if idxName == -1 {
				idxName = i
			}
		case "color", "colour":
			if idxColor == -1 {
				idxColor = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return Set{}, ErrMissingColumn
	}

	var s Set
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		m := Marker{Pos: geo.LatLng{Lat: lat, Lon: lon}}
		if idxID != -1 && idxID < len(row) && row[idxID] != "" {
			m.ID = row[idxID]
		} else {
			m.ID = fallbackID()
		}
		if idxName != -1 && idxName < len(row) {
			m.Label = row[idxName]
		}
		if idxColor != -1 && idxColor < len(row) {
			m.Color = row[idxColor]
		}
		for i, h := range header {
			if i == idxLat || i == idxLon || i == idxID || i == idxName || i == idxColor {
				continue
			}
			if i < len(row) && row[i] != "" {
				if m.Meta == nil {
					m.Meta = map[string]string{}
				}
				m.Meta[h] = row[i]
			}
		}
		s.addMarker(m)
	}
	if len(s.Markers) == 0 {
		return Set{}, ErrNoGeometries
	}
	return s, nil
}
