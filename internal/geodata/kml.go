package geodata

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"geoscope/internal/geo"
)

// LoadKML extracts Placemark points from a KML file. Coordinates are
// "lon,lat[,alt]" tuples; altitude is dropped. Placemark names become labels.
func LoadKML(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, err
	}

	type kmlPoint struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Name  string    `xml:"name"`
		Point *kmlPoint `xml:"Point"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Document>Placemark"`
		TopLevel   []kmlPlacemark `xml:"Placemark"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Set{}, err
	}

	var s Set
	placemarks := append(doc.Placemarks, doc.TopLevel...)
	for _, pm := range placemarks {
		if pm.Point == nil {
			continue
		}
		// coordinates may contain multiple tuples separated by whitespace
		for i, tuple := range strings.Fields(pm.Point.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			id := pm.Name
			if id == "" {
				id = fallbackID()
			} else if i > 0 {
				id = indexedID(id, i)
			}
			s.addMarker(Marker{ID: id, Pos: geo.LatLng{Lat: lat, Lon: lon}, Label: pm.Name})
		}
	}
	if len(s.Markers) == 0 {
		return Set{}, ErrNoGeometries
	}
	return s, nil
}
