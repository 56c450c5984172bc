// Package cluster merges nearby markers into synthetic aggregates for
// low-zoom display.
package cluster

import (
	"strconv"

	"geoscope/internal/geo"
	"geoscope/internal/geodata"
)

// Options controls one clustering pass.
type Options struct {
	// RadiusMeters is the grouping radius at zoom 1; the effective radius
	// is RadiusMeters / Zoom.
	RadiusMeters   float64
	MinClusterSize int
	Zoom           float64
}

// DefaultOptions matches the viewer's startup configuration.
func DefaultOptions(zoom float64) Options {
	return Options{RadiusMeters: 200, MinClusterSize: 2, Zoom: zoom}
}

// Cluster is an ephemeral aggregate of nearby markers. Center is the
// arithmetic mean of member coordinates.
type Cluster struct {
	ID      string
	Center  geo.LatLng
	Members []geodata.Marker
}

// Count returns the number of aggregated markers.
func (c Cluster) Count() int { return len(c.Members) }

// Result is one pass over an input marker list. Every input marker appears
// exactly once: either inside one cluster or in Single.
type Result struct {
	Clusters []Cluster
	Single   []geodata.Marker
}

// Pass runs a greedy single-pass clustering over markers in input order.
// For each unprocessed marker it collects all other unprocessed markers
// within the effective radius (great-circle distance); a neighborhood of at
// least MinClusterSize becomes one cluster, anything smaller is emitted
// unclustered. The result is order-dependent and can be suboptimal for
// adversarial layouts; this is the intended trade for an O(n²) pass with no
// index, sized for marker counts in the low hundreds.
func Pass(markers []geodata.Marker, opts Options) Result {
	var res Result
	if len(markers) == 0 {
		return res
	}
	if opts.MinClusterSize < 2 {
		opts.MinClusterSize = 2
	}
	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	radius := opts.RadiusMeters / zoom

	processed := make([]bool, len(markers))
	for i, seed := range markers {
		if processed[i] {
			continue
		}
		neighborhood := []int{i}
		for j := i + 1; j < len(markers); j++ {
			if processed[j] {
				continue
			}
			if geo.Haversine(seed.Pos, markers[j].Pos) <= radius {
				neighborhood = append(neighborhood, j)
			}
		}
		if len(neighborhood) < opts.MinClusterSize {
			processed[i] = true
			res.Single = append(res.Single, seed)
			continue
		}
		c := Cluster{
			ID:      "cluster-" + strconv.Itoa(len(res.Clusters)),
			Members: make([]geodata.Marker, 0, len(neighborhood)),
		}
		var sumLat, sumLon float64
		for _, j := range neighborhood {
			processed[j] = true
			c.Members = append(c.Members, markers[j])
			sumLat += markers[j].Pos.Lat
			sumLon += markers[j].Pos.Lon
		}
		n := float64(len(c.Members))
		c.Center = geo.LatLng{Lat: sumLat / n, Lon: sumLon / n}
		res.Clusters = append(res.Clusters, c)
	}
	return res
}
