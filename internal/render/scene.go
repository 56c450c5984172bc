package render

import (
	"strconv"

	"geoscope/internal/cluster"
	"geoscope/internal/geo"
	"geoscope/internal/geodata"
	"geoscope/internal/hittest"
)

// Theme carries the palette applied to map ops.
type Theme struct {
	Point     string
	Line      string
	Polygon   string
	Cluster   string
	Label     string
	Graticule string
}

// DefaultTheme matches the viewer's stock palette.
func DefaultTheme() Theme {
	return Theme{
		Point:     "#7C3AED",
		Line:      "#38BDF8",
		Polygon:   "#334155",
		Cluster:   "#F59E0B",
		Label:     "#E6E6E6",
		Graticule: "#243141",
	}
}

// SceneInput is everything one map frame depends on. Values only; the scene
// builder holds no state between frames.
type SceneInput struct {
	Data     geodata.Set
	Clusters cluster.Result
	Viewport geo.Viewport
	Canvas   geo.Size // micro-pixels
	Selected hittest.Hit
	HasSel   bool

	ShowPoints    bool
	ShowLines     bool
	ShowRegions   bool
	ShowGraticule bool

	Theme Theme
	// Tolerance for point candidates, micro-pixels. 0 means the hittest
	// default.
	Tolerance float64
}

// BuildScene projects the input once and emits both the display list and the
// hit-test candidates from the same pass, so what is drawn and what is
// tappable can never disagree. Candidate order mirrors paint order front to
// back: points before clusters before regions, each in input order.
func BuildScene(in SceneInput) (*DisplayList, []hittest.Candidate) {
	dl := &DisplayList{}
	var cands []hittest.Candidate
	project := func(p geo.LatLng) geo.Offset {
		return geo.Project(p, in.Viewport, in.Canvas)
	}

	if in.ShowGraticule {
		buildGraticule(dl, in)
	}

	if in.ShowRegions {
		for _, r := range in.Data.Regions {
			if len(r.Rings) == 0 {
				continue
			}
			outer := make([]geo.Offset, 0, len(r.Rings[0]))
			for _, p := range r.Rings[0] {
				outer = append(outer, project(p))
			}
			if len(outer) < 3 {
				continue
			}
			color := r.Color
			if color == "" {
				color = in.Theme.Polygon
			}
			dl.Add(FillPolygon{Ring: outer, Color: color})
			cands = append(cands, hittest.Candidate{Kind: hittest.KindRegion, ID: r.ID, Polygon: outer})
		}
	}

	if in.ShowLines {
		for _, t := range in.Data.Tracks {
			pts := make([]geo.Offset, 0, len(t.Path))
			for _, p := range t.Path {
				pts = append(pts, project(p))
			}
			if len(pts) == 0 {
				continue
			}
			color := t.Color
			if color == "" {
				color = in.Theme.Line
			}
			dl.Add(StrokePath{Points: pts, Color: color})
		}
	}

	if in.ShowPoints {
		for _, m := range in.Clusters.Single {
			at := project(m.Pos)
			color := m.Color
			if color == "" {
				color = in.Theme.Point
			}
			sel := in.HasSel && in.Selected.Kind == hittest.KindMarker && in.Selected.ID == m.ID
			dl.Add(Disc{At: at, Radius: 1, Color: color, Selected: sel})
			cands = append(cands, hittest.Candidate{
				Kind: hittest.KindMarker, ID: m.ID, Pos: at, Tolerance: in.Tolerance,
			})
		}
		for _, c := range in.Clusters.Clusters {
			at := project(c.Center)
			sel := in.HasSel && in.Selected.Kind == hittest.KindCluster && in.Selected.ID == c.ID
			dl.Add(Disc{At: at, Radius: clusterRadius(c.Count()), Color: in.Theme.Cluster, Selected: sel})
			dl.Add(Label{At: at, Text: strconv.Itoa(c.Count()), Color: in.Theme.Label})
			cands = append(cands, hittest.Candidate{
				Kind: hittest.KindCluster, ID: c.ID, Pos: at, Tolerance: in.Tolerance,
			})
		}
	}

	// candidates resolve front to back: points, then clusters, then regions
	reorderCandidates(cands)
	return dl, cands
}

func clusterRadius(count int) float64 {
	r := 2.0
	switch {
	case count >= 100:
		r = 5
	case count >= 25:
		r = 4
	case count >= 10:
		r = 3
	}
	return r
}

// reorderCandidates moves region candidates behind point kinds in place,
// preserving relative order inside each group.
func reorderCandidates(cands []hittest.Candidate) {
	points := make([]hittest.Candidate, 0, len(cands))
	regions := make([]hittest.Candidate, 0)
	for _, c := range cands {
		if c.Kind == hittest.KindRegion {
			regions = append(regions, c)
		} else {
			points = append(points, c)
		}
	}
	copy(cands, points)
	copy(cands[len(points):], regions)
}

// graticuleSteps is the degree ladder for grid line spacing.
var graticuleSteps = []float64{45, 30, 15, 10, 5, 2, 1, 0.5, 0.25, 0.1, 0.05, 0.02, 0.01}

func buildGraticule(dl *DisplayList, in SceneInput) {
	nw := geo.Unproject(geo.Offset{X: 0, Y: 0}, in.Viewport, in.Canvas)
	se := geo.Unproject(geo.Offset{X: in.Canvas.W, Y: in.Canvas.H}, in.Viewport, in.Canvas)
	lonSpan := se.Lon - nw.Lon
	if lonSpan <= 0 {
		return
	}
	step := graticuleSteps[0]
	for _, s := range graticuleSteps {
		if lonSpan/s >= 3 {
			step = s
			break
		}
	}
	line := func(a, b geo.LatLng) {
		dl.Add(StrokePath{
			Points: []geo.Offset{
				geo.Project(a, in.Viewport, in.Canvas),
				geo.Project(b, in.Viewport, in.Canvas),
			},
			Color: in.Theme.Graticule,
			On:    LayerGraticule,
		})
	}
	for lon := snapDown(nw.Lon, step); lon <= se.Lon; lon += step {
		line(geo.LatLng{Lat: nw.Lat, Lon: lon}, geo.LatLng{Lat: se.Lat, Lon: lon})
	}
	for lat := snapDown(se.Lat, step); lat <= nw.Lat; lat += step {
		line(geo.LatLng{Lat: lat, Lon: nw.Lon}, geo.LatLng{Lat: lat, Lon: se.Lon})
	}
}

func snapDown(v, step float64) float64 {
	n := int(v / step)
	s := float64(n) * step
	if s > v {
		s -= step
	}
	return s
}
