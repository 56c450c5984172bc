// Package chart lays out statistical series as display-list primitives.
package chart

import (
	"math"
	"strconv"

	"geoscope/internal/geo"
	"geoscope/internal/hittest"
	"geoscope/internal/render"
)

// Point is one observation. X orders points on the axis, Y is the value.
type Point struct {
	X     float64
	Y     float64
	Label string
}

// Series is a named, colored sequence of points.
type Series struct {
	Name   string
	Color  string
	Points []Point
}

// Input is one chart frame. Progress is the entrance animation scalar:
// heights and sweep angles scale linearly from 0 to target as it runs 0→1.
type Input struct {
	Series   []Series
	Canvas   geo.Size // micro-pixels
	Progress float64
	Selected hittest.Hit
	HasSel   bool
	Axis     string // axis/frame color
	Label    string // label color
}

func pointID(s Series, i int) string {
	return s.Name + "/" + strconv.Itoa(i)
}

func maxValue(series []Series) float64 {
	max := 0.0
	for _, s := range series {
		for _, p := range s.Points {
			if p.Y > max {
				max = p.Y
			}
		}
	}
	return max
}

// chart body margins in micro-pixels: room for the frame and one label row.
const (
	marginLeft   = 4
	marginRight  = 2
	marginTop    = 2
	marginBottom = 6
)

func plotRect(canvas geo.Size) (x0, y0, x1, y1 float64) {
	return marginLeft, marginTop, canvas.W - marginRight, canvas.H - marginBottom
}

func axes(dl *render.DisplayList, canvas geo.Size, color string) {
	x0, y0, x1, y1 := plotRect(canvas)
	dl.Add(render.StrokePath{
		Points: []geo.Offset{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}},
		Color:  color,
		On:     render.LayerGraticule,
	})
}

// Bars lays the series out as grouped vertical bars growing from the
// baseline. Bar heights are Progress-scaled; a selected bar redraws its top
// marker through the selection layer.
func Bars(in Input) (*render.DisplayList, []hittest.Candidate) {
	dl := &render.DisplayList{}
	var cands []hittest.Candidate
	axes(dl, in.Canvas, in.Axis)

	max := maxValue(in.Series)
	if max <= 0 {
		return dl, cands
	}
	x0, y0, x1, y1 := plotRect(in.Canvas)
	groups := 0
	for _, s := range in.Series {
		if len(s.Points) > groups {
			groups = len(s.Points)
		}
	}
	if groups == 0 {
		return dl, cands
	}
	groupW := (x1 - x0) / float64(groups)
	barW := groupW / float64(len(in.Series)+1)
	if barW < 2 {
		barW = 2
	}

	for si, s := range in.Series {
		for pi, p := range s.Points {
			full := (y1 - y0) * p.Y / max
			h := render.Lerp(in.Progress, full)
			bx := x0 + float64(pi)*groupW + float64(si)*barW + barW/2
			top := y1 - h
			if h > 0 {
				dl.Add(render.FillPolygon{
					Ring: []geo.Offset{
						{X: bx, Y: top},
						{X: bx + barW, Y: top},
						{X: bx + barW, Y: y1},
						{X: bx, Y: y1},
					},
					Color: s.Color,
				})
			}
			at := geo.Offset{X: bx + barW/2, Y: top}
			if in.HasSel && in.Selected.Kind == hittest.KindDataPoint && in.Selected.ID == pointID(s, pi) {
				dl.Add(render.Disc{At: at, Radius: 1, Color: s.Color, Selected: true})
			}
			cands = append(cands, hittest.Candidate{Kind: hittest.KindDataPoint, ID: pointID(s, pi), Pos: at})
		}
	}
	return dl, cands
}

// Lines lays each series out as a polyline with a dot per point. Values
// rise from the baseline as Progress runs.
func Lines(in Input) (*render.DisplayList, []hittest.Candidate) {
	dl := &render.DisplayList{}
	var cands []hittest.Candidate
	axes(dl, in.Canvas, in.Axis)

	max := maxValue(in.Series)
	if max <= 0 {
		return dl, cands
	}
	x0, y0, x1, y1 := plotRect(in.Canvas)

	for _, s := range in.Series {
		if len(s.Points) == 0 {
			continue
		}
		span := float64(len(s.Points) - 1)
		if span == 0 {
			span = 1
		}
		pts := make([]geo.Offset, 0, len(s.Points))
		for pi, p := range s.Points {
			h := render.Lerp(in.Progress, (y1-y0)*p.Y/max)
			at := geo.Offset{
				X: x0 + (x1-x0)*float64(pi)/span,
				Y: y1 - h,
			}
			pts = append(pts, at)
			sel := in.HasSel && in.Selected.Kind == hittest.KindDataPoint && in.Selected.ID == pointID(s, pi)
			dl.Add(render.Disc{At: at, Radius: 1, Color: s.Color, Selected: sel})
			cands = append(cands, hittest.Candidate{Kind: hittest.KindDataPoint, ID: pointID(s, pi), Pos: at})
		}
		dl.Add(render.StrokePath{Points: pts, Color: s.Color})
	}
	return dl, cands
}

// Donut lays the first series out as a ring of slices. Sweep angles are
// proportional to each point's share of the total and Progress-scaled, so
// the ring draws itself clockwise from twelve o'clock during entrance.
func Donut(in Input) (*render.DisplayList, []hittest.Candidate) {
	dl := &render.DisplayList{}
	var cands []hittest.Candidate
	if len(in.Series) == 0 {
		return dl, cands
	}
	s := in.Series[0]
	total := 0.0
	for _, p := range s.Points {
		if p.Y > 0 {
			total += p.Y
		}
	}
	if total <= 0 {
		return dl, cands
	}

	cx, cy := in.Canvas.W/2, in.Canvas.H/2
	outer := math.Min(in.Canvas.W, in.Canvas.H)/2 - 2
	if outer < 4 {
		outer = 4
	}
	inner := outer * 0.55

	start := -math.Pi / 2 // twelve o'clock
	for pi, p := range s.Points {
		if p.Y <= 0 {
			continue
		}
		full := 2 * math.Pi * p.Y / total
		sweep := render.Lerp(in.Progress, full)
		if sweep > 0 {
			dl.Add(render.FillPolygon{Ring: annulusSlice(cx, cy, inner, outer, start, sweep), Color: s.Color})
		}
		mid := start + full/2
		at := geo.Offset{
			X: cx + math.Cos(mid)*(inner+outer)/2,
			Y: cy + math.Sin(mid)*(inner+outer)/2,
		}
		if in.HasSel && in.Selected.Kind == hittest.KindDataPoint && in.Selected.ID == pointID(s, pi) {
			dl.Add(render.Disc{At: at, Radius: 1, Color: s.Color, Selected: true})
		}
		if p.Label != "" {
			dl.Add(render.Label{At: at, Text: p.Label, Color: in.Label})
		}
		cands = append(cands, hittest.Candidate{Kind: hittest.KindDataPoint, ID: pointID(s, pi), Pos: at})
		start += full
	}
	return dl, cands
}

// annulusSlice approximates a ring segment as a closed polygon: outer arc
// forward, inner arc back.
func annulusSlice(cx, cy, inner, outer, start, sweep float64) []geo.Offset {
	steps := int(math.Ceil(sweep / (math.Pi / 24)))
	if steps < 2 {
		steps = 2
	}
	ring := make([]geo.Offset, 0, 2*steps+2)
	for i := 0; i <= steps; i++ {
		a := start + sweep*float64(i)/float64(steps)
		ring = append(ring, geo.Offset{X: cx + math.Cos(a)*outer, Y: cy + math.Sin(a)*outer})
	}
	for i := steps; i >= 0; i-- {
		a := start + sweep*float64(i)/float64(steps)
		ring = append(ring, geo.Offset{X: cx + math.Cos(a)*inner, Y: cy + math.Sin(a)*inner})
	}
	return ring
}
