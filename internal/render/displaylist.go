// Package render turns resolved geometry into an ordered list of drawing
// primitives and rasterizes that list onto a braille cell canvas.
//
// Coordinates throughout are braille micro-pixels: a terminal cell is a 2x4
// dot grid, so a w×h cell canvas spans 2w×4h micro-pixels.
package render

import (
	"sort"

	"geoscope/internal/geo"
)

// Layer fixes the paint order. Later layers are never occluded by earlier
// ones; labels paint last. The zero Layer is not a real layer, so ops can
// treat it as "unset".
type Layer int

const (
	LayerBackground Layer = iota + 1
	LayerGraticule
	LayerPolygons
	LayerLines
	LayerPoints
	LayerSelection
	LayerLabels
)

// Op is a single drawing primitive.
type Op interface {
	Layer() Layer
}

// FillPolygon fills the outer ring with an even-odd scanline pass and
// strokes its edges.
type FillPolygon struct {
	Ring  []geo.Offset
	Color string
}

func (FillPolygon) Layer() Layer { return LayerPolygons }

// StrokePath strokes a polyline; Closed joins the last vertex back to the
// first.
type StrokePath struct {
	Points []geo.Offset
	Closed bool
	Color  string
	On     Layer // unset (zero) paints on LayerLines
}

func (s StrokePath) Layer() Layer {
	if s.On == 0 {
		return LayerLines
	}
	return s.On
}

// Dot plots a single micro-pixel.
type Dot struct {
	At    geo.Offset
	Color string
}

func (Dot) Layer() Layer { return LayerPoints }

// Disc fills a circle of the given micro-pixel radius. Selected discs grow
// by one micro-pixel and take the selection style; selection is a draw-time
// modifier, not a separate shape.
type Disc struct {
	At       geo.Offset
	Radius   float64
	Color    string
	Selected bool
}

func (d Disc) Layer() Layer {
	if d.Selected {
		return LayerSelection
	}
	return LayerPoints
}

// Label places text at a cell position derived from the micro-pixel anchor.
type Label struct {
	At    geo.Offset
	Text  string
	Color string
}

func (Label) Layer() Layer { return LayerLabels }

// DisplayList is an ordered collection of ops.
type DisplayList struct {
	ops []Op
}

// Add appends ops in submission order.
func (d *DisplayList) Add(ops ...Op) {
	d.ops = append(d.ops, ops...)
}

// Len returns the number of ops.
func (d *DisplayList) Len() int { return len(d.ops) }

// Sorted returns the ops in paint order: ascending layer, stable within a
// layer so submission order is the tie-break.
func (d *DisplayList) Sorted() []Op {
	out := make([]Op, len(d.ops))
	copy(out, d.ops)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Layer() < out[j].Layer() })
	return out
}
