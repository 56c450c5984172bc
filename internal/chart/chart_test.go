package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoscope/internal/geo"
	"geoscope/internal/render"
)

func input(progress float64) Input {
	return Input{
		Series: []Series{{
			Name:  "s",
			Color: "#7C3AED",
			Points: []Point{
				{X: 0, Y: 10, Label: "a"},
				{X: 1, Y: 30, Label: "b"},
				{X: 2, Y: 60, Label: "c"},
			},
		}},
		Canvas:   geo.Size{W: 120, H: 80},
		Progress: progress,
	}
}

func countFills(dl *render.DisplayList) int {
	n := 0
	for _, op := range dl.Sorted() {
		if _, ok := op.(render.FillPolygon); ok {
			n++
		}
	}
	return n
}

func TestBarsProgressZeroDrawsNoBars(t *testing.T) {
	dl, cands := Bars(input(0))
	assert.Zero(t, countFills(dl))
	// candidates still exist so taps resolve mid-animation
	assert.Len(t, cands, 3)
}

func TestBarsProgressOneExactHeights(t *testing.T) {
	in := input(1)
	dl, cands := Bars(in)
	require.Equal(t, 3, countFills(dl))

	// the max-value bar tops out at the plot ceiling
	_, y0, _, y1 := plotRect(in.Canvas)
	top := y1
	for _, c := range cands {
		if c.Pos.Y < top {
			top = c.Pos.Y
		}
	}
	assert.InDelta(t, y0, top, 1e-9)

	// heights are linear in value: the 30 bar is half the 60 bar
	var tops []float64
	for _, c := range cands {
		tops = append(tops, y1-c.Pos.Y)
	}
	assert.InDelta(t, tops[2]/2, tops[1], 1e-9)
	assert.InDelta(t, tops[2]/6, tops[0], 1e-9)
}

func TestBarsHalfProgressHalfHeights(t *testing.T) {
	_, full := Bars(input(1))
	_, half := Bars(input(0.5))
	require.Len(t, half, 3)
	_, _, _, y1 := plotRect(input(1).Canvas)
	for i := range full {
		assert.InDelta(t, (y1-full[i].Pos.Y)/2, y1-half[i].Pos.Y, 1e-9)
	}
}

func TestLinesProgressBoundaries(t *testing.T) {
	_, _, _, y1 := plotRect(input(0).Canvas)

	_, cands := Lines(input(0))
	require.Len(t, cands, 3)
	for _, c := range cands {
		assert.InDelta(t, y1, c.Pos.Y, 1e-9, "at progress 0 all points sit on the baseline")
	}

	dl, cands := Lines(input(1))
	require.Len(t, cands, 3)
	var stroked bool
	for _, op := range dl.Sorted() {
		if s, ok := op.(render.StrokePath); ok && len(s.Points) == 3 {
			stroked = true
		}
	}
	assert.True(t, stroked)
}

func TestDonutSweepProportions(t *testing.T) {
	dl, cands := Donut(input(1))
	assert.Equal(t, 3, countFills(dl))
	assert.Len(t, cands, 3)

	// slice IDs are stable series/index handles
	assert.Equal(t, "s/0", cands[0].ID)
	assert.Equal(t, "s/2", cands[2].ID)
}

func TestDonutProgressZeroDrawsNothing(t *testing.T) {
	dl, _ := Donut(input(0))
	assert.Zero(t, countFills(dl))
}

func TestDonutIgnoresNonPositiveValues(t *testing.T) {
	in := input(1)
	in.Series[0].Points = append(in.Series[0].Points, Point{X: 3, Y: -5, Label: "neg"})
	dl, cands := Donut(in)
	assert.Equal(t, 3, countFills(dl))
	assert.Len(t, cands, 3)
}

func TestEmptySeriesTotalFunctions(t *testing.T) {
	empty := Input{Canvas: geo.Size{W: 40, H: 40}, Progress: 1}
	dl, cands := Bars(empty)
	assert.NotNil(t, dl)
	assert.Empty(t, cands)
	dl, cands = Lines(empty)
	assert.NotNil(t, dl)
	assert.Empty(t, cands)
	dl, cands = Donut(empty)
	assert.NotNil(t, dl)
	assert.Empty(t, cands)
}

func TestAnnulusSliceClosedRing(t *testing.T) {
	ring := annulusSlice(50, 50, 10, 20, 0, math.Pi/2)
	require.GreaterOrEqual(t, len(ring), 6)
	for _, p := range ring {
		r := math.Hypot(p.X-50, p.Y-50)
		assert.GreaterOrEqual(t, r, 10-1e-9)
		assert.LessOrEqual(t, r, 20+1e-9)
	}
}
