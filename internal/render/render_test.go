package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoscope/internal/geo"
)

func TestDisplayListSortedByLayer(t *testing.T) {
	dl := &DisplayList{}
	dl.Add(
		Label{At: geo.Offset{}, Text: "x"},
		Dot{At: geo.Offset{}},
		FillPolygon{Ring: []geo.Offset{{}, {X: 1}, {Y: 1}}},
		StrokePath{Points: []geo.Offset{{}, {X: 1}}},
		StrokePath{Points: []geo.Offset{{}, {X: 2}}, On: LayerGraticule},
	)
	ops := dl.Sorted()
	require.Len(t, ops, 5)

	layers := make([]Layer, len(ops))
	for i, op := range ops {
		layers[i] = op.Layer()
	}
	assert.Equal(t, []Layer{LayerGraticule, LayerPolygons, LayerLines, LayerPoints, LayerLabels}, layers)
}

func TestDisplayListStableWithinLayer(t *testing.T) {
	dl := &DisplayList{}
	dl.Add(
		Dot{At: geo.Offset{X: 1}},
		Dot{At: geo.Offset{X: 2}},
		Dot{At: geo.Offset{X: 3}},
	)
	ops := dl.Sorted()
	xs := []float64{}
	for _, op := range ops {
		xs = append(xs, op.(Dot).At.X)
	}
	assert.Equal(t, []float64{1, 2, 3}, xs)
}

func TestSelectedDiscPaintsOnSelectionLayer(t *testing.T) {
	assert.Equal(t, LayerPoints, Disc{}.Layer())
	assert.Equal(t, LayerSelection, Disc{Selected: true}.Layer())
}

func TestStrokePathLayerTarget(t *testing.T) {
	assert.Equal(t, LayerLines, StrokePath{}.Layer())
	assert.Equal(t, LayerBackground, StrokePath{On: LayerBackground}.Layer())
	assert.Equal(t, LayerGraticule, StrokePath{On: LayerGraticule}.Layer())
}

func TestTweenProgressBoundaries(t *testing.T) {
	tw := Tween{Duration: time.Second}
	assert.Equal(t, 0.0, tw.Progress(0))
	assert.Equal(t, 0.0, tw.Progress(-time.Second))
	assert.Equal(t, 1.0, tw.Progress(time.Second))
	assert.Equal(t, 1.0, tw.Progress(2*time.Second))
	assert.InDelta(t, 0.5, tw.Progress(500*time.Millisecond), 1e-9)
}

func TestTweenZeroDurationUsesDefault(t *testing.T) {
	tw := Tween{}
	assert.Equal(t, 1.0, tw.Progress(DefaultTweenDuration))
	assert.Less(t, tw.Progress(DefaultTweenDuration/2), 1.0)
}

func TestLerpBoundariesExact(t *testing.T) {
	// at 0 magnitudes are exactly zero, at 1 exactly the target
	assert.Equal(t, 0.0, Lerp(0, 123.45))
	assert.Equal(t, 123.45, Lerp(1, 123.45))
	assert.Equal(t, 123.45, Lerp(1.5, 123.45))
	assert.Equal(t, 0.0, Lerp(-0.2, 123.45))
	assert.InDelta(t, 61.725, Lerp(0.5, 123.45), 1e-9)
}

func TestCanvasDotSetsBrailleCell(t *testing.T) {
	c := NewCanvas(4, 2)
	dl := &DisplayList{}
	dl.Add(Dot{At: geo.Offset{X: 0, Y: 0}, Color: "#FFFFFF"})
	c.Draw(dl)
	frame := c.Frame()
	require.Len(t, frame, 2)
	assert.Contains(t, frame[0], string(rune(0x2801)))
}

func TestCanvasLabelOverridesDots(t *testing.T) {
	c := NewCanvas(6, 2)
	dl := &DisplayList{}
	dl.Add(
		Dot{At: geo.Offset{X: 0, Y: 0}},
		Label{At: geo.Offset{X: 0, Y: 0}, Text: "A"},
	)
	c.Draw(dl)
	frame := c.Frame()
	assert.Contains(t, frame[0], "A")
	assert.NotContains(t, frame[0], string(rune(0x2801)))
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	dl := &DisplayList{}
	dl.Add(
		Dot{At: geo.Offset{X: -10, Y: -10}},
		Dot{At: geo.Offset{X: 100, Y: 100}},
		StrokePath{Points: []geo.Offset{{X: -5, Y: -5}, {X: 20, Y: 20}}},
	)
	assert.NotPanics(t, func() { c.Draw(dl) })
}

func TestCanvasLabelMultibyteRunesStayContiguous(t *testing.T) {
	c := NewCanvas(6, 1)
	dl := &DisplayList{}
	dl.Add(Label{At: geo.Offset{X: 0, Y: 0}, Text: "Ωké"})
	c.Draw(dl)
	assert.Equal(t, 'Ω', cellRune(c, 0, 0))
	assert.Equal(t, 'k', cellRune(c, 1, 0))
	assert.Equal(t, 'é', cellRune(c, 2, 0))
	assert.Equal(t, rune(0), cellRune(c, 3, 0))
}

// Zooming deep inside a region projects its ring millions of micro-pixels
// past the canvas; drawing must stay proportional to the canvas, not the
// ring extent.
func TestCanvasClipsFarOffscreenGeometry(t *testing.T) {
	c := NewCanvas(80, 40)
	dl := &DisplayList{}
	dl.Add(
		FillPolygon{Ring: []geo.Offset{
			{X: -2.5e9, Y: -2.5e9}, {X: 2.5e9, Y: -2.5e9},
			{X: 2.5e9, Y: 2.5e9}, {X: -2.5e9, Y: 2.5e9},
		}},
		StrokePath{Points: []geo.Offset{{X: -2.5e9, Y: 17}, {X: 2.5e9, Y: 17}}},
	)

	done := make(chan struct{})
	go func() {
		c.Draw(dl)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("drawing off-canvas geometry did not finish")
	}

	// the visible part is still rasterized: interior fill and the clipped line
	assert.NotZero(t, cellMask(c, 10, 10))
	assert.NotZero(t, cellMask(c, 40, 17/4))
}

func TestCanvasFullyOffscreenSegmentDrawsNothing(t *testing.T) {
	c := NewCanvas(4, 4)
	dl := &DisplayList{}
	dl.Add(StrokePath{Points: []geo.Offset{{X: 100, Y: 100}, {X: 200, Y: 100}}})
	c.Draw(dl)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Zero(t, cellMask(c, x, y))
		}
	}
}

func TestCanvasPolygonFill(t *testing.T) {
	c := NewCanvas(10, 5)
	dl := &DisplayList{}
	dl.Add(FillPolygon{Ring: []geo.Offset{
		{X: 2, Y: 2}, {X: 16, Y: 2}, {X: 16, Y: 16}, {X: 2, Y: 16},
	}})
	c.Draw(dl)
	// an interior cell must carry dots
	assert.NotZero(t, cellMask(c, 4, 2))
}

// cellMask peeks at the braille mask for tests.
func cellMask(c *Canvas, x, y int) uint8 {
	return c.mask[y][x]
}

func cellRune(c *Canvas, x, y int) rune {
	return c.text[y][x]
}
