package render

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geoscope/internal/geo"
)

// Canvas is a braille cell buffer. Each cell packs a 2x4 dot mask plus the
// color of the last op that touched it; labels live in a cell-level text
// overlay composited on top.
type Canvas struct {
	w, h int // cells
	mask [][]uint8
	col  [][]string
	text [][]rune
	tcol [][]string

	// DefaultColor styles ops that carry no color of their own.
	DefaultColor string
	// SelectionColor substitutes for the op color on selected discs.
	SelectionColor string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{w: w, h: h, DefaultColor: "#E6E6E6", SelectionColor: "#FFA500"}
	c.mask = make([][]uint8, h)
	c.col = make([][]string, h)
	c.text = make([][]rune, h)
	c.tcol = make([][]string, h)
	for y := 0; y < h; y++ {
		c.mask[y] = make([]uint8, w)
		c.col[y] = make([]string, w)
		c.text[y] = make([]rune, w)
		c.tcol[y] = make([]string, w)
	}
	return c
}

// MicroSize is the canvas extent in micro-pixels, the coordinate space the
// projection targets.
func (c *Canvas) MicroSize() geo.Size {
	return geo.Size{W: float64(c.w * 2), H: float64(c.h * 4)}
}

// Draw rasterizes the list in paint order.
func (c *Canvas) Draw(dl *DisplayList) {
	for _, op := range dl.Sorted() {
		switch o := op.(type) {
		case FillPolygon:
			c.fillPolygon(o.Ring, o.Color)
			c.strokeRing(o.Ring, o.Color)
		case StrokePath:
			c.strokePath(o.Points, o.Closed, o.Color)
		case Dot:
			c.setPixel(int(math.Round(o.At.X)), int(math.Round(o.At.Y)), o.Color)
		case Disc:
			color := o.Color
			r := o.Radius
			if o.Selected {
				color = c.SelectionColor
				r++
			}
			c.fillDisc(o.At, r, color)
		case Label:
			c.putLabel(o.At, o.Text, o.Color)
		}
	}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell).
func (c *Canvas) setPixel(mx, my int, color string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= c.h || cx >= c.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	c.mask[cy][cx] |= bit
	c.col[cy][cx] = color
}

// line draws on the microgrid using Bresenham.
func (c *Canvas) line(x0, y0, x1, y1 int, color string) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.setPixel(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) strokePath(pts []geo.Offset, closed bool, color string) {
	if len(pts) == 0 {
		return
	}
	maxX := float64(c.w*2 - 1)
	maxY := float64(c.h*4 - 1)
	n := len(pts)
	end := n - 1
	if closed {
		end = n
	}
	for i := 0; i < end; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		x0, y0, x1, y1, ok := clipSegment(a.X, a.Y, b.X, b.Y, maxX, maxY)
		if !ok {
			continue
		}
		c.line(round(x0), round(y0), round(x1), round(y1), color)
	}
}

const (
	clipLeft = 1 << iota
	clipRight
	clipTop
	clipBottom
)

func outcode(x, y, maxX, maxY float64) int {
	code := 0
	if x < 0 {
		code |= clipLeft
	} else if x > maxX {
		code |= clipRight
	}
	if y < 0 {
		code |= clipTop
	} else if y > maxY {
		code |= clipBottom
	}
	return code
}

// clipSegment clips a segment to [0,maxX]×[0,maxY] with Cohen–Sutherland.
// Deep-zoom viewports project geometry millions of micro-pixels off-canvas;
// Bresenham must only ever walk the on-canvas part.
func clipSegment(x0, y0, x1, y1, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	c0 := outcode(x0, y0, maxX, maxY)
	c1 := outcode(x1, y1, maxX, maxY)
	for {
		if c0|c1 == 0 {
			return x0, y0, x1, y1, true
		}
		if c0&c1 != 0 {
			return 0, 0, 0, 0, false
		}
		co := c0
		if co == 0 {
			co = c1
		}
		var x, y float64
		switch {
		case co&clipTop != 0:
			x = x0 + (x1-x0)*(0-y0)/(y1-y0)
			y = 0
		case co&clipBottom != 0:
			x = x0 + (x1-x0)*(maxY-y0)/(y1-y0)
			y = maxY
		case co&clipRight != 0:
			y = y0 + (y1-y0)*(maxX-x0)/(x1-x0)
			x = maxX
		default:
			y = y0 + (y1-y0)*(0-x0)/(x1-x0)
			x = 0
		}
		if co == c0 {
			x0, y0 = x, y
			c0 = outcode(x0, y0, maxX, maxY)
		} else {
			x1, y1 = x, y
			c1 = outcode(x1, y1, maxX, maxY)
		}
	}
}

func (c *Canvas) strokeRing(ring []geo.Offset, color string) {
	c.strokePath(ring, true, color)
}

// fillPolygon fills the ring with an even-odd scanline pass on the
// microgrid. Horizontal edges are skipped; half-open edge spans keep shared
// vertices from double-counting.
func (c *Canvas) fillPolygon(ring []geo.Offset, color string) {
	if len(ring) < 3 {
		return
	}
	hMic := c.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			y0, y1 := round(a.Y), round(b.Y)
			if y0 == y1 {
				continue
			}
			x0, x1 := round(a.X), round(b.X)
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		wMic := c.w * 2
		for i := 0; i+1 < len(xs); i += 2 {
			start, end := xs[i], xs[i+1]
			if start > end {
				start, end = end, start
			}
			// spans can run far past the canvas at deep zoom
			if end < 0 || start >= wMic {
				continue
			}
			if start < 0 {
				start = 0
			}
			if end >= wMic {
				end = wMic - 1
			}
			for x := start; x <= end; x++ {
				c.setPixel(x, yMic, color)
			}
		}
	}
}

func (c *Canvas) fillDisc(at geo.Offset, radius float64, color string) {
	if radius <= 0 {
		c.setPixel(round(at.X), round(at.Y), color)
		return
	}
	r := int(math.Ceil(radius))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= radius*radius {
				c.setPixel(round(at.X)+dx, round(at.Y)+dy, color)
			}
		}
	}
}

func (c *Canvas) putLabel(at geo.Offset, text string, color string) {
	cx := round(at.X) / 2
	cy := round(at.Y) / 4
	if cy < 0 || cy >= c.h {
		return
	}
	// column counter, not the range index: byte offsets of multi-byte
	// runes would scatter the label across cells
	col := 0
	for _, r := range text {
		x := cx + col
		col++
		if x < 0 || x >= c.w {
			continue
		}
		c.text[cy][x] = r
		c.tcol[cy][x] = color
	}
}

// Frame renders the buffer to styled terminal lines. Text overlay wins over
// braille dots; untouched cells stay blank.
func (c *Canvas) Frame() []string {
	styles := map[string]lipgloss.Style{}
	styled := func(color string, s string) string {
		if color == "" {
			color = c.DefaultColor
		}
		st, ok := styles[color]
		if !ok {
			st = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			styles[color] = st
		}
		return st.Render(s)
	}
	out := make([]string, c.h)
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		sb.Reset()
		for x := 0; x < c.w; x++ {
			switch {
			case c.text[y][x] != 0:
				sb.WriteString(styled(c.tcol[y][x], string(c.text[y][x])))
			case c.mask[y][x] != 0:
				sb.WriteString(styled(c.col[y][x], string(rune(0x2800+int(c.mask[y][x])))))
			default:
				sb.WriteByte(' ')
			}
		}
		out[y] = sb.String()
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round(f float64) int { return int(math.Round(f)) }
