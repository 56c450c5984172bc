package tui

import (
	"sort"
	"strconv"
	"time"

	"geoscope/internal/chart"
	"geoscope/internal/geo"
	"geoscope/internal/hittest"
	"geoscope/internal/render"
)

// chartScene summarizes the loaded markers into a series and lays it out in
// the active chart mode. Markers group by label prefix (or a "category"
// metadata key) and the group sizes become the values.
func (m Model) chartScene(canvas geo.Size, sel hittest.Hit, hasSel bool) (*render.DisplayList, []hittest.Candidate) {
	in := chart.Input{
		Series:   []chart.Series{m.markerSeries()},
		Canvas:   canvas,
		Progress: m.tween.Progress(time.Since(m.animStart)),
		Selected: sel,
		HasSel:   hasSel,
		Axis:     m.theme().Graticule,
		Label:    m.theme().Label,
	}
	switch m.mode {
	case modeBars:
		return chart.Bars(in)
	case modeLines:
		return chart.Lines(in)
	default:
		return chart.Donut(in)
	}
}

func (m Model) markerSeries() chart.Series {
	counts := map[string]int{}
	for _, mk := range m.data.Markers {
		key := mk.Meta["category"]
		if key == "" {
			key = mk.Label
		}
		if key == "" {
			key = "unlabeled"
		}
		counts[key]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := chart.Series{Name: "markers", Color: m.theme().Point}
	for i, k := range keys {
		s.Points = append(s.Points, chart.Point{
			X:     float64(i),
			Y:     float64(counts[k]),
			Label: k + " " + strconv.Itoa(counts[k]),
		})
	}
	return s
}
