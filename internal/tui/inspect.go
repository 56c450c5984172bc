package tui

import (
	"fmt"
	"sort"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"geoscope/internal/hittest"
)

// refreshInspector rebuilds the metadata table for the tapped entity.
func (m *Model) refreshInspector(hit hittest.Hit) {
	rows := m.inspectRows(hit)
	if len(rows) == 0 {
		m.showInspect = false
		return
	}
	cols := []table.Column{
		{Title: "field", Width: 14},
		{Title: "value", Width: 32},
	}
	// clear rows before swapping columns to avoid a transient mismatch
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	m.tbl.SetHeight(minInt(len(rows)+1, 10))
	m.showInspect = true
}

func (m *Model) inspectRows(hit hittest.Hit) []table.Row {
	kv := func(k, v string) table.Row { return table.Row{k, v} }
	metaRows := func(meta map[string]string) []table.Row {
		keys := make([]string, 0, len(meta))
		for k := range meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var rows []table.Row
		for _, k := range keys {
			rows = append(rows, kv(k, meta[k]))
		}
		return rows
	}

	switch hit.Kind {
	case hittest.KindMarker:
		for _, mk := range m.data.Markers {
			if mk.ID != hit.ID {
				continue
			}
			rows := []table.Row{
				kv("kind", "marker"),
				kv("id", mk.ID),
				kv("position", fmt.Sprintf("%.5f, %.5f", mk.Pos.Lat, mk.Pos.Lon)),
			}
			if mk.Label != "" {
				rows = append(rows, kv("label", mk.Label))
			}
			return append(rows, metaRows(mk.Meta)...)
		}
	case hittest.KindCluster:
		for _, c := range m.clusters.Clusters {
			if c.ID != hit.ID {
				continue
			}
			return []table.Row{
				kv("kind", "cluster"),
				kv("id", c.ID),
				kv("members", strconv.Itoa(c.Count())),
				kv("center", fmt.Sprintf("%.5f, %.5f", c.Center.Lat, c.Center.Lon)),
			}
		}
	case hittest.KindRegion:
		for _, r := range m.data.Regions {
			if r.ID != hit.ID {
				continue
			}
			rows := []table.Row{
				kv("kind", "region"),
				kv("id", r.ID),
				kv("rings", strconv.Itoa(len(r.Rings))),
			}
			if r.Label != "" {
				rows = append(rows, kv("label", r.Label))
			}
			return append(rows, metaRows(r.Meta)...)
		}
	case hittest.KindDataPoint:
		s := m.markerSeries()
		for i, p := range s.Points {
			if s.Name+"/"+strconv.Itoa(i) == hit.ID {
				return []table.Row{
					kv("kind", "datapoint"),
					kv("series", s.Name),
					kv("label", p.Label),
					kv("value", strconv.FormatFloat(p.Y, 'g', -1, 64)),
				}
			}
		}
	}
	return nil
}
