package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"go.uber.org/zap"

	"geoscope/internal/geo"
	"geoscope/internal/geodata"
)

type fileItem struct {
	title string
	desc  string
	path  string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !geodata.Supported(name) {
			continue
		}
		items = append(items, fileItem{
			title: name,
			desc:  strings.ToLower(filepath.Ext(name)),
			path:  filepath.Join(m.cwd, name),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].(fileItem).Title() < items[j].(fileItem).Title()
	})
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath replaces the dataset snapshot, refits the viewport, and drops any
// selection that pointed into the old data.
func (m *Model) loadPath(p string) {
	s, err := geodata.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.log.Warn("load failed", zap.String("path", p), zap.Error(err))
		return
	}
	m.selPath = p
	m.data = s
	m.sess.Deselect()
	_, _, mapW, mapH := m.layout()
	m.sess.Recenter(s.BBox, geo.Size{W: float64(mapW * 2), H: float64(mapH * 4)})
	m.recluster()
	m.status = "loaded: " + filepath.Base(p)
	m.log.Info("dataset loaded",
		zap.String("path", p),
		zap.Int("markers", len(s.Markers)),
		zap.Int("tracks", len(s.Tracks)),
		zap.Int("regions", len(s.Regions)),
	)
}
