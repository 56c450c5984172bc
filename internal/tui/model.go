package tui

import (
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"geoscope/internal/cluster"
	"geoscope/internal/config"
	"geoscope/internal/geo"
	"geoscope/internal/geodata"
	"geoscope/internal/hittest"
	"geoscope/internal/render"
	"geoscope/internal/session"
)

// viewMode selects what the canvas shows.
type viewMode int

const (
	modeMap viewMode = iota
	modeBars
	modeLines
	modeDonut
)

func (v viewMode) String() string {
	switch v {
	case modeBars:
		return "bars"
	case modeLines:
		return "lines"
	case modeDonut:
		return "donut"
	}
	return "map"
}

type Model struct {
	width  int
	height int

	cfg config.Config
	log *zap.Logger

	sess     *session.State
	data     geodata.Set
	clusters cluster.Result
	selPath  string

	mode        viewMode
	animStart   time.Time
	tween       render.Tween
	clusterOn   bool
	showPoints  bool
	showLines   bool
	showRegions bool
	showGrid    bool

	showSidebar bool
	helpVisible bool
	showInspect bool

	status string

	// file explorer
	cwd string
	l   list.Model

	// metadata inspector
	tbl table.Model

	// live reload
	watch   bool
	watcher *fsnotify.Watcher
}

// New builds the model from config. File watching starts once a path loads.
func New(cfg config.Config, log *zap.Logger) Model {
	m := Model{
		cfg:         cfg,
		log:         log,
		sess:        session.New(geo.Viewport{Zoom: 2}),
		tween:       render.Tween{Duration: cfg.Animation.Duration},
		clusterOn:   cfg.Cluster.Enabled,
		showPoints:  true,
		showLines:   true,
		showRegions: true,
		helpVisible: true,
		watch:       cfg.Watch,
		status:      "geoscope ready",
	}
	m.cwd, _ = os.Getwd()

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.tbl = table.New(table.WithFocused(false), table.WithHeight(8))

	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(cfg config.Config, log *zap.Logger, path string) Model {
	m := New(cfg, log)
	m.loadPath(path)
	if m.selPath != "" {
		m.armWatcher(m.selPath)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.watch && m.selPath != "" {
		return m.watchCmd(m.selPath)
	}
	return nil
}

// WithViewport applies startup center/zoom overrides on top of any fit the
// loaded file produced.
func (m Model) WithViewport(lat, lon, zoom float64, setCenter, setZoom bool) Model {
	v := m.sess.Viewport()
	if setCenter {
		v.Center = geo.LatLng{Lat: lat, Lon: lon}
	}
	if setZoom {
		v.Zoom = zoom
	}
	m.sess.SetViewport(v)
	m.recluster()
	return m
}

// theme maps the config palette onto the renderer's.
func (m Model) theme() render.Theme {
	t := render.DefaultTheme()
	if m.cfg.Theme.Point != "" {
		t.Point = m.cfg.Theme.Point
	}
	if m.cfg.Theme.Line != "" {
		t.Line = m.cfg.Theme.Line
	}
	if m.cfg.Theme.Polygon != "" {
		t.Polygon = m.cfg.Theme.Polygon
	}
	if m.cfg.Theme.Cluster != "" {
		t.Cluster = m.cfg.Theme.Cluster
	}
	if m.cfg.Theme.Label != "" {
		t.Label = m.cfg.Theme.Label
	}
	if m.cfg.Theme.Graticule != "" {
		t.Graticule = m.cfg.Theme.Graticule
	}
	return t
}

// layout mirrors View's geometry so Update can translate mouse cells into
// canvas coordinates.
func (m Model) layout() (mapOriginX, mapOriginY, mapW, mapH int) {
	sidebarWidth := 0
	if m.showSidebar {
		sidebarWidth = 28
	}
	headerHeight := 1
	footerHeight := 2
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 4 {
		contentHeight = 4
	}
	contentWidth := maxInt(10, m.width)

	mapW = contentWidth - sidebarWidth
	if m.showSidebar {
		mapW--
	}
	if mapW < 10 {
		mapW = 10
	}
	mapH = contentHeight
	mapOriginX = sidebarWidth
	if m.showSidebar {
		mapOriginX++
	}
	mapOriginY = headerHeight
	return mapOriginX, mapOriginY, mapW, mapH
}

// recluster recomputes aggregates for the committed zoom. With clustering
// off every marker passes through as a single.
func (m *Model) recluster() {
	if !m.clusterOn {
		m.clusters = cluster.Result{Single: m.data.Markers}
		return
	}
	m.clusters = cluster.Pass(m.data.Markers, cluster.Options{
		RadiusMeters:   m.cfg.Cluster.RadiusMeters,
		MinClusterSize: m.cfg.Cluster.MinSize,
		Zoom:           m.sess.Viewport().Zoom,
	})
}

// scene assembles the display list and hit candidates for the current mode.
// Update and View both go through here, so what is drawn and what is
// tappable always agree.
func (m Model) scene(mapW, mapH int) (*render.DisplayList, []hittest.Candidate, *render.Canvas) {
	canvas := render.NewCanvas(mapW, mapH)
	if m.cfg.Theme.Selection != "" {
		canvas.SelectionColor = m.cfg.Theme.Selection
	}
	if m.cfg.Theme.Label != "" {
		canvas.DefaultColor = m.cfg.Theme.Label
	}
	micro := canvas.MicroSize()
	sel, hasSel := m.sess.Selection()

	if m.mode != modeMap {
		dl, cands := m.chartScene(micro, sel, hasSel)
		return dl, cands, canvas
	}

	dl, cands := render.BuildScene(render.SceneInput{
		Data:          m.data,
		Clusters:      m.clusters,
		Viewport:      m.sess.EffectiveViewport(micro),
		Canvas:        micro,
		Selected:      sel,
		HasSel:        hasSel,
		ShowPoints:    m.showPoints,
		ShowLines:     m.showLines,
		ShowRegions:   m.showRegions,
		ShowGraticule: m.showGrid,
		Theme:         m.theme(),
		Tolerance:     m.cfg.Hit.TolerancePx,
	})
	return dl, cands, canvas
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
