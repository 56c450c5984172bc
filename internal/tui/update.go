package tui

import (
	"fmt"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"geoscope/internal/geo"
	"geoscope/internal/hittest"
)

// animTickMsg drives chart entrance frames.
type animTickMsg time.Time

const animFrame = 50 * time.Millisecond

func animTick() tea.Cmd {
	return tea.Tick(animFrame, func(t time.Time) tea.Msg { return animTickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(28-2, m.height-1-2)
		}

	case animTickMsg:
		if m.mode != modeMap && m.tween.Progress(time.Since(m.animStart)) < 1 {
			return m, animTick()
		}
		return m, nil

	case fileChangedMsg:
		m.loadPath(msg.path)
		m.status = "reloaded: " + msg.path
		return m, m.watchCmd(msg.path)

	case watchErrMsg:
		m.status = "watch error: " + msg.err.Error()
		m.log.Warn("watch stream error", zap.Error(msg.err))
		// keep live reload alive across stream errors
		if m.selPath != "" {
			return m, m.watchCmd(m.selPath)
		}
		return m, nil

	case tea.KeyMsg:
		// while the sidebar filter is typing, it owns the keyboard
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.watcher != nil {
			m.watcher.Close()
		}
		return m, tea.Quit

	case "1":
		m.showPoints = !m.showPoints
		m.status = fmt.Sprintf("points: %v", m.showPoints)
	case "2":
		m.showLines = !m.showLines
		m.status = fmt.Sprintf("lines: %v", m.showLines)
	case "3":
		m.showRegions = !m.showRegions
		m.status = fmt.Sprintf("regions: %v", m.showRegions)
	case "g":
		m.showGrid = !m.showGrid
		m.status = fmt.Sprintf("graticule: %v", m.showGrid)

	case "c":
		m.clusterOn = !m.clusterOn
		m.recluster()
		m.status = fmt.Sprintf("clustering: %v", m.clusterOn)

	case "+", "=":
		m.sess.ZoomBy(1)
		m.recluster()
		m.status = fmt.Sprintf("zoom: %.0f", m.sess.Viewport().Zoom)
	case "-", "_":
		m.sess.ZoomBy(-1)
		m.recluster()
		m.status = fmt.Sprintf("zoom: %.0f", m.sess.Viewport().Zoom)

	case "up", "down", "left", "right":
		_, _, mapW, mapH := m.layout()
		canvas := geo.Size{W: float64(mapW * 2), H: float64(mapH * 4)}
		switch msg.String() {
		case "up":
			m.sess.PanBy(0, -4, canvas)
		case "down":
			m.sess.PanBy(0, 4, canvas)
		case "left":
			m.sess.PanBy(-4, 0, canvas)
		case "right":
			m.sess.PanBy(4, 0, canvas)
		}

	case "r":
		_, _, mapW, mapH := m.layout()
		m.sess.Recenter(m.data.BBox, geo.Size{W: float64(mapW * 2), H: float64(mapH * 4)})
		m.recluster()
		m.status = "recentered"

	case "m":
		m.mode = (m.mode + 1) % 4
		m.sess.Deselect()
		m.showInspect = false
		m.status = "view: " + m.mode.String()
		if m.mode != modeMap {
			m.animStart = time.Now()
			return m, animTick()
		}

	case "esc":
		m.sess.Deselect()
		m.showInspect = false
		m.status = "selection cleared"

	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(28-2, m.height-1-2)
		}

	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
				if m.selPath == it.path && m.watch {
					m.armWatcher(it.path)
					return m, m.watchCmd(it.path)
				}
			}
		}

	case "i":
		if _, ok := m.sess.Selection(); ok {
			m.showInspect = !m.showInspect
		} else {
			m.status = "nothing selected"
		}

	case "h":
		m.helpVisible = !m.helpVisible
	}

	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ox, oy, mapW, mapH := m.layout()
	inside := msg.X >= ox && msg.X < ox+mapW && msg.Y >= oy && msg.Y < oy+mapH
	at := geo.Offset{X: float64((msg.X - ox) * 2), Y: float64((msg.Y - oy) * 4)}
	canvas := geo.Size{W: float64(mapW * 2), H: float64(mapH * 4)}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if inside {
			m.sess.ZoomBy(1)
			m.recluster()
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if inside {
			m.sess.ZoomBy(-1)
			m.recluster()
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && inside {
			m.sess.BeginPan(at)
		}
	case tea.MouseActionMotion:
		m.sess.MovePan(at)
	case tea.MouseActionRelease:
		if m.sess.EndPan(canvas) {
			m.handleTap(at, mapW, mapH)
		} else {
			m.recluster()
		}
	}
	return m, nil
}

// handleTap resolves a click against the current frame's candidates. A hit
// selects and fills the inspector; a miss clears both.
func (m *Model) handleTap(at geo.Offset, mapW, mapH int) {
	_, cands, _ := m.scene(mapW, mapH)
	hit, ok := hittest.Resolve(at, cands)
	if !ok {
		m.sess.Deselect()
		m.showInspect = false
		m.status = "deselected"
		return
	}
	m.sess.Select(hit)
	m.refreshInspector(hit)
	m.status = fmt.Sprintf("selected %s %s", hit.Kind, hit.ID)
	m.log.Debug("tap hit", zap.String("kind", hit.Kind.String()), zap.String("id", hit.ID))
}
