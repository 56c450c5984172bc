package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	sidebarWidth := 0
	if m.showSidebar {
		sidebarWidth = 28
	}
	_, _, mapW, mapH := m.layout()
	contentWidth := maxInt(10, m.width)
	contentHeight := mapH

	if m.showSidebar {
		m.l.SetSize(28-2, contentHeight-2)
	}

	header := titleStyle.Render(" geoscope ─ terminal geo viewer ")
	header = lipgloss.NewStyle().Width(contentWidth).Render(header)

	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	dl, _, canvas := m.scene(mapW, mapH)
	canvas.Draw(dl)
	frame := strings.Join(canvas.Frame(), "\n")
	mapView := lipgloss.NewStyle().Width(mapW).Height(mapH).Render(frame)

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	// the inspector takes over the content row while it is open
	if m.showInspect {
		box := boxStyle.Render(m.tbl.View())
		body = lipgloss.Place(contentWidth, contentHeight, lipgloss.Center, lipgloss.Center, box)
	}

	status := dimStyle.Render(" " + m.statusLine() + " ")
	footer := lipgloss.NewStyle().Width(contentWidth).Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp()),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) statusLine() string {
	v := m.sess.Viewport()
	pos := fmt.Sprintf("%.4f, %.4f z%.0f", v.Center.Lat, v.Center.Lon, v.Zoom)
	if m.mode != modeMap {
		pos = m.mode.String()
	}
	return m.status + " │ " + pos
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"click select",
		"c cluster",
		"m view",
		"g grid",
		"1/2/3 layers",
		"Tab files",
		"i inspect",
		"r recenter",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
