package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/crmpro/viz"
)

func (m Model) renderGraphView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("GRAPH VIEW"))
	s.WriteString("\n\n")

	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.graphDOT == "":
		s.WriteString("Generating graph...\n")
	default:
		lines := strings.Split(m.graphDOT, "\n")
		start := min(m.graphOffset, len(lines))
		end := min(start+max(m.height-8, 5), len(lines))
		s.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Render(strings.Join(lines[start:end], "\n")))
	}

	s.WriteString("\n\n")

	// Help
	s.WriteString(m.renderGraphHelp())

	return s.String()
}

func (m Model) renderGraphHelp() string {
	help := []string{
		"↑/↓: Scroll",
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleGraphKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = m.returnTo
		m.graphDOT = ""
		m.err = nil
	case "up", "k":
		if m.graphOffset > 0 {
			m.graphOffset--
		}
	case "down", "j":
		if m.graphOffset < strings.Count(m.graphDOT, "\n") {
			m.graphOffset++
		}
	}

	return m, nil
}

// openGraph shows the pipeline graph from the deals tab and the complete
// graph everywhere else.
func (m *Model) openGraph() {
	kind := viz.GraphComplete
	if m.tab == TabDeals {
		kind = viz.GraphPipeline
	}

	m.viewMode = ViewGraph
	m.graphOffset = 0
	m.graphDOT, m.err = viz.NewGraphGenerator(m.ws, m.money()).Generate(kind)
}
