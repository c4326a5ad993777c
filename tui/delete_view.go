// ABOUTME: Delete confirmation view for TUI
// ABOUTME: Handles deletion of contacts, deals, and tasks with confirmation dialog
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

// selectedLabel names the selected entity, or reports that it is gone.
func (m Model) selectedLabel() (string, bool) {
	switch m.tab {
	case TabContacts:
		if c, ok := m.ws.Contacts.Find(m.selectedID); ok {
			return c.Name, true
		}
	case TabDeals:
		if d, ok := m.ws.Deals.Find(m.selectedID); ok {
			return d.Name, true
		}
	case TabTasks:
		if t, ok := m.ws.Tasks.Find(m.selectedID); ok {
			return t.Title, true
		}
	}
	return "", false
}

func (m Model) renderConfirmDeleteView() string {
	entityType := m.entityName()
	entityName, ok := m.selectedLabel()
	if !ok {
		return fmt.Sprintf("%s %d not found", entityType, m.selectedID)
	}

	title := warningStyle.Render("⚠  DELETE CONFIRMATION  ⚠")
	message := fmt.Sprintf("Are you sure you want to delete this %s?", entityType)
	entityInfo := fmt.Sprintf("\n%s: %s\n", strings.ToUpper(entityType), entityName)
	warning := "\nThis action cannot be undone!"

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Yes, Delete (y)"),
		cancelButtonStyle.Render("Cancel (n/esc)"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		entityInfo,
		warning,
		"",
		buttons,
	)

	box := confirmBoxStyle.Render(content)

	// Center the box on screen
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		label, _ := m.selectedLabel()
		if m.performDelete() {
			m.status = fmt.Sprintf("Deleted %s %q", m.entityName(), label)
		} else {
			m.err = fmt.Errorf("%s %d not found", m.entityName(), m.selectedID)
		}
		m.viewMode = ViewList
		m.selectedID = 0
		if m.selectedRow > 0 && m.selectedRow >= m.rowCount() {
			m.selectedRow = m.rowCount() - 1
		}
	case "n", "N", "esc":
		// Cancel delete
		m.viewMode = m.returnTo
	}

	return m, nil
}

func (m Model) performDelete() bool {
	switch m.tab {
	case TabContacts:
		return m.ws.Contacts.Delete(m.selectedID)
	case TabDeals:
		return m.ws.Deals.Delete(m.selectedID)
	case TabTasks:
		return m.ws.Tasks.Delete(m.selectedID)
	}
	return false
}
