// ABOUTME: TUI settings tab for profile, notifications, security, and preferences
// ABOUTME: Toggles switches, edits text values inline, and saves to the settings file
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/crmpro/config"
)

var (
	settingsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Underline(true)

	settingsLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Width(26)

	settingsOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	settingsOffStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	settingsSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("235")).
				Foreground(lipgloss.Color("255")).
				Bold(true)
)

func (m Model) currentSection() config.Section {
	return config.AllSections()[m.section]
}

func (m Model) renderSettingsView() string {
	var s strings.Builder

	// Section selector
	var sections []string
	for i, sec := range config.AllSections() {
		name := strings.ToUpper(string(sec[:1])) + string(sec[1:])
		if i == m.section {
			sections = append(sections, tabActiveStyle.Render(name))
		} else {
			sections = append(sections, tabInactiveStyle.Render(name))
		}
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sections...))
	s.WriteString("\n\n")

	s.WriteString(settingsHeaderStyle.Render(strings.ToUpper(string(m.currentSection()))))
	s.WriteString("\n\n")

	for i, field := range m.settings.Fields(m.currentSection()) {
		var row strings.Builder

		// Selection indicator
		if i == m.settingsRow {
			row.WriteString("▶ ")
		} else {
			row.WriteString("  ")
		}

		label := settingsLabelStyle.Render(field.Label)
		if i == m.settingsRow {
			label = settingsSelectedStyle.Render(label)
		}
		row.WriteString(label)

		switch {
		case i == m.settingsRow && m.editingSetting:
			row.WriteString(m.settingInput.View())
		case field.Value == "on":
			row.WriteString(settingsOnStyle.Render("● on"))
		case field.Value == "off":
			row.WriteString(settingsOffStyle.Render("○ off"))
		default:
			row.WriteString(field.Value)
		}

		s.WriteString(row.String())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.renderStatus())

	help := []string{
		"←/→: Section",
		"↑/↓: Navigate",
		"Enter/Space: Toggle or edit",
		"s: Save",
		"Tab: Switch tabs",
		"q: Quit",
	}
	if m.editingSetting {
		help = []string{"Enter: Apply", "Esc: Cancel"}
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))

	return s.String()
}

func (m Model) handleSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	section := m.currentSection()

	if m.editingSetting {
		switch msg.String() {
		case "enter":
			label := m.settings.Fields(section)[m.settingsRow].Label
			m.settings.Set(section, m.settingsRow, strings.TrimSpace(m.settingInput.Value()))
			m.editingSetting = false
			m.settingInput.Blur()
			m.status = label + " updated (s to save)"
			return m, nil
		case "esc":
			m.editingSetting = false
			m.settingInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.settingInput, cmd = m.settingInput.Update(msg)
		return m, cmd
	}

	m.status = ""
	m.err = nil
	rows := len(m.settings.Fields(section))

	switch msg.String() {
	case "tab":
		return m.switchTab(1), nil
	case "shift+tab":
		return m.switchTab(-1), nil
	case "left", "h":
		m.section = (m.section + len(config.AllSections()) - 1) % len(config.AllSections())
		m.settingsRow = 0
	case "right", "l":
		m.section = (m.section + 1) % len(config.AllSections())
		m.settingsRow = 0
	case "up", "k":
		if m.settingsRow > 0 {
			m.settingsRow--
		}
	case "down", "j":
		if m.settingsRow < rows-1 {
			m.settingsRow++
		}
	case "enter", " ":
		if m.settings.Toggle(section, m.settingsRow) {
			return m, nil
		}
		m.editingSetting = true
		m.settingInput.SetValue(m.settings.Fields(section)[m.settingsRow].Value)
		m.settingInput.CursorEnd()
		cmd := m.settingInput.Focus()
		return m, cmd
	case "s":
		if err := m.settings.Save(); err != nil {
			m.err = err
		} else {
			m.status = fmt.Sprintf("✓ Settings saved to %s", m.settings.Path())
		}
	}

	return m, nil
}
