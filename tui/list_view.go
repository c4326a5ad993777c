package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
)

func (m Model) renderListView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("CRM PRO"))
	s.WriteString("\n\n")

	// Tabs
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.tab == TabSettings {
		s.WriteString(m.renderSettingsView())
		return s.String()
	}

	s.WriteString(summaryStyle.Render(m.renderSummary()))
	s.WriteString("\n")
	s.WriteString(m.renderFilterLine())
	s.WriteString("\n\n")

	// Table
	s.WriteString(m.renderTable())
	s.WriteString("\n")

	s.WriteString(m.renderStatus())

	// Help
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string

	for i, tab := range tabNames {
		if Tab(i) == m.tab {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderSummary() string {
	switch m.tab {
	case TabContacts:
		counts := m.ws.Contacts.CountByStatus()
		return fmt.Sprintf("%d contacts • %d active • %d prospect • %d inactive",
			m.ws.Contacts.Len(), counts[models.StatusActive], counts[models.StatusProspect], counts[models.StatusInactive])
	case TabDeals:
		p := m.ws.Deals.Pipeline()
		money := m.money()
		return fmt.Sprintf("Pipeline %s • Weighted %s • %d deals",
			money.Format(p.Total), money.Format(p.Weighted), p.Count)
	case TabTasks:
		st := m.ws.Tasks.Stats(m.today())
		return fmt.Sprintf("%d tasks • %d pending • %d completed • %d overdue • %d due soon",
			st.Total, st.Pending, st.Completed, st.Overdue, st.DueSoon)
	}
	return ""
}

func (m Model) renderFilterLine() string {
	var parts []string
	if m.searching {
		parts = append(parts, m.searchInput.View())
	} else if m.searchQuery != "" {
		parts = append(parts, fmt.Sprintf("search: %q", m.searchQuery))
	}

	switch m.tab {
	case TabContacts:
		parts = append(parts, "status: "+m.contactState)
	case TabDeals:
		parts = append(parts, "stage: "+m.dealStage)
	case TabTasks:
		parts = append(parts, "status: "+m.taskStatus, "priority: "+m.taskPriority)
	}
	return helpStyle.UnsetMarginTop().Render(strings.Join(parts, "  "))
}

func (m Model) renderStatus() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	case m.status != "":
		return statusStyle.Render(m.status) + "\n"
	case m.feed != nil && m.feed.Len() > 0:
		return helpStyle.UnsetMarginTop().Render("Last change: "+m.feed.Recent(1)[0].Summary()) + "\n"
	}
	return ""
}

func (m Model) renderTable() string {
	switch m.tab {
	case TabContacts:
		return m.renderContactsTable()
	case TabDeals:
		return m.renderDealsTable()
	case TabTasks:
		return m.renderTasksTable()
	}
	return ""
}

func (m Model) visibleContacts() []models.Contact {
	return m.ws.Contacts.Filter(store.ContactFilter{Query: m.searchQuery, Status: m.contactState})
}

func (m Model) visibleDeals() []models.Deal {
	return m.ws.Deals.Filter(store.DealFilter{Query: m.searchQuery, Stage: m.dealStage})
}

func (m Model) visibleTasks() []models.Task {
	return m.ws.Tasks.Filter(store.TaskFilter{Query: m.searchQuery, Status: m.taskStatus, Priority: m.taskPriority})
}

func (m Model) newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)

	// Set selected row
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t
}

// tableHeight fits the window but never shows more than the items-per-page
// preference. The extra line is the header.
func (m Model) tableHeight() int {
	rows := m.settings.ItemsPerPage()
	if m.height > 0 {
		rows = min(rows, max(m.height-15, 2))
	}
	return rows + 1
}

func (m Model) renderContactsTable() string {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Name", Width: 22},
		{Title: "Email", Width: 28},
		{Title: "Company", Width: 20},
		{Title: "Status", Width: 10},
	}

	var rows []table.Row
	for _, c := range m.visibleContacts() {
		rows = append(rows, table.Row{
			strconv.Itoa(c.ID),
			c.Name,
			c.Email,
			c.Company,
			string(c.Status),
		})
	}

	return m.newTable(columns, rows).View()
}

func (m Model) renderDealsTable() string {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Name", Width: 30},
		{Title: "Company", Width: 18},
		{Title: "Stage", Width: 12},
		{Title: "Value", Width: 10},
		{Title: "Prob", Width: 5},
		{Title: "Close", Width: 10},
	}

	money := m.money()
	var rows []table.Row
	for _, d := range m.visibleDeals() {
		rows = append(rows, table.Row{
			strconv.Itoa(d.ID),
			d.Name,
			d.Company,
			string(d.Stage),
			money.Format(d.Value),
			fmt.Sprintf("%d%%", d.Probability),
			d.CloseDate.String(),
		})
	}

	return m.newTable(columns, rows).View()
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch tabs",
		"Enter: View details",
		"/: Search",
		"f: Filter",
	}
	if m.tab == TabTasks {
		help = append(help, "p: Priority", "t: Toggle status")
	}
	if m.tab == TabDeals {
		help = append(help, "g: Pipeline graph")
	}
	help = append(help, "n: New", "e: Edit", "d: Delete", "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) rowCount() int {
	switch m.tab {
	case TabContacts:
		return len(m.visibleContacts())
	case TabDeals:
		return len(m.visibleDeals())
	case TabTasks:
		return len(m.visibleTasks())
	}
	return 0
}

func (m Model) switchTab(delta int) Model {
	n := len(tabNames)
	m.tab = Tab((int(m.tab) + delta + n) % n)
	m.selectedRow = 0
	m.searchQuery = ""
	m.searchInput.SetValue("")
	m.status = ""
	m.err = nil
	return m
}

// cycle returns the value after current in "all" followed by values.
func cycle[T ~string](current string, values []T) string {
	options := make([]string, 0, len(values)+1)
	options = append(options, models.FilterAll)
	for _, v := range values {
		options = append(options, string(v))
	}
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return models.FilterAll
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.selectedRow = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.searchQuery = m.searchInput.Value()
	m.selectedRow = 0
	return m, cmd
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	m.status = ""
	m.err = nil

	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < m.rowCount()-1 {
			m.selectedRow++
		}
	case "tab":
		return m.switchTab(1), nil
	case "shift+tab":
		return m.switchTab(-1), nil
	case "enter":
		if id, ok := m.getSelectedID(); ok {
			m.viewMode = ViewDetail
			m.selectedID = id
		}
	case "/":
		m.searching = true
		cmd := m.searchInput.Focus()
		return m, cmd
	case "esc":
		m.searchQuery = ""
		m.searchInput.SetValue("")
		m.contactState = models.FilterAll
		m.dealStage = models.FilterAll
		m.taskStatus = models.FilterAll
		m.taskPriority = models.FilterAll
		m.selectedRow = 0
	case "f":
		switch m.tab {
		case TabContacts:
			m.contactState = cycle(m.contactState, models.AllContactStatuses())
		case TabDeals:
			m.dealStage = cycle(m.dealStage, models.AllStages())
		case TabTasks:
			m.taskStatus = cycle(m.taskStatus, models.AllTaskStatuses())
		}
		m.selectedRow = 0
	case "p":
		if m.tab == TabTasks {
			m.taskPriority = cycle(m.taskPriority, models.AllPriorities())
			m.selectedRow = 0
		}
	case "t":
		if id, ok := m.getSelectedID(); ok && m.tab == TabTasks {
			m = m.toggleTask(id)
		}
	case "n":
		// Switch to edit view (new)
		m.openCreateForm()
	case "e":
		if id, ok := m.getSelectedID(); ok {
			m.selectedID = id
			m.openEditForm(ViewList)
		}
	case "d":
		if id, ok := m.getSelectedID(); ok {
			m.selectedID = id
			m.returnTo = ViewList
			m.viewMode = ViewConfirmDelete
		}
	case "g":
		if m.tab == TabDeals {
			m.returnTo = ViewList
			m.openGraph()
		}
	}

	return m, nil
}

func (m Model) toggleTask(id int) Model {
	if t, ok := m.ws.Tasks.ToggleStatus(id); ok {
		m.status = fmt.Sprintf("%s is now %s", t.Title, t.Status)
	}
	return m
}

func (m Model) getSelectedID() (int, bool) {
	switch m.tab {
	case TabContacts:
		contacts := m.visibleContacts()
		if m.selectedRow < len(contacts) {
			return contacts[m.selectedRow].ID, true
		}
	case TabDeals:
		deals := m.visibleDeals()
		if m.selectedRow < len(deals) {
			return deals[m.selectedRow].ID, true
		}
	case TabTasks:
		tasks := m.visibleTasks()
		if m.selectedRow < len(tasks) {
			return tasks[m.selectedRow].ID, true
		}
	}
	return 0, false
}
