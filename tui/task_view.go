// ABOUTME: TUI task table with due date indicators
// ABOUTME: Marks overdue, due-soon, and completed tasks and shows relative due dates
package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/dustin/go-humanize"

	"github.com/harperreed/crmpro/models"
)

func (m Model) renderTasksTable() string {
	today := m.today()

	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "ID", Width: 4},
		{Title: "Title", Width: 32},
		{Title: "Due", Width: 24},
		{Title: "Priority", Width: 8},
		{Title: "Status", Width: 11},
		{Title: "Assignee", Width: 14},
	}

	var rows []table.Row
	for _, t := range m.visibleTasks() {
		rows = append(rows, table.Row{
			dueIndicator(models.Classify(t, today)),
			strconv.Itoa(t.ID),
			t.Title,
			relativeDue(t.DueDate, today),
			string(t.Priority),
			string(t.Status),
			t.Assignee,
		})
	}

	return m.newTable(columns, rows).View()
}

func dueIndicator(state models.DueState) string {
	switch state {
	case models.DueOverdue:
		return "🔴"
	case models.DueSoon:
		return "🟡"
	case models.DueDone:
		return "✓"
	}
	return "🟢"
}

func relativeDue(due, today models.Date) string {
	if due.IsZero() {
		return "-"
	}
	if due == today {
		return due.String() + " (today)"
	}
	return fmt.Sprintf("%s (%s)", due, humanize.RelTime(due.Time(), today.Time(), "ago", "from now"))
}
