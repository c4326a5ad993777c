package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/crmpro/models"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	sectionStyle = lipgloss.NewStyle().Bold(true)
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render(strings.ToUpper(m.entityName()) + " DETAIL"))
	s.WriteString("\n\n")

	// Entity details
	switch m.tab {
	case TabContacts:
		s.WriteString(m.renderContactDetail())
	case TabDeals:
		s.WriteString(m.renderDealDetail())
	case TabTasks:
		s.WriteString(m.renderTaskDetail())
	}

	s.WriteString("\n")
	s.WriteString(m.renderStatus())

	// Help
	s.WriteString(m.renderDetailHelp())

	return s.String()
}

func (m Model) entityName() string {
	switch m.tab {
	case TabContacts:
		return "contact"
	case TabDeals:
		return "deal"
	case TabTasks:
		return "task"
	}
	return ""
}

func (m Model) renderContactDetail() string {
	contact, ok := m.ws.Contacts.Find(m.selectedID)
	if !ok {
		return fmt.Sprintf("Contact %d not found\n", m.selectedID)
	}

	var s strings.Builder

	s.WriteString(m.renderField("Name", contact.Name))
	s.WriteString(m.renderField("Email", contact.Email))
	s.WriteString(m.renderField("Phone", contact.Phone))
	s.WriteString(m.renderField("Company", contact.Company))
	s.WriteString(m.renderField("Position", contact.Position))
	s.WriteString(m.renderField("Location", contact.Location))
	s.WriteString(m.renderField("Status", string(contact.Status)))

	// Deals and tasks reference contacts by name
	s.WriteString("\n")
	s.WriteString(sectionStyle.Render("DEALS"))
	s.WriteString("\n")
	money := m.money()
	for _, d := range m.ws.Deals.All() {
		if d.Contact == contact.Name {
			s.WriteString(fmt.Sprintf("  • %s (%s, %s)\n", d.Name, d.Stage, money.Format(d.Value)))
		}
	}

	s.WriteString("\n")
	s.WriteString(sectionStyle.Render("TASKS"))
	s.WriteString("\n")
	for _, t := range m.ws.Tasks.All() {
		if models.StringValue(t.RelatedContact) == contact.Name {
			s.WriteString(fmt.Sprintf("  • [%s] %s\n", t.Status, t.Title))
		}
	}

	return s.String()
}

func (m Model) renderDealDetail() string {
	deal, ok := m.ws.Deals.Find(m.selectedID)
	if !ok {
		return fmt.Sprintf("Deal %d not found\n", m.selectedID)
	}

	money := m.money()
	band := models.BandFor(deal.Probability)

	var s strings.Builder

	s.WriteString(m.renderField("Name", deal.Name))
	s.WriteString(m.renderField("Company", deal.Company))
	s.WriteString(m.renderField("Contact", deal.Contact))
	s.WriteString(m.renderField("Stage", string(deal.Stage)))
	s.WriteString(m.renderField("Value", money.Format(deal.Value)))
	s.WriteString(fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render("Probability:"),
		bandStyles[band].Render(fmt.Sprintf("%d%% (%s)", deal.Probability, band))))
	s.WriteString(m.renderField("Weighted", money.Format(deal.Weighted())))
	s.WriteString(m.renderField("Close Date", deal.CloseDate.String()))
	s.WriteString(m.renderField("Description", deal.Description))

	s.WriteString("\n")
	s.WriteString(sectionStyle.Render("TASKS"))
	s.WriteString("\n")
	for _, t := range m.ws.Tasks.All() {
		if models.StringValue(t.RelatedDeal) == deal.Name {
			s.WriteString(fmt.Sprintf("  • [%s] %s (due %s)\n", t.Status, t.Title, t.DueDate))
		}
	}

	return s.String()
}

func (m Model) renderTaskDetail() string {
	task, ok := m.ws.Tasks.Find(m.selectedID)
	if !ok {
		return fmt.Sprintf("Task %d not found\n", m.selectedID)
	}

	today := m.today()
	due := relativeDue(task.DueDate, today)
	if state := models.Classify(task, today); state != models.DueNone {
		due += " " + dueIndicator(state) + " " + string(state)
	}

	var s strings.Builder

	s.WriteString(m.renderField("Title", task.Title))
	s.WriteString(m.renderField("Description", task.Description))
	s.WriteString(m.renderField("Due", due))
	s.WriteString(m.renderField("Priority", string(task.Priority)))
	s.WriteString(m.renderField("Status", string(task.Status)))
	s.WriteString(m.renderField("Assignee", task.Assignee))
	s.WriteString(m.renderField("Related Contact", models.StringValue(task.RelatedContact)))
	s.WriteString(m.renderField("Related Deal", models.StringValue(task.RelatedDeal)))

	return s.String()
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render(label+":"),
		fieldValueStyle.Render(value))
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"Esc: Back",
		"e: Edit",
		"d: Delete",
	}
	if m.tab == TabTasks {
		help = append(help, "t: Toggle status")
	}
	help = append(help, "g: View graph", "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.err = nil

	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
	case "e":
		m.openEditForm(ViewDetail)
	case "d":
		m.returnTo = ViewDetail
		m.viewMode = ViewConfirmDelete
	case "t":
		if m.tab == TabTasks {
			m = m.toggleTask(m.selectedID)
		}
	case "g":
		m.returnTo = ViewDetail
		m.openGraph()
	}

	return m, nil
}
