package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/crmpro/forms"
	"github.com/harperreed/crmpro/models"
)

// formField is one labelled input. Fields with options cycle through them
// with left/right.
type formField struct {
	label   string
	input   textinput.Model
	options []string
}

// entityForm pairs the text inputs with the draft they fill in. Exactly one
// of contact, deal, and task is set.
type entityForm struct {
	fields   []formField
	focus    int
	returnTo ViewMode

	contact *forms.ContactForm
	deal    *forms.DealForm
	task    *forms.TaskForm

	err error
}

const (
	contactName = iota
	contactEmail
	contactPhone
	contactCompany
	contactPosition
	contactLocation
	contactStatus
)

const (
	dealName = iota
	dealValue
	dealStage
	dealProbability
	dealCloseDate
	dealContact
	dealCompany
	dealDescription
)

const (
	taskTitle = iota
	taskDescription
	taskDueDate
	taskPriority
	taskStatus
	taskAssignee
	taskRelatedContact
	taskRelatedDeal
)

func newField(label, value string, limit int, options ...string) formField {
	in := textinput.New()
	in.Placeholder = label
	in.CharLimit = limit
	in.SetValue(value)
	if len(options) > 0 {
		in.Placeholder = label + " (←/→: " + strings.Join(options, ", ") + ")"
	}
	return formField{label: label, input: in, options: options}
}

func optionsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func contactFields(f *forms.ContactForm) []formField {
	return []formField{
		newField("Name", f.Name, 100),
		newField("Email", f.Email, 100),
		newField("Phone", f.Phone, 30),
		newField("Company", f.Company, 100),
		newField("Position", f.Position, 100),
		newField("Location", f.Location, 100),
		newField("Status", string(f.Status), 20, optionsOf(models.AllContactStatuses())...),
	}
}

func dealFields(f *forms.DealForm) []formField {
	value := ""
	if f.Mode == forms.ModeEdit || f.Value != 0 {
		value = strconv.FormatFloat(f.Value, 'f', -1, 64)
	}
	return []formField{
		newField("Name", f.Name, 100),
		newField("Value", value, 20),
		newField("Stage", string(f.Stage), 20, optionsOf(models.AllStages())...),
		newField("Probability (%)", strconv.Itoa(f.Probability), 3),
		newField("Close Date (YYYY-MM-DD)", f.CloseDate.String(), 10),
		newField("Contact", f.Contact, 100),
		newField("Company", f.Company, 100),
		newField("Description", f.Description, 500),
	}
}

func taskFields(f *forms.TaskForm) []formField {
	return []formField{
		newField("Title", f.Title, 100),
		newField("Description", f.Description, 500),
		newField("Due Date (YYYY-MM-DD)", f.DueDate.String(), 10),
		newField("Priority", string(f.Priority), 10, optionsOf(models.AllPriorities())...),
		newField("Status", string(f.Status), 15, optionsOf(models.AllTaskStatuses())...),
		newField("Assignee", f.Assignee, 100),
		newField("Related Contact (optional)", f.RelatedContact, 100),
		newField("Related Deal (optional)", f.RelatedDeal, 100),
	}
}

// openCreateForm computes the create defaults once, when the form opens.
func (m *Model) openCreateForm() {
	form := &entityForm{returnTo: ViewList}
	switch m.tab {
	case TabContacts:
		form.contact = forms.NewContactForm()
		form.fields = contactFields(form.contact)
	case TabDeals:
		form.deal = forms.NewDealForm(m.today())
		form.fields = dealFields(form.deal)
	case TabTasks:
		form.task = forms.NewTaskForm(m.today(), m.settings.Profile.Name)
		form.fields = taskFields(form.task)
	default:
		return
	}
	m.form = form
	m.viewMode = ViewEdit
	m.updateFormFocus()
}

func (m *Model) openEditForm(returnTo ViewMode) {
	form := &entityForm{returnTo: returnTo}
	switch m.tab {
	case TabContacts:
		c, ok := m.ws.Contacts.Find(m.selectedID)
		if !ok {
			return
		}
		form.contact = forms.EditContactForm(c)
		form.fields = contactFields(form.contact)
	case TabDeals:
		d, ok := m.ws.Deals.Find(m.selectedID)
		if !ok {
			return
		}
		form.deal = forms.EditDealForm(d)
		form.fields = dealFields(form.deal)
	case TabTasks:
		t, ok := m.ws.Tasks.Find(m.selectedID)
		if !ok {
			return
		}
		form.task = forms.EditTaskForm(t)
		form.fields = taskFields(form.task)
	default:
		return
	}
	m.form = form
	m.viewMode = ViewEdit
	m.updateFormFocus()
}

func (m Model) renderEditView() string {
	var s strings.Builder

	// Title
	verb := "NEW "
	if m.form.mode() == forms.ModeEdit {
		verb = "EDIT "
	}
	s.WriteString(titleStyle.Render(verb + strings.ToUpper(m.entityName())))
	s.WriteString("\n\n")

	// Form fields
	for i, field := range m.form.fields {
		if i == m.form.focus {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(fieldLabelStyle.Render(field.label + ":"))
		s.WriteString(" ")
		s.WriteString(field.input.View())
		s.WriteString("\n")
	}

	if m.form.err != nil {
		s.WriteString("\n")
		for _, line := range strings.Split(m.form.err.Error(), "\n") {
			s.WriteString(errorStyle.Render("✗ "+line) + "\n")
		}
	}

	// Help
	s.WriteString(m.renderEditHelp())

	return s.String()
}

func (f *entityForm) mode() forms.Mode {
	switch {
	case f.contact != nil:
		return f.contact.Mode
	case f.deal != nil:
		return f.deal.Mode
	case f.task != nil:
		return f.task.Mode
	}
	return forms.ModeCreate
}

func (m Model) renderEditHelp() string {
	help := []string{
		"Tab/↓: Next field",
		"Shift+Tab/↑: Previous field",
		"←/→: Cycle choices",
		"Enter: Save",
		"Esc: Cancel",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch msg.String() {
	case "esc":
		m.viewMode = f.returnTo
		m.form = nil
		return m, nil
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "left", "right":
		if field := &f.fields[f.focus]; len(field.options) > 0 {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			field.input.SetValue(step(field.options, field.input.Value(), delta))
			f.syncStage()
			return m, nil
		}
	case "enter":
		return m.saveEntity(), nil
	}

	// Update current input
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return m, cmd
}

func step(options []string, current string, delta int) string {
	for i, o := range options {
		if o == current {
			return options[(i+delta+len(options))%len(options)]
		}
	}
	return options[0]
}

func (m *Model) moveFocus(delta int) {
	f := m.form
	if f.focus == dealStage {
		f.syncStage()
	}
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	m.updateFormFocus()
}

func (m *Model) updateFormFocus() {
	for i := range m.form.fields {
		if i == m.form.focus {
			m.form.fields[i].input.Focus()
		} else {
			m.form.fields[i].input.Blur()
		}
	}
}

// syncStage pushes a changed stage into the deal draft, which resets the
// probability to the stage default, and shows the new probability.
func (f *entityForm) syncStage() {
	if f.deal == nil {
		return
	}
	stage := models.Stage(strings.TrimSpace(f.fields[dealStage].input.Value()))
	if stage == f.deal.Stage {
		return
	}
	f.deal.SetStage(stage)
	f.fields[dealProbability].input.SetValue(strconv.Itoa(f.deal.Probability))
}

func (f *entityForm) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

func (f *entityForm) date(i int, field string) (models.Date, error) {
	v := f.value(i)
	if v == "" {
		return models.Date{}, nil
	}
	d, err := models.ParseDate(v)
	if err != nil {
		return models.Date{}, &forms.FieldError{Field: field, Err: fmt.Errorf("%w: want YYYY-MM-DD", forms.ErrInvalid)}
	}
	return d, nil
}

// apply copies the inputs into the draft and validates it.
func (f *entityForm) apply() error {
	var errs []error

	switch {
	case f.contact != nil:
		c := f.contact
		c.Name = f.value(contactName)
		c.Email = f.value(contactEmail)
		c.Phone = f.value(contactPhone)
		c.Company = f.value(contactCompany)
		c.Position = f.value(contactPosition)
		c.Location = f.value(contactLocation)
		c.Status = models.ContactStatus(f.value(contactStatus))
		errs = append(errs, c.Validate())

	case f.deal != nil:
		d := f.deal
		f.syncStage()
		d.Name = f.value(dealName)
		d.Contact = f.value(dealContact)
		d.Company = f.value(dealCompany)
		d.Description = f.value(dealDescription)

		raw := strings.NewReplacer("$", "", ",", "").Replace(f.value(dealValue))
		if raw == "" {
			d.Value = 0
		} else if v, err := strconv.ParseFloat(raw, 64); err != nil {
			errs = append(errs, &forms.FieldError{Field: "value", Err: fmt.Errorf("%w: not a number", forms.ErrInvalid)})
		} else {
			d.Value = v
		}

		if p, err := strconv.Atoi(f.value(dealProbability)); err != nil {
			errs = append(errs, &forms.FieldError{Field: "probability", Err: fmt.Errorf("%w: not a number", forms.ErrInvalid)})
		} else if p != d.Probability {
			d.SetProbability(p)
		}

		closeDate, err := f.date(dealCloseDate, "close date")
		errs = append(errs, err)
		d.CloseDate = closeDate
		if err == nil {
			errs = append(errs, d.Validate())
		}

	case f.task != nil:
		t := f.task
		t.Title = f.value(taskTitle)
		t.Description = f.value(taskDescription)
		t.Priority = models.Priority(f.value(taskPriority))
		t.Status = models.TaskStatus(f.value(taskStatus))
		t.Assignee = f.value(taskAssignee)
		t.RelatedContact = f.value(taskRelatedContact)
		t.RelatedDeal = f.value(taskRelatedDeal)

		due, err := f.date(taskDueDate, "due date")
		errs = append(errs, err)
		t.DueDate = due
		if err == nil {
			errs = append(errs, t.Validate())
		}
	}

	return errors.Join(errs...)
}

func (m Model) saveEntity() Model {
	f := m.form
	if err := f.apply(); err != nil {
		f.err = err
		return m
	}

	var (
		id    int
		label string
	)
	switch {
	case f.contact != nil:
		if f.contact.Mode == forms.ModeCreate {
			c := m.ws.Contacts.Create(f.contact.Contact())
			id, label = c.ID, c.Name
		} else if c, ok := m.ws.Contacts.Update(f.contact.ID, f.contact.Contact()); ok {
			id, label = c.ID, c.Name
		}
	case f.deal != nil:
		if f.deal.Mode == forms.ModeCreate {
			d := m.ws.Deals.Create(f.deal.Deal())
			id, label = d.ID, d.Name
		} else if d, ok := m.ws.Deals.Update(f.deal.ID, f.deal.Deal()); ok {
			id, label = d.ID, d.Name
		}
	case f.task != nil:
		if f.task.Mode == forms.ModeCreate {
			t := m.ws.Tasks.Create(f.task.Task())
			id, label = t.ID, t.Title
		} else if t, ok := m.ws.Tasks.Update(f.task.ID, f.task.Task()); ok {
			id, label = t.ID, t.Title
		}
	}

	if id == 0 {
		m.err = fmt.Errorf("%s %d not found", m.entityName(), m.selectedID)
		m.viewMode = ViewList
		m.form = nil
		return m
	}

	m.status = fmt.Sprintf("✓ Saved %s %q", m.entityName(), label)
	m.selectedID = id
	m.viewMode = f.returnTo
	m.form = nil
	return m
}
