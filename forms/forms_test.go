// ABOUTME: Tests for form defaults, stage-driven probability, and validation
// ABOUTME: Covers the create/edit round trip through the model values
package forms

import (
	"errors"
	"testing"

	"github.com/harperreed/crmpro/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = models.MustParseDate("2025-01-17")

func TestNewDealFormDefaults(t *testing.T) {
	f := NewDealForm(today)

	assert.Equal(t, ModeCreate, f.Mode)
	assert.Equal(t, models.StageLead, f.Stage)
	assert.Equal(t, 10, f.Probability)
	assert.Equal(t, models.MustParseDate("2025-02-16"), f.CloseDate)
}

func TestDealFormStageDrivesProbability(t *testing.T) {
	f := NewDealForm(today)

	f.SetStage(models.StageNegotiation)
	assert.Equal(t, 75, f.Probability)

	f.SetProbability(65)
	f.SetStage(models.StageNegotiation)
	assert.Equal(t, 65, f.Probability, "same stage keeps the override")

	f.SetStage(models.StageClosedWon)
	assert.Equal(t, 100, f.Probability)

	f.SetStage(models.StageClosedLost)
	assert.Equal(t, 0, f.Probability)
}

func TestDealFormValidate(t *testing.T) {
	f := NewDealForm(today)
	err := f.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequired))
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "contact")
	assert.Contains(t, err.Error(), "company")

	f.Name = "Expansion"
	f.Contact = "Alice Johnson"
	f.Company = "Acme Corp"
	f.Value = 1200
	require.NoError(t, f.Validate())

	f.Probability = 120
	err = f.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	f.Probability = 50
	f.Value = -1
	assert.ErrorIs(t, f.Validate(), ErrInvalid)
}

func TestEditDealFormRoundTrip(t *testing.T) {
	d := models.Deal{
		ID:          4,
		Name:        "Innovation Labs Consulting",
		Value:       25600,
		Stage:       models.StageNegotiation,
		Probability: 85,
		CloseDate:   models.MustParseDate("2025-01-30"),
		Contact:     "David Brown",
		Company:     "Innovation Labs",
	}
	f := EditDealForm(d)
	assert.Equal(t, ModeEdit, f.Mode)
	assert.Equal(t, d, f.Deal())
}

func TestNewTaskFormDefaults(t *testing.T) {
	f := NewTaskForm(today, "John Doe")

	assert.Equal(t, models.MustParseDate("2025-01-18"), f.DueDate)
	assert.Equal(t, models.PriorityMedium, f.Priority)
	assert.Equal(t, models.TaskPending, f.Status)
	assert.Equal(t, "John Doe", f.Assignee)
}

func TestTaskFormCollapsesEmptyRelations(t *testing.T) {
	f := NewTaskForm(today, "John Doe")
	f.Title = "Call Bob"
	f.RelatedContact = "Bob Smith"
	require.NoError(t, f.Validate())

	task := f.Task()
	require.NotNil(t, task.RelatedContact)
	assert.Equal(t, "Bob Smith", *task.RelatedContact)
	assert.Nil(t, task.RelatedDeal)
}

func TestTaskFormValidate(t *testing.T) {
	f := NewTaskForm(today, "")
	f.DueDate = models.Date{}
	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "assignee")
	assert.Contains(t, err.Error(), "due date")

	f = NewTaskForm(today, "Jane Smith")
	f.Title = "Prep"
	f.Priority = "urgent"
	assert.ErrorIs(t, f.Validate(), ErrInvalid)
}

func TestContactForm(t *testing.T) {
	f := NewContactForm()
	assert.Equal(t, models.StatusProspect, f.Status)
	assert.ErrorIs(t, f.Validate(), ErrRequired)

	f.Name = "Erin Lee"
	f.Email = "erin@example.com"
	f.Company = "Example"
	require.NoError(t, f.Validate())

	c := f.Contact()
	assert.Equal(t, "Erin Lee", c.Name)
	assert.Equal(t, models.StatusProspect, c.Status)

	edit := EditContactForm(models.Contact{ID: 9, Name: "Zed", Email: "z@z.io", Company: "Z", Status: models.StatusActive})
	assert.Equal(t, 9, edit.Contact().ID)
	assert.Equal(t, ModeEdit, edit.Mode)
}

func TestFieldErrorUnwrap(t *testing.T) {
	err := required("name", "  ")
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "name", fe.Field)
	assert.Equal(t, "name is required", err.Error())
}
