// ABOUTME: Tool output shapes and shared helpers for the MCP handlers
// ABOUTME: Converts models to flat outputs with string dates and applies limits
package handlers

import (
	"fmt"

	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
)

// DefaultLimit caps find and query results when no limit is given.
const DefaultLimit = 10

// Clock returns the current calendar date.
type Clock func() models.Date

type ContactOutput struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company"`
	Position string `json:"position,omitempty"`
	Location string `json:"location,omitempty"`
	Status   string `json:"status"`
}

type DealOutput struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Stage       string  `json:"stage"`
	Probability int     `json:"probability"`
	Weighted    float64 `json:"weighted"`
	CloseDate   string  `json:"close_date"`
	Contact     string  `json:"contact"`
	Company     string  `json:"company"`
	Description string  `json:"description,omitempty"`
}

type TaskOutput struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	DueDate        string `json:"due_date"`
	DueState       string `json:"due_state,omitempty"`
	Priority       string `json:"priority"`
	Status         string `json:"status"`
	Assignee       string `json:"assignee"`
	RelatedContact string `json:"related_contact,omitempty"`
	RelatedDeal    string `json:"related_deal,omitempty"`
}

type DeleteOutput struct {
	ID      int  `json:"id"`
	Deleted bool `json:"deleted"`
}

type DeleteInput struct {
	ID int `json:"id" jsonschema:"Id of the record to delete"`
}

func contactToOutput(c models.Contact) ContactOutput {
	return ContactOutput{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Company:  c.Company,
		Position: c.Position,
		Location: c.Location,
		Status:   string(c.Status),
	}
}

func dealToOutput(d models.Deal) DealOutput {
	return DealOutput{
		ID:          d.ID,
		Name:        d.Name,
		Value:       d.Value,
		Stage:       string(d.Stage),
		Probability: d.Probability,
		Weighted:    d.Weighted(),
		CloseDate:   d.CloseDate.String(),
		Contact:     d.Contact,
		Company:     d.Company,
		Description: d.Description,
	}
}

func taskToOutput(t models.Task, today models.Date) TaskOutput {
	return TaskOutput{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		DueDate:        t.DueDate.String(),
		DueState:       string(models.Classify(t, today)),
		Priority:       string(t.Priority),
		Status:         string(t.Status),
		Assignee:       t.Assignee,
		RelatedContact: models.StringValue(t.RelatedContact),
		RelatedDeal:    models.StringValue(t.RelatedDeal),
	}
}

func limit[T any](items []T, n int) []T {
	if n <= 0 {
		n = DefaultLimit
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

func notFound(kind store.Kind, id int) error {
	return fmt.Errorf("%s %d not found", kind, id)
}

// parseDate accepts YYYY-MM-DD. An empty string returns the zero date.
func parseDate(field, s string) (models.Date, error) {
	if s == "" {
		return models.Date{}, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid %s (use YYYY-MM-DD): %w", field, err)
	}
	return d, nil
}
