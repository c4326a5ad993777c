// ABOUTME: Search and categorical filter predicates for every entity store
// ABOUTME: Query matching is a case-insensitive substring test over fixed fields
package store

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/harperreed/crmpro/models"
)

// matchesQuery reports whether query is empty or folds into at least one field.
func matchesQuery(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	fold := cases.Fold()
	needle := fold.String(query)
	for _, f := range fields {
		if strings.Contains(fold.String(f), needle) {
			return true
		}
	}
	return false
}

// matchesCategory treats "" and "all" as wildcards; anything else must match exactly.
func matchesCategory(filter, value string) bool {
	return filter == "" || filter == models.FilterAll || filter == value
}

// ContactFilter selects contacts by name/email/company text and status.
type ContactFilter struct {
	Query  string
	Status string
}

func (f ContactFilter) Matches(c models.Contact) bool {
	return matchesQuery(f.Query, c.Name, c.Email, c.Company) &&
		matchesCategory(f.Status, string(c.Status))
}

// DealFilter selects deals by name/company/contact text and stage.
type DealFilter struct {
	Query string
	Stage string
}

func (f DealFilter) Matches(d models.Deal) bool {
	return matchesQuery(f.Query, d.Name, d.Company, d.Contact) &&
		matchesCategory(f.Stage, string(d.Stage))
}

// TaskFilter selects tasks by title/description/assignee text, status, and priority.
type TaskFilter struct {
	Query    string
	Status   string
	Priority string
}

func (f TaskFilter) Matches(t models.Task) bool {
	return matchesQuery(f.Query, t.Title, t.Description, t.Assignee) &&
		matchesCategory(f.Status, string(t.Status)) &&
		matchesCategory(f.Priority, string(t.Priority))
}
