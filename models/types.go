// ABOUTME: Data models for CRM entities
// ABOUTME: Defines Contact, Deal, and Task structs plus their enumerations
package models

// FilterAll is the categorical filter sentinel that matches every value.
const FilterAll = "all"

type Contact struct {
	ID       int           `json:"id" yaml:"id"`
	Name     string        `json:"name" yaml:"name"`
	Email    string        `json:"email" yaml:"email"`
	Phone    string        `json:"phone,omitempty" yaml:"phone,omitempty"`
	Company  string        `json:"company" yaml:"company"`
	Position string        `json:"position,omitempty" yaml:"position,omitempty"`
	Location string        `json:"location,omitempty" yaml:"location,omitempty"`
	Status   ContactStatus `json:"status" yaml:"status"`
}

type Deal struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Value       float64 `json:"value" yaml:"value"`
	Stage       Stage   `json:"stage" yaml:"stage"`
	Probability int     `json:"probability" yaml:"probability"`
	CloseDate   Date    `json:"close_date" yaml:"close_date"`
	Contact     string  `json:"contact" yaml:"contact"`
	Company     string  `json:"company" yaml:"company"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Weighted returns the deal value scaled by its win probability.
func (d Deal) Weighted() float64 {
	return d.Value * float64(d.Probability) / 100
}

type Task struct {
	ID             int        `json:"id" yaml:"id"`
	Title          string     `json:"title" yaml:"title"`
	Description    string     `json:"description" yaml:"description"`
	DueDate        Date       `json:"due_date" yaml:"due_date"`
	Priority       Priority   `json:"priority" yaml:"priority"`
	Status         TaskStatus `json:"status" yaml:"status"`
	Assignee       string     `json:"assignee" yaml:"assignee"`
	RelatedContact *string    `json:"related_contact,omitempty" yaml:"related_contact,omitempty"`
	RelatedDeal    *string    `json:"related_deal,omitempty" yaml:"related_deal,omitempty"`
}

// ContactStatus is the relationship state of a contact.
type ContactStatus string

const (
	StatusActive   ContactStatus = "active"
	StatusInactive ContactStatus = "inactive"
	StatusProspect ContactStatus = "prospect"
)

// AllContactStatuses lists contact statuses in display order.
func AllContactStatuses() []ContactStatus {
	return []ContactStatus{StatusActive, StatusInactive, StatusProspect}
}

func (s ContactStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusProspect:
		return true
	}
	return false
}

// Priority ranks tasks.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// AllPriorities lists priorities from lowest to highest.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences an optional string, treating nil as empty.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
