package forms

import (
	"errors"

	"github.com/harperreed/crmpro/models"
)

// TaskForm is the draft behind the task create/edit form. The related
// contact and deal are plain strings here; "" means none.
type TaskForm struct {
	Mode           Mode
	ID             int
	Title          string
	Description    string
	DueDate        models.Date
	Priority       models.Priority
	Status         models.TaskStatus
	Assignee       string
	RelatedContact string
	RelatedDeal    string
}

// NewTaskForm opens a create form due tomorrow and assigned to the current user.
func NewTaskForm(today models.Date, currentUser string) *TaskForm {
	return &TaskForm{
		Mode:     ModeCreate,
		DueDate:  today.AddDays(1),
		Priority: models.PriorityMedium,
		Status:   models.TaskPending,
		Assignee: currentUser,
	}
}

func EditTaskForm(t models.Task) *TaskForm {
	return &TaskForm{
		Mode:           ModeEdit,
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		DueDate:        t.DueDate,
		Priority:       t.Priority,
		Status:         t.Status,
		Assignee:       t.Assignee,
		RelatedContact: models.StringValue(t.RelatedContact),
		RelatedDeal:    models.StringValue(t.RelatedDeal),
	}
}

func (f *TaskForm) Validate() error {
	errs := []error{
		required("title", f.Title),
		required("assignee", f.Assignee),
	}
	if f.DueDate.IsZero() {
		errs = append(errs, &FieldError{Field: "due date", Err: ErrRequired})
	}
	if !f.Priority.Valid() {
		errs = append(errs, invalid("priority", "%q", f.Priority))
	}
	if !f.Status.Valid() {
		errs = append(errs, invalid("status", "%q", f.Status))
	}
	return errors.Join(errs...)
}

// Task returns the model value, collapsing empty related fields to nil.
func (f *TaskForm) Task() models.Task {
	return models.Task{
		ID:             f.ID,
		Title:          f.Title,
		Description:    f.Description,
		DueDate:        f.DueDate,
		Priority:       f.Priority,
		Status:         f.Status,
		Assignee:       f.Assignee,
		RelatedContact: models.StringPtr(f.RelatedContact),
		RelatedDeal:    models.StringPtr(f.RelatedDeal),
	}
}
