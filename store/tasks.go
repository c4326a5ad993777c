// ABOUTME: Task store operations
// ABOUTME: Handles task CRUD, status cycling, filtering, and due date aggregates
package store

import (
	"fmt"
	"sort"

	"github.com/harperreed/crmpro/models"
)

type TaskStore struct {
	notifier
	c *collection[models.Task]
}

func NewTaskStore(seed ...models.Task) *TaskStore {
	return &TaskStore{
		c: newCollection(func(t *models.Task) *int { return &t.ID }, seed),
	}
}

func (s *TaskStore) Create(task models.Task) models.Task {
	created := s.c.create(task)
	s.emit(Event{Kind: KindTask, Verb: VerbCreated, ID: created.ID, Label: created.Title})
	return created
}

func (s *TaskStore) Update(id int, task models.Task) (models.Task, bool) {
	updated, ok := s.c.update(id, task)
	if ok {
		s.emit(Event{Kind: KindTask, Verb: VerbUpdated, ID: id, Label: updated.Title})
	}
	return updated, ok
}

// ToggleStatus advances the task one step along its status cycle.
func (s *TaskStore) ToggleStatus(id int) (models.Task, bool) {
	var from models.TaskStatus
	updated, ok := s.c.modify(id, func(t *models.Task) {
		from = t.Status
		t.Status = models.NextStatus(t.Status)
	})
	if ok {
		s.emit(Event{
			Kind:   KindTask,
			Verb:   VerbStatusChanged,
			ID:     id,
			Label:  updated.Title,
			Detail: fmt.Sprintf("%s -> %s", from, updated.Status),
		})
	}
	return updated, ok
}

func (s *TaskStore) Delete(id int) bool {
	removed, ok := s.c.remove(id)
	if ok {
		s.emit(Event{Kind: KindTask, Verb: VerbDeleted, ID: id, Label: removed.Title})
	}
	return ok
}

func (s *TaskStore) Find(id int) (models.Task, bool) {
	return s.c.find(id)
}

func (s *TaskStore) All() []models.Task {
	return s.c.all()
}

func (s *TaskStore) Len() int {
	return s.c.len()
}

func (s *TaskStore) Filter(f TaskFilter) []models.Task {
	return s.c.filter(f.Matches)
}

// Stats computes pending/completed/overdue counts relative to today.
func (s *TaskStore) Stats(today models.Date) TaskStats {
	return TaskStatsOf(s.c.items, today)
}

// Upcoming returns open tasks ordered by due date, at most limit of them.
// A limit of zero or less returns all open tasks.
func (s *TaskStore) Upcoming(limit int) []models.Task {
	open := s.c.filter(func(t models.Task) bool { return t.Status != models.TaskCompleted })
	sort.SliceStable(open, func(i, j int) bool {
		a, b := open[i].DueDate, open[j].DueDate
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.Before(b)
	})
	if limit > 0 && len(open) > limit {
		open = open[:limit]
	}
	return open
}
