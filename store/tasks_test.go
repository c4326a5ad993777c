// ABOUTME: Tests for task store operations
// ABOUTME: Covers status toggling, filtering, aggregates, and upcoming ordering
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/crmpro/models"
)

var today = models.NewDate(2025, 1, 17)

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: 1, Title: "Follow up with Acme Corp", Description: "Call Alice Johnson to discuss the integration project timeline", DueDate: models.NewDate(2025, 1, 16), Priority: models.PriorityHigh, Status: models.TaskPending, Assignee: "John Doe"},
		{ID: 2, Title: "Prepare proposal for TechStart", Description: "Create detailed proposal document for platform licensing", DueDate: models.NewDate(2025, 1, 17), Priority: models.PriorityMedium, Status: models.TaskInProgress, Assignee: "Jane Smith"},
		{ID: 3, Title: "Schedule demo for Global Systems", Description: "Coordinate with Carol Williams for an Acme Corp style demo", DueDate: models.NewDate(2025, 1, 18), Priority: models.PriorityHigh, Status: models.TaskPending, Assignee: "Mike Johnson"},
		{ID: 4, Title: "Send contract to Innovation Labs", Description: "Finalize and send the consulting agreement", DueDate: models.NewDate(2025, 1, 10), Priority: models.PriorityLow, Status: models.TaskCompleted, Assignee: "Sarah Davis"},
	}
}

func TestToggleStatusCycles(t *testing.T) {
	s := NewTaskStore(sampleTasks()...)

	got, ok := s.ToggleStatus(1)
	require.True(t, ok)
	assert.Equal(t, models.TaskInProgress, got.Status)

	got, _ = s.ToggleStatus(1)
	assert.Equal(t, models.TaskCompleted, got.Status)

	got, _ = s.ToggleStatus(1)
	assert.Equal(t, models.TaskPending, got.Status)
}

func TestToggleStatusPeriodThree(t *testing.T) {
	s := NewTaskStore(sampleTasks()...)
	for _, task := range s.All() {
		for i := 0; i < 3; i++ {
			s.ToggleStatus(task.ID)
		}
		after, _ := s.Find(task.ID)
		assert.Equal(t, task.Status, after.Status, "task %d", task.ID)
	}
}

func TestToggleStatusMissing(t *testing.T) {
	s := NewTaskStore()
	_, ok := s.ToggleStatus(1)
	assert.False(t, ok)
}

func TestTaskFilterMatchesDescription(t *testing.T) {
	s := NewTaskStore(sampleTasks()...)

	got := s.Filter(TaskFilter{Query: "acme", Status: models.FilterAll})
	ids := []int{}
	for _, task := range got {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int{1, 3}, ids)
}

func TestTaskFilterCombinesWithAnd(t *testing.T) {
	s := NewTaskStore(sampleTasks()...)

	got := s.Filter(TaskFilter{Status: "pending", Priority: "high"})
	assert.Len(t, got, 2)

	got = s.Filter(TaskFilter{Query: "johnson", Status: "pending", Priority: "high"})
	ids := []int{}
	for _, task := range got {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int{1, 3}, ids, "assignee Mike Johnson and description Alice Johnson")

	got = s.Filter(TaskFilter{Query: "sarah", Status: "pending"})
	assert.Empty(t, got)
}

func TestTaskStats(t *testing.T) {
	s := NewTaskStore(sampleTasks()...)

	stats := s.Stats(today)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Pending)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Overdue, "task 4 is past due but completed")
	assert.Equal(t, 2, stats.DueSoon)
}

func TestUpcomingOrdersOpenTasksByDueDate(t *testing.T) {
	tasks := append(sampleTasks(), models.Task{ID: 5, Title: "Undated", Status: models.TaskPending})
	s := NewTaskStore(tasks...)

	up := s.Upcoming(0)
	ids := []int{}
	for _, task := range up {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 5}, ids)

	assert.Len(t, s.Upcoming(2), 2)
}
