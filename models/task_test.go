// ABOUTME: Tests for task status cycling and due date rules
// ABOUTME: Covers the 3-cycle, overdue/due-soon windows, and Classify suppression
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatusCycle(t *testing.T) {
	assert.Equal(t, TaskInProgress, NextStatus(TaskPending))
	assert.Equal(t, TaskCompleted, NextStatus(TaskInProgress))
	assert.Equal(t, TaskPending, NextStatus(TaskCompleted))

	for _, start := range AllTaskStatuses() {
		s := start
		for i := 0; i < 3; i++ {
			s = NextStatus(s)
		}
		assert.Equal(t, start, s, "cycle must have period 3 from %s", start)
	}
}

func TestIsDueSoon(t *testing.T) {
	today := NewDate(2025, 1, 15)

	for offset := -30; offset <= 30; offset++ {
		due := today.AddDays(offset)
		want := offset >= 0 && offset <= 2
		assert.Equal(t, want, IsDueSoon(due, today), "offset %d", offset)
	}
}

func TestIsOverdue(t *testing.T) {
	today := NewDate(2025, 1, 15)

	assert.True(t, IsOverdue(today.AddDays(-1), today))
	assert.False(t, IsOverdue(today, today), "due today is not overdue")
	assert.False(t, IsOverdue(today.AddDays(1), today))
}

func TestClassify(t *testing.T) {
	today := NewDate(2025, 1, 15)

	tests := []struct {
		name   string
		task   Task
		expect DueState
	}{
		{"completed and past due", Task{Status: TaskCompleted, DueDate: today.AddDays(-5)}, DueDone},
		{"completed and due today", Task{Status: TaskCompleted, DueDate: today}, DueDone},
		{"pending past due", Task{Status: TaskPending, DueDate: today.AddDays(-1)}, DueOverdue},
		{"in progress due today", Task{Status: TaskInProgress, DueDate: today}, DueSoon},
		{"pending due in two days", Task{Status: TaskPending, DueDate: today.AddDays(2)}, DueSoon},
		{"pending due in three days", Task{Status: TaskPending, DueDate: today.AddDays(3)}, DueNone},
		{"no due date", Task{Status: TaskPending}, DueNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Classify(tt.task, today))
		})
	}
}
