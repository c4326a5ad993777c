// ABOUTME: Task status cycling and due date classification
// ABOUTME: Provides NextStatus, IsOverdue, IsDueSoon, and the combined Classify rule
package models

// TaskStatus is a task's progress state.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

// AllTaskStatuses lists task statuses in cycle order.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskPending, TaskInProgress, TaskCompleted}
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// NextStatus advances one step along pending -> in-progress -> completed -> pending.
// Anything unrecognized is treated like in-progress and moves to completed.
func NextStatus(s TaskStatus) TaskStatus {
	switch s {
	case TaskCompleted:
		return TaskPending
	case TaskPending:
		return TaskInProgress
	default:
		return TaskCompleted
	}
}

// DueSoonDays is the inclusive look-ahead window for IsDueSoon.
const DueSoonDays = 2

// IsOverdue reports whether due is strictly before today. It ignores task status.
func IsOverdue(due, today Date) bool {
	return due.Before(today)
}

// IsDueSoon reports whether due falls within today .. today+DueSoonDays.
// It ignores task status.
func IsDueSoon(due, today Date) bool {
	days := today.DaysUntil(due)
	return days >= 0 && days <= DueSoonDays
}

// DueState is the combined due-date classification of a task.
type DueState string

const (
	DueNone    DueState = ""
	DueSoon    DueState = "due-soon"
	DueOverdue DueState = "overdue"
	DueDone    DueState = "done"
)

// Classify combines status and due date: completed tasks are never overdue or
// due soon, and an overdue task is never also due soon.
func Classify(t Task, today Date) DueState {
	if t.Status == TaskCompleted {
		return DueDone
	}
	if t.DueDate.IsZero() {
		return DueNone
	}
	if IsOverdue(t.DueDate, today) {
		return DueOverdue
	}
	if IsDueSoon(t.DueDate, today) {
		return DueSoon
	}
	return DueNone
}
