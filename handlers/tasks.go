// ABOUTME: Task MCP tool handlers
// ABOUTME: Implements add_task, update_task, toggle_task_status, delete_task, and find_tasks tools
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/crmpro/forms"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type TaskHandlers struct {
	ws    *store.Workspace
	today Clock
	user  string
}

// NewTaskHandlers creates task tools. user is the default assignee.
func NewTaskHandlers(ws *store.Workspace, today Clock, user string) *TaskHandlers {
	return &TaskHandlers{ws: ws, today: today, user: user}
}

type AddTaskInput struct {
	Title          string `json:"title" jsonschema:"Task title (required)"`
	Description    string `json:"description,omitempty" jsonschema:"Details"`
	DueDate        string `json:"due_date,omitempty" jsonschema:"Due date YYYY-MM-DD (default tomorrow)"`
	Priority       string `json:"priority,omitempty" jsonschema:"Priority: low, medium, high (default medium)"`
	Status         string `json:"status,omitempty" jsonschema:"Status: pending, in-progress, completed (default pending)"`
	Assignee       string `json:"assignee,omitempty" jsonschema:"Assignee name (default current user)"`
	RelatedContact string `json:"related_contact,omitempty" jsonschema:"Related contact name"`
	RelatedDeal    string `json:"related_deal,omitempty" jsonschema:"Related deal name"`
}

func (h *TaskHandlers) AddTask(_ context.Context, _ *mcp.CallToolRequest, input AddTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	today := h.today()
	f := forms.NewTaskForm(today, h.user)
	f.Title = input.Title
	f.Description = input.Description
	setIf(&f.Assignee, input.Assignee)
	f.RelatedContact = input.RelatedContact
	f.RelatedDeal = input.RelatedDeal
	if input.Priority != "" {
		f.Priority = models.Priority(input.Priority)
	}
	if input.Status != "" {
		f.Status = models.TaskStatus(input.Status)
	}
	if input.DueDate != "" {
		d, err := parseDate("due_date", input.DueDate)
		if err != nil {
			return nil, TaskOutput{}, err
		}
		f.DueDate = d
	}
	if err := f.Validate(); err != nil {
		return nil, TaskOutput{}, fmt.Errorf("invalid task: %w", err)
	}

	h.ws.Lock()
	defer h.ws.Unlock()

	return nil, taskToOutput(h.ws.Tasks.Create(f.Task()), today), nil
}

// UpdateTaskInput replaces only the fields that are set. Related names are
// cleared with clear_related.
type UpdateTaskInput struct {
	ID             int    `json:"id" jsonschema:"Task id (required)"`
	Title          string `json:"title,omitempty" jsonschema:"Updated title"`
	Description    string `json:"description,omitempty" jsonschema:"Updated description"`
	DueDate        string `json:"due_date,omitempty" jsonschema:"Updated due date YYYY-MM-DD"`
	Priority       string `json:"priority,omitempty" jsonschema:"Updated priority"`
	Status         string `json:"status,omitempty" jsonschema:"Updated status"`
	Assignee       string `json:"assignee,omitempty" jsonschema:"Updated assignee"`
	RelatedContact string `json:"related_contact,omitempty" jsonschema:"Updated related contact"`
	RelatedDeal    string `json:"related_deal,omitempty" jsonschema:"Updated related deal"`
	ClearRelated   bool   `json:"clear_related,omitempty" jsonschema:"Remove the related contact and deal"`
}

func (h *TaskHandlers) UpdateTask(_ context.Context, _ *mcp.CallToolRequest, input UpdateTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	due, err := parseDate("due_date", input.DueDate)
	if err != nil {
		return nil, TaskOutput{}, err
	}

	h.ws.Lock()
	defer h.ws.Unlock()

	existing, ok := h.ws.Tasks.Find(input.ID)
	if !ok {
		return nil, TaskOutput{}, notFound(store.KindTask, input.ID)
	}

	f := forms.EditTaskForm(existing)
	if input.ClearRelated {
		f.RelatedContact = ""
		f.RelatedDeal = ""
	}
	setIf(&f.Title, input.Title)
	setIf(&f.Description, input.Description)
	setIf(&f.Assignee, input.Assignee)
	setIf(&f.RelatedContact, input.RelatedContact)
	setIf(&f.RelatedDeal, input.RelatedDeal)
	if input.Priority != "" {
		f.Priority = models.Priority(input.Priority)
	}
	if input.Status != "" {
		f.Status = models.TaskStatus(input.Status)
	}
	if !due.IsZero() {
		f.DueDate = due
	}
	if err := f.Validate(); err != nil {
		return nil, TaskOutput{}, fmt.Errorf("invalid task: %w", err)
	}

	updated, _ := h.ws.Tasks.Update(input.ID, f.Task())
	return nil, taskToOutput(updated, h.today()), nil
}

type ToggleTaskStatusInput struct {
	ID int `json:"id" jsonschema:"Task id (required)"`
}

// ToggleTaskStatus advances pending -> in-progress -> completed -> pending.
func (h *TaskHandlers) ToggleTaskStatus(_ context.Context, _ *mcp.CallToolRequest, input ToggleTaskStatusInput) (*mcp.CallToolResult, TaskOutput, error) {
	h.ws.Lock()
	defer h.ws.Unlock()

	task, ok := h.ws.Tasks.ToggleStatus(input.ID)
	if !ok {
		return nil, TaskOutput{}, notFound(store.KindTask, input.ID)
	}
	return nil, taskToOutput(task, h.today()), nil
}

func (h *TaskHandlers) DeleteTask(_ context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	h.ws.Lock()
	defer h.ws.Unlock()

	if !h.ws.Tasks.Delete(input.ID) {
		return nil, DeleteOutput{}, notFound(store.KindTask, input.ID)
	}
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}

type FindTasksInput struct {
	Query    string `json:"query,omitempty" jsonschema:"Substring of title, description, or assignee"`
	Status   string `json:"status,omitempty" jsonschema:"Status filter (all, pending, in-progress, completed)"`
	Priority string `json:"priority,omitempty" jsonschema:"Priority filter (all, low, medium, high)"`
	DueState string `json:"due_state,omitempty" jsonschema:"Only tasks in this due state: overdue, due-soon"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum results (default 10)"`
}

type FindTasksOutput struct {
	Tasks []TaskOutput `json:"tasks"`
	Count int          `json:"count"`
}

func (h *TaskHandlers) FindTasks(_ context.Context, _ *mcp.CallToolRequest, input FindTasksInput) (*mcp.CallToolResult, FindTasksOutput, error) {
	today := h.today()

	h.ws.Lock()
	tasks := h.ws.Tasks.Filter(store.TaskFilter{Query: input.Query, Status: input.Status, Priority: input.Priority})
	h.ws.Unlock()

	if input.DueState != "" {
		var kept []models.Task
		for _, t := range tasks {
			if string(models.Classify(t, today)) == input.DueState {
				kept = append(kept, t)
			}
		}
		tasks = kept
	}

	out := FindTasksOutput{Tasks: []TaskOutput{}}
	for _, t := range limit(tasks, input.Limit) {
		out.Tasks = append(out.Tasks, taskToOutput(t, today))
	}
	out.Count = len(out.Tasks)
	return nil, out, nil
}
