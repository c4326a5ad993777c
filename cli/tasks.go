// ABOUTME: Task CLI commands
// ABOUTME: Lists tasks with due date classification and prints task aggregates
package cli

import (
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
)

// ListTasksCommand lists tasks matching a query, status, priority, and due state.
func ListTasksCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("list-tasks", flag.ContinueOnError)
	query := fs.String("query", "", "Search by title, description, or assignee")
	status := fs.String("status", models.FilterAll, "Filter by status (pending, in-progress, completed, all)")
	priority := fs.String("priority", models.FilterAll, "Filter by priority (low, medium, high, all)")
	due := fs.String("due", "", "Only show tasks in this due state (overdue, due-soon, done)")
	limit := fs.Int("limit", env.settings().ItemsPerPage(), "Maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *status != models.FilterAll && !models.TaskStatus(*status).Valid() {
		return fmt.Errorf("unknown status %q", *status)
	}
	if *priority != models.FilterAll && !models.Priority(*priority).Valid() {
		return fmt.Errorf("unknown priority %q", *priority)
	}
	switch models.DueState(*due) {
	case models.DueNone, models.DueSoon, models.DueOverdue, models.DueDone:
	default:
		return fmt.Errorf("unknown due state %q", *due)
	}

	today := env.today()
	env.Workspace.Lock()
	tasks := env.Workspace.Tasks.Filter(store.TaskFilter{Query: *query, Status: *status, Priority: *priority})
	env.Workspace.Unlock()

	if *due != "" {
		var matched []models.Task
		for _, t := range tasks {
			if models.Classify(t, today) == models.DueState(*due) {
				matched = append(matched, t)
			}
		}
		tasks = matched
	}

	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(env.out(), "No tasks found")
		return nil
	}

	w := tabwriter.NewWriter(env.out(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE\tASSIGNEE")
	_, _ = fmt.Fprintln(w, "--\t-----\t------\t--------\t---\t--------")

	shown := limitRows(tasks, *limit)
	for _, t := range shown {
		_, _ = fmt.Fprintf(w, "%s %d\t%s\t%s\t%s\t%s\t%s\n",
			dueIndicator(models.Classify(t, today)), t.ID, t.Title, t.Status, t.Priority,
			relativeDue(t.DueDate, today), orDash(t.Assignee))
	}

	_ = w.Flush()
	_, _ = fmt.Fprintf(env.out(), "\n%d of %d tasks\n", len(shown), len(tasks))
	return nil
}

// TaskStatsCommand prints pending, completed, overdue, and due-soon counts.
func TaskStatsCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("task-stats", flag.ContinueOnError)
	on := fs.String("today", "", "Reference date YYYY-MM-DD (default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	today := env.today()
	if *on != "" {
		d, err := models.ParseDate(*on)
		if err != nil {
			return fmt.Errorf("invalid --today: %w", err)
		}
		today = d
	}

	env.Workspace.Lock()
	stats := env.Workspace.Tasks.Stats(today)
	env.Workspace.Unlock()

	w := tabwriter.NewWriter(env.out(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "As of\t%s\n", today)
	_, _ = fmt.Fprintf(w, "Total\t%d\n", stats.Total)
	_, _ = fmt.Fprintf(w, "Pending\t%d\n", stats.Pending)
	_, _ = fmt.Fprintf(w, "Completed\t%d\n", stats.Completed)
	_, _ = fmt.Fprintf(w, "Overdue\t%d\n", stats.Overdue)
	_, _ = fmt.Fprintf(w, "Due soon\t%d\n", stats.DueSoon)
	return w.Flush()
}

func dueIndicator(state models.DueState) string {
	switch state {
	case models.DueOverdue:
		return "🔴"
	case models.DueSoon:
		return "🟡"
	case models.DueDone:
		return "✓"
	}
	return "🟢"
}

// relativeDue renders a due date next to its distance from today, e.g.
// "2025-01-18 (1 day from now)".
func relativeDue(due, today models.Date) string {
	if due.IsZero() {
		return "-"
	}
	if due == today {
		return due.String() + " (today)"
	}
	return fmt.Sprintf("%s (%s)", due, humanize.RelTime(due.Time(), today.Time(), "ago", "from now"))
}
