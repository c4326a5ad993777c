// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides ASCII dashboard for the pipeline, contacts, tasks, and recent activity
package viz

import (
	"fmt"
	"strings"

	"github.com/harperreed/crmpro/activity"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
)

// UpcomingLimit is how many open tasks the dashboard lists.
const UpcomingLimit = 5

// RecentLimit is how many activity entries the dashboard lists.
const RecentLimit = 5

type DashboardStats struct {
	Today models.Date

	// Pipeline overview
	Pipeline store.Pipeline

	// Overall stats
	TotalContacts    int
	ContactsByStatus map[models.ContactStatus]int
	Tasks            store.TaskStats

	Upcoming       []models.Task
	RecentActivity []activity.Entry

	// Needs attention
	OverdueTasks []AttentionItem
	SlippedDeals []AttentionItem
}

// AttentionItem is an open task or deal whose date has passed.
type AttentionItem struct {
	ID       int
	Name     string
	DaysLate int
}

// GenerateDashboardStats snapshots ws as of today. feed may be nil.
func GenerateDashboardStats(ws *store.Workspace, feed *activity.Feed, today models.Date) *DashboardStats {
	stats := &DashboardStats{
		Today:            today,
		Pipeline:         ws.Deals.Pipeline(),
		TotalContacts:    ws.Contacts.Len(),
		ContactsByStatus: ws.Contacts.CountByStatus(),
		Tasks:            ws.Tasks.Stats(today),
		Upcoming:         ws.Tasks.Upcoming(UpcomingLimit),
	}

	if feed != nil {
		stats.RecentActivity = feed.Recent(RecentLimit)
	}

	for _, t := range ws.Tasks.All() {
		if models.Classify(t, today) == models.DueOverdue {
			stats.OverdueTasks = append(stats.OverdueTasks, AttentionItem{
				ID:       t.ID,
				Name:     t.Title,
				DaysLate: t.DueDate.DaysUntil(today),
			})
		}
	}

	for _, d := range ws.Deals.All() {
		if d.Stage.Closed() || d.CloseDate.IsZero() || !d.CloseDate.Before(today) {
			continue
		}
		stats.SlippedDeals = append(stats.SlippedDeals, AttentionItem{
			ID:       d.ID,
			Name:     d.Name,
			DaysLate: d.CloseDate.DaysUntil(today),
		})
	}

	return stats
}

func RenderDashboard(stats *DashboardStats, money *models.Money) string {
	var out strings.Builder

	// Header
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  CRM PRO DASHBOARD  " + stats.Today.String() + "\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	// Pipeline overview
	out.WriteString("PIPELINE OVERVIEW\n")
	renderPipeline(&out, stats.Pipeline, money)
	out.WriteString(fmt.Sprintf("  %-13s %s total, %s weighted\n\n", "",
		money.Format(stats.Pipeline.Total), money.Format(stats.Pipeline.Weighted)))

	// Stats
	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  📇 %d contacts (%d active, %d prospects, %d inactive)\n",
		stats.TotalContacts,
		stats.ContactsByStatus[models.StatusActive],
		stats.ContactsByStatus[models.StatusProspect],
		stats.ContactsByStatus[models.StatusInactive]))
	out.WriteString(fmt.Sprintf("  💼 %d deals\n", stats.Pipeline.Count))
	out.WriteString(fmt.Sprintf("  ✅ %d tasks (%d pending, %d completed, %d due soon)\n\n",
		stats.Tasks.Total, stats.Tasks.Pending, stats.Tasks.Completed, stats.Tasks.DueSoon))

	if len(stats.Upcoming) > 0 {
		out.WriteString("UPCOMING TASKS\n")
		for _, t := range stats.Upcoming {
			out.WriteString(fmt.Sprintf("  %s  %-6s %s\n", t.DueDate, t.Priority, t.Title))
		}
		out.WriteString("\n")
	}

	// Needs attention
	if len(stats.OverdueTasks) > 0 || len(stats.SlippedDeals) > 0 {
		out.WriteString("NEEDS ATTENTION\n")

		for _, item := range stats.OverdueTasks {
			out.WriteString(fmt.Sprintf("  ⚠️  task %q overdue by %d days\n", item.Name, item.DaysLate))
		}
		for _, item := range stats.SlippedDeals {
			out.WriteString(fmt.Sprintf("  ⚠️  deal %q past close date by %d days\n", item.Name, item.DaysLate))
		}
		out.WriteString("\n")
	}

	if len(stats.RecentActivity) > 0 {
		out.WriteString("RECENT ACTIVITY\n")
		for _, e := range stats.RecentActivity {
			out.WriteString(fmt.Sprintf("  %s  %s\n", e.At.Format("15:04"), e.Summary()))
		}
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, pipeline store.Pipeline, money *models.Money) {
	// Find max count for scaling
	maxCount := 0
	for _, s := range pipeline.Stages {
		if s.Count > maxCount {
			maxCount = s.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, s := range pipeline.Stages {
		// Calculate bar length (0-10 blocks)
		barLength := (s.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		out.WriteString(fmt.Sprintf("  %-13s %s  %2d (%s)\n",
			s.Stage, bar, s.Count, money.Format(s.Value)))
	}
}
