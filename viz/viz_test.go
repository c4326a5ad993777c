// ABOUTME: Tests for dashboard statistics, text rendering, and graph generation
// ABOUTME: Runs against the sample workspace on a fixed date
package viz

import (
	"testing"

	"github.com/harperreed/crmpro/activity"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/seed"
	"github.com/harperreed/crmpro/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = models.MustParseDate("2025-02-01")

func TestGenerateDashboardStats(t *testing.T) {
	ws := store.NewWorkspace(seed.Default())
	feed := activity.NewFeed(0)
	ws.Observe(feed)
	ws.Tasks.ToggleStatus(1)

	stats := GenerateDashboardStats(ws, feed, today)

	assert.Equal(t, 4, stats.TotalContacts)
	assert.Equal(t, 2, stats.ContactsByStatus[models.StatusActive])
	assert.Equal(t, 4, stats.Pipeline.Count)
	assert.Equal(t, 2, stats.Pipeline.Stage(models.StageNegotiation).Count)
	assert.Equal(t, 3, stats.Tasks.Overdue)
	assert.Len(t, stats.OverdueTasks, 3)

	require.Len(t, stats.SlippedDeals, 1)
	assert.Equal(t, "Innovation Labs Consulting", stats.SlippedDeals[0].Name)
	assert.Equal(t, 2, stats.SlippedDeals[0].DaysLate)

	require.Len(t, stats.RecentActivity, 1)
	assert.Equal(t, store.VerbStatusChanged, stats.RecentActivity[0].Verb)
}

func TestRenderDashboard(t *testing.T) {
	ws := store.NewWorkspace(seed.Default())
	stats := GenerateDashboardStats(ws, nil, today)

	out := RenderDashboard(stats, models.USD())
	assert.Contains(t, out, "PIPELINE OVERVIEW")
	assert.Contains(t, out, "$182,000 total")
	assert.Contains(t, out, "negotiation")
	assert.Contains(t, out, "$70,600")
	assert.Contains(t, out, "NEEDS ATTENTION")
	assert.Contains(t, out, "Innovation Labs Consulting")
	assert.NotContains(t, out, "RECENT ACTIVITY")
}

func TestRenderDashboardEmpty(t *testing.T) {
	ws := store.NewWorkspace(store.Seed{})
	out := RenderDashboard(GenerateDashboardStats(ws, activity.NewFeed(5), today), models.USD())
	assert.Contains(t, out, "0 deals")
	assert.NotContains(t, out, "NEEDS ATTENTION")
}

func TestGraphs(t *testing.T) {
	ws := store.NewWorkspace(seed.Default())
	g := NewGraphGenerator(ws, nil)

	dot, err := g.Generate(GraphPipeline)
	require.NoError(t, err)
	assert.Contains(t, dot, "Acme Corp Integration")
	assert.Contains(t, dot, "stage_lead")
	nodes, edges := CountGraph(dot)
	assert.Positive(t, nodes)
	assert.Positive(t, edges)

	dot, err = g.Generate(GraphComplete)
	require.NoError(t, err)
	assert.Contains(t, dot, "Global Systems")
	assert.Contains(t, dot, "task_1")

	_, err = g.Generate("org")
	assert.Error(t, err)
}
