// ABOUTME: Tests for query, search, metrics, viz, resource, and prompt handlers
// ABOUTME: Runs against the sample workspace on a fixed date
package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/harperreed/crmpro/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCRM(t *testing.T) {
	ws, feed := setupTestWorkspace(t)
	handler := NewQueryHandlers(ws, feed, fixedClock, nil)

	_, out, err := handler.QueryCRM(context.Background(), nil, QueryCRMInput{EntityType: "deal", Filters: map[string]string{"stage": "proposal"}})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)

	_, out, err = handler.QueryCRM(context.Background(), nil, QueryCRMInput{EntityType: "task", Filters: map[string]string{"priority": "high"}})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)

	_, out, err = handler.QueryCRM(context.Background(), nil, QueryCRMInput{EntityType: "contact", Query: "techstart"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)

	_, _, err = handler.QueryCRM(context.Background(), nil, QueryCRMInput{EntityType: "company"})
	assert.ErrorContains(t, err, "invalid entity_type")
}

func TestSearchCRM(t *testing.T) {
	ws, feed := setupTestWorkspace(t)
	handler := NewQueryHandlers(ws, feed, fixedClock, nil)

	_, out, err := handler.SearchCRM(context.Background(), nil, SearchCRMInput{Query: "acme"})
	require.NoError(t, err)
	assert.Len(t, out.Contacts, 1)
	assert.Len(t, out.Deals, 1)
	assert.Len(t, out.Tasks, 1)
	assert.Equal(t, 3, out.Total)
}

func TestPipelineMetrics(t *testing.T) {
	ws, feed := setupTestWorkspace(t)
	handler := NewQueryHandlers(ws, feed, fixedClock, models.USD())

	_, out, err := handler.PipelineMetrics(context.Background(), nil, PipelineMetricsInput{})
	require.NoError(t, err)
	assert.InDelta(t, 182000, out.Total, 0.001)
	assert.Equal(t, "$182,000", out.TotalFormatted)
	assert.InDelta(t, 33750+19500+31560+21760, out.Weighted, 0.001)
	assert.Len(t, out.Stages, 6)

	_, out, err = handler.PipelineMetrics(context.Background(), nil, PipelineMetricsInput{Stage: "negotiation"})
	require.NoError(t, err)
	require.Len(t, out.Stages, 1)
	assert.Equal(t, 2, out.Stages[0].Count)

	_, _, err = handler.PipelineMetrics(context.Background(), nil, PipelineMetricsInput{Stage: "nope"})
	assert.Error(t, err)
}

func TestTaskMetrics(t *testing.T) {
	ws, feed := setupTestWorkspace(t)
	handler := NewQueryHandlers(ws, feed, fixedClock, nil)

	_, out, err := handler.TaskMetrics(context.Background(), nil, TaskMetricsInput{})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-17", out.Today)
	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 3, out.Pending)
	assert.Equal(t, 1, out.Completed)
	assert.Equal(t, 1, out.Overdue)
	assert.Equal(t, 2, out.DueSoon)

	_, out, err = handler.TaskMetrics(context.Background(), nil, TaskMetricsInput{Today: "2025-02-01"})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Overdue)
}

func TestRecentActivity(t *testing.T) {
	ws, feed := setupTestWorkspace(t)
	handler := NewQueryHandlers(ws, feed, fixedClock, nil)

	ws.Tasks.ToggleStatus(1)
	ws.Contacts.Delete(4)

	_, out, err := handler.RecentActivity(context.Background(), nil, RecentActivityInput{})
	require.NoError(t, err)
	require.Equal(t, 2, out.Count)
	assert.Equal(t, "deleted", out.Entries[0].Verb)
	assert.Equal(t, "contact", out.Entries[0].Kind)

	_, out, err = NewQueryHandlers(ws, nil, fixedClock, nil).RecentActivity(context.Background(), nil, RecentActivityInput{})
	require.NoError(t, err)
	assert.Zero(t, out.Count)
}

func TestGenerateGraphHandler(t *testing.T) {
	ws, feed := setupTestWorkspace(t)
	handler := NewVizHandlers(ws, feed, fixedClock, nil)

	_, out, err := handler.GenerateGraph(context.Background(), nil, GenerateGraphInput{Type: "pipeline"})
	require.NoError(t, err)
	assert.Contains(t, out.DOTSource, "TechStart Platform License")
	assert.Positive(t, out.NodeCount)

	_, _, err = handler.GenerateGraph(context.Background(), nil, GenerateGraphInput{})
	assert.EqualError(t, err, "type is required")

	_, dash, err := handler.Dashboard(context.Background(), nil, DashboardInput{})
	require.NoError(t, err)
	assert.Contains(t, dash.Text, "PIPELINE OVERVIEW")
}

func TestReadResource(t *testing.T) {
	ws, _ := setupTestWorkspace(t)
	handler := NewResourceHandlers(ws, fixedClock)

	read := func(uri string) (*mcp.ReadResourceResult, error) {
		return handler.ReadResource(context.Background(), &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: uri},
		})
	}

	res, err := read("crm://deals/1")
	require.NoError(t, err)
	var deal DealOutput
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &deal))
	assert.Equal(t, "Acme Corp Integration", deal.Name)

	res, err = read("crm://tasks")
	require.NoError(t, err)
	var tasks []TaskOutput
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &tasks))
	assert.Len(t, tasks, 4)

	_, err = read("crm://pipeline")
	assert.NoError(t, err)

	_, err = read("crm://contacts/99")
	assert.EqualError(t, err, "contact 99 not found")

	_, err = read("http://contacts")
	assert.Error(t, err)

	_, err = read("crm://companies")
	assert.Error(t, err)
}

func TestGetPrompt(t *testing.T) {
	ws, _ := setupTestWorkspace(t)
	handler := NewPromptHandlers(ws, fixedClock, nil)

	get := func(name string, args map[string]string) (*mcp.GetPromptResult, error) {
		return handler.GetPrompt(context.Background(), &mcp.GetPromptRequest{
			Params: &mcp.GetPromptParams{Name: name, Arguments: args},
		})
	}

	res, err := get("contact-summary", map[string]string{"contact_id": "1"})
	require.NoError(t, err)
	text := res.Messages[0].Content.(*mcp.TextContent).Text
	assert.Contains(t, text, "Alice Johnson")
	assert.Contains(t, text, "Acme Corp Integration")

	res, err = get("follow-up-suggestions", nil)
	require.NoError(t, err)
	text = res.Messages[0].Content.(*mcp.TextContent).Text
	assert.Contains(t, text, "[overdue] Follow up with Acme Corp")
	assert.NotContains(t, text, "Send contract")

	_, err = get("deal-analysis", nil)
	assert.NoError(t, err)

	_, err = get("contact-summary", nil)
	assert.Error(t, err)

	_, err = get("nope", nil)
	assert.Error(t, err)
}
