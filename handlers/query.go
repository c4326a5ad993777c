// ABOUTME: Query, search, and metrics tool handlers
// ABOUTME: Implements query_crm, search_crm, pipeline_metrics, task_metrics, and recent_activity
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/crmpro/activity"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type QueryHandlers struct {
	ws    *store.Workspace
	feed  *activity.Feed
	today Clock
	money *models.Money
}

func NewQueryHandlers(ws *store.Workspace, feed *activity.Feed, today Clock, money *models.Money) *QueryHandlers {
	if money == nil {
		money = models.USD()
	}
	return &QueryHandlers{ws: ws, feed: feed, today: today, money: money}
}

type QueryCRMInput struct {
	EntityType string            `json:"entity_type" jsonschema:"Type of entity to query (contact, deal, task)"`
	Query      string            `json:"query,omitempty" jsonschema:"Case-insensitive substring of the searchable fields"`
	Filters    map[string]string `json:"filters,omitempty" jsonschema:"Categorical filters: status (contact, task), stage (deal), priority (task)"`
	Limit      int               `json:"limit,omitempty" jsonschema:"Maximum results to return (default 10)"`
}

type QueryCRMOutput struct {
	EntityType string `json:"entity_type"`
	Results    []any  `json:"results"`
	Count      int    `json:"count"`
}

func (h *QueryHandlers) QueryCRM(_ context.Context, _ *mcp.CallToolRequest, input QueryCRMInput) (*mcp.CallToolResult, QueryCRMOutput, error) {
	out := QueryCRMOutput{EntityType: input.EntityType, Results: []any{}}
	today := h.today()

	h.ws.Lock()
	defer h.ws.Unlock()

	switch store.Kind(input.EntityType) {
	case store.KindContact:
		f := store.ContactFilter{Query: input.Query, Status: input.Filters["status"]}
		for _, c := range limit(h.ws.Contacts.Filter(f), input.Limit) {
			out.Results = append(out.Results, contactToOutput(c))
		}
	case store.KindDeal:
		f := store.DealFilter{Query: input.Query, Stage: input.Filters["stage"]}
		for _, d := range limit(h.ws.Deals.Filter(f), input.Limit) {
			out.Results = append(out.Results, dealToOutput(d))
		}
	case store.KindTask:
		f := store.TaskFilter{Query: input.Query, Status: input.Filters["status"], Priority: input.Filters["priority"]}
		for _, t := range limit(h.ws.Tasks.Filter(f), input.Limit) {
			out.Results = append(out.Results, taskToOutput(t, today))
		}
	default:
		return nil, QueryCRMOutput{}, fmt.Errorf("invalid entity_type: %s (valid: contact, deal, task)", input.EntityType)
	}

	out.Count = len(out.Results)
	return nil, out, nil
}

type SearchCRMInput struct {
	Query string `json:"query" jsonschema:"Text to look for across contacts, deals, and tasks"`
}

type SearchCRMOutput struct {
	Contacts []ContactOutput `json:"contacts"`
	Deals    []DealOutput    `json:"deals"`
	Tasks    []TaskOutput    `json:"tasks"`
	Total    int             `json:"total"`
}

func (h *QueryHandlers) SearchCRM(_ context.Context, _ *mcp.CallToolRequest, input SearchCRMInput) (*mcp.CallToolResult, SearchCRMOutput, error) {
	today := h.today()

	h.ws.Lock()
	res := h.ws.Search(input.Query)
	h.ws.Unlock()

	out := SearchCRMOutput{
		Contacts: []ContactOutput{},
		Deals:    []DealOutput{},
		Tasks:    []TaskOutput{},
		Total:    res.Len(),
	}
	for _, c := range res.Contacts {
		out.Contacts = append(out.Contacts, contactToOutput(c))
	}
	for _, d := range res.Deals {
		out.Deals = append(out.Deals, dealToOutput(d))
	}
	for _, t := range res.Tasks {
		out.Tasks = append(out.Tasks, taskToOutput(t, today))
	}
	return nil, out, nil
}

type PipelineMetricsInput struct {
	Stage string `json:"stage,omitempty" jsonschema:"Restrict the breakdown to one stage"`
}

type StageOutput struct {
	Stage    string  `json:"stage"`
	Count    int     `json:"count"`
	Value    float64 `json:"value"`
	Weighted float64 `json:"weighted"`
}

type PipelineMetricsOutput struct {
	Total             float64       `json:"total"`
	Weighted          float64       `json:"weighted"`
	TotalFormatted    string        `json:"total_formatted"`
	WeightedFormatted string        `json:"weighted_formatted"`
	Count             int           `json:"count"`
	Stages            []StageOutput `json:"stages"`
}

func (h *QueryHandlers) PipelineMetrics(_ context.Context, _ *mcp.CallToolRequest, input PipelineMetricsInput) (*mcp.CallToolResult, PipelineMetricsOutput, error) {
	if input.Stage != "" && !models.Stage(input.Stage).Valid() {
		return nil, PipelineMetricsOutput{}, fmt.Errorf("invalid stage: %s", input.Stage)
	}

	h.ws.Lock()
	p := h.ws.Deals.Pipeline()
	h.ws.Unlock()

	out := PipelineMetricsOutput{
		Total:             p.Total,
		Weighted:          p.Weighted,
		TotalFormatted:    h.money.Format(p.Total),
		WeightedFormatted: h.money.Format(p.Weighted),
		Count:             p.Count,
		Stages:            []StageOutput{},
	}
	for _, s := range p.Stages {
		if input.Stage != "" && string(s.Stage) != input.Stage {
			continue
		}
		out.Stages = append(out.Stages, StageOutput{
			Stage:    string(s.Stage),
			Count:    s.Count,
			Value:    s.Value,
			Weighted: s.Weighted,
		})
	}
	return nil, out, nil
}

type TaskMetricsInput struct {
	Today string `json:"today,omitempty" jsonschema:"Reference date YYYY-MM-DD (default today)"`
}

type TaskMetricsOutput struct {
	Today     string `json:"today"`
	Total     int    `json:"total"`
	Pending   int    `json:"pending"`
	Completed int    `json:"completed"`
	Overdue   int    `json:"overdue"`
	DueSoon   int    `json:"due_soon"`
}

func (h *QueryHandlers) TaskMetrics(_ context.Context, _ *mcp.CallToolRequest, input TaskMetricsInput) (*mcp.CallToolResult, TaskMetricsOutput, error) {
	today, err := parseDate("today", input.Today)
	if err != nil {
		return nil, TaskMetricsOutput{}, err
	}
	if today.IsZero() {
		today = h.today()
	}

	h.ws.Lock()
	stats := h.ws.Tasks.Stats(today)
	h.ws.Unlock()

	return nil, TaskMetricsOutput{
		Today:     today.String(),
		Total:     stats.Total,
		Pending:   stats.Pending,
		Completed: stats.Completed,
		Overdue:   stats.Overdue,
		DueSoon:   stats.DueSoon,
	}, nil
}

type RecentActivityInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum entries (default 10)"`
}

type ActivityOutput struct {
	ID      string `json:"id"`
	At      string `json:"at"`
	Summary string `json:"summary"`
	Kind    string `json:"kind"`
	Verb    string `json:"verb"`
	Object  int    `json:"object_id"`
}

type RecentActivityOutput struct {
	Entries []ActivityOutput `json:"entries"`
	Count   int              `json:"count"`
}

func (h *QueryHandlers) RecentActivity(_ context.Context, _ *mcp.CallToolRequest, input RecentActivityInput) (*mcp.CallToolResult, RecentActivityOutput, error) {
	out := RecentActivityOutput{Entries: []ActivityOutput{}}
	if h.feed == nil {
		return nil, out, nil
	}

	n := input.Limit
	if n <= 0 {
		n = DefaultLimit
	}

	h.ws.Lock()
	entries := h.feed.Recent(n)
	h.ws.Unlock()

	for _, e := range entries {
		out.Entries = append(out.Entries, ActivityOutput{
			ID:      e.ID,
			At:      e.At.Format("2006-01-02T15:04:05Z07:00"),
			Summary: e.Summary(),
			Kind:    string(e.Kind),
			Verb:    string(e.Verb),
			Object:  e.Object,
		})
	}
	out.Count = len(out.Entries)
	return nil, out, nil
}
