// ABOUTME: GraphViz visualization and dashboard MCP handlers
// ABOUTME: Provides generate_graph and dashboard tools for agents
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/crmpro/activity"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
	"github.com/harperreed/crmpro/viz"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type VizHandlers struct {
	ws    *store.Workspace
	feed  *activity.Feed
	today Clock
	money *models.Money
}

func NewVizHandlers(ws *store.Workspace, feed *activity.Feed, today Clock, money *models.Money) *VizHandlers {
	if money == nil {
		money = models.USD()
	}
	return &VizHandlers{ws: ws, feed: feed, today: today, money: money}
}

type GenerateGraphInput struct {
	Type string `json:"type" jsonschema:"Graph type: pipeline or all"`
}

type GenerateGraphOutput struct {
	GraphType string `json:"graph_type"`
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) GenerateGraph(_ context.Context, _ *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	if input.Type == "" {
		return nil, GenerateGraphOutput{}, fmt.Errorf("type is required")
	}

	h.ws.Lock()
	dot, err := viz.NewGraphGenerator(h.ws, h.money).Generate(viz.GraphType(input.Type))
	h.ws.Unlock()
	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	nodes, edges := viz.CountGraph(dot)
	return nil, GenerateGraphOutput{
		GraphType: input.Type,
		DOTSource: dot,
		NodeCount: nodes,
		EdgeCount: edges,
	}, nil
}

type DashboardInput struct{}

type DashboardOutput struct {
	Text string `json:"text"`
}

func (h *VizHandlers) Dashboard(_ context.Context, _ *mcp.CallToolRequest, _ DashboardInput) (*mcp.CallToolResult, DashboardOutput, error) {
	h.ws.Lock()
	stats := viz.GenerateDashboardStats(h.ws, h.feed, h.today())
	h.ws.Unlock()

	return nil, DashboardOutput{Text: viz.RenderDashboard(stats, h.money)}, nil
}
