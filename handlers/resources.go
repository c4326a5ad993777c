// ABOUTME: MCP resource handlers for exposing CRM data
// ABOUTME: Provides read-only access to contacts, deals, tasks, and the pipeline via crm:// URIs
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/crmpro/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ResourceHandlers struct {
	ws    *store.Workspace
	today Clock
}

func NewResourceHandlers(ws *store.Workspace, today Clock) *ResourceHandlers {
	return &ResourceHandlers{ws: ws, today: today}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, "crm://") {
		return nil, fmt.Errorf("invalid URI scheme: expected crm://")
	}

	parts := strings.Split(strings.TrimPrefix(uri, "crm://"), "/")

	h.ws.Lock()
	defer h.ws.Unlock()

	var (
		data any
		err  error
	)
	switch parts[0] {
	case "contacts":
		data, err = h.contacts(parts[1:])
	case "deals":
		data, err = h.deals(parts[1:])
	case "tasks":
		data, err = h.tasks(parts[1:])
	case "pipeline":
		data = h.ws.Deals.Pipeline()
	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
	if err != nil {
		return nil, err
	}

	return jsonResource(uri, data)
}

func (h *ResourceHandlers) contacts(rest []string) (any, error) {
	if len(rest) == 0 {
		out := []ContactOutput{}
		for _, c := range h.ws.Contacts.All() {
			out = append(out, contactToOutput(c))
		}
		return out, nil
	}
	id, err := resourceID(rest[0])
	if err != nil {
		return nil, err
	}
	c, ok := h.ws.Contacts.Find(id)
	if !ok {
		return nil, notFound(store.KindContact, id)
	}
	return contactToOutput(c), nil
}

func (h *ResourceHandlers) deals(rest []string) (any, error) {
	if len(rest) == 0 {
		out := []DealOutput{}
		for _, d := range h.ws.Deals.All() {
			out = append(out, dealToOutput(d))
		}
		return out, nil
	}
	id, err := resourceID(rest[0])
	if err != nil {
		return nil, err
	}
	d, ok := h.ws.Deals.Find(id)
	if !ok {
		return nil, notFound(store.KindDeal, id)
	}
	return dealToOutput(d), nil
}

func (h *ResourceHandlers) tasks(rest []string) (any, error) {
	today := h.today()
	if len(rest) == 0 {
		out := []TaskOutput{}
		for _, t := range h.ws.Tasks.All() {
			out = append(out, taskToOutput(t, today))
		}
		return out, nil
	}
	id, err := resourceID(rest[0])
	if err != nil {
		return nil, err
	}
	t, ok := h.ws.Tasks.Find(id)
	if !ok {
		return nil, notFound(store.KindTask, id)
	}
	return taskToOutput(t, today), nil
}

func resourceID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
