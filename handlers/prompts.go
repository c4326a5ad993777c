// ABOUTME: MCP prompt handlers for reusable CRM workflow templates
// ABOUTME: Provides contact summary, deal analysis, and follow-up prompts built from live data
package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PromptHandlers struct {
	ws    *store.Workspace
	today Clock
	money *models.Money
}

func NewPromptHandlers(ws *store.Workspace, today Clock, money *models.Money) *PromptHandlers {
	if money == nil {
		money = models.USD()
	}
	return &PromptHandlers{ws: ws, today: today, money: money}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(_ context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	h.ws.Lock()
	defer h.ws.Unlock()

	switch request.Params.Name {
	case "contact-summary":
		return h.contactSummary(request.Params.Arguments)
	case "deal-analysis":
		return h.dealAnalysis()
	case "follow-up-suggestions":
		return h.followUps()
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) contactSummary(args map[string]string) (*mcp.GetPromptResult, error) {
	idStr, ok := args["contact_id"]
	if !ok {
		return nil, fmt.Errorf("contact_id is required")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid contact_id: %w", err)
	}
	contact, ok := h.ws.Contacts.Find(id)
	if !ok {
		return nil, notFound(store.KindContact, id)
	}

	deals := h.ws.Deals.Filter(store.DealFilter{Query: contact.Name})
	tasks := h.ws.Tasks.Filter(store.TaskFilter{Query: contact.Name})

	var text strings.Builder
	text.WriteString("Please provide a comprehensive summary of this contact:\n\n")
	fmt.Fprintf(&text, "Name: %s\n", contact.Name)
	fmt.Fprintf(&text, "Email: %s\n", contact.Email)
	if contact.Phone != "" {
		fmt.Fprintf(&text, "Phone: %s\n", contact.Phone)
	}
	fmt.Fprintf(&text, "Company: %s\n", contact.Company)
	if contact.Position != "" {
		fmt.Fprintf(&text, "Position: %s\n", contact.Position)
	}
	fmt.Fprintf(&text, "Status: %s\n", contact.Status)
	if len(deals) > 0 {
		text.WriteString("\nDeals:\n")
		for _, d := range deals {
			fmt.Fprintf(&text, "  - %s: %s, %s (%d%%)\n", d.Name, h.money.Format(d.Value), d.Stage, d.Probability)
		}
	}
	if len(tasks) > 0 {
		text.WriteString("\nTasks:\n")
		for _, t := range tasks {
			fmt.Fprintf(&text, "  - %s (due %s, %s)\n", t.Title, t.DueDate, t.Status)
		}
	}

	text.WriteString("\nPlease analyze this contact and provide:")
	text.WriteString("\n1. A brief summary of their role and background")
	text.WriteString("\n2. Recommendations for next steps or follow-up actions")

	return userPrompt(fmt.Sprintf("Summary for contact: %s", contact.Name), text.String()), nil
}

func (h *PromptHandlers) dealAnalysis() (*mcp.GetPromptResult, error) {
	p := h.ws.Deals.Pipeline()

	var text strings.Builder
	text.WriteString("Please analyze the current deal pipeline:\n\n")
	fmt.Fprintf(&text, "Total Deals: %d\n", p.Count)
	fmt.Fprintf(&text, "Total Value: %s\n", h.money.Format(p.Total))
	fmt.Fprintf(&text, "Weighted Value: %s\n\n", h.money.Format(p.Weighted))
	text.WriteString("Pipeline by Stage:\n")
	for _, s := range p.Stages {
		fmt.Fprintf(&text, "  - %s: %d deals, %s\n", s.Stage, s.Count, h.money.Format(s.Value))
	}

	text.WriteString("\nPlease provide:")
	text.WriteString("\n1. Analysis of pipeline health and distribution")
	text.WriteString("\n2. Recommendations for deals that may need attention")
	text.WriteString("\n3. Suggestions for improving conversion rates")

	return userPrompt("Deal pipeline analysis", text.String()), nil
}

func (h *PromptHandlers) followUps() (*mcp.GetPromptResult, error) {
	today := h.today()

	var text strings.Builder
	fmt.Fprintf(&text, "Today is %s. These open tasks need attention:\n\n", today)
	count := 0
	for _, t := range h.ws.Tasks.All() {
		state := models.Classify(t, today)
		if state != models.DueOverdue && state != models.DueSoon {
			continue
		}
		count++
		fmt.Fprintf(&text, "  - [%s] %s (due %s, %s priority, %s)\n", state, t.Title, t.DueDate, t.Priority, t.Assignee)
	}
	if count == 0 {
		text.WriteString("  (none)\n")
	}
	text.WriteString("\nSuggest an order to tackle them and a short follow-up message for each.")

	return userPrompt("Follow-up suggestions", text.String()), nil
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
