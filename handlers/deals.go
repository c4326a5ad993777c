// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements add_deal, update_deal, change_deal_stage, delete_deal, and find_deals tools
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/crmpro/forms"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type DealHandlers struct {
	ws    *store.Workspace
	today Clock
}

func NewDealHandlers(ws *store.Workspace, today Clock) *DealHandlers {
	return &DealHandlers{ws: ws, today: today}
}

type AddDealInput struct {
	Name        string  `json:"name" jsonschema:"Deal name (required)"`
	Value       float64 `json:"value,omitempty" jsonschema:"Deal value in whole currency units"`
	Stage       string  `json:"stage,omitempty" jsonschema:"Stage: lead, qualified, proposal, negotiation, closed-won, closed-lost (default lead)"`
	Probability *int    `json:"probability,omitempty" jsonschema:"Win probability 0-100 (default depends on stage)"`
	CloseDate   string  `json:"close_date,omitempty" jsonschema:"Expected close date YYYY-MM-DD (default 30 days out)"`
	Contact     string  `json:"contact" jsonschema:"Contact name (required)"`
	Company     string  `json:"company" jsonschema:"Company name (required)"`
	Description string  `json:"description,omitempty" jsonschema:"Free text description"`
}

func (h *DealHandlers) AddDeal(_ context.Context, _ *mcp.CallToolRequest, input AddDealInput) (*mcp.CallToolResult, DealOutput, error) {
	f := forms.NewDealForm(h.today())
	f.Name = input.Name
	f.Value = input.Value
	f.Contact = input.Contact
	f.Company = input.Company
	f.Description = input.Description
	if input.Stage != "" {
		f.SetStage(models.Stage(input.Stage))
	}
	if input.Probability != nil {
		f.SetProbability(*input.Probability)
	}
	if input.CloseDate != "" {
		d, err := parseDate("close_date", input.CloseDate)
		if err != nil {
			return nil, DealOutput{}, err
		}
		f.CloseDate = d
	}
	if err := f.Validate(); err != nil {
		return nil, DealOutput{}, fmt.Errorf("invalid deal: %w", err)
	}

	h.ws.Lock()
	defer h.ws.Unlock()

	return nil, dealToOutput(h.ws.Deals.Create(f.Deal())), nil
}

// UpdateDealInput replaces only the fields that are set. A stage change resets
// the probability to the stage default unless probability is also given.
type UpdateDealInput struct {
	ID          int      `json:"id" jsonschema:"Deal id (required)"`
	Name        string   `json:"name,omitempty" jsonschema:"Updated name"`
	Value       *float64 `json:"value,omitempty" jsonschema:"Updated value"`
	Stage       string   `json:"stage,omitempty" jsonschema:"Updated stage"`
	Probability *int     `json:"probability,omitempty" jsonschema:"Updated probability 0-100"`
	CloseDate   string   `json:"close_date,omitempty" jsonschema:"Updated close date YYYY-MM-DD"`
	Contact     string   `json:"contact,omitempty" jsonschema:"Updated contact name"`
	Company     string   `json:"company,omitempty" jsonschema:"Updated company name"`
	Description string   `json:"description,omitempty" jsonschema:"Updated description"`
}

func (h *DealHandlers) UpdateDeal(_ context.Context, _ *mcp.CallToolRequest, input UpdateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	closeDate, err := parseDate("close_date", input.CloseDate)
	if err != nil {
		return nil, DealOutput{}, err
	}

	h.ws.Lock()
	defer h.ws.Unlock()

	existing, ok := h.ws.Deals.Find(input.ID)
	if !ok {
		return nil, DealOutput{}, notFound(store.KindDeal, input.ID)
	}

	f := forms.EditDealForm(existing)
	setIf(&f.Name, input.Name)
	setIf(&f.Contact, input.Contact)
	setIf(&f.Company, input.Company)
	setIf(&f.Description, input.Description)
	if input.Value != nil {
		f.Value = *input.Value
	}
	if input.Stage != "" {
		f.SetStage(models.Stage(input.Stage))
	}
	if input.Probability != nil {
		f.SetProbability(*input.Probability)
	}
	if !closeDate.IsZero() {
		f.CloseDate = closeDate
	}
	if err := f.Validate(); err != nil {
		return nil, DealOutput{}, fmt.Errorf("invalid deal: %w", err)
	}

	updated, _ := h.ws.Deals.Update(input.ID, f.Deal())
	return nil, dealToOutput(updated), nil
}

type ChangeDealStageInput struct {
	ID          int    `json:"id" jsonschema:"Deal id (required)"`
	Stage       string `json:"stage" jsonschema:"New stage (required)"`
	Probability *int   `json:"probability,omitempty" jsonschema:"Explicit probability; omit to use the stage default"`
}

func (h *DealHandlers) ChangeDealStage(_ context.Context, _ *mcp.CallToolRequest, input ChangeDealStageInput) (*mcp.CallToolResult, DealOutput, error) {
	stage := models.Stage(input.Stage)
	if !stage.Valid() {
		return nil, DealOutput{}, fmt.Errorf("invalid stage: %s (valid: lead, qualified, proposal, negotiation, closed-won, closed-lost)", input.Stage)
	}
	if p := input.Probability; p != nil && (*p < 0 || *p > 100) {
		return nil, DealOutput{}, fmt.Errorf("probability %d is outside 0-100", *p)
	}

	h.ws.Lock()
	defer h.ws.Unlock()

	deal, ok := h.ws.Deals.ChangeStage(input.ID, stage, input.Probability)
	if !ok {
		return nil, DealOutput{}, notFound(store.KindDeal, input.ID)
	}
	return nil, dealToOutput(deal), nil
}

func (h *DealHandlers) DeleteDeal(_ context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	h.ws.Lock()
	defer h.ws.Unlock()

	if !h.ws.Deals.Delete(input.ID) {
		return nil, DeleteOutput{}, notFound(store.KindDeal, input.ID)
	}
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}

type FindDealsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Substring of deal name, company, or contact"`
	Stage string `json:"stage,omitempty" jsonschema:"Stage filter (all or a stage name)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum results (default 10)"`
}

type FindDealsOutput struct {
	Deals []DealOutput `json:"deals"`
	Count int          `json:"count"`
}

func (h *DealHandlers) FindDeals(_ context.Context, _ *mcp.CallToolRequest, input FindDealsInput) (*mcp.CallToolResult, FindDealsOutput, error) {
	h.ws.Lock()
	deals := h.ws.Deals.Filter(store.DealFilter{Query: input.Query, Stage: input.Stage})
	h.ws.Unlock()

	out := FindDealsOutput{Deals: []DealOutput{}}
	for _, d := range limit(deals, input.Limit) {
		out.Deals = append(out.Deals, dealToOutput(d))
	}
	out.Count = len(out.Deals)
	return nil, out, nil
}
