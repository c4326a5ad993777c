// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, update_contact, delete_contact, and find_contacts tools
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/crmpro/forms"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ContactHandlers struct {
	ws *store.Workspace
}

func NewContactHandlers(ws *store.Workspace) *ContactHandlers {
	return &ContactHandlers{ws: ws}
}

type AddContactInput struct {
	Name     string `json:"name" jsonschema:"Contact's full name (required)"`
	Email    string `json:"email" jsonschema:"Email address (required)"`
	Company  string `json:"company" jsonschema:"Company name (required)"`
	Phone    string `json:"phone,omitempty" jsonschema:"Phone number"`
	Position string `json:"position,omitempty" jsonschema:"Job title"`
	Location string `json:"location,omitempty" jsonschema:"City or region"`
	Status   string `json:"status,omitempty" jsonschema:"Status: active, inactive, prospect (default prospect)"`
}

func (h *ContactHandlers) AddContact(_ context.Context, _ *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	f := forms.NewContactForm()
	f.Name = input.Name
	f.Email = input.Email
	f.Company = input.Company
	f.Phone = input.Phone
	f.Position = input.Position
	f.Location = input.Location
	if input.Status != "" {
		f.Status = models.ContactStatus(input.Status)
	}
	if err := f.Validate(); err != nil {
		return nil, ContactOutput{}, fmt.Errorf("invalid contact: %w", err)
	}

	h.ws.Lock()
	defer h.ws.Unlock()

	return nil, contactToOutput(h.ws.Contacts.Create(f.Contact())), nil
}

// UpdateContactInput replaces only the fields that are set.
type UpdateContactInput struct {
	ID       int    `json:"id" jsonschema:"Contact id (required)"`
	Name     string `json:"name,omitempty" jsonschema:"Updated name"`
	Email    string `json:"email,omitempty" jsonschema:"Updated email"`
	Company  string `json:"company,omitempty" jsonschema:"Updated company"`
	Phone    string `json:"phone,omitempty" jsonschema:"Updated phone"`
	Position string `json:"position,omitempty" jsonschema:"Updated job title"`
	Location string `json:"location,omitempty" jsonschema:"Updated location"`
	Status   string `json:"status,omitempty" jsonschema:"Updated status: active, inactive, prospect"`
}

func (h *ContactHandlers) UpdateContact(_ context.Context, _ *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	h.ws.Lock()
	defer h.ws.Unlock()

	existing, ok := h.ws.Contacts.Find(input.ID)
	if !ok {
		return nil, ContactOutput{}, notFound(store.KindContact, input.ID)
	}

	f := forms.EditContactForm(existing)
	setIf(&f.Name, input.Name)
	setIf(&f.Email, input.Email)
	setIf(&f.Company, input.Company)
	setIf(&f.Phone, input.Phone)
	setIf(&f.Position, input.Position)
	setIf(&f.Location, input.Location)
	if input.Status != "" {
		f.Status = models.ContactStatus(input.Status)
	}
	if err := f.Validate(); err != nil {
		return nil, ContactOutput{}, fmt.Errorf("invalid contact: %w", err)
	}

	updated, _ := h.ws.Contacts.Update(input.ID, f.Contact())
	return nil, contactToOutput(updated), nil
}

func (h *ContactHandlers) DeleteContact(_ context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	h.ws.Lock()
	defer h.ws.Unlock()

	if !h.ws.Contacts.Delete(input.ID) {
		return nil, DeleteOutput{}, notFound(store.KindContact, input.ID)
	}
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}

type FindContactsInput struct {
	Query  string `json:"query,omitempty" jsonschema:"Substring of name, email, or company"`
	Status string `json:"status,omitempty" jsonschema:"Status filter: all, active, inactive, prospect"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum results (default 10)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
	Count    int             `json:"count"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, _ *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	h.ws.Lock()
	contacts := h.ws.Contacts.Filter(store.ContactFilter{Query: input.Query, Status: input.Status})
	h.ws.Unlock()

	out := FindContactsOutput{Contacts: []ContactOutput{}}
	for _, c := range limit(contacts, input.Limit) {
		out.Contacts = append(out.Contacts, contactToOutput(c))
	}
	out.Count = len(out.Contacts)
	return nil, out, nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
