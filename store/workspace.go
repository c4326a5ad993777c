// ABOUTME: Workspace groups the contact, deal, and task stores of one session
// ABOUTME: Provides cross-store search and serialization for concurrent adapters
package store

import (
	"sync"

	"github.com/harperreed/crmpro/models"
)

// Workspace is the whole in-memory state of a console session. The stores are
// not safe for concurrent use; adapters that dispatch from several goroutines
// hold the embedded mutex around every call.
type Workspace struct {
	sync.Mutex

	Contacts *ContactStore
	Deals    *DealStore
	Tasks    *TaskStore
}

// Seed is the initial content of a workspace.
type Seed struct {
	Contacts []models.Contact `json:"contacts" yaml:"contacts"`
	Deals    []models.Deal    `json:"deals" yaml:"deals"`
	Tasks    []models.Task    `json:"tasks" yaml:"tasks"`
}

func NewWorkspace(seed Seed) *Workspace {
	return &Workspace{
		Contacts: NewContactStore(seed.Contacts...),
		Deals:    NewDealStore(seed.Deals...),
		Tasks:    NewTaskStore(seed.Tasks...),
	}
}

// Observe routes every store's events to o.
func (w *Workspace) Observe(o Observer) {
	w.Contacts.SetObserver(o)
	w.Deals.SetObserver(o)
	w.Tasks.SetObserver(o)
}

// SearchResults holds the matches of a workspace-wide query.
type SearchResults struct {
	Contacts []models.Contact `json:"contacts"`
	Deals    []models.Deal    `json:"deals"`
	Tasks    []models.Task    `json:"tasks"`
}

func (r SearchResults) Len() int {
	return len(r.Contacts) + len(r.Deals) + len(r.Tasks)
}

// Search runs query against each store's searchable fields with no categorical filters.
func (w *Workspace) Search(query string) SearchResults {
	return SearchResults{
		Contacts: w.Contacts.Filter(ContactFilter{Query: query}),
		Deals:    w.Deals.Filter(DealFilter{Query: query}),
		Tasks:    w.Tasks.Filter(TaskFilter{Query: query}),
	}
}
