package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/crmpro/models"
)

func TestWorkspaceSearch(t *testing.T) {
	ws := NewWorkspace(Seed{
		Contacts: []models.Contact{{ID: 1, Name: "Alice Johnson", Email: "alice@acme.com", Company: "Acme Corp"}},
		Deals:    sampleDeals(),
		Tasks:    sampleTasks(),
	})

	res := ws.Search("acme")
	assert.Len(t, res.Contacts, 1)
	assert.Len(t, res.Deals, 1)
	assert.Len(t, res.Tasks, 2)
	assert.Equal(t, 4, res.Len())
}

func TestWorkspaceObserverSeesEveryMutation(t *testing.T) {
	ws := NewWorkspace(Seed{Tasks: sampleTasks(), Deals: sampleDeals()})

	var events []Event
	ws.Observe(ObserverFunc(func(e Event) { events = append(events, e) }))

	c := ws.Contacts.Create(models.Contact{Name: "New"})
	ws.Contacts.Update(c.ID, models.Contact{Name: "Renamed"})
	ws.Tasks.ToggleStatus(1)
	ws.Deals.ChangeStage(1, models.StageClosedWon, nil)
	ws.Deals.Delete(2)
	ws.Deals.Delete(2)

	require.Len(t, events, 5, "a no-op delete emits nothing")
	assert.Equal(t, Event{Kind: KindContact, Verb: VerbCreated, ID: c.ID, Label: "New"}, events[0])
	assert.Equal(t, VerbUpdated, events[1].Verb)
	assert.Equal(t, "Renamed", events[1].Label)
	assert.Equal(t, VerbStatusChanged, events[2].Verb)
	assert.Equal(t, "pending -> in-progress", events[2].Detail)
	assert.Equal(t, VerbStageChanged, events[3].Verb)
	assert.Equal(t, "negotiation -> closed-won", events[3].Detail)
	assert.Equal(t, Event{Kind: KindDeal, Verb: VerbDeleted, ID: 2, Label: "TechStart Platform License"}, events[4])
}
