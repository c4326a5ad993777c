// ABOUTME: Deal store operations
// ABOUTME: Handles deal lifecycle, stage changes with probability defaults, and pipeline totals
package store

import (
	"fmt"

	"github.com/harperreed/crmpro/models"
)

type DealStore struct {
	notifier
	c *collection[models.Deal]
}

func NewDealStore(seed ...models.Deal) *DealStore {
	return &DealStore{
		c: newCollection(func(d *models.Deal) *int { return &d.ID }, seed),
	}
}

func (s *DealStore) Create(deal models.Deal) models.Deal {
	created := s.c.create(deal)
	s.emit(Event{Kind: KindDeal, Verb: VerbCreated, ID: created.ID, Label: created.Name})
	return created
}

// Update replaces every field of the deal. The probability is stored as given;
// callers that edit the stage use DeriveProbability or ChangeStage.
func (s *DealStore) Update(id int, deal models.Deal) (models.Deal, bool) {
	updated, ok := s.c.update(id, deal)
	if ok {
		s.emit(Event{Kind: KindDeal, Verb: VerbUpdated, ID: id, Label: updated.Name})
	}
	return updated, ok
}

// ChangeStage moves a deal to stage. Unless probability is supplied, the deal
// takes the stage's default probability when the stage actually changes.
func (s *DealStore) ChangeStage(id int, stage models.Stage, probability *int) (models.Deal, bool) {
	var from models.Stage
	updated, ok := s.c.modify(id, func(d *models.Deal) {
		from = d.Stage
		changed := d.Stage != stage
		d.Stage = stage
		if probability != nil {
			d.Probability = *probability
			return
		}
		d.Probability = models.DeriveProbability(stage, d.Probability, changed)
	})
	if ok {
		s.emit(Event{
			Kind:   KindDeal,
			Verb:   VerbStageChanged,
			ID:     id,
			Label:  updated.Name,
			Detail: fmt.Sprintf("%s -> %s", from, stage),
		})
	}
	return updated, ok
}

func (s *DealStore) Delete(id int) bool {
	removed, ok := s.c.remove(id)
	if ok {
		s.emit(Event{Kind: KindDeal, Verb: VerbDeleted, ID: id, Label: removed.Name})
	}
	return ok
}

func (s *DealStore) Find(id int) (models.Deal, bool) {
	return s.c.find(id)
}

func (s *DealStore) All() []models.Deal {
	return s.c.all()
}

func (s *DealStore) Len() int {
	return s.c.len()
}

func (s *DealStore) Filter(f DealFilter) []models.Deal {
	return s.c.filter(f.Matches)
}

// Pipeline summarizes every deal in the store.
func (s *DealStore) Pipeline() Pipeline {
	return PipelineOf(s.c.items)
}
