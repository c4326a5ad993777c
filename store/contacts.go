// ABOUTME: Contact store operations
// ABOUTME: Handles CRUD, lookups, filtering, and status counts for contacts
package store

import "github.com/harperreed/crmpro/models"

type ContactStore struct {
	notifier
	c *collection[models.Contact]
}

func NewContactStore(seed ...models.Contact) *ContactStore {
	return &ContactStore{
		c: newCollection(func(c *models.Contact) *int { return &c.ID }, seed),
	}
}

// Create assigns the next id and appends the contact. The input id is ignored.
func (s *ContactStore) Create(contact models.Contact) models.Contact {
	created := s.c.create(contact)
	s.emit(Event{Kind: KindContact, Verb: VerbCreated, ID: created.ID, Label: created.Name})
	return created
}

// Update replaces every field of the contact with the given id.
func (s *ContactStore) Update(id int, contact models.Contact) (models.Contact, bool) {
	updated, ok := s.c.update(id, contact)
	if ok {
		s.emit(Event{Kind: KindContact, Verb: VerbUpdated, ID: id, Label: updated.Name})
	}
	return updated, ok
}

// Delete removes the contact with the given id. It is a no-op if the id is absent.
func (s *ContactStore) Delete(id int) bool {
	removed, ok := s.c.remove(id)
	if ok {
		s.emit(Event{Kind: KindContact, Verb: VerbDeleted, ID: id, Label: removed.Name})
	}
	return ok
}

func (s *ContactStore) Find(id int) (models.Contact, bool) {
	return s.c.find(id)
}

// All returns a copy of every contact in insertion order.
func (s *ContactStore) All() []models.Contact {
	return s.c.all()
}

func (s *ContactStore) Len() int {
	return s.c.len()
}

func (s *ContactStore) Filter(f ContactFilter) []models.Contact {
	return s.c.filter(f.Matches)
}

// CountByStatus tallies contacts per status.
func (s *ContactStore) CountByStatus() map[models.ContactStatus]int {
	counts := make(map[models.ContactStatus]int)
	for _, c := range s.c.items {
		counts[c.Status]++
	}
	return counts
}
