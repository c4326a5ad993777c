// ABOUTME: Tests for contact store operations
// ABOUTME: Covers id assignment, update/delete semantics, and filtering
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/crmpro/models"
)

func newContact(name, email, company string) models.Contact {
	return models.Contact{Name: name, Email: email, Company: company, Status: models.StatusProspect}
}

func TestContactIDsAreNeverReused(t *testing.T) {
	s := NewContactStore()

	first := s.Create(newContact("A", "a@x.com", "X"))
	assert.Equal(t, 1, first.ID)

	second := s.Create(newContact("B", "b@x.com", "X"))
	assert.Equal(t, 2, second.ID)

	assert.True(t, s.Delete(1))
	remaining := s.All()
	require.Len(t, remaining, 1)
	assert.Equal(t, 2, remaining[0].ID)

	third := s.Create(newContact("C", "c@x.com", "X"))
	assert.Equal(t, 3, third.ID)
}

func TestContactIDsSkipDeletedHighest(t *testing.T) {
	s := NewContactStore()
	s.Create(newContact("A", "a@x.com", "X"))
	second := s.Create(newContact("B", "b@x.com", "X"))

	require.True(t, s.Delete(second.ID))
	next := s.Create(newContact("C", "c@x.com", "X"))
	assert.Equal(t, 3, next.ID)
}

func TestContactIDsContinueFromSeed(t *testing.T) {
	s := NewContactStore(
		models.Contact{ID: 4, Name: "Seeded"},
		models.Contact{ID: 9, Name: "Seeded too"},
	)
	created := s.Create(newContact("New", "n@x.com", "X"))
	assert.Equal(t, 10, created.ID)
}

func TestContactCreateIsMonotonic(t *testing.T) {
	s := NewContactStore()
	last := 0
	for i := 0; i < 50; i++ {
		c := s.Create(newContact("N", "n@x.com", "X"))
		assert.Greater(t, c.ID, last)
		last = c.ID
		if i%3 == 0 {
			s.Delete(c.ID)
		}
	}
}

func TestContactUpdatePreservesPositionAndID(t *testing.T) {
	s := NewContactStore()
	s.Create(newContact("A", "a@x.com", "X"))
	s.Create(newContact("B", "b@x.com", "Y"))
	s.Create(newContact("C", "c@x.com", "Z"))

	replacement := newContact("Bee", "bee@y.com", "Y2")
	replacement.ID = 99
	replacement.Status = models.StatusActive

	updated, ok := s.Update(2, replacement)
	require.True(t, ok)
	assert.Equal(t, 2, updated.ID, "id is immutable")

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "Bee", all[1].Name)
	assert.Equal(t, models.StatusActive, all[1].Status)
}

func TestContactUpdateMissingIsNoop(t *testing.T) {
	s := NewContactStore()
	s.Create(newContact("A", "a@x.com", "X"))

	_, ok := s.Update(42, newContact("Ghost", "g@x.com", "G"))
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Delete(42))
	assert.Equal(t, 1, s.Len())
}

func TestContactDeleteThenFind(t *testing.T) {
	s := NewContactStore()
	for i := 0; i < 5; i++ {
		s.Create(newContact("N", "n@x.com", "X"))
	}

	for id := 0; id <= 6; id++ {
		s.Delete(id)
		_, ok := s.Find(id)
		assert.False(t, ok, "id %d", id)
	}
}

func TestContactAllReturnsCopy(t *testing.T) {
	s := NewContactStore()
	s.Create(newContact("A", "a@x.com", "X"))

	all := s.All()
	all[0].Name = "mutated"

	found, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, "A", found.Name)
}

func TestContactFilter(t *testing.T) {
	s := NewContactStore()
	s.Create(models.Contact{Name: "Alice Johnson", Email: "alice@acme.com", Company: "Acme Corp", Status: models.StatusActive})
	s.Create(models.Contact{Name: "Bob Smith", Email: "bob@techstart.io", Company: "TechStart", Status: models.StatusProspect})
	s.Create(models.Contact{Name: "Carol", Email: "carol@globalsys.com", Company: "Global Systems", Status: models.StatusActive})

	tests := []struct {
		name   string
		filter ContactFilter
		want   []string
	}{
		{"empty query matches all", ContactFilter{}, []string{"Alice Johnson", "Bob Smith", "Carol"}},
		{"all sentinel", ContactFilter{Status: models.FilterAll}, []string{"Alice Johnson", "Bob Smith", "Carol"}},
		{"name is case insensitive", ContactFilter{Query: "ALICE"}, []string{"Alice Johnson"}},
		{"email", ContactFilter{Query: "techstart.io"}, []string{"Bob Smith"}},
		{"company", ContactFilter{Query: "global"}, []string{"Carol"}},
		{"status", ContactFilter{Status: "active"}, []string{"Alice Johnson", "Carol"}},
		{"query and status", ContactFilter{Query: "o", Status: "prospect"}, []string{"Bob Smith"}},
		{"no match", ContactFilter{Query: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, c := range s.Filter(tt.filter) {
				got = append(got, c.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, 3, s.Len(), "filtering never mutates the store")
}

func TestContactCountByStatus(t *testing.T) {
	s := NewContactStore(
		models.Contact{ID: 1, Status: models.StatusActive},
		models.Contact{ID: 2, Status: models.StatusActive},
		models.Contact{ID: 3, Status: models.StatusInactive},
	)
	counts := s.CountByStatus()
	assert.Equal(t, 2, counts[models.StatusActive])
	assert.Equal(t, 1, counts[models.StatusInactive])
	assert.Equal(t, 0, counts[models.StatusProspect])
}
