// ABOUTME: Tests for the built-in sample rows and YAML fixture parsing
// ABOUTME: Checks id assignment, enum defaults, and rejection of unknown values
package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	require.Len(t, s.Contacts, 4)
	require.Len(t, s.Deals, 4)
	require.Len(t, s.Tasks, 4)

	ws := store.NewWorkspace(s)
	p := ws.Deals.Pipeline()
	assert.InDelta(t, 182000, p.Total, 0.001)

	created := ws.Contacts.Create(models.Contact{Name: "Erin"})
	assert.Equal(t, 5, created.ID)
}

func TestParseFixture(t *testing.T) {
	fixture := `
contacts:
  - name: Erin Lee
    email: erin@example.com
    company: Example
  - id: 7
    name: Frank
    email: frank@example.com
    company: Example
    status: active
deals:
  - name: Example Pilot
    value: 12000
    stage: proposal
    probability: 50
    close_date: 2025-04-01
    contact: Erin Lee
    company: Example
tasks:
  - title: Kickoff call
    due_date: 2025-03-01
    assignee: John Doe
    related_deal: Example Pilot
`
	s, err := Parse([]byte(fixture))
	require.NoError(t, err)

	require.Len(t, s.Contacts, 2)
	assert.Equal(t, 8, s.Contacts[0].ID)
	assert.Equal(t, models.StatusProspect, s.Contacts[0].Status)
	assert.Equal(t, 7, s.Contacts[1].ID)

	require.Len(t, s.Deals, 1)
	assert.Equal(t, 1, s.Deals[0].ID)
	assert.Equal(t, models.MustParseDate("2025-04-01"), s.Deals[0].CloseDate)

	require.Len(t, s.Tasks, 1)
	task := s.Tasks[0]
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, models.TaskPending, task.Status)
	assert.Nil(t, task.RelatedContact)
	require.NotNil(t, task.RelatedDeal)
	assert.Equal(t, "Example Pilot", *task.RelatedDeal)
}

func TestParseRejectsBadValues(t *testing.T) {
	_, err := Parse([]byte("deals:\n  - name: X\n    stage: won\n"))
	assert.ErrorContains(t, err, "unknown stage")

	_, err = Parse([]byte("tasks:\n  - title: X\n    priority: urgent\n"))
	assert.ErrorContains(t, err, "unknown priority")

	_, err = Parse([]byte("contacts:\n  - name: X\n    nickname: y\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("deals:\n  - name: X\n    close_date: tomorrow\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("deals:\n  - name: X\n    value: -5\n"))
	assert.ErrorContains(t, err, "negative value")

	_, err = Parse([]byte("tasks:\n  - id: -2\n    title: X\n"))
	assert.ErrorContains(t, err, "task -2: negative id")
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	fixture := `
contacts:
  - id: 1
    name: A
  - id: 1
    name: B
deals:
  - id: 3
    name: X
  - name: Y
  - id: 3
    name: Z
`
	_, err := Parse([]byte(fixture))
	require.Error(t, err)
	assert.ErrorContains(t, err, "contact 1: duplicate id")
	assert.ErrorContains(t, err, "deal 3: duplicate id")

	// Same id in different collections is fine.
	s, err := Parse([]byte("contacts:\n  - id: 1\n    name: A\ndeals:\n  - id: 1\n    name: X\n"))
	require.NoError(t, err)

	ws := store.NewWorkspace(s)
	require.True(t, ws.Contacts.Delete(1))
	_, ok := ws.Contacts.Find(1)
	assert.False(t, ok)
	assert.Equal(t, 0, ws.Contacts.Len())
}

func TestParseEmpty(t *testing.T) {
	s, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, s.Contacts)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("contacts:\n  - name: Solo\n    email: s@x.io\n    company: X\n"), 0600))

	s, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, s.Contacts, 1)
	assert.Equal(t, 1, s.Contacts[0].ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
