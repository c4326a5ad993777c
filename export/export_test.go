// ABOUTME: Tests for SQLite snapshot export
// ABOUTME: Writes the sample workspace and reads it back with plain SQL
package export

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/crmpro/activity"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/seed"
	"github.com/harperreed/crmpro/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = models.MustParseDate("2025-01-17")

func TestWriteSQLite(t *testing.T) {
	ws := store.NewWorkspace(seed.Default())
	feed := activity.NewFeed(0)
	ws.Observe(feed)
	ws.Tasks.ToggleStatus(3)

	path := filepath.Join(t.TempDir(), "reports", "snap.db")
	snap, err := WriteSQLite(context.Background(), path, ws, Options{Today: today, Feed: feed})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, snap.ID)
	assert.Equal(t, 4, snap.Contacts)
	assert.Equal(t, 4, snap.Deals)
	assert.Equal(t, 4, snap.Tasks)
	assert.Equal(t, 1, snap.Activity)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var id, asOf, currency string
	require.NoError(t, db.QueryRow(`SELECT id, as_of, currency FROM snapshot`).Scan(&id, &asOf, &currency))
	assert.Equal(t, snap.ID.String(), id)
	assert.Equal(t, "2025-01-17", asOf)
	assert.Equal(t, "USD", currency)

	var weighted float64
	require.NoError(t, db.QueryRow(`SELECT SUM(weighted_value) FROM deals`).Scan(&weighted))
	assert.InDelta(t, 106570, weighted, 0.001)

	var status, dueState string
	require.NoError(t, db.QueryRow(`SELECT status, due_state FROM tasks WHERE id = 3`).Scan(&status, &dueState))
	assert.Equal(t, "in-progress", status)
	assert.Equal(t, "due-soon", dueState)

	var overdue int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE due_state = 'overdue'`).Scan(&overdue))
	assert.Equal(t, 1, overdue)
}

func TestWriteSQLiteNullRelations(t *testing.T) {
	ws := store.NewWorkspace(store.Seed{})
	ws.Tasks.Create(models.Task{Title: "Loose end", Priority: models.PriorityLow, Status: models.TaskPending})

	path := filepath.Join(t.TempDir(), "snap.db")
	_, err := WriteSQLite(context.Background(), path, ws, Options{Today: today})
	require.NoError(t, err)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var related sql.NullString
	require.NoError(t, db.QueryRow(`SELECT related_contact FROM tasks WHERE id = 1`).Scan(&related))
	assert.False(t, related.Valid)
}

func TestWriteSQLiteRefusesExisting(t *testing.T) {
	ws := store.NewWorkspace(seed.Default())
	path := filepath.Join(t.TempDir(), "snap.db")

	first, err := WriteSQLite(context.Background(), path, ws, Options{Today: today})
	require.NoError(t, err)

	_, err = WriteSQLite(context.Background(), path, ws, Options{Today: today})
	assert.ErrorIs(t, err, ErrExists)

	second, err := WriteSQLite(context.Background(), path, ws, Options{Today: today, Overwrite: true})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}
