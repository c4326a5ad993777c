// ABOUTME: One-way SQLite snapshot of the workspace for reporting
// ABOUTME: Writes a fresh file tagged with a uuid; snapshots are never read back
package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/crmpro/activity"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
	_ "github.com/mattn/go-sqlite3"
)

// ErrExists is returned when the target file is present and Overwrite is off.
var ErrExists = errors.New("snapshot file already exists")

type Options struct {
	// Today classifies tasks in the due_state column.
	Today models.Date
	// Currency is recorded in the snapshot row.
	Currency string
	// Feed, when set, is copied into the activity table.
	Feed *activity.Feed
	// Overwrite replaces an existing file.
	Overwrite bool
}

// Snapshot describes a written file.
type Snapshot struct {
	ID       uuid.UUID
	Path     string
	TakenAt  time.Time
	Contacts int
	Deals    int
	Tasks    int
	Activity int
}

// WriteSQLite writes every collection of ws to a new SQLite database at path.
// Callers sharing ws across goroutines must hold its lock.
func WriteSQLite(ctx context.Context, path string, ws *store.Workspace, opts Options) (*Snapshot, error) {
	if _, err := os.Stat(path); err == nil {
		if !opts.Overwrite {
			return nil, fmt.Errorf("%s: %w", path, ErrExists)
		}
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("failed to remove old snapshot: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	if err := initSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	if opts.Today.IsZero() {
		opts.Today = models.Today(time.Local)
	}
	if opts.Currency == "" {
		opts.Currency = "USD"
	}

	snap := &Snapshot{
		ID:      uuid.New(),
		Path:    path,
		TakenAt: time.Now().UTC(),
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot (id, taken_at, as_of, currency) VALUES (?, ?, ?, ?)`,
		snap.ID.String(), snap.TakenAt, opts.Today.String(), opts.Currency); err != nil {
		return nil, fmt.Errorf("failed to write snapshot row: %w", err)
	}

	if snap.Contacts, err = writeContacts(ctx, tx, ws.Contacts.All()); err != nil {
		return nil, err
	}
	if snap.Deals, err = writeDeals(ctx, tx, ws.Deals.All()); err != nil {
		return nil, err
	}
	if snap.Tasks, err = writeTasks(ctx, tx, ws.Tasks.All(), opts.Today); err != nil {
		return nil, err
	}
	if opts.Feed != nil {
		if snap.Activity, err = writeActivity(ctx, tx, opts.Feed.Recent(0)); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return snap, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func writeContacts(ctx context.Context, tx *sql.Tx, contacts []models.Contact) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO contacts (id, position_index, name, email, phone, company, position, location, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare contacts insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, c := range contacts {
		if _, err := stmt.ExecContext(ctx, c.ID, i, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone),
			nullIfEmpty(c.Company), nullIfEmpty(c.Position), nullIfEmpty(c.Location), string(c.Status)); err != nil {
			return 0, fmt.Errorf("failed to write contact %d: %w", c.ID, err)
		}
	}
	return len(contacts), nil
}

func writeDeals(ctx context.Context, tx *sql.Tx, deals []models.Deal) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO deals (id, position_index, name, value, stage, probability, weighted_value, close_date, contact, company, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare deals insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, d := range deals {
		if _, err := stmt.ExecContext(ctx, d.ID, i, d.Name, d.Value, string(d.Stage), d.Probability, d.Weighted(),
			nullIfEmpty(d.CloseDate.String()), nullIfEmpty(d.Contact), nullIfEmpty(d.Company), nullIfEmpty(d.Description)); err != nil {
			return 0, fmt.Errorf("failed to write deal %d: %w", d.ID, err)
		}
	}
	return len(deals), nil
}

func writeTasks(ctx context.Context, tx *sql.Tx, tasks []models.Task, today models.Date) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, position_index, title, description, due_date, due_state, priority, status, assignee, related_contact, related_deal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare tasks insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, t := range tasks {
		if _, err := stmt.ExecContext(ctx, t.ID, i, t.Title, nullIfEmpty(t.Description), nullIfEmpty(t.DueDate.String()),
			nullIfEmpty(string(models.Classify(t, today))), string(t.Priority), string(t.Status), nullIfEmpty(t.Assignee),
			t.RelatedContact, t.RelatedDeal); err != nil {
			return 0, fmt.Errorf("failed to write task %d: %w", t.ID, err)
		}
	}
	return len(tasks), nil
}

func writeActivity(ctx context.Context, tx *sql.Tx, entries []activity.Entry) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO activity (id, at, kind, verb, object_id, label, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare activity insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.ID, e.At.UTC(), string(e.Kind), string(e.Verb), e.Object,
			e.Label, nullIfEmpty(e.Detail)); err != nil {
			return 0, fmt.Errorf("failed to write activity %s: %w", e.ID, err)
		}
	}
	return len(entries), nil
}
