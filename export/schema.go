// ABOUTME: SQLite schema for reporting snapshots
// ABOUTME: One table per collection plus snapshot metadata and the activity log
package export

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE snapshot (
	id TEXT PRIMARY KEY,
	taken_at DATETIME NOT NULL,
	as_of DATE NOT NULL,
	currency TEXT NOT NULL
);

CREATE TABLE contacts (
	id INTEGER PRIMARY KEY,
	position_index INTEGER NOT NULL,
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	company TEXT,
	position TEXT,
	location TEXT,
	status TEXT NOT NULL CHECK(status IN ('active', 'inactive', 'prospect'))
);

CREATE INDEX idx_contacts_company ON contacts(company);

CREATE TABLE deals (
	id INTEGER PRIMARY KEY,
	position_index INTEGER NOT NULL,
	name TEXT NOT NULL,
	value REAL NOT NULL,
	stage TEXT NOT NULL,
	probability INTEGER NOT NULL CHECK(probability BETWEEN 0 AND 100),
	weighted_value REAL NOT NULL,
	close_date DATE,
	contact TEXT,
	company TEXT,
	description TEXT
);

CREATE INDEX idx_deals_stage ON deals(stage);

CREATE TABLE tasks (
	id INTEGER PRIMARY KEY,
	position_index INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	due_date DATE,
	due_state TEXT,
	priority TEXT NOT NULL CHECK(priority IN ('low', 'medium', 'high')),
	status TEXT NOT NULL CHECK(status IN ('pending', 'in-progress', 'completed')),
	assignee TEXT,
	related_contact TEXT,
	related_deal TEXT
);

CREATE INDEX idx_tasks_due_date ON tasks(due_date);

CREATE TABLE activity (
	id TEXT PRIMARY KEY,
	at DATETIME NOT NULL,
	kind TEXT NOT NULL,
	verb TEXT NOT NULL,
	object_id INTEGER NOT NULL,
	label TEXT,
	detail TEXT
);
`

func initSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
