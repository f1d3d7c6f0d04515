package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run on
// every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS templates (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		version     INTEGER NOT NULL CHECK(version > 0),
		status      TEXT NOT NULL DEFAULT 'draft'
		            CHECK(status IN ('draft','active','retired')),
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		UNIQUE(name, version)
	)`,

	`CREATE TABLE IF NOT EXISTS step_definitions (
		template_id     TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
		id              TEXT NOT NULL,
		seq             INTEGER NOT NULL,
		title           TEXT NOT NULL,
		basis           TEXT NOT NULL CHECK(basis IN ('goal','prev')),
		offset_days     INTEGER NOT NULL DEFAULT 0,
		depends_on_json TEXT NOT NULL DEFAULT '[]',
		PRIMARY KEY (template_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS calendars (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		calendar_id TEXT NOT NULL REFERENCES calendars(id) ON DELETE CASCADE,
		date        TEXT NOT NULL,
		name        TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (calendar_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS cases (
		id          TEXT PRIMARY KEY,
		template_id TEXT NOT NULL REFERENCES templates(id),
		title       TEXT NOT NULL,
		goal_date   TEXT NOT NULL,
		calendar_id TEXT NOT NULL REFERENCES calendars(id),
		version     INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS step_instances (
		id            TEXT PRIMARY KEY,
		case_id       TEXT NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
		definition_id TEXT NOT NULL,
		due_date      TEXT,
		locked        INTEGER NOT NULL DEFAULT 0,
		updated_at    TEXT NOT NULL,
		UNIQUE(case_id, definition_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_step_instances_case ON step_instances(case_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cases_template ON cases(template_id)`,
}
