package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/casetrack/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory casetrack schema with no calendars,
// templates or cases. It is closed on test cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "opening in-memory casetrack db")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
