package db

import (
	"context"
	"database/sql"
)

// DBTX is what the case, step, template and calendar repositories query
// through. A *sql.DB gives autocommit reads; the *sql.Tx handed out by
// UnitOfWork.WithinTx makes a replan write all-or-nothing.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
