package testutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/casetrack/internal/db"
)

// ErrInjected is returned by FailOnNthExecUoW when Err is nil.
var ErrInjected = errors.New("injected exec failure")

// FailOnNthExecUoW lets rollback tests break a write midway: the FailOn-th
// ExecContext inside the transaction (1-based) returns Err, and everything
// written before it must be rolled back. Reads pass through uncounted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	injected := u.Err
	if injected == nil {
		injected = ErrInjected
	}
	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: injected}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
