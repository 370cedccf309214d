package testutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/ddtrack/internal/db"
)

// ErrInjected is the default error returned by FailOnNthExecUoW.
var ErrInjected = errors.New("injected exec failure")

// FailOnNthExecUoW runs fn in a real transaction but makes the FailOn-th
// ExecContext call fail, so multi-write operations can be checked for full
// rollback. Reads pass through uncounted. Execs counts the writes attempted
// in the most recent WithinTx call.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error

	Execs int
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
	fnErr := fn(ctx, wrapped)
	u.Execs = wrapped.count
	if fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  int
	failOn int
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.count++
	if f.count == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
