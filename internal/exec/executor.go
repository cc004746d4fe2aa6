// Package exec runs statements against the session connection under the
// transaction semantics the REPL promises: autocommit wraps each statement
// in its own transaction, while an explicit BEGIN opens a transaction that
// stays open until the user issues COMMIT or ROLLBACK.
package exec

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/squill/internal/adapter"
	"github.com/leapstack-labs/squill/internal/session"
)

// rowKeywords lead statements that produce rows; anything else is executed
// for its side effect and reports RowsAffected.
var rowKeywords = map[string]bool{
	"select":   true,
	"with":     true,
	"values":   true,
	"show":     true,
	"pragma":   true,
	"explain":  true,
	"describe": true,
	"table":    true,
}

// Executor owns the transaction state for one session connection.
type Executor struct {
	db          *sql.DB
	placeholder func(int) string
	logger      *slog.Logger

	tx *sql.Tx
}

// New returns an executor over the given connection. The placeholder
// function supplies the driver's positional placeholder for the n-th bound
// parameter (1-based).
func New(db *sql.DB, placeholder func(int) string, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{db: db, placeholder: placeholder, logger: logger}
}

// InTransaction reports whether an explicit transaction is open.
func (e *Executor) InTransaction() bool {
	return e.tx != nil
}

// Run executes one statement with the given named parameters. Transaction
// control keywords change the session's transaction mode: BEGIN opens an
// explicit transaction and flips autocommit off; COMMIT and ROLLBACK close
// it and flip autocommit back on. Everything else runs inside the open
// transaction, or in a transaction of its own under autocommit. With
// autocommit off and no transaction open, the first statement opens one
// implicitly; it stays open until COMMIT or ROLLBACK.
func (e *Executor) Run(ctx context.Context, st *session.Settings, query string, params map[string]string) (*adapter.ResultSet, error) {
	keyword := leadingKeyword(query)

	switch keyword {
	case "begin":
		return e.begin(ctx, st)
	case "commit":
		return e.end(st, true)
	case "rollback":
		return e.end(st, false)
	}

	stmt, args := bindNamed(query, params, e.placeholder)
	e.logger.Debug("executing statement",
		slog.String("statement", stmt),
		slog.Int("params", len(args)))

	if e.tx == nil && !st.Autocommit {
		tx, err := e.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", err)
		}
		e.tx = tx
		e.logger.Info("transaction started")
	}

	if e.tx != nil {
		return runStatement(ctx, e.tx, keyword, stmt, args)
	}

	// Autocommit: each statement gets a transaction of its own.
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	rs, err := runStatement(ctx, tx, keyword, stmt, args)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return rs, nil
}

func (e *Executor) begin(ctx context.Context, st *session.Settings) (*adapter.ResultSet, error) {
	if e.tx != nil {
		return nil, fmt.Errorf("a transaction is already in progress")
	}
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	e.tx = tx
	st.Autocommit = false
	e.logger.Info("transaction started")
	return &adapter.ResultSet{RowCount: -1}, nil
}

// end closes the open transaction, committing or rolling back, and
// restores autocommit. Ending with no open transaction is a no-op, like
// COMMIT outside a transaction block.
func (e *Executor) end(st *session.Settings, commit bool) (*adapter.ResultSet, error) {
	st.Autocommit = true
	if e.tx == nil {
		return &adapter.ResultSet{RowCount: -1}, nil
	}
	tx := e.tx
	e.tx = nil

	if commit {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit: %w", err)
		}
		e.logger.Info("transaction committed")
	} else {
		if err := tx.Rollback(); err != nil {
			return nil, fmt.Errorf("failed to roll back: %w", err)
		}
		e.logger.Info("transaction rolled back")
	}
	return &adapter.ResultSet{RowCount: -1}, nil
}

// querier is satisfied by both *sql.Tx and *sql.DB.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func runStatement(ctx context.Context, q querier, keyword, stmt string, args []any) (*adapter.ResultSet, error) {
	if rowKeywords[keyword] {
		rows, err := q.QueryContext(ctx, stmt, args...)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rows.Close() }()
		return adapter.Collect(rows)
	}

	res, err := q.ExecContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		count = -1
	}
	return &adapter.ResultSet{RowCount: count}, nil
}

// leadingKeyword returns the first whitespace-delimited token, lowercased.
func leadingKeyword(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
