package adapter

import (
	"context"
	"database/sql"
	"log/slog"
)

// base carries the pieces shared by all database/sql backed adapters.
type base struct {
	db       *sql.DB
	logger   *slog.Logger
	database string
}

func (b *base) DB() *sql.DB {
	return b.db
}

func (b *base) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func (b *base) DatabaseName() string {
	return b.database
}

// query runs a catalog query and collects its rows.
func (b *base) query(ctx context.Context, sqlStr string, args ...any) (*ResultSet, error) {
	rows, err := b.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return Collect(rows)
}

func discardIfNil(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
