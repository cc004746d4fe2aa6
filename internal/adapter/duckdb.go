package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

func init() {
	Register("duckdb", func(l *slog.Logger) Adapter { return NewDuckDBAdapter(l) })
}

// DuckDBAdapter implements the Adapter interface for DuckDB.
type DuckDBAdapter struct {
	base
}

// NewDuckDBAdapter creates a new DuckDB adapter instance.
func NewDuckDBAdapter(logger *slog.Logger) *DuckDBAdapter {
	return &DuckDBAdapter{base{logger: discardIfNil(logger)}}
}

// Connect opens the DuckDB database named by the URL (duckdb:PATH, empty
// path for in-memory).
func (a *DuckDBAdapter) Connect(ctx context.Context, rawURL string) error {
	path := strings.TrimPrefix(strings.TrimPrefix(rawURL, "duckdb:"), "//")

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.db = db
	if path == "" || path == ":memory:" {
		a.database = "memory"
	} else {
		a.database = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	a.logger.Info("connected to database", slog.String("database", a.database))
	return nil
}

// DialectName returns the SQL dialect for this adapter.
func (a *DuckDBAdapter) DialectName() string {
	return "duckdb"
}

// Placeholder returns the duckdb positional placeholder.
func (a *DuckDBAdapter) Placeholder(int) string {
	return "?"
}

// ListRelations lists catalog objects from the information schema.
func (a *DuckDBAdapter) ListRelations(ctx context.Context, kind RelationKind, name string) (*ResultSet, error) {
	if kind == RelationSequence {
		query := `SELECT sequence_name AS name, 'sequence' AS type FROM duckdb_sequences()`
		var args []any
		if name != "" {
			query += ` WHERE sequence_name = ?`
			args = append(args, name)
		}
		query += ` ORDER BY name`
		return a.query(ctx, query, args...)
	}

	var types []string
	switch kind {
	case RelationTable:
		types = []string{"'BASE TABLE'"}
	case RelationView:
		types = []string{"'VIEW'"}
	default:
		types = []string{"'BASE TABLE'", "'VIEW'"}
	}

	query := fmt.Sprintf(`
		SELECT table_name AS name, lower(table_type) AS type
		FROM information_schema.tables
		WHERE table_type IN (%s)`, strings.Join(types, ", "))

	var args []any
	if name != "" {
		query += ` AND table_name = ?`
		args = append(args, name)
	}
	query += ` ORDER BY type, name`

	return a.query(ctx, query, args...)
}

// DescribeRelation returns the column listing for a table or view.
func (a *DuckDBAdapter) DescribeRelation(ctx context.Context, name string) (*ResultSet, error) {
	rs, err := a.query(ctx, `
		SELECT
			column_name AS "column",
			data_type AS "type",
			is_nullable AS "nullable",
			coalesce(column_default, '') AS "default"
		FROM information_schema.columns
		WHERE table_name = ?
		ORDER BY ordinal_position`, name)
	if err != nil {
		return nil, err
	}
	if len(rs.Rows) == 0 {
		return nil, fmt.Errorf("relation %q not found", name)
	}
	return rs, nil
}
