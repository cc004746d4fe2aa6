package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // sqlite driver
)

func init() {
	Register("sqlite", func(l *slog.Logger) Adapter { return NewSQLiteAdapter(l) })
	Register("sqlite3", func(l *slog.Logger) Adapter { return NewSQLiteAdapter(l) })
	Register("file", func(l *slog.Logger) Adapter { return NewSQLiteAdapter(l) })
}

// SQLiteAdapter implements the Adapter interface for SQLite.
type SQLiteAdapter struct {
	base
}

// NewSQLiteAdapter creates a new SQLite adapter instance.
func NewSQLiteAdapter(logger *slog.Logger) *SQLiteAdapter {
	return &SQLiteAdapter{base{logger: discardIfNil(logger)}}
}

// Connect opens the SQLite database named by the URL. Accepted forms are
// sqlite:PATH, sqlite://PATH, file:PATH and the literal :memory: path.
func (a *SQLiteAdapter) Connect(ctx context.Context, rawURL string) error {
	path := sqlitePath(rawURL)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	a.db = db
	a.database = sqliteDatabaseName(path)
	a.logger.Info("connected to database", slog.String("database", a.database))
	return nil
}

func sqlitePath(rawURL string) string {
	path := rawURL
	for _, prefix := range []string{"sqlite3:", "sqlite:", "file:"} {
		if strings.HasPrefix(path, prefix) {
			path = strings.TrimPrefix(path, prefix)
			break
		}
	}
	path = strings.TrimPrefix(path, "//")
	if path == "" {
		path = ":memory:"
	}
	return path
}

func sqliteDatabaseName(path string) string {
	if path == ":memory:" || strings.Contains(path, "mode=memory") {
		return "memory"
	}
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// DialectName returns the SQL dialect for this adapter.
func (a *SQLiteAdapter) DialectName() string {
	return "sqlite"
}

// Placeholder returns the sqlite positional placeholder.
func (a *SQLiteAdapter) Placeholder(int) string {
	return "?"
}

// ListRelations lists catalog objects from sqlite_master.
func (a *SQLiteAdapter) ListRelations(ctx context.Context, kind RelationKind, name string) (*ResultSet, error) {
	var types []string
	switch kind {
	case RelationTable:
		types = []string{"'table'"}
	case RelationView:
		types = []string{"'view'"}
	case RelationSequence:
		// SQLite has no first-class sequences.
		return &ResultSet{Columns: []string{"name", "type"}, ReturnsRows: true}, nil
	default:
		types = []string{"'table'", "'view'"}
	}

	query := fmt.Sprintf(`
		SELECT name, type
		FROM sqlite_master
		WHERE type IN (%s)
		AND name NOT LIKE 'sqlite_%%'`, strings.Join(types, ", "))

	var args []any
	if name != "" {
		query += ` AND name = ?`
		args = append(args, name)
	}
	query += ` ORDER BY type, name`

	return a.query(ctx, query, args...)
}

// DescribeRelation returns the column listing for a table or view.
func (a *SQLiteAdapter) DescribeRelation(ctx context.Context, name string) (*ResultSet, error) {
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	rs := &ResultSet{
		Columns:     []string{"column", "type", "nullable", "default"},
		ReturnsRows: true,
	}
	for rows.Next() {
		var cid, notNull, pk int
		var colName, colType string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}

		nullable := "YES"
		if notNull == 1 {
			nullable = "NO"
		}
		defaultVal := ""
		if dflt.Valid {
			defaultVal = dflt.String
		}
		if pk == 1 {
			if defaultVal != "" {
				defaultVal += " "
			}
			defaultVal += "(primary key)"
		}

		rs.Rows = append(rs.Rows, []string{colName, colType, nullable, defaultVal})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(rs.Rows) == 0 {
		return nil, fmt.Errorf("relation %q not found", name)
	}

	rs.RowCount = int64(len(rs.Rows))
	return rs, nil
}
