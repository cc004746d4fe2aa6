// Package adapter provides database adapters for the squill REPL client.
//
// An adapter owns the single database/sql connection for the session and
// knows the dialect-specific pieces the client needs: the placeholder
// style for bound parameters, the database identity for the prompt, and
// the catalog queries behind the \d family of commands.
package adapter

import (
	"context"
	"database/sql"
	"fmt"
)

// RelationKind selects which catalog objects a metadata listing covers.
type RelationKind int

const (
	// RelationAll lists tables, views and sequences together.
	RelationAll RelationKind = iota
	RelationTable
	RelationView
	RelationSequence
)

// ResultSet is the row-producing handle handed from execution to
// presentation. Rows are collected eagerly; RowCount is -1 when the
// engine could not report a count.
type ResultSet struct {
	Columns     []string
	Rows        [][]string
	ReturnsRows bool
	RowCount    int64
}

// Adapter is the connection collaborator: a live database connection plus
// the dialect knowledge the REPL needs.
type Adapter interface {
	// Connect establishes the connection for the given URL.
	Connect(ctx context.Context, rawURL string) error

	// Close closes the connection and releases resources.
	Close() error

	// DB exposes the underlying connection for the executor.
	DB() *sql.DB

	// DatabaseName returns the database identity for prompt display.
	DatabaseName() string

	// DialectName returns the SQL dialect name (e.g. "sqlite", "postgres").
	DialectName() string

	// Placeholder returns the positional placeholder for the n-th bound
	// parameter (1-based), e.g. "?" or "$1".
	Placeholder(n int) string

	// ListRelations lists catalog objects of the given kind, optionally
	// restricted to a single relation name.
	ListRelations(ctx context.Context, kind RelationKind, name string) (*ResultSet, error)

	// DescribeRelation returns the column listing for a relation.
	DescribeRelation(ctx context.Context, name string) (*ResultSet, error)
}

// Collect drains rows into a ResultSet. Values are rendered as strings so
// the presenter never re-interprets cell types; []byte becomes string and
// NULL becomes the literal "NULL", as the renderer expects.
func Collect(rows *sql.Rows) (*ResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rs := &ResultSet{
		Columns:     cols,
		ReturnsRows: true,
	}

	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rs.RowCount = int64(len(rs.Rows))
	return rs, nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
