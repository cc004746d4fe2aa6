package exec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func questionMark(int) string { return "?" }

func dollar(n int) string { return fmt.Sprintf("$%d", n) }

func TestBindNamed(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		params       map[string]string
		placeholder  func(int) string
		expectedStmt string
		expectedArgs []any
	}{
		{
			name:         "no params",
			query:        "select * from data",
			placeholder:  questionMark,
			expectedStmt: "select * from data",
		},
		{
			name:         "single param",
			query:        "select * from data where id = :id",
			params:       map[string]string{"id": "1"},
			placeholder:  questionMark,
			expectedStmt: "select * from data where id = ?",
			expectedArgs: []any{"1"},
		},
		{
			name:         "multiple params in order",
			query:        "select * from data where name = :name and status = :status",
			params:       map[string]string{"name": "primary", "status": "0"},
			placeholder:  questionMark,
			expectedStmt: "select * from data where name = ? and status = ?",
			expectedArgs: []any{"primary", "0"},
		},
		{
			name:         "positional placeholders",
			query:        "select * from data where name = :name and status = :status",
			params:       map[string]string{"name": "primary", "status": "0"},
			placeholder:  dollar,
			expectedStmt: "select * from data where name = $1 and status = $2",
			expectedArgs: []any{"primary", "0"},
		},
		{
			name:         "repeated name binds each occurrence",
			query:        "select :a, :a",
			params:       map[string]string{"a": "x"},
			placeholder:  dollar,
			expectedStmt: "select $1, $2",
			expectedArgs: []any{"x", "x"},
		},
		{
			name:         "quoted literal untouched",
			query:        "select * from data where status = :status and key = ':key'",
			params:       map[string]string{"status": "0"},
			placeholder:  questionMark,
			expectedStmt: "select * from data where status = ? and key = ':key'",
			expectedArgs: []any{"0"},
		},
		{
			name:         "bare colon passes through",
			query:        "select ':'",
			placeholder:  questionMark,
			expectedStmt: "select ':'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, args := bindNamed(tt.query, tt.params, tt.placeholder)
			assert.Equal(t, tt.expectedStmt, stmt)
			if tt.expectedArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.expectedArgs, args)
			}
		})
	}
}
