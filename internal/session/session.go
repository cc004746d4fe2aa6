package session

import "github.com/leapstack-labs/squill/internal/adapter"

// Session aggregates the state the REPL mutates on each input cycle. The
// connection is exclusively owned, one per process; the last result is
// invalidated by the next execution.
type Session struct {
	Conn     adapter.Adapter
	Settings *Settings

	// Last prepared statement text, its bound parameters, and its result.
	Query  string
	Params map[string]string
	Result *adapter.ResultSet
}

// New returns a session over the given connection with settings at the
// built-in defaults.
func New(conn adapter.Adapter) *Session {
	return &Session{
		Conn:     conn,
		Settings: NewSettings(),
	}
}
