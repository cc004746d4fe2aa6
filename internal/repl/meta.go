package repl

import (
	"context"
	"strings"

	"github.com/leapstack-labs/squill/internal/adapter"
)

// runMeta dispatches the \d family: \d [NAME] describes a relation or
// lists everything, \dt, \dv and \ds list tables, views and sequences.
// An unrecognized metadata sub-command prints nothing.
func (d *Driver) runMeta(ctx context.Context, raw string) {
	fields := strings.Fields(raw)
	token := strings.ToLower(fields[0])

	var name string
	if len(fields) > 1 {
		name = fields[1]
	}

	var (
		rs  *adapter.ResultSet
		err error
	)
	switch token {
	case `\d`:
		if name != "" {
			rs, err = d.sess.Conn.DescribeRelation(ctx, name)
		} else {
			rs, err = d.sess.Conn.ListRelations(ctx, adapter.RelationAll, "")
		}
	case `\dt`:
		rs, err = d.sess.Conn.ListRelations(ctx, adapter.RelationTable, name)
	case `\dv`:
		rs, err = d.sess.Conn.ListRelations(ctx, adapter.RelationView, name)
	case `\ds`:
		rs, err = d.sess.Conn.ListRelations(ctx, adapter.RelationSequence, name)
	default:
		return
	}

	if err != nil {
		d.reportError(err)
		return
	}
	if err := d.pres.Present(rs, d.sess.Settings); err != nil {
		d.reportError(err)
	}
}
