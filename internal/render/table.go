// Package render turns result sets into tabular text, decides whether the
// output should go through the external pager, and appends the row-count
// footer.
package render

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/leapstack-labs/squill/internal/adapter"
	"github.com/leapstack-labs/squill/internal/session"
)

// Options are the rendering collaborator's knobs: the format identifier,
// whether to show a row index, and the string-alignment mode. Cell values
// arrive pre-formatted as strings, so no value-type inference happens here.
type Options struct {
	Format       string
	ShowIndex    bool
	AlignStrings bool
}

// Render converts a result set into tabular text. A result that does not
// return rows, or returns none, renders as empty output: no table, no
// footer, nothing.
func Render(rs *adapter.ResultSet, opts Options) string {
	if rs == nil || !rs.ReturnsRows || len(rs.Rows) == 0 {
		return ""
	}

	t := table.NewWriter()

	header := make(table.Row, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, r := range rs.Rows {
		row := make(table.Row, len(r))
		for i, cell := range r {
			row[i] = cell
		}
		t.AppendRow(row)
	}

	if opts.ShowIndex {
		t.SetAutoIndex(true)
	}

	// Column names pass through as returned; go-pretty uppercases headers
	// by default.
	t.Style().Format.Header = text.FormatDefault

	switch opts.Format {
	case session.FormatCSV:
		return t.RenderCSV()
	case session.FormatHTML:
		return t.RenderHTML()
	case session.FormatMarkdown:
		return t.RenderMarkdown()
	case session.FormatUnaligned:
		t.SetStyle(unalignedStyle(opts))
		return t.Render()
	default:
		s := table.StyleLight
		s.Format.Header = text.FormatDefault
		t.SetStyle(s)
		return t.Render()
	}
}

// unalignedStyle drops borders and separators so rows come out as
// pipe-delimited lines; without string alignment the cell padding goes too.
func unalignedStyle(opts Options) table.Style {
	s := table.StyleDefault
	s.Format.Header = text.FormatDefault
	s.Options.DrawBorder = false
	s.Options.SeparateColumns = true
	s.Options.SeparateHeader = true
	s.Options.SeparateRows = false
	s.Box.MiddleVertical = "|"
	if !opts.AlignStrings {
		s.Box.PaddingLeft = ""
		s.Box.PaddingRight = ""
	}
	return s
}

// Footer renders the row-count trailer. A known count renders as
// "\n(N row)\n" for N=1 and "\n(N rows)\n" otherwise; the -1 sentinel
// (count unknown) renders as a bare blank line.
func Footer(rowCount int64) string {
	if rowCount == -1 {
		return "\n"
	}
	word := "rows"
	if rowCount == 1 {
		word = "row"
	}
	return fmt.Sprintf("\n(%d %s)\n", rowCount, word)
}
