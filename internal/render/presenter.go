package render

import (
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/squill/internal/adapter"
	"github.com/leapstack-labs/squill/internal/session"
)

// pagerSampleCount bounds how many lines DecidePager measures for width.
const pagerSampleCount = 10

// Presenter writes rendered result sets to the output stream, or to the
// external pager when the output would overflow the terminal. Size and
// Page are swappable for tests.
type Presenter struct {
	Out  io.Writer
	Size func() (width, height int)
	Page func(text string) error
}

// NewPresenter returns a presenter over the real terminal and pager.
func NewPresenter() *Presenter {
	return &Presenter{
		Out:  os.Stdout,
		Size: TermSize,
		Page: Page,
	}
}

// Present renders the result under the session's print settings and writes
// it out. Row-less results produce no output at all. When the footer is
// disabled a trailing blank line keeps the prompt spacing consistent.
func (p *Presenter) Present(rs *adapter.ResultSet, st *session.Settings) error {
	text := Render(rs, Options{
		Format:       st.Format,
		ShowIndex:    st.ShowIndex,
		AlignStrings: st.AlignStrings,
	})
	if text == "" {
		return nil
	}

	if st.Footer {
		text += Footer(rs.RowCount)
	} else {
		text += "\n"
	}

	width, height := p.Size()
	if DecidePager(st.Pager, text, "\n", pagerSampleCount, width, height) {
		if err := p.Page(text); err == nil {
			return nil
		}
		// Pager failure falls through to plain output.
	}

	_, err := fmt.Fprint(p.Out, text)
	return err
}
