package repl

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/squill/internal/adapter"
	"github.com/leapstack-labs/squill/internal/exec"
	"github.com/leapstack-labs/squill/internal/render"
	"github.com/leapstack-labs/squill/internal/session"
)

// scriptReader plays back a fixed sequence of input lines, recording the
// prompts it was shown and the lines saved to history. When the script runs
// out it signals end of input.
type scriptReader struct {
	lines   []string
	prompts []string
	history []string
	prompt  string
}

func (r *scriptReader) Readline() (string, error) {
	r.prompts = append(r.prompts, r.prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptReader) SetPrompt(prompt string) { r.prompt = prompt }

func (r *scriptReader) SaveHistory(content string) error {
	r.history = append(r.history, content)
	return nil
}

type driverFixture struct {
	driver *Driver
	sess   *session.Session
	reader *scriptReader
	out    *strings.Builder
	errOut *strings.Builder
}

func newDriverFixture(t *testing.T, lines ...string) *driverFixture {
	t.Helper()

	conn := adapter.NewSQLiteAdapter(nil)
	require.NoError(t, conn.Connect(context.Background(), "sqlite::memory:"))
	t.Cleanup(func() { _ = conn.Close() })

	_, err := conn.DB().Exec(`CREATE TABLE data (id INTEGER, name TEXT)`)
	require.NoError(t, err)
	_, err = conn.DB().Exec(`INSERT INTO data VALUES (1, 'alpha'), (2, 'beta')`)
	require.NoError(t, err)

	out := &strings.Builder{}
	errOut := &strings.Builder{}
	reader := &scriptReader{lines: lines}
	sess := session.New(conn)

	driver := NewDriver(DriverConfig{
		Session:  sess,
		Executor: exec.New(conn.DB(), conn.Placeholder, nil),
		Presenter: &render.Presenter{
			Out:  out,
			Size: func() (int, int) { return 0, 0 },
			Page: func(string) error { t.Fatal("pager must not run"); return nil },
		},
		Reader:  reader,
		Out:     out,
		ErrOut:  errOut,
		Version: "0.0.0-test",
	})

	return &driverFixture{driver: driver, sess: sess, reader: reader, out: out, errOut: errOut}
}

func TestDriverQuit(t *testing.T) {
	f := newDriverFixture(t, `\q`)

	require.NoError(t, f.driver.Run(context.Background()))
	assert.Contains(t, f.out.String(), `Type "help" for help.`)
	assert.Equal(t, []string{`\q`}, f.reader.history)
}

func TestDriverEOFQuits(t *testing.T) {
	f := newDriverFixture(t)

	require.NoError(t, f.driver.Run(context.Background()))
	assert.Equal(t, []string{"memory => "}, f.reader.prompts)
}

func TestDriverEmptyInputConfirmation(t *testing.T) {
	f := newDriverFixture(t, "", "no", "", "y")

	require.NoError(t, f.driver.Run(context.Background()))

	// Empty input is not saved to history, and each empty line triggers a
	// confirmation prompt.
	assert.Empty(t, f.reader.history)
	assert.Equal(t, []string{
		"memory => ",
		"no input, do you want to quit (yes/no)? ",
		"memory => ",
		"no input, do you want to quit (yes/no)? ",
	}, f.reader.prompts)
}

func TestDriverRunsQuery(t *testing.T) {
	f := newDriverFixture(t, "select name from data order by id;", `\q`)

	require.NoError(t, f.driver.Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
	assert.Contains(t, out, "(2 rows)")
	assert.Empty(t, f.errOut.String())

	assert.Equal(t, "select name from data order by id", f.sess.Query, "the session records the cleaned query")
	require.NotNil(t, f.sess.Result)
	assert.Equal(t, int64(2), f.sess.Result.RowCount)
}

func TestDriverPromptsForParams(t *testing.T) {
	f := newDriverFixture(t, "select name from data where id = :id;", "2", `\q`)

	require.NoError(t, f.driver.Run(context.Background()))

	assert.Contains(t, f.reader.prompts, "id: ")
	assert.Equal(t, map[string]string{"id": "2"}, f.sess.Params)

	out := f.out.String()
	assert.Contains(t, out, "beta")
	assert.NotContains(t, out, "alpha")
	assert.Contains(t, out, "(1 row)")

	// Only top-level inputs land in history, not parameter answers.
	assert.Equal(t, []string{"select name from data where id = :id;", `\q`}, f.reader.history)
}

func TestDriverReportsQueryError(t *testing.T) {
	f := newDriverFixture(t, "select * from missing;", `\q`)

	require.NoError(t, f.driver.Run(context.Background()))
	assert.Contains(t, f.errOut.String(), "missing")
	assert.Nil(t, f.sess.Result)
}

func TestDriverStateCommands(t *testing.T) {
	f := newDriverFixture(t, `\pset footer off`, `\pset footer`, "select name from data order by id;", `\q`)

	require.NoError(t, f.driver.Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "footer is off")
	assert.Contains(t, out, "alpha")
	assert.NotContains(t, out, "(2 rows)")
}

func TestDriverHelp(t *testing.T) {
	f := newDriverFixture(t, "help", `\?`, `\copyright`, `\q`)

	require.NoError(t, f.driver.Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "You are using squill")
	assert.Contains(t, out, `\q`)
	assert.Contains(t, out, "Apache-2.0")
}

func TestDriverMetadata(t *testing.T) {
	f := newDriverFixture(t, `\dt`, `\d data`, `\q`)

	require.NoError(t, f.driver.Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "data")
	assert.Contains(t, out, "INTEGER")
	assert.Empty(t, f.errOut.String())
}

func TestDriverAutocommitOffRollback(t *testing.T) {
	f := newDriverFixture(t,
		`\set autocommit off`,
		"insert into data values (3, 'gamma');",
		"rollback;",
		"select count(*) as n from data;",
		`\q`,
	)

	require.NoError(t, f.driver.Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "2", "with autocommit off the insert runs inside a transaction that rollback discards")
	assert.NotContains(t, out, "3")
	assert.Empty(t, f.errOut.String())
}

func TestDriverTransactionFlow(t *testing.T) {
	f := newDriverFixture(t,
		"begin;",
		"insert into data values (3, 'gamma');",
		"rollback;",
		"select count(*) from data;",
		`\q`,
	)

	require.NoError(t, f.driver.Run(context.Background()))

	assert.Contains(t, f.out.String(), "2", "the rolled-back insert must not persist")
	assert.True(t, f.sess.Settings.Autocommit, "rollback restores autocommit")
	assert.Empty(t, f.errOut.String())
}
