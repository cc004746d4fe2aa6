package exec

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/squill/internal/session"
)

func newMock(t *testing.T) (*Executor, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return New(db, questionMark, nil), mock
}

func TestRunAutocommitQuery(t *testing.T) {
	e, mock := newMock(t)
	st := session.NewSettings()

	mock.ExpectBegin()
	mock.ExpectQuery("select * from data where id = ?").
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow("1", "first"))
	mock.ExpectCommit()

	rs, err := e.Run(context.Background(), st, "select * from data where id = :id", map[string]string{"id": "1"})
	require.NoError(t, err)

	assert.True(t, rs.ReturnsRows)
	assert.Equal(t, []string{"id", "title"}, rs.Columns)
	assert.Equal(t, [][]string{{"1", "first"}}, rs.Rows)
	assert.Equal(t, int64(1), rs.RowCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunAutocommitExec(t *testing.T) {
	e, mock := newMock(t)
	st := session.NewSettings()

	mock.ExpectBegin()
	mock.ExpectExec("update data set status = ?").
		WithArgs("0").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	rs, err := e.Run(context.Background(), st, "update data set status = :status", map[string]string{"status": "0"})
	require.NoError(t, err)

	assert.False(t, rs.ReturnsRows)
	assert.Equal(t, int64(3), rs.RowCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunAutocommitOff(t *testing.T) {
	e, mock := newMock(t)
	st := session.NewSettings()
	st.SetNamed("autocommit", "off")

	// The first statement opens a transaction implicitly; no commit until
	// the user issues one.
	mock.ExpectBegin()
	mock.ExpectExec("insert into data values (3)").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rs, err := e.Run(context.Background(), st, "insert into data values (3)", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rs.RowCount)
	assert.True(t, e.InTransaction())

	mock.ExpectExec("insert into data values (4)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	_, err = e.Run(context.Background(), st, "insert into data values (4)", nil)
	require.NoError(t, err)
	assert.True(t, e.InTransaction(), "later statements join the open transaction")

	mock.ExpectRollback()
	_, err = e.Run(context.Background(), st, "rollback", nil)
	require.NoError(t, err)

	assert.False(t, e.InTransaction())
	assert.True(t, st.Autocommit, "rollback restores autocommit")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunQueryErrorRollsBack(t *testing.T) {
	e, mock := newMock(t)
	st := session.NewSettings()

	mock.ExpectBegin()
	mock.ExpectQuery("select * from nope").
		WillReturnError(fmt.Errorf("sentinel text"))
	mock.ExpectRollback()

	rs, err := e.Run(context.Background(), st, "select * from nope", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sentinel text")
	assert.Nil(t, rs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExplicitTransaction(t *testing.T) {
	e, mock := newMock(t)
	st := session.NewSettings()
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("insert into data (id) values (?)").
		WithArgs("1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// BEGIN opens an explicit transaction and flips autocommit off.
	rs, err := e.Run(ctx, st, "begin", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), rs.RowCount)
	assert.False(t, st.Autocommit)
	assert.True(t, e.InTransaction())

	// Subsequent statements run inside the same transaction.
	_, err = e.Run(ctx, st, "insert into data (id) values (:id)", map[string]string{"id": "1"})
	require.NoError(t, err)

	// COMMIT closes it and flips autocommit back on.
	_, err = e.Run(ctx, st, "commit", nil)
	require.NoError(t, err)
	assert.True(t, st.Autocommit)
	assert.False(t, e.InTransaction())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExplicitTransactionRollback(t *testing.T) {
	e, mock := newMock(t)
	st := session.NewSettings()
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := e.Run(ctx, st, "begin", nil)
	require.NoError(t, err)
	assert.False(t, st.Autocommit)

	_, err = e.Run(ctx, st, "rollback", nil)
	require.NoError(t, err)
	assert.True(t, st.Autocommit)
	assert.False(t, e.InTransaction())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitOutsideTransaction(t *testing.T) {
	e, mock := newMock(t)
	st := session.NewSettings()

	// COMMIT with no open transaction is a no-op that leaves autocommit on.
	rs, err := e.Run(context.Background(), st, "commit", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), rs.RowCount)
	assert.True(t, st.Autocommit)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNestedBegin(t *testing.T) {
	e, mock := newMock(t)
	st := session.NewSettings()
	ctx := context.Background()

	mock.ExpectBegin()

	_, err := e.Run(ctx, st, "begin", nil)
	require.NoError(t, err)

	_, err = e.Run(ctx, st, "begin", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in progress")
}

func TestLeadingKeyword(t *testing.T) {
	assert.Equal(t, "select", leadingKeyword("SELECT * FROM data"))
	assert.Equal(t, "begin", leadingKeyword("  begin  "))
	assert.Equal(t, "", leadingKeyword(""))
}
