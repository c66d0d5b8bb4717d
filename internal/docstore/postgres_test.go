package docstore

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresMock(t *testing.T) (*PostgresClient, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresClient(db), mock
}

func TestPostgresClient_Get(t *testing.T) {
	c, mock := newPostgresMock(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"data"}).AddRow([]byte(`{"name":"first","amount":3}`))
		mock.ExpectQuery("SELECT data FROM documents WHERE collection = ").
			WithArgs("things", "a").
			WillReturnRows(rows)

		doc, err := c.Get(ctx, "things", "a")
		require.NoError(t, err)
		var got testDoc
		require.NoError(t, doc.DataTo(&got))
		assert.Equal(t, "first", got.Name)
		assert.Equal(t, 3.0, got.Amount)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT data FROM documents WHERE collection = ").
			WithArgs("things", "b").
			WillReturnRows(sqlmock.NewRows([]string{"data"}))

		_, err := c.Get(ctx, "things", "b")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_Create(t *testing.T) {
	c, mock := newPostgresMock(t)
	ctx := context.Background()

	t.Run("Inserted", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO documents").
			WithArgs("things", "a", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, c.Create(ctx, "things", "a", testDoc{Name: "first"}))
	})

	t.Run("Conflict", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO documents").
			WithArgs("things", "a", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, c.Create(ctx, "things", "a", testDoc{Name: "again"}), ErrAlreadyExists)
	})

	t.Run("UniqueViolation", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO documents").
			WithArgs("things", "b", sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505"})

		assert.ErrorIs(t, c.Create(ctx, "things", "b", testDoc{}), ErrAlreadyExists)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_Update(t *testing.T) {
	c, mock := newPostgresMock(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE documents SET data = data").
		WithArgs("things", "a", []byte(`{"status":"verified"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, c.Update(ctx, "things", "a", map[string]any{"status": "verified"}))

	mock.ExpectExec("UPDATE documents SET data = data").
		WithArgs("things", "missing", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, c.Update(ctx, "things", "missing", map[string]any{"status": "x"}), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_Increment(t *testing.T) {
	c, mock := newPostgresMock(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE documents SET data = jsonb_set").
		WithArgs("donation_requests", "c1", sqlmock.AnyArg(), "collected_amount", 25.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, c.Increment(ctx, "donation_requests", "c1", "collected_amount", 25))

	mock.ExpectExec("UPDATE documents SET data = jsonb_set").
		WithArgs("donation_requests", "gone", sqlmock.AnyArg(), "collected_amount", 5.0).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, c.Increment(ctx, "donation_requests", "gone", "collected_amount", 5), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_Query(t *testing.T) {
	c, mock := newPostgresMock(t)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "data"}).
		AddRow("a", []byte(`{"name":"a","status":"pending"}`)).
		AddRow("c", []byte(`{"name":"c","status":"pending"}`))
	mock.ExpectQuery("SELECT id, data FROM documents WHERE collection = ").
		WithArgs("things", []byte(`{"status":"pending"}`), int64(2)).
		WillReturnRows(rows)

	docs, err := c.Query(ctx, "things", Where("status", "pending").WithLimit(2))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID())
	assert.Equal(t, "c", docs[1].ID())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_Delete(t *testing.T) {
	c, mock := newPostgresMock(t)

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("things", "a").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, c.Delete(context.Background(), "things", "a"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
