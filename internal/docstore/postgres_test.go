package docstore

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Category string `json:"category" bson:"category"`
}

func TestPostgres_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgres(mock)
	ref := Sub("users", "u1", "cart").Doc("l1")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM documents")).
		WithArgs("cart", "users/u1", "l1").
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow([]byte(`{"id":"l1","name":"Red Cap"}`)))

	var got testDoc
	require.NoError(t, store.Get(context.Background(), ref, &got))
	assert.Equal(t, testDoc{ID: "l1", Name: "Red Cap"}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM documents")).
		WithArgs("products", "", "nope").
		WillReturnError(pgx.ErrNoRows)

	var got testDoc
	err = NewPostgres(mock).Get(context.Background(), Root("products").Doc("nope"), &got)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostgres_SetAndMerge(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgres(mock)
	ref := Root("users").Doc("u1")

	mock.ExpectExec(regexp.QuoteMeta("SET data=EXCLUDED.data")).
		WithArgs("users", "", "u1", []byte(`{"id":"u1","name":"Asha","category":""}`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta("SET data=documents.data || EXCLUDED.data")).
		WithArgs("users", "", "u1", []byte(`{"photoURL":"x"}`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.Set(context.Background(), ref, testDoc{ID: "u1", Name: "Asha"}))
	require.NoError(t, store.Merge(context.Background(), ref, map[string]any{"photoURL": "x"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents")).
		WithArgs("wishlist", "users/u1", "p1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, NewPostgres(mock).Delete(context.Background(), Sub("users", "u1", "wishlist").Doc("p1")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_List(t *testing.T) {
	t.Run("all documents", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM documents")).
			WithArgs("products", "").
			WillReturnRows(pgxmock.NewRows([]string{"data"}).
				AddRow([]byte(`{"id":"p1","name":"Red Cap","category":"Winter"}`)).
				AddRow([]byte(`{"id":"p2","name":"Blue Bag","category":"Bags"}`)))

		var got []testDoc
		require.NoError(t, NewPostgres(mock).List(context.Background(), Root("products"), Filter{}, &got))
		require.Len(t, got, 2)
		assert.Equal(t, "p1", got[0].ID)
		assert.Equal(t, "p2", got[1].ID)
	})

	t.Run("equality filter", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta("data->>$3 = $4")).
			WithArgs("orders", "", "userId", "u1").
			WillReturnRows(pgxmock.NewRows([]string{"data"}))

		var got []testDoc
		require.NoError(t, NewPostgres(mock).List(context.Background(), Root("orders"), Where("userId", "u1"), &got))
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("query error is returned", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM documents")).
			WithArgs("cart", "users/u1").
			WillReturnError(errors.New("connection reset"))

		var got []testDoc
		err = NewPostgres(mock).List(context.Background(), Sub("users", "u1", "cart"), Filter{}, &got)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})
}
