package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulstitch/storefront/internal/auth"
	"github.com/soulstitch/storefront/internal/cache"
	"github.com/soulstitch/storefront/internal/catalog"
	"github.com/soulstitch/storefront/internal/docstore"
	"github.com/soulstitch/storefront/internal/money"
)

type fakeRepo struct {
	listFn   func(ctx context.Context, userID string) ([]Line, error)
	insertFn func(ctx context.Context, userID string, l Line) error
	deleteFn func(ctx context.Context, userID, lineID string) error
}

func (f *fakeRepo) List(ctx context.Context, userID string) ([]Line, error) {
	return f.listFn(ctx, userID)
}

func (f *fakeRepo) Insert(ctx context.Context, userID string, l Line) error {
	return f.insertFn(ctx, userID, l)
}

func (f *fakeRepo) Delete(ctx context.Context, userID, lineID string) error {
	return f.deleteFn(ctx, userID, lineID)
}

func discardLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestService_TotalFromStoredPrices(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()

	// Stored lines carry the price once as a number and once as a string.
	require.NoError(t, store.Merge(ctx, docstore.Sub("users", "u1", "cart").Doc("a"), map[string]any{"lineId": "a", "price": 200}))
	require.NoError(t, store.Merge(ctx, docstore.Sub("users", "u1", "cart").Doc("b"), map[string]any{"lineId": "b", "price": "500"}))

	svc := NewService(NewRepository(store), cache.NewMemory(), discardLogger())

	sum, err := svc.Total(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "700", sum.Total.String())
	assert.Equal(t, 2, sum.Count)
}

func TestService_EmptyCartTotalsZero(t *testing.T) {
	svc := NewService(NewRepository(docstore.NewMemory()), cache.NewMemory(), discardLogger())

	sum, err := svc.Total(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, sum.Total.Equal(money.Zero()))
	assert.NotNil(t, sum.Lines)
	assert.Empty(t, sum.Lines)
}

func TestService_ReadFailureIsNotAnEmptyCart(t *testing.T) {
	repo := &fakeRepo{listFn: func(ctx context.Context, userID string) ([]Line, error) {
		return nil, errors.New("backend unavailable")
	}}
	svc := NewService(repo, cache.NewMemory(), discardLogger())

	sum, err := svc.Total(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unavailable")
	assert.Equal(t, Summary{}, sum)
}

func TestService_RequiresUser(t *testing.T) {
	svc := NewService(NewRepository(docstore.NewMemory()), cache.NewMemory(), discardLogger())

	_, err := svc.Total(context.Background(), "")
	require.ErrorIs(t, err, auth.ErrNotAuthenticated)

	_, err = svc.Add(context.Background(), "", catalog.Product{ID: "p1"})
	require.ErrorIs(t, err, auth.ErrNotAuthenticated)

	require.ErrorIs(t, svc.Remove(context.Background(), "", "l1"), auth.ErrNotAuthenticated)
}

func TestService_AddRemoveInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(docstore.NewMemory()), cache.NewMemory(), discardLogger())
	product := catalog.Product{ID: "p1", Name: "Red Cap", Price: money.NewAmount(200), Category: "Winter"}

	first, err := svc.Add(ctx, "u1", product)
	require.NoError(t, err)

	sum, err := svc.Total(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "200", sum.Total.String())

	second, err := svc.Add(ctx, "u1", product)
	require.NoError(t, err)
	assert.NotEqual(t, first.LineID, second.LineID)
	assert.Equal(t, 1, second.Quantity)

	sum, err = svc.Total(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "400", sum.Total.String())

	require.NoError(t, svc.Remove(ctx, "u1", first.LineID))
	sum, err = svc.Total(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sum.Lines, 1)
	assert.Equal(t, second.LineID, sum.Lines[0].LineID)
}

func TestService_LinesAreScopedPerUser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(docstore.NewMemory()), cache.NewMemory(), discardLogger())

	_, err := svc.Add(ctx, "alice", catalog.Product{ID: "p1", Price: money.NewAmount(100)})
	require.NoError(t, err)

	sum, err := svc.Total(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, sum.Lines)
}
