package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_ScopesByParent(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Set(ctx, Sub("users", "a", "cart").Doc("l1"), testDoc{ID: "l1", Name: "Red Cap"}))
	require.NoError(t, store.Set(ctx, Sub("users", "b", "cart").Doc("l2"), testDoc{ID: "l2", Name: "Blue Bag"}))

	var got []testDoc
	require.NoError(t, store.List(ctx, Sub("users", "a", "cart"), Filter{}, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Red Cap", got[0].Name)
}

func TestMemory_ListKeepsInsertionOrderAndFilters(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	products := Root("products")

	require.NoError(t, store.Set(ctx, products.Doc("p2"), testDoc{ID: "p2", Category: "Bags"}))
	require.NoError(t, store.Set(ctx, products.Doc("p1"), testDoc{ID: "p1", Category: "Winter"}))
	require.NoError(t, store.Set(ctx, products.Doc("p3"), testDoc{ID: "p3", Category: "Winter"}))

	var all []testDoc
	require.NoError(t, store.List(ctx, products, Filter{}, &all))
	require.Len(t, all, 3)
	assert.Equal(t, []string{"p2", "p1", "p3"}, []string{all[0].ID, all[1].ID, all[2].ID})

	var winter []testDoc
	require.NoError(t, store.List(ctx, products, Where("category", "Winter"), &winter))
	require.Len(t, winter, 2)
	assert.Equal(t, "p1", winter[0].ID)
}

func TestMemory_MergeAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	ref := Root("users").Doc("u1")

	require.NoError(t, store.Set(ctx, ref, testDoc{ID: "u1", Name: "Asha"}))
	require.NoError(t, store.Merge(ctx, ref, map[string]any{"category": "vip"}))

	var got testDoc
	require.NoError(t, store.Get(ctx, ref, &got))
	assert.Equal(t, testDoc{ID: "u1", Name: "Asha", Category: "vip"}, got)

	require.NoError(t, store.Delete(ctx, ref))
	require.NoError(t, store.Delete(ctx, ref))
	require.ErrorIs(t, store.Get(ctx, ref, &got), ErrNotFound)
}

func TestMemory_SetReplacesWholeDocument(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	coll := Root("products")

	require.NoError(t, store.Set(ctx, coll.Doc("p1"), map[string]any{"id": "p1", "isTrending": true}))
	require.NoError(t, store.Set(ctx, coll.Doc("p2"), map[string]any{"id": "p2"}))
	require.NoError(t, store.Set(ctx, coll.Doc("p1"), map[string]any{"id": "p1"}))

	var got map[string]any
	require.NoError(t, store.Get(ctx, coll.Doc("p1"), &got))
	assert.NotContains(t, got, "isTrending")

	var trending []testDoc
	require.NoError(t, store.List(ctx, coll, Where("isTrending", true), &trending))
	assert.Empty(t, trending)

	var all []testDoc
	require.NoError(t, store.List(ctx, coll, Filter{}, &all))
	require.Len(t, all, 2)
	assert.Equal(t, "p1", all[0].ID)
}
