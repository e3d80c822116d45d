package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	var got []string
	ok, err := c.Get(ctx, "cart:u1", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "cart:u1", []string{"l1", "l2"}, time.Minute))
	ok, err = c.Get(ctx, "cart:u1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"l1", "l2"}, got)

	require.NoError(t, c.Delete(ctx, "cart:u1", "missing"))
	ok, err = c.Get(ctx, "cart:u1", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", 1, time.Second))
	now = now.Add(2 * time.Second)

	var v int
	ok, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_SetNX(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	ok, err := c.SetNX(ctx, "checkout:u1", "a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX(ctx, "checkout:u1", "b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Delete(ctx, "checkout:u1"))
	ok, err = c.SetNX(ctx, "checkout:u1", "c", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemory_DeleteIfEquals(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	ok, err := c.SetNX(ctx, "checkout:u1", "owner", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	deleted, err := c.DeleteIfEquals(ctx, "checkout:u1", "someone-else")
	require.NoError(t, err)
	assert.False(t, deleted)

	ok, err = c.SetNX(ctx, "checkout:u1", "other", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "marker must survive a mismatched delete")

	deleted, err = c.DeleteIfEquals(ctx, "checkout:u1", "owner")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = c.DeleteIfEquals(ctx, "checkout:u1", "owner")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemory_Incr(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	for want := int64(1); want <= 3; want++ {
		got, err := c.Incr(ctx, "seq:orders:u1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := c.Incr(ctx, "seq:orders:u2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}
