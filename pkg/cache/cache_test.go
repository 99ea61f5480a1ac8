package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(time.Hour)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "wwi:supplier:1", []byte(`{"supplierId":1}`), time.Minute))

	got, ok, err := c.Get(ctx, "wwi:supplier:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"supplierId":1}`, string(got))

	_, ok, err = c.Get(ctx, "wwi:supplier:2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheReturnsCopies(t *testing.T) {
	c := NewCache(time.Hour)
	defer c.Close()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", value, time.Minute))
	value[0] = 'x'

	got, _, _ := c.Get(ctx, "k")
	got[1] = 'y'

	again, _, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(time.Hour)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), -time.Second))

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.sweep()
	assert.Equal(t, 0, c.Len())
}

func TestCacheDeleteByPrefix(t *testing.T) {
	c := NewCache(time.Hour)
	defer c.Close()
	ctx := context.Background()

	for _, key := range []string{"wwi:supplier:1", "wwi:supplier:2", "wwi:supplier_category:1"} {
		require.NoError(t, c.Set(ctx, key, []byte("v"), time.Minute))
	}

	require.NoError(t, c.DeleteByPrefix(ctx, "wwi:supplier:"))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete(ctx, "wwi:supplier_category:1", "missing"))
	assert.Equal(t, 0, c.Len())
}

func TestCacheCloseIsIdempotent(t *testing.T) {
	c := NewCache(time.Millisecond)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
