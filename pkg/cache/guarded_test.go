package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/circuit"
)

var errDown = errors.New("connection refused")

type failingStore struct {
	calls int
	err   error
}

func (f *failingStore) Name() string { return "failing" }

func (f *failingStore) Get(context.Context, string) ([]byte, bool, error) {
	f.calls++
	return nil, false, f.err
}

func (f *failingStore) Set(context.Context, string, []byte, time.Duration) error {
	f.calls++
	return f.err
}

func (f *failingStore) Delete(context.Context, ...string) error {
	f.calls++
	return f.err
}

func (f *failingStore) DeleteByPrefix(context.Context, string) error {
	f.calls++
	return f.err
}

func (f *failingStore) Ping(context.Context) error { return f.err }

func TestGuardedStoreOpensOnFailures(t *testing.T) {
	inner := &failingStore{err: errDown}
	breaker := circuit.NewBreaker("cache", circuit.Config{Threshold: 2, Cooldown: time.Hour}, zap.NewNop())
	store := NewGuardedStore(inner, breaker)
	ctx := context.Background()

	_, _, err := store.Get(ctx, "wwi:supplier:1")
	assert.ErrorIs(t, err, errDown)
	assert.ErrorIs(t, store.Set(ctx, "wwi:supplier:1", []byte("{}"), time.Minute), errDown)
	require.Equal(t, circuit.StateOpen, breaker.State())

	value, found, err := store.Get(ctx, "wwi:supplier:1")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)
	assert.NoError(t, store.Delete(ctx, "wwi:supplier:1"))
	assert.NoError(t, store.DeleteByPrefix(ctx, "wwi:"))
	assert.Equal(t, 2, inner.calls)
}

func TestGuardedStorePassesThroughWhenHealthy(t *testing.T) {
	inner := NewCache(time.Hour)
	defer inner.Close()
	store := NewGuardedStore(inner, circuit.NewBreaker("cache", circuit.DefaultConfig(), nil))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "wwi:supplier:7", []byte(`{"supplierId":7}`), time.Minute))
	got, found, err := store.Get(ctx, "wwi:supplier:7")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"supplierId":7}`, string(got))

	assert.Equal(t, "memory", store.Name())
	assert.Same(t, inner, store.Unwrap())
	assert.Equal(t, "CLOSED", store.CircuitStats()["state"])
	assert.NoError(t, store.Close())
}
