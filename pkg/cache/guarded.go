package cache

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/circuit"
)

// GuardedStore puts a circuit breaker in front of a remote store. While the
// circuit is open reads miss and writes are dropped, so requests fall
// through to the database instead of waiting on a dead cache.
type GuardedStore struct {
	inner   Store
	breaker *circuit.Breaker
}

func NewGuardedStore(inner Store, breaker *circuit.Breaker) *GuardedStore {
	return &GuardedStore{inner: inner, breaker: breaker}
}

func (g *GuardedStore) Name() string { return g.inner.Name() }

func (g *GuardedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value []byte
		found bool
	)
	err := g.breaker.Execute(func() error {
		var err error
		value, found, err = g.inner.Get(ctx, key)
		return err
	})
	if rejected(err) {
		return nil, false, nil
	}
	return value, found, err
}

func (g *GuardedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return skipRejected(g.breaker.Execute(func() error {
		return g.inner.Set(ctx, key, value, ttl)
	}))
}

func (g *GuardedStore) Delete(ctx context.Context, keys ...string) error {
	return skipRejected(g.breaker.Execute(func() error {
		return g.inner.Delete(ctx, keys...)
	}))
}

func (g *GuardedStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	return skipRejected(g.breaker.Execute(func() error {
		return g.inner.DeleteByPrefix(ctx, prefix)
	}))
}

// Ping always reaches the store and feeds the result to the breaker, so a
// health probe can close a recovered circuit.
func (g *GuardedStore) Ping(ctx context.Context) error {
	err := g.inner.Ping(ctx)
	g.breaker.Record(err)
	return err
}

func (g *GuardedStore) Close() error {
	if closer, ok := g.inner.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (g *GuardedStore) Unwrap() Store { return g.inner }

func (g *GuardedStore) CircuitStats() map[string]any { return g.breaker.Stats() }

func rejected(err error) bool {
	return errors.Is(err, circuit.ErrCircuitOpen) || errors.Is(err, circuit.ErrProbeInFlight)
}

func skipRejected(err error) error {
	if rejected(err) {
		return nil
	}
	return err
}
