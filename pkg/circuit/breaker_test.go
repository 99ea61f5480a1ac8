package circuit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errBackend = errors.New("backend down")

func newTestBreaker(config Config) (*Breaker, *time.Time) {
	b := NewBreaker("test", config, zap.NewNop())
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return clock }
	return b, &clock
}

func TestBreakerStartsClosed(t *testing.T) {
	b := NewBreaker("test", DefaultConfig(), nil)
	assert.Equal(t, StateClosed, b.State())
	assert.NoError(t, b.Allow())
}

func TestBreakerOpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 3, Cooldown: time.Second})

	for i := 0; i < 2; i++ {
		b.Record(errBackend)
	}
	assert.Equal(t, StateClosed, b.State())

	b.Record(errBackend)
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 2, Cooldown: time.Second})

	b.Record(errBackend)
	b.Record(nil)
	b.Record(errBackend)

	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerHalfOpenProbe(t *testing.T) {
	tests := []struct {
		name     string
		outcome  error
		expected State
	}{
		{name: "probe succeeds", outcome: nil, expected: StateClosed},
		{name: "probe fails", outcome: errBackend, expected: StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, clock := newTestBreaker(Config{Threshold: 1, Cooldown: time.Second, SuccessThreshold: 1, MaxProbes: 1})
			b.Record(errBackend)
			require.Equal(t, StateOpen, b.State())

			*clock = clock.Add(2 * time.Second)
			require.NoError(t, b.Allow())
			assert.Equal(t, StateHalfOpen, b.State())
			assert.ErrorIs(t, b.Allow(), ErrProbeInFlight)

			b.Record(tt.outcome)
			assert.Equal(t, tt.expected, b.State())
		})
	}
}

func TestBreakerExecute(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 1, Cooldown: time.Minute})

	assert.ErrorIs(t, b.Execute(func() error { return errBackend }), errBackend)

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreakerResetAndStats(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 1, Cooldown: time.Minute})
	b.Record(errBackend)

	stats := b.Stats()
	assert.Equal(t, "OPEN", stats["state"])
	assert.Equal(t, errBackend.Error(), stats["last_error"])

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.NoError(t, b.Allow())
}
