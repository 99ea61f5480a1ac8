package circuit

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrCircuitOpen   = errors.New("circuit breaker is open")
	ErrProbeInFlight = errors.New("circuit breaker probe limit reached")
)

// Config: Threshold consecutive failures open the circuit; after Cooldown
// up to MaxProbes calls are let through, and SuccessThreshold successes
// among them close it again.
type Config struct {
	Threshold        int
	Cooldown         time.Duration
	SuccessThreshold int
	MaxProbes        int
}

func DefaultConfig() Config {
	return Config{
		Threshold:        5,
		Cooldown:         30 * time.Second,
		SuccessThreshold: 2,
		MaxProbes:        1,
	}
}

// Breaker stops calls to a dependency that keeps failing.
type Breaker struct {
	mu          sync.Mutex
	name        string
	config      Config
	logger      *zap.Logger
	now         func() time.Time
	state       State
	failures    int
	successes   int
	probes      int
	openedAt    time.Time
	lastFailure error
}

func NewBreaker(name string, config Config, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Threshold < 1 {
		config.Threshold = 1
	}
	if config.SuccessThreshold < 1 {
		config.SuccessThreshold = 1
	}
	if config.MaxProbes < 1 {
		config.MaxProbes = 1
	}
	return &Breaker{
		name:   name,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// Execute runs fn unless the circuit refuses it, and records the outcome.
func (b *Breaker) Execute(fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn()
	b.Record(err)
	return err
}

// Allow reports whether a call may proceed. A nil result obliges the caller
// to Record the outcome.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.config.Cooldown {
			return ErrCircuitOpen
		}
		b.moveTo(StateHalfOpen)
		b.probes = 1
		return nil
	case StateHalfOpen:
		if b.probes >= b.config.MaxProbes {
			return ErrProbeInFlight
		}
		b.probes++
		return nil
	default:
		return nil
	}
}

func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failures = 0
		if b.state == StateHalfOpen {
			b.probes--
			b.successes++
			if b.successes >= b.config.SuccessThreshold {
				b.moveTo(StateClosed)
			}
		}
		return
	}

	b.failures++
	b.successes = 0
	b.lastFailure = err
	if b.state == StateHalfOpen || b.failures >= b.config.Threshold {
		b.openedAt = b.now()
		b.moveTo(StateOpen)
	}
}

// must hold b.mu
func (b *Breaker) moveTo(next State) {
	prev := b.state
	b.state = next
	b.probes = 0
	if next == StateClosed {
		b.failures = 0
		b.successes = 0
	}

	b.logger.Info("Circuit breaker state changed",
		zap.String("name", b.name),
		zap.String("from", prev.String()),
		zap.String("to", next.String()),
		zap.Int("failures", b.failures),
	)
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) Stats() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := map[string]any{
		"name":      b.name,
		"state":     b.state.String(),
		"failures":  b.failures,
		"threshold": b.config.Threshold,
		"cooldown":  b.config.Cooldown.String(),
	}
	if b.lastFailure != nil {
		stats["last_error"] = b.lastFailure.Error()
	}
	return stats
}

// Reset closes the circuit.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.moveTo(StateClosed)
}
