package ctxutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewContextWithRequest(t *testing.T) {
	ctx := NewContextWithRequest(context.Background(), "handler", "GetSuppliers")

	assert.Equal(t, "handler", GetModule(ctx))
	assert.Equal(t, "GetSuppliers", GetFunction(ctx))
	assert.False(t, GetStartTime(ctx).IsZero())
}

func TestNewContextWithRequestKeepsStartTime(t *testing.T) {
	start := time.Now().Add(-time.Minute)
	ctx := context.WithValue(context.Background(), StartTimeKey, start)

	ctx = NewContextWithRequest(ctx, "handler", "GetSupplier")

	assert.Equal(t, start, GetStartTime(ctx))
	assert.GreaterOrEqual(t, GetDuration(ctx), time.Minute)
}

func TestGettersOnEmptyContext(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetSubject(ctx))
	assert.Empty(t, GetClientIP(ctx))
	assert.Zero(t, GetDuration(ctx))
	assert.Empty(t, ContextToMap(ctx))
}

func TestContextToMap(t *testing.T) {
	ctx := WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = WithSubject(ctx, "purchasing")
	ctx = WithLayer(ctx, "service", "GetTransactions")

	got := ContextToMap(ctx)

	assert.Equal(t, "req-1", got["request_id"])
	assert.Equal(t, "purchasing", got["subject"])
	assert.Equal(t, "service", got["module"])
	assert.Equal(t, "GetTransactions", got["function"])
}
