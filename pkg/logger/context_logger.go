package logger

import (
	"context"
	"time"

	ctxutil "github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ContextLogBuilder collects fields for one entry and adds the request
// scoped values found in ctx.
type ContextLogBuilder struct {
	logger    *OptimizedLogger
	ctx       context.Context
	level     zapcore.Level
	fields    []zap.Field
	message   string
	shouldLog bool
}

// WithContext starts an entry bound to ctx.
func (ol *OptimizedLogger) WithContext(ctx context.Context) *ContextLogBuilder {
	return &ContextLogBuilder{
		logger:    ol,
		ctx:       ctx,
		level:     zapcore.InfoLevel,
		fields:    make([]zap.Field, 0, 12),
		shouldLog: true,
	}
}

func (clb *ContextLogBuilder) extractContextFields() {
	if clb.ctx == nil {
		return
	}

	for _, kv := range [...]struct {
		key   string
		value string
	}{
		{"request_id", ctxutil.GetRequestID(clb.ctx)},
		{"trace_id", ctxutil.GetTraceID(clb.ctx)},
		{"correlation_id", ctxutil.GetCorrelationID(clb.ctx)},
		{"client_ip", ctxutil.GetClientIP(clb.ctx)},
		{"user_agent", ctxutil.GetUserAgent(clb.ctx)},
		{"subject", ctxutil.GetSubject(clb.ctx)},
		{"module", ctxutil.GetModule(clb.ctx)},
		{"function", ctxutil.GetFunction(clb.ctx)},
	} {
		if kv.value != "" {
			clb.fields = append(clb.fields, zap.String(kv.key, kv.value))
		}
	}

	if elapsed := ctxutil.GetDuration(clb.ctx); elapsed > 0 {
		clb.fields = append(clb.fields, zap.Duration("elapsed", elapsed))
	}
}

func (clb *ContextLogBuilder) at(level zapcore.Level, message string) *ContextLogBuilder {
	if !clb.logger.ShouldLog(level) {
		clb.shouldLog = false
		return clb
	}
	clb.level = level
	clb.message = message
	clb.extractContextFields()
	return clb
}

func (clb *ContextLogBuilder) Info(message string) *ContextLogBuilder {
	return clb.at(zapcore.InfoLevel, message)
}

func (clb *ContextLogBuilder) Warn(message string) *ContextLogBuilder {
	return clb.at(zapcore.WarnLevel, message)
}

func (clb *ContextLogBuilder) Error(message string) *ContextLogBuilder {
	return clb.at(zapcore.ErrorLevel, message)
}

func (clb *ContextLogBuilder) Debug(message string) *ContextLogBuilder {
	return clb.at(zapcore.DebugLevel, message)
}

func (clb *ContextLogBuilder) add(f zap.Field) *ContextLogBuilder {
	if clb.shouldLog {
		clb.fields = append(clb.fields, f)
	}
	return clb
}

func (clb *ContextLogBuilder) String(key, value string) *ContextLogBuilder {
	return clb.add(zap.String(key, value))
}

func (clb *ContextLogBuilder) Int(key string, value int) *ContextLogBuilder {
	return clb.add(zap.Int(key, value))
}

func (clb *ContextLogBuilder) Int64(key string, value int64) *ContextLogBuilder {
	return clb.add(zap.Int64(key, value))
}

func (clb *ContextLogBuilder) Uint(key string, value uint) *ContextLogBuilder {
	return clb.add(zap.Uint(key, value))
}

func (clb *ContextLogBuilder) Bool(key string, value bool) *ContextLogBuilder {
	return clb.add(zap.Bool(key, value))
}

func (clb *ContextLogBuilder) Float64(key string, value float64) *ContextLogBuilder {
	return clb.add(zap.Float64(key, value))
}

func (clb *ContextLogBuilder) Strings(key string, values []string) *ContextLogBuilder {
	return clb.add(zap.Strings(key, values))
}

func (clb *ContextLogBuilder) Duration(value time.Duration) *ContextLogBuilder {
	return clb.add(zap.Duration("duration", value))
}

func (clb *ContextLogBuilder) Err(err error) *ContextLogBuilder {
	if err == nil {
		return clb
	}
	return clb.add(zap.Error(err))
}

func (clb *ContextLogBuilder) Any(key string, value interface{}) *ContextLogBuilder {
	return clb.add(zap.Any(key, value))
}

func (clb *ContextLogBuilder) Method(method string) *ContextLogBuilder {
	return clb.add(zap.String("method", method))
}

func (clb *ContextLogBuilder) Path(path string) *ContextLogBuilder {
	return clb.add(zap.String("path", path))
}

func (clb *ContextLogBuilder) StatusCode(code int) *ContextLogBuilder {
	return clb.add(zap.Int("status_code", code))
}

// Log writes the entry. Entries for cancelled contexts are dropped.
func (clb *ContextLogBuilder) Log() {
	if !clb.shouldLog {
		return
	}

	if clb.ctx != nil {
		select {
		case <-clb.ctx.Done():
			return
		default:
		}
	}

	if ce := clb.logger.logger.Check(clb.level, clb.message); ce != nil {
		ce.Write(clb.fields...)
	}
}

func WithContext(ctx context.Context) *ContextLogBuilder {
	return GetOptimizedLogger().WithContext(ctx)
}

func InfoWithContext(ctx context.Context, message string) *ContextLogBuilder {
	return GetOptimizedLogger().WithContext(ctx).Info(message)
}

func WarnWithContext(ctx context.Context, message string) *ContextLogBuilder {
	return GetOptimizedLogger().WithContext(ctx).Warn(message)
}

func ErrorWithContext(ctx context.Context, message string) *ContextLogBuilder {
	return GetOptimizedLogger().WithContext(ctx).Error(message)
}

func DebugWithContext(ctx context.Context, message string) *ContextLogBuilder {
	return GetOptimizedLogger().WithContext(ctx).Debug(message)
}
