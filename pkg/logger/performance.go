package logger

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

// PerformanceConfig tunes the fluent logger.
type PerformanceConfig struct {
	MinLogLevel      zapcore.Level `json:"min_log_level"`
	EnableSampling   bool          `json:"enable_sampling"`
	SampleFirst      int           `json:"sample_first"`
	SampleThereafter int           `json:"sample_thereafter"`
	EnableRateLimit  bool          `json:"enable_rate_limit"`
	MaxLogPerSecond  int           `json:"max_log_per_second"`
}

func DefaultPerformanceConfig() PerformanceConfig {
	return PerformanceConfig{
		MinLogLevel:      zapcore.InfoLevel,
		SampleFirst:      100,
		SampleThereafter: 10,
		MaxLogPerSecond:  1000,
	}
}

// ProductionConfig samples repeated messages and caps throughput.
func ProductionConfig() PerformanceConfig {
	return PerformanceConfig{
		MinLogLevel:      zapcore.WarnLevel,
		EnableSampling:   true,
		SampleFirst:      100,
		SampleThereafter: 10,
		EnableRateLimit:  true,
		MaxLogPerSecond:  500,
	}
}

func DevelopmentConfig() PerformanceConfig {
	return PerformanceConfig{
		MinLogLevel:      zapcore.DebugLevel,
		SampleFirst:      100,
		SampleThereafter: 10,
		MaxLogPerSecond:  10000,
	}
}

// OptimizedLogger drops entries below the configured level or above the
// configured rate before any field is built.
type OptimizedLogger struct {
	config  PerformanceConfig
	logger  *zap.Logger
	limiter *rate.Limiter
}

// NewOptimizedLogger builds a JSON stdout logger for config.
func NewOptimizedLogger(config PerformanceConfig) (*OptimizedLogger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(config.MinLogLevel)
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	zapConfig.DisableStacktrace = true
	zapConfig.Sampling = nil

	zapLogger, err := zapConfig.Build(zap.WithCaller(false))
	if err != nil {
		return nil, err
	}

	return NewOptimizedLoggerFrom(zapLogger, config), nil
}

// NewOptimizedLoggerFrom wraps an existing zap logger, e.g. zap.NewNop in
// tests.
func NewOptimizedLoggerFrom(zapLogger *zap.Logger, config PerformanceConfig) *OptimizedLogger {
	if config.EnableSampling {
		zapLogger = zapLogger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewSamplerWithOptions(core, time.Second, config.SampleFirst, config.SampleThereafter)
		}))
	}

	perSecond := config.MaxLogPerSecond
	if perSecond < 1 {
		perSecond = 1
	}

	return &OptimizedLogger{
		config:  config,
		logger:  zapLogger,
		limiter: rate.NewLimiter(rate.Limit(perSecond), perSecond),
	}
}

// ShouldLog reports whether an entry at level is written.
func (ol *OptimizedLogger) ShouldLog(level zapcore.Level) bool {
	if level < ol.config.MinLogLevel {
		return false
	}
	if ol.config.EnableRateLimit && !ol.limiter.Allow() {
		return false
	}
	return true
}

var optimized atomic.Pointer[OptimizedLogger]

// InitOptimizedLogger replaces the process-wide fluent logger.
func InitOptimizedLogger(config PerformanceConfig) error {
	ol, err := NewOptimizedLogger(config)
	if err != nil {
		return err
	}
	optimized.Store(ol)
	return nil
}

// SetOptimizedLogger installs ol as the process-wide fluent logger.
func SetOptimizedLogger(ol *OptimizedLogger) {
	optimized.Store(ol)
}

// ConfigForEnvironment picks the preset for an APP_ENV value.
func ConfigForEnvironment(env string) PerformanceConfig {
	switch env {
	case constants.EnvProduction:
		return ProductionConfig()
	case constants.EnvDevelopment:
		return DevelopmentConfig()
	default:
		return DefaultPerformanceConfig()
	}
}

// GetOptimizedLogger returns the fluent logger, building one from APP_ENV on
// first use.
func GetOptimizedLogger() *OptimizedLogger {
	if ol := optimized.Load(); ol != nil {
		return ol
	}

	ol, err := NewOptimizedLogger(ConfigForEnvironment(os.Getenv("APP_ENV")))
	if err != nil {
		ol = NewOptimizedLoggerFrom(zap.NewNop(), DefaultPerformanceConfig())
	}
	if optimized.CompareAndSwap(nil, ol) {
		return ol
	}
	return optimized.Load()
}
