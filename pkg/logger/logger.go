package logger

import (
	"os"
	"path/filepath"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger *zap.Logger
	Sugar  *zap.SugaredLogger
)

// InitLogger builds the process logger: info, error and debug files under
// cfg.Log.Path teed with stdout and stderr.
func InitLogger(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.Log.Path, 0755); err != nil {
		return err
	}

	level := levelFor(cfg)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	files := make(map[string]*os.File, 3)
	for _, name := range []string{"info.log", "error.log", "debug.log"} {
		f, err := os.OpenFile(filepath.Join(cfg.Log.Path, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			for _, opened := range files {
				opened.Close()
			}
			return err
		}
		files[name] = f
	}

	encoder := zapcore.NewJSONEncoder(encoderConfig)
	if cfg.App.Environment == "production" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewTee(
		zapcore.NewCore(encoder,
			zapcore.NewMultiWriteSyncer(zapcore.AddSync(files["info.log"]), zapcore.AddSync(os.Stdout)),
			level),
		zapcore.NewCore(encoder,
			zapcore.NewMultiWriteSyncer(zapcore.AddSync(files["error.log"]), zapcore.AddSync(os.Stderr)),
			zapcore.ErrorLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(files["debug.log"]),
			zapcore.DebugLevel),
	)

	Logger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	Sugar = Logger.Sugar()

	return nil
}

func levelFor(cfg *config.Config) zapcore.Level {
	if cfg.Log.Level != "" {
		if lvl, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
			return lvl
		}
	}
	if cfg.App.Environment == "production" {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

// GetLogger returns the structured logger, or a no-op logger before
// InitLogger has run.
func GetLogger() *zap.Logger {
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger
}

// Sync syncs all logs (call this before application exits)
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
	if ol := optimized.Load(); ol != nil {
		_ = ol.logger.Sync()
	}
}

// LogRequest logs HTTP request information
func LogRequest(method, path string, statusCode int, duration int64, clientIP string, userAgent string) {
	GetLogger().Info("HTTP Request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Int64("duration_ms", duration),
		zap.String("client_ip", clientIP),
		zap.String("user_agent", userAgent),
	)
}

// LogPanic logs a recovered panic
func LogPanic(recovered interface{}, fields ...zap.Field) {
	GetLogger().Error("Panic recovered", append([]zap.Field{
		zap.Any("panic", recovered),
		zap.Stack("stack"),
	}, fields...)...)
}

// LogCache logs cache hits and misses
func LogCache(operation, key string, hit bool, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.String("operation", operation),
		zap.String("key", key),
		zap.Bool("hit", hit),
	}, fields...)

	GetLogger().Debug("Cache operation", allFields...)
}
