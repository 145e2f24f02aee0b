package observability

import (
	"context"

	"physcalc/internal/config"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Logger is the process logger. It starts as a no-op so packages and tests
// can log before InitLogger runs.
var Logger = zap.NewNop()

// InitLogger replaces Logger with a production JSON logger, or a console
// logger at debug level in dev mode. A configured level overrides either.
func InitLogger(cfg config.ServerConfig) error {
	zcfg := zap.NewProductionConfig()
	if cfg.Dev {
		zcfg = zap.NewDevelopmentConfig()
	}
	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		zcfg.Level = level
	}

	l, err := zcfg.Build()
	if err != nil {
		return err
	}

	Logger = l
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger carrying trace_id and span_id of the
// active span in ctx.
//
// ctx itself is attached as the "context" field: the otelzap core looks for a
// field holding a context.Context and emits the record with it, which fills
// the native TraceID/SpanID of the exported OTLP log record.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return Logger
	}

	return Logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
