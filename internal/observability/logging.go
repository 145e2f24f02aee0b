package observability

import (
	"context"

	"physcalc/internal/config"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogging exports logs over OTLP/HTTP in addition to stdout. Call it
// after InitLogger.
func InitLogging(ctx context.Context, cfg config.TelemetryConfig) (func(context.Context) error, error) {
	exporter, err := otlploghttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(
			sdklog.NewBatchProcessor(exporter),
		),
	)

	// debug output (per-evaluation values, health and metrics requests) stays local
	otelCore, err := zapcore.NewIncreaseLevelCore(
		otelzap.NewCore(cfg.ServiceName, otelzap.WithLoggerProvider(provider)),
		zapcore.InfoLevel,
	)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}

	Logger = zap.New(zapcore.NewTee(Logger.Core(), otelCore), zap.AddCaller())

	return provider.Shutdown, nil
}
