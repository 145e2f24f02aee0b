package observability

import (
	"context"
	"net/http"

	"physcalc/internal/handlers"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Failure describes one failed operation.
type Failure struct {
	Op      string
	Kind    string
	Message string // shown to the caller
	Err     error

	// Level the failure is logged at. The zero value is info, which suits
	// input mistakes; upstream and internal faults should raise it.
	Level zapcore.Level
}

// RecordFailure marks span as failed, counts the failure by operation and
// kind, and logs it with the request id.
func RecordFailure(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, f Failure) {
	span.RecordError(f.Err)
	span.SetStatus(codes.Error, f.Message)

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", f.Op),
		attribute.String("kind", f.Kind),
	))

	if ce := logger.Check(f.Level, f.Message); ce != nil {
		ce.Write(
			zap.String("operation", f.Op),
			zap.String("kind", f.Kind),
			zap.Error(f.Err),
			zap.String("request_id", RequestIDFromContext(ctx)),
		)
	}
}

// RecordError is RecordFailure followed by a JSON error response carrying
// f.Message. The request id travels in the X-Request-ID header.
func RecordError(ctx context.Context, w http.ResponseWriter, status int, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, f Failure) {
	RecordFailure(ctx, span, logger, counter, f)
	handlers.WriteError(w, status, f.Message)
}
