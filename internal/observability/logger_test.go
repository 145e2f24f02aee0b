package observability

import (
	"context"
	"testing"

	"physcalc/internal/config"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLoggerLevels(t *testing.T) {
	old := Logger
	t.Cleanup(func() { Logger = old })

	tests := []struct {
		name  string
		cfg   config.ServerConfig
		want  zapcore.Level
		below zapcore.Level
	}{
		{name: "production", cfg: config.ServerConfig{}, want: zapcore.InfoLevel, below: zapcore.DebugLevel},
		{name: "dev", cfg: config.ServerConfig{Dev: true}, want: zapcore.DebugLevel},
		{name: "override", cfg: config.ServerConfig{Dev: true, LogLevel: "warn"}, want: zapcore.WarnLevel, below: zapcore.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := InitLogger(tc.cfg); err != nil {
				t.Fatalf("InitLogger: %v", err)
			}
			if !Logger.Core().Enabled(tc.want) {
				t.Fatalf("expected %s to be enabled", tc.want)
			}
			if tc.want > zapcore.DebugLevel && Logger.Core().Enabled(tc.below) {
				t.Fatalf("expected %s to be disabled", tc.below)
			}
		})
	}
}

func TestInitLoggerRejectsUnknownLevel(t *testing.T) {
	old := Logger
	t.Cleanup(func() { Logger = old })

	if err := InitLogger(config.ServerConfig{LogLevel: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLoggerWithTraceAddsSpanIDs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	old := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = old })

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	LoggerWithTrace(ctx).Info("hello")
	LoggerWithTrace(context.Background()).Info("no span")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["trace_id"] != traceID.String() || fields["span_id"] != spanID.String() {
		t.Fatalf("expected trace ids, got %#v", fields)
	}
	if _, ok := entries[1].ContextMap()["trace_id"]; ok {
		t.Fatal("did not expect trace_id without an active span")
	}
}
