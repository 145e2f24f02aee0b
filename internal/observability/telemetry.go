package observability

import (
	"context"
	"errors"
	"fmt"

	"physcalc/internal/config"
)

// Shutdown flushes and stops whatever providers Setup installed.
type Shutdown func(context.Context) error

// Setup installs the OTLP trace, metric and log providers when telemetry is
// enabled. When disabled the global no-op providers stay in place and the
// returned Shutdown does nothing.
func Setup(ctx context.Context, cfg config.TelemetryConfig) (Shutdown, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	var shutdowns []func(context.Context) error
	shutdownAll := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	steps := []struct {
		name string
		init func(context.Context, config.TelemetryConfig) (func(context.Context) error, error)
	}{
		{"tracing", InitTracing},
		{"metrics", InitMetrics},
		{"logging", InitLogging},
	}

	for _, step := range steps {
		shutdown, err := step.init(ctx, cfg)
		if err != nil {
			_ = shutdownAll(ctx)
			return nil, fmt.Errorf("init %s: %w", step.name, err)
		}
		shutdowns = append(shutdowns, shutdown)
	}

	return shutdownAll, nil
}
