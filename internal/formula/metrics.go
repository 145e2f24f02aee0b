package formula

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type metrics struct {
	evaluations metric.Int64Counter
	duration    metric.Float64Histogram
	errors      metric.Int64Counter
	lastResult  metric.Float64Gauge
}

// newMetrics creates the formula instruments from the global meter provider.
// Instruments created before the provider is installed are forwarded to it.
func newMetrics() (*metrics, error) {
	meter := otel.Meter("formula")

	var (
		m   metrics
		err error
	)

	m.evaluations, err = meter.Int64Counter("formula.evaluations.total",
		metric.WithDescription("Total number of successful formula evaluations"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating evaluations counter: %w", err)
	}

	m.duration, err = meter.Float64Histogram("formula.evaluation.duration",
		metric.WithDescription("Duration of formula evaluations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 250, 1000),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	m.errors, err = meter.Int64Counter("formula.errors.total",
		metric.WithDescription("Total number of failed formula evaluations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error counter: %w", err)
	}

	m.lastResult, err = meter.Float64Gauge("formula.last_result",
		metric.WithDescription("The value of each output of the last evaluation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating result gauge: %w", err)
	}

	return &m, nil
}
