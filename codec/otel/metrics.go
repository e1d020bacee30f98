package otel

import (
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all OTEL metrics for the registry.
type Metrics struct {
	// Counters
	OperationCount metric.Int64Counter
	ErrorCount     metric.Int64Counter

	// Histograms
	OperationLatency metric.Float64Histogram
	PayloadSize      metric.Int64Histogram
}

// initMetrics initializes all metrics
func initMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.OperationCount, err = meter.Int64Counter(
		"codec.operations.total",
		metric.WithDescription("Total number of codec operations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	m.ErrorCount, err = meter.Int64Counter(
		"codec.errors.total",
		metric.WithDescription("Total number of codec operation errors"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	m.OperationLatency, err = meter.Float64Histogram(
		"codec.operation.duration",
		metric.WithDescription("Duration of codec operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	m.PayloadSize, err = meter.Int64Histogram(
		"codec.payload.size",
		metric.WithDescription("Size of codec input payloads"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}
