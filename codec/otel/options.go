package otel

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DefaultScope names the tracer and meter taken from the global providers.
const DefaultScope = "github.com/rbaliyan/lazykit/codec"

type options struct {
	scope       string
	serviceName string
	traces      bool
	metrics     bool
	tracer      trace.Tracer
	meter       metric.Meter
}

// Option configures the instrumented registry.
type Option func(*options)

// WithScope sets the instrumentation scope used when the tracer or meter
// comes from the global provider.
func WithScope(name string) Option {
	return func(o *options) {
		if name != "" {
			o.scope = name
		}
	}
}

// WithTracer uses t instead of a tracer from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithMeter uses m instead of a meter from the global provider.
func WithMeter(m metric.Meter) Option {
	return func(o *options) {
		o.meter = m
	}
}

// WithServiceName adds a service.name attribute to every span.
func WithServiceName(name string) Option {
	return func(o *options) {
		o.serviceName = name
	}
}

// WithTracesEnabled turns spans on or off. Off by default.
func WithTracesEnabled(enabled bool) Option {
	return func(o *options) {
		o.traces = enabled
	}
}

// WithMetricsEnabled turns metrics on or off. Off by default.
func WithMetricsEnabled(enabled bool) Option {
	return func(o *options) {
		o.metrics = enabled
	}
}
