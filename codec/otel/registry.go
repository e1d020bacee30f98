// Package otel provides OpenTelemetry instrumentation for codec registries.
package otel

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/rbaliyan/lazykit/codec"
)

// InstrumentedRegistry wraps a codec.Dispatcher with OpenTelemetry tracing and metrics.
// Results and errors of the wrapped registry are returned unchanged.
type InstrumentedRegistry struct {
	registry codec.Dispatcher
	tracer   trace.Tracer
	metrics  *Metrics
	opts     options
}

// Wrap wraps a registry with OpenTelemetry instrumentation.
// By default, both tracing and metrics are disabled. Use WithTracesEnabled(true)
// and/or WithMetricsEnabled(true) to enable them.
func Wrap(registry codec.Dispatcher, opts ...Option) (*InstrumentedRegistry, error) {
	o := options{scope: DefaultScope}
	for _, opt := range opts {
		opt(&o)
	}

	ir := &InstrumentedRegistry{
		registry: registry,
		opts:     o,
	}

	if o.traces {
		if o.tracer != nil {
			ir.tracer = o.tracer
		} else {
			ir.tracer = otel.Tracer(o.scope)
		}
	}

	if o.metrics {
		meter := o.meter
		if meter == nil {
			meter = otel.Meter(o.scope)
		}

		metrics, err := initMetrics(meter)
		if err != nil {
			return nil, err
		}
		ir.metrics = metrics
	}

	return ir, nil
}

// Unwrap returns the underlying registry.
func (r *InstrumentedRegistry) Unwrap() codec.Dispatcher {
	return r.registry
}

// Encode encodes data with the named codec.
func (r *InstrumentedRegistry) Encode(ctx context.Context, data []byte, name, charset string) ([]byte, error) {
	return r.transform(ctx, "encode", data, name, charset, r.registry.Encode)
}

// Decode decodes data with the named codec.
func (r *InstrumentedRegistry) Decode(ctx context.Context, data []byte, name, charset string) ([]byte, error) {
	return r.transform(ctx, "decode", data, name, charset, r.registry.Decode)
}

// Register adds a codec to the underlying registry.
func (r *InstrumentedRegistry) Register(ctx context.Context, name string, encode, decode codec.Func) error {
	if !r.opts.traces {
		start := time.Now()
		err := r.registry.Register(name, encode, decode)
		r.recordOperation(ctx, "register", name, 0, start, err)
		return err
	}

	ctx, span := r.tracer.Start(ctx, "codec.Register",
		trace.WithAttributes(append(r.commonAttributes(),
			attribute.String("codec.name", codec.NormalizeName(name)),
		)...))
	defer span.End()

	start := time.Now()
	err := r.registry.Register(name, encode, decode)
	r.recordOperation(ctx, "register", name, 0, start, err)
	endSpan(span, err)

	return err
}

// Names returns the codec names of the underlying registry.
func (r *InstrumentedRegistry) Names() []string {
	return r.registry.Names()
}

type transformFunc func(data []byte, name, charset string) ([]byte, error)

func (r *InstrumentedRegistry) transform(ctx context.Context, op string, data []byte, name, charset string, fn transformFunc) ([]byte, error) {
	if !r.opts.traces {
		start := time.Now()
		out, err := fn(data, name, charset)
		r.recordOperation(ctx, op, name, len(data), start, err)
		return out, err
	}

	ctx, span := r.tracer.Start(ctx, "codec."+spanName(op),
		trace.WithAttributes(append(r.commonAttributes(),
			attribute.String("codec.name", codec.NormalizeName(name)),
			attribute.String("codec.charset", charset),
			attribute.Int("codec.bytes.in", len(data)),
		)...))
	defer span.End()

	start := time.Now()
	out, err := fn(data, name, charset)
	r.recordOperation(ctx, op, name, len(data), start, err)

	if err == nil {
		span.SetAttributes(attribute.Int("codec.bytes.out", len(out)))
	}
	endSpan(span, err)

	return out, err
}

func spanName(op string) string {
	switch op {
	case "encode":
		return "Encode"
	case "decode":
		return "Decode"
	default:
		return op
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func (r *InstrumentedRegistry) commonAttributes() []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if r.opts.serviceName != "" {
		attrs = append(attrs, attribute.String("service.name", r.opts.serviceName))
	}
	return attrs
}

// recordOperation records metrics for an operation
func (r *InstrumentedRegistry) recordOperation(ctx context.Context, op, name string, size int, start time.Time, err error) {
	if !r.opts.metrics {
		return
	}

	latency := time.Since(start).Seconds()
	attrs := []attribute.KeyValue{
		attribute.String("operation", op),
		attribute.String("codec", codec.NormalizeName(name)),
	}

	r.metrics.OperationCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	r.metrics.OperationLatency.Record(ctx, latency, metric.WithAttributes(attrs...))
	if op != "register" {
		r.metrics.PayloadSize.Record(ctx, int64(size), metric.WithAttributes(attrs...))
	}

	if err != nil {
		errorAttrs := append(attrs, attribute.String("error_type", errorType(err)))
		r.metrics.ErrorCount.Add(ctx, 1, metric.WithAttributes(errorAttrs...))
	}
}

// errorType returns a string classification of the error
func errorType(err error) string {
	switch {
	case codec.IsUnknownCodec(err):
		return "unknown_codec"
	case codec.IsDuplicateCodec(err):
		return "duplicate_codec"
	case errors.Is(err, codec.ErrInvalidCodec):
		return "invalid_codec"
	case errors.Is(err, codec.ErrUnknownCharset):
		return "unknown_charset"
	default:
		return "codec"
	}
}
