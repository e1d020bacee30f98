// Package retry runs an operation until it succeeds, with exponential backoff
// between attempts.
//
//	err := retry.Do(ctx, func(ctx context.Context) error {
//		return fetch(ctx)
//	}, retry.WithMaxRetries(5), retry.WithDelay(500*time.Millisecond))
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMaxDuration wraps the last error when the loop ran out of time.
var ErrMaxDuration = errors.New("retry: max duration exceeded")

// Do calls fn until it returns nil, the attempts are used up, the
// retry-if predicate rejects the error or ctx is done. It returns the
// last error from fn, or the context error if ctx ended a wait.
func Do(ctx context.Context, fn func(context.Context) error, opts ...Option) error {
	o := newOptions()
	for _, opt := range opts {
		opt(o)
	}
	return run(ctx, fn, o, waitFor)
}

// Value is Do for functions that return a result.
func Value[T any](ctx context.Context, fn func(context.Context) (T, error), opts ...Option) (T, error) {
	var result T
	err := Do(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	}, opts...)
	return result, err
}

func run(ctx context.Context, fn func(context.Context) error, o *options, wait func(context.Context, time.Duration) error) error {
	start := time.Now()
	delay := o.delay

	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}

		if o.retryIf != nil && !o.retryIf(err) {
			return err
		}
		if attempt >= o.maxRetries {
			return err
		}
		if o.alertThreshold > 0 && attempt >= o.alertThreshold {
			o.logger.Warn("retry alert threshold reached",
				"threshold", o.alertThreshold,
				"attempt", attempt)
		}
		if o.maxDuration > 0 && time.Since(start) >= o.maxDuration {
			o.logger.Warn("retry max duration exceeded", "max_duration", o.maxDuration)
			return fmt.Errorf("%w: %w", ErrMaxDuration, err)
		}

		o.logger.Info("retrying",
			"attempt", attempt,
			"delay", delay,
			"error", err)

		if werr := wait(ctx, delay); werr != nil {
			return werr
		}

		delay = time.Duration(float64(delay) * o.backoff)
		if o.maxDelay > 0 {
			delay = min(delay, o.maxDelay)
		}
	}
}

func waitFor(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
