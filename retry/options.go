package retry

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rbaliyan/lazykit/settings"
)

type options struct {
	maxRetries     int
	delay          time.Duration
	backoff        float64
	maxDelay       time.Duration
	maxDuration    time.Duration
	alertThreshold int
	retryIf        func(error) bool
	logger         *slog.Logger
}

var (
	defaultsMu sync.RWMutex
	defaults   = settings.Defaults().Retry
)

// SetDefaults replaces the process-wide defaults used when Do is called
// without WithMaxRetries or WithDelay. Zero fields are ignored.
func SetDefaults(s settings.RetrySettings) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	if s.MaxRetries > 0 {
		defaults.MaxRetries = s.MaxRetries
	}
	if s.Delay > 0 {
		defaults.Delay = s.Delay
	}
	if s.Backoff > 0 {
		defaults.Backoff = s.Backoff
	}
	if s.MaxDuration > 0 {
		defaults.MaxDuration = s.MaxDuration
	}
	if s.AlertThreshold > 0 {
		defaults.AlertThreshold = s.AlertThreshold
	}
}

// Defaults returns the current process-wide defaults.
func Defaults() settings.RetrySettings {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaults
}

func newOptions() *options {
	d := Defaults()
	return &options{
		maxRetries:     d.MaxRetries,
		delay:          d.Delay,
		backoff:        d.Backoff,
		maxDuration:    d.MaxDuration,
		alertThreshold: d.AlertThreshold,
		logger:         slog.Default(),
	}
}

// Option configures a retry loop.
type Option func(*options)

// WithMaxRetries sets the total number of attempts. Default: 3.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRetries = n
		}
	}
}

// WithDelay sets the wait before the second attempt. Default: 1s.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.delay = d
		}
	}
}

// WithBackoff sets the factor applied to the delay after each failure. Default: 2.0.
func WithBackoff(factor float64) Option {
	return func(o *options) {
		if factor >= 1 {
			o.backoff = factor
		}
	}
}

// WithMaxDelay caps the delay between attempts.
func WithMaxDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.maxDelay = d
		}
	}
}

// WithMaxDuration stops retrying once the loop has run for d.
func WithMaxDuration(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.maxDuration = d
		}
	}
}

// WithAlertThreshold logs a warning for every failed attempt at or beyond n.
func WithAlertThreshold(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.alertThreshold = n
		}
	}
}

// WithRetryIf restricts retries to errors for which fn returns true.
// Other errors are returned immediately.
func WithRetryIf(fn func(error) bool) Option {
	return func(o *options) {
		o.retryIf = fn
	}
}

// WithLogger sets the logger for retry messages. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// FromSettings converts RetrySettings into options.
func FromSettings(s settings.RetrySettings) []Option {
	return []Option{
		WithMaxRetries(s.MaxRetries),
		WithDelay(s.Delay),
		WithBackoff(s.Backoff),
		WithMaxDuration(s.MaxDuration),
		WithAlertThreshold(s.AlertThreshold),
	}
}
