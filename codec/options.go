package codec

import "log/slog"

// registryOptions holds configuration for a Registry (unexported).
type registryOptions struct {
	logger           *slog.Logger
	builtins         bool
	charsetCacheSize int
}

// Option configures a Registry.
type Option func(*registryOptions)

func newRegistryOptions() *registryOptions {
	return &registryOptions{
		logger:           slog.Default(),
		builtins:         true,
		charsetCacheSize: 64,
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *registryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithoutBuiltins creates an empty registry.
func WithoutBuiltins() Option {
	return func(o *registryOptions) {
		o.builtins = false
	}
}

// WithCharsetCacheSize sets how many resolved charsets the built-in codecs keep.
// Default: 64.
func WithCharsetCacheSize(size int) Option {
	return func(o *registryOptions) {
		if size > 0 {
			o.charsetCacheSize = size
		}
	}
}
