package settings

import (
	"log/slog"

	"github.com/go-viper/mapstructure/v2"
)

// LoaderOption configures a Loader.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	format      string // explicit format override (yaml, toml, json)
	strict      bool   // fail on unknown fields
	tagName     string // struct tag for mapping (default: mapstructure)
	decodeHooks []mapstructure.DecodeHookFunc
	logger      *slog.Logger
}

// WithFormat explicitly sets the file format.
// Supported: "yaml", "yml", "toml", "json".
func WithFormat(format string) LoaderOption {
	return func(o *loaderOptions) {
		o.format = format
	}
}

// WithStrictMode makes unknown fields an error.
func WithStrictMode() LoaderOption {
	return func(o *loaderOptions) {
		o.strict = true
	}
}

// WithTagName sets the struct tag used for field mapping.
// Default is "mapstructure".
func WithTagName(tag string) LoaderOption {
	return func(o *loaderOptions) {
		if tag != "" {
			o.tagName = tag
		}
	}
}

// WithDecodeHook adds a custom mapstructure decode hook.
func WithDecodeHook(fn mapstructure.DecodeHookFunc) LoaderOption {
	return func(o *loaderOptions) {
		o.decodeHooks = append(o.decodeHooks, fn)
	}
}

// WithLogger sets an optional logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(o *loaderOptions) {
		o.logger = logger
	}
}
