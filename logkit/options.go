package logkit

import (
	"io"
	"log/slog"
	"os"
)

type options struct {
	level      slog.Level
	console    io.Writer
	file       string
	maxSizeMB  int
	maxBackups int
	color      bool
	lowercase  bool
	timeFormat string
	handlers   []slog.Handler
	suppress   map[string]slog.Level
	setDefault bool
}

func defaultOptions() *options {
	return &options{
		level:      slog.LevelInfo,
		console:    os.Stderr,
		maxSizeMB:  100,
		maxBackups: 3,
		color:      true,
		timeFormat: "15:04:05",
	}
}

// Option configures Setup.
type Option func(*options)

// WithLevel sets the minimum level of the default handlers.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithConsole sets the console writer. A nil writer disables console output.
// Default: os.Stderr.
func WithConsole(w io.Writer) Option {
	return func(o *options) {
		o.console = w
	}
}

// WithFile adds a rotated, uncolored log file at path.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithRotation sets the file size limit in megabytes and the number of old files to keep.
// Default: 100 MB, 3 backups.
func WithRotation(maxSizeMB, maxBackups int) Option {
	return func(o *options) {
		if maxSizeMB > 0 {
			o.maxSizeMB = maxSizeMB
		}
		if maxBackups >= 0 {
			o.maxBackups = maxBackups
		}
	}
}

// WithColor enables or disables colored console output. Default: true.
func WithColor(enabled bool) Option {
	return func(o *options) {
		o.color = enabled
	}
}

// WithLowercaseLevels prints level names in lowercase.
func WithLowercaseLevels(enabled bool) Option {
	return func(o *options) {
		o.lowercase = enabled
	}
}

// WithTimeFormat sets the timestamp layout. Default: "15:04:05".
func WithTimeFormat(layout string) Option {
	return func(o *options) {
		if layout != "" {
			o.timeFormat = layout
		}
	}
}

// WithHandlers replaces the console and file handlers with the given handlers.
func WithHandlers(handlers ...slog.Handler) Option {
	return func(o *options) {
		o.handlers = append(o.handlers, handlers...)
	}
}

// WithSuppress raises the minimum level of named loggers, e.g. {"http": slog.LevelWarn}.
func WithSuppress(levels map[string]slog.Level) Option {
	return func(o *options) {
		if o.suppress == nil {
			o.suppress = make(map[string]slog.Level, len(levels))
		}
		for name, level := range levels {
			o.suppress[name] = level
		}
	}
}

// WithSetDefault installs the root logger with slog.SetDefault.
func WithSetDefault() Option {
	return func(o *options) {
		o.setDefault = true
	}
}
