// Package logkit builds slog loggers with a compact "[15:04:05][INFO] message"
// layout, optional rotated file output and per-name level suppression.
//
//	logging, err := logkit.Setup(logkit.WithLevel(slog.LevelDebug), logkit.WithFile("logs/app.log"))
//	if err != nil {
//		return err
//	}
//	defer logging.Close()
//
//	logging.Suppress(map[string]slog.Level{"http": slog.LevelWarn})
//	httpLog := logging.Logger("http")
package logkit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rbaliyan/lazykit/settings"
)

// NameKey is the attribute key carrying a named logger's name.
const NameKey = "logger"

// Logging owns the handlers built by Setup.
type Logging struct {
	root    slog.Handler
	closers []io.Closer

	mu       sync.RWMutex
	suppress map[string]slog.Level
}

// Setup builds the console and file handlers and returns the Logging that owns them.
func Setup(opts ...Option) (*Logging, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	l := &Logging{suppress: make(map[string]slog.Level)}

	handlers := o.handlers
	if len(handlers) == 0 {
		if o.console != nil {
			handlers = append(handlers, consoleHandler(o))
		}
		if o.file != "" {
			if dir := filepath.Dir(o.file); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("logkit: create log dir: %w", err)
				}
			}
			rotator := &lumberjack.Logger{
				Filename:   o.file,
				MaxSize:    o.maxSizeMB,
				MaxBackups: o.maxBackups,
			}
			l.closers = append(l.closers, rotator)
			handlers = append(handlers, newPlainHandler(rotator, o.level, o.timeFormat, o.lowercase))
		}
	}

	switch len(handlers) {
	case 0:
		l.root = slog.DiscardHandler
	case 1:
		l.root = handlers[0]
	default:
		l.root = &fanoutHandler{handlers: handlers}
	}

	l.Suppress(o.suppress)

	if o.setDefault {
		slog.SetDefault(l.Logger(""))
	}
	return l, nil
}

// FromSettings converts LogSettings into Setup options.
func FromSettings(s settings.LogSettings) ([]Option, error) {
	opts := []Option{
		WithColor(s.Color),
		WithLowercaseLevels(s.Lowercase),
		WithTimeFormat(s.TimeFormat),
		WithRotation(s.MaxSizeMB, s.MaxBackups),
	}

	if s.Level != "" {
		level, err := ParseLevel(s.Level)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithLevel(level))
	}
	if s.File != "" {
		opts = append(opts, WithFile(s.File))
	}
	if len(s.Suppress) > 0 {
		levels := make(map[string]slog.Level, len(s.Suppress))
		for name, v := range s.Suppress {
			level, err := ParseLevel(v)
			if err != nil {
				return nil, fmt.Errorf("logkit: suppress %s: %w", name, err)
			}
			levels[name] = level
		}
		opts = append(opts, WithSuppress(levels))
	}
	return opts, nil
}

// Logger returns a logger for name. Records from a named logger carry a
// "logger" attribute and obey Suppress. An empty name returns the root logger.
func (l *Logging) Logger(name string) *slog.Logger {
	if name == "" {
		return slog.New(l.root)
	}
	h := &namedHandler{
		inner: l.root.WithAttrs([]slog.Attr{slog.String(NameKey, name)}),
		name:  name,
		owner: l,
	}
	return slog.New(h)
}

// Suppress sets the minimum level for the named loggers in levels.
// A name also covers its dotted children, so "http" covers "http.client".
func (l *Logging) Suppress(levels map[string]slog.Level) {
	if len(levels) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for name, level := range levels {
		l.suppress[name] = level
	}
}

// Close releases the log file, if any.
func (l *Logging) Close() error {
	var firstErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// minLevel returns the suppression level for name and whether one applies.
// The longest matching dotted prefix wins.
func (l *Logging) minLevel(name string) (slog.Level, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for n := name; n != ""; {
		if level, ok := l.suppress[n]; ok {
			return level, true
		}
		i := strings.LastIndexByte(n, '.')
		if i < 0 {
			break
		}
		n = n[:i]
	}
	return 0, false
}

type namedHandler struct {
	inner slog.Handler
	name  string
	owner *Logging
}

func (h *namedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if floor, ok := h.owner.minLevel(h.name); ok && level < floor {
		return false
	}
	return h.inner.Enabled(ctx, level)
}

func (h *namedHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *namedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &namedHandler{inner: h.inner.WithAttrs(attrs), name: h.name, owner: h.owner}
}

func (h *namedHandler) WithGroup(name string) slog.Handler {
	return &namedHandler{inner: h.inner.WithGroup(name), name: h.name, owner: h.owner}
}

// consoleHandler returns the colored charmbracelet handler, or the plain
// handler when color is off.
func consoleHandler(o *options) slog.Handler {
	if !o.color {
		return newPlainHandler(o.console, o.level, o.timeFormat, o.lowercase)
	}

	logger := log.NewWithOptions(o.console, log.Options{
		ReportTimestamp: true,
		TimeFormat:      o.timeFormat,
		Level:           log.Level(o.level),
	})

	styles := log.DefaultStyles()
	styles.Timestamp = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	if o.lowercase {
		for level, style := range styles.Levels {
			styles.Levels[level] = style.SetString(strings.ToLower(level.String()))
		}
	}
	logger.SetStyles(styles)
	return logger
}
