package settings

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/rbaliyan/lazykit/serde"
)

// Loader reads a configuration file and unmarshals named sections into
// registered struct pointers.
//
// Usage:
//
//	loader := settings.NewLoader("lazykit.yaml")
//	loader.Register("log", &logSettings)
//	if err := loader.Load(); err != nil { ... }
type Loader struct {
	path    string
	opts    loaderOptions
	mu      sync.RWMutex
	targets map[string]any // name -> pointer to struct
	raw     map[string]any // parsed file contents
	loaded  bool
}

// NewLoader creates a Loader for the given file path.
// The format is detected from the extension (.yaml, .yml, .toml, .json)
// unless WithFormat is given.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	o := loaderOptions{
		tagName: "mapstructure",
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Loader{
		path:    path,
		opts:    o,
		targets: make(map[string]any),
	}
}

// Register registers a struct pointer under a top-level section name.
func (l *Loader) Register(name string, target any) error {
	if target == nil {
		return fmt.Errorf("settings: Register(%q): target must be a non-nil pointer to a struct", name)
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("settings: Register(%q): target must be a non-nil pointer to a struct, got %T", name, target)
	}
	if rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("settings: Register(%q): target must point to a struct, got pointer to %s", name, rv.Elem().Kind())
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.targets[name] = target
	return nil
}

// MustRegister is like Register but panics on error.
func (l *Loader) MustRegister(name string, target any) {
	if err := l.Register(name, target); err != nil {
		panic(err)
	}
}

// Load reads the file and unmarshals sections into registered structs.
func (l *Loader) Load() error {
	f, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("settings: open %s: %w", l.path, err)
	}
	defer f.Close()

	return l.LoadReader(f)
}

// LoadReader reads configuration from r and unmarshals sections into
// registered structs.
func (l *Loader) LoadReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("settings: read: %w", err)
	}

	format := l.detectFormat()
	if format == nil {
		return fmt.Errorf("settings: cannot detect format of %q; use WithFormat option", l.path)
	}

	var raw map[string]any
	if err := format.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("settings: parse %s: %w", format.Name(), err)
	}
	if raw == nil {
		raw = make(map[string]any)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.raw = raw
	l.loaded = true

	if l.opts.logger != nil {
		l.opts.logger.Debug("settings loaded", "path", l.path, "format", format.Name(), "sections", len(raw))
	}

	return l.unmarshalAllLocked()
}

// Raw returns the raw parsed map for a top-level key, or nil.
func (l *Loader) Raw(name string) map[string]any {
	l.mu.RLock()
	defer l.mu.RUnlock()

	m, _ := l.raw[name].(map[string]any)
	return m
}

// Names returns the registered section names in sorted order.
func (l *Loader) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.targets))
	for name := range l.targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Loaded reports whether Load or LoadReader has succeeded.
func (l *Loader) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

func (l *Loader) detectFormat() serde.Format {
	if l.opts.format != "" {
		name := strings.ToLower(l.opts.format)
		if name == "yml" {
			name = "yaml"
		}
		return serde.Get(name)
	}
	return serde.ForPath(l.path)
}

// unmarshalAllLocked must be called with l.mu held.
func (l *Loader) unmarshalAllLocked() error {
	for name, target := range l.targets {
		section, ok := l.raw[name]
		if !ok {
			// Section not in file, keep defaults
			continue
		}

		if err := l.decode(section, target); err != nil {
			return fmt.Errorf("settings: unmarshal %q: %w", name, err)
		}
	}

	return nil
}

// decode uses mapstructure to decode a raw value into a target struct.
func (l *Loader) decode(input, output any) error {
	hooks := []mapstructure.DecodeHookFunc{
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.TextUnmarshallerHookFunc(),
	}
	hooks = append(hooks, l.opts.decodeHooks...)

	config := &mapstructure.DecoderConfig{
		Result:           output,
		TagName:          l.opts.tagName,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(hooks...),
		ErrorUnused:      l.opts.strict,
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
