package codec

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

// Registry maps codec names to codecs.
//
// Reads load an immutable snapshot without locking. Register copies the
// snapshot under a mutex and publishes the new one, so a registration is
// visible to every later Encode or Decode call.
type Registry struct {
	mu       sync.Mutex // serializes writers
	entries  atomic.Pointer[map[string]Codec]
	logger   *slog.Logger
	charsets *charsets
}

// Compile-time interface check
var _ Dispatcher = (*Registry)(nil)

// New creates a registry seeded with the built-in codecs.
func New(opts ...Option) (*Registry, error) {
	o := newRegistryOptions()
	for _, opt := range opts {
		opt(o)
	}

	cs, err := newCharsets(o.charsetCacheSize)
	if err != nil {
		return nil, fmt.Errorf("codec: charset cache: %w", err)
	}

	r := &Registry{
		logger:   o.logger,
		charsets: cs,
	}

	entries := make(map[string]Codec)
	if o.builtins {
		for name, c := range builtins(cs) {
			entries[name] = c
		}
	}
	r.entries.Store(&entries)

	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Registry {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) snapshot() map[string]Codec {
	return *r.entries.Load()
}

// Encode encodes data with the named codec.
// An empty charset means DefaultCharset. Errors from the codec are returned unchanged.
func (r *Registry) Encode(data []byte, name, charset string) ([]byte, error) {
	c, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return c.Encode(data, charsetOrDefault(charset))
}

// Decode decodes data with the named codec.
// An empty charset means DefaultCharset. Errors from the codec are returned unchanged.
func (r *Registry) Decode(data []byte, name, charset string) ([]byte, error) {
	c, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return c.Decode(data, charsetOrDefault(charset))
}

// EncodeString encodes s and returns the result as a string.
func (r *Registry) EncodeString(s, name, charset string) (string, error) {
	out, err := r.Encode([]byte(s), name, charset)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DecodeString decodes s and returns the result as a string.
func (r *Registry) DecodeString(s, name, charset string) (string, error) {
	out, err := r.Decode([]byte(s), name, charset)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Register adds a codec built from two functions.
// Returns a DuplicateCodecError if name is taken and ErrInvalidCodec if
// name is empty or either function is nil.
func (r *Registry) Register(name string, encode, decode Func) error {
	return r.RegisterCodec(name, Pair(encode, decode))
}

// RegisterCodec adds c under name with the same rules as Register.
func (r *Registry) RegisterCodec(name string, c Codec) error {
	key := NormalizeName(name)
	if err := validateCodec(key, c); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.snapshot()
	if _, exists := current[key]; exists {
		return &DuplicateCodecError{Name: key}
	}

	next := make(map[string]Codec, len(current)+1)
	maps.Copy(next, current)
	next[key] = c
	r.entries.Store(&next)

	r.logger.Debug("codec registered", "name", key)
	return nil
}

// validateCodec rejects entries that could not serve both directions.
func validateCodec(key string, c Codec) error {
	if key == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCodec)
	}
	switch fc := c.(type) {
	case nil:
		return fmt.Errorf("%w: %q is nil", ErrInvalidCodec, key)
	case funcCodec:
		if fc.encode == nil || fc.decode == nil {
			return fmt.Errorf("%w: %q has a nil encode or decode function", ErrInvalidCodec, key)
		}
	}
	return nil
}

// MustRegister is like Register but panics on error.
// Use this during program initialization where a failed registration is a programmer error.
func (r *Registry) MustRegister(name string, encode, decode Func) {
	if err := r.Register(name, encode, decode); err != nil {
		panic(err)
	}
}

// Get retrieves a codec by name.
func (r *Registry) Get(name string) (Codec, bool) {
	c, ok := r.snapshot()[NormalizeName(name)]
	return c, ok
}

// Has reports whether a codec is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the registered codec names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.snapshot()))
}

func (r *Registry) lookup(name string) (Codec, error) {
	entries := r.snapshot()
	c, ok := entries[NormalizeName(name)]
	if !ok {
		return nil, &UnknownCodecError{
			Name:      name,
			Available: slices.Sorted(maps.Keys(entries)),
		}
	}
	return c, nil
}

func charsetOrDefault(charset string) string {
	if charset == "" {
		return DefaultCharset
	}
	return charset
}
