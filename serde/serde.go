// Package serde serializes structured values as JSON, YAML or TOML and
// provides the dict codec, which escapes every string in a JSON document.
package serde

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Format serializes values to and from a document format.
type Format interface {
	// Name returns the format identifier (e.g., "json", "yaml").
	Name() string

	// Extensions returns the file extensions for the format, without the dot.
	Extensions() []string

	// Marshal serializes a value to bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal deserializes bytes into the target.
	Unmarshal(data []byte, v any) error
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Format)
)

// Register adds a format to the global registry, replacing any format with the same name.
// Panics if format is nil or its name is empty.
func Register(format Format) {
	if format == nil {
		panic("serde: Register format is nil")
	}
	name := format.Name()
	if name == "" {
		panic("serde: Register format name is empty")
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	registry[name] = format
}

// Get retrieves a format by name from the registry.
// Returns nil if not found.
func Get(name string) Format {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return registry[strings.ToLower(name)]
}

// ForPath returns the format matching the extension of path, or nil.
func ForPath(path string) Format {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return nil
	}

	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, f := range registry {
		if slices.Contains(f.Extensions(), ext) {
			return f
		}
	}
	return nil
}

// Names returns the names of all registered formats in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Default returns the default format (JSON).
func Default() Format {
	return Get("json")
}
