package serde

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

func init() {
	Register(&tomlFormat{})
}

// tomlFormat implements the Format interface using TOML encoding.
type tomlFormat struct{}

// Compile-time interface check
var _ Format = (*tomlFormat)(nil)

// Name returns the format name.
func (f *tomlFormat) Name() string {
	return "toml"
}

// Extensions returns the TOML file extension.
func (f *tomlFormat) Extensions() []string {
	return []string{"toml"}
}

// Marshal encodes a value to TOML bytes.
func (f *tomlFormat) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	err := toml.NewEncoder(&buf).Encode(v)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes TOML bytes into a value.
func (f *tomlFormat) Unmarshal(data []byte, v any) error {
	_, err := toml.NewDecoder(bytes.NewReader(data)).Decode(v)
	return err
}

// TOML returns a new TOML format instance.
func TOML() Format {
	return &tomlFormat{}
}
