package serde

import (
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&yamlFormat{})
}

// yamlFormat implements the Format interface using YAML encoding.
type yamlFormat struct{}

// Compile-time interface check
var _ Format = (*yamlFormat)(nil)

// Name returns the format name.
func (f *yamlFormat) Name() string {
	return "yaml"
}

// Extensions returns the YAML file extensions.
func (f *yamlFormat) Extensions() []string {
	return []string{"yaml", "yml"}
}

// Marshal encodes a value to YAML bytes.
func (f *yamlFormat) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML bytes into a value.
func (f *yamlFormat) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// YAML returns a new YAML format instance.
func YAML() Format {
	return &yamlFormat{}
}
