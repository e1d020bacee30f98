package serde

import (
	"bytes"
	"encoding/json"
)

func init() {
	Register(&jsonFormat{})
}

// jsonFormat implements Format using JSON encoding.
type jsonFormat struct{}

// Compile-time interface check
var _ Format = (*jsonFormat)(nil)

func (f *jsonFormat) Name() string {
	return "json"
}

func (f *jsonFormat) Extensions() []string {
	return []string{"json"}
}

// Marshal leaves <, > and & unescaped.
func (f *jsonFormat) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (f *jsonFormat) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// JSON returns the JSON format instance.
func JSON() Format {
	return &jsonFormat{}
}
