package serde

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rbaliyan/lazykit/codec"
)

func TestRegisterAndGet(t *testing.T) {
	// JSON, YAML, TOML are registered at init
	for _, name := range []string{"json", "yaml", "toml"} {
		f := Get(name)
		if f == nil {
			t.Fatalf("expected %s format to be registered", name)
		}
		if f.Name() != name {
			t.Errorf("expected name %q, got %q", name, f.Name())
		}
	}

	if Get("unknown") != nil {
		t.Error("expected nil for unknown format")
	}
	if Get("YAML") == nil {
		t.Error("expected Get to ignore case")
	}
}

func TestDefault(t *testing.T) {
	def := Default()
	if def == nil {
		t.Fatal("expected default format to not be nil")
	}
	if def.Name() != "json" {
		t.Errorf("expected default format to be 'json', got %q", def.Name())
	}
}

func TestNames(t *testing.T) {
	if diff := cmp.Diff([]string{"json", "toml", "yaml"}, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestForPath(t *testing.T) {
	tests := map[string]string{
		"config.yaml":     "yaml",
		"config.YML":      "yaml",
		"/etc/app.toml":   "toml",
		"settings.json":   "json",
		"notes.txt":       "",
		"no-extension":    "",
		"dir.yaml/config": "",
	}
	for path, want := range tests {
		f := ForPath(path)
		got := ""
		if f != nil {
			got = f.Name()
		}
		if got != want {
			t.Errorf("ForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestRegisterPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil format")
		}
	}()
	Register(nil)
}

type emptyNameFormat struct{}

func (e emptyNameFormat) Name() string                       { return "" }
func (e emptyNameFormat) Extensions() []string               { return nil }
func (e emptyNameFormat) Marshal(v any) ([]byte, error)      { return nil, nil }
func (e emptyNameFormat) Unmarshal(data []byte, v any) error { return nil }

func TestRegisterEmptyNamePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for empty name format")
		}
	}()
	Register(emptyNameFormat{})
}

func TestJSONDoesNotEscapeHTML(t *testing.T) {
	data, err := JSON().Marshal(map[string]string{"q": "a<b&c"})
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(data) != `{"q":"a<b&c"}` {
		t.Errorf("unexpected output %s", data)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	type Settings struct {
		Name    string   `json:"name" yaml:"name" toml:"name"`
		Port    int      `json:"port" yaml:"port" toml:"port"`
		Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
		Tags    []string `json:"tags" yaml:"tags" toml:"tags"`
	}

	original := Settings{
		Name:    "test-service",
		Port:    8080,
		Enabled: true,
		Tags:    []string{"api", "v2"},
	}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			f := Get(name)

			data, err := f.Marshal(original)
			if err != nil {
				t.Fatalf("marshal error: %v", err)
			}

			var result Settings
			if err := f.Unmarshal(data, &result); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}

			if diff := cmp.Diff(original, result); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEscapeMap(t *testing.T) {
	in := map[string]any{
		"名稱":  "中文",
		"count": 3,
		"list":  []any{"é", 1.5, map[string]any{"nested": "ü"}},
		"tags":  []string{"ok", "ß"},
	}

	escaped, err := EscapeMap(in)
	if err != nil {
		t.Fatalf("EscapeMap error: %v", err)
	}

	want := map[string]any{
		`\u540d\u7a31`: `\u4e2d\u6587`,
		"count":        3,
		"list":         []any{`\xe9`, 1.5, map[string]any{"nested": `\xfc`}},
		"tags":         []any{"ok", `\xdf`},
	}
	if diff := cmp.Diff(want, escaped); diff != "" {
		t.Errorf("EscapeMap mismatch (-want +got):\n%s", diff)
	}

	back, err := UnescapeMap(escaped)
	if err != nil {
		t.Fatalf("UnescapeMap error: %v", err)
	}
	wantBack := map[string]any{
		"名稱":  "中文",
		"count": 3,
		"list":  []any{"é", 1.5, map[string]any{"nested": "ü"}},
		"tags":  []any{"ok", "ß"},
	}
	if diff := cmp.Diff(wantBack, back); diff != "" {
		t.Errorf("UnescapeMap mismatch (-want +got):\n%s", diff)
	}
}

func TestDictCodecRegistered(t *testing.T) {
	out, err := codec.EncodeString(`{"greeting":"你好","n":12345678901234567890}`, DictCodec, "")
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	want := `{"greeting":"\\u4f60\\u597d","n":12345678901234567890}`
	if out != want {
		t.Errorf("encode = %s, want %s", out, want)
	}

	back, err := codec.DecodeString(out, DictCodec, "")
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if back != `{"greeting":"你好","n":12345678901234567890}` {
		t.Errorf("decode = %s", back)
	}
}

func TestDictCodecRejectsNonObject(t *testing.T) {
	for _, in := range []string{`[1,2]`, `"text"`, `42`} {
		if _, err := codec.EncodeString(in, DictCodec, ""); !errors.Is(err, ErrNotObject) {
			t.Errorf("encode(%s): expected ErrNotObject, got %v", in, err)
		}
	}
	if _, err := codec.EncodeString(`{broken`, DictCodec, ""); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestDictCodecRejectsTrailingData(t *testing.T) {
	for _, in := range []string{`{"a":1} {"b":2}`, `{"a":1}]`, `{"a":1} x`} {
		if _, err := codec.EncodeString(in, DictCodec, ""); !errors.Is(err, ErrTrailingData) {
			t.Errorf("encode(%s): expected ErrTrailingData, got %v", in, err)
		}
	}
	if _, err := codec.EncodeString("{\"a\":1}\n  ", DictCodec, ""); err != nil {
		t.Errorf("trailing whitespace should be accepted, got %v", err)
	}
}

func TestDictCodecRoundTripIsSemantic(t *testing.T) {
	in := `{"b": "中", "a": 1}`
	out, err := codec.EncodeString(in, DictCodec, "")
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	back, err := codec.DecodeString(out, DictCodec, "")
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if want := `{"a":1,"b":"中"}`; back != want {
		t.Errorf("round trip = %s, want %s", back, want)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	err := PrintJSON(&buf, map[string]any{"name": `caf\xe9`, "n": 1}, 2)
	if err != nil {
		t.Fatalf("PrintJSON error: %v", err)
	}
	want := "{\n  \"n\": 1,\n  \"name\": \"café\"\n}\n"
	if buf.String() != want {
		t.Errorf("PrintJSON = %q, want %q", buf.String(), want)
	}
}
