package serde

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rbaliyan/lazykit/codec"
)

// DictCodec is the name the dict codec is registered under in codec.Default().
const DictCodec = "dict"

var (
	// ErrNotObject is returned by the dict codec when the document is not a JSON object.
	ErrNotObject = errors.New("serde: dict input is not a JSON object")

	// ErrTrailingData is returned by the dict codec when input continues after the object.
	ErrTrailingData = errors.New("serde: dict input has data after the JSON object")
)

func init() {
	if err := codec.RegisterCodec(DictCodec, Dict()); err != nil {
		panic(err)
	}
}

// Dict returns a codec that reads a JSON object and rewrites every key and
// string value through the unicode codec. Numbers keep their exact text.
//
// The output is compact JSON with keys in sorted order, so a round trip
// preserves the document's values, not its bytes.
func Dict() codec.Codec {
	return codec.Pair(
		func(data []byte, charset string) ([]byte, error) {
			return rewriteDocument(data, charset, codec.Encode)
		},
		func(data []byte, charset string) ([]byte, error) {
			return rewriteDocument(data, charset, codec.Decode)
		},
	)
}

type transform func(data []byte, name, charset string) ([]byte, error)

func rewriteDocument(data []byte, charset string, fn transform) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}

	out, err := rewriteMap(m, charset, fn)
	if err != nil {
		return nil, err
	}
	return JSON().Marshal(out)
}

// EscapeMap returns a copy of m with every key and string value unicode-escaped.
func EscapeMap(m map[string]any) (map[string]any, error) {
	return rewriteMap(m, codec.DefaultCharset, codec.Encode)
}

// UnescapeMap reverses EscapeMap.
func UnescapeMap(m map[string]any) (map[string]any, error) {
	return rewriteMap(m, codec.DefaultCharset, codec.Decode)
}

func rewriteMap(m map[string]any, charset string, fn transform) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		key, err := rewriteString(k, charset, fn)
		if err != nil {
			return nil, err
		}
		val, err := rewriteValue(v, charset, fn)
		if err != nil {
			return nil, fmt.Errorf("serde: key %q: %w", k, err)
		}
		out[key] = val
	}
	return out, nil
}

func rewriteValue(v any, charset string, fn transform) (any, error) {
	switch val := v.(type) {
	case string:
		return rewriteString(val, charset, fn)
	case map[string]any:
		return rewriteMap(val, charset, fn)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			rewritten, err := rewriteValue(item, charset, fn)
			if err != nil {
				return nil, err
			}
			out[i] = rewritten
		}
		return out, nil
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			s, err := rewriteString(item, charset, fn)
			if err != nil {
				return nil, err
			}
			out[i] = s
		}
		return out, nil
	default:
		return v, nil
	}
}

func rewriteString(s, charset string, fn transform) (string, error) {
	out, err := fn([]byte(s), codec.Unicode, charset)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// PrintJSON unescapes m and writes it as indented JSON.
func PrintJSON(w io.Writer, m map[string]any, indent int) error {
	plain, err := UnescapeMap(m)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	return enc.Encode(plain)
}
