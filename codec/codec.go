// Package codec provides a registry of named text and binary encodings.
//
// A codec is a pair of functions converting raw data to an encoded
// representation and back. Codecs are looked up by name at call time, so new
// representations can be added without touching call sites:
//
//	out, err := codec.Encode([]byte("hello"), codec.Hex, "")
//	// out == []byte("68656c6c6f")
//
// Names are case-insensitive and surrounding whitespace is ignored. A name can
// be registered once; registering it again fails with ErrDuplicateCodec and
// leaves the existing entry in place.
package codec

import "strings"

// DefaultCharset is used when an empty charset is passed to Encode or Decode.
const DefaultCharset = "utf-8"

// Built-in codec names.
const (
	Hex       = "hex"
	Base64    = "base64"
	Base64URL = "base64url"
	Percent   = "percent"
	URLSafe   = "urlsafe"
	Query     = "query"
	Unicode   = "unicode"
	Text      = "text"
)

// Func is one half of a codec. The charset is passed through from the caller
// and is interpreted only by the function itself.
type Func func(data []byte, charset string) ([]byte, error)

// Codec converts data to and from an encoded representation.
type Codec interface {
	// Encode converts raw data to its encoded form.
	Encode(data []byte, charset string) ([]byte, error)

	// Decode converts encoded data back to raw form.
	Decode(data []byte, charset string) ([]byte, error)
}

// Dispatcher is the call surface shared by Registry and its wrappers.
type Dispatcher interface {
	Encode(data []byte, name, charset string) ([]byte, error)
	Decode(data []byte, name, charset string) ([]byte, error)
	Register(name string, encode, decode Func) error
	Names() []string
}

// Pair returns a Codec backed by two functions.
func Pair(encode, decode Func) Codec {
	return funcCodec{encode: encode, decode: decode}
}

type funcCodec struct {
	encode Func
	decode Func
}

func (c funcCodec) Encode(data []byte, charset string) ([]byte, error) {
	return c.encode(data, charset)
}

func (c funcCodec) Decode(data []byte, charset string) ([]byte, error) {
	return c.decode(data, charset)
}

// NormalizeName returns the registry key for name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
