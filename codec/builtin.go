package codec

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"unicode/utf8"
)

// ErrInvalidText is returned by the text and unicode codecs for input that is not valid UTF-8.
var ErrInvalidText = errors.New("codec: text is not valid UTF-8")

// builtins returns the codecs every registry starts with.
func builtins(cs *charsets) map[string]Codec {
	percent := percentCodec{cs: cs, escape: pathEscape, unescape: pathUnescape}
	return map[string]Codec{
		Hex:       hexCodec{cs: cs},
		Base64:    base64Codec{cs: cs, enc: base64.StdEncoding},
		Base64URL: base64Codec{cs: cs, enc: base64.RawURLEncoding},
		Percent:   percent,
		URLSafe:   percent,
		Query:     percentCodec{cs: cs, escape: queryEscape, unescape: queryUnescape},
		Unicode:   unicodeCodec{cs: cs},
		Text:      textCodec{cs: cs},
	}
}

// hexCodec writes lowercase hex of the charset bytes.
type hexCodec struct {
	cs *charsets
}

func (c hexCodec) Encode(data []byte, charset string) ([]byte, error) {
	raw, err := c.cs.fromUTF8(data, charset)
	if err != nil {
		return nil, err
	}
	out := make([]byte, hex.EncodedLen(len(raw)))
	hex.Encode(out, raw)
	return out, nil
}

func (c hexCodec) Decode(data []byte, charset string) ([]byte, error) {
	raw := make([]byte, hex.DecodedLen(len(data)))
	n, err := hex.Decode(raw, data)
	if err != nil {
		return nil, err
	}
	return c.cs.toUTF8(raw[:n], charset)
}

type base64Codec struct {
	cs  *charsets
	enc *base64.Encoding
}

func (c base64Codec) Encode(data []byte, charset string) ([]byte, error) {
	raw, err := c.cs.fromUTF8(data, charset)
	if err != nil {
		return nil, err
	}
	out := make([]byte, c.enc.EncodedLen(len(raw)))
	c.enc.Encode(out, raw)
	return out, nil
}

func (c base64Codec) Decode(data []byte, charset string) ([]byte, error) {
	raw := make([]byte, c.enc.DecodedLen(len(data)))
	n, err := c.enc.Decode(raw, data)
	if err != nil {
		return nil, err
	}
	return c.cs.toUTF8(raw[:n], charset)
}

// textCodec transcodes between UTF-8 and the charset.
type textCodec struct {
	cs *charsets
}

func (c textCodec) Encode(data []byte, charset string) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidText
	}
	return c.cs.fromUTF8(data, charset)
}

func (c textCodec) Decode(data []byte, charset string) ([]byte, error) {
	if c.cs.isUTF8(charset) && !utf8.Valid(data) {
		return nil, ErrInvalidText
	}
	return c.cs.toUTF8(data, charset)
}
