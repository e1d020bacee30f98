package codec

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// unicodeCodec converts text to printable ASCII with backslash escapes.
//
// Runes up to U+00FF use \xNN, the rest of the BMP \uNNNN and anything above
// \UNNNNNNNN. Backslashes are doubled. The charset is validated and otherwise
// ignored since the output is pure ASCII.
type unicodeCodec struct {
	cs *charsets
}

func (c unicodeCodec) Encode(data []byte, charset string) ([]byte, error) {
	if _, err := c.cs.lookup(charset); err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidText
	}

	out := make([]byte, 0, len(data))
	for _, r := range string(data) {
		switch {
		case r == '\\':
			out = append(out, `\\`...)
		case r == '\n':
			out = append(out, `\n`...)
		case r == '\r':
			out = append(out, `\r`...)
		case r == '\t':
			out = append(out, `\t`...)
		case r < 0x20, r >= 0x7f && r <= 0xff:
			out = fmt.Appendf(out, `\x%02x`, r)
		case r < utf8.RuneSelf:
			out = append(out, byte(r))
		case r <= 0xffff:
			out = fmt.Appendf(out, `\u%04x`, r)
		default:
			out = fmt.Appendf(out, `\U%08x`, r)
		}
	}
	return out, nil
}

func (c unicodeCodec) Decode(data []byte, charset string) ([]byte, error) {
	if _, err := c.cs.lookup(charset); err != nil {
		return nil, err
	}

	s := string(data)
	out := make([]byte, 0, len(s))
	for len(s) > 0 {
		if s[0] != '\\' {
			_, size := utf8.DecodeRuneInString(s)
			out = append(out, s[:size]...)
			s = s[size:]
			continue
		}
		if len(s) >= 2 && (s[1] == '\'' || s[1] == '"') {
			out = append(out, s[1])
			s = s[2:]
			continue
		}
		// \xNN and octal escapes name a code point, not a raw byte.
		value, _, tail, err := strconv.UnquoteChar(s, '"')
		if err != nil {
			return nil, fmt.Errorf("codec: unicode: invalid escape at %q: %w", truncate(s, 10), err)
		}
		out = utf8.AppendRune(out, value)
		s = tail
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
