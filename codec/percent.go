package codec

import "net/url"

// percentCodec percent-encodes the charset bytes.
type percentCodec struct {
	cs       *charsets
	escape   func(string) string
	unescape func(string) (string, error)
}

func (c percentCodec) Encode(data []byte, charset string) ([]byte, error) {
	raw, err := c.cs.fromUTF8(data, charset)
	if err != nil {
		return nil, err
	}
	return []byte(c.escape(string(raw))), nil
}

func (c percentCodec) Decode(data []byte, charset string) ([]byte, error) {
	raw, err := c.unescape(string(data))
	if err != nil {
		return nil, err
	}
	return c.cs.toUTF8([]byte(raw), charset)
}

// Space becomes %20 for path segments and + for queries.
var (
	pathEscape    = url.PathEscape
	pathUnescape  = url.PathUnescape
	queryEscape   = url.QueryEscape
	queryUnescape = url.QueryUnescape
)
