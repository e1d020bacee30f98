package codec

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// charsets resolves charset names to encodings and keeps recent lookups.
type charsets struct {
	cache *lru.Cache[string, encoding.Encoding]
}

func newCharsets(size int) (*charsets, error) {
	cache, err := lru.New[string, encoding.Encoding](size)
	if err != nil {
		return nil, err
	}
	return &charsets{cache: cache}, nil
}

// lookup resolves an IANA name, falling back to WHATWG labels ("utf8", "latin1").
func (c *charsets) lookup(charset string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(charset))
	switch key {
	case "":
		return nil, &CharsetError{Charset: charset}
	case "utf-8", "utf8":
		return unicode.UTF8, nil
	}

	if enc, ok := c.cache.Get(key); ok {
		return enc, nil
	}

	// ianaindex returns a nil encoding with a nil error for names it knows but cannot serve.
	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil || enc == nil {
		enc, err = htmlindex.Get(key)
		if err != nil {
			return nil, &CharsetError{Charset: charset}
		}
	}

	c.cache.Add(key, enc)
	return enc, nil
}

// fromUTF8 converts UTF-8 data into charset bytes.
// UTF-8 targets return data untouched so arbitrary binary survives.
func (c *charsets) fromUTF8(data []byte, charset string) ([]byte, error) {
	enc, err := c.lookup(charset)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return data, nil
	}
	out, err := enc.NewEncoder().Bytes(data)
	if err != nil {
		return nil, &CharsetError{Charset: charset, Err: err}
	}
	return out, nil
}

// toUTF8 converts charset bytes into UTF-8.
func (c *charsets) toUTF8(data []byte, charset string) ([]byte, error) {
	enc, err := c.lookup(charset)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return data, nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, &CharsetError{Charset: charset, Err: err}
	}
	return out, nil
}

// isUTF8 reports whether charset resolves to UTF-8.
func (c *charsets) isUTF8(charset string) bool {
	enc, err := c.lookup(charset)
	return err == nil && enc == unicode.UTF8
}
