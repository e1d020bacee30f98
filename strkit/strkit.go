// Package strkit holds small string and URL helpers.
package strkit

import (
	"crypto/rand"
	"math/big"
	"net/url"
	"strconv"
)

const (
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

// DefaultPageParam is the query parameter used by AddPageNum and RemovePageNum.
const DefaultPageParam = "page"

// RandomString returns n random ASCII letters, plus digits when withDigits is set.
func RandomString(n int, withDigits bool) string {
	pool := letters
	if withDigits {
		pool += digits
	}
	limit := big.NewInt(int64(len(pool)))

	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic("strkit: crypto/rand failed: " + err.Error())
		}
		b[i] = pool[idx.Int64()]
	}
	return string(b)
}

// AddPageNum sets the page query parameter of rawURL to page.
func AddPageNum(rawURL string, page int, param string) (string, error) {
	if param == "" {
		param = DefaultPageParam
	}
	return UpdateQueryParam(rawURL, param, strconv.Itoa(page))
}

// RemovePageNum removes the page query parameter from rawURL.
func RemovePageNum(rawURL, param string) (string, error) {
	if param == "" {
		param = DefaultPageParam
	}
	return editQuery(rawURL, func(q url.Values) {
		q.Del(param)
	})
}

// RemoveQueryParams drops the whole query string from rawURL.
func RemoveQueryParams(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	u.RawQuery = ""
	u.ForceQuery = false
	return u.String(), nil
}

// UpdateQueryParam sets param to value in rawURL, replacing any existing values.
func UpdateQueryParam(rawURL, param, value string) (string, error) {
	return editQuery(rawURL, func(q url.Values) {
		q.Set(param, value)
	})
}

// editQuery applies fn to the parsed query of rawURL. The rebuilt query is
// sorted by key.
func editQuery(rawURL string, fn func(url.Values)) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	fn(q)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
