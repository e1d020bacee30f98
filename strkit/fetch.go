package strkit

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/rbaliyan/lazykit/codec"
)

// DefaultUserAgent is sent by ReadURL unless WithHeader overrides it.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36"

// StatusError is returned by ReadURL for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("strkit: GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

type fetchOptions struct {
	client  *http.Client
	header  http.Header
	charset string
}

// FetchOption configures ReadURL and ReadLines.
type FetchOption func(*fetchOptions)

// WithClient sets the HTTP client. Default: http.DefaultClient.
func WithClient(c *http.Client) FetchOption {
	return func(o *fetchOptions) {
		if c != nil {
			o.client = c
		}
	}
}

// WithHeader adds a request header. Setting User-Agent replaces DefaultUserAgent.
func WithHeader(key, value string) FetchOption {
	return func(o *fetchOptions) {
		o.header.Set(key, value)
	}
}

// WithCharset sets the charset of the fetched content. Default: utf-8.
func WithCharset(charset string) FetchOption {
	return func(o *fetchOptions) {
		o.charset = charset
	}
}

func newFetchOptions(opts []FetchOption) *fetchOptions {
	o := &fetchOptions{
		client:  http.DefaultClient,
		header:  http.Header{"User-Agent": {DefaultUserAgent}},
		charset: codec.DefaultCharset,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ReadURL fetches url and returns the body as UTF-8 text.
func ReadURL(ctx context.Context, url string, opts ...FetchOption) (string, error) {
	o := newFetchOptions(opts)
	data, err := o.get(ctx, url)
	if err != nil {
		return "", err
	}
	return o.decode(data)
}

func (o *fetchOptions) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("strkit: build request: %w", err)
	}
	req.Header = o.header.Clone()

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("strkit: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("strkit: read body: %w", err)
	}
	return data, nil
}

func (o *fetchOptions) decode(data []byte) (string, error) {
	text, err := codec.Decode(data, codec.Text, o.charset)
	if err != nil {
		return "", fmt.Errorf("strkit: decode %s: %w", o.charset, err)
	}
	return string(text), nil
}

// ReadLines returns the lines of an http(s) URL or a local file, without
// line endings. A source that is neither a URL nor an existing file yields
// no lines and no error.
func ReadLines(ctx context.Context, source string, opts ...FetchOption) ([]string, error) {
	o := newFetchOptions(opts)

	var data []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err := o.get(ctx, source)
		if err != nil {
			return nil, err
		}
		data = body
	} else {
		info, err := os.Stat(source)
		if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("strkit: stat %s: %w", source, err)
		}
		if data, err = os.ReadFile(source); err != nil {
			return nil, fmt.Errorf("strkit: read %s: %w", source, err)
		}
	}

	text, err := o.decode(data)
	if err != nil {
		return nil, err
	}

	var lines []string
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// WriteLines writes each line followed by a newline to path, replacing the file.
func WriteLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("strkit: create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("strkit: write %s: %w", path, err)
	}
	return f.Close()
}
