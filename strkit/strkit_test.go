package strkit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRandomString(t *testing.T) {
	s := RandomString(32, true)
	if len(s) != 32 {
		t.Fatalf("len = %d, want 32", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(letters+digits, r) {
			t.Errorf("unexpected rune %q", r)
		}
	}

	noDigits := RandomString(200, false)
	if strings.ContainsAny(noDigits, digits) {
		t.Errorf("RandomString(false) contains digits: %q", noDigits)
	}
	if RandomString(0, true) != "" {
		t.Error("RandomString(0) should be empty")
	}
	if RandomString(16, true) == RandomString(16, true) {
		t.Error("two random strings should differ")
	}
}

func TestQueryHelpers(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{
			name: "add page",
			fn: func() (string, error) {
				return AddPageNum("https://example.com/search?q=test&sort=asc", 3, "")
			},
			want: "https://example.com/search?page=3&q=test&sort=asc",
		},
		{
			name: "replace page",
			fn: func() (string, error) {
				return AddPageNum("https://example.com/?p=1", 2, "p")
			},
			want: "https://example.com/?p=2",
		},
		{
			name: "remove page",
			fn: func() (string, error) {
				return RemovePageNum("https://example.com/list?page=9&q=go", "")
			},
			want: "https://example.com/list?q=go",
		},
		{
			name: "remove query",
			fn: func() (string, error) {
				return RemoveQueryParams("https://example.com/a/b?x=1&y=2#top")
			},
			want: "https://example.com/a/b#top",
		},
		{
			name: "update param",
			fn: func() (string, error) {
				return UpdateQueryParam("https://example.com?hl=en", "hl", "fr")
			},
			want: "https://example.com?hl=fr",
		},
		{
			name: "update escapes value",
			fn: func() (string, error) {
				return UpdateQueryParam("https://example.com/s", "q", "a b&c")
			},
			want: "https://example.com/s?q=a+b%26c",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryHelpers_InvalidURL(t *testing.T) {
	if _, err := UpdateQueryParam("http://[::1", "a", "b"); err == nil {
		t.Error("UpdateQueryParam() should error for invalid URL")
	}
	if _, err := RemoveQueryParams("http://[::1"); err == nil {
		t.Error("RemoveQueryParams() should error for invalid URL")
	}
}

func TestReadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ua":
			w.Write([]byte(r.UserAgent()))
		case "/ok":
			w.Write([]byte("hello\nworld\n"))
		case "/latin1":
			w.Write([]byte{'c', 'a', 'f', 0xe9})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	body, err := ReadURL(ctx, srv.URL+"/ok")
	if err != nil {
		t.Fatalf("ReadURL() error: %v", err)
	}
	if body != "hello\nworld\n" {
		t.Errorf("body = %q", body)
	}

	ua, err := ReadURL(ctx, srv.URL+"/ua")
	if err != nil {
		t.Fatal(err)
	}
	if ua != DefaultUserAgent {
		t.Errorf("User-Agent = %q", ua)
	}

	ua, err = ReadURL(ctx, srv.URL+"/ua", WithHeader("User-Agent", "lazykit-test"))
	if err != nil {
		t.Fatal(err)
	}
	if ua != "lazykit-test" {
		t.Errorf("User-Agent = %q, want override", ua)
	}

	text, err := ReadURL(ctx, srv.URL+"/latin1", WithCharset("latin1"), WithClient(srv.Client()))
	if err != nil {
		t.Fatalf("ReadURL(latin1) error: %v", err)
	}
	if text != "café" {
		t.Errorf("text = %q", text)
	}

	_, err = ReadURL(ctx, srv.URL+"/missing")
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Errorf("ReadURL(missing) error = %v, want StatusError 404", err)
	}
}

func TestReadURL_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ReadURL(ctx, srv.URL); !errors.Is(err, context.Canceled) {
		t.Errorf("ReadURL() error = %v, want context.Canceled", err)
	}
}

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lines.txt")
	if err := os.WriteFile(path, []byte("one\r\ntwo\nthree"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := ReadLines(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadLines() error: %v", err)
	}
	if diff := cmp.Diff([]string{"one", "two", "three"}, got); diff != "" {
		t.Errorf("ReadLines() mismatch (-want +got):\n%s", diff)
	}

	for _, src := range []string{filepath.Join(dir, "missing.txt"), dir} {
		lines, err := ReadLines(context.Background(), src)
		if err != nil || lines != nil {
			t.Errorf("ReadLines(%q) = %v, %v; want nil, nil", src, lines, err)
		}
	}
}

func TestReadLines_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, '\n'}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadLines(context.Background(), path); err == nil {
		t.Error("ReadLines() should reject invalid UTF-8")
	}
}

func TestReadLines_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("a\nb\n"))
	}))
	defer srv.Close()

	got, err := ReadLines(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ReadLines() error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("ReadLines() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := WriteLines(path, []string{"x", "y"}); err != nil {
		t.Fatalf("WriteLines() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x\ny\n" {
		t.Errorf("file = %q", data)
	}

	got, err := ReadLines(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x", "y"}, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	if err := WriteLines(filepath.Join(t.TempDir(), "no", "such", "dir.txt"), nil); err == nil {
		t.Error("WriteLines() should error when the directory is missing")
	}
}
