package pathkit

import (
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/flytam/filenamify"
)

// DefaultExt is returned by ExtFromContentType for unknown types.
const DefaultExt = "jpg"

// maxNameBytes is the usual file name limit of common filesystems.
const maxNameBytes = 255

// replacement stands in for characters a file name cannot hold.
const replacement = "_"

// preferredExt fixes the extension for types whose mime table entry is ambiguous.
var preferredExt = map[string]string{
	"image/jpeg":       "jpg",
	"image/png":        "png",
	"image/gif":        "gif",
	"image/webp":       "webp",
	"image/svg+xml":    "svg",
	"text/plain":       "txt",
	"text/html":        "html",
	"application/pdf":  "pdf",
	"application/json": "json",
	"video/mp4":        "mp4",
	"audio/mpeg":       "mp3",
}

var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {}, "COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {}, "LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// FileDest joins root, category and filename+ext, sanitizing the category
// and file name so the result is a valid path on any common filesystem.
func FileDest(root, category, filename, ext string) string {
	return filepath.Join(root, SanitizeName(category), SanitizeName(filename+ext))
}

// SanitizeName replaces characters that are invalid in file names on
// Windows, macOS or Linux with an underscore, trims trailing dots and
// spaces, guards reserved device names and truncates to 255 bytes.
func SanitizeName(name string) string {
	s, err := filenamify.Filenamify(name, filenamify.Options{
		Replacement: replacement,
		MaxLength:   len(name) + len(replacement),
	})
	if err != nil {
		// Only an invalid replacement fails.
		panic(err)
	}

	s = strings.TrimRight(strings.TrimSpace(s), ". ")

	base := strings.ToUpper(s)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if _, ok := reservedNames[base]; ok {
		s = replacement + s
	}

	for len(s) > maxNameBytes {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s
}

// ExtFromContentType returns the extension, without a dot, for a
// Content-Type header value such as "image/png; charset=binary".
// Unknown types yield def, or DefaultExt when def is empty.
func ExtFromContentType(contentType, def string) string {
	if def == "" {
		def = DefaultExt
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}
	if mediaType == "" {
		return def
	}
	if ext, ok := preferredExt[mediaType]; ok {
		return ext
	}

	exts, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(exts) == 0 {
		return def
	}
	return strings.TrimPrefix(exts[0], ".")
}
