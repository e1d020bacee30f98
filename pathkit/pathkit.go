// Package pathkit moves files and directories without overwriting, and
// builds safe destination paths.
package pathkit

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
)

// DefaultDelimiter separates a name from its counter in UniquePath.
const DefaultDelimiter = "_"

var (
	// ErrNotDir is returned when a directory was expected.
	ErrNotDir = errors.New("pathkit: not a directory")

	// ErrNotFile is returned when a regular file was expected.
	ErrNotFile = errors.New("pathkit: not a regular file")

	// ErrIntoSelf is returned by MoveDir when the destination is inside the source.
	ErrIntoSelf = errors.New("pathkit: cannot move a directory into itself")
)

var systemFiles = map[string]struct{}{
	".DS_Store":       {},
	"Thumbs.db":       {},
	".Spotlight-V100": {},
	".Trashes":        {},
	"desktop.ini":     {},
}

// Mkdir creates path and its parents. It fails if path is an existing file.
func Mkdir(path string) error {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return fmt.Errorf("pathkit: %s: %w", path, fs.ErrExist)
	}
	return os.MkdirAll(path, 0o755)
}

// MoveDir moves the directory src to dst. If dst exists the directory is
// renamed with UniquePath. Across filesystems the tree is copied and the
// source removed. It returns the final destination.
func MoveDir(src, dst string) (string, error) {
	srcAbs, dstAbs, err := absPair(src, dst)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(srcAbs)
	if err != nil {
		return "", fmt.Errorf("pathkit: move dir: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("pathkit: move dir %s: %w", srcAbs, ErrNotDir)
	}
	if srcAbs == dstAbs {
		return dstAbs, nil
	}
	if within(srcAbs, dstAbs) {
		return "", fmt.Errorf("pathkit: move %s to %s: %w", srcAbs, dstAbs, ErrIntoSelf)
	}

	return move(srcAbs, dstAbs, true)
}

// MoveFile moves the regular file src to dst. If dst exists the file is
// renamed with UniquePath. It returns the final destination.
func MoveFile(src, dst string) (string, error) {
	srcAbs, dstAbs, err := absPair(src, dst)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(srcAbs)
	if err != nil {
		return "", fmt.Errorf("pathkit: move file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("pathkit: move file %s: %w", srcAbs, ErrNotFile)
	}
	if srcAbs == dstAbs {
		return dstAbs, nil
	}

	return move(srcAbs, dstAbs, false)
}

// rename is replaced in tests to simulate moves across filesystems.
var rename = os.Rename

// claimAttempts bounds the retries when another process takes the chosen
// name between UniquePath and the claim.
const claimAttempts = 8

func move(src, dst string, isDir bool) (string, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("pathkit: create parent: %w", err)
	}

	target, err := claim(dst, isDir)
	if err != nil {
		return "", err
	}

	if isDir && runtime.GOOS == "windows" {
		// MoveFileEx cannot replace a directory, even an empty one.
		_ = os.Remove(target)
	}
	err = rename(src, target)
	if errors.Is(err, syscall.EXDEV) {
		err = copyThenRemove(src, target, isDir)
	}
	if err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("pathkit: move: %w", err)
	}
	return target, nil
}

// claim picks a free name for dst and creates an empty placeholder there
// with exclusive semantics, so a concurrent writer can never be replaced.
func claim(dst string, isDir bool) (string, error) {
	for range claimAttempts {
		target, err := UniquePath(dst, DefaultDelimiter)
		if err != nil {
			return "", err
		}

		if isDir {
			err = os.Mkdir(target, 0o755)
		} else {
			var f *os.File
			f, err = os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
			if err == nil {
				err = f.Close()
			}
		}
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("pathkit: claim %s: %w", target, err)
		}
		return target, nil
	}
	return "", fmt.Errorf("pathkit: claim %s: %w", dst, fs.ErrExist)
}

// copyThenRemove copies src into the claimed target and deletes src.
func copyThenRemove(src, target string, isDir bool) error {
	if isDir {
		if err := os.CopyFS(target, os.DirFS(src)); err != nil {
			_ = os.RemoveAll(target)
			return err
		}
		return os.RemoveAll(src)
	}

	if err := copyFile(src, target); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, info.Mode().Perm())
}

func absPair(a, b string) (string, string, error) {
	aAbs, err := filepath.Abs(a)
	if err != nil {
		return "", "", fmt.Errorf("pathkit: %w", err)
	}
	bAbs, err := filepath.Abs(b)
	if err != nil {
		return "", "", fmt.Errorf("pathkit: %w", err)
	}
	return aAbs, bAbs, nil
}

// within reports whether path is dir or below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// IsSystemFile reports whether the base name of path is OS metadata such as .DS_Store.
func IsSystemFile(path string) bool {
	_, ok := systemFiles[filepath.Base(path)]
	return ok
}

// CountFiles counts the regular files directly inside dir, optionally
// skipping system files.
func CountFiles(dir string, excludeSystem bool) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("pathkit: count files: %w", err)
	}
	n := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if excludeSystem && IsSystemFile(e.Name()) {
			continue
		}
		n++
	}
	return n, nil
}

// ResolveAbs expands a leading "~" and returns the cleaned absolute path.
func ResolveAbs(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("pathkit: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("pathkit: %w", err)
	}
	return abs, nil
}

// UniquePath returns path if it is free, otherwise the first free
// "name<delim>N.ext" with N >= 1. The parent directory must exist.
//
// Taken names are assumed to form a prefix 1..k, so the search doubles N
// until a free name is found and then bisects.
func UniquePath(path, delim string) (string, error) {
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("pathkit: parent directory %s: %w", dir, ErrNotDir)
	}

	free, err := isFree(path)
	if err != nil || free {
		return path, err
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	candidate := func(n int) string {
		return stem + delim + strconv.Itoa(n) + ext
	}

	lo, hi := 1, 1
	for {
		free, err := isFree(candidate(hi))
		if err != nil {
			return "", err
		}
		if free {
			break
		}
		lo = hi + 1
		hi *= 2
	}

	for lo < hi {
		mid := (lo + hi) / 2
		free, err := isFree(candidate(mid))
		if err != nil {
			return "", err
		}
		if free {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return candidate(lo), nil
}

func isFree(path string) (bool, error) {
	_, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("pathkit: %w", err)
	}
	return false, nil
}

// ConfigDir returns the per-user configuration directory:
// %APPDATA% on Windows and ~/.config elsewhere.
func ConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("pathkit: %w", err)
	}
	return filepath.Join(home, ".config"), nil
}
