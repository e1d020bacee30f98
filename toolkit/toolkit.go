// Package toolkit holds process-level helpers.
package toolkit

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnsupportedPlatform is returned by ChromeVersion for an unknown GOOS.
var ErrUnsupportedPlatform = errors.New("toolkit: unsupported platform")

// Wipe overwrites every byte of each buffer with zero.
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
}

// ChromeVersion returns the version of the Chrome binary at path, e.g.
// "120.0.6099.109". goos is a runtime.GOOS value.
func ChromeVersion(ctx context.Context, goos, path string) (string, error) {
	var cmd *exec.Cmd
	switch goos {
	case "linux", "darwin", "freebsd", "openbsd", "netbsd":
		cmd = exec.CommandContext(ctx, path, "--version")
	case "windows":
		script := fmt.Sprintf("(Get-Item '%s').VersionInfo.ProductVersion", strings.ReplaceAll(path, "'", "''"))
		cmd = exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("toolkit: chrome version: %w", err)
	}

	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return "", fmt.Errorf("toolkit: chrome version: empty output from %s", path)
	}
	return fields[len(fields)-1], nil
}
