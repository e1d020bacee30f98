package logkit

import (
	"fmt"
	"log/slog"
	"strings"
)

// LevelCritical sits above error for messages that need immediate attention.
const LevelCritical = slog.LevelError + 4

// ParseLevel parses a level name such as "debug", "WARNING" or "info+2".
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning":
		return slog.LevelWarn, nil
	case "critical", "fatal":
		return LevelCritical, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("logkit: invalid level %q: %w", s, err)
	}
	return level, nil
}

// levelName returns the display name of level.
func levelName(level slog.Level, lowercase bool) string {
	name := level.String()
	if level == LevelCritical {
		name = "CRITICAL"
	}
	if lowercase {
		return strings.ToLower(name)
	}
	return name
}
