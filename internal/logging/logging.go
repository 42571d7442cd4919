// Package logging builds the slog loggers used across physlab. Output is
// JSON to a writer of the caller's choice; the level comes from a flag or
// the PHYSLAB_LOG_LEVEL environment variable.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const EnvLevel = "PHYSLAB_LOG_LEVEL"

// New returns a JSON logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: sanitize,
	}))
}

// Discard drops everything. The TUI uses it when no log file is given.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 4}))
}

// ParseLevel accepts DEBUG, INFO, WARN/WARNING and ERROR in any case.
// Anything else is INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromEnv reads EnvLevel, falling back to def when unset.
func LevelFromEnv(def string) slog.Level {
	if v, ok := os.LookupEnv(EnvLevel); ok && v != "" {
		return ParseLevel(v)
	}
	return ParseLevel(def)
}

// sanitize masks attributes that may carry credentials.
func sanitize(_ []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	for _, s := range []string{"api_key", "apikey", "token", "secret", "password"} {
		if strings.Contains(key, s) {
			return slog.String(a.Key, "[REDACTED]")
		}
	}
	return a
}
