package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init creates and sets the package-level default slog logger.
// When quiet is true, logs are discarded entirely; the interactive
// dashboard owns the terminal and stray writes would corrupt it.
// Otherwise uses TextHandler on stderr for human readability.
func Init(quiet bool, level slog.Level) {
	opts := &slog.HandlerOptions{Level: level}
	var w io.Writer = os.Stderr
	if quiet {
		w = io.Discard
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, opts)))
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
