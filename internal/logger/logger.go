// Package logger configures structured logging and crash reporting for todolist.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel maps a config string to a slog level. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Options configure Setup.
type Options struct {
	// File receives log output. Empty means stderr.
	File  string
	Level string
	// Verbose forces debug level.
	Verbose bool
}

// Setup builds a text slog.Logger, installs it as the default and returns a
// closer for the underlying file. If the log file cannot be opened the logger
// falls back to stderr at warn level so command output stays clean.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
		err    error
	)
	if opts.File != "" {
		var f *os.File
		f, err = openLogFile(opts.File)
		if err == nil {
			w, closer = f, f
		} else if !opts.Verbose {
			level = max(level, slog.LevelWarn)
		}
	}

	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	return l, closer, err
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
