// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logger, closer, err := logging.Setup("debug", "")  // stderr, colored
//	logger, closer, err := logging.Setup("info", path) // append to path, plain
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ErrInvalidLevel indicates an unrecognized level name.
var ErrInvalidLevel = errors.New("logging: invalid level")

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
// The empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

// New returns a tint logger writing to w. Color is disabled for anything
// other than a terminal-bound stream.
func New(w io.Writer, level slog.Level, color bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !color,
	}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup builds the process logger and installs it as slog's default. With a
// logFile it appends to that file, otherwise it logs to stderr. The returned
// closer releases the file.
func Setup(level, logFile string) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if logFile == "" {
		logger := New(os.Stderr, lvl, true)
		slog.SetDefault(logger)
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0700); err != nil {
		return nil, nil, fmt.Errorf("logging: create log directory: %w", err)
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", logFile, err)
	}
	logger := New(f, lvl, false)
	slog.SetDefault(logger)
	return logger, f, nil
}
