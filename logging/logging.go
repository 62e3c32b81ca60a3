// Package logging configures the process wide slog logger.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var ErrUnknownFormat = errors.New("unknown log format")

// ParseLogLevel converts a string log level to slog.Level.
// Defaults to slog.LevelInfo for unrecognized strings.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// NewLogger builds a text or json logger writing to w
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	opt := &slog.HandlerOptions{Level: ParseLogLevel(level)}

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		h = slog.NewTextHandler(w, opt)
	case FormatJSON:
		h = slog.NewJSONHandler(w, opt)
	default:
		return nil, fmt.Errorf("%q, %w", format, ErrUnknownFormat)
	}
	return slog.New(h), nil
}

// Init sets the default logger to write to stderr
func Init(level, format string) error {
	logger, err := NewLogger(os.Stderr, level, format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
