package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	colorCyan  = "\033[36m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"
)

// CLIHandler is a compact slog.Handler for terminal output: one line per
// record, attrs appended as key=value, errors in red.
type CLIHandler struct {
	writer io.Writer
	level  slog.Level
	group  string
}

func NewCLIHandler(w io.Writer, level slog.Level) *CLIHandler {
	return &CLIHandler{writer: w, level: level}
}

func (h *CLIHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *CLIHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	if r.Level >= slog.LevelError {
		sb.WriteString(colorRed)
	} else {
		sb.WriteString(colorCyan)
	}

	if h.group != "" {
		sb.WriteString("[" + h.group + "] ")
	}
	sb.WriteString(r.Message)

	r.Attrs(func(a slog.Attr) bool {
		sb.WriteString(fmt.Sprintf(" %s=%v", a.Key, a.Value))
		return true
	})

	sb.WriteString(colorReset)

	_, err := fmt.Fprintln(h.writer, sb.String())
	return err
}

func (h *CLIHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *CLIHandler) WithGroup(name string) slog.Handler {
	return &CLIHandler{writer: h.writer, level: h.level, group: name}
}

// SetDefaultCLILogger installs the CLI handler as the default slog logger,
// writing to stderr so data output on stdout stays parseable.
func SetDefaultCLILogger(level string) {
	h := NewCLIHandler(os.Stderr, ParseLogLevel(level))
	slog.SetDefault(slog.New(h))
}

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
