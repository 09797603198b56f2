// Package logging builds the structured logger used for diagnostics.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Options configures the logger.
type Options struct {
	// Level is debug, info, warn or error. Anything else means info.
	Level string

	// NoColor disables ANSI colors. New sets it for non-terminal writers.
	NoColor bool
}

// New returns a tint-backed logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	noColor := opts.NoColor || !isTerminal(w)

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      ParseLevel(opts.Level),
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
