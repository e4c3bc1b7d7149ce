// Package logging builds the process slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

const (
	// FormatText renders human-readable, optionally colored lines.
	FormatText = "text"
	// FormatJSON renders one JSON object per line.
	FormatJSON = "json"
)

// Config selects logger level and output format.
type Config struct {
	Level  string `env:"FRONTPAGE_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error"`
	Format string `env:"FRONTPAGE_LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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

// New builds a logger writing to out. A nil out writes to stdout.
func New(cfg Config, out io.Writer) (*slog.Logger, error) {
	if out == nil {
		out = os.Stdout
	}
	level := ParseLevel(cfg.Level)
	// Warn and error lines carry their call site; info and debug stay compact.
	sourceLevels := []slog.Level{slog.LevelWarn, slog.LevelError}

	var base slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", FormatText:
		base = tint.NewHandler(out, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
			NoColor:    !isTerminal(out),
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == "error" && a.Value.Kind() == slog.KindAny {
					if err, ok := a.Value.Any().(error); ok {
						return tint.Err(err)
					}
				}
				return a
			},
		})
	case FormatJSON:
		base = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return slog.New(NewConditionalSourceHandler(base, sourceLevels...)), nil
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
