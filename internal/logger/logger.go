package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger. Format "console" writes human-readable lines,
// anything else writes JSON. Unknown levels fall back to info.
func New(env, level, format string) zerolog.Logger {
	return NewWithWriter(os.Stdout, env, level, format)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, env, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if strings.EqualFold(format, "console") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("env", env).
		Logger()
}
