// Package logging configures the zerolog logger the binaries share.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NewLogger builds a logger writing to w. Unknown level names fall
// back to info. Format "console" writes human-readable lines and
// "json" writes one JSON object per line.
func NewLogger(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Setup builds the process logger. It writes to stderr so the
// interactive prompt keeps stdout to itself, and stamps every line
// with a run identifier to tell overlapping sessions apart.
func Setup(level, format string) zerolog.Logger {
	return NewLogger(os.Stderr, level, format).With().
		Str("run_id", uuid.NewString()).
		Logger()
}
