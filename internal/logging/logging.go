// Package logging configures the process-wide zerolog logger.
package logging

import (
	"bytes"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// Setup points the global logger at w with a console layout. An empty or
// unknown level falls back to info.
func Setup(level string, w io.Writer) zerolog.Level {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}).With().Timestamp().Logger()

	return lvl
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// GormWriter feeds gorm's line-oriented logger into zerolog at debug level.
type GormWriter struct{}

func (GormWriter) Write(p []byte) (int, error) {
	log.Debug().Str("component", "gorm").Msg(string(bytes.TrimSpace(p)))
	return len(p), nil
}

// Printf satisfies gorm's logger.Writer.
func (GormWriter) Printf(format string, args ...any) {
	log.Debug().Str("component", "gorm").Msgf(format, args...)
}
