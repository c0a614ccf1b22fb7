// Package logging builds the diagnostic logger used by the command.
//
// Diagnostics go through log/slog so the library stays free of a logging
// dependency; the handler writes with zerolog's console writer. User-facing
// warnings do not go through here, they use twempest.ReportFunc.
package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// Level selects how much the logger prints.
type Level int

const (
	// LevelQuiet discards every record.
	LevelQuiet Level = iota
	// LevelNormal prints warnings and errors.
	LevelNormal
	// LevelVerbose prints debug records too.
	LevelVerbose
)

// LevelFromFlags maps the --quiet and --verbose flags to a Level.
// Quiet wins when both are set.
func LevelFromFlags(quiet, verbose bool) Level {
	switch {
	case quiet:
		return LevelQuiet
	case verbose:
		return LevelVerbose
	default:
		return LevelNormal
	}
}

// New returns a slog.Logger writing human-readable lines to w.
func New(w io.Writer, level Level, noColor bool) *slog.Logger {
	if level == LevelQuiet {
		return slog.New(slog.DiscardHandler)
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}
	zl := zerolog.New(console).With().Timestamp().Logger()

	handler := slogzerolog.Option{
		Level:  slogLevel(level),
		Logger: &zl,
	}.NewZerologHandler()

	return slog.New(handler)
}

func slogLevel(level Level) slog.Level {
	if level == LevelVerbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
