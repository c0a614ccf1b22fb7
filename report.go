package twempest

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ReportFunc receives user-facing progress messages. Warnings are non-fatal
// problems the user should see. A ReportFunc must not fail.
type ReportFunc func(message string, warning bool)

// WarningPrefix starts every warning printed by NewReporter.
const WarningPrefix = "Warning: "

// NewReporter prints info lines to stdout and warnings to stderr.
// With useColor the warning prefix is yellow.
func NewReporter(stdout, stderr io.Writer, useColor bool) ReportFunc {
	yellow := color.New(color.FgYellow)
	if useColor {
		yellow.EnableColor()
	} else {
		yellow.DisableColor()
	}

	return func(message string, warning bool) {
		if warning {
			_, _ = fmt.Fprintln(stderr, yellow.Sprint(WarningPrefix)+message)
			return
		}
		_, _ = fmt.Fprintln(stdout, message)
	}
}

// IsTerminal reports whether w is a terminal that should get colored output.
// NO_COLOR in the environment turns color off.
func IsTerminal(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func discardReport(string, bool) {}
