package twempest

import (
	"fmt"
	"io"

	"github.com/alnah/go-twempest/internal/fileutil"
)

// Sink receives rendered post text.
type Sink interface {
	Write(text string) error
}

// ConsoleSink prints each post followed by a blank line.
type ConsoleSink struct {
	W io.Writer
}

func (s ConsoleSink) Write(text string) error {
	if _, err := fmt.Fprint(s.W, text, "\n\n"); err != nil {
		return fmt.Errorf("%w: console: %v", ErrFileWrite, err)
	}
	return nil
}

// FileSink appends to Path, creating the file on first write.
type FileSink struct {
	Path string
}

func (s FileSink) Write(text string) error {
	if err := fileutil.AppendString(s.Path, text); err != nil {
		return fmt.Errorf("%w: %v", ErrFileWrite, err)
	}
	return nil
}

// DiscardSink drops everything.
type DiscardSink struct{}

func (DiscardSink) Write(string) error { return nil }
