package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	twempest "github.com/alnah/go-twempest"
	"github.com/alnah/go-twempest/internal/timeline"
)

// TimelineFetcher retrieves posts newer than sinceID, oldest first.
type TimelineFetcher interface {
	UserTimeline(ctx context.Context, sinceID int64, includeRetweets bool) ([]*twempest.Post, error)
}

// Compile-time interface implementation check.
var _ TimelineFetcher = (*timeline.Client)(nil)

// Dependencies holds injectable dependencies for testability.
type Dependencies struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Location *time.Location

	// NewTimeline builds the retrieval client from the configured credentials.
	NewTimeline func(creds timeline.Credentials, logger *slog.Logger) TimelineFetcher

	// Download fetches photos; nil selects the HTTP downloader.
	Download twempest.DownloadFunc
}

// DefaultDeps returns production dependencies.
func DefaultDeps() *Dependencies {
	return &Dependencies{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Location: time.Local,
		NewTimeline: func(creds timeline.Credentials, logger *slog.Logger) TimelineFetcher {
			return timeline.New(creds, timeline.WithLogger(logger))
		},
	}
}
