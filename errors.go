package twempest

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrRetrieval     = errors.New("unable to retrieve posts")
	ErrDownload      = errors.New("image download failed")
	ErrTemplate      = errors.New("template rendering failed")
	ErrFileWrite     = errors.New("unable to write rendered post")
	ErrSerialization = errors.New("unable to write post batch")

	// Option validation errors.
	ErrImagePathWithoutFile = errors.New("image path requires a render file")
	ErrImageURLWithoutPath  = errors.New("image URL requires an image path")
	ErrInvalidCount         = errors.New("invalid post count")
)

// DownloadPhase tells which half of a download failed.
type DownloadPhase string

// Download phases.
const (
	PhaseFetch DownloadPhase = "fetch"
	PhaseWrite DownloadPhase = "write"
)

// DownloadError reports a failed image transfer.
// It matches ErrDownload with errors.Is and unwraps to the cause.
type DownloadError struct {
	Phase DownloadPhase
	URL   string
	Path  string
	Err   error
}

func (e *DownloadError) Error() string {
	switch e.Phase {
	case PhaseWrite:
		return fmt.Sprintf("%v: writing %s: %v", ErrDownload, e.Path, e.Err)
	default:
		return fmt.Sprintf("%v: fetching %s: %v", ErrDownload, e.URL, e.Err)
	}
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Is makes every DownloadError match ErrDownload.
func (e *DownloadError) Is(target error) bool { return target == ErrDownload }
