package main

import (
	"errors"
	"os"

	twempest "github.com/alnah/go-twempest"
	"github.com/alnah/go-twempest/internal/assets"
	"github.com/alnah/go-twempest/internal/config"
)

// Exit codes for the twempest CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Posts rendered, or nothing to do
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or template
	ExitIO      = 3 // Reading or writing local files
	ExitRemote  = 4 // Retrieval or image download errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Remote errors (exit 4)
	if errors.Is(err, twempest.ErrRetrieval) ||
		errors.Is(err, twempest.ErrDownload) {
		return ExitRemote
	}

	// Usage/config/template errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrSinceIDRequired) ||
		errors.Is(err, ErrSkipPattern) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrMissingSection) ||
		errors.Is(err, config.ErrMissingCredential) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, twempest.ErrTemplate) ||
		errors.Is(err, twempest.ErrImagePathWithoutFile) ||
		errors.Is(err, twempest.ErrImageURLWithoutPath) ||
		errors.Is(err, twempest.ErrInvalidCount) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, twempest.ErrFileWrite) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, config.ErrLastID) ||
		errors.Is(err, ErrWriteLastID) ||
		errors.Is(err, ErrReadReplay) {
		return ExitIO
	}

	return ExitGeneral
}
