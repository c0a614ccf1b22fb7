package twempest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DownloadFunc copies the resource at remoteURL into destPath.
// Failures should be *DownloadError values.
type DownloadFunc func(ctx context.Context, remoteURL, destPath string) error

// Download defaults.
const (
	DefaultUserAgent       = "twempest/1.0"
	DefaultDownloadTimeout = 60 * time.Second
	MaxImageSize           = 64 << 20
)

// HTTPDownloader fetches images over HTTP.
type HTTPDownloader struct {
	Client    *http.Client
	UserAgent string
	MaxSize   int64
}

// NewHTTPDownloader returns a downloader with a bounded timeout and body size.
func NewHTTPDownloader() *HTTPDownloader {
	return &HTTPDownloader{
		Client:    &http.Client{Timeout: DefaultDownloadTimeout},
		UserAgent: DefaultUserAgent,
		MaxSize:   MaxImageSize,
	}
}

// Download satisfies DownloadFunc. The body is read fully before the
// destination is touched, so a failed fetch never leaves a file behind.
func (d *HTTPDownloader) Download(ctx context.Context, remoteURL, destPath string) error {
	fetchErr := func(err error) error {
		return &DownloadError{Phase: PhaseFetch, URL: remoteURL, Path: destPath, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return fetchErr(err)
	}
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	}

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req) // #nosec G107 -- URL comes from post entities
	if err != nil {
		return fetchErr(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fetchErr(fmt.Errorf("unexpected status %s", resp.Status))
	}

	limit := d.MaxSize
	if limit <= 0 {
		limit = MaxImageSize
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return fetchErr(err)
	}
	if int64(len(body)) > limit {
		return fetchErr(fmt.Errorf("image exceeds %d bytes", limit))
	}

	if err := os.WriteFile(destPath, body, 0o644); err != nil { // #nosec G306 -- served images are public
		_ = os.Remove(destPath)
		return &DownloadError{Phase: PhaseWrite, URL: remoteURL, Path: destPath, Err: err}
	}
	return nil
}
