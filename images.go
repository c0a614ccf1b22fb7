package twempest

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/alnah/go-twempest/internal/fileutil"
)

// ImageExtractor downloads a post's photos next to its render file and points
// the photo entities at the local copies.
type ImageExtractor struct {
	Dir      *Template // image directory, expanded per post
	URL      *Template // served URL prefix; nil serves the file path
	Download DownloadFunc
	Report   ReportFunc
}

// Extract saves every photo of p as "{stem(baseFileName)}-{i}{ext}" in the
// expanded Dir and rewrites the entity with Media.WithServedURL. Photos whose
// file already exists are rewritten but not downloaded again. It returns the
// paths it wrote. p is modified in place.
func (x *ImageExtractor) Extract(ctx context.Context, p *Post, baseFileName string) ([]string, error) {
	report := x.Report
	if report == nil {
		report = discardReport
	}

	rendered, err := x.Dir.Expand(p)
	if err != nil {
		return nil, err
	}
	dir, err := fileutil.EnsureDir(rendered)
	if err != nil {
		return nil, &DownloadError{Phase: PhaseWrite, Path: rendered, Err: err}
	}

	var prefix string
	if x.URL != nil {
		if prefix, err = x.URL.Expand(p); err != nil {
			return nil, err
		}
	}

	base := filepath.Base(baseFileName)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	var written []string
	i := 0
	for idx, m := range p.Entities.Media {
		if !m.IsPhoto() {
			continue
		}

		remote := m.RemoteURL()
		name := fmt.Sprintf("%s-%d%s", stem, i, remoteExt(remote))
		i++

		dest := filepath.Join(dir, name)
		served := dest
		if x.URL != nil {
			served = strings.TrimSuffix(prefix, "/") + "/" + name
		}
		p.Entities.Media[idx] = m.WithServedURL(served)

		if fileutil.Exists(dest) {
			report(fmt.Sprintf("Image file '%s' already exists; not downloading it again.", dest), true)
			continue
		}

		if err := x.Download(ctx, remote, dest); err != nil {
			return written, err
		}
		written = append(written, dest)
	}

	return written, nil
}

// CleanupImages deletes paths. Failures are reported, never returned.
func CleanupImages(paths []string, report ReportFunc) {
	if report == nil {
		report = discardReport
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			report(fmt.Sprintf("Unable to delete downloaded image file: '%s' (%v)", p, err), true)
		}
	}
}

// remoteExt returns the extension of a URL's path, ignoring query strings.
func remoteExt(raw string) string {
	if u, err := url.Parse(raw); err == nil {
		return path.Ext(u.Path)
	}
	return path.Ext(raw)
}
