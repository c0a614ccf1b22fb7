package twempest

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-twempest/internal/fileutil"
)

// PreviewLength is how many characters of a skipped post are shown.
const PreviewLength = 30

// RenderResult summarizes a Render call.
type RenderResult struct {
	LastID   int64   // ID of the last rendered post, 0 if none
	Rendered int     // posts written to a sink
	Posts    []*Post // rendered posts, kept only with Dump
}

// HasLastID reports whether at least one post was rendered.
func (r RenderResult) HasLastID() bool {
	return r.LastID != 0
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDownloader replaces the HTTP image downloader.
func WithDownloader(d DownloadFunc) Option {
	return func(r *Renderer) {
		if d != nil {
			r.download = d
		}
	}
}

// WithReporter sets the callback for warnings and info messages.
func WithReporter(report ReportFunc) Option {
	return func(r *Renderer) {
		if report != nil {
			r.report = report
		}
	}
}

// WithStdout sets the console sink destination (default os.Stdout).
func WithStdout(w io.Writer) Option {
	return func(r *Renderer) {
		if w != nil {
			r.stdout = w
		}
	}
}

// WithLocation sets the zone post timestamps are shown in (default time.Local).
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithLogger sets the diagnostic logger (default discards).
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithBatchPath overrides where Dump writes the batch (default BatchFileName).
func WithBatchPath(path string) Option {
	return func(r *Renderer) {
		if path != "" {
			r.batchPath = path
		}
	}
}

// WithFilters replaces the filter registry (default DefaultFilters).
func WithFilters(filters map[string]Filter) Option {
	return func(r *Renderer) {
		r.filters = filters
	}
}

// Renderer turns posts into text written to the console or to files.
// A Renderer processes posts one at a time and is not safe for concurrent use.
type Renderer struct {
	opts RenderOptions

	filters   map[string]Filter
	download  DownloadFunc
	report    ReportFunc
	stdout    io.Writer
	loc       *time.Location
	logger    *slog.Logger
	batchPath string

	tmpl       *Template
	renderPath *Template
	renderFile *Template
	extractor  *ImageExtractor
}

// NewRenderer validates opts and compiles templateText plus every path
// template. Invalid options and template syntax errors are returned here.
func NewRenderer(opts RenderOptions, templateText string, options ...Option) (*Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.RenderPath == "" {
		opts.RenderPath = DefaultRenderPath
	}

	r := &Renderer{
		opts:      opts,
		report:    discardReport,
		stdout:    os.Stdout,
		loc:       time.Local,
		logger:    slog.New(slog.DiscardHandler),
		batchPath: BatchFileName,
	}
	for _, opt := range options {
		opt(r)
	}
	if r.download == nil {
		r.download = NewHTTPDownloader().Download
	}

	engine := NewEngine(r.filters)

	var err error
	if r.tmpl, err = engine.Parse("post", templateText); err != nil {
		return nil, err
	}
	if opts.ToConsole() {
		return r, nil
	}

	if r.renderPath, err = engine.Parse("render-path", opts.RenderPath); err != nil {
		return nil, err
	}
	if r.renderFile, err = engine.Parse("render-file", opts.RenderFile); err != nil {
		return nil, err
	}
	if opts.ImagePath == "" {
		return r, nil
	}

	r.extractor = &ImageExtractor{Download: r.download, Report: r.report}
	if r.extractor.Dir, err = engine.Parse("image-path", opts.ImagePath); err != nil {
		return nil, err
	}
	if opts.ImageURL != "" {
		if r.extractor.URL, err = engine.Parse("image-url", opts.ImageURL); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Render processes posts in order until they run out or Count posts have been
// rendered. Any error stops the run; the result then covers the posts
// rendered so far.
func (r *Renderer) Render(ctx context.Context, posts iter.Seq[*Post]) (RenderResult, error) {
	var res RenderResult

	for p := range posts {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rendered, err := r.renderPost(ctx, p)
		if err != nil {
			return res, fmt.Errorf("post %s: %w", p.IDString(), err)
		}
		if !rendered {
			continue
		}

		res.LastID = p.ID
		res.Rendered++
		if r.opts.Dump {
			res.Posts = append(res.Posts, p)
		}
		if r.opts.Count > 0 && res.Rendered >= r.opts.Count {
			break
		}
	}

	if res.Rendered == 0 {
		r.report("No posts retrieved.", true)
		return res, nil
	}

	r.logger.Debug("render complete", "rendered", res.Rendered, "last_id", res.LastID)

	if r.opts.Dump {
		if err := WriteBatch(r.batchPath, res.Posts); err != nil {
			r.report(err.Error(), true)
		} else {
			r.logger.Debug("batch written", "path", r.batchPath, "posts", len(res.Posts))
		}
	}
	return res, nil
}

// renderPost writes one post and reports whether it counts as rendered.
func (r *Renderer) renderPost(ctx context.Context, p *Post) (bool, error) {
	p.Normalize(r.loc)

	if !r.opts.Replies && p.IsReply() && strings.HasPrefix(p.Text, "@") {
		r.logger.Debug("reply filtered", "id", p.ID)
		return false, nil
	}

	var (
		sink    Sink = ConsoleSink{W: r.stdout}
		images  []string
		discard bool
	)

	if r.renderFile != nil {
		path, err := r.renderTarget(p)
		if err != nil {
			return false, err
		}

		if r.extractor != nil {
			if images, err = r.extractor.Extract(ctx, p, path); err != nil {
				return false, err
			}
		}

		if !r.opts.Append && fileutil.Exists(path) {
			r.report(fmt.Sprintf("Skipping existing file '%s'. Use --append to append rendered posts instead.", path), true)
			sink, discard = DiscardSink{}, true
		} else {
			sink = FileSink{Path: path}
		}
	}

	text, err := r.tmpl.Expand(p)
	if err != nil {
		return false, err
	}

	if r.opts.Skip != nil && r.opts.Skip.MatchString(text) {
		r.report(fmt.Sprintf("Skipping post %s matching the skip pattern: '%s'", p.IDString(), p.Preview(PreviewLength)), true)
		CleanupImages(images, r.report)
		return false, nil
	}

	if err := sink.Write(text); err != nil {
		return false, err
	}

	r.logger.Debug("post rendered", "id", p.ID, "images", len(images), "discarded", discard)
	return !discard, nil
}

// renderTarget expands the render path and file templates, creating the
// directory.
func (r *Renderer) renderTarget(p *Post) (string, error) {
	dirName, err := r.renderPath.Expand(p)
	if err != nil {
		return "", err
	}
	dir, err := fileutil.EnsureDir(dirName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileWrite, err)
	}

	name, err := r.renderFile.Expand(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
