package twempest

import (
	"fmt"
	"regexp"
)

// DefaultRenderPath is the render directory used when none is given.
const DefaultRenderPath = "."

// RenderOptions controls which posts are rendered and where output goes.
// RenderPath, RenderFile, ImagePath and ImageURL are templates expanded per post.
type RenderOptions struct {
	Replies  bool // include replies whose text starts with '@'
	Retweets bool // passed through to retrieval
	Count    int  // 0 = unbounded
	Append   bool // append to existing render files
	Dump     bool // write the rendered batch to BatchFileName

	Skip *regexp.Regexp // rendered posts matching it are dropped

	RenderPath string // directory of render files (default ".")
	RenderFile string // empty = console
	ImagePath  string // directory for extracted images (requires RenderFile)
	ImageURL   string // prefix for rewritten image URLs (requires ImagePath)
}

// DefaultRenderOptions returns options that render everything to the console.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{RenderPath: DefaultRenderPath}
}

// Validate checks option dependencies.
func (o RenderOptions) Validate() error {
	if o.ImagePath != "" && o.RenderFile == "" {
		return ErrImagePathWithoutFile
	}
	if o.ImageURL != "" && o.ImagePath == "" {
		return ErrImageURLWithoutPath
	}
	if o.Count < 0 {
		return fmt.Errorf("%w: %d (must be 0 or more)", ErrInvalidCount, o.Count)
	}
	return nil
}

// ToConsole reports whether rendered posts go to standard output.
func (o RenderOptions) ToConsole() bool {
	return o.RenderFile == ""
}
