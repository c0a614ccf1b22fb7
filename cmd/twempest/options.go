package main

import (
	"fmt"
	"io"
	"maps"
	"regexp"
	"slices"
	"strconv"

	twempest "github.com/alnah/go-twempest"
	"github.com/alnah/go-twempest/internal/config"
	"github.com/alnah/go-twempest/internal/hints"
)

// runOptions are the effective options after merging flags over the config
// file (which already carries environment overrides).
type runOptions struct {
	Append     bool
	ConfigPath string
	Count      int
	DryRun     bool
	Dump       bool
	ImagePath  string
	ImageURL   string
	RenderFile string
	RenderPath string
	Replay     string
	Replies    bool
	Retweets   bool
	SinceID    int64
	Skip       string
}

// mergeOptions overlays explicitly given flags on the config values.
// A flag left at its default never masks the config file.
func mergeOptions(flags *cliFlags, cfg config.TwempestConfig, configPath string) runOptions {
	o := runOptions{
		Append:     cfg.Append,
		ConfigPath: configPath,
		Count:      cfg.Count,
		Dump:       cfg.Dump,
		ImagePath:  cfg.ImagePath,
		ImageURL:   cfg.ImageURL,
		RenderFile: cfg.RenderFile,
		RenderPath: cfg.RenderPath,
		Replies:    cfg.Replies,
		Retweets:   cfg.Retweets,
		SinceID:    cfg.SinceID,
		Skip:       cfg.Skip,
	}
	f := flags.render

	// Bool flags
	if flags.changed("append") {
		o.Append = f.append
	}
	if flags.changed("dump") {
		o.Dump = f.dump
	}
	if flags.changed("replies") {
		o.Replies = f.replies
	}
	if flags.changed("retweets") {
		o.Retweets = f.retweets
	}
	o.DryRun = f.dryRun
	o.Replay = f.replay

	// String and number flags
	if flags.changed("count") {
		o.Count = f.count
	}
	if flags.changed("image-path") {
		o.ImagePath = f.imagePath
	}
	if flags.changed("image-url") {
		o.ImageURL = f.imageURL
	}
	if flags.changed("render-file") {
		o.RenderFile = f.renderFile
	}
	if flags.changed("render-path") {
		o.RenderPath = f.renderPath
	}
	if flags.changed("since-id") {
		o.SinceID = f.sinceID
	}
	if flags.changed("skip") {
		o.Skip = f.skip
	}

	if o.RenderPath == "" {
		o.RenderPath = twempest.DefaultRenderPath
	}
	return o
}

// compileSkip compiles the skip pattern; an empty pattern skips nothing.
func compileSkip(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v%s", ErrSkipPattern, err, hints.ForSkipPattern())
	}
	return re, nil
}

// renderOptions converts the merged options for the library.
func (o runOptions) renderOptions(skip *regexp.Regexp) twempest.RenderOptions {
	return twempest.RenderOptions{
		Replies:    o.Replies,
		Retweets:   o.Retweets,
		Count:      o.Count,
		Append:     o.Append,
		Dump:       o.Dump,
		Skip:       skip,
		RenderPath: o.RenderPath,
		RenderFile: o.RenderFile,
		ImagePath:  o.ImagePath,
		ImageURL:   o.ImageURL,
	}
}

// fields lists every option as a key/value pair, keyed like the long flags.
func (o runOptions) fields() map[string]string {
	return map[string]string{
		"append":      strconv.FormatBool(o.Append),
		"config-path": o.ConfigPath,
		"count":       strconv.Itoa(o.Count),
		"dry-run":     strconv.FormatBool(o.DryRun),
		"dump":        strconv.FormatBool(o.Dump),
		"image-path":  o.ImagePath,
		"image-url":   o.ImageURL,
		"render-file": o.RenderFile,
		"render-path": o.RenderPath,
		"replay":      o.Replay,
		"replies":     strconv.FormatBool(o.Replies),
		"retweets":    strconv.FormatBool(o.Retweets),
		"since-id":    strconv.FormatInt(o.SinceID, 10),
		"skip":        o.Skip,
	}
}

// printDryRun prints the options sorted by key, then the template text.
func printDryRun(w io.Writer, o runOptions, templateText string) {
	fields := o.fields()
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		fmt.Fprintf(w, "%s = %s\n", k, fields[k])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "template =")
	fmt.Fprintln(w, templateText)
}
