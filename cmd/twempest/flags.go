package main

import (
	"io"

	flag "github.com/spf13/pflag"

	twempest "github.com/alnah/go-twempest"
)

// commonFlags holds flags that only affect the command itself.
type commonFlags struct {
	configPath string
	quiet      bool
	verbose    bool
	noColor    bool
	help       bool
	version    bool
}

// renderFlags mirror the twempest section of the config file.
type renderFlags struct {
	append     bool
	dryRun     bool
	dump       bool
	imagePath  string
	imageURL   string
	renderFile string
	renderPath string
	replies    bool
	retweets   bool
	sinceID    int64
	skip       string
	count      int
	replay     string
}

// cliFlags holds every parsed flag plus the set itself, which knows which
// flags were given explicitly.
type cliFlags struct {
	common commonFlags
	render renderFlags
	set    *flag.FlagSet
}

// changed reports whether the named flag was set on the command line.
func (f *cliFlags) changed(name string) bool {
	return f.set != nil && f.set.Changed(name)
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.configPath, "config-path", "c", "", "configuration directory (default ~/.twempest)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show diagnostic messages")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored warnings")
	fs.BoolVarP(&f.help, "help", "h", false, "show help and exit")
	fs.BoolVarP(&f.version, "version", "V", false, "show version and exit")
}

func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVarP(&f.append, "append", "a", false, "append rendered posts to existing files")
	fs.BoolVarP(&f.dryRun, "dry-run", "D", false, "show options and template without retrieving posts")
	fs.BoolVar(&f.dump, "dump", false, "write the rendered posts to "+twempest.BatchFileName)
	fs.StringVarP(&f.imagePath, "image-path", "i", "", "directory for downloaded photos (template)")
	fs.StringVarP(&f.imageURL, "image-url", "u", "", "URL prefix for downloaded photos (template)")
	fs.StringVarP(&f.renderFile, "render-file", "f", "", "file name for rendered posts (template)")
	fs.StringVarP(&f.renderPath, "render-path", "p", "", "directory for rendered files (template, default .)")
	fs.BoolVarP(&f.replies, "replies", "@", false, "include @replies")
	fs.BoolVarP(&f.retweets, "retweets", "r", false, "include retweets")
	fs.Int64VarP(&f.sinceID, "since-id", "s", 0, "retrieve posts after this ID")
	fs.StringVarP(&f.skip, "skip", "k", "", "skip rendered posts matching this regular expression")
	fs.IntVarP(&f.count, "count", "n", 0, "render at most this many posts (0 = all)")
	fs.StringVar(&f.replay, "replay", "", "render posts from a dump file instead of retrieving them")
}

// parseFlags parses args (without the program name) and returns the
// positional arguments.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("twempest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = true

	f := &cliFlags{set: fs}
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
