package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: twempest [flags] <template>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Retrieve recent posts and render each one through a template.")
	fmt.Fprintln(w, "Templates use Go text/template syntax: https://pkg.go.dev/text/template")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  template    Template file path, or the name of a template in")
	fmt.Fprintln(w, "              <config-path>/templates or a built-in one (default, markdown, html)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Retrieval:")
	fmt.Fprintln(w, "  -s, --since-id <id>       Retrieve posts that follow this ID")
	fmt.Fprintln(w, "                            (default: the ID recorded by the previous run)")
	fmt.Fprintln(w, "  -@, --replies             Include @replies")
	fmt.Fprintln(w, "  -r, --retweets            Include retweets")
	fmt.Fprintln(w, "  -n, --count <n>           Render at most n posts (0 = all)")
	fmt.Fprintln(w, "      --replay <file>       Render posts from a --dump file instead")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output (template tags allowed):")
	fmt.Fprintln(w, "  -p, --render-path <dir>   Directory for rendered files (default .)")
	fmt.Fprintln(w, "  -f, --render-file <name>  File name for rendered posts (default: standard output)")
	fmt.Fprintln(w, "  -a, --append              Append to existing files instead of skipping them")
	fmt.Fprintln(w, "  -i, --image-path <dir>    Download photos here (needs --render-file)")
	fmt.Fprintln(w, "  -u, --image-url <url>     URL prefix for downloaded photos (needs --image-path)")
	fmt.Fprintln(w, "  -k, --skip <regexp>       Skip rendered posts matching this pattern")
	fmt.Fprintln(w, "      --dump                Write rendered posts to twempest-dump.yaml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config-path <dir>   Directory holding twempest.yaml (default ~/.twempest, then .)")
	fmt.Fprintln(w, "  -D, --dry-run             Show options and template without retrieving posts")
	fmt.Fprintln(w, "                            Options also read TWEMPEST_* environment variables")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors and warnings")
	fmt.Fprintln(w, "  -v, --verbose             Show diagnostic messages")
	fmt.Fprintln(w, "      --no-color            Disable colored warnings")
	fmt.Fprintln(w, "  -V, --version             Show version and exit")
	fmt.Fprintln(w, "  -h, --help                Show this help and exit")
}

// printVersion prints the version banner.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "twempest %s\n", Version)
}
