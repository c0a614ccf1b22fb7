// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"net/http"
	"strings"
)

// ResponseCodesURL documents the status codes returned by the timeline API.
const ResponseCodesURL = "https://developer.twitter.com/en/support/twitter-api/error-troubleshooting"

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound(fileName string, searchedPaths []string) string {
	hint := "use --config-path /path/to/dir"
	if len(searchedPaths) > 0 {
		hint += " or create " + fileName + " in " + searchedPaths[0]
	}
	return format(hint)
}

// ForMissingCredential returns hints for incomplete twitter sections.
func ForMissingCredential() string {
	return format("create an app at https://developer.twitter.com to get consumer and access tokens")
}

// ForSinceID explains where a post ID can be found.
func ForSinceID() string {
	return format("open a post on the website and read its address: the long number after 'status/' is the ID")
}

// ForRetrieval returns hints for timeline API failures.
func ForRetrieval(status int) string {
	var hints []string
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		hints = append(hints, "check the twitter credentials in the config file")
	case http.StatusTooManyRequests:
		hints = append(hints, "rate limit reached; wait a few minutes before retrying")
	}
	hints = append(hints, "see "+ResponseCodesURL)
	return formatHints(hints)
}

// ForSkipPattern points at the regular expression syntax.
func ForSkipPattern() string {
	return format("--skip uses RE2 syntax: https://github.com/google/re2/wiki/Syntax")
}

// ForTemplateNotFound lists the built-in templates.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("built-in templates: " + strings.Join(available, ", "))
}

// ForImageOptions explains the image option dependencies.
func ForImageOptions() string {
	return format("--image-path needs --render-file, and --image-url needs --image-path")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
