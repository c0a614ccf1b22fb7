package twempest

import (
	"cmp"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-twempest/internal/dateutil"
	"github.com/alnah/go-twempest/internal/markdown"
	"github.com/alnah/go-twempest/internal/textutil"
)

// Filter names registered by DefaultFilters.
const (
	FilterDelink     = "delink"
	FilterISODate    = "isodate"
	FilterReimage    = "reimage"
	FilterRelink     = "relink"
	FilterSlugify    = "slugify"
	FilterMarkdown   = "markdown"
	FilterDateFormat = "dateformat"
)

// Canonical link targets used by Relink.
const (
	HashtagURLPrefix = "https://twitter.com/hashtag/"
	ProfileURLPrefix = "https://twitter.com/"
)

// Filter binds a template function to the post being rendered. The returned
// value must be a function usable in a text/template FuncMap; when used in a
// pipeline the piped text arrives as its last argument.
type Filter func(p *Post) any

// DefaultFilters returns the filter registry available to every template.
func DefaultFilters() map[string]Filter {
	md := markdown.New()

	return map[string]Filter{
		FilterDelink: func(p *Post) any {
			return func(text string) string { return Delink(p, text) }
		},
		FilterISODate: func(*Post) any {
			return ISODate
		},
		FilterReimage: func(p *Post) any {
			return func(tagFormat, text string) (string, error) { return Reimage(p, text, tagFormat) }
		},
		FilterRelink: func(p *Post) any {
			return func(tagFormat, text string) (string, error) { return Relink(p, text, tagFormat) }
		},
		FilterSlugify: func(p *Post) any {
			return func(text string) string { return Slugify(p, text) }
		},
		FilterMarkdown: func(*Post) any {
			return md.ToHTML
		},
		FilterDateFormat: func(*Post) any {
			return func(format string, t time.Time) (string, error) { return dateutil.Format(t, format) }
		},
	}
}

// Delink strips the '#' from every hashtag and removes media and URL short
// links from text.
func Delink(p *Post, text string) string {
	for _, h := range p.Entities.Hashtags {
		text = replaceAll(text, "#"+h.Text, h.Text)
	}
	for _, m := range p.Entities.Media {
		text = replaceAll(text, m.URL, "")
	}
	for _, u := range p.Entities.URLs {
		text = replaceAll(text, u.URL, "")
	}
	return text
}

// Reimage removes the short link of every photo and appends one rendered
// tagFormat fragment per photo to the end of text. The fragment sees
// {{.alt}}, the image file name without extension, and {{.url}}.
func Reimage(p *Post, text, tagFormat string) (string, error) {
	tag, err := parseFragment(FilterReimage, tagFormat)
	if err != nil {
		return "", err
	}

	var tags []string
	for _, m := range p.Entities.Media {
		if !m.IsPhoto() {
			continue
		}
		text = replaceAll(text, m.URL, "")

		src := m.SourceURL()
		frag, err := renderFragment(tag, map[string]string{"alt": fileStem(src), "url": src})
		if err != nil {
			return "", err
		}
		tags = append(tags, frag)
	}

	if len(tags) == 0 {
		return text, nil
	}
	return strings.TrimRight(text, " \t\r\n") + " " + strings.Join(tags, " "), nil
}

// Relink replaces hashtags, links, non-photo media and mentions with rendered
// tagFormat fragments. The fragment sees {{.text}} and {{.url}}. Photos are
// left alone for Reimage.
func Relink(p *Post, text, tagFormat string) (string, error) {
	tag, err := parseFragment(FilterRelink, tagFormat)
	if err != nil {
		return "", err
	}

	type link struct{ old, text, url string }
	var links []link

	for _, h := range p.Entities.Hashtags {
		links = append(links, link{"#" + h.Text, "#" + h.Text, HashtagURLPrefix + strings.ToLower(h.Text)})
	}
	for _, u := range p.Entities.URLs {
		links = append(links, link{u.URL, u.DisplayURL, u.ExpandedURL})
	}
	for _, m := range p.Entities.Media {
		if !m.IsPhoto() {
			links = append(links, link{m.URL, m.DisplayURL, m.ExpandedURL})
		}
	}
	for _, u := range p.Entities.UserMentions {
		links = append(links, link{"@" + u.ScreenName, "@" + u.ScreenName, ProfileURLPrefix + u.ScreenName})
	}

	// Longest first so "#go" never eats the front of "#golang".
	slices.SortStableFunc(links, func(a, b link) int { return cmp.Compare(len(b.old), len(a.old)) })

	seen := make(map[string]bool, len(links))
	pairs := make([]string, 0, 2*len(links))
	for _, l := range links {
		if l.old == "" || seen[l.old] {
			continue
		}
		seen[l.old] = true

		frag, err := renderFragment(tag, map[string]string{"text": l.text, "url": l.url})
		if err != nil {
			return "", err
		}
		pairs = append(pairs, l.old, frag)
	}

	if len(pairs) == 0 {
		return text, nil
	}
	return strings.NewReplacer(pairs...).Replace(text), nil
}

// ISODate formats t as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return dateutil.ISODate(t)
}

// Slugify delinks text and reduces it to lowercase ASCII words joined by
// single hyphens.
func Slugify(p *Post, text string) string {
	return textutil.Slug(Delink(p, text))
}

// replaceAll is strings.ReplaceAll that ignores an empty needle.
func replaceAll(s, old, repl string) string {
	if old == "" {
		return s
	}
	return strings.ReplaceAll(s, old, repl)
}

// fileStem returns the last path element of a URL or path, minus extension.
func fileStem(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
