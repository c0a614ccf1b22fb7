package twempest

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// MediaTypePhoto is the only media type whose images get downloaded.
const MediaTypePhoto = "photo"

// Post is one retrieved status update.
type Post struct {
	ID                  int64     `json:"id" yaml:"id"`
	Text                string    `json:"text" yaml:"text"`
	FullText            string    `json:"full_text,omitempty" yaml:"fullText,omitempty"`
	CreatedAt           time.Time `json:"-" yaml:"createdAt"`
	InReplyToStatusID   int64     `json:"in_reply_to_status_id,omitempty" yaml:"inReplyToStatusId,omitempty"`
	InReplyToScreenName string    `json:"in_reply_to_screen_name,omitempty" yaml:"inReplyToScreenName,omitempty"`
	User                User      `json:"user" yaml:"user"`
	Entities            Entities  `json:"entities" yaml:"entities"`
}

// User identifies the author of a post.
type User struct {
	ScreenName string `json:"screen_name" yaml:"screenName"`
	Name       string `json:"name" yaml:"name"`
}

// Entities annotates substrings of a post's text.
// Nil slices behave as empty ones.
type Entities struct {
	Hashtags     []Hashtag `json:"hashtags,omitempty" yaml:"hashtags,omitempty"`
	Media        []Media   `json:"media,omitempty" yaml:"media,omitempty"`
	URLs         []URL     `json:"urls,omitempty" yaml:"urls,omitempty"`
	UserMentions []Mention `json:"user_mentions,omitempty" yaml:"userMentions,omitempty"`
}

// Hashtag is a "#tag" occurrence; Text holds the tag without the '#'.
type Hashtag struct {
	Text string `json:"text" yaml:"text"`
}

// URL is a shortened link embedded in the text.
type URL struct {
	URL         string `json:"url" yaml:"url"`
	DisplayURL  string `json:"display_url" yaml:"displayUrl"`
	ExpandedURL string `json:"expanded_url" yaml:"expandedUrl"`
}

// Mention is an "@handle" occurrence.
type Mention struct {
	ID         int64  `json:"id" yaml:"id"`
	ScreenName string `json:"screen_name" yaml:"screenName"`
	Name       string `json:"name" yaml:"name"`
}

// Media is an attached photo, video or animated GIF.
type Media struct {
	Type                  string `json:"type" yaml:"type"`
	URL                   string `json:"url" yaml:"url"`
	DisplayURL            string `json:"display_url" yaml:"displayUrl"`
	ExpandedURL           string `json:"expanded_url" yaml:"expandedUrl"`
	MediaURL              string `json:"media_url,omitempty" yaml:"mediaUrl,omitempty"`
	MediaURLHTTPS         string `json:"media_url_https,omitempty" yaml:"mediaUrlHttps,omitempty"`
	OriginalMediaURL      string `json:"original_media_url,omitempty" yaml:"originalMediaUrl,omitempty"`
	OriginalMediaURLHTTPS string `json:"original_media_url_https,omitempty" yaml:"originalMediaUrlHttps,omitempty"`
}

// IsPhoto reports whether the media is a still image.
func (m Media) IsPhoto() bool {
	return m.Type == MediaTypePhoto
}

// SourceURL returns the current image location, preferring the secure variant.
// After WithServedURL this is the served URL.
func (m Media) SourceURL() string {
	if m.MediaURLHTTPS != "" {
		return m.MediaURLHTTPS
	}
	return m.MediaURL
}

// OriginalURL returns the remote URL saved by WithServedURL, or "".
func (m Media) OriginalURL() string {
	if m.OriginalMediaURLHTTPS != "" {
		return m.OriginalMediaURLHTTPS
	}
	return m.OriginalMediaURL
}

// Served reports whether the media has been rewritten to a served URL.
func (m Media) Served() bool {
	return m.OriginalMediaURL != "" || m.OriginalMediaURLHTTPS != ""
}

// ServedURL returns the rewritten URL, or "" if the media was never rewritten.
func (m Media) ServedURL() string {
	if !m.Served() {
		return ""
	}
	return m.SourceURL()
}

// RemoteURL returns the URL the image should be downloaded from.
func (m Media) RemoteURL() string {
	if m.Served() {
		return m.OriginalURL()
	}
	return m.SourceURL()
}

// WithServedURL returns a copy of m pointing at served. The remote URLs move
// into the Original fields unless an earlier rewrite already saved them.
// Exactly one of MediaURL and MediaURLHTTPS is set, picked by served's scheme.
func (m Media) WithServedURL(served string) Media {
	out := m
	if !m.Served() {
		out.OriginalMediaURL = m.MediaURL
		out.OriginalMediaURLHTTPS = m.MediaURLHTTPS
	}
	if strings.HasPrefix(strings.ToLower(served), "https:") {
		out.MediaURLHTTPS = served
		out.MediaURL = ""
	} else {
		out.MediaURL = served
		out.MediaURLHTTPS = ""
	}
	return out
}

// IDString returns the identifier in decimal form.
func (p *Post) IDString() string {
	return strconv.FormatInt(p.ID, 10)
}

// IsReply reports whether the post answers another post.
func (p *Post) IsReply() bool {
	return p.InReplyToStatusID != 0
}

// Photos returns the photo entities in entity order.
func (p *Post) Photos() []Media {
	var photos []Media
	for _, m := range p.Entities.Media {
		if m.IsPhoto() {
			photos = append(photos, m)
		}
	}
	return photos
}

// Normalize fills Text from FullText when the former is empty and moves
// CreatedAt into loc. Timestamps without zone information are already UTC.
func (p *Post) Normalize(loc *time.Location) {
	if p.Text == "" && p.FullText != "" {
		p.Text = p.FullText
	}
	if loc != nil && !p.CreatedAt.IsZero() {
		p.CreatedAt = p.CreatedAt.In(loc)
	}
}

// Preview returns at most n runes of the text, with an ellipsis when cut.
func (p *Post) Preview(n int) string {
	if utf8.RuneCountInString(p.Text) <= n {
		return p.Text
	}
	runes := []rune(p.Text)
	return string(runes[:n]) + "…"
}
