// Package timeline retrieves the authenticated user's posts from the
// v1.1 REST API, signing requests with OAuth 1.0a.
package timeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	twempest "github.com/alnah/go-twempest"
)

const (
	// DefaultBaseURL is the REST API root.
	DefaultBaseURL = "https://api.twitter.com/1.1"

	// PageSize is the largest page the user timeline endpoint returns.
	PageSize = 200

	// MaxPages bounds pagination; the endpoint serves at most 3200 posts.
	MaxPages = 16

	// CreatedAtLayout is the timestamp format of the created_at field.
	CreatedAtLayout = time.RubyDate

	defaultTimeout  = 30 * time.Second
	maxResponseSize = 32 << 20
	userTimelineEP  = "/statuses/user_timeline.json"
)

// Credentials hold the application and user tokens.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// Client fetches timelines. The zero value is not usable; use New.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient sets the transport the signing client wraps.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a Client signing every request with creds.
func New(creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	config := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, c.http)
	signed := config.Client(ctx, token)
	signed.Timeout = c.http.Timeout
	c.http = signed

	return c
}

// UserTimeline returns the posts newer than sinceID, oldest first.
// A zero sinceID fetches as far back as the API allows.
func (c *Client) UserTimeline(ctx context.Context, sinceID int64, includeRetweets bool) ([]*twempest.Post, error) {
	var posts []*twempest.Post
	var maxID int64

	for page := range MaxPages {
		batch, err := c.fetchPage(ctx, sinceID, maxID, includeRetweets)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("fetched timeline page", "page", page, "posts", len(batch), "since_id", sinceID, "max_id", maxID)
		if len(batch) == 0 {
			break
		}
		posts = append(posts, batch...)

		// Pages are newest first; continue below the oldest post seen.
		maxID = batch[len(batch)-1].ID - 1
		if maxID <= sinceID {
			break
		}
	}

	slices.Reverse(posts)
	return posts, nil
}

// Posts adapts a slice to the sequence the renderer consumes.
func Posts(posts []*twempest.Post) iter.Seq[*twempest.Post] {
	return slices.Values(posts)
}

func (c *Client) fetchPage(ctx context.Context, sinceID, maxID int64, includeRetweets bool) ([]*twempest.Post, error) {
	q := url.Values{}
	q.Set("count", strconv.Itoa(PageSize))
	q.Set("tweet_mode", "extended")
	q.Set("include_rts", strconv.FormatBool(includeRetweets))
	if sinceID > 0 {
		q.Set("since_id", strconv.FormatInt(sinceID, 10))
	}
	if maxID > 0 {
		q.Set("max_id", strconv.FormatInt(maxID, 10))
	}

	endpoint := c.baseURL + userTimelineEP + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &APIError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", twempest.DefaultUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Detail: errorDetail(body)}
	}

	var statuses []wireStatus
	if err := json.Unmarshal(body, &statuses); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}

	posts := make([]*twempest.Post, 0, len(statuses))
	for i := range statuses {
		p, err := statuses[i].toPost()
		if err != nil {
			return nil, &APIError{Status: resp.StatusCode, Err: err}
		}
		posts = append(posts, p)
	}
	return posts, nil
}
