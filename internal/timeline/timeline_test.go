package timeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	twempest "github.com/alnah/go-twempest"
)

var testCreds = Credentials{
	ConsumerKey:       "ck",
	ConsumerSecret:    "cs",
	AccessToken:       "at",
	AccessTokenSecret: "ats",
}

func statusJSON(id int64, text string) string {
	return fmt.Sprintf(`{"id":%d,"full_text":%q,"created_at":"Mon Jan 02 15:04:05 +0000 2017","user":{"screen_name":"gopher","name":"Gopher"},"entities":{}}`, id, text)
}

// timelineServer serves ids newest first, honoring since_id, max_id and count.
type timelineServer struct {
	mu      sync.Mutex
	ids     []int64
	queries []string
	auth    []string
}

func (s *timelineServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.queries = append(s.queries, r.URL.RawQuery)
	s.auth = append(s.auth, r.Header.Get("Authorization"))
	s.mu.Unlock()

	q := r.URL.Query()
	since, _ := strconv.ParseInt(q.Get("since_id"), 10, 64)
	maxID, _ := strconv.ParseInt(q.Get("max_id"), 10, 64)
	count, _ := strconv.Atoi(q.Get("count"))

	var items []string
	for _, id := range s.ids {
		if id <= since || (maxID > 0 && id > maxID) {
			continue
		}
		if len(items) == count {
			break
		}
		items = append(items, statusJSON(id, "post "+strconv.FormatInt(id, 10)))
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprint(w, "["+strings.Join(items, ",")+"]")
}

func ids(posts []*twempest.Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

// ---------------------------------------------------------------------------
// TestUserTimeline - Pagination, ordering, decoding
// ---------------------------------------------------------------------------

func TestUserTimeline(t *testing.T) {
	t.Parallel()

	srv := &timelineServer{ids: []int64{9, 8, 7, 5, 3}}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	client := New(testCreds, WithBaseURL(ts.URL))
	posts, err := client.UserTimeline(context.Background(), 4, true)
	if err != nil {
		t.Fatalf("UserTimeline() error: %v", err)
	}

	if got, want := ids(posts), []int64{5, 7, 8, 9}; !slices.Equal(got, want) {
		t.Errorf("ids = %v, want %v (oldest first)", got, want)
	}

	p := posts[0]
	if p.FullText != "post 5" || p.User.ScreenName != "gopher" {
		t.Errorf("post = %+v", p)
	}
	if p.CreatedAt.Year() != 2017 || p.CreatedAt.Hour() != 15 {
		t.Errorf("CreatedAt = %v", p.CreatedAt)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	first := srv.queries[0]
	for _, want := range []string{"since_id=4", "include_rts=true", "tweet_mode=extended", "count=200"} {
		if !strings.Contains(first, want) {
			t.Errorf("query %q missing %q", first, want)
		}
	}
	if !strings.HasPrefix(srv.auth[0], "OAuth ") || !strings.Contains(srv.auth[0], `oauth_consumer_key="ck"`) {
		t.Errorf("Authorization = %q, want OAuth signature", srv.auth[0])
	}
}

func TestUserTimeline_Paginates(t *testing.T) {
	t.Parallel()

	var all []int64
	for id := int64(450); id > 0; id-- {
		all = append(all, id)
	}
	srv := &timelineServer{ids: all}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	posts, err := New(testCreds, WithBaseURL(ts.URL)).UserTimeline(context.Background(), 0, false)
	if err != nil {
		t.Fatalf("UserTimeline() error: %v", err)
	}
	if len(posts) != 450 || posts[0].ID != 1 || posts[449].ID != 450 {
		t.Fatalf("got %d posts from %d to %d", len(posts), posts[0].ID, posts[len(posts)-1].ID)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	// The third page reaches id 1, so no empty page is requested.
	if len(srv.queries) != 3 {
		t.Errorf("requests = %d, want 3", len(srv.queries))
	}
	if !strings.Contains(srv.queries[1], "max_id=250") {
		t.Errorf("second query = %q, want max_id below the first page", srv.queries[1])
	}
	if strings.Contains(srv.queries[0], "since_id") {
		t.Errorf("first query = %q, want no since_id for a zero value", srv.queries[0])
	}
}

func TestUserTimeline_ExtendedEntities(t *testing.T) {
	t.Parallel()

	body := `[{"id":1,"full_text":"two pics https://t.co/p","created_at":"Mon Jan 02 15:04:05 +0000 2017",
"entities":{"media":[{"type":"photo","url":"https://t.co/p","media_url_https":"https://pbs.example/a.jpg"}]},
"extended_entities":{"media":[
 {"type":"photo","url":"https://t.co/p","media_url_https":"https://pbs.example/a.jpg"},
 {"type":"photo","url":"https://t.co/p","media_url_https":"https://pbs.example/b.jpg"}]}}]`

	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls > 1 {
			_, _ = fmt.Fprint(w, "[]")
			return
		}
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)

	posts, err := New(testCreds, WithBaseURL(ts.URL)).UserTimeline(context.Background(), 0, false)
	if err != nil {
		t.Fatalf("UserTimeline() error: %v", err)
	}
	if n := len(posts[0].Photos()); n != 2 {
		t.Errorf("photos = %d, want 2 from extended_entities", n)
	}
}

// ---------------------------------------------------------------------------
// TestUserTimeline_Errors - Failures match ErrRetrieval
// ---------------------------------------------------------------------------

func TestUserTimeline_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantText   string
	}{
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"errors":[{"code":32,"message":"Could not authenticate you."}]}`,
			wantStatus: http.StatusUnauthorized,
			wantText:   "Could not authenticate you. (code 32)",
		},
		{
			name:       "plain error body",
			status:     http.StatusServiceUnavailable,
			body:       "over capacity",
			wantStatus: http.StatusServiceUnavailable,
			wantText:   "over capacity",
		},
		{
			name:       "malformed json",
			status:     http.StatusOK,
			body:       `{"not":"a list"}`,
			wantStatus: http.StatusOK,
			wantText:   "decoding response",
		},
		{
			name:       "bad timestamp",
			status:     http.StatusOK,
			body:       `[{"id":1,"created_at":"yesterday"}]`,
			wantStatus: http.StatusOK,
			wantText:   "created_at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = fmt.Fprint(w, tt.body)
			}))
			t.Cleanup(ts.Close)

			_, err := New(testCreds, WithBaseURL(ts.URL)).UserTimeline(context.Background(), 0, false)
			if !errors.Is(err, twempest.ErrRetrieval) {
				t.Fatalf("error = %v, want ErrRetrieval", err)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Status != tt.wantStatus {
				t.Fatalf("error = %#v, want APIError with status %d", err, tt.wantStatus)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantText)
			}
		})
	}
}

func TestUserTimeline_Unreachable(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	_, err := New(testCreds, WithBaseURL(ts.URL)).UserTimeline(context.Background(), 0, false)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 0 || apiErr.Err == nil {
		t.Errorf("error = %v, want transport APIError", err)
	}
}

func TestUserTimeline_Canceled(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(&timelineServer{ids: []int64{1}})
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(testCreds, WithBaseURL(ts.URL)).UserTimeline(ctx, 0, false)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
