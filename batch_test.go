package twempest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestBatch - Dump and reload
// ---------------------------------------------------------------------------

func TestWriteBatchReadBatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), BatchFileName)
	posts := []*Post{samplePost(), {ID: 2, Text: "second", CreatedAt: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)}}
	posts[0].Entities.Media[0] = posts[0].Entities.Media[0].WithServedURL("/img/post-0.jpg")

	if err := WriteBatch(path, posts); err != nil {
		t.Fatalf("WriteBatch() error: %v", err)
	}

	got, err := ReadBatch(path)
	if err != nil {
		t.Fatalf("ReadBatch() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadBatch() = %d posts, want 2", len(got))
	}

	first := got[0]
	if first.ID != 1001 || first.Text != posts[0].Text || first.User.ScreenName != "someone" {
		t.Errorf("first post = %+v", first)
	}
	if !first.CreatedAt.Equal(posts[0].CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", first.CreatedAt, posts[0].CreatedAt)
	}
	if m := first.Entities.Media[0]; m.ServedURL() != "/img/post-0.jpg" || m.OriginalURL() != "https://pbs.twimg.com/media/AbC123.jpg" {
		t.Errorf("media = %+v", m)
	}
	if got[1].Entities.Media != nil {
		t.Errorf("second post media = %v, want none", got[1].Entities.Media)
	}
}

func TestWriteBatch_Error(t *testing.T) {
	t.Parallel()

	err := WriteBatch(filepath.Join(t.TempDir(), "missing", BatchFileName), []*Post{{ID: 1}})
	if !errors.Is(err, ErrSerialization) {
		t.Errorf("WriteBatch() error = %v, want ErrSerialization", err)
	}
}

func TestReadBatch_Fixture(t *testing.T) {
	t.Parallel()

	posts, err := ReadBatch(filepath.Join("testdata", "posts.yaml"))
	if err != nil {
		t.Fatalf("ReadBatch() error: %v", err)
	}
	if len(posts) != 4 {
		t.Fatalf("fixture holds %d posts, want 4", len(posts))
	}
	if !posts[1].IsReply() || len(posts[2].Photos()) != 1 {
		t.Errorf("fixture shape changed: %+v", posts)
	}
}

func TestReadBatch_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadBatch(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadBatch() error = %v, want os.ErrNotExist", err)
	}
}
