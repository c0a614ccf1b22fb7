package twempest

import (
	"fmt"

	"github.com/alnah/go-twempest/internal/yamlutil"
)

// BatchFileName is where Dump writes the rendered batch.
const BatchFileName = "twempest-dump.yaml"

// WriteBatch replaces the file at path with posts as a YAML sequence.
func WriteBatch(path string, posts []*Post) error {
	if posts == nil {
		posts = []*Post{}
	}
	if err := yamlutil.WriteFile(path, posts); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return nil
}

// ReadBatch loads posts written by WriteBatch.
func ReadBatch(path string) ([]*Post, error) {
	var posts []*Post
	if err := yamlutil.ReadFile(path, &posts, true); err != nil {
		return nil, fmt.Errorf("reading batch %q: %w", path, err)
	}
	return posts, nil
}
