package timeline

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	twempest "github.com/alnah/go-twempest"
)

// wireStatus is a status as the API sends it. created_at is a string in
// CreatedAtLayout and extended_entities carries every attached photo, where
// entities only lists the first.
type wireStatus struct {
	twempest.Post
	CreatedAt        string `json:"created_at"`
	ExtendedEntities *struct {
		Media []twempest.Media `json:"media"`
	} `json:"extended_entities"`
}

func (w *wireStatus) toPost() (*twempest.Post, error) {
	p := w.Post
	if w.CreatedAt != "" {
		t, err := time.Parse(CreatedAtLayout, w.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("post %d: parsing created_at %q: %w", p.ID, w.CreatedAt, err)
		}
		p.CreatedAt = t
	}
	if w.ExtendedEntities != nil && len(w.ExtendedEntities.Media) > 0 {
		p.Entities.Media = w.ExtendedEntities.Media
	}
	return &p, nil
}

type wireErrors struct {
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
	Error string `json:"error"`
}

// errorDetail extracts the service's explanation from an error body.
func errorDetail(body []byte) string {
	var we wireErrors
	if err := json.Unmarshal(body, &we); err != nil {
		return strings.TrimSpace(string(body))
	}
	if len(we.Errors) > 0 {
		msgs := make([]string, 0, len(we.Errors))
		for _, e := range we.Errors {
			msgs = append(msgs, fmt.Sprintf("%s (code %d)", e.Message, e.Code))
		}
		return strings.Join(msgs, "; ")
	}
	return we.Error
}
