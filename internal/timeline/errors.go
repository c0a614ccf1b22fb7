package timeline

import (
	"fmt"
	"net/http"

	twempest "github.com/alnah/go-twempest"
)

// APIError reports a failed timeline request. It matches
// twempest.ErrRetrieval with errors.Is.
type APIError struct {
	Status int    // HTTP status, 0 when no response arrived
	Detail string // the service's explanation, if any
	Err    error  // transport or decoding failure, if any
}

func (e *APIError) Error() string {
	msg := twempest.ErrRetrieval.Error()
	if e.Status != 0 {
		msg += fmt.Sprintf(": %d %s", e.Status, http.StatusText(e.Status))
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() error { return e.Err }

// Is makes every APIError match twempest.ErrRetrieval.
func (e *APIError) Is(target error) bool { return target == twempest.ErrRetrieval }
