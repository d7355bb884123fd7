package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ErrStatus indicates the server answered with a non-2xx status.
type ErrStatus struct {
	StatusCode int
	Body       string
}

func (e *ErrStatus) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), body)
}

// ErrInvalidResponse indicates a 2xx body that is not JSON or does not
// match the expected shape.
type ErrInvalidResponse struct {
	Op      string
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", e.Op, e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrUnavailable indicates the server could not be reached.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lingoflow server unavailable: %v", e.Err)
	}
	return "lingoflow server unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }
