package httpclient

import (
	"fmt"

	ierr "github.com/currybox/currybox/internal/errors"
)

// Error is an HTTP error response from a collaborator
type Error struct {
	StatusCode int
	Body       []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, string(e.Body))
}

// NewError wraps a non-2xx response, marked as an http client error so
// callers can match it with ierr.IsHTTPClient
func NewError(statusCode int, body []byte) error {
	return ierr.WithError(&Error{StatusCode: statusCode, Body: body}).
		WithHint("The service returned an error, please retry").
		WithReportableDetails(map[string]any{
			"status_code": statusCode,
		}).
		Mark(ierr.ErrHTTPClient)
}
