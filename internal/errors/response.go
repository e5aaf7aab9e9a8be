package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// NewErrorResponse converts an error chain into the wire format. Hints become
// the shopper-facing message; reportable details attached via
// WithReportableDetails are decoded back into the structured details map.
func NewErrorResponse(err error) *ErrorResponse {
	detail := ErrorDetail{
		Display:       displayMessage(err),
		InternalError: err.Error(),
	}

	for _, payload := range errors.GetAllSafeDetails(err) {
		for _, d := range payload.SafeDetails {
			if !strings.HasPrefix(d, "__json__:") {
				continue
			}
			var details map[string]any
			if json.Unmarshal([]byte(strings.TrimPrefix(d, "__json__:")), &details) == nil {
				detail.Details = details
				return &ErrorResponse{Error: detail}
			}
		}
	}

	return &ErrorResponse{Error: detail}
}

func displayMessage(err error) string {
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		return strings.Join(hints, ". ")
	}

	var internal *InternalError
	if errors.As(err, &internal) {
		return internal.Message
	}
	return "An unexpected error occurred"
}
