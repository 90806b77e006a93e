package coaching

import (
	"errors"
	"fmt"
)

// GenericFailure is shown when the backend could not be reached at all.
const GenericFailure = "Something went wrong. Please try again."

// APIError is a non-2xx answer from the backend. Message carries the
// backend's "error" field and is empty when the body had none.
type APIError struct {
	Status  int
	Message string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("coaching: %s returned %d", e.Path, e.Status)
	}
	return fmt.Sprintf("coaching: %s returned %d: %s", e.Path, e.Status, e.Message)
}

// UserMessage returns the text to show a visitor for err: the backend's
// own message when it sent one, fallback for other backend rejections and
// GenericFailure for transport problems.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	return GenericFailure
}
