package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrBackend = errors.New("backend api")

// GenericErrorMessage is used whenever the backend can't be reached or its
// reply can't be understood.
const GenericErrorMessage = "An unexpected error occurred"

// StatusError is returned by the typed API when the backend answers with a
// non-2xx status.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("(HTTP Status: %d) - %s", e.Status, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrBackend
}

// ErrorMessage pulls the human readable message out of a backend error body.
// "message" is preferred over "error"; fallback is used when neither is a
// non-empty string or the body isn't JSON.
func ErrorMessage(body []byte, fallback string) string {
	var errorResponse map[string]any
	if err := json.Unmarshal(body, &errorResponse); err != nil {
		return fallback
	}

	for _, key := range []string{"message", "error"} {
		if s, ok := errorResponse[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}

	return fallback
}

// StatusOf reports the backend status carried by err, or 0.
func StatusOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}

	return 0
}
