package repositories

import (
	"errors"
	"fmt"
)

var ErrPlaceNotFound = errors.New("place not found")

// StatusError is returned when a provider answers with a non-200 status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP error (status %d)", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: HTTP error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}
