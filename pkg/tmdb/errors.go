package tmdb

import "fmt"

// APIError is returned when TMDb answers with a non-200 status.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}
