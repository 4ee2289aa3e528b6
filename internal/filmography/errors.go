package filmography

import (
	"errors"
	"fmt"
)

// Domain-specific errors for the filmography package.
var (
	ErrActorNotFound      = errors.New("actor not found")
	ErrServiceUnavailable = errors.New("movie metadata service unavailable")
)

// Step names the remote call a lookup failed at.
type Step string

const (
	StepSearch  Step = "search_person"
	StepCredits Step = "movie_credits"
)

// ServiceError reports a failed remote call. It matches ErrServiceUnavailable
// with errors.Is and unwraps to the transport error.
type ServiceError struct {
	Step Step
	Err  error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrServiceUnavailable, e.Step, e.Err)
}

func (e *ServiceError) Is(target error) bool {
	return target == ErrServiceUnavailable
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
