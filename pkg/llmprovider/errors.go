package llmprovider

import (
	"errors"
	"fmt"
)

var (
	ErrAllProvidersFailed    = errors.New("llmprovider: no provider produced a reply")
	ErrNoProvidersConfigured = errors.New("llmprovider: no provider enabled")
	ErrInvalidRequest        = errors.New("llmprovider: request has no messages")
)

// ProviderError is a failed call to one provider. The manager reports the
// last one when the whole chain fails.
type ProviderError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s/%s: %v", e.Provider, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
