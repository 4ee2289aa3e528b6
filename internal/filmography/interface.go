package filmography

import "context"

// UseCase defines the business logic interface for the filmography domain.
type UseCase interface {
	// Lookup resolves a name to the first matching person and returns the
	// titles of every movie they are credited in.
	Lookup(ctx context.Context, input LookupInput) (Filmography, error)
}
