package repository

import (
	"context"

	"movie-bot/internal/filmography"
)

// MetadataRepository is the interface for movie metadata lookups.
type MetadataRepository interface {
	// SearchPeople returns people matching name, ranked by the service.
	SearchPeople(ctx context.Context, name string) ([]filmography.Person, error)

	// ListMovieTitles returns the titles of a person's cast credits in service order.
	ListMovieTitles(ctx context.Context, personID int64) ([]string, error)
}
