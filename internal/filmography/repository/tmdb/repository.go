package tmdb

import (
	"context"

	"movie-bot/internal/filmography"
	"movie-bot/internal/filmography/repository"
	pkgLog "movie-bot/pkg/log"
	pkgTMDb "movie-bot/pkg/tmdb"
)

type implRepository struct {
	client *pkgTMDb.Client
	l      pkgLog.Logger
}

// New creates a TMDb-backed metadata repository.
func New(client *pkgTMDb.Client, l pkgLog.Logger) repository.MetadataRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) SearchPeople(ctx context.Context, name string) ([]filmography.Person, error) {
	resp, err := r.client.SearchPerson(ctx, name)
	if err != nil {
		r.l.Errorf(ctx, "tmdb repository: search person %q: %v", name, err)
		return nil, err
	}

	people := make([]filmography.Person, 0, len(resp.Results))
	for _, p := range resp.Results {
		people = append(people, filmography.Person{ID: p.ID, Name: p.Name})
	}
	return people, nil
}

func (r *implRepository) ListMovieTitles(ctx context.Context, personID int64) ([]string, error) {
	resp, err := r.client.MovieCredits(ctx, personID)
	if err != nil {
		r.l.Errorf(ctx, "tmdb repository: movie credits for %d: %v", personID, err)
		return nil, err
	}

	titles := make([]string, 0, len(resp.Cast))
	for _, c := range resp.Cast {
		titles = append(titles, c.Title)
	}
	return titles, nil
}
