package usecase

import (
	"context"
	"fmt"
	"strings"

	"movie-bot/internal/filmography"
)

// Lookup performs the two-step search -> credits lookup. Only the first search
// hit is considered.
func (uc *implUseCase) Lookup(ctx context.Context, input filmography.LookupInput) (filmography.Filmography, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		uc.l.Infof(ctx, "Lookup: no name extracted, skipping metadata search")
		return filmography.Filmography{}, filmography.ErrActorNotFound
	}

	people, err := uc.repo.SearchPeople(ctx, name)
	if err != nil {
		return filmography.Filmography{}, &filmography.ServiceError{Step: filmography.StepSearch, Err: err}
	}
	if len(people) == 0 {
		uc.l.Infof(ctx, "Lookup: no person matches %q", name)
		return filmography.Filmography{}, fmt.Errorf("%w: %q", filmography.ErrActorNotFound, name)
	}

	person := people[0]
	uc.l.Infof(ctx, "Lookup: %q resolved to %s (id=%d) out of %d candidates", name, person.Name, person.ID, len(people))

	titles, err := uc.repo.ListMovieTitles(ctx, person.ID)
	if err != nil {
		return filmography.Filmography{}, &filmography.ServiceError{Step: filmography.StepCredits, Err: err}
	}

	return filmography.Filmography{
		Query:  name,
		Person: person,
		Titles: titles,
	}, nil
}
