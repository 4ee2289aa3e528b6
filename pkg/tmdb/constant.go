package tmdb

import "time"

const (
	// DefaultBaseURL is the TMDb v3 API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 10 * time.Second

	searchPersonPath = "/search/person"
	movieCreditsPath = "/person/%d/movie_credits"
)
