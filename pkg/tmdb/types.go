package tmdb

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds TMDb client configuration.
type Config struct {
	APIKey     string
	BaseURL    string
	Language   string // optional, e.g. "en-US"
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Validate fills defaults and checks required fields.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("tmdb: APIKey is required")
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return nil
}

// Person is a single person search hit.
type Person struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	KnownForDepartment string  `json:"known_for_department"`
	Popularity         float64 `json:"popularity"`
	ProfilePath        string  `json:"profile_path"`
}

// SearchPersonResponse is the body of GET /search/person.
type SearchPersonResponse struct {
	Page         int      `json:"page"`
	Results      []Person `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// CastCredit is one movie a person appeared in.
type CastCredit struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Character   string  `json:"character"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
}

// CrewCredit is one movie a person worked on behind the camera.
type CrewCredit struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// MovieCreditsResponse is the body of GET /person/{id}/movie_credits.
type MovieCreditsResponse struct {
	ID   int64        `json:"id"`
	Cast []CastCredit `json:"cast"`
	Crew []CrewCredit `json:"crew"`
}
