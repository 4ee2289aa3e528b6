package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client is the HTTP wrapper for the TMDb REST API. Safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
}

// New creates a new TMDb client.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		httpClient: cfg.HTTPClient,
	}, nil
}

// SearchPerson queries GET /search/person. Results keep TMDb's relevance order.
func (c *Client) SearchPerson(ctx context.Context, query string) (*SearchPersonResponse, error) {
	params := url.Values{}
	params.Set("query", query)

	var out SearchPersonResponse
	if err := c.get(ctx, searchPersonPath, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieCredits queries GET /person/{id}/movie_credits.
func (c *Client) MovieCredits(ctx context.Context, personID int64) (*MovieCreditsResponse, error) {
	var out MovieCreditsResponse
	if err := c.get(ctx, fmt.Sprintf(movieCreditsPath, personID), url.Values{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint := c.baseURL + path + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("tmdb: failed to build request for %s: %w", path, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// url.Error carries the full URL, api_key included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("tmdb: failed to call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Endpoint: path, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tmdb: failed to decode %s response: %w", path, err)
	}
	return nil
}
