// Package catalog loads the static movie catalog and answers read queries over it.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/movie"
)

// Path is the static resource the catalog is served from.
const Path = "/data/movies.json"

const defaultBaseURL = "http://localhost:8585"

// Client fetches the catalog once per cache miss.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *slog.Logger
	fetches    singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the origin the catalog path is resolved against.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCache sets the catalog cache.
func WithCache(cc *cache.Cache) Option {
	return func(c *Client) {
		c.cache = cc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a catalog client. Without WithCache it uses a memory-only cache.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = cache.New(cache.WithLogger(c.logger))
	}
	return c
}

// Movies returns the full catalog, from cache when fresh.
// Concurrent misses share a single fetch.
func (c *Client) Movies(ctx context.Context) ([]movie.Movie, error) {
	if movies, ok := c.cache.Get(ctx); ok {
		return movies, nil
	}

	// The shared fetch outlives any single caller; each caller waits on its
	// own ctx and the HTTP client timeout bounds the request.
	shared := context.WithoutCancel(ctx)
	ch := c.fetches.DoChan(Path, func() (any, error) {
		movies, err := c.fetch(shared)
		if err != nil {
			return nil, err
		}
		c.cache.Set(shared, movies)
		return movies, nil
	})

	select {
	case <-ctx.Done():
		return nil, &LoadError{Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			c.logger.Error("fetch catalog", "url", c.baseURL+Path, "error", res.Err)
			return nil, &LoadError{Err: res.Err}
		}
		return slices.Clone(res.Val.([]movie.Movie)), nil
	}
}

// Movie returns the movie with the given id.
func (c *Client) Movie(ctx context.Context, id int64) (movie.Movie, error) {
	movies, err := c.Movies(ctx)
	if err != nil {
		return movie.Movie{}, err
	}
	m, ok := movie.FindByID(movies, id)
	if !ok {
		return movie.Movie{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return m, nil
}

// Search returns the movies whose title contains query, case-insensitively,
// in catalog order.
func (c *Client) Search(ctx context.Context, query string) ([]movie.Movie, error) {
	movies, err := c.Movies(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]movie.Movie, 0, len(movies))
	for i := range movies {
		if movies[i].TitleContains(query) {
			result = append(result, movies[i])
		}
	}
	return result, nil
}

// ClearCache empties both cache tiers so the next read fetches.
func (c *Client) ClearCache(ctx context.Context) {
	c.cache.Clear(ctx)
}

// Reload clears the cache and fetches the catalog again.
func (c *Client) Reload(ctx context.Context) ([]movie.Movie, error) {
	c.ClearCache(ctx)
	return c.Movies(ctx)
}

func (c *Client) fetch(ctx context.Context) ([]movie.Movie, error) {
	url := c.baseURL + Path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned %s", resp.Status)
	}

	var body movie.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if body.Movies == nil {
		return nil, fmt.Errorf("decode response: missing %q field", "movies")
	}

	c.logger.Debug("catalog fetched", "url", url, "movies", len(body.Movies))
	return body.Movies, nil
}
