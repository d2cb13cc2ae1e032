// Package cache holds the last loaded catalog in two tiers: an in-process
// memory slot and a persisted slot, both valid for a fixed window.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/vmunix/marquee/internal/movie"
)

// DefaultKey is the persisted slot the catalog is stored under.
const DefaultKey = "movies_cache"

// DefaultTTL is the expiry window of a cached catalog.
const DefaultTTL = 5 * time.Minute

var (
	// ErrMiss is returned by Lookup when no fresh entry exists.
	ErrMiss = errors.New("cache miss")
	// ErrCorrupt marks a persisted payload that could not be decoded.
	ErrCorrupt = errors.New("corrupt cache entry")
)

// Entry is a cached catalog and its capture time in unix milliseconds.
// It is also the persisted JSON document.
type Entry struct {
	Movies    []movie.Movie `json:"data"`
	Timestamp int64         `json:"timestamp"`
}

// Fresh reports whether the entry is still inside the window at now.
func (e *Entry) Fresh(now time.Time, ttl time.Duration) bool {
	return now.UnixMilli()-e.Timestamp < ttl.Milliseconds()
}

// Clock returns the current time.
type Clock func() time.Time

// Cache is the two-tier catalog cache. A nil Storage disables the persisted tier.
type Cache struct {
	mu      sync.Mutex
	mem     *Entry
	storage Storage
	key     string
	ttl     time.Duration
	now     Clock
	logger  *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithStorage sets the persisted tier.
func WithStorage(s Storage) Option {
	return func(c *Cache) {
		c.storage = s
	}
}

// WithClock sets the time source (for testing).
func WithClock(now Clock) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithTTL sets the expiry window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithKey sets the persisted slot key.
func WithKey(key string) Option {
	return func(c *Cache) {
		c.key = key
	}
}

// WithLogger sets the logger. Persistence failures are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// New creates a memory-only cache unless WithStorage is given.
func New(opts ...Option) *Cache {
	c := &Cache{
		key:    DefaultKey,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached catalog, or false on a miss.
func (c *Cache) Get(ctx context.Context) ([]movie.Movie, bool) {
	movies, err := c.Lookup(ctx)
	return movies, err == nil
}

// Lookup returns the cached catalog. The memory slot is consulted first; a
// fresh persisted entry is promoted to memory. Stale and corrupt entries are
// discarded. Every miss, including an unreadable persisted tier, wraps ErrMiss.
func (c *Cache) Lookup(ctx context.Context) ([]movie.Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if c.mem != nil {
		if c.mem.Fresh(now, c.ttl) {
			return slices.Clone(c.mem.Movies), nil
		}
		c.mem = nil
	}

	entry, err := c.load(ctx)
	switch {
	case errors.Is(err, ErrMiss):
		return nil, err
	case err != nil:
		c.logger.Debug("persisted cache unreadable", "key", c.key, "error", err)
		if errors.Is(err, ErrCorrupt) {
			c.discard(ctx)
		}
		return nil, errors.Join(ErrMiss, err)
	}
	if !entry.Fresh(now, c.ttl) {
		c.discard(ctx)
		return nil, fmt.Errorf("%w: entry expired", ErrMiss)
	}

	c.mem = entry
	return slices.Clone(entry.Movies), nil
}

// Set stores movies in both tiers, stamped with the current time.
func (c *Cache) Set(ctx context.Context, movies []movie.Movie) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &Entry{Movies: slices.Clone(movies), Timestamp: c.now().UnixMilli()}
	if entry.Movies == nil {
		entry.Movies = []movie.Movie{}
	}
	c.mem = entry

	if c.storage == nil {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		c.logger.Debug("encode cache entry", "error", err)
		return
	}
	if err := c.storage.Set(ctx, c.key, data); err != nil {
		c.logger.Debug("persist cache entry", "key", c.key, "error", err)
	}
}

// Clear empties both tiers.
func (c *Cache) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mem = nil
	c.discard(ctx)
}

// load reads the persisted entry. Returns ErrMiss when there is none.
func (c *Cache) load(ctx context.Context) (*Entry, error) {
	if c.storage == nil {
		return nil, ErrMiss
	}
	data, ok, err := c.storage.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMiss
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, errors.Join(ErrCorrupt, err)
	}
	if entry.Movies == nil {
		return nil, ErrCorrupt
	}
	return &entry, nil
}

// discard removes the persisted entry, ignoring failures.
func (c *Cache) discard(ctx context.Context) {
	if c.storage == nil {
		return
	}
	if err := c.storage.Delete(ctx, c.key); err != nil {
		c.logger.Debug("delete cache entry", "key", c.key, "error", err)
	}
}
