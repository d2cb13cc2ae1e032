package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/cache/mocks"
	"github.com/vmunix/marquee/internal/movie"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func sampleMovies() []movie.Movie {
	return []movie.Movie{
		{ID: 1, Title: "Матрица", Year: 1999, Rating: 8.5, Genres: []string{"фантастика"}},
		{ID: 2, Title: "Брат", Year: 1997, Rating: 8.3, Genres: []string{"драма"}},
	}
}

func TestCache_MissThenHit(t *testing.T) {
	ctx := context.Background()
	c := cache.New(cache.WithClock(newFakeClock().Now))

	_, ok := c.Get(ctx)
	assert.False(t, ok, "empty cache should miss")

	c.Set(ctx, sampleMovies())

	got, ok := c.Get(ctx)
	require.True(t, ok, "should hit after set")
	assert.Equal(t, sampleMovies(), got)
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := cache.New(cache.WithClock(clock.Now))

	c.Set(ctx, sampleMovies())

	clock.Advance(cache.DefaultTTL - time.Second)
	_, ok := c.Get(ctx)
	require.True(t, ok, "inside window")

	clock.Advance(time.Second)
	_, ok = c.Get(ctx)
	assert.False(t, ok, "window is exclusive at the boundary")
}

func TestCache_CustomTTL(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := cache.New(cache.WithClock(clock.Now), cache.WithTTL(time.Minute))

	c.Set(ctx, sampleMovies())
	clock.Advance(2 * time.Minute)

	_, ok := c.Get(ctx)
	assert.False(t, ok)
}

func TestCache_PromotesPersistedEntry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	storage := cache.NewMemoryStorage()

	first := cache.New(cache.WithStorage(storage), cache.WithClock(clock.Now))
	first.Set(ctx, sampleMovies())
	assert.Equal(t, []string{cache.DefaultKey}, storage.Keys())

	// A fresh process sees the persisted slot.
	clock.Advance(time.Minute)
	second := cache.New(cache.WithStorage(storage), cache.WithClock(clock.Now))
	got, ok := second.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, sampleMovies(), got)

	// Promoted to memory: survives losing the persisted slot.
	require.NoError(t, storage.Delete(ctx, cache.DefaultKey))
	_, ok = second.Get(ctx)
	assert.True(t, ok, "memory tier should hold promoted entry")
}

func TestCache_PersistedEntryKeepsOriginalTimestamp(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	storage := cache.NewMemoryStorage()

	cache.New(cache.WithStorage(storage), cache.WithClock(clock.Now)).Set(ctx, sampleMovies())

	clock.Advance(4 * time.Minute)
	c := cache.New(cache.WithStorage(storage), cache.WithClock(clock.Now))
	_, ok := c.Get(ctx)
	require.True(t, ok)

	clock.Advance(time.Minute)
	_, ok = c.Get(ctx)
	assert.False(t, ok, "promotion must not extend the window")
}

func TestCache_StalePersistedEntryDiscarded(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	storage := cache.NewMemoryStorage()

	cache.New(cache.WithStorage(storage), cache.WithClock(clock.Now)).Set(ctx, sampleMovies())

	clock.Advance(10 * time.Minute)
	c := cache.New(cache.WithStorage(storage), cache.WithClock(clock.Now))
	_, ok := c.Get(ctx)
	assert.False(t, ok)
	assert.Empty(t, storage.Keys(), "stale entry should be removed")
}

func TestCache_CorruptPayloadIsMiss(t *testing.T) {
	ctx := context.Background()
	storage := cache.NewMemoryStorage()
	require.NoError(t, storage.Set(ctx, cache.DefaultKey, []byte("{not json")))

	c := cache.New(cache.WithStorage(storage), cache.WithClock(newFakeClock().Now))
	_, ok := c.Get(ctx)
	assert.False(t, ok)
	assert.Empty(t, storage.Keys(), "corrupt entry should be removed")
}

func TestCache_MissingDataFieldIsMiss(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	storage := cache.NewMemoryStorage()
	payload, err := json.Marshal(map[string]any{"timestamp": clock.Now().UnixMilli()})
	require.NoError(t, err)
	require.NoError(t, storage.Set(ctx, cache.DefaultKey, payload))

	c := cache.New(cache.WithStorage(storage), cache.WithClock(clock.Now))
	_, ok := c.Get(ctx)
	assert.False(t, ok)
}

func TestCache_EmptyCatalogIsCached(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	storage := cache.NewMemoryStorage()

	cache.New(cache.WithStorage(storage), cache.WithClock(clock.Now)).Set(ctx, nil)

	c := cache.New(cache.WithStorage(storage), cache.WithClock(clock.Now))
	got, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestCache_PersistedFormat(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	storage := cache.NewMemoryStorage()

	cache.New(cache.WithStorage(storage), cache.WithClock(clock.Now)).Set(ctx, sampleMovies())

	raw, ok, err := storage.Get(ctx, cache.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)

	var doc struct {
		Data      []movie.Movie `json:"data"`
		Timestamp int64         `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, clock.Now().UnixMilli(), doc.Timestamp)
	assert.Len(t, doc.Data, 2)
}

func TestCache_Clear(t *testing.T) {
	ctx := context.Background()
	storage := cache.NewMemoryStorage()
	c := cache.New(cache.WithStorage(storage), cache.WithClock(newFakeClock().Now))

	c.Set(ctx, sampleMovies())
	c.Clear(ctx)

	_, ok := c.Get(ctx)
	assert.False(t, ok)
	assert.Empty(t, storage.Keys())
}

func TestCache_WithKey(t *testing.T) {
	ctx := context.Background()
	storage := cache.NewMemoryStorage()
	c := cache.New(cache.WithStorage(storage), cache.WithKey("other"), cache.WithClock(newFakeClock().Now))

	c.Set(ctx, sampleMovies())
	assert.Equal(t, []string{"other"}, storage.Keys())
}

func TestCache_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := cache.New(cache.WithClock(newFakeClock().Now))
	c.Set(ctx, sampleMovies())

	got, ok := c.Get(ctx)
	require.True(t, ok)
	got[0].Title = "changed"

	again, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "Матрица", again[0].Title)
}

func TestCache_StorageErrorsAreSwallowed(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockStorage(ctrl)
	quota := errors.New("quota exceeded")

	storage.EXPECT().Get(gomock.Any(), cache.DefaultKey).Return(nil, false, quota)
	storage.EXPECT().Set(gomock.Any(), cache.DefaultKey, gomock.Any()).Return(quota)
	storage.EXPECT().Delete(gomock.Any(), cache.DefaultKey).Return(quota)

	c := cache.New(cache.WithStorage(storage), cache.WithClock(newFakeClock().Now))

	_, ok := c.Get(ctx)
	assert.False(t, ok, "unreadable storage is a miss")

	c.Set(ctx, sampleMovies())
	got, ok := c.Get(ctx)
	require.True(t, ok, "memory tier still works when persistence fails")
	assert.Len(t, got, 2)

	c.Clear(ctx)
}

func TestCache_MemoryHitSkipsStorage(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockStorage(ctrl)

	storage.EXPECT().Set(gomock.Any(), cache.DefaultKey, gomock.Any()).Return(nil).Times(1)

	c := cache.New(cache.WithStorage(storage), cache.WithClock(newFakeClock().Now))
	c.Set(ctx, sampleMovies())

	for range 3 {
		_, ok := c.Get(ctx)
		require.True(t, ok)
	}
}

func TestCache_LookupMisses(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		storage func(t *testing.T, clock *fakeClock) cache.Storage
		wantErr error
	}{
		{
			name:    "memory only",
			storage: func(*testing.T, *fakeClock) cache.Storage { return nil },
			wantErr: cache.ErrMiss,
		},
		{
			name:    "absent key",
			storage: func(*testing.T, *fakeClock) cache.Storage { return cache.NewMemoryStorage() },
			wantErr: cache.ErrMiss,
		},
		{
			name: "corrupt payload",
			storage: func(t *testing.T, _ *fakeClock) cache.Storage {
				s := cache.NewMemoryStorage()
				require.NoError(t, s.Set(ctx, cache.DefaultKey, []byte("[]")))
				return s
			},
			wantErr: cache.ErrCorrupt,
		},
		{
			name: "expired entry",
			storage: func(t *testing.T, clock *fakeClock) cache.Storage {
				s := cache.NewMemoryStorage()
				cache.New(cache.WithStorage(s), cache.WithClock(clock.Now)).Set(ctx, sampleMovies())
				clock.Advance(cache.DefaultTTL)
				return s
			},
			wantErr: cache.ErrMiss,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			var opts []cache.Option
			if s := tt.storage(t, clock); s != nil {
				opts = append(opts, cache.WithStorage(s))
			}
			c := cache.New(append(opts, cache.WithClock(clock.Now))...)

			movies, err := c.Lookup(ctx)
			assert.Nil(t, movies)
			assert.ErrorIs(t, err, cache.ErrMiss)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	c := cache.New(cache.WithClock(newFakeClock().Now))
	c.Set(ctx, sampleMovies())
	movies, err := c.Lookup(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleMovies(), movies)
}
