// Package view derives the filtered, sorted projection of the catalog.
//
// Derive is a pure function of (catalog, filters, query): callers invoke it
// whenever any input changes instead of maintaining subscriptions.
package view

import (
	"slices"
	"strings"

	"github.com/vmunix/marquee/internal/movie"
)

// FilterState holds the user-selected predicates. Nil year bounds are open.
type FilterState struct {
	Genre    string     `json:"genre"`
	YearFrom *int       `json:"year_from,omitempty"`
	YearTo   *int       `json:"year_to,omitempty"`
	Sort     SortOption `json:"sort"`
}

// DefaultFilters returns the initial filter state: any genre, any year, highest rating first.
func DefaultFilters() FilterState {
	return FilterState{Sort: DefaultSort}
}

// Year returns a bound for FilterState. Zero means "no bound" and yields nil.
func Year(y int) *int {
	if y == 0 {
		return nil
	}
	return &y
}

// Active reports whether any predicate differs from the defaults.
func (f FilterState) Active(query string) bool {
	return strings.TrimSpace(query) != "" ||
		f.Genre != "" ||
		f.YearFrom != nil ||
		f.YearTo != nil ||
		f.Sort != DefaultSort
}

// Derive applies, in order: title search, genre membership, inclusive year
// bounds, then a stable sort. All predicates combine conjunctively.
// The input slice is never modified; the result is a fresh slice.
func Derive(movies []movie.Movie, f FilterState, query string) []movie.Movie {
	q := strings.ToLower(strings.TrimSpace(query))

	result := make([]movie.Movie, 0, len(movies))
	for i := range movies {
		m := &movies[i]
		if q != "" && !m.TitleContains(q) {
			continue
		}
		if f.Genre != "" && !m.HasGenre(f.Genre) {
			continue
		}
		if f.YearFrom != nil && m.Year < *f.YearFrom {
			continue
		}
		if f.YearTo != nil && m.Year > *f.YearTo {
			continue
		}
		result = append(result, *m)
	}

	sortMovies(result, f.Sort)
	return result
}

// Genres returns the distinct genre tags across the catalog, sorted.
func Genres(movies []movie.Movie) []string {
	seen := make(map[string]struct{})
	var genres []string
	for i := range movies {
		for _, g := range movies[i].Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			genres = append(genres, g)
		}
	}
	slices.Sort(genres)
	return genres
}

// YearSpan is the inclusive range of release years in a catalog.
type YearSpan struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// YearRange returns the earliest and latest release year.
// An empty catalog yields the zero span.
func YearRange(movies []movie.Movie) YearSpan {
	if len(movies) == 0 {
		return YearSpan{}
	}
	span := YearSpan{Min: movies[0].Year, Max: movies[0].Year}
	for i := range movies[1:] {
		y := movies[i+1].Year
		span.Min = min(span.Min, y)
		span.Max = max(span.Max, y)
	}
	return span
}
