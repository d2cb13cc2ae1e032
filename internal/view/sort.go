package view

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vmunix/marquee/internal/movie"
)

// ErrUnknownSort is returned by ParseSort for keys outside the six orderings.
var ErrUnknownSort = errors.New("unknown sort option")

// SortOption is one of the six literal catalog orderings.
type SortOption string

const (
	SortRatingDesc SortOption = "rating_desc"
	SortRatingAsc  SortOption = "rating_asc"
	SortYearDesc   SortOption = "year_desc"
	SortYearAsc    SortOption = "year_asc"
	SortTitleAsc   SortOption = "title_asc"
	SortTitleDesc  SortOption = "title_desc"
)

// DefaultSort is the ordering used when no sort has been chosen.
const DefaultSort = SortRatingDesc

// SortChoice pairs a sort option with its display label.
type SortChoice struct {
	Value SortOption `json:"value"`
	Label string     `json:"label"`
}

var sortChoices = []SortChoice{
	{Value: SortRatingDesc, Label: "С высоким рейтингом"},
	{Value: SortRatingAsc, Label: "С низким рейтингом"},
	{Value: SortYearDesc, Label: "Сначала новые"},
	{Value: SortYearAsc, Label: "Сначала старые"},
	{Value: SortTitleAsc, Label: "По названию А-Я"},
	{Value: SortTitleDesc, Label: "По названию Я-А"},
}

// SortOptions returns the orderings in display order.
func SortOptions() []SortChoice {
	return slices.Clone(sortChoices)
}

// Label returns the display label, or the raw key for unknown options.
func (s SortOption) Label() string {
	for _, c := range sortChoices {
		if c.Value == s {
			return c.Label
		}
	}
	return string(s)
}

// Valid reports whether s is one of the six orderings.
func (s SortOption) Valid() bool {
	for _, c := range sortChoices {
		if c.Value == s {
			return true
		}
	}
	return false
}

// ParseSort converts a sort key. The empty string yields DefaultSort.
func ParseSort(s string) (SortOption, error) {
	if s == "" {
		return DefaultSort, nil
	}
	opt := SortOption(s)
	if !opt.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
	}
	return opt, nil
}

// titleLocale is the collation used for title orderings.
var titleLocale = language.Russian

// sortMovies sorts movies in place, stably. Unknown options leave the order untouched.
func sortMovies(movies []movie.Movie, opt SortOption) {
	var compare func(a, b movie.Movie) int

	switch opt {
	case SortRatingDesc:
		compare = func(a, b movie.Movie) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortRatingAsc:
		compare = func(a, b movie.Movie) int { return cmp.Compare(a.Rating, b.Rating) }
	case SortYearDesc:
		compare = func(a, b movie.Movie) int { return cmp.Compare(b.Year, a.Year) }
	case SortYearAsc:
		compare = func(a, b movie.Movie) int { return cmp.Compare(a.Year, b.Year) }
	case SortTitleAsc, SortTitleDesc:
		// Collators carry internal buffers and are not safe for concurrent use.
		c := collate.New(titleLocale)
		if opt == SortTitleAsc {
			compare = func(a, b movie.Movie) int { return c.CompareString(a.Title, b.Title) }
		} else {
			compare = func(a, b movie.Movie) int { return c.CompareString(b.Title, a.Title) }
		}
	default:
		return
	}

	slices.SortStableFunc(movies, compare)
}
