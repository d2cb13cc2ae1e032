package catalog

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vmunix/marquee/internal/movie"
)

// minSuggestScore is the lowest Jaro-Winkler similarity offered as a suggestion.
const minSuggestScore = 0.70

// Suggestion is a title close to a query that matched nothing.
type Suggestion struct {
	Movie movie.Movie
	Score float64 // 0.0-1.0
}

// Suggest ranks catalog titles by similarity to query and returns at most n
// of them scoring at least 0.70, best first. Ties keep catalog order.
func (c *Client) Suggest(ctx context.Context, query string, n int) ([]Suggestion, error) {
	movies, err := c.Movies(ctx)
	if err != nil {
		return nil, err
	}
	return rankTitles(movies, query, n), nil
}

func rankTitles(movies []movie.Movie, query string, n int) []Suggestion {
	q := foldTitle(query)
	if q == "" || n <= 0 {
		return nil
	}

	var out []Suggestion
	for i := range movies {
		title := foldTitle(movies[i].Title)
		score := float64(edlib.JaroWinklerSimilarity(q, title))

		// Compare against each word too, so "матрица" finds "Матрица: Перезагрузка".
		for _, word := range strings.Fields(title) {
			score = max(score, float64(edlib.JaroWinklerSimilarity(q, word)))
		}
		if score >= minSuggestScore {
			out = append(out, Suggestion{Movie: movies[i], Score: score})
		}
	}

	slices.SortStableFunc(out, func(a, b Suggestion) int { return cmp.Compare(b.Score, a.Score) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// foldTitle lowercases, strips accents (ё → е, é → e), drops punctuation
// and collapses whitespace.
func foldTitle(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
