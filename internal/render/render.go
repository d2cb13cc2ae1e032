// Package render draws catalog state as terminal text. Renderers are
// stateless: they take the values to show and an io.Writer.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vmunix/marquee/internal/movie"
	"github.com/vmunix/marquee/internal/view"
)

const titleWidth = 40

// FormatDuration renders minutes as "Hч Mмин".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dч %dмин", minutes/60, minutes%60)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// Card renders one movie as a single list row.
func Card(w io.Writer, m *movie.Movie) {
	fmt.Fprintf(w, "  %-4d %-*s %-6d %4.1f  %s\n",
		m.ID,
		titleWidth, truncate(m.Title, titleWidth),
		m.Year,
		m.Rating,
		strings.Join(m.Genres, ", "))
}

// ListSummary describes the list being rendered.
type ListSummary struct {
	Total  int  // size of the catalog
	Active bool // search or filters are in effect
}

// List renders the result header and one card per movie, or the empty state.
func List(w io.Writer, movies []movie.Movie, s ListSummary) {
	if s.Active {
		fmt.Fprintf(w, "Найдено: %d из %d\n\n", len(movies), s.Total)
	} else {
		fmt.Fprintf(w, "Все фильмы: %d\n\n", s.Total)
	}

	if len(movies) == 0 {
		fmt.Fprintln(w, "  Ничего не найдено. Измените запрос или сбросьте фильтры.")
		return
	}

	fmt.Fprintf(w, "  %-4s %-*s %-6s %4s  %s\n", "ID", titleWidth, "НАЗВАНИЕ", "ГОД", "РЕЙТ", "ЖАНРЫ")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 80))
	for i := range movies {
		Card(w, &movies[i])
	}
}

// Filters renders the filter panel: available genres, year range and sort options.
func Filters(w io.Writer, movies []movie.Movie, f view.FilterState) {
	fmt.Fprintln(w, "Фильтры:")

	genre := f.Genre
	if genre == "" {
		genre = "все"
	}
	fmt.Fprintf(w, "  Жанр: %s\n", genre)
	if genres := view.Genres(movies); len(genres) > 0 {
		fmt.Fprintf(w, "    доступно: %s\n", strings.Join(genres, ", "))
	}

	span := view.YearRange(movies)
	fmt.Fprintf(w, "  Годы: %s - %s (каталог %d-%d)\n",
		yearBound(f.YearFrom), yearBound(f.YearTo), span.Min, span.Max)

	fmt.Fprintln(w, "  Сортировка:")
	for _, c := range view.SortOptions() {
		marker := " "
		if c.Value == f.Sort {
			marker = "*"
		}
		fmt.Fprintf(w, "   %s %-12s %s\n", marker, c.Value, c.Label)
	}
}

func yearBound(y *int) string {
	if y == nil {
		return "…"
	}
	return strconv.Itoa(*y)
}

// Modal renders the detail view of one movie.
func Modal(w io.Writer, m *movie.Movie) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%s (%d)\n", m.Title, m.Year)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Рейтинг:      %.1f\n", m.Rating)
	fmt.Fprintf(w, "  Режиссёр:     %s\n", m.Director)
	fmt.Fprintf(w, "  Длительность: %s\n", FormatDuration(m.Duration))
	fmt.Fprintf(w, "  Жанры:        %s\n", strings.Join(m.Genres, ", "))
	if m.Poster != "" {
		fmt.Fprintf(w, "  Постер:       %s\n", m.Poster)
	}
	if m.Description != "" {
		fmt.Fprintf(w, "\n  %s\n", m.Description)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "  [esc] закрыть")
}

// Loading renders the placeholder shown while the catalog loads.
func Loading(w io.Writer) {
	fmt.Fprintln(w, "Загрузка фильмов...")
}

// Error renders a load failure and how to recover from it.
func Error(w io.Writer, message string) {
	fmt.Fprintf(w, "Ошибка: %s\n", message)
	fmt.Fprintln(w, "Введите 'retry', чтобы попробовать снова.")
}

// Suggestions renders "did you mean" titles.
func Suggestions(w io.Writer, titles []string) {
	if len(titles) == 0 {
		return
	}
	fmt.Fprintf(w, "  Возможно, вы искали: %s\n", strings.Join(titles, ", "))
}
