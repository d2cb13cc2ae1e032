// Package movie defines the catalog record shared by every layer.
package movie

import (
	"slices"
	"strings"
)

// Movie is a single catalog record. Values are treated as immutable once
// loaded; the fetched catalog is the only source of truth.
type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	Rating      float64  `json:"rating"`
	Genres      []string `json:"genres"`
	Description string   `json:"description"`
	Poster      string   `json:"poster"`   // path or URL, e.g. "/posters/1.jpg"
	Director    string   `json:"director"`
	Duration    int      `json:"duration"` // minutes
}

// Catalog is the body of the static catalog resource.
type Catalog struct {
	Movies []Movie `json:"movies"`
}

// HasGenre reports whether genre is one of the movie's tags (exact match).
func (m *Movie) HasGenre(genre string) bool {
	return slices.Contains(m.Genres, genre)
}

// TitleContains reports whether the lowercased title contains the lowercased query.
// An empty query matches every title.
func (m *Movie) TitleContains(query string) bool {
	return strings.Contains(strings.ToLower(m.Title), strings.ToLower(query))
}

// FindByID returns the first movie with the given id.
func FindByID(movies []Movie, id int64) (Movie, bool) {
	for i := range movies {
		if movies[i].ID == id {
			return movies[i], true
		}
	}
	return Movie{}, false
}
