package v1

import (
	"errors"
	"net/http"

	"github.com/vmunix/marquee/internal/movie"
	"github.com/vmunix/marquee/internal/view"
)

type listMoviesResponse struct {
	Items   []movie.Movie    `json:"items"`
	Results int              `json:"results"`
	Total   int              `json:"total"`
	Filters view.FilterState `json:"filters"`
	Query   string           `json:"query"`
	Active  bool             `json:"active"`
}

type genresResponse struct {
	Genres []string      `json:"genres"`
	Years  view.YearSpan `json:"years"`
}

// parseFilters reads q, genre, from, to and sort from the query string.
func parseFilters(r *http.Request) (view.FilterState, string, error) {
	q := r.URL.Query()

	sort, err := view.ParseSort(q.Get("sort"))
	if err != nil {
		return view.FilterState{}, "", err
	}
	from, err := queryYear(r, "from")
	if err != nil {
		return view.FilterState{}, "", err
	}
	to, err := queryYear(r, "to")
	if err != nil {
		return view.FilterState{}, "", err
	}

	f := view.FilterState{
		Genre:    q.Get("genre"),
		YearFrom: from,
		YearTo:   to,
		Sort:     sort,
	}
	return f, q.Get("q"), nil
}

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	f, query, err := parseFilters(r)
	if err != nil {
		code := "INVALID_FILTER"
		if errors.Is(err, view.ErrUnknownSort) {
			code = "INVALID_SORT"
		}
		writeError(w, http.StatusBadRequest, code, err.Error())
		return
	}

	movies, ok := s.movies(w, r)
	if !ok {
		return
	}

	items := view.Derive(movies, f, query)
	writeJSON(w, http.StatusOK, listMoviesResponse{
		Items:   items,
		Results: len(items),
		Total:   len(movies),
		Filters: f,
		Query:   query,
		Active:  f.Active(query),
	})
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid movie ID")
		return
	}

	movies, ok := s.movies(w, r)
	if !ok {
		return
	}

	m, found := movie.FindByID(movies, id)
	if !found {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) listGenres(w http.ResponseWriter, r *http.Request) {
	movies, ok := s.movies(w, r)
	if !ok {
		return
	}
	genres := view.Genres(movies)
	if genres == nil {
		genres = []string{}
	}
	writeJSON(w, http.StatusOK, genresResponse{Genres: genres, Years: view.YearRange(movies)})
}

func (s *Server) listSortOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, view.SortOptions())
}
