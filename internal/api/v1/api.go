// Package v1 implements the catalog REST API and hosts the static catalog file.
package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vmunix/marquee/internal/catalog"
	"github.com/vmunix/marquee/internal/movie"
	"github.com/vmunix/marquee/internal/view"
)

// Catalog is the read surface the API serves from.
type Catalog interface {
	Movies(ctx context.Context) ([]movie.Movie, error)
}

// Config holds API server configuration.
type Config struct {
	// CatalogFile is the static JSON document served at catalog.Path.
	// Empty disables the static route.
	CatalogFile string
}

// Server is the v1 API server.
type Server struct {
	catalog Catalog
	cfg     Config
	logger  *slog.Logger
}

// New creates a new v1 API server.
func New(c Catalog, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{catalog: c, cfg: cfg, logger: logger}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/movies", s.listMovies)
	mux.HandleFunc("GET /api/v1/movies/{id}", s.getMovie)
	mux.HandleFunc("GET /api/v1/genres", s.listGenres)
	mux.HandleFunc("GET /api/v1/sort-options", s.listSortOptions)

	if s.cfg.CatalogFile != "" {
		mux.HandleFunc("GET "+catalog.Path, s.catalogFile)
	}
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// queryYear extracts an optional year bound from the query string.
func queryYear(r *http.Request, name string) (*int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil, nil
	}
	y, err := strconv.Atoi(val)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid year %q", name, val)
	}
	return view.Year(y), nil
}

// movies loads the catalog, writing the error response on failure.
func (s *Server) movies(w http.ResponseWriter, r *http.Request) ([]movie.Movie, bool) {
	movies, err := s.catalog.Movies(r.Context())
	if err != nil {
		s.logger.Warn("catalog unavailable", "error", err)
		message := err.Error()
		var loadErr *catalog.LoadError
		if !errors.As(err, &loadErr) {
			message = "catalog unavailable"
		}
		writeError(w, http.StatusBadGateway, "CATALOG_UNAVAILABLE", message)
		return nil, false
	}
	return movies, true
}

func (s *Server) catalogFile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, s.cfg.CatalogFile)
}
