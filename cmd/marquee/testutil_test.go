package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmunix/marquee/internal/catalog"
	"github.com/vmunix/marquee/internal/movie"
)

func testMovies() []movie.Movie {
	return []movie.Movie{
		{ID: 1, Title: "Матрица", Year: 1999, Rating: 8.5, Genres: []string{"фантастика", "боевик"}, Director: "Вачовски", Duration: 136},
		{ID: 2, Title: "Брат", Year: 1997, Rating: 8.3, Genres: []string{"драма", "криминал"}, Director: "Балабанов", Duration: 100},
		{ID: 3, Title: "Сталкер", Year: 1979, Rating: 8.1, Genres: []string{"фантастика", "драма"}, Director: "Тарковский", Duration: 163},
	}
}

// catalogServer serves the test catalog and counts fetches.
func catalogServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+catalog.Path, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(movie.Catalog{Movies: testMovies()})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &calls
}

// writeConfig writes a config pointing at catalogURL with its cache under dir.
func writeConfig(t *testing.T, dir, catalogURL string, persist bool) string {
	t.Helper()
	content := fmt.Sprintf(`[catalog]
url = %q

[cache]
path = %q
persist = %t

[server]
log_level = "error"
`, catalogURL, filepath.Join(dir, "cache", "marquee.db"), persist)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the root command and returns what it wrote to stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}
