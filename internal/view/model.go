package view

import "github.com/vmunix/marquee/internal/movie"

// Model is the list container state: the loaded catalog plus everything the
// user has selected. Derived values are computed on demand from these inputs.
type Model struct {
	Movies      []movie.Movie
	Loading     bool
	Err         string // user-facing load error, "" when none
	Query       string
	Filters     FilterState
	Selected    *movie.Movie
	ShowFilters bool
}

// NewModel returns the state of a container that has not loaded yet.
func NewModel() Model {
	return Model{Loading: true, Filters: DefaultFilters()}
}

// Loaded records a successful load.
func (m *Model) Loaded(movies []movie.Movie) {
	m.Movies = movies
	m.Loading = false
	m.Err = ""
}

// Failed records a load failure with its user-facing message.
func (m *Model) Failed(message string) {
	m.Err = message
	m.Loading = false
}

// Retrying resets the error and marks the container as loading again.
func (m *Model) Retrying() {
	m.Err = ""
	m.Loading = true
}

// Open selects a movie for the detail modal.
func (m *Model) Open(mv movie.Movie) {
	m.Selected = &mv
}

// Close dismisses the detail modal.
func (m *Model) Close() {
	m.Selected = nil
}

// ToggleFilters flips the filter panel visibility.
func (m *Model) ToggleFilters() {
	m.ShowFilters = !m.ShowFilters
}

// ResetFilters restores the default filter state. The search query is kept.
func (m *Model) ResetFilters() {
	m.Filters = DefaultFilters()
}

// View derives the visible movies.
func (m Model) View() []movie.Movie {
	return Derive(m.Movies, m.Filters, m.Query)
}

// ResultsCount is the number of visible movies.
func (m Model) ResultsCount() int {
	return len(m.View())
}

// TotalCount is the size of the loaded catalog.
func (m Model) TotalCount() int {
	return len(m.Movies)
}

// HasNoResults reports a settled, error-free state with nothing to show.
func (m Model) HasNoResults() bool {
	return !m.Loading && m.Err == "" && m.ResultsCount() == 0
}

// HasActiveFilters reports whether search or any filter is in effect.
func (m Model) HasActiveFilters() bool {
	return m.Filters.Active(m.Query)
}
