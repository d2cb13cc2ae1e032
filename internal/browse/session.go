// Package browse runs the interactive catalog browser: it owns the list
// container state, interprets user intents and re-renders on every change.
package browse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/vmunix/marquee/internal/catalog"
	"github.com/vmunix/marquee/internal/movie"
	"github.com/vmunix/marquee/internal/render"
	"github.com/vmunix/marquee/internal/view"
)

// DefaultDebounce is the quiet period before a search keystroke takes effect.
const DefaultDebounce = 300 * time.Millisecond

const maxSuggestions = 3

// Loader is the catalog surface the browser needs.
type Loader interface {
	Movies(ctx context.Context) ([]movie.Movie, error)
	Reload(ctx context.Context) ([]movie.Movie, error)
	Suggest(ctx context.Context, query string, n int) ([]catalog.Suggestion, error)
}

// Session is one browsing session. All state changes go through its mutex;
// the debounce timer is the only other goroutine that touches it.
type Session struct {
	loader Loader
	out    io.Writer
	logger *slog.Logger
	delay  time.Duration

	mu        sync.Mutex
	model     view.Model
	debounced func(f func())
	emitted   string
	closed    bool
}

// Option configures a Session.
type Option func(*Session)

// WithDebounce sets the search debounce window.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) {
		s.delay = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New creates a session rendering to out.
func New(loader Loader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		loader: loader,
		out:    out,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		delay:  DefaultDebounce,
		model:  view.NewModel(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.debounced = debounce.New(s.delay)
	return s
}

// Model returns a snapshot of the container state.
func (s *Session) Model() view.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// Load fetches the catalog and renders the result.
func (s *Session) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	render.Loading(s.out)
	movies, err := s.loader.Movies(ctx)
	s.settle(movies, err)
	s.renderList(ctx)
}

// Run loads the catalog and processes one intent per input line until
// quit, end of input or context cancellation.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	defer s.Close()

	s.Load(ctx)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.Handle(ctx, scanner.Text()) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// Close tears down pending debounced work. Later searches are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Search records a keystroke. The query is applied once input has been
// quiet for the debounce window, and only if it differs from the last one applied.
func (s *Session) Search(ctx context.Context, raw string) {
	s.debounced(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.closed || raw == s.emitted {
			return
		}
		s.emitted = raw
		s.model.Query = raw
		s.logger.Debug("search applied", "query", raw)
		if s.model.Selected == nil {
			s.renderList(ctx)
		}
	})
}

// Handle interprets one line of input. It returns false when the session should end.
func (s *Session) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)

	if query, ok := strings.CutPrefix(line, "/"); ok {
		s.Search(ctx, query)
		return true
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch strings.ToLower(cmd) {
	case "":
		s.refresh(ctx)
	case "quit", "exit", "q":
		return false
	case "help", "?":
		printHelp(s.out)
	case "open", "show":
		s.open(arg)
	case "close", "esc":
		if s.model.Selected != nil {
			s.model.Close()
			s.renderList(ctx)
		}
	case "filters":
		s.model.ToggleFilters()
		s.refresh(ctx)
	case "genre":
		s.model.Filters.Genre = arg
		s.refresh(ctx)
	case "from", "to":
		s.setYear(ctx, cmd, arg)
	case "sort":
		opt, err := view.ParseSort(arg)
		if err != nil {
			fmt.Fprintf(s.out, "Неизвестная сортировка %q\n", arg)
			return true
		}
		s.model.Filters.Sort = opt
		s.refresh(ctx)
	case "reset":
		s.model.ResetFilters()
		s.refresh(ctx)
	case "retry":
		s.retry(ctx)
	default:
		fmt.Fprintf(s.out, "Неизвестная команда %q. Введите 'help'.\n", cmd)
	}
	return true
}

// refresh re-renders the list unless a modal holds the screen.
func (s *Session) refresh(ctx context.Context) {
	if s.model.Selected != nil {
		return
	}
	s.renderList(ctx)
}

func (s *Session) open(arg string) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(s.out, "Некорректный id %q\n", arg)
		return
	}
	m, ok := movie.FindByID(s.model.Movies, id)
	if !ok {
		fmt.Fprintf(s.out, "Фильм %d не найден\n", id)
		return
	}
	s.model.Open(m)
	render.Modal(s.out, s.model.Selected)
}

func (s *Session) setYear(ctx context.Context, which, arg string) {
	var bound *int
	if arg != "" {
		y, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(s.out, "Некорректный год %q\n", arg)
			return
		}
		bound = view.Year(y)
	}
	if which == "from" {
		s.model.Filters.YearFrom = bound
	} else {
		s.model.Filters.YearTo = bound
	}
	s.refresh(ctx)
}

func (s *Session) retry(ctx context.Context) {
	s.model.Retrying()
	render.Loading(s.out)
	movies, err := s.loader.Reload(ctx)
	s.settle(movies, err)
	s.model.Close()
	s.renderList(ctx)
}

func (s *Session) settle(movies []movie.Movie, err error) {
	if err != nil {
		s.logger.Warn("catalog load failed", "error", err)
		s.model.Failed(err.Error())
		return
	}
	s.model.Loaded(movies)
}

func (s *Session) renderList(ctx context.Context) {
	switch {
	case s.model.Loading:
		render.Loading(s.out)
		return
	case s.model.Err != "":
		render.Error(s.out, s.model.Err)
		return
	}

	if s.model.ShowFilters {
		render.Filters(s.out, s.model.Movies, s.model.Filters)
		fmt.Fprintln(s.out)
	}

	movies := s.model.View()
	render.List(s.out, movies, render.ListSummary{
		Total:  s.model.TotalCount(),
		Active: s.model.HasActiveFilters(),
	})

	if s.model.HasNoResults() && strings.TrimSpace(s.model.Query) != "" {
		s.renderSuggestions(ctx)
	}
}

func (s *Session) renderSuggestions(ctx context.Context) {
	suggestions, err := s.loader.Suggest(ctx, s.model.Query, maxSuggestions)
	if err != nil {
		s.logger.Debug("suggestions unavailable", "error", err)
		return
	}
	titles := make([]string, 0, len(suggestions))
	for _, sg := range suggestions {
		titles = append(titles, sg.Movie.Title)
	}
	render.Suggestions(s.out, titles)
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `Команды:
  /текст          поиск по названию (пустой "/" сбрасывает поиск)
  open <id>       открыть карточку фильма
  close | esc     закрыть карточку
  filters         показать/скрыть панель фильтров
  genre [жанр]    фильтр по жанру (без аргумента - все)
  from [год]      год от (включительно)
  to [год]        год до (включительно)
  sort <ключ>     rating_desc, rating_asc, year_desc, year_asc, title_asc, title_desc
  reset           сбросить фильтры
  retry           очистить кэш и загрузить заново
  quit            выход
`)
}
