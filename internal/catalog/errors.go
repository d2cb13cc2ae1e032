package catalog

import "errors"

// loadFailedMessage is the single user-facing message for every load failure.
const loadFailedMessage = "Не удалось загрузить фильмы. Попробуйте позже."

var (
	// ErrUnavailable matches every catalog load failure.
	ErrUnavailable = errors.New("catalog unavailable")

	// ErrNotFound indicates no movie has the requested id.
	ErrNotFound = errors.New("movie not found")
)

// LoadError is returned when the catalog could not be fetched or decoded.
// Its message is the localized text shown to users; the cause is kept for logs.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return loadFailedMessage }

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes every LoadError match ErrUnavailable.
func (e *LoadError) Is(target error) bool { return target == ErrUnavailable }
