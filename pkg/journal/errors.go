package journal

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrDuplicateDateEntry is returned when a create targets a calendar day
	// that already has an entry.
	ErrDuplicateDateEntry = errors.New("an entry already exists for this date")

	// ErrDuplicateTag is returned when a custom tag is created with a name
	// that already exists, compared case-insensitively.
	ErrDuplicateTag = errors.New("tag already exists")

	// ErrInvalidMood is returned when a mood value outside the closed set is
	// supplied.
	ErrInvalidMood = errors.New("invalid mood")
)

// OperationError wraps an unexpected storage failure with the name of the
// operation that hit it. Invariant violations and not-found results are
// never wrapped in it, so callers can tell "no such entry" apart from
// "storage unavailable".
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("journal: %s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// opErr wraps err as an OperationError unless it is already one of the
// specific error kinds callers match on.
func opErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrDuplicateDateEntry) || errors.Is(err, ErrDuplicateTag) || errors.Is(err, ErrInvalidMood) {
		return err
	}
	var oe *OperationError
	if errors.As(err, &oe) {
		return err
	}
	return &OperationError{Op: op, Err: err}
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. The entry_date and tag-name invariants are enforced by unique
// indexes, so a violation here maps to the matching domain error.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

