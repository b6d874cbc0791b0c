package table

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a commit rejected because the row is invalid.
	ErrValidation = errors.New("table: validation failed")

	// ErrNotImplemented is raised by editor operations the toolkit may call
	// but that have no meaning here.
	ErrNotImplemented = errors.New("table: not implemented")
)

// CommitError wraps a failed commit with the cell it concerns. Col is -1 when
// the whole row is at fault.
type CommitError struct {
	Row     int
	Col     int
	Wrapped error
}

func (e *CommitError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("row %d: %v", e.Row+1, e.Wrapped)
	}
	return fmt.Sprintf("row %d, column %d: %v", e.Row+1, e.Col+1, e.Wrapped)
}

func (e *CommitError) Unwrap() error {
	return e.Wrapped
}
