package note

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when a mutation runs without a session.
// It is fatal to that call, never retried.
var ErrUnauthenticated = errors.New("note: unauthenticated")

// ErrUnavailable wraps backend or network failures.
var ErrUnavailable = errors.New("note: backend unavailable")

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
