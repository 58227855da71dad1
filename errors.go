package lru

import (
	"errors"
	"fmt"
)

// ErrPoisoned is matched by every error returned from a poisoned cache.
var ErrPoisoned = errors.New("lru: cache is poisoned")

// PoisonError records the critical section that failed while holding the
// cache lock.
type PoisonError struct {
	// Op is the operation that was running, e.g. "add".
	Op string
	// Value is what the failing call panicked with.
	Value any
	// Stack is the goroutine stack captured where the panic was recovered,
	// including the frames of the original fault.
	Stack []byte
}

func (e *PoisonError) Error() string {
	return fmt.Sprintf("lru: cache poisoned by panic during %s: %v", e.Op, e.Value)
}

// Is reports ErrPoisoned as a match.
func (e *PoisonError) Is(target error) bool {
	return target == ErrPoisoned
}

// Unwrap returns the panic value when it was itself an error.
func (e *PoisonError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
