package core

import (
	"errors"
	"net/http"
)

// Outcome pairs an HTTP status with the result written to the caller.
// Build it with Settle so the two never disagree.
type Outcome[T Result] struct {
	Status int
	Result T
}

// Settle resolves a pipeline return into an Outcome. Success requires a nil
// error and a complete value; anything else yields the empty shape.
func Settle[T Result](value T, err error, empty func() T) Outcome[T] {
	switch {
	case err == nil && value.Complete():
		return Outcome[T]{Status: http.StatusOK, Result: value}
	case errors.Is(err, ErrInvalidRequest):
		return Outcome[T]{Status: http.StatusBadRequest, Result: empty()}
	default:
		return Outcome[T]{Status: http.StatusInternalServerError, Result: empty()}
	}
}

// OK reports whether the outcome is a success.
func (o Outcome[T]) OK() bool {
	return o.Status == http.StatusOK
}
