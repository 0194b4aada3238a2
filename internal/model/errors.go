package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidPlayerID = errors.New("invalid player id")
	ErrInvalidPlayer   = errors.New("invalid player")
)

// ValidationError describes the first field that failed validation
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidPlayer, e.Field, e.Reason)
}

// Unwrap lets callers match ValidationError with errors.Is(err, ErrInvalidPlayer)
func (e *ValidationError) Unwrap() error {
	return ErrInvalidPlayer
}
