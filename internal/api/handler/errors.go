package handler

import (
	"errors"
	"net/http"

	"github.com/mcoot/playerregistry/internal/api/apierr"
)

// WriteError writes the error envelope for err. Unmapped errors become 500s.
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// bodyError explains why a request body could not be decoded
func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return NewInvalidRequestError("request body too large")
	}
	return NewInvalidRequestError("invalid request body")
}
