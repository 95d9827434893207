// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for domain layer.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrDuplicate  = errors.New("duplicate entry")
	ErrValidation = errors.New("validation failed")
	ErrIncomplete = errors.New("incomplete data")
	ErrBadRequest = errors.New("bad request")
)

// InternalMessage is returned to clients for errors that are not modelled.
const InternalMessage = "Error interno del servidor."

// PublicError is implemented by errors that carry a client-safe message.
type PublicError interface {
	PublicMessage() string
}

// StatusFor maps a domain error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrIncomplete),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage extracts the message that may be shown to the client.
func PublicMessage(err error) string {
	var pub PublicError
	if errors.As(err, &pub) {
		return pub.PublicMessage()
	}
	return InternalMessage
}

// RespondError maps domain errors to HTTP responses.
func RespondError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		Error(w, status, InternalMessage)
		return
	}
	Error(w, status, PublicMessage(err))
}
