package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/vettedge/internal/provider"
	"github.com/jonathan/vettedge/internal/schemas"
	"github.com/jonathan/vettedge/internal/upload"
)

// ErrInvalidCredentials indicates a rejected login.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates a malformed request.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the HTTP status code for an error, looking through wrapping.
func HTTPStatus(err error) int {
	var (
		roleErr      *provider.ErrRoleNotFound
		candidateErr *provider.ErrCandidateNotFound
		credsErr     *ErrInvalidCredentials
		validErr     *ErrValidation
		uploadErr    *upload.ValidationError
		schemaErr    *schemas.ValidationError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &roleErr), errors.As(err, &candidateErr):
		return http.StatusNotFound
	case errors.As(err, &credsErr):
		return http.StatusUnauthorized
	case errors.As(err, &validErr), errors.As(err, &uploadErr), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
