package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/freelance-desk/internal/apiclient"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnavailable indicates a feature that is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		notFoundErr   *ErrNotFound
		unavailable   *ErrUnavailable
		apiNotFound   *apiclient.NotFoundError
		apiInput      *apiclient.InputError
		apiOperation  *apiclient.OperationError
		apiHTTP       *apiclient.HTTPError
		apiConn       *apiclient.ConnectionError
		apiResponse   *apiclient.ResponseError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &apiInput):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr), errors.As(err, &apiNotFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiOperation), errors.As(err, &apiHTTP),
		errors.As(err, &apiConn), errors.As(err, &apiResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
