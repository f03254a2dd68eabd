// Package server provides the HTTP REST API for the talent search workspace.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/talent-search/internal/extraction"
	"github.com/jonathan/talent-search/internal/fetch"
	"github.com/jonathan/talent-search/internal/ingestion"
	"github.com/jonathan/talent-search/internal/workspace"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		extractionErr *extraction.ExtractionError
		fetchErr      *fetch.Error
		formatErr     *ingestion.UnsupportedFormatError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, workspace.ErrEmptyInput),
		errors.Is(err, workspace.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, workspace.ErrBusy), errors.Is(err, workspace.ErrNoDraft):
		return http.StatusConflict
	case errors.Is(err, workspace.ErrNotConfirmed):
		return http.StatusPreconditionFailed
	case errors.As(err, &extractionErr), errors.Is(err, ingestion.ErrEmptyContent):
		return http.StatusUnprocessableEntity
	case errors.As(err, &formatErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
