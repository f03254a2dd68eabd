package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/talent-search/internal/extraction"
	"github.com/jonathan/talent-search/internal/fetch"
	"github.com/jonathan/talent-search/internal/ingestion"
	"github.com/jonathan/talent-search/internal/workspace"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "query", Message: "is required"}
	assert.Equal(t, "validation error: query - is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty input", workspace.ErrEmptyInput, http.StatusBadRequest},
		{"empty query", workspace.ErrEmptyQuery, http.StatusBadRequest},
		{"busy", workspace.ErrBusy, http.StatusConflict},
		{"no draft", workspace.ErrNoDraft, http.StatusConflict},
		{"not confirmed", workspace.ErrNotConfirmed, http.StatusPreconditionFailed},
		{"extraction", &extraction.ExtractionError{Reason: extraction.ReasonSchemaMismatch}, http.StatusUnprocessableEntity},
		{"wrapped extraction", fmt.Errorf("analyze: %w", &extraction.ExtractionError{}), http.StatusUnprocessableEntity},
		{"empty page", ingestion.ErrEmptyContent, http.StatusUnprocessableEntity},
		{"unsupported format", &ingestion.UnsupportedFormatError{Name: "cv.pages"}, http.StatusUnsupportedMediaType},
		{"fetch", &fetch.Error{URL: "https://x.test", Message: "HTTP status 404", StatusCode: 404}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
