package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/talent-search/internal/extraction"
	"github.com/jonathan/talent-search/internal/ingestion"
	"github.com/jonathan/talent-search/internal/types"
	"github.com/jonathan/talent-search/internal/workspace"
)

// ViewRequest represents the request body for PUT /view
type ViewRequest struct {
	View string `json:"view" validate:"required"`
}

// ViewResponse represents the current view
type ViewResponse struct {
	View  workspace.View `json:"view"`
	Title string         `json:"title"`
}

// DashboardResponse represents the response for /dashboard
type DashboardResponse struct {
	Stats  workspace.Stats          `json:"stats"`
	Recent []types.CandidateProfile `json:"recent"`
}

// AnalyzeRequest represents the request body for /candidates/analyze.
// Either pasted text or the URL of a hosted resume is required.
type AnalyzeRequest struct {
	Text string `json:"text" validate:"required_without=URL"`
	URL  string `json:"url,omitempty" validate:"omitempty,url"`
}

// AnalyzeResponse carries the extracted draft awaiting review
type AnalyzeResponse struct {
	Draft *types.CandidateDraft `json:"draft"`
}

// AnalyzeErrorResponse is returned when extraction fails. Input is the
// preserved resume text so the client can retry.
type AnalyzeErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Input  string `json:"input"`
}

// SearchRequest represents the request body for /search. A job posting URL
// can stand in for, or add to, the free-text query.
type SearchRequest struct {
	Query  string `json:"query" validate:"required_without=JobURL"`
	JobURL string `json:"jobUrl,omitempty" validate:"omitempty,url"`
}

// SearchResponse represents the ranked results of a search
type SearchResponse struct {
	Query   string                  `json:"query"`
	Results []types.RankedCandidate `json:"results"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetView returns the active view
func (s *Server) handleGetView(w http.ResponseWriter, _ *http.Request) {
	v := s.ctrl.View()
	s.jsonResponse(w, http.StatusOK, ViewResponse{View: v, Title: v.Title()})
}

// handleSetView navigates to a view, refreshing the candidate list
func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	v, err := workspace.ParseView(req.View)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.ctrl.Navigate(r.Context(), v)
	s.jsonResponse(w, http.StatusOK, ViewResponse{View: v, Title: v.Title()})
}

// handleState returns the whole workspace state
func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.ctrl.State())
}

// handleDashboard navigates to the dashboard and returns its statistics
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Navigate(r.Context(), workspace.ViewDashboard)
	s.jsonResponse(w, http.StatusOK, DashboardResponse{
		Stats:  s.ctrl.Stats(),
		Recent: nonNil(s.ctrl.Recent()),
	})
}

// handleListCandidates returns every stored candidate
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Refresh(r.Context())
	s.jsonResponse(w, http.StatusOK, nonNil(s.ctrl.Snapshot()))
}

// handleAnalyze extracts a draft profile from resume text
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	ctx := r.Context()

	text := req.Text
	if req.URL != "" {
		opts := s.urlOptions
		opts.Target = ingestion.TargetResume
		fetched, _, err := ingestion.IngestFromURL(ctx, req.URL, opts)
		if err != nil {
			s.log.WithError(err).WithField("url", req.URL).Warn("resume fetch failed")
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		text = joinNonEmpty(req.Text, fetched)
	}

	if s.ctrl.View() != workspace.ViewAddCandidate {
		s.ctrl.Navigate(ctx, workspace.ViewAddCandidate)
	}

	draft, err := s.ctrl.AnalyzeText(ctx, text)
	if err != nil {
		var extractionErr *extraction.ExtractionError
		if errors.As(err, &extractionErr) {
			s.jsonResponse(w, http.StatusUnprocessableEntity, AnalyzeErrorResponse{
				Error:  workspace.AnalyzeFailedMessage,
				Reason: string(extractionErr.Reason),
				Input:  s.ctrl.State().Add.Input,
			})
			return
		}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{Draft: draft})
}

// handleSaveCandidate stores the pending draft
func (s *Server) handleSaveCandidate(w http.ResponseWriter, r *http.Request) {
	record, err := s.ctrl.Save(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, record)
}

// handleDiscardDraft drops the pending draft
func (s *Server) handleDiscardDraft(w http.ResponseWriter, _ *http.Request) {
	s.ctrl.Discard()
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteCandidate removes a candidate. The confirm=true query
// parameter stands in for the interactive confirmation.
func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	confirmed := r.URL.Query().Get("confirm") == "true"

	err := s.ctrl.Delete(r.Context(), id, workspace.ConfirmFunc(func(string) bool { return confirmed }))
	if err != nil {
		message := err.Error()
		if errors.Is(err, workspace.ErrNotConfirmed) {
			message = workspace.DeletePrompt + " Repeat with ?confirm=true."
		}
		s.errorResponse(w, HTTPStatus(err), message)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSearch ranks the stored candidates against a query
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	ctx := r.Context()

	query := req.Query
	if req.JobURL != "" {
		opts := s.urlOptions
		opts.Target = ingestion.TargetJobPosting
		posting, _, err := ingestion.IngestFromURL(ctx, req.JobURL, opts)
		if err != nil {
			s.log.WithError(err).WithField("url", req.JobURL).Warn("job posting fetch failed")
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		query = joinNonEmpty(req.Query, posting)
	}

	if s.ctrl.View() != workspace.ViewSearch {
		s.ctrl.Navigate(ctx, workspace.ViewSearch)
	}

	results, err := s.ctrl.Search(ctx, query)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, SearchResponse{Query: query, Results: results})
}

// decodeAndValidate decodes a JSON body into dst and validates it, writing
// a 400 response on failure.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, toValidationError(err).Error())
		return false
	}
	return true
}

// toValidationError reports the first failed field.
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	message := "failed " + fe.Tag()
	switch fe.Tag() {
	case "required", "required_without":
		message = "is required"
	case "url":
		message = "must be a valid URL"
	}
	return &ErrValidation{Field: fe.Field(), Message: message}
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

func nonNil(candidates []types.CandidateProfile) []types.CandidateProfile {
	if candidates == nil {
		return []types.CandidateProfile{}
	}
	return candidates
}
