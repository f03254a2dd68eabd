// Package extraction turns free-form resume text into a structured candidate
// draft using the language model.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jonathan/talent-search/internal/llm"
	"github.com/jonathan/talent-search/internal/prompts"
	"github.com/jonathan/talent-search/internal/schemas"
	"github.com/jonathan/talent-search/internal/types"
)

// DraftSchema is the response shape requested from the model.
func DraftSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"fullName": {Type: llm.TypeString},
			"email":    {Type: llm.TypeString},
			"phone":    {Type: llm.TypeString},
			"summary":  {Type: llm.TypeString},
			"skills": {
				Type:  llm.TypeArray,
				Items: &llm.Schema{Type: llm.TypeString},
			},
			"yearsOfExperience": {Type: llm.TypeNumber},
		},
		Required: []string{"fullName", "email", "skills", "summary"},
	}
}

// ParseResumeText extracts a CandidateDraft from rawText. The call is made
// once; any failure is returned as an *ExtractionError. Fields the model did
// not return are left nil on the draft.
func ParseResumeText(ctx context.Context, client llm.Client, rawText string) (*types.CandidateDraft, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, &ExtractionError{Reason: ReasonEmptyInput, Message: "resume text is empty"}
	}

	prompt, err := buildExtractionPrompt(rawText)
	if err != nil {
		return nil, &ExtractionError{Reason: ReasonAPICall, Message: "failed to build prompt", Cause: err}
	}

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard, DraftSchema())
	if err != nil {
		if errors.Is(err, llm.ErrEmptyResponse) {
			return nil, &ExtractionError{Reason: ReasonEmptyResponse, Message: "no response from model", Cause: err}
		}
		return nil, &ExtractionError{Reason: ReasonAPICall, Message: "failed to generate content from LLM", Cause: err}
	}

	responseText = llm.CleanJSONBlock(responseText)
	if responseText == "" {
		return nil, &ExtractionError{Reason: ReasonEmptyResponse, Message: "no response from model"}
	}

	draft, err := parseDraft(responseText)
	if err != nil {
		return nil, err
	}

	draft.RawResumeText = rawText
	return draft, nil
}

func buildExtractionPrompt(rawText string) (string, error) {
	return prompts.Render(prompts.ParseResume, map[string]string{
		"ResumeText": rawText,
	})
}

// parseDraft decodes and validates the model's JSON.
func parseDraft(jsonText string) (*types.CandidateDraft, error) {
	if !json.Valid([]byte(jsonText)) {
		return nil, &ExtractionError{Reason: ReasonMalformedResponse, Message: "response is not valid JSON"}
	}

	if err := schemas.Validate(schemas.CandidateDraft, jsonText); err != nil {
		return nil, &ExtractionError{Reason: ReasonSchemaMismatch, Message: "response does not match the candidate schema", Cause: err}
	}

	var draft types.CandidateDraft
	if err := json.Unmarshal([]byte(jsonText), &draft); err != nil {
		return nil, &ExtractionError{Reason: ReasonMalformedResponse, Message: "failed to parse JSON response", Cause: err}
	}
	return &draft, nil
}
