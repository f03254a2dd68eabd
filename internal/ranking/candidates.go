// Package ranking scores stored candidates against a free-text query using the
// language model and orders the results for display.
package ranking

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/talent-search/internal/llm"
	"github.com/jonathan/talent-search/internal/logging"
	"github.com/jonathan/talent-search/internal/prompts"
	"github.com/jonathan/talent-search/internal/schemas"
	"github.com/jonathan/talent-search/internal/types"
	"github.com/sirupsen/logrus"
)

// Option configures ranking calls.
type Option func(*options)

type options struct {
	log logrus.FieldLogger
}

// WithLogger sets the logger for swallowed failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) *options {
	o := &options{log: logging.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	o.log = o.log.WithField("component", "ranking")
	return o
}

// candidateSummary is the reduced projection sent to the model. Contact
// details and raw resume text are never included.
type candidateSummary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Skills     []string `json:"skills"`
	Summary    string   `json:"summary"`
	Experience float64  `json:"experience"`
}

// ResultsSchema is the response shape requested from the model.
func ResultsSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeArray,
		Items: &llm.Schema{
			Type: llm.TypeObject,
			Properties: map[string]*llm.Schema{
				"candidateId":    {Type: llm.TypeString},
				"score":          {Type: llm.TypeNumber},
				"matchReasoning": {Type: llm.TypeString},
			},
			Required: []string{"candidateId", "score", "matchReasoning"},
		},
	}
}

// RankCandidates asks the model to score candidates against query. It never
// fails: any error is logged and yields an empty slice. Results come back in
// the model's order; candidates it left out are treated as non-matches.
func RankCandidates(ctx context.Context, client llm.Client, query string, candidates []types.CandidateProfile, opts ...Option) []types.SearchResult {
	if len(candidates) == 0 {
		return []types.SearchResult{}
	}
	o := buildOptions(opts)
	log := o.log.WithField("candidates", len(candidates))

	prompt, err := buildRankingPrompt(query, candidates)
	if err != nil {
		log.WithError(err).Warn("failed to build ranking prompt")
		return []types.SearchResult{}
	}

	jsonResp, err := client.GenerateJSON(ctx, prompt, llm.TierStandard, ResultsSchema())
	if err != nil {
		log.WithError(err).Warn("error ranking candidates")
		return []types.SearchResult{}
	}

	jsonResp = llm.CleanJSONBlock(jsonResp)
	if jsonResp == "" {
		log.Warn("empty ranking response")
		return []types.SearchResult{}
	}

	if err := schemas.Validate(schemas.SearchResults, jsonResp); err != nil {
		log.WithError(err).Warn("ranking response rejected")
		return []types.SearchResult{}
	}

	var results []types.SearchResult
	if err := json.Unmarshal([]byte(jsonResp), &results); err != nil {
		log.WithError(err).Warn("failed to parse ranking response")
		return []types.SearchResult{}
	}
	if results == nil {
		return []types.SearchResult{}
	}

	log.WithField("results", len(results)).Debug("candidates ranked")
	return results
}

func buildRankingPrompt(query string, candidates []types.CandidateProfile) (string, error) {
	summaries := make([]candidateSummary, 0, len(candidates))
	for _, c := range candidates {
		summaries = append(summaries, candidateSummary{
			ID:         c.ID,
			Name:       c.FullName,
			Skills:     c.Skills,
			Summary:    c.Summary,
			Experience: c.YearsOfExperience,
		})
	}
	candidatesJSON, err := json.Marshal(summaries)
	if err != nil {
		return "", err
	}

	return prompts.Render(prompts.RankCandidates, map[string]string{
		"Query":          strings.TrimSpace(query),
		"CandidatesJSON": string(candidatesJSON),
	})
}
