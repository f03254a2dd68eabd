// Package analysis bundles resume extraction and candidate ranking behind a
// single model client.
package analysis

import (
	"context"

	"github.com/jonathan/talent-search/internal/extraction"
	"github.com/jonathan/talent-search/internal/llm"
	"github.com/jonathan/talent-search/internal/logging"
	"github.com/jonathan/talent-search/internal/ranking"
	"github.com/jonathan/talent-search/internal/types"
	"github.com/sirupsen/logrus"
)

// Analyzer delegates to extraction and ranking using client.
type Analyzer struct {
	client llm.Client
	log    logrus.FieldLogger
}

// New returns an Analyzer. A nil logger discards output.
func New(client llm.Client, log logrus.FieldLogger) *Analyzer {
	if log == nil {
		log = logging.Discard()
	}
	return &Analyzer{client: client, log: log.WithField("component", "analysis")}
}

// Extract parses resume text into a draft.
func (a *Analyzer) Extract(ctx context.Context, rawText string) (*types.CandidateDraft, error) {
	draft, err := extraction.ParseResumeText(ctx, a.client, rawText)
	if err != nil {
		a.log.WithError(err).Warn("error parsing resume")
		return nil, err
	}
	return draft, nil
}

// Rank scores candidates against query. It never fails.
func (a *Analyzer) Rank(ctx context.Context, query string, candidates []types.CandidateProfile) []types.SearchResult {
	return ranking.RankCandidates(ctx, a.client, query, candidates, ranking.WithLogger(a.log))
}

// Close releases the model client.
func (a *Analyzer) Close() error {
	return a.client.Close()
}
