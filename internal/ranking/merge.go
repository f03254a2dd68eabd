package ranking

import (
	"sort"

	"github.com/jonathan/talent-search/internal/types"
)

// MergeResults joins results to their candidates and sorts by score,
// highest first. Results naming an unknown candidate are dropped. Equal
// scores keep the model's order.
func MergeResults(results []types.SearchResult, candidates []types.CandidateProfile, opts ...Option) []types.RankedCandidate {
	o := buildOptions(opts)

	byID := make(map[string]types.CandidateProfile, len(candidates))
	for _, c := range candidates {
		if _, exists := byID[c.ID]; !exists {
			byID[c.ID] = c
		}
	}

	ranked := make([]types.RankedCandidate, 0, len(results))
	for _, r := range results {
		c, ok := byID[r.CandidateID]
		if !ok {
			o.log.WithField("candidate_id", r.CandidateID).Debug("dropping result for unknown candidate")
			continue
		}
		ranked = append(ranked, types.RankedCandidate{Candidate: c, Result: r})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Score > ranked[j].Result.Score
	})
	return ranked
}
