package types

// SearchResult is one scored match returned by the ranking model.
// Score is intended to be 0-100 but is not clamped.
type SearchResult struct {
	CandidateID    string  `json:"candidateId"`
	Score          float64 `json:"score"`
	MatchReasoning string  `json:"matchReasoning"`
}

// RankedCandidate joins a search result back to its full record for display.
type RankedCandidate struct {
	Candidate CandidateProfile `json:"candidate"`
	Result    SearchResult     `json:"result"`
}
