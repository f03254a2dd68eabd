package workspace

import (
	"math"

	"github.com/jonathan/talent-search/internal/types"
)

// RecentLimit is the number of candidates shown on the dashboard.
const RecentLimit = 6

// Stats summarises the candidate snapshot.
type Stats struct {
	TotalCandidates   int     `json:"totalCandidates"`
	UniqueSkills      int     `json:"uniqueSkills"`
	AverageExperience float64 `json:"averageExperience"`
}

// ComputeStats derives dashboard statistics. Skills are counted as exact,
// case-sensitive strings. The average is rounded to one decimal.
func ComputeStats(candidates []types.CandidateProfile) Stats {
	if len(candidates) == 0 {
		return Stats{}
	}

	skills := make(map[string]struct{})
	var totalYears float64
	for _, c := range candidates {
		for _, s := range c.Skills {
			skills[s] = struct{}{}
		}
		totalYears += c.YearsOfExperience
	}

	avg := totalYears / float64(len(candidates))
	return Stats{
		TotalCandidates:   len(candidates),
		UniqueSkills:      len(skills),
		AverageExperience: math.Round(avg*10) / 10,
	}
}

// RecentCandidates returns at most RecentLimit records from the front of the list.
func RecentCandidates(candidates []types.CandidateProfile) []types.CandidateProfile {
	n := len(candidates)
	if n > RecentLimit {
		n = RecentLimit
	}
	out := make([]types.CandidateProfile, n)
	copy(out, candidates[:n])
	return out
}
