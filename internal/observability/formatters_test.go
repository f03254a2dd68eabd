package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/talent-search/internal/types"
	"github.com/jonathan/talent-search/internal/workspace"
	"github.com/stretchr/testify/assert"
)

func sampleCandidate() types.CandidateProfile {
	return types.CandidateProfile{
		ID:                "1",
		FullName:          "Alice Java",
		Email:             "alice@example.com",
		Summary:           "Backend engineer focused on payment systems.",
		Skills:            []string{"Java", "Spring Boot", "Kafka", "AWS", "PostgreSQL", "Docker", "Redis"},
		YearsOfExperience: 8,
	}
}

func TestScoreBand(t *testing.T) {
	tests := []struct {
		score float64
		want  Band
	}{
		{100, BandStrong},
		{80.5, BandStrong},
		{80, BandModerate},
		{51, BandModerate},
		{50, BandWeak},
		{0, BandWeak},
		{-3, BandWeak},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreBand(tt.score), "score %v", tt.score)
	}
}

func TestSkillTags(t *testing.T) {
	assert.Equal(t, "", SkillTags(nil))
	assert.Equal(t, "[Go] [SQL]", SkillTags([]string{"Go", "SQL"}))
	assert.Equal(t, "[a] [b] [c] [d] [e]", SkillTags([]string{"a", "b", "c", "d", "e"}))
	assert.Equal(t, "[a] [b] [c] [d] [e] +2", SkillTags([]string{"a", "b", "c", "d", "e", "f", "g"}))
}

func TestPrintCandidate(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCandidate(sampleCandidate())
	output := buf.String()

	assert.Contains(t, output, "Alice Java")
	assert.Contains(t, output, "8 Years Exp.")
	assert.Contains(t, output, "alice@example.com")
	assert.Contains(t, output, "Phone:  N/A")
	assert.Contains(t, output, "[PostgreSQL] +2")
	assert.NotContains(t, output, "Docker")
}

func TestPrintCandidate_LongLinesStayInsideBox(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	candidate := sampleCandidate()
	candidate.Email = strings.Repeat("x", 80) + "@example.com"
	candidate.Summary = strings.Repeat("word ", 100)
	p.PrintCandidate(candidate)

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
}

func TestPrintDashboard(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	stats := workspace.Stats{TotalCandidates: 2, UniqueSkills: 9, AverageExperience: 6.5}
	p.PrintDashboard(stats, []types.CandidateProfile{sampleCandidate()})
	output := buf.String()

	assert.Contains(t, output, "DASHBOARD")
	assert.Contains(t, output, "Total Candidates:      2")
	assert.Contains(t, output, "Unique Skills:         9")
	assert.Contains(t, output, "Avg Experience (Yrs):  6.5")
	assert.Contains(t, output, "Recent Candidates")
	assert.Contains(t, output, "#1  Alice Java")
	assert.NotContains(t, output, NoCandidatesMessage)
}

func TestPrintDashboard_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDashboard(workspace.Stats{}, nil)
	output := buf.String()

	assert.Contains(t, output, "Avg Experience (Yrs):  0.0")
	assert.Contains(t, output, NoCandidatesMessage)
}

func TestPrintCandidates_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCandidates(nil)

	assert.Equal(t, NoCandidatesMessage+"\n", buf.String())
}

func TestPrintDraft(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	years := 4.5
	p.PrintDraft(&types.CandidateDraft{
		FullName:          "Bob Python",
		Email:             "bob@example.com",
		Summary:           "Data engineer.",
		Skills:            []string{"Python", "Airflow"},
		YearsOfExperience: &years,
	})
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED PROFILE")
	assert.Contains(t, output, "Bob Python")
	assert.Contains(t, output, "Phone:       N/A")
	assert.Contains(t, output, "4.5 years")
	assert.Contains(t, output, "Python, Airflow")
}

func TestPrintDraft_UnknownExperience(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDraft(&types.CandidateDraft{FullName: "Ann"})

	assert.Contains(t, buf.String(), "Experience:  unknown")
}

func TestPrintDraft_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDraft(nil)

	assert.Empty(t, buf.String())
}

func TestPrintSearchResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	bob := sampleCandidate()
	bob.ID, bob.FullName = "2", "Bob Python"
	results := []types.RankedCandidate{
		{Candidate: sampleCandidate(), Result: types.SearchResult{CandidateID: "1", Score: 92, MatchReasoning: "Deep Kafka experience."}},
		{Candidate: bob, Result: types.SearchResult{CandidateID: "2", Score: 40}},
	}
	p.PrintSearchResults(results)
	output := buf.String()

	assert.Contains(t, output, "Found 2 Candidates")
	assert.Contains(t, output, "#1  Alice Java  92% match (strong)")
	assert.Contains(t, output, "#2  Bob Python  40% match (weak)")
	assert.Contains(t, output, "AI Analysis:")
	assert.Contains(t, output, "Deep Kafka experience.")
	assert.Less(t, strings.Index(output, "Alice Java"), strings.Index(output, "Bob Python"))
}

func TestPrintSearchResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSearchResults([]types.RankedCandidate{})

	assert.Equal(t, NoMatchesMessage+"\n", buf.String())
}

func TestWrap(t *testing.T) {
	assert.Nil(t, wrap("   ", 10))
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
	assert.Equal(t, []string{"supercalifragilistic"}, wrap("supercalifragilistic", 5))
}
