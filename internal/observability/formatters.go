// Package observability renders candidate records, dashboard statistics and
// search results as boxed terminal output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-search/internal/types"
	"github.com/jonathan/talent-search/internal/workspace"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxSkillsToShow is the number of skills on a card before "+N"
	maxSkillsToShow = 5
	// summaryLines caps the summary shown on a card
	summaryLines = 3
)

// Empty-state messages.
const (
	NoCandidatesMessage = `No candidates found. Go to "Add Candidate" to get started.`
	NoMatchesMessage    = "No matching candidates found."
	SearchPromptMessage = "Enter a job description to start the magic."
)

// Band labels a match score.
type Band string

// Score bands.
const (
	BandStrong   Band = "strong"
	BandModerate Band = "moderate"
	BandWeak     Band = "weak"
)

// ScoreBand returns the band for a 0-100 match score.
func ScoreBand(score float64) Band {
	switch {
	case score > 80:
		return BandStrong
	case score > 50:
		return BandModerate
	default:
		return BandWeak
	}
}

// Printer handles formatted terminal output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMessage prints a single line outside any box.
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) PrintMessage(msg string) {
	fmt.Fprintln(p.out, msg)
}

// PrintDashboard outputs the dashboard statistics followed by the recent
// candidates, numbered from 1.
func (p *Printer) PrintDashboard(stats workspace.Stats, recent []types.CandidateProfile) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total Candidates:      %d\n", stats.TotalCandidates))
	sb.WriteString(fmt.Sprintf("Unique Skills:         %d\n", stats.UniqueSkills))
	sb.WriteString(fmt.Sprintf("Avg Experience (Yrs):  %.1f", stats.AverageExperience))
	p.printBox("DASHBOARD", sb.String())

	if len(recent) == 0 {
		p.PrintMessage(NoCandidatesMessage)
		return
	}
	p.PrintMessage("Recent Candidates")
	for i, candidate := range recent {
		p.printCard(fmt.Sprintf("#%d  %s", i+1, candidate.FullName), candidate, nil)
	}
}

// PrintCandidates outputs every candidate as a numbered card.
func (p *Printer) PrintCandidates(candidates []types.CandidateProfile) {
	if len(candidates) == 0 {
		p.PrintMessage(NoCandidatesMessage)
		return
	}
	for i, candidate := range candidates {
		p.printCard(fmt.Sprintf("#%d  %s", i+1, candidate.FullName), candidate, nil)
	}
}

// PrintCandidate outputs one candidate card.
func (p *Printer) PrintCandidate(candidate types.CandidateProfile) {
	p.printCard(candidate.FullName, candidate, nil)
}

// PrintDraft outputs the extraction result waiting to be saved.
func (p *Printer) PrintDraft(draft *types.CandidateDraft) {
	if draft == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:        %s\n", draft.FullName))
	sb.WriteString(fmt.Sprintf("Email:       %s\n", draft.Email))
	phone := "N/A"
	if draft.Phone != nil && *draft.Phone != "" {
		phone = *draft.Phone
	}
	sb.WriteString(fmt.Sprintf("Phone:       %s\n", phone))
	if draft.YearsOfExperience != nil {
		sb.WriteString(fmt.Sprintf("Experience:  %g years\n", *draft.YearsOfExperience))
	} else {
		sb.WriteString("Experience:  unknown\n")
	}
	sb.WriteString("\nSummary:\n")
	for _, line := range wrap(draft.Summary, boxWidth-6) {
		sb.WriteString("  " + line + "\n")
	}
	if len(draft.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		for _, line := range wrap(strings.Join(draft.Skills, ", "), boxWidth-6) {
			sb.WriteString("  " + line + "\n")
		}
	}

	p.printBox("EXTRACTED PROFILE (review before saving)", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSearchResults outputs ranked candidates in the order given.
func (p *Printer) PrintSearchResults(results []types.RankedCandidate) {
	if len(results) == 0 {
		p.PrintMessage(NoMatchesMessage)
		return
	}

	p.PrintMessage(fmt.Sprintf("Found %d Candidates (sorted by relevance)", len(results)))
	for i, ranked := range results {
		result := ranked.Result
		title := fmt.Sprintf("#%d  %s  %g%% match (%s)", i+1, ranked.Candidate.FullName, result.Score, ScoreBand(result.Score))
		p.printCard(title, ranked.Candidate, &result)
	}
}

// printCard renders a candidate with up to five skills and an optional
// match explanation.
func (p *Printer) printCard(title string, candidate types.CandidateProfile, result *types.SearchResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%g Years Exp.\n", candidate.YearsOfExperience))
	sb.WriteString(fmt.Sprintf("Email:  %s\n", candidate.Email))
	phone := candidate.Phone
	if phone == "" {
		phone = "N/A"
	}
	sb.WriteString(fmt.Sprintf("Phone:  %s\n", phone))

	if candidate.Summary != "" {
		sb.WriteString("\n")
		lines := wrap(candidate.Summary, boxWidth-4)
		if len(lines) > summaryLines {
			lines = lines[:summaryLines]
			lines[summaryLines-1] = truncate(lines[summaryLines-1]+" ...", boxWidth-4)
		}
		for _, line := range lines {
			sb.WriteString(line + "\n")
		}
	}

	if result != nil && result.MatchReasoning != "" {
		sb.WriteString("\nAI Analysis:\n")
		for _, line := range wrap(result.MatchReasoning, boxWidth-6) {
			sb.WriteString("  " + line + "\n")
		}
	}

	if skills := SkillTags(candidate.Skills); skills != "" {
		sb.WriteString("\n" + skills + "\n")
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// SkillTags formats the first five skills followed by "+N" for the rest.
func SkillTags(skills []string) string {
	if len(skills) == 0 {
		return ""
	}
	shown := skills
	if len(shown) > maxSkillsToShow {
		shown = shown[:maxSkillsToShow]
	}
	tags := make([]string, 0, len(shown)+1)
	for _, skill := range shown {
		tags = append(tags, "["+skill+"]")
	}
	if extra := len(skills) - len(shown); extra > 0 {
		tags = append(tags, fmt.Sprintf("+%d", extra))
	}
	return strings.Join(tags, " ")
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len([]rune(current))+1+len([]rune(word)) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}
