package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/talent-search/internal/store"
	"github.com/jonathan/talent-search/internal/types"
	"github.com/jonathan/talent-search/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIntelligence implements workspace.Intelligence for testing
type fakeIntelligence struct {
	extractErr error
	failFirst  int
	rank       []types.SearchResult
	extracted  []string
	queries    []string
}

func (f *fakeIntelligence) Extract(_ context.Context, rawText string) (*types.CandidateDraft, error) {
	f.extracted = append(f.extracted, rawText)
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	if len(f.extracted) <= f.failFirst {
		return nil, errors.New("model unavailable")
	}
	years := 3.0
	return &types.CandidateDraft{
		FullName:          "Carol Go",
		Email:             "carol@example.com",
		Summary:           "Platform engineer.",
		Skills:            []string{"Go", "Kubernetes"},
		YearsOfExperience: &years,
	}, nil
}

func (f *fakeIntelligence) Rank(_ context.Context, query string, _ []types.CandidateProfile) []types.SearchResult {
	f.queries = append(f.queries, query)
	return f.rank
}

type harness struct {
	store *store.CandidateStore
	ctrl  *workspace.Controller
	ai    *fakeIntelligence
	out   bytes.Buffer
}

func newHarness(t *testing.T, seed bool) *harness {
	t.Helper()
	h := &harness{
		store: store.NewCandidateStore(store.NewMemoryBackend()),
		ai:    &fakeIntelligence{},
	}
	if seed {
		_, err := h.store.SeedIfEmpty(context.Background())
		require.NoError(t, err)
	}
	return h
}

func (h *harness) run(t *testing.T, input ...string) string {
	t.Helper()
	h.ctrl = workspace.New(h.store, h.ai)
	sh := New(h.ctrl, strings.NewReader(strings.Join(input, "\n")+"\n"), &h.out)
	require.NoError(t, sh.Run(context.Background()))
	return h.out.String()
}

func TestRun_QuitAndEOF(t *testing.T) {
	h := newHarness(t, false)
	assert.Contains(t, h.run(t, "q"), "3) Search")

	h = newHarness(t, false)
	assert.Contains(t, h.run(t), "1) Dashboard")
}

func TestRun_UnknownOption(t *testing.T) {
	h := newHarness(t, false)
	output := h.run(t, "7", "q")

	assert.Contains(t, output, `Unknown option "7".`)
}

func TestRun_CancelledContext(t *testing.T) {
	h := newHarness(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sh := New(workspace.New(h.store, h.ai), strings.NewReader("1\n"), &h.out)
	assert.ErrorIs(t, sh.Run(ctx), context.Canceled)
}

func TestDashboard(t *testing.T) {
	h := newHarness(t, true)
	output := h.run(t, "1", "", "q")

	assert.Contains(t, output, "Total Candidates:      2")
	assert.Contains(t, output, "Avg Experience (Yrs):  6.5")
	assert.Contains(t, output, "#1  Alice Java")
	assert.Contains(t, output, "#2  Bob React")
}

func TestDashboard_Empty(t *testing.T) {
	h := newHarness(t, false)
	output := h.run(t, "1", "q")

	assert.Contains(t, output, "No candidates found.")
}

func TestDashboard_DeleteConfirmed(t *testing.T) {
	h := newHarness(t, true)
	output := h.run(t, "1", "2", "y", "", "q")

	assert.Contains(t, output, workspace.DeletePrompt+" [y/N]: ")
	assert.Contains(t, output, "Removed Bob React.")

	remaining := h.store.GetAll(context.Background())
	require.Len(t, remaining, 1)
	assert.Equal(t, "1", remaining[0].ID)
}

func TestDashboard_DeleteDeclined(t *testing.T) {
	h := newHarness(t, true)
	output := h.run(t, "1", "1", "n", "", "q")

	assert.Contains(t, output, "Kept Alice Java.")
	assert.Len(t, h.store.GetAll(context.Background()), 2)
}

func TestDashboard_InvalidNumber(t *testing.T) {
	h := newHarness(t, true)
	output := h.run(t, "1", "9", "", "q")

	assert.Contains(t, output, "Pick a number between 1 and 2.")
	assert.Len(t, h.store.GetAll(context.Background()), 2)
}

func TestAdd_PasteAndSave(t *testing.T) {
	h := newHarness(t, false)
	output := h.run(t, "2", "Carol Go", "carol@example.com", ".", "s", "q")

	require.Len(t, h.ai.extracted, 1)
	assert.Equal(t, "Carol Go\ncarol@example.com", h.ai.extracted[0])
	assert.Contains(t, output, "EXTRACTED PROFILE")
	assert.Contains(t, output, workspace.SavedMessage)

	saved := h.store.GetAll(context.Background())
	require.Len(t, saved, 1)
	assert.Equal(t, "Carol Go", saved[0].FullName)
	assert.Equal(t, "Carol Go\ncarol@example.com", saved[0].RawResumeText)
}

func TestAdd_SampleAndDiscard(t *testing.T) {
	h := newHarness(t, false)
	output := h.run(t, "2", "sample", "d", "q")

	require.Len(t, h.ai.extracted, 1)
	assert.Equal(t, workspace.SampleResumeText, h.ai.extracted[0])
	assert.Contains(t, output, "Draft discarded.")
	assert.Empty(t, h.store.GetAll(context.Background()))
}

func TestAdd_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("Dana Rust\r\n\r\n\r\nSystems   engineer"), 0o644))

	h := newHarness(t, false)
	h.run(t, "2", "file "+path, "s", "q")

	require.Len(t, h.ai.extracted, 1)
	assert.Equal(t, "Dana Rust\n\nSystems engineer", h.ai.extracted[0])
}

func TestAdd_FileMissing(t *testing.T) {
	h := newHarness(t, false)
	output := h.run(t, "2", "file /nonexistent/cv.txt", "q")

	assert.Contains(t, output, "Could not read resume")
	assert.Empty(t, h.ai.extracted)
}

func TestAdd_EmptyInput(t *testing.T) {
	h := newHarness(t, false)
	output := h.run(t, "2", "   ", ".", "q")

	assert.Contains(t, output, "Nothing to analyze.")
	assert.Empty(t, h.ai.extracted)
}

func TestAdd_AnalyzeFailure(t *testing.T) {
	h := newHarness(t, false)
	h.ai.extractErr = errors.New("model unavailable")
	output := h.run(t, "2", "some resume", ".", "b", "q")

	assert.Contains(t, output, workspace.AnalyzeFailedMessage)
	assert.Contains(t, output, "[r]etry or [b]ack: ")
	assert.Empty(t, h.store.GetAll(context.Background()))
	assert.Equal(t, "some resume", h.ctrl.State().Add.Input)
}

func TestAdd_RetryReusesInput(t *testing.T) {
	h := newHarness(t, false)
	h.ai.extractErr = errors.New("model unavailable")
	output := h.run(t, "2", "Jane Doe", "jane@example.com", ".", "r", "b", "q")

	assert.Equal(t, []string{"Jane Doe\njane@example.com", "Jane Doe\njane@example.com"}, h.ai.extracted)
	assert.Equal(t, 2, strings.Count(output, workspace.AnalyzeFailedMessage))
	st := h.ctrl.State()
	assert.Equal(t, workspace.ViewAddCandidate, st.View)
	assert.Equal(t, "Jane Doe\njane@example.com", st.Add.Input)
	assert.Empty(t, h.store.GetAll(context.Background()))
}

func TestAdd_RetryThenSave(t *testing.T) {
	h := newHarness(t, false)
	h.ai.failFirst = 1
	output := h.run(t, "2", "Carol Go", ".", "r", "s", "q")

	assert.Equal(t, []string{"Carol Go", "Carol Go"}, h.ai.extracted)
	assert.Contains(t, output, workspace.SavedMessage)
	saved := h.store.GetAll(context.Background())
	require.Len(t, saved, 1)
	assert.Equal(t, "Carol Go", saved[0].RawResumeText)
}

func TestAdd_EmptyBlockReusesKeptInput(t *testing.T) {
	h := newHarness(t, false)
	h.ai.extractErr = errors.New("model unavailable")
	output := h.run(t, "2", "Jane Doe", ".", "b", "2", ".", "b", "q")

	assert.Equal(t, []string{"Jane Doe", "Jane Doe"}, h.ai.extracted)
	assert.Contains(t, output, "Using the previous resume text.")
	assert.Equal(t, "Jane Doe", h.ctrl.State().Add.Input)
}

func TestSearch(t *testing.T) {
	h := newHarness(t, true)
	h.ai.rank = []types.SearchResult{
		{CandidateID: "2", Score: 60, MatchReasoning: "Some overlap."},
		{CandidateID: "1", Score: 95, MatchReasoning: "Java and Kafka."},
		{CandidateID: "ghost", Score: 99},
	}
	output := h.run(t, "3", "Java developer with Kafka", "q")

	assert.Equal(t, []string{"Java developer with Kafka"}, h.ai.queries)
	assert.Contains(t, output, "Found 2 Candidates")
	assert.Contains(t, output, "#1  Alice Java  95% match (strong)")
	assert.Contains(t, output, "#2  Bob React  60% match (moderate)")
}

func TestSearch_NoMatches(t *testing.T) {
	h := newHarness(t, true)
	output := h.run(t, "3", "COBOL", "q")

	assert.Contains(t, output, "No matching candidates found.")
}

func TestSearch_EmptyQuery(t *testing.T) {
	h := newHarness(t, true)
	output := h.run(t, "3", "", "q")

	assert.Contains(t, output, "Enter a job description to start the magic.")
	assert.Empty(t, h.ai.queries)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		sh := New(nil, strings.NewReader(tt.input), &out)
		assert.Equal(t, tt.want, sh.Confirm("Sure?"), "input %q", tt.input)
		assert.Equal(t, "Sure? [y/N]: ", out.String())
	}
}
