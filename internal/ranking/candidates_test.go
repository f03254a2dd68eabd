package ranking

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jonathan/talent-search/internal/llm"
	"github.com/jonathan/talent-search/internal/logging"
	"github.com/jonathan/talent-search/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier, schema *llm.Schema) (string, error)
	Calls            int
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier, schema *llm.Schema) (string, error) {
	m.Calls++
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier, schema)
	}
	return `[]`, nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string {
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	return nil
}

func testCandidates() []types.CandidateProfile {
	return []types.CandidateProfile{
		{
			ID:                "1",
			FullName:          "Alice Java",
			Email:             "alice@example.com",
			Phone:             "555-0101",
			Summary:           "Senior Backend Engineer",
			Skills:            []string{"Java", "Spring Boot"},
			YearsOfExperience: 8,
			RawResumeText:     "SECRET RAW TEXT",
		},
		{
			ID:                "2",
			FullName:          "Bob React",
			Email:             "bob@example.com",
			Summary:           "Frontend specialist",
			Skills:            []string{"React"},
			YearsOfExperience: 5,
		},
	}
}

func TestRankCandidates_Success(t *testing.T) {
	var gotPrompt string
	var gotSchema *llm.Schema
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, _ llm.ModelTier, schema *llm.Schema) (string, error) {
			gotPrompt, gotSchema = prompt, schema
			return `[{"candidateId":"2","score":40,"matchReasoning":"Frontend only"},{"candidateId":"1","score":95,"matchReasoning":"Strong Java"}]`, nil
		},
	}

	results := RankCandidates(context.Background(), client, "Senior Java developer", testCandidates())

	require.Len(t, results, 2)
	assert.Equal(t, "2", results[0].CandidateID, "service order is preserved")
	assert.Equal(t, 95.0, results[1].Score)
	assert.Equal(t, "Strong Java", results[1].MatchReasoning)

	assert.Contains(t, gotPrompt, `"Senior Java developer"`)
	assert.Contains(t, gotPrompt, `"name":"Alice Java"`)
	assert.Contains(t, gotPrompt, `"experience":8`)
	assert.NotContains(t, gotPrompt, "alice@example.com")
	assert.NotContains(t, gotPrompt, "555-0101")
	assert.NotContains(t, gotPrompt, "SECRET RAW TEXT")
	require.NotNil(t, gotSchema)
	assert.Equal(t, llm.TypeArray, gotSchema.Type)
}

func TestRankCandidates_EmptyListSkipsModel(t *testing.T) {
	client := &MockLLMClient{}

	results := RankCandidates(context.Background(), client, "anything", nil)

	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Zero(t, client.Calls)
}

func TestRankCandidates_SoftFailures(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{name: "api error", err: errors.New("network down")},
		{name: "empty text", response: ""},
		{name: "not json", response: "no idea"},
		{name: "object instead of array", response: `{"candidateId":"1","score":90,"matchReasoning":"x"}`},
		{name: "score as string", response: `[{"candidateId":"1","score":"90","matchReasoning":"x"}]`},
		{name: "missing reasoning", response: `[{"candidateId":"1","score":90}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockLLMClient{
				GenerateJSONFunc: func(context.Context, string, llm.ModelTier, *llm.Schema) (string, error) {
					return tt.response, tt.err
				},
			}
			var buf bytes.Buffer
			log := logging.NewWithOutput(&buf, "warn", logging.FormatText)

			results := RankCandidates(context.Background(), client, "Java", testCandidates(), WithLogger(log))

			assert.NotNil(t, results)
			assert.Empty(t, results)
			assert.Equal(t, 1, client.Calls)
			assert.Contains(t, buf.String(), "level=warning")
		})
	}
}

func TestRankCandidates_OutOfRangeScoresKept(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier, *llm.Schema) (string, error) {
			return `[{"candidateId":"1","score":140,"matchReasoning":"x"},{"candidateId":"2","score":-5,"matchReasoning":"y"}]`, nil
		},
	}

	results := RankCandidates(context.Background(), client, "Java", testCandidates())

	require.Len(t, results, 2)
	assert.Equal(t, 140.0, results[0].Score)
	assert.Equal(t, -5.0, results[1].Score)
}
