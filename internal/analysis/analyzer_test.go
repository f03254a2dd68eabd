package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/talent-search/internal/extraction"
	"github.com/jonathan/talent-search/internal/llm"
	"github.com/jonathan/talent-search/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier, schema *llm.Schema) (string, error)
	Closed           bool
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier, schema *llm.Schema) (string, error) {
	return m.GenerateJSONFunc(ctx, prompt, tier, schema)
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error {
	m.Closed = true
	return nil
}

func TestAnalyzer_RoutesByPrompt(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, _ llm.ModelTier, _ *llm.Schema) (string, error) {
			if strings.Contains(prompt, "Resume Text:") {
				return `{"fullName":"Jane","email":"jane@example.com","summary":"Go","skills":["Go"]}`, nil
			}
			return `[{"candidateId":"1","score":88,"matchReasoning":"Go expert"}]`, nil
		},
	}
	a := New(client, nil)

	draft, err := a.Extract(context.Background(), "Jane resume")
	require.NoError(t, err)
	assert.Equal(t, "Jane", draft.FullName)

	results := a.Rank(context.Background(), "Go", []types.CandidateProfile{{ID: "1"}})
	require.Len(t, results, 1)
	assert.Equal(t, 88.0, results[0].Score)

	require.NoError(t, a.Close())
	assert.True(t, client.Closed)
}

func TestAnalyzer_ExtractError(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier, *llm.Schema) (string, error) {
			return "", errors.New("boom")
		},
	}

	_, err := New(client, nil).Extract(context.Background(), "resume")

	var extractionErr *extraction.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, extraction.ReasonAPICall, extractionErr.Reason)
}
