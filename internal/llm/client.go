package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gemini "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var (
	// ErrEmptyResponse is returned when the model answers without any text.
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrBlocked is returned when the provider refused the prompt or answer.
	ErrBlocked = errors.New("response blocked by provider")
)

// Client is what extraction and ranking need from a model.
type Client interface {
	// GenerateJSON asks for a JSON document. A non-nil schema constrains the
	// output where the provider supports it. The result has fences stripped.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier, schema *Schema) (string, error)
	GetModel(tier ModelTier) string
	Close() error
}

// NewClient validates config and builds the client for its provider. A nil
// config means DefaultConfig.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	provider, _ := ParseProvider(string(config.Provider))
	if provider == ProviderGenAI {
		return NewGenAIClient(ctx, config, apiKey)
	}
	return NewGeminiClient(ctx, config, apiKey)
}

func modelFor(config *Config, tier ModelTier) (string, error) {
	if model := config.GetModel(tier); model != "" {
		return model, nil
	}
	return "", fmt.Errorf("no model configured for tier %s", tier)
}

// finishJSON turns raw response text into the JSON payload.
func finishJSON(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return CleanJSONBlock(text), nil
}

// GeminiClient implements Client with github.com/google/generative-ai-go.
type GeminiClient struct {
	client *gemini.Client
	config *Config
}

// NewGeminiClient connects to the Gemini API with apiKey.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	client, err := gemini.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, config: config}, nil
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier, schema *Schema) (string, error) {
	modelName, err := modelFor(c.config, tier)
	if err != nil {
		return "", err
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(c.config.temperature())
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema.toGemini()

	resp, err := model.GenerateContent(ctx, gemini.Text(prompt))
	if err != nil {
		var blocked *gemini.BlockedError
		if errors.As(err, &blocked) {
			return "", fmt.Errorf("%w: %v", ErrBlocked, blocked)
		}
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return finishJSON(text)
}

func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// responseText joins the text parts of the first candidate.
func responseText(resp *gemini.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrEmptyResponse)
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", fmt.Errorf("%w: no content", ErrEmptyResponse)
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(gemini.Text); ok {
			b.WriteString(string(text))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: no text parts", ErrEmptyResponse)
	}
	return b.String(), nil
}
