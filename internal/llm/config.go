// Package llm wraps the hosted model behind a small Client interface so the
// resume extraction and candidate ranking code never touches a provider SDK.
package llm

import (
	"fmt"
	"strings"
)

// ModelTier selects a model by capability rather than by name.
type ModelTier string

const (
	TierLite     ModelTier = "lite"
	TierStandard ModelTier = "standard" // resume extraction and ranking
	TierAdvanced ModelTier = "advanced"
)

// fallbackTiers are tried in order when a tier has no model configured.
var fallbackTiers = []ModelTier{TierStandard, TierLite}

// Provider names the SDK used to reach the model.
type Provider string

const (
	// ProviderGemini uses github.com/google/generative-ai-go with an API key.
	ProviderGemini Provider = "gemini"
	// ProviderGenAI uses google.golang.org/genai, against the Gemini API or Vertex AI.
	ProviderGenAI Provider = "genai"
)

// ParseProvider resolves a provider name. The empty name means ProviderGemini.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return ProviderGemini, nil
	case ProviderGemini, ProviderGenAI:
		return p, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q", name)
	}
}

// DefaultTemperature keeps extracted profiles and scores stable between runs.
const DefaultTemperature float32 = 0.1

// Config selects the provider and the model for each tier.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32

	// Project and Location switch the genai provider to Vertex AI.
	Project  string
	Location string
}

// DefaultConfig uses the Gemini API with the 2.5 model family.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// Validate reports an unknown provider, a missing standard model or a
// half-specified Vertex AI target.
func (c *Config) Validate() error {
	if _, err := ParseProvider(string(c.Provider)); err != nil {
		return err
	}
	if c.GetModel(TierStandard) == "" {
		return fmt.Errorf("no model configured for tier %s", TierStandard)
	}
	if (c.Project == "") != (c.Location == "") {
		return fmt.Errorf("vertex AI needs both project and location")
	}
	return nil
}

// UsesVertex reports whether the genai provider should target Vertex AI.
func (c *Config) UsesVertex() bool {
	return c.Project != "" && c.Location != ""
}

// GetModel returns the model for tier, falling back to the standard and
// then the lite model. It returns "" when none is configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model := c.Models[tier]; model != "" {
		return model
	}
	for _, t := range fallbackTiers {
		if model := c.Models[t]; model != "" {
			return model
		}
	}
	return ""
}

func (c *Config) temperature() float32 {
	if c.Temperature <= 0 {
		return DefaultTemperature
	}
	return c.Temperature
}

func (c *Config) clone() *Config {
	out := *c
	out.Models = make(map[ModelTier]string, len(c.Models))
	for tier, model := range c.Models {
		out.Models[tier] = model
	}
	return &out
}

// WithModel returns a copy using model for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := c.clone()
	out.Models[tier] = model
	return out
}

// WithProvider returns a copy using provider.
func (c *Config) WithProvider(provider Provider) *Config {
	out := c.clone()
	out.Provider = provider
	return out
}

// WithVertex returns a copy targeting Vertex AI in project and location.
func (c *Config) WithVertex(project, location string) *Config {
	out := c.clone()
	out.Project = project
	out.Location = location
	return out
}
