package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse is returned when the model answered without any text
var ErrEmptyResponse = errors.New("empty response from model")

// Provider is a one-shot text generator: one prompt in, one text blob out.
// No conversation state is kept between calls.
type Provider interface {
	// Generate sends the prompt and returns the complete response
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns the provider display name
	Name() string

	// Model returns the model used for generation
	Model() string

	// ValidateConfig validates the provider configuration
	ValidateConfig() error
}

// Config represents provider configuration
type Config struct {
	ProviderName string // Display name for the provider
	APIKey       string
	BaseURL      string
	Model        string
	MaxTokens    int
	Temperature  float64
}

// NewProvider builds the provider registered under kind. "gemini" uses the
// Google GenAI SDK; every other kind is treated as OpenAI-compatible.
func NewProvider(ctx context.Context, kind string, config Config) (Provider, error) {
	switch strings.ToLower(kind) {
	case "gemini", "google":
		return NewGeminiProvider(ctx, config)
	case "":
		return nil, errors.New("no provider configured")
	default:
		p, err := NewOpenAIProvider(config)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize %s provider: %w", kind, err)
		}
		return p, nil
	}
}
