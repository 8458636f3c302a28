package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider implements the Provider interface for Google Gemini
type GeminiProvider struct {
	client *genai.Client
	config Config
}

// NewGeminiProvider creates a new Gemini provider. An empty API key is
// allowed here; Generate reports it through ValidateConfig.
func NewGeminiProvider(ctx context.Context, config Config) (*GeminiProvider, error) {
	// Set defaults
	if config.Model == "" {
		config.Model = "gemini-3-flash-preview"
	}
	if config.ProviderName == "" {
		config.ProviderName = "Gemini"
	}

	p := &GeminiProvider{config: config}
	if config.APIKey == "" {
		return p, nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	p.client = client
	return p, nil
}

// Generate implements one-shot generation
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if err := p.ValidateConfig(); err != nil {
		return "", err
	}

	genConfig := &genai.GenerateContentConfig{}
	if p.config.Temperature > 0 {
		genConfig.Temperature = genai.Ptr(float32(p.config.Temperature))
	}
	if p.config.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(p.config.MaxTokens)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.config.Model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return p.config.ProviderName
}

// Model returns the configured model
func (p *GeminiProvider) Model() string {
	return p.config.Model
}

// ValidateConfig validates the configuration
func (p *GeminiProvider) ValidateConfig() error {
	if p.config.APIKey == "" || p.client == nil {
		return errors.New("API key is required")
	}
	return nil
}
