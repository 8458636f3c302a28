package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the Provider interface for OpenAI and
// OpenAI-compatible endpoints (Ollama, LM Studio, proxies)
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	// Allow empty API key - validation happens at runtime
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	client := openai.NewClientWithConfig(clientConfig)

	// Set defaults only if not provided
	if config.Model == "" {
		config.Model = "gpt-4o-mini"
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 1024
	}
	if config.Temperature == 0 {
		config.Temperature = 0.7
	}
	if config.ProviderName == "" {
		config.ProviderName = "OpenAI Compatible"
	}

	return &OpenAIProvider{
		client: client,
		config: config,
	}, nil
}

// Generate implements one-shot generation as a single-message chat completion
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   p.config.MaxTokens,
		Temperature: float32(p.config.Temperature),
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.config.ProviderName
}

// Model returns the configured model
func (p *OpenAIProvider) Model() string {
	return p.config.Model
}

// ValidateConfig validates the configuration. Local endpoints need no key.
func (p *OpenAIProvider) ValidateConfig() error {
	if p.config.APIKey == "" && p.config.BaseURL == "" {
		return errors.New("API key is required")
	}
	return nil
}
