package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ChatModel produces a single text completion for a prompt.
type ChatModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// GeminiChatClient implements ChatModel using Google's Gemini models
type GeminiChatClient struct {
	client *genai.Client
	model  string
}

func NewGeminiChatClient(apiKey, model string) (*GeminiChatClient, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiChatClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.4)
	m.SetMaxOutputTokens(512)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

func (c *GeminiChatClient) Close() error {
	return c.client.Close()
}

// NewChatModel picks a provider by name. An empty key yields (nil, nil) so
// the caller can run with its fallback answers.
func NewChatModel(provider, apiKey, model string) (ChatModel, error) {
	if apiKey == "" {
		return nil, nil
	}
	switch strings.ToLower(provider) {
	case "", "gemini":
		client, err := NewGeminiChatClient(apiKey, model)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "openai":
		return NewOpenAIChatClient(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unsupported chat provider: %s. Use 'gemini' or 'openai'", provider)
	}
}
