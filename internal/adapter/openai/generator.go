package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
)

const DefaultModel = "gpt-4o-mini"

var ErrEmptyResponse = errors.New("openai returned no choices")

// Generator calls any OpenAI-compatible chat completion endpoint.
type Generator struct {
	client *openai.Client
	model  string
}

func NewGenerator(apiKey, model, baseURL string) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key not configured")
	}
	if model == "" {
		model = DefaultModel
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Generator{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (g *Generator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	slog.DebugContext(ctx, "generating content", "model", g.model, "length", len(prompt), "temperature", temperature)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
