// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// openAIGenerator talks to any OpenAI-compatible chat completion endpoint.
// With base_url pointing at a local llama-server or Ollama instance this is
// the usual way to reach a locally hosted model.
type openAIGenerator struct {
	client *openai.Client
	model  string
}

func newOpenAIGenerator(config map[string]string) (Generator, error) {
	model := config["model"]
	if model == "" {
		return nil, fmt.Errorf("openai generator requires a model name")
	}

	clientConfig := openai.DefaultConfig(config["api_key"])
	if baseURL := config["base_url"]; baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &openAIGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

func (g *openAIGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
