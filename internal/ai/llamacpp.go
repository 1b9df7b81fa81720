// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// llamaCppGenerator calls the llama.cpp server's native /completion endpoint.
// Used when the model is served by `llama-server` without the OpenAI
// compatibility layer.
type llamaCppGenerator struct {
	baseURL string
	client  *http.Client
}

type llamaCppRequest struct {
	Prompt      string   `json:"prompt"`
	NPredict    int      `json:"n_predict"`
	Temperature float32  `json:"temperature"`
	TopP        float32  `json:"top_p"`
	Stop        []string `json:"stop"`
}

type llamaCppResponse struct {
	Content string `json:"content"`
}

func newLlamaCppGenerator(config map[string]string) (Generator, error) {
	baseURL := config["base_url"]
	if baseURL == "" {
		baseURL = "http://localhost:8081"
	}
	return &llamaCppGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Generation on CPU can take minutes for long prompts
		client: &http.Client{Timeout: 10 * time.Minute},
	}, nil
}

func (g *llamaCppGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	payload := llamaCppRequest{
		Prompt:      prompt,
		NPredict:    opts.MaxTokens,
		Temperature: opts.Temperature,
		TopP:        0.95,
		Stop:        []string{"</s>", "###"},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/completion", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("llama.cpp server error: %d - %s", resp.StatusCode, string(body))
	}

	var out llamaCppResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	return out.Content, nil
}
