// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ai

import (
	"context"
	"fmt"
	"strings"
)

// Options are the per-call generation parameters.
type Options struct {
	MaxTokens   int
	Temperature float32
}

// Generator is the minimal text-completion contract the pipeline depends on.
// Implementations are blocking: one call, one generated string.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// NewGenerator creates a generator of the given type with the provided
// configuration map. Supported types: "openai" (any OpenAI-compatible server,
// including llama-server and Ollama), "llamacpp" (llama.cpp native
// /completion endpoint), "mock" (deterministic, for development and tests).
func NewGenerator(generatorType string, config map[string]string) (Generator, error) {
	switch strings.ToLower(generatorType) {
	case "openai":
		return newOpenAIGenerator(config)
	case "llamacpp":
		return newLlamaCppGenerator(config)
	case "mock":
		return NewMockGenerator(nil), nil
	default:
		return nil, fmt.Errorf("unknown generator type: %s", generatorType)
	}
}
