// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ai

import (
	"context"
	"fmt"
	"sync"
)

// MockGenerator produces deterministic responses for development and tests.
// It records every prompt so tests can assert on call counts and ordering.
type MockGenerator struct {
	mu      sync.Mutex
	prompts []string
	respond func(prompt string) (string, error)
}

// NewMockGenerator creates a mock generator. respond may be nil, in which
// case a short canned completion is returned for every prompt.
func NewMockGenerator(respond func(prompt string) (string, error)) *MockGenerator {
	return &MockGenerator{respond: respond}
}

// Generate records the prompt and returns the scripted response.
func (m *MockGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	call := len(m.prompts)
	m.mu.Unlock()

	if m.respond != nil {
		return m.respond(prompt)
	}
	return fmt.Sprintf("Mock completion %d.", call), nil
}

// Prompts returns a copy of all prompts seen so far, in call order.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// CallCount returns the number of generation calls issued.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
