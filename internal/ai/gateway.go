// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInference wraps any provider-side generation failure (model not loaded,
// context overflow, transport error). The gateway never retries; retry
// policy, if any, belongs to the caller.
var ErrInference = errors.New("inference failed")

// Gateway serializes all model calls system-wide. The underlying model is a
// single shared instance that is not assumed to support concurrent
// generation, so at most one call is in flight at a time.
type Gateway struct {
	mu  sync.Mutex
	gen Generator
}

// NewGateway wraps a generator with the system-wide serialization lock.
func NewGateway(gen Generator) *Gateway {
	return &Gateway{gen: gen}
}

// Generate issues one blocking generation call. The context is consulted
// before the lock is taken and again after acquiring it, so a cancelled
// request queued behind a long-running call never reaches the model.
func (g *Gateway) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := g.gen.Generate(ctx, prompt, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrInference, err)
	}

	return strings.TrimSpace(out), nil
}
