// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package engine

import (
	"context"
	"strings"

	"github.com/report-agent/internal/ai"
	"github.com/report-agent/internal/processor"
)

// Generation budgets, sized for a ~4k-token model context window.
const (
	mapMaxTokens   = 250
	finalMaxTokens = 400
	temperature    = 0.2

	// Backstop against a model whose partial summaries fail to shrink the
	// text; each reduce level normally shrinks total volume strictly.
	maxReduceLevels = 8
)

// Summarizer produces a single 5-10 sentence summary of arbitrarily long
// input through map-reduce: per-chunk summaries (map) are concatenated in
// chunk-index order and recursively re-summarized (reduce) until the
// remainder fits a single model call.
type Summarizer struct {
	gateway *ai.Gateway
	chunker *processor.Chunker
}

// NewSummarizer creates a summarizer over the shared inference gateway.
func NewSummarizer(gateway *ai.Gateway, chunker *processor.Chunker) *Summarizer {
	return &Summarizer{gateway: gateway, chunker: chunker}
}

// Summarize runs the map-reduce loop over the given chunks. A single-chunk
// document skips map-reduce: one direct summarization call. Map calls are
// issued sequentially; the gateway serializes model access system-wide.
func (s *Summarizer) Summarize(ctx context.Context, chunks []processor.Chunk, rep *Reporter) (string, error) {
	if len(chunks) == 1 {
		rep.Statusf("Summarizing document...")
		raw, err := s.gateway.Generate(ctx, ai.SummaryPrompt(chunks[0].Text), ai.Options{
			MaxTokens:   finalMaxTokens,
			Temperature: temperature,
		})
		if err != nil {
			return "", err
		}
		return sanitizeSummary(raw), nil
	}

	level := 0
	for {
		// MAP: summarize each chunk independently, preserving index order
		// for a deterministic reduce.
		partials := make([]string, 0, len(chunks))
		for i, chunk := range chunks {
			rep.Statusf("Summarizing block %d/%d...", i+1, len(chunks))
			partial, err := s.gateway.Generate(ctx, ai.SummaryPrompt(chunk.Text), ai.Options{
				MaxTokens:   mapMaxTokens,
				Temperature: temperature,
			})
			if err != nil {
				return "", err
			}
			if partial != "" {
				partials = append(partials, partial)
			}
		}

		// REDUCE: if the concatenation fits one call, produce the final
		// summary; otherwise re-chunk the partials and go around again.
		combined := strings.Join(partials, "\n")
		if len(combined) <= s.chunker.ChunkSize() || level >= maxReduceLevels {
			rep.Statusf("Producing final summary...")
			raw, err := s.gateway.Generate(ctx, ai.SummaryPrompt(combined), ai.Options{
				MaxTokens:   finalMaxTokens,
				Temperature: temperature,
			})
			if err != nil {
				return "", err
			}
			return sanitizeSummary(raw), nil
		}

		chunks = s.chunker.ChunkText(combined)
		level++
	}
}

// sanitizeSummary flattens the model output into prose: leading list
// numbering is stripped and lines are joined. The 5-10 sentence target is a
// prompt instruction only; length violations pass through uncorrected.
func sanitizeSummary(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		stripped := stripLeadingNumbering(strings.TrimSpace(line))
		if stripped != "" {
			kept = append(kept, stripped)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

// stripLeadingNumbering removes patterns like "1." or "12)" at line start.
func stripLeadingNumbering(s string) string {
	i := 0
	for i < len(s) && i < 3 && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		return strings.TrimLeft(s[i+1:], " ")
	}
	return s
}
