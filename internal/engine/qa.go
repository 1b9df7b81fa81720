// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/report-agent/internal/ai"
	"github.com/report-agent/internal/processor"
)

const (
	chunkAnswerMaxTokens = 200
	answerMaxTokens      = 300
)

// QAEngine answers a question against the full document. Small documents
// are answered in one call; larger ones are scanned chunk by chunk for
// local answers which a final call synthesizes. The never-fabricate policy
// is a prompt-level contract, not independently verified.
type QAEngine struct {
	gateway *ai.Gateway
}

// NewQAEngine creates a QA engine over the shared inference gateway.
func NewQAEngine(gateway *ai.Gateway) *QAEngine {
	return &QAEngine{gateway: gateway}
}

// Answer resolves the question against the chunk sequence. It returns
// StatusNotFound when no chunk yields a usable local answer, or when the
// synthesis step concludes the evidence is contradictory or insufficient.
func (q *QAEngine) Answer(ctx context.Context, chunks []processor.Chunk, question string, rep *Reporter) (AnswerResult, error) {
	// Small document: answer directly against the whole text.
	if len(chunks) == 1 {
		rep.Statusf("Answering question...")
		resp, err := q.gateway.Generate(ctx, ai.QAPrompt(chunks[0].Text, question), ai.Options{
			MaxTokens:   answerMaxTokens,
			Temperature: temperature,
		})
		if err != nil {
			return AnswerResult{}, err
		}
		return q.classify(resp), nil
	}

	// Scan each chunk for a local answer; keep the chunk index so the
	// synthesis input is deterministic.
	var notes []string
	for i, chunk := range chunks {
		rep.Statusf("Scanning block %d/%d...", i+1, len(chunks))
		resp, err := q.gateway.Generate(ctx, ai.ChunkAnswerPrompt(chunk.Text, question), ai.Options{
			MaxTokens:   chunkAnswerMaxTokens,
			Temperature: temperature,
		})
		if err != nil {
			return AnswerResult{}, err
		}
		if ai.IsNoAnswer(resp) || ai.IsNotFound(resp) {
			continue
		}
		notes = append(notes, fmt.Sprintf("[Excerpt %d] %s", chunk.Index+1, resp))
	}

	// No chunk had anything: decline without a synthesis call.
	if len(notes) == 0 {
		return AnswerResult{Status: StatusNotFound, Answer: ai.NotFoundSentinel}, nil
	}

	rep.Statusf("Combining answers...")
	resp, err := q.gateway.Generate(ctx, ai.SynthesisPrompt(strings.Join(notes, "\n"), question), ai.Options{
		MaxTokens:   answerMaxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return AnswerResult{}, err
	}
	return q.classify(resp), nil
}

func (q *QAEngine) classify(resp string) AnswerResult {
	if ai.IsNotFound(resp) || strings.TrimSpace(resp) == "" {
		return AnswerResult{Status: StatusNotFound, Answer: ai.NotFoundSentinel}
	}
	return AnswerResult{Status: StatusOK, Answer: resp}
}
