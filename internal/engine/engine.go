// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch

// Package engine implements the document-to-answer pipeline: text
// extraction, chunking, map-reduce summarization and retrieval-light
// question answering over a serialized inference gateway, with optional
// streaming progress reporting. All state is per-request; nothing is
// persisted or shared across requests except the gateway lock.
package engine

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/report-agent/internal/ai"
	"github.com/report-agent/internal/parser"
	"github.com/report-agent/internal/processor"
)

// PreviewLength bounds the debug extraction preview.
const PreviewLength = 4000

// Engine ties the extractor, chunker and inference gateway into the
// request-level operations the HTTP layer exposes.
type Engine struct {
	chunker    *processor.Chunker
	gateway    *ai.Gateway
	summarizer *Summarizer
	qa         *QAEngine
}

// New wires an engine around a generator. The gateway created here is the
// sole shared mutable resource; everything else lives per request.
func New(gen ai.Generator, chunker *processor.Chunker) *Engine {
	gateway := ai.NewGateway(gen)
	return &Engine{
		chunker:    chunker,
		gateway:    gateway,
		summarizer: NewSummarizer(gateway, chunker),
		qa:         NewQAEngine(gateway),
	}
}

// DebugExtract returns a bounded preview of the extracted text and the total
// extracted length, without touching the model.
func (e *Engine) DebugExtract(filename string, data []byte) (string, int, error) {
	text, err := parser.Parse(filename, data)
	if err != nil {
		return "", 0, err
	}
	preview := text
	if len(preview) > PreviewLength {
		cut := PreviewLength
		// Back off to a rune boundary so the preview stays valid UTF-8
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut]
	}
	return preview, len(text), nil
}

// Summarize produces a short abstractive summary of the document.
func (e *Engine) Summarize(ctx context.Context, filename string, data []byte) (SummaryResult, error) {
	return e.summarize(ctx, filename, data, nil)
}

// Answer answers a question about the document's content.
func (e *Engine) Answer(ctx context.Context, filename string, data []byte, question string) (AnswerResult, error) {
	return e.answer(ctx, filename, data, question, nil)
}

// SummarizeStream runs summarization and streams progress events. The
// returned channel delivers an ordered sequence terminated by exactly one
// terminal event, after which it is closed.
func (e *Engine) SummarizeStream(ctx context.Context, filename string, data []byte) <-chan ProgressEvent {
	ch := make(chan ProgressEvent, 16)
	go func() {
		defer close(ch)
		rep := NewReporter(ctx, ch)
		res, err := e.summarize(ctx, filename, data, rep)
		switch {
		case err != nil:
			rep.emit(ProgressEvent{Type: EventError, Error: err.Error()})
		case res.Status == StatusEmptyDocument:
			rep.emit(ProgressEvent{Type: EventEmpty, Status: "No extractable text in document."})
		default:
			rep.emit(ProgressEvent{Type: EventSummary, Summary: res.Summary})
		}
	}()
	return ch
}

// AnswerStream runs question answering and streams progress events, with the
// same termination contract as SummarizeStream.
func (e *Engine) AnswerStream(ctx context.Context, filename string, data []byte, question string) <-chan ProgressEvent {
	ch := make(chan ProgressEvent, 16)
	go func() {
		defer close(ch)
		rep := NewReporter(ctx, ch)
		res, err := e.answer(ctx, filename, data, question, rep)
		switch {
		case err != nil:
			rep.emit(ProgressEvent{Type: EventError, Error: err.Error()})
		case res.Status == StatusEmptyDocument:
			rep.emit(ProgressEvent{Type: EventEmpty, Status: "No extractable text in document."})
		default:
			rep.emit(ProgressEvent{
				Type:     EventAnswer,
				Answer:   res.Answer,
				NotFound: res.Status == StatusNotFound,
			})
		}
	}()
	return ch
}

func (e *Engine) summarize(ctx context.Context, filename string, data []byte, rep *Reporter) (SummaryResult, error) {
	chunks, empty, err := e.prepare(filename, data, rep)
	if err != nil {
		return SummaryResult{}, err
	}
	if empty {
		return SummaryResult{Status: StatusEmptyDocument}, nil
	}

	summary, err := e.summarizer.Summarize(ctx, chunks, rep)
	if err != nil {
		return SummaryResult{}, err
	}
	return SummaryResult{Status: StatusOK, Summary: summary}, nil
}

func (e *Engine) answer(ctx context.Context, filename string, data []byte, question string, rep *Reporter) (AnswerResult, error) {
	chunks, empty, err := e.prepare(filename, data, rep)
	if err != nil {
		return AnswerResult{}, err
	}
	if empty {
		return AnswerResult{Status: StatusEmptyDocument}, nil
	}

	return e.qa.Answer(ctx, chunks, question, rep)
}

// prepare extracts and chunks the document, reporting the two leading phase
// transitions. empty is true when the document is valid but has no text.
func (e *Engine) prepare(filename string, data []byte, rep *Reporter) (chunks []processor.Chunk, empty bool, err error) {
	rep.Statusf("Extracting text...")
	text, err := parser.Parse(filename, data)
	if err != nil {
		return nil, false, fmt.Errorf("extraction failed: %w", err)
	}
	if text == "" {
		return nil, true, nil
	}

	rep.Statusf("Chunking text...")
	chunks = e.chunker.ChunkText(text)
	if len(chunks) == 0 {
		return nil, true, nil
	}
	return chunks, false, nil
}
