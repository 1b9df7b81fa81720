// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package engine

import (
	"context"
	"fmt"
)

// EventType tags a progress event. Everything except EventStatus is
// terminal: it carries the final result (or error) and ends the stream.
type EventType string

const (
	EventStatus  EventType = "status"
	EventSummary EventType = "summary"
	EventAnswer  EventType = "answer"
	EventEmpty   EventType = "empty"
	EventError   EventType = "error"
)

// ProgressEvent is one entry in the ordered status stream emitted while a
// long-running request is processed. The transport layer serializes it; the
// engine never formats wire bytes.
type ProgressEvent struct {
	Type     EventType `json:"type"`
	Status   string    `json:"status,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Answer   string    `json:"answer,omitempty"`
	NotFound bool      `json:"not_found,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Terminal reports whether this event ends the stream.
func (e ProgressEvent) Terminal() bool {
	return e.Type != EventStatus
}

// Reporter emits ordered progress events onto a channel, one per pipeline
// phase transition. Events are never buffered beyond the channel; the
// consumer flushes each as it arrives. A nil Reporter is a no-op, which is
// how the non-streaming entry points run the same pipeline code.
type Reporter struct {
	ctx context.Context
	ch  chan<- ProgressEvent
}

// NewReporter creates a reporter bound to the request context. Sends are
// abandoned once the context is cancelled so a slow or disconnected consumer
// never wedges the pipeline.
func NewReporter(ctx context.Context, ch chan<- ProgressEvent) *Reporter {
	return &Reporter{ctx: ctx, ch: ch}
}

// Statusf emits a non-terminal status event.
func (r *Reporter) Statusf(format string, args ...interface{}) {
	if r == nil {
		return
	}
	r.emit(ProgressEvent{Type: EventStatus, Status: fmt.Sprintf(format, args...)})
}

// emit sends one event, dropping it if the request context is already gone.
func (r *Reporter) emit(ev ProgressEvent) {
	if r == nil || r.ch == nil {
		return
	}
	select {
	case r.ch <- ev:
	case <-r.ctx.Done():
	}
}
