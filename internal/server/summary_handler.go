// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/report-agent/internal/engine"
	"github.com/report-agent/internal/logger"
)

// HandleSummary handles POST /api/v1/summary requests. It blocks until the
// full map-reduce pass completes and returns the summary as one JSON body.
func (s *Service) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	filename, data, ok := readUpload(w, r, s.maxUploadBytes)
	if !ok {
		return
	}

	jobID := uuid.New().String()
	logger.Printf("summary job %s started: %s (%d bytes)", jobID, filename, len(data))

	result, err := s.engine.Summarize(r.Context(), filename, data)
	if err != nil {
		logger.Errorf("summary job %s failed: %v", jobID, err)
		writeError(w, statusForError(err), "summarization failed: %v", err)
		return
	}

	logger.Printf("summary job %s finished: status=%s", jobID, result.Status)
	writeJSON(w, http.StatusOK, result)
}

// HandleSummaryStream handles POST /api/v1/summary/stream requests. Progress
// events are written as newline-delimited JSON, one object per line, flushed
// as they occur. The last line is always a terminal event.
func (s *Service) HandleSummaryStream(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	filename, data, ok := readUpload(w, r, s.maxUploadBytes)
	if !ok {
		return
	}

	jobID := uuid.New().String()
	logger.Printf("summary stream %s started: %s (%d bytes)", jobID, filename, len(data))

	events := s.engine.SummarizeStream(r.Context(), filename, data)
	streamNDJSON(w, events)
	logger.Printf("summary stream %s finished", jobID)
}

// streamNDJSON drains a progress channel onto the wire as NDJSON. Encoding
// happens per event so slow model calls still show the client each phase as
// it starts.
func streamNDJSON(w http.ResponseWriter, events <-chan engine.ProgressEvent) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)

	for ev := range events {
		if err := enc.Encode(ev); err != nil {
			// Client disconnected; the engine sees the context
			// cancellation and winds down on its own.
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}
