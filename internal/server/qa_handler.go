// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/report-agent/internal/logger"
)

// HandleQA handles POST /api/v1/qa requests. The question rides in the same
// multipart form as the document, under the "question" field.
func (s *Service) HandleQA(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	filename, data, ok := readUpload(w, r, s.maxUploadBytes)
	if !ok {
		return
	}

	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		writeError(w, http.StatusBadRequest, "missing question field")
		return
	}

	jobID := uuid.New().String()
	logger.Printf("qa job %s started: %s, question=%q", jobID, filename, question)

	result, err := s.engine.Answer(r.Context(), filename, data, question)
	if err != nil {
		logger.Errorf("qa job %s failed: %v", jobID, err)
		writeError(w, statusForError(err), "question answering failed: %v", err)
		return
	}

	logger.Printf("qa job %s finished: status=%s", jobID, result.Status)
	writeJSON(w, http.StatusOK, result)
}

// HandleQAStream handles POST /api/v1/qa/stream requests, streaming progress
// as NDJSON with the same framing as the summary stream.
func (s *Service) HandleQAStream(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	filename, data, ok := readUpload(w, r, s.maxUploadBytes)
	if !ok {
		return
	}

	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		writeError(w, http.StatusBadRequest, "missing question field")
		return
	}

	jobID := uuid.New().String()
	logger.Printf("qa stream %s started: %s, question=%q", jobID, filename, question)

	events := s.engine.AnswerStream(r.Context(), filename, data, question)
	streamNDJSON(w, events)
	logger.Printf("qa stream %s finished", jobID)
}
