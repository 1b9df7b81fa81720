// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"net/http"
)

// debugTextResponse carries a bounded preview of what the extractor saw.
type debugTextResponse struct {
	Filename    string `json:"filename"`
	TotalLength int    `json:"total_length"`
	Preview     string `json:"preview"`
}

// HandleDebugText handles POST /api/v1/debug_text requests. It runs only the
// extraction stage and returns the first part of the recovered text, which is
// the fastest way to tell a bad summary from a bad scan.
func (s *Service) HandleDebugText(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	filename, data, ok := readUpload(w, r, s.maxUploadBytes)
	if !ok {
		return
	}

	preview, total, err := s.engine.DebugExtract(filename, data)
	if err != nil {
		writeError(w, statusForError(err), "extraction failed: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, debugTextResponse{
		Filename:    filename,
		TotalLength: total,
		Preview:     preview,
	})
}
