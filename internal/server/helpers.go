// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/report-agent/internal/ai"
	"github.com/report-agent/internal/parser"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, format string, args ...interface{}) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}

// statusForError maps pipeline errors onto HTTP status codes. Extraction
// problems are the client's document; inference problems are the model
// behind us.
func statusForError(err error) int {
	switch {
	case errors.Is(err, parser.ErrUnsupported), errors.Is(err, parser.ErrUnreadable):
		return http.StatusBadRequest
	case errors.Is(err, ai.ErrInference):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled):
		// Client is gone; the status is never seen but keeps logs honest
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// readUpload extracts the uploaded document from a multipart form. The
// request body is capped at maxBytes before parsing.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (filename string, data []byte, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds %d bytes", maxBytes)
		} else {
			writeError(w, http.StatusBadRequest, "malformed multipart form: %v", err)
		}
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field: %v", err)
		return "", nil, false
	}
	defer file.Close()

	if !parser.IsSupportedFile(header.Filename) {
		writeError(w, http.StatusBadRequest, "unsupported file type: %s", header.Filename)
		return "", nil, false
	}

	data, err = io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload: %v", err)
		return "", nil, false
	}

	return header.Filename, data, true
}

// requirePost rejects anything but POST
func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}
