// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch

// Package server exposes the report analysis engine over HTTP: blocking
// JSON endpoints, NDJSON streaming variants, a WebSocket analysis channel,
// an SSE log tail, and the embedded web page.
package server

import (
	"net/http"

	"github.com/report-agent/internal/engine"
	"github.com/report-agent/internal/server/middleware"
)

// Service holds the analysis engine plus the request limits every handler
// shares.
type Service struct {
	engine         *engine.Engine
	maxUploadBytes int64
}

// NewService wires the engine into the HTTP layer.
func NewService(eng *engine.Engine, maxUploadBytes int64) *Service {
	return &Service{
		engine:         eng,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the full handler tree wrapped in traffic logging.
func (s *Service) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/summary", s.HandleSummary)
	mux.HandleFunc("/api/v1/summary/stream", s.HandleSummaryStream)
	mux.HandleFunc("/api/v1/qa", s.HandleQA)
	mux.HandleFunc("/api/v1/qa/stream", s.HandleQAStream)
	mux.HandleFunc("/api/v1/debug_text", s.HandleDebugText)
	mux.HandleFunc("/api/v1/health", HandleHealth)
	mux.HandleFunc("/api/v1/logs/stream", HandleLogStream)
	mux.HandleFunc("/ws/analyze", s.HandleAnalyzeWS)
	mux.HandleFunc("/", HandleWebUI)

	return middleware.TrafficLogger(mux)
}
