// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"fmt"
	"net/http"

	"github.com/report-agent/internal/logger"
)

// HandleLogStream streams logs via Server-Sent Events (SSE)
func HandleLogStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	loggerInstance := logger.GetDefault()
	clientChan := loggerInstance.Subscribe()
	if clientChan == nil {
		http.Error(w, "Log stream unavailable - logger may be closed", http.StatusInternalServerError)
		return
	}
	defer loggerInstance.Unsubscribe(clientChan)

	fmt.Fprintf(w, "data: Connected to log stream\n\n")
	flusher.Flush()

	for {
		select {
		case logLine, ok := <-clientChan:
			if !ok {
				fmt.Fprintf(w, "data: Log stream closed\n\n")
				flusher.Flush()
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", logLine); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
