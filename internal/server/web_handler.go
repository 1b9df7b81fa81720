// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/report-agent/internal/logger"
)

//go:embed templates/*
var templatesFS embed.FS

// HandleWebUI serves the single-page upload interface
func HandleWebUI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		logger.Errorf("failed to parse index template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, nil); err != nil {
		logger.Errorf("failed to render index template: %v", err)
	}
}
