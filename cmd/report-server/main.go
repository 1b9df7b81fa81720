// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/report-agent/internal/ai"
	"github.com/report-agent/internal/config"
	"github.com/report-agent/internal/engine"
	"github.com/report-agent/internal/logger"
	"github.com/report-agent/internal/processor"
	"github.com/report-agent/internal/server"
)

var (
	configPath = flag.String("config", "", "Path to config file (default: ~/.report-agent/config.yaml)")
	port       = flag.Int("port", 0, "HTTP server port (overrides config)")
)

func main() {
	flag.Parse()

	// .env is optional; real config lives in the yaml file and REPORT_* env
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: failed to load .env: %v", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	lg, err := logger.Init(cfg.Log.File)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer lg.Close()

	gen, err := ai.NewGenerator(cfg.LLM.Provider, map[string]string{
		"base_url": cfg.LLM.BaseURL,
		"api_key":  cfg.LLM.APIKey,
		"model":    cfg.LLM.Model,
	})
	if err != nil {
		logger.Fatalf("failed to initialize generator: %v", err)
	}
	logger.Printf("Initialized %s generator (model: %s)", cfg.LLM.Provider, cfg.LLM.Model)

	chunker := processor.NewChunker(cfg.Chunker.MaxChars, cfg.Chunker.Overlap)
	eng := engine.New(gen, chunker)
	svc := server.NewService(eng, cfg.Upload.MaxBytes)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: svc.Routes(),
		// No WriteTimeout: streaming responses run as long as the model does
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Printf("Report server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("HTTP server failed: %v", err)
		}
	}()

	waitForShutdown(httpServer)
}

func waitForShutdown(httpServer *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Printf("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}

	logger.Printf("Shutdown complete")
}
