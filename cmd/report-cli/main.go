// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch

// report-cli drives a running report server from the command line: it
// uploads a document and prints progress events as they arrive, over the
// WebSocket channel by default or plain HTTP with -http.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

var (
	serverAddr = flag.String("server", "localhost:8080", "Report server address")
	question   = flag.String("question", "", "Ask a question instead of summarizing")
	useHTTP    = flag.Bool("http", false, "Use the blocking HTTP API instead of the WebSocket stream")
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: report-cli [flags] <document>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", path, err)
		os.Exit(1)
	}

	if *useHTTP {
		if err := runHTTP(filepath.Base(path), data); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runWebSocket(filepath.Base(path), data); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// analyzeRequest mirrors the server's control frame.
type analyzeRequest struct {
	Op       string `json:"op"`
	Filename string `json:"filename"`
	Question string `json:"question,omitempty"`
}

// progressEvent mirrors the server's event frame.
type progressEvent struct {
	Type     string `json:"type"`
	Status   string `json:"status,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Answer   string `json:"answer,omitempty"`
	NotFound bool   `json:"not_found,omitempty"`
	Error    string `json:"error,omitempty"`
}

func runWebSocket(filename string, data []byte) error {
	wsURL := "ws://" + *serverAddr + "/ws/analyze"

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}
	defer conn.Close()

	req := analyzeRequest{Op: "summary", Filename: filename}
	if *question != "" {
		req.Op = "qa"
		req.Question = *question
	}

	if err := conn.WriteJSON(req); err != nil {
		return fmt.Errorf("failed to send control frame: %w", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return fmt.Errorf("failed to send document: %w", err)
	}

	for {
		var ev progressEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("stream ended unexpectedly: %w", err)
		}
		printEvent(ev)
	}
}

func printEvent(ev progressEvent) {
	switch ev.Type {
	case "status":
		fmt.Printf("  %s\n", ev.Status)
	case "summary":
		fmt.Printf("\n%s\n", ev.Summary)
	case "answer":
		fmt.Printf("\n%s\n", ev.Answer)
	case "empty":
		fmt.Printf("\n%s\n", ev.Status)
	case "error":
		fmt.Fprintf(os.Stderr, "error: %s\n", ev.Error)
	}
}

func runHTTP(filename string, data []byte) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := fw.Write(data); err != nil {
		return err
	}

	endpoint := "http://" + *serverAddr + "/api/v1/summary"
	if *question != "" {
		if err := mw.WriteField("question", *question); err != nil {
			return err
		}
		endpoint = "http://" + *serverAddr + "/api/v1/qa"
	}
	if err := mw.Close(); err != nil {
		return err
	}

	// Long timeout: the server holds the request for the whole map-reduce pass
	client := &http.Client{Timeout: 30 * time.Minute}
	resp, err := client.Post(endpoint, mw.FormDataContentType(), &buf)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("bad response body: %w", err)
	}
	if s, ok := result["summary"].(string); ok && s != "" {
		fmt.Println(s)
	} else if a, ok := result["answer"].(string); ok && a != "" {
		fmt.Println(a)
	} else {
		fmt.Println(result["status"])
	}
	return nil
}
