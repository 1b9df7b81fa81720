// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/report-agent/internal/engine"
	"github.com/report-agent/internal/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development
		// In production, you should validate the origin
		return true
	},
}

const (
	wsWriteTimeout   = 10 * time.Second
	wsControlTimeout = 30 * time.Second
)

var (
	errBadControlFrame  = errors.New("expected a JSON control frame")
	errBadDocumentFrame = errors.New("expected a binary document frame")
	errMissingFilename  = errors.New("control frame missing filename")
)

// analyzeRequest is the JSON control frame that opens an analysis session.
// Op is "summary" or "qa"; Question is required for "qa".
type analyzeRequest struct {
	Op       string `json:"op"`
	Filename string `json:"filename"`
	Question string `json:"question,omitempty"`
}

// HandleAnalyzeWS handles GET /ws/analyze. The client sends one JSON text
// frame describing the job, then one binary frame carrying the document
// bytes. Progress events flow back as JSON text frames; the connection
// closes after the terminal event.
func (s *Service) HandleAnalyzeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(s.maxUploadBytes)

	req, data, err := readAnalyzeFrames(conn)
	if err != nil {
		writeWSError(conn, err.Error())
		return
	}

	logger.Printf("ws analyze: op=%s file=%s (%d bytes)", req.Op, req.Filename, len(data))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Surface client disconnects as context cancellation so the engine
	// stops issuing model calls for a connection nobody is reading.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	var events <-chan engine.ProgressEvent
	switch req.Op {
	case "summary":
		events = s.engine.SummarizeStream(ctx, req.Filename, data)
	case "qa":
		if strings.TrimSpace(req.Question) == "" {
			writeWSError(conn, "qa requires a question")
			return
		}
		events = s.engine.AnswerStream(ctx, req.Filename, data, req.Question)
	default:
		writeWSError(conn, "unknown op: "+req.Op)
		return
	}

	for ev := range events {
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(ev); err != nil {
			cancel()
			// Drain remaining events so the engine goroutine can exit
			for range events {
			}
			return
		}
	}

	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
}

// readAnalyzeFrames reads the control frame and the document frame that open
// every session, rejecting frames of the wrong kind.
func readAnalyzeFrames(conn *websocket.Conn) (analyzeRequest, []byte, error) {
	var req analyzeRequest

	conn.SetReadDeadline(time.Now().Add(wsControlTimeout))
	if err := conn.ReadJSON(&req); err != nil {
		return req, nil, errBadControlFrame
	}
	if req.Filename == "" {
		return req, nil, errMissingFilename
	}

	conn.SetReadDeadline(time.Now().Add(wsControlTimeout))
	msgType, data, err := conn.ReadMessage()
	if err != nil || msgType != websocket.BinaryMessage {
		return req, nil, errBadDocumentFrame
	}

	conn.SetReadDeadline(time.Time{})
	return req, data, nil
}

func writeWSError(conn *websocket.Conn, msg string) {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	conn.WriteJSON(engine.ProgressEvent{Type: engine.EventError, Error: msg})
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, msg))
}
