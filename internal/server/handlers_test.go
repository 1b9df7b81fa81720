// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/report-agent/internal/ai"
	"github.com/report-agent/internal/engine"
	"github.com/report-agent/internal/processor"
)

func newTestService(t *testing.T, respond func(prompt string) (string, error)) *Service {
	t.Helper()
	gen := ai.NewMockGenerator(respond)
	eng := engine.New(gen, processor.NewChunker(processor.DefaultChunkSize, processor.DefaultChunkOverlap))
	return NewService(eng, 32<<20)
}

// multipartBody builds a multipart form with a file part and optional extra
// string fields, returning the body and its content type.
func multipartBody(t *testing.T, filename string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField(%s): %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHandleHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	HandleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "up" {
		t.Errorf("expected status up, got %q", body["status"])
	}
}

func TestHandleHealthRejectsPost(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	HandleHealth(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHandleSummary(t *testing.T) {
	svc := newTestService(t, func(string) (string, error) {
		return "The quarter went fine.", nil
	})

	body, ctype := multipartBody(t, "report.txt", []byte("Revenue grew ten percent this quarter."), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summary", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleSummary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res engine.SummaryResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if res.Status != engine.StatusOK {
		t.Errorf("expected status ok, got %q", res.Status)
	}
	if res.Summary != "The quarter went fine." {
		t.Errorf("unexpected summary: %q", res.Summary)
	}
}

func TestHandleSummaryEmptyDocument(t *testing.T) {
	svc := newTestService(t, nil)

	body, ctype := multipartBody(t, "empty.txt", []byte("   \n\t  "), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summary", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleSummary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var res engine.SummaryResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if res.Status != engine.StatusEmptyDocument {
		t.Errorf("expected empty_document, got %q", res.Status)
	}
}

func TestHandleSummaryUnsupportedType(t *testing.T) {
	svc := newTestService(t, nil)

	body, ctype := multipartBody(t, "archive.zip", []byte("PK\x03\x04"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summary", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleSummary(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleSummaryMissingFile(t *testing.T) {
	svc := newTestService(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("question", "anything")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/summary", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	svc.HandleSummary(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleSummaryRejectsGet(t *testing.T) {
	svc := newTestService(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	rec := httptest.NewRecorder()
	svc.HandleSummary(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHandleSummaryInferenceFailure(t *testing.T) {
	svc := newTestService(t, func(string) (string, error) {
		return "", io.ErrUnexpectedEOF
	})

	body, ctype := multipartBody(t, "report.txt", []byte("Some report text."), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summary", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleSummary(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleSummaryStream(t *testing.T) {
	svc := newTestService(t, func(string) (string, error) {
		return "Streamed summary.", nil
	})

	body, ctype := multipartBody(t, "report.txt", []byte("Revenue grew ten percent this quarter."), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summary/stream", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleSummaryStream(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/x-ndjson" {
		t.Errorf("expected NDJSON content type, got %q", got)
	}

	var events []engine.ProgressEvent
	scanner := bufio.NewScanner(rec.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ev engine.ProgressEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("bad NDJSON line %q: %v", line, err)
		}
		events = append(events, ev)
	}
	if len(events) < 2 {
		t.Fatalf("expected multiple events, got %d", len(events))
	}
	for _, ev := range events[:len(events)-1] {
		if ev.Terminal() {
			t.Errorf("non-final event is terminal: %+v", ev)
		}
	}
	last := events[len(events)-1]
	if last.Type != engine.EventSummary || last.Summary != "Streamed summary." {
		t.Errorf("unexpected terminal event: %+v", last)
	}
}

func TestHandleQA(t *testing.T) {
	svc := newTestService(t, func(string) (string, error) {
		return "It was ten percent.", nil
	})

	fields := map[string]string{"question": "How much did revenue grow?"}
	body, ctype := multipartBody(t, "report.txt", []byte("Revenue grew ten percent this quarter."), fields)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/qa", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleQA(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res engine.AnswerResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if res.Status != engine.StatusOK {
		t.Errorf("expected status ok, got %q", res.Status)
	}
	if res.Answer != "It was ten percent." {
		t.Errorf("unexpected answer: %q", res.Answer)
	}
}

func TestHandleQAMissingQuestion(t *testing.T) {
	svc := newTestService(t, nil)

	body, ctype := multipartBody(t, "report.txt", []byte("Some text."), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/qa", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleQA(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleQANotFound(t *testing.T) {
	svc := newTestService(t, func(string) (string, error) {
		return ai.NotFoundSentinel, nil
	})

	fields := map[string]string{"question": "What is the CEO's shoe size?"}
	body, ctype := multipartBody(t, "report.txt", []byte("Revenue grew ten percent this quarter."), fields)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/qa", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleQA(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var res engine.AnswerResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if res.Status != engine.StatusNotFound {
		t.Errorf("expected not_found, got %q", res.Status)
	}
	if res.Answer != ai.NotFoundSentinel {
		t.Errorf("expected sentinel answer, got %q", res.Answer)
	}
}

func TestHandleQAStream(t *testing.T) {
	svc := newTestService(t, func(string) (string, error) {
		return "Ten percent.", nil
	})

	fields := map[string]string{"question": "How much?"}
	body, ctype := multipartBody(t, "report.txt", []byte("Revenue grew ten percent this quarter."), fields)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/qa/stream", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleQAStream(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	var last engine.ProgressEvent
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &last); err != nil {
		t.Fatalf("decode terminal event: %v", err)
	}
	if last.Type != engine.EventAnswer || last.Answer != "Ten percent." {
		t.Errorf("unexpected terminal event: %+v", last)
	}
}

func TestHandleDebugText(t *testing.T) {
	svc := newTestService(t, nil)

	long := strings.Repeat("All work and no play makes a dull report. ", 200)
	body, ctype := multipartBody(t, "report.txt", []byte(long), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/debug_text", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleDebugText(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res debugTextResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if res.TotalLength != len(strings.TrimSpace(long)) {
		t.Errorf("expected total length %d, got %d", len(strings.TrimSpace(long)), res.TotalLength)
	}
	if len(res.Preview) != engine.PreviewLength {
		t.Errorf("expected preview capped at %d, got %d", engine.PreviewLength, len(res.Preview))
	}
}

func TestHandleUploadTooLarge(t *testing.T) {
	gen := ai.NewMockGenerator(nil)
	eng := engine.New(gen, processor.NewChunker(processor.DefaultChunkSize, processor.DefaultChunkOverlap))
	svc := NewService(eng, 64) // tiny cap

	body, ctype := multipartBody(t, "report.txt", bytes.Repeat([]byte("x"), 4096), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summary", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleSummary(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestHandleUploadMalformedMultipart(t *testing.T) {
	svc := newTestService(t, nil)

	// Multipart content type with a body that is not multipart at all
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summary",
		strings.NewReader("this is not a multipart body"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=deadbeef")
	rec := httptest.NewRecorder()
	svc.HandleSummary(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed multipart, got %d", rec.Code)
	}
}

func TestRoutesServesIndex(t *testing.T) {
	svc := newTestService(t, nil)
	srv := httptest.NewServer(svc.Routes())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	page, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(page), "Report Agent") {
		t.Errorf("index page missing title")
	}
}
