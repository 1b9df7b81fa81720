// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package engine

// Status classifies a terminal pipeline outcome. Empty documents and
// unanswerable questions are successful outcomes, not errors.
type Status string

const (
	StatusOK            Status = "ok"
	StatusEmptyDocument Status = "empty_document"
	StatusNotFound      Status = "not_found"
)

// SummaryResult is the terminal outcome of a summarization request.
type SummaryResult struct {
	Status  Status `json:"status"`
	Summary string `json:"summary,omitempty"`
}

// AnswerResult is the terminal outcome of a question-answering request.
// When Status is StatusNotFound, Answer carries the sentinel sentence.
type AnswerResult struct {
	Status Status `json:"status"`
	Answer string `json:"answer,omitempty"`
}
