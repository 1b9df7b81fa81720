// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ai

import (
	"strings"
	"testing"
)

func TestSummaryPrompt(t *testing.T) {
	prompt := SummaryPrompt("Quarterly revenue rose.")
	if !strings.Contains(prompt, "Quarterly revenue rose.") {
		t.Errorf("Prompt missing report text")
	}
	if !strings.Contains(prompt, "5-10 sentences") {
		t.Errorf("Prompt missing length instruction")
	}
}

func TestQAPrompt(t *testing.T) {
	prompt := QAPrompt("Revenue grew 10%.", "What was net income?")
	if !strings.Contains(prompt, "Revenue grew 10%.") {
		t.Errorf("Prompt missing report text")
	}
	if !strings.Contains(prompt, "What was net income?") {
		t.Errorf("Prompt missing question")
	}
	if !strings.Contains(prompt, NotFoundSentinel) {
		t.Errorf("Prompt missing not-found instruction")
	}
}

func TestChunkAnswerPrompt(t *testing.T) {
	prompt := ChunkAnswerPrompt("excerpt body", "the question")
	if !strings.Contains(prompt, noAnswerToken) {
		t.Errorf("Prompt missing NO_ANSWER instruction")
	}
}

func TestIsNoAnswer(t *testing.T) {
	cases := map[string]bool{
		"NO_ANSWER":                        true,
		"  no_answer  ":                    true,
		"":                                 true,
		"The margin was 14%.":              false,
		"Revenue was 2.3M per the report.": false,
	}
	for input, want := range cases {
		if got := IsNoAnswer(input); got != want {
			t.Errorf("IsNoAnswer(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(NotFoundSentinel) {
		t.Errorf("Sentinel not detected")
	}
	if !IsNotFound("the report does not specify this detail") {
		t.Errorf("Sentinel variant not detected")
	}
	if IsNotFound("Net income was 1.2M.") {
		t.Errorf("False positive on a real answer")
	}
}
