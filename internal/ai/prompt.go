// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ai

import (
	"fmt"
	"strings"
)

// NotFoundSentinel is the exact sentence the model is instructed to emit
// when the document does not contain the answer. The policy is a
// prompt-level contract; the engine detects it but does not verify it
// against the source text.
const NotFoundSentinel = "The report does not specify this."

// noAnswerToken marks a chunk-local scan that found nothing usable.
const noAnswerToken = "NO_ANSWER"

// SummaryPrompt asks for a 5-10 sentence abstractive summary of the text.
// The same prompt serves both the map step (per-chunk) and the reduce step
// (over concatenated partial summaries).
func SummaryPrompt(text string) string {
	return "You are an analyst assistant. Write in English. Produce EXACTLY 5-10 sentences. " +
		"No meta commentary (e.g., 'the report says...'). " +
		"No lists or numbering, only coherent prose. " +
		"Use only facts from the report, no speculation. Do not repeat yourself.\n\n" +
		fmt.Sprintf("REPORT:\n%s\n\nSUMMARY (5-10 sentences):\n", text)
}

// QAPrompt asks a question against a complete document that fits one call.
func QAPrompt(text, question string) string {
	return "You are an analyst assistant. Write in English. Answer only using the report content. " +
		"No meta commentary or speculation. Do not repeat yourself. " +
		fmt.Sprintf("If the answer is not in the text, say: %q.\n\n", NotFoundSentinel) +
		fmt.Sprintf("REPORT:\n%s\n\nQUESTION: %s\nANSWER:\n", text, question)
}

// ChunkAnswerPrompt asks whether a single excerpt helps answer the question
// and, if so, for an answer grounded in that excerpt alone.
func ChunkAnswerPrompt(excerpt, question string) string {
	return "You are an analyst assistant. Write in English. " +
		"Below is one excerpt from a longer report. " +
		"If the excerpt contains information that helps answer the question, answer using ONLY this excerpt. " +
		fmt.Sprintf("If it does not, reply with exactly: %s\n\n", noAnswerToken) +
		fmt.Sprintf("EXCERPT:\n%s\n\nQUESTION: %s\nANSWER:\n", excerpt, question)
}

// SynthesisPrompt combines chunk-local answers into one coherent answer.
// The model may still conclude the evidence is insufficient and emit the
// not-found sentinel.
func SynthesisPrompt(notes, question string) string {
	return "You are an analyst assistant. Write in English. " +
		"Below are partial answers collected from different parts of a report. " +
		"Combine them into one coherent answer to the question. Do not repeat yourself. " +
		fmt.Sprintf("If they are contradictory or insufficient, say: %q.\n\n", NotFoundSentinel) +
		fmt.Sprintf("PARTIAL ANSWERS:\n%s\n\nQUESTION: %s\nANSWER:\n", notes, question)
}

// IsNoAnswer reports whether a chunk-local response declined to answer.
func IsNoAnswer(response string) bool {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return true
	}
	return strings.Contains(strings.ToUpper(trimmed), noAnswerToken)
}

// IsNotFound reports whether a response is the not-found sentinel.
func IsNotFound(response string) bool {
	return strings.Contains(strings.ToLower(response), "does not specify")
}
