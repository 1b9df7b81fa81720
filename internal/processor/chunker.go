// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package processor

import (
	"strings"
)

// Chunk is one bounded, ordered segment of extracted document text.
// Index is the stable 0-based position of the chunk within the document.
type Chunk struct {
	Index int
	Text  string
}

// DefaultChunkSize targets a few thousand characters so a chunk plus its
// prompt scaffolding fits a single model call on a bounded context window.
const (
	DefaultChunkSize    = 8000
	DefaultChunkOverlap = 200
	defaultLookback     = 200
)

// Chunker handles text chunking with sentence-aware splitting
type Chunker struct {
	chunkSize    int
	chunkOverlap int
	lookback     int
}

// NewChunker creates a chunker with the given size bound and overlap.
// Non-positive arguments fall back to the defaults.
func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = DefaultChunkOverlap
	}
	// Overlap must leave forward progress on every iteration
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 4
	}
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		lookback:     defaultLookback,
	}
}

// ChunkSize returns the configured maximum chunk size in characters.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// ChunkText splits text into overlapping chunks, trying to avoid cutting
// sentences. Chunks are returned in document order with contiguous indexes;
// empty input yields an empty slice.
func (c *Chunker) ChunkText(text string) []Chunk {
	if len(strings.TrimSpace(text)) == 0 {
		return []Chunk{}
	}

	var chunks []Chunk
	start := 0
	textLen := len(text)

	for start < textLen {
		end := start + c.chunkSize
		if end > textLen {
			end = textLen
		}

		// If we're not at the end, try to find a sentence boundary
		if end < textLen {
			searchStart := end - c.lookback
			if searchStart < start {
				searchStart = start
			}

			// Try to find a good break point (sentence ending followed by
			// space/newline, or a paragraph break)
			bestBreak := end
			for i := end - 1; i >= searchStart; i-- {
				char := text[i]
				if (char == '.' || char == '!' || char == '?') && i+1 < len(text) {
					nextChar := text[i+1]
					if nextChar == ' ' || nextChar == '\n' || nextChar == '\r' {
						bestBreak = i + 1
						break
					}
				}
				if i+1 < len(text) && char == '\n' && text[i+1] == '\n' {
					bestBreak = i + 2
					break
				}
			}

			// Accept the boundary only if the next window still moves
			// forward after stepping back by the overlap; otherwise a
			// boundary just behind the overlap would be found again on
			// every iteration. Fall back to a hard cut instead.
			if bestBreak-c.chunkOverlap > start {
				end = bestBreak
			}
		}

		piece := strings.TrimSpace(text[start:end])
		if len(piece) > 0 {
			chunks = append(chunks, Chunk{Index: len(chunks), Text: piece})
		}

		if end >= textLen {
			break
		}

		// Move start position with overlap
		start = end - c.chunkOverlap
		if start < 0 {
			start = 0
		}
		// Ensure we don't get stuck in a loop
		if start >= end {
			start = end
		}
	}

	if chunks == nil {
		return []Chunk{}
	}
	return chunks
}

// JoinChunks concatenates chunk texts in index order with a newline
// separator. The reduce step uses it to rebuild a single body of text from
// per-chunk partial results.
func JoinChunks(chunks []Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		parts = append(parts, ch.Text)
	}
	return strings.Join(parts, "\n")
}
