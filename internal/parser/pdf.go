// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// parsePDF extracts text from PDF bytes using go-fitz (MuPDF)
// API reference: https://pkg.go.dev/github.com/gen2brain/go-fitz
func parsePDF(data []byte) (string, error) {
	// NewFromMemory creates a new Document from an in-memory byte slice
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open PDF: %v", ErrUnreadable, err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	numPages := doc.NumPage()

	for i := 0; i < numPages; i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			// Skip unreadable pages but keep going; partial text is still useful
			continue
		}
		textBuilder.WriteString(pageText)
		// Add a page separator for readability
		if i < numPages-1 {
			textBuilder.WriteString("\n\n")
		}
	}

	// An image-only PDF extracts to nothing; that is not an error here
	return textBuilder.String(), nil
}
