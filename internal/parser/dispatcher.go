// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned when the file type has no extractor.
var ErrUnsupported = errors.New("unsupported file type")

// ErrUnreadable is returned when a document is corrupt, encrypted or
// otherwise cannot be opened. It is distinct from a readable document that
// simply contains no text, which is reported as ("", nil).
var ErrUnreadable = errors.New("unreadable document")

// Parse routes raw document bytes to the appropriate extractor based on the
// filename extension and returns the extracted plain text.
//
// A valid document with no extractable text (e.g. a scanned, image-only PDF)
// yields an empty string and a nil error. Callers must treat that as a
// terminal "nothing to process" outcome rather than an extraction failure.
func Parse(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	var err error

	switch ext {
	case ".pdf":
		text, err = parsePDF(data)
	case ".docx":
		text, err = parseDOCX(data)
	case ".txt", ".md":
		text, err = parseText(data)
	case ".xlsx", ".xls":
		text, err = parseExcel(data)
	case ".html", ".htm":
		text, err = parseHTML(data)
	case ".eml":
		text, err = parseEmail(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

// IsSupportedFile checks if a file extension is supported
func IsSupportedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	supported := []string{".pdf", ".docx", ".txt", ".md", ".xlsx", ".xls", ".html", ".htm", ".eml"}
	for _, s := range supported {
		if ext == s {
			return true
		}
	}
	return false
}
