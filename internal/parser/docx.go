// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"bytes"
	"fmt"

	"github.com/nguyenthenguyen/docx"
)

// parseDOCX extracts text from DOCX bytes
func parseDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to open DOCX: %v", ErrUnreadable, err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
