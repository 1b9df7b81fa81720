// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"fmt"
	"unicode/utf8"
)

// parseText extracts text from plain text content (.txt, .md)
func parseText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: text file is not valid UTF-8", ErrUnreadable)
	}
	return string(data), nil
}
