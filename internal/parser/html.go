// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// parseHTML extracts text from HTML bytes, removing script and style tags
func parseHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse HTML: %v", ErrUnreadable, err)
	}

	// Remove script, style, and noscript tags before extracting text
	doc.Find("script, style, noscript").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Text(), nil
}
