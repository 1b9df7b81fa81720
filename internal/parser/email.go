// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/mnako/letters"
)

// parseEmail extracts text from EML bytes
func parseEmail(data []byte) (string, error) {
	email, err := letters.ParseEmail(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse EML: %v", ErrUnreadable, err)
	}

	var builder strings.Builder

	// Format email metadata
	if email.Headers.Subject != "" {
		builder.WriteString(fmt.Sprintf("Subject: %s\n", email.Headers.Subject))
	}

	if len(email.Headers.From) > 0 {
		from := email.Headers.From[0]
		sender := ""
		if from.Name != "" {
			sender = fmt.Sprintf("%s <%s>", from.Name, from.Address)
		} else {
			sender = from.Address
		}
		builder.WriteString(fmt.Sprintf("Sender: %s\n", sender))
	}

	if !email.Headers.Date.IsZero() {
		builder.WriteString(fmt.Sprintf("Date: %s\n", email.Headers.Date.Format(time.RFC3339)))
	}

	builder.WriteString("\n")

	// Prefer text body, fall back to HTML body if needed
	if email.Text != "" {
		builder.WriteString(email.Text)
	} else if email.HTML != "" {
		if text, err := parseHTML([]byte(email.HTML)); err == nil {
			builder.WriteString(text)
		}
	}

	return builder.String(), nil
}
