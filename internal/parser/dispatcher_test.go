// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_PlainText(t *testing.T) {
	text, err := Parse("report.txt", []byte("Revenue grew 10% year over year.\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if text != "Revenue grew 10% year over year." {
		t.Errorf("Unexpected text: %q", text)
	}
}

func TestParse_Markdown(t *testing.T) {
	text, err := Parse("notes.md", []byte("# Q3 Results\n\nMargins improved."))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !strings.Contains(text, "Margins improved.") {
		t.Errorf("Expected markdown body in output, got: %q", text)
	}
}

func TestParse_HTML(t *testing.T) {
	html := `<html><head><style>body{color:red}</style></head><body><script>alert(1)</script><p>Net income was flat.</p></body></html>`

	text, err := Parse("report.html", []byte(html))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !strings.Contains(text, "Net income was flat.") {
		t.Errorf("Expected body text in output, got: %q", text)
	}
	if strings.Contains(text, "alert(1)") || strings.Contains(text, "color:red") {
		t.Errorf("Script/style content leaked into output: %q", text)
	}
}

func TestParse_UnsupportedExtension(t *testing.T) {
	_, err := Parse("archive.zip", []byte("PK"))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported, got: %v", err)
	}
}

func TestParse_CorruptPDF(t *testing.T) {
	_, err := Parse("broken.pdf", []byte("this is not a pdf"))
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("Expected ErrUnreadable for corrupt PDF, got: %v", err)
	}
}

func TestParse_EmptyTextIsNotAnError(t *testing.T) {
	text, err := Parse("blank.txt", []byte("   \n\t  "))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if text != "" {
		t.Errorf("Expected empty text for whitespace-only file, got: %q", text)
	}
}

func TestIsSupportedFile(t *testing.T) {
	supported := []string{"a.pdf", "b.DOCX", "c.txt", "d.md", "e.xlsx", "f.html", "g.eml"}
	for _, name := range supported {
		if !IsSupportedFile(name) {
			t.Errorf("Expected %s to be supported", name)
		}
	}

	unsupported := []string{"a.zip", "b.exe", "noext"}
	for _, name := range unsupported {
		if IsSupportedFile(name) {
			t.Errorf("Expected %s to be unsupported", name)
		}
	}
}
