// Package source extracts plain text from uploaded documents so their
// content can be summarized into a mind map.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var ErrUnsupportedType = errors.New("unsupported document type")

// maxTextBytes caps how much extracted text is forwarded into the AI
// prompt. Long documents are truncated, not rejected.
const maxTextBytes = 60_000

// Document is the extracted content of one uploaded file.
type Document struct {
	Title string
	Text  string
}

type extractor interface {
	Extract(data []byte, filename string) (*Document, error)
}

// SupportedExtensions lists the file types this service can summarize.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// IsSupportedExtension reports whether the filename has a supported
// extension.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Extract parses the document and returns its title and flattened text,
// truncated to the prompt budget.
func Extract(filename string, data []byte) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var ex extractor
	switch ext {
	case ".txt":
		ex = &textExtractor{}
	case ".md":
		ex = &markdownExtractor{}
	case ".html", ".htm":
		ex = &htmlExtractor{}
	case ".pdf":
		ex = &pdfExtractor{}
	case ".docx":
		ex = &docxExtractor{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	doc, err := ex.Extract(data, filename)
	if err != nil {
		return nil, err
	}
	if doc.Title == "" {
		doc.Title = baseTitle(filename)
	}
	doc.Text = truncateText(doc.Text, maxTextBytes)
	return doc, nil
}

func baseTitle(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// truncateText cuts at a rune boundary at or below limit bytes.
func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}
