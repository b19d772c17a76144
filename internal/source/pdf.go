package source

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// pdfExtractor handles PDF files. It tries the Go library first and
// falls back to pdftotext when that is installed.
type pdfExtractor struct{}

func (e *pdfExtractor) Extract(data []byte, filename string) (*Document, error) {
	// ledongthuc/pdf needs a ReadSeeker with a known size, so spill to
	// a temp file.
	tmp, err := os.CreateTemp("", "mindbuddy-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractPDFText(tmpPath)
	if err != nil || strings.TrimSpace(text) == "" {
		if fallback, fbErr := extractPdftotext(tmpPath); fbErr == nil {
			text, err = fallback, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	// Form feeds separate pages; the prompt wants one body of text.
	text = strings.ReplaceAll(text, "\f", "\n\n")
	return &Document{Text: strings.TrimSpace(text)}, nil
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
