package source

import (
	"bufio"
	"bytes"
	"strings"
)

// textExtractor handles plain text files: paragraphs separated by blank
// lines, joined with double newlines.
type textExtractor struct{}

func (e *textExtractor) Extract(data []byte, filename string) (*Document, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Document{Text: strings.Join(paragraphs, "\n\n")}, nil
}
