package source

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdownExtractor flattens a Markdown document with goldmark: heading
// titles on their own lines, block text in between. The first level-1
// heading becomes the document title.
type markdownExtractor struct{}

func (e *markdownExtractor) Extract(data []byte, filename string) (*Document, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(data))

	out := &Document{}
	var buf strings.Builder

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(data))
			if node.Level == 1 && out.Title == "" {
				out.Title = title
			}
			if buf.Len() > 0 {
				buf.WriteString("\n\n")
			}
			buf.WriteString(title)
		default:
			if t := blockText(n, data); t != "" {
				if buf.Len() > 0 {
					buf.WriteString("\n\n")
				}
				buf.WriteString(t)
			}
		}
	}

	out.Text = buf.String()
	return out, nil
}

// blockText gathers the text content of a goldmark AST node, including
// nested inlines and list items.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if t, ok := n.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			return
		}
		if _, ok := n.(*ast.ListItem); ok && buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}
