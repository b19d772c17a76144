package mindmap

import "strings"

// NodeKind classifies an outline node.
type NodeKind string

const (
	KindHeading NodeKind = "heading"
	KindItem    NodeKind = "item"
)

// Node is one entry in the flat outline extracted from Markdown-like
// text. Level is the heading depth (1 = topic, 2 = subtopic); items are
// always level 0.
type Node struct {
	Level int      `json:"level"`
	Title string   `json:"title"`
	Kind  NodeKind `json:"type"`
}

// ParseOutline extracts heading and bullet nodes from text, in document
// order. Lines that are neither headings nor bullets are ignored; this
// is best-effort extraction, not validation. Empty or unusable input
// yields an empty sequence.
func ParseOutline(text string) []Node {
	var nodes []Node
	for _, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
		case strings.HasPrefix(line, "#"):
			level := 0
			for level < len(line) && line[level] == '#' {
				level++
			}
			nodes = append(nodes, Node{
				Level: level,
				Title: strings.TrimSpace(strings.TrimLeft(line, "# ")),
				Kind:  KindHeading,
			})
		case strings.HasPrefix(line, "-"):
			nodes = append(nodes, Node{
				Title: strings.TrimSpace(strings.TrimLeft(line, "- ")),
				Kind:  KindItem,
			})
		}
	}
	return nodes
}
