package source

import (
	"errors"
	"strings"
	"testing"
)

func TestIsSupportedExtension(t *testing.T) {
	for _, name := range []string{"a.txt", "b.MD", "c.html", "d.htm", "e.pdf", "f.DOCX"} {
		if !IsSupportedExtension(name) {
			t.Errorf("%q should be supported", name)
		}
	}
	for _, name := range []string{"a.png", "b.exe", "noext", "c.markdown"} {
		if IsSupportedExtension(name) {
			t.Errorf("%q should not be supported", name)
		}
	}
}

func TestExtract_UnsupportedType(t *testing.T) {
	_, err := Extract("image.png", []byte{1, 2, 3})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestExtract_Text(t *testing.T) {
	data := []byte("First paragraph\nsecond line.\n\n\nSecond paragraph.\n")
	doc, err := Extract("notes.txt", data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if doc.Title != "notes" {
		t.Errorf("Title = %q, want filename stem", doc.Title)
	}
	want := "First paragraph\nsecond line.\n\nSecond paragraph."
	if doc.Text != want {
		t.Errorf("Text = %q, want %q", doc.Text, want)
	}
}

func TestExtract_Markdown(t *testing.T) {
	data := []byte("# Quarterly Report\n\nRevenue grew.\n\n## Details\n\n- item one\n- item two\n")
	doc, err := Extract("report.md", data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if doc.Title != "Quarterly Report" {
		t.Errorf("Title = %q, want first h1", doc.Title)
	}
	for _, want := range []string{"Revenue grew.", "Details", "item one", "item two"} {
		if !strings.Contains(doc.Text, want) {
			t.Errorf("Text missing %q: %q", want, doc.Text)
		}
	}
}

func TestExtract_MarkdownWithoutHeadingFallsBackToFilename(t *testing.T) {
	doc, err := Extract("plain.md", []byte("just a paragraph"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if doc.Title != "plain" {
		t.Errorf("Title = %q, want filename stem", doc.Title)
	}
}

func TestExtract_HTML(t *testing.T) {
	data := []byte(`<html><head><title>Page Title</title><style>p{}</style></head>
<body><nav>menu</nav><h1>Main</h1><p>Body text.</p><script>x()</script><ul><li>point</li></ul></body></html>`)
	doc, err := Extract("page.html", data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if doc.Title != "Page Title" {
		t.Errorf("Title = %q, want <title> text", doc.Title)
	}
	for _, want := range []string{"Main", "Body text.", "point"} {
		if !strings.Contains(doc.Text, want) {
			t.Errorf("Text missing %q: %q", want, doc.Text)
		}
	}
	for _, skip := range []string{"menu", "x()", "p{}"} {
		if strings.Contains(doc.Text, skip) {
			t.Errorf("Text must not contain chrome %q: %q", skip, doc.Text)
		}
	}
}

func TestExtract_TruncatesLongText(t *testing.T) {
	data := []byte(strings.Repeat("字", 30_000)) // 90k bytes of 3-byte runes
	doc, err := Extract("big.txt", data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(doc.Text) > maxTextBytes {
		t.Errorf("len = %d, want <= %d", len(doc.Text), maxTextBytes)
	}
	// The cut lands on a rune boundary.
	if !strings.HasSuffix(doc.Text, "字") {
		t.Error("truncation split a multi-byte rune")
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("hello", 10); got != "hello" {
		t.Errorf("short text changed: %q", got)
	}
	if got := truncateText("hello", 3); got != "hel" {
		t.Errorf("ascii cut = %q, want %q", got, "hel")
	}
	if got := truncateText("字字", 4); got != "字" {
		t.Errorf("rune-boundary cut = %q, want single rune", got)
	}
}

func TestBaseTitle(t *testing.T) {
	cases := map[string]string{
		"report.txt":      "report",
		"dir/report.docx": "report",
		"noext":           "noext",
		"a.b.pdf":         "a.b",
	}
	for in, want := range cases {
		if got := baseTitle(in); got != want {
			t.Errorf("baseTitle(%q) = %q, want %q", in, got, want)
		}
	}
}
