package mindmap

import (
	"bytes"
	"strings"
	"testing"
)

func renderString(t *testing.T, markdown string) string {
	t.Helper()
	topics := BuildTopics(ParseOutline(markdown))
	return string(NewRenderer().Render(topics))
}

func TestRender_Deterministic(t *testing.T) {
	topics := BuildTopics(ParseOutline("# Topic\n## Sub1\n- Item1\n## Sub2\n- Item2"))
	r := NewRenderer()
	first := r.Render(topics)
	second := r.Render(topics)
	if !bytes.Equal(first, second) {
		t.Error("renderer output differs between identical invocations")
	}
}

func TestRender_EmptyTreeUsesDefaultTopic(t *testing.T) {
	svg := string(NewRenderer().Render(nil))
	if !strings.Contains(svg, "人工智慧的未來") {
		t.Error("expected canned default topic title in output")
	}
	if !strings.Contains(svg, "技術發展") || !strings.Contains(svg, "應用領域") {
		t.Error("expected canned default subtopics in output")
	}
}

func TestRender_DocumentShape(t *testing.T) {
	svg := renderString(t, "# Topic\n## Sub\n- Item")
	if !strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(svg, `<svg width="1200" height="800"`) {
		t.Error("missing fixed-size svg element")
	}
	for _, want := range []string{"mainGrad", "branchGrad", `id="shadow"`, `fill="#f8fffe"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("document not closed")
	}
}

func TestRender_Layout(t *testing.T) {
	svg := renderString(t, "# Topic\n## Sub1\n- Item1\n- Item2\n## Sub2\n- Item3")

	checks := []struct {
		desc string
		want string
	}{
		// Root box: min width 160 centered at x=100, min height 50
		// centered at y=400.
		{"root rect", `<rect x="20" y="375" width="160" height="50"`},
		{"root title", `<text x="100" y="405" text-anchor="middle" class="main-title">Topic</text>`},
		// Two subtopics fan around y=400 at spacing 150: y=325 and 475.
		{"sub1 connector", `d="M 180 400 Q 210 400 210 325"`},
		{"sub2 connector", `d="M 180 400 Q 210 400 210 475"`},
		{"sub1 rect", `<rect x="230" y="308" width="120" height="35"`},
		{"sub1 title", `<text x="290" y="329" text-anchor="middle" class="branch-title">Sub1</text>`},
		// Items sit right of the subtopic in the 5-slot window:
		// first item of Sub1 at y = 325 + (0-2)*30 = 265.
		{"item1 connector", `<line x1="350" y1="325" x2="380" y2="265" class="connector" stroke-width="1"/>`},
		{"item1 rect", `<rect x="380" y="255" width="100" height="20"`},
		{"item1 text", `<text x="390" y="268" class="item-text">Item1</text>`},
		// First item of Sub2 at y = 475 + (0-2)*30 = 415.
		{"item3 connector", `<line x1="350" y1="475" x2="380" y2="415" class="connector" stroke-width="1"/>`},
	}
	for _, c := range checks {
		if !strings.Contains(svg, c.want) {
			t.Errorf("%s: expected %q in output", c.desc, c.want)
		}
	}
}

func TestRender_SubtopicFanSpacingCapped(t *testing.T) {
	// Six subtopics: spacing = floor(600/6) = 100, topmost at
	// 400 - floor(5*100/2) = 150.
	svg := renderString(t, "# T\n## A\n## B\n## C\n## D\n## E\n## F")
	if !strings.Contains(svg, `210 150" class="connector"`) {
		t.Error("expected topmost subtopic at y=150")
	}
	if !strings.Contains(svg, `210 650" class="connector"`) {
		t.Error("expected bottom subtopic at y=650")
	}
}

func TestRender_ItemWindowTruncatesAtFive(t *testing.T) {
	svg := renderString(t, "# T\n## S\n- i1\n- i2\n- i3\n- i4\n- i5\n- i6")
	for _, want := range []string{"i1", "i2", "i3", "i4", "i5"} {
		if !strings.Contains(svg, ">"+want+"<") {
			t.Errorf("expected item %q rendered", want)
		}
	}
	if strings.Contains(svg, ">i6<") {
		t.Error("sixth item must be silently dropped")
	}
}

func TestRender_OnlyFirstTopicDrawn(t *testing.T) {
	svg := renderString(t, "# First\n## S1\n# Second\n## S2")
	if !strings.Contains(svg, ">First<") {
		t.Error("first topic missing")
	}
	if strings.Contains(svg, ">Second<") {
		t.Error("second topic must not be drawn")
	}
}

func TestRender_EscapesUserText(t *testing.T) {
	svg := renderString(t, "# <b>&\n## s\"q\n- it<em")
	if strings.Contains(svg, "<b>") || strings.Contains(svg, "<em") {
		t.Error("raw markup leaked into output")
	}
	for _, want := range []string{"&lt;b&gt;&amp;", "&lt;em"} {
		if !strings.Contains(svg, want) {
			t.Errorf("expected escaped text %q", want)
		}
	}
}

func TestRender_TitleWrapsAcrossLines(t *testing.T) {
	// Long ASCII title at 18px exceeds the 300px root budget and must
	// render as multiple text lines.
	svg := renderString(t, "# a very long root topic title that cannot possibly fit on one line")
	count := strings.Count(svg, `class="main-title"`)
	if count < 2 {
		t.Errorf("expected wrapped multi-line root title, got %d line(s)", count)
	}
}
