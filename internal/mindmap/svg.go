package mindmap

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"
)

// Theme is the named color palette for rendered maps. Keeping it as a
// table rather than inline literals lets tests and future skins swap
// values in one place.
type Theme struct {
	Background string
	Main       string
	Level1     string
	Level2     string
	Level3     string
	Text       string
	Line       string
}

// DefaultTheme reproduces the established hand-drawn teal palette.
// Golden files depend on these exact values.
var DefaultTheme = Theme{
	Background: "#f8fffe",
	Main:       "#2e7d6b",
	Level1:     "#4a9b8e",
	Level2:     "#7bb3a9",
	Level3:     "#a8cdc4",
	Text:       "#1a4037",
	Line:       "#4a9b8e",
}

// Canvas and layout constants. The fan layout is deterministic: same
// topic in, byte-identical SVG out.
const (
	canvasWidth  = 1200.0
	canvasHeight = 800.0

	rootX         = 100.0
	rootWrapWidth = 300.0
	rootFontSize  = 18.0
	rootMinWidth  = 160.0
	rootMinHeight = 50.0
	rootLinePitch = 22.0
	rootPadWidth  = 40.0
	rootPadHeight = 10.0

	branchGap       = 50.0
	branchWrapWidth = 200.0
	branchFontSize  = 14.0
	branchMinWidth  = 120.0
	branchMinHeight = 35.0
	branchLinePitch = 18.0
	branchPadWidth  = 30.0
	branchPadHeight = 10.0
	branchMaxPitch  = 150 // vertical fan spacing cap
	branchBendInset = 20.0

	itemGap       = 30.0
	itemWrapWidth = 150.0
	itemFontSize  = 11.0
	itemMinWidth  = 100.0
	itemMinHeight = 20.0
	itemLinePitch = 14.0
	itemPadWidth  = 20.0
	itemPadHeight = 6.0
	itemSpacing   = 30.0
	maxItems      = 5 // items beyond the 5-slot window are silently dropped
)

// DefaultTopic is the canned structure drawn when the outline produced
// no topics at all, so a map is always rendered.
func DefaultTopic() Topic {
	return Topic{
		Title: "人工智慧的未來",
		Subtopics: []Subtopic{
			{Title: "技術發展", Items: []string{"機器學習進步", "深度學習突破", "自然語言處理"}},
			{Title: "應用領域", Items: []string{"醫療診斷", "智能交通", "金融科技"}},
		},
	}
}

// Renderer lays out a topic tree and emits a self-contained SVG document.
type Renderer struct {
	Theme Theme
}

func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme}
}

// Render draws the first topic of the tree as a rightward fan: root box
// on the left, subtopics fanned vertically, each subtopic's items fanned
// further right. Additional topics are accepted but not drawn. An empty
// tree falls back to DefaultTopic.
func (r *Renderer) Render(topics []Topic) []byte {
	topic := DefaultTopic()
	if len(topics) > 0 {
		topic = topics[0]
	}

	var buf bytes.Buffer
	r.writeHeader(&buf)
	r.writeTopic(&buf, topic)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *Renderer) writeHeader(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%s" height="%s" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <linearGradient id="mainGrad" x1="0%%" y1="0%%" x2="100%%" y2="0%%">
      <stop offset="0%%" style="stop-color:%s;stop-opacity:1"/>
      <stop offset="100%%" style="stop-color:%s;stop-opacity:1"/>
    </linearGradient>
    <linearGradient id="branchGrad" x1="0%%" y1="0%%" x2="100%%" y2="0%%">
      <stop offset="0%%" style="stop-color:%s;stop-opacity:1"/>
      <stop offset="100%%" style="stop-color:%s;stop-opacity:1"/>
    </linearGradient>
    <filter id="shadow" x="-20%%" y="-20%%" width="140%%" height="140%%">
      <feDropShadow dx="2" dy="2" stdDeviation="3" flood-opacity="0.3"/>
    </filter>
  </defs>
  <style>
    .main-title { font-family: 'Arial', sans-serif; font-size: 18px; font-weight: bold; fill: white; }
    .branch-title { font-family: 'Arial', sans-serif; font-size: 14px; font-weight: 600; fill: white; }
    .item-text { font-family: 'Arial', sans-serif; font-size: 11px; fill: %s; }
    .connector { stroke: %s; stroke-width: 2; fill: none; }
  </style>
  <rect width="%s" height="%s" fill="%s"/>
`,
		num(canvasWidth), num(canvasHeight),
		r.Theme.Main, r.Theme.Level1,
		r.Theme.Level1, r.Theme.Level2,
		r.Theme.Text, r.Theme.Line,
		num(canvasWidth), num(canvasHeight), r.Theme.Background)
}

func (r *Renderer) writeTopic(buf *bytes.Buffer, t Topic) {
	rootY := canvasHeight / 2

	lines := Wrap(t.Title, rootWrapWidth, rootFontSize)
	w := math.Max(rootMinWidth, maxLineWidth(lines, rootFontSize)+rootPadWidth)
	h := math.Max(rootMinHeight, float64(len(lines))*rootLinePitch+rootPadHeight)
	halfW := math.Floor(w / 2)

	fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="url(#mainGrad)" rx="25" filter="url(#shadow)"/>`+"\n",
		num(rootX-halfW), num(rootY-math.Floor(h/2)), num(w), num(h))
	for i, line := range lines {
		lineY := rootY - float64(len(lines)-1)*rootLinePitch/2 + float64(i)*rootLinePitch
		fmt.Fprintf(buf, `  <text x="%s" y="%s" text-anchor="middle" class="main-title">%s</text>`+"\n",
			num(rootX), num(lineY+5), esc(line))
	}

	count := len(t.Subtopics)
	if count == 0 {
		return
	}

	branchStartX := rootX + halfW + branchGap
	spacing := math.Floor((canvasHeight - 200) / float64(count))
	if spacing > branchMaxPitch {
		spacing = branchMaxPitch
	}
	startY := rootY - math.Floor(float64(count-1)*spacing/2)

	for i, st := range t.Subtopics {
		branchY := startY + float64(i)*spacing
		r.writeSubtopic(buf, st, branchStartX, branchY, rootX+halfW, rootY)
	}
}

func (r *Renderer) writeSubtopic(buf *bytes.Buffer, st Subtopic, startX, branchY, rootRightX, rootY float64) {
	lines := Wrap(st.Title, branchWrapWidth, branchFontSize)
	w := math.Max(branchMinWidth, maxLineWidth(lines, branchFontSize)+branchPadWidth)
	h := math.Max(branchMinHeight, float64(len(lines))*branchLinePitch+branchPadHeight)

	// Curved connector from the root's right edge, bending just before
	// the branch box, then a short straight run into it.
	bendX := startX - branchBendInset
	fmt.Fprintf(buf, `  <path d="M %s %s Q %s %s %s %s" class="connector"/>`+"\n",
		num(rootRightX), num(rootY), num(bendX), num(rootY), num(bendX), num(branchY))
	fmt.Fprintf(buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s" class="connector"/>`+"\n",
		num(bendX), num(branchY), num(startX), num(branchY))

	fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="url(#branchGrad)" rx="17" filter="url(#shadow)"/>`+"\n",
		num(startX), num(branchY-math.Floor(h/2)), num(w), num(h))
	for j, line := range lines {
		lineY := branchY - float64(len(lines)-1)*branchLinePitch/2 + float64(j)*branchLinePitch
		fmt.Fprintf(buf, `  <text x="%s" y="%s" text-anchor="middle" class="branch-title">%s</text>`+"\n",
			num(startX+math.Floor(w/2)), num(lineY+4), esc(line))
	}

	itemStartX := startX + w + itemGap
	for j, item := range st.Items {
		if j >= maxItems {
			break
		}
		itemY := branchY + float64(j-2)*itemSpacing
		r.writeItem(buf, item, itemStartX, itemY, startX+w, branchY)
	}
}

func (r *Renderer) writeItem(buf *bytes.Buffer, item string, itemX, itemY, branchRightX, branchY float64) {
	lines := Wrap(item, itemWrapWidth, itemFontSize)
	w := math.Max(itemMinWidth, maxLineWidth(lines, itemFontSize)+itemPadWidth)
	h := math.Max(itemMinHeight, float64(len(lines))*itemLinePitch+itemPadHeight)

	fmt.Fprintf(buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s" class="connector" stroke-width="1"/>`+"\n",
		num(branchRightX), num(branchY), num(itemX), num(itemY))
	fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="1" rx="10" opacity="0.9"/>`+"\n",
		num(itemX), num(itemY-math.Floor(h/2)), num(w), num(h), r.Theme.Level3, r.Theme.Level2)
	for k, line := range lines {
		lineY := itemY - float64(len(lines)-1)*itemLinePitch/2 + float64(k)*itemLinePitch
		fmt.Fprintf(buf, `  <text x="%s" y="%s" class="item-text">%s</text>`+"\n",
			num(itemX+10), num(lineY+3), esc(line))
	}
}

func maxLineWidth(lines []string, fontSize float64) float64 {
	var max float64
	for _, line := range lines {
		if w := MeasureWidth(line, fontSize); w > max {
			max = w
		}
	}
	return max
}

// num formats a coordinate compactly: whole values without a decimal
// point, fractional values rounded to two places.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// esc XML-escapes user-derived text before it is placed into markup.
func esc(s string) string {
	return html.EscapeString(s)
}
