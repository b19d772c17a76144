// Package pipeline orchestrates mind-map generation: choosing the
// Markdown source (room discussion via AI, caller-supplied text, or
// file/default fallback), running it through the outline parser and
// renderer, and producing the SVG artifact.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mindbuddy/mindbuddy/internal/config"
	"github.com/mindbuddy/mindbuddy/internal/llm"
	"github.com/mindbuddy/mindbuddy/internal/mindmap"
	"github.com/mindbuddy/mindbuddy/internal/room"
	"github.com/mindbuddy/mindbuddy/internal/source"
)

var (
	// ErrEmptyPrompt means the room exists but yields no usable prompt.
	ErrEmptyPrompt = errors.New("mindmap prompt is empty")

	// ErrEmptyOutline means the content had no headings or bullets at
	// all. Distinct from an outline with no level-1 heading, which the
	// renderer covers with the canned default topic.
	ErrEmptyOutline = errors.New("content has no outline structure")
)

// The task label sent with completion calls.
const taskMindmap = "mindmap"

// Markdown shown when no room, custom content, or fallback file is
// available.
const defaultMarkdown = `# AI心智圖示例
## 人工智慧應用
- 機器學習
- 深度學習
- 自然語言處理
## 技術發展
- 神經網路
- 大型語言模型
- 電腦視覺`

// Locations probed for pre-generated fallback content, relative to the
// working directory, after the configured path.
var fallbackCandidates = []string{
	"frontend/public/AIresult.txt",
	"../frontend/public/AIresult.txt",
}

// GenerateRequest selects the content source. RoomCode wins over
// CustomContent; with neither, the file/default fallback applies.
type GenerateRequest struct {
	RoomCode      string `json:"room_code"`
	CustomContent string `json:"custom_content"`
}

// Artifact is a rendered mind map written to a transient file for the
// HTTP layer to stream.
type Artifact struct {
	Path        string
	Filename    string
	ContentType string
}

// Preview exposes the raw AI interaction for a room without rendering.
type Preview struct {
	RoomCode   string `json:"room_code"`
	RoomTitle  string `json:"room_title"`
	Markdown   string `json:"markdown"`
	PromptUsed string `json:"prompt_used"`
}

// Service runs the generation pipeline. All state is request-scoped;
// concurrent requests are independent.
type Service struct {
	rooms    room.Repository
	ai       llm.Client
	log      *slog.Logger
	cfg      config.Config
	renderer *mindmap.Renderer
}

func NewService(cfg config.Config, rooms room.Repository, ai llm.Client, log *slog.Logger) *Service {
	return &Service{
		rooms:    rooms,
		ai:       ai,
		log:      log,
		cfg:      cfg,
		renderer: mindmap.NewRenderer(),
	}
}

// Generate produces the SVG artifact for the request. AI failures on
// the room path are recovered locally with a title-only document so the
// pipeline still draws something.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*Artifact, error) {
	var markdown string
	switch {
	case req.RoomCode != "":
		rm, prompt, err := s.roomPrompt(req.RoomCode)
		if err != nil {
			return nil, err
		}
		markdown, err = s.roomMarkdown(ctx, rm, prompt)
		if err != nil {
			s.log.Warn("ai generation failed, falling back to room title",
				"room", rm.Code, "error", err)
			markdown = "# " + roomFallbackTitle(rm)
		}
	case req.CustomContent != "":
		markdown = req.CustomContent
	default:
		markdown = s.fallbackContent()
	}

	return s.renderArtifact(markdown)
}

// Preview runs the room path up to the Markdown stage and returns the
// raw AI interaction. Unlike Generate, AI failures surface to the
// caller here; preview exists to expose them.
func (s *Service) Preview(ctx context.Context, roomCode string) (*Preview, error) {
	rm, prompt, err := s.roomPrompt(roomCode)
	if err != nil {
		return nil, err
	}
	markdown, err := s.roomMarkdown(ctx, rm, prompt)
	if err != nil {
		return nil, fmt.Errorf("preview generation: %w", err)
	}
	return &Preview{
		RoomCode:   rm.Code,
		RoomTitle:  rm.Title,
		Markdown:   markdown,
		PromptUsed: prompt,
	}, nil
}

// GenerateFromDocument extracts text from an uploaded document, has the
// AI summarize it into mind-map Markdown, and renders the result. AI
// failures degrade to a title-only map, matching the room path.
func (s *Service) GenerateFromDocument(ctx context.Context, filename string, data []byte) (*Artifact, error) {
	doc, err := source.Extract(filename, data)
	if err != nil {
		return nil, err
	}

	prompt := mindmap.BuildDocumentPrompt(doc.Title, doc.Text)
	markdown, err := s.documentMarkdown(ctx, doc.Title, prompt)
	if err != nil {
		s.log.Warn("ai generation failed for document, falling back to title",
			"document", doc.Title, "error", err)
		markdown = "# " + doc.Title
	}
	return s.renderArtifact(markdown)
}

func (s *Service) roomPrompt(code string) (room.Room, string, error) {
	rm, ok := s.rooms.Room(code)
	if !ok {
		return room.Room{}, "", fmt.Errorf("%w: %s", room.ErrNotFound, code)
	}
	prompt := mindmap.BuildPrompt(rm, s.rooms.Votes)
	if strings.TrimSpace(prompt) == "" {
		return rm, "", ErrEmptyPrompt
	}
	return rm, prompt, nil
}

func (s *Service) roomMarkdown(ctx context.Context, rm room.Room, prompt string) (string, error) {
	slug := rm.WorkspaceSlug
	if slug == "" {
		title := rm.Title
		if title == "" {
			title = "討論室-" + rm.Code
		}
		created, err := s.ai.EnsureWorkspace(ctx, rm.Code, title)
		if err != nil {
			return "", fmt.Errorf("ensure workspace: %w", err)
		}
		slug = created
		s.rooms.SetWorkspaceSlug(rm.Code, slug)
	}

	text, err := s.ai.Complete(ctx, prompt, slug, taskMindmap)
	if err != nil {
		return "", err
	}
	return StripFence(text), nil
}

func (s *Service) documentMarkdown(ctx context.Context, title, prompt string) (string, error) {
	slug, err := s.ai.EnsureWorkspace(ctx, "documents", "Document Summaries")
	if err != nil {
		return "", fmt.Errorf("ensure workspace: %w", err)
	}
	text, err := s.ai.Complete(ctx, prompt, slug, taskMindmap)
	if err != nil {
		return "", err
	}
	return StripFence(text), nil
}

func (s *Service) renderArtifact(markdown string) (*Artifact, error) {
	nodes := mindmap.ParseOutline(markdown)
	if len(nodes) == 0 {
		return nil, ErrEmptyOutline
	}
	topics := mindmap.BuildTopics(nodes)
	svg := s.renderer.Render(topics)

	tmp, err := os.CreateTemp("", "mindmap-*.svg")
	if err != nil {
		return nil, fmt.Errorf("create artifact file: %w", err)
	}
	if _, err := tmp.Write(svg); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("write artifact file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("close artifact file: %w", err)
	}

	return &Artifact{
		Path:        tmp.Name(),
		Filename:    "mindmap_" + time.Now().Format("20060102_150405") + ".svg",
		ContentType: "image/svg+xml",
	}, nil
}

func (s *Service) fallbackContent() string {
	candidates := make([]string, 0, len(fallbackCandidates)+1)
	if s.cfg.FallbackContentPath != "" {
		candidates = append(candidates, s.cfg.FallbackContentPath)
	}
	candidates = append(candidates, fallbackCandidates...)

	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil {
			s.log.Info("using fallback content file", "path", path)
			return string(data)
		}
	}
	return defaultMarkdown
}

func roomFallbackTitle(rm room.Room) string {
	if rm.Title != "" {
		return rm.Title
	}
	return "討論總結"
}

// StripFence removes a leading Markdown code fence by dropping the
// first and last lines, best-effort: it only fires when the trimmed
// text starts with ``` and spans more than two lines, and does not
// check that the closing fence matches.
func StripFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) <= 2 {
		return trimmed
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}
