package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mindbuddy/mindbuddy/internal/pipeline"
	"github.com/mindbuddy/mindbuddy/internal/room"
	"github.com/mindbuddy/mindbuddy/internal/source"
)

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	// The request body is optional; an absent body means "use the
	// file/default fallback".
	var req pipeline.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	art, err := s.pipeline.Generate(r.Context(), req)
	if err != nil {
		s.pipelineError(w, err)
		return
	}
	s.sendArtifact(w, art)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req pipeline.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.RoomCode == "" {
		jsonError(w, "room_code is required", http.StatusBadRequest)
		return
	}

	preview, err := s.pipeline.Preview(r.Context(), req.RoomCode)
	if err != nil {
		switch {
		case errors.Is(err, room.ErrNotFound):
			jsonError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, pipeline.ErrEmptyPrompt):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			// Preview exists to expose the raw AI interaction, so
			// upstream failures surface instead of falling back.
			jsonError(w, "preview failed: "+err.Error(), http.StatusBadGateway)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(preview)
}

func (s *Server) handleFromDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !source.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	art, err := s.pipeline.GenerateFromDocument(r.Context(), filename, data)
	if err != nil {
		if errors.Is(err, source.ErrUnsupportedType) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.pipelineError(w, err)
		return
	}
	s.sendArtifact(w, art)
}

// pipelineError maps pipeline failures onto the HTTP error contract.
func (s *Server) pipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, room.ErrNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, pipeline.ErrEmptyPrompt), errors.Is(err, pipeline.ErrEmptyOutline):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		s.log.Error("mindmap generation failed", "error", err)
		jsonError(w, "mindmap generation failed: "+err.Error(), http.StatusInternalServerError)
	}
}

// sendArtifact streams the rendered SVG and removes the transient file.
func (s *Server) sendArtifact(w http.ResponseWriter, art *pipeline.Artifact) {
	defer os.Remove(art.Path)

	f, err := os.Open(art.Path)
	if err != nil {
		jsonError(w, "artifact unavailable", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", art.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	io.Copy(w, f)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
