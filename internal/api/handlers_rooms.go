package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mindbuddy/mindbuddy/internal/room"
)

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		jsonError(w, "title is required", http.StatusBadRequest)
		return
	}

	rm := s.store.CreateRoom(req.Title)
	writeJSON(w, http.StatusCreated, rm)
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	rm, ok := s.store.Room(code)
	if !ok {
		jsonError(w, "room not found: "+code, http.StatusNotFound)
		return
	}

	votes := make(map[string]room.VoteTally)
	for _, t := range rm.Topics {
		for _, c := range t.Comments {
			votes[c.ID] = s.store.Votes(c.ID)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"room":  rm,
		"votes": votes,
	})
}

func (s *Server) handleAddTopic(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}

	t, err := s.store.AddTopic(code, req.Name)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	topicID := chi.URLParam(r, "topicID")
	var req struct {
		Nickname string `json:"nickname"`
		Content  string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		jsonError(w, "content is required", http.StatusBadRequest)
		return
	}

	c, err := s.store.AddComment(code, topicID, req.Nickname, req.Content)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentID")
	var req struct {
		VoterID   string `json:"voter_id"`
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.VoterID == "" {
		jsonError(w, "voter_id is required", http.StatusBadRequest)
		return
	}

	tally, err := s.store.Vote(commentID, req.VoterID, req.Direction)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tally)
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, room.ErrNotFound),
		errors.Is(err, room.ErrTopicNotFound),
		errors.Is(err, room.ErrCommentNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	default:
		jsonError(w, err.Error(), http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
