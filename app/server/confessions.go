package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/confessions/app/server/validator"
)

const confessionNotFound = "Confession not found"

type confessionReq struct {
	Content string `json:"content"`
	validator.Validator
}

// GET /api/confessions
func (s *Server) feedCtrl(w http.ResponseWriter, r *http.Request) {
	feed, err := s.board.Feed(r.Context())
	if err != nil {
		s.sendError(w, r, err, confessionNotFound)
		return
	}
	rest.RenderJSON(w, feed)
}

// POST /api/confessions
func (s *Server) createConfessionCtrl(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeConfession(w, r)
	if !ok {
		return
	}
	c, err := s.board.Create(r.Context(), req.Content, GetOwner(r))
	if err != nil {
		s.sendError(w, r, err, confessionNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	rest.RenderJSON(w, c)
}

// GET /api/my/confessions
func (s *Server) myConfessionsCtrl(w http.ResponseWriter, r *http.Request) {
	list, err := s.board.ListByOwner(r.Context(), GetOwner(r))
	if err != nil {
		s.sendError(w, r, err, confessionNotFound)
		return
	}
	rest.RenderJSON(w, list)
}

// PATCH /api/confessions/{id}
func (s *Server) updateConfessionCtrl(w http.ResponseWriter, r *http.Request) {
	id, ok := validator.PositiveID(r.PathValue("id"))
	if !ok {
		sendValidationError(w, map[string]string{"id": "invalid id"})
		return
	}
	req, ok := s.decodeConfession(w, r)
	if !ok {
		return
	}
	if err := s.board.Update(r.Context(), id, GetOwner(r), req.Content); err != nil {
		s.sendError(w, r, err, confessionNotFound)
		return
	}
	rest.RenderJSON(w, rest.JSON{"id": id, "content": req.Content})
}

// DELETE /api/confessions/{id}
func (s *Server) deleteConfessionCtrl(w http.ResponseWriter, r *http.Request) {
	id, ok := validator.PositiveID(r.PathValue("id"))
	if !ok {
		sendValidationError(w, map[string]string{"id": "invalid id"})
		return
	}
	if err := s.board.Delete(r.Context(), id, GetOwner(r)); err != nil {
		s.sendError(w, r, err, confessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeConfession reads and validates confession request, responds with error if not ok
func (s *Server) decodeConfession(w http.ResponseWriter, r *http.Request) (confessionReq, bool) {
	var req confessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "can't decode request")
		return req, false
	}
	req.CheckField(validator.NotEmpty(req.Content), "content", "content is required")
	req.CheckField(validator.MaxChars(req.Content, s.cfg.MaxConfession), "content",
		fmt.Sprintf("content must be at most %d characters", s.cfg.MaxConfession))
	if !req.Valid() {
		sendValidationError(w, req.FieldErrors)
		return req, false
	}
	return req, true
}
