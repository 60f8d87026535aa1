package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/confessions/app/email"
	"github.com/umputun/confessions/app/server/validator"
	"github.com/umputun/confessions/app/store"
)

const msgNotFound = "Message not found or already viewed"

type createSecretReq struct {
	Content string `json:"content"`
	Email   string `json:"email,omitempty"`
	validator.Validator
}

type createSecretResp struct {
	Token     string    `json:"token"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expiresAt"`
	EmailSent *bool     `json:"emailSent,omitempty"`
}

// POST /api/secrets
func (s *Server) createSecretCtrl(w http.ResponseWriter, r *http.Request) {
	var req createSecretReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "can't decode request")
		return
	}

	req.CheckField(validator.NotEmpty(req.Content), "content", "content is required")
	req.CheckField(validator.MaxChars(req.Content, s.cfg.MaxSecret), "content",
		fmt.Sprintf("content must be at most %d characters", s.cfg.MaxSecret))
	if req.Email != "" {
		req.CheckField(s.emailer != nil, "email", "email delivery is disabled")
		req.CheckField(email.IsValidEmail(req.Email), "email", "invalid email address")
	}
	if !req.Valid() {
		sendValidationError(w, req.FieldErrors)
		return
	}

	msg, err := s.secrets.Create(r.Context(), req.Content, GetOwner(r))
	if err != nil {
		s.sendError(w, r, err, msgNotFound)
		return
	}

	resp := createSecretResp{Token: msg.Token, Link: s.shareLink(msg.Token), ExpiresAt: msg.ExpiresAt}
	if req.Email != "" {
		sent := true
		if err := s.emailer.Send(r.Context(), email.Request{To: req.Email, Link: resp.Link, ExpiresAt: msg.ExpiresAt}); err != nil {
			log.Printf("[WARN] failed to email share link of secret %d, %v", msg.ID, err)
			sent = false
		}
		resp.EmailSent = &sent
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	rest.RenderJSON(w, resp)
}

// GET /api/secrets/{token}
func (s *Server) revealSecretCtrl(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	// make sure reveal takes constant time on any branch
	st := time.Now()
	msg, err := s.reveal(r, token)
	time.Sleep(s.cfg.RevealMinTime - time.Since(st))

	if err != nil {
		s.sendError(w, r, err, msgNotFound)
		return
	}
	rest.RenderJSON(w, rest.JSON{"content": msg.Content, "expiresAt": msg.ExpiresAt})
}

// GET /api/my/secrets
func (s *Server) mySecretsCtrl(w http.ResponseWriter, r *http.Request) {
	list, err := s.secrets.ListByOwner(r.Context(), GetOwner(r))
	if err != nil {
		s.sendError(w, r, err, msgNotFound)
		return
	}
	rest.RenderJSON(w, list)
}

// DELETE /api/secrets/{id}
func (s *Server) deleteSecretCtrl(w http.ResponseWriter, r *http.Request) {
	id, ok := validator.PositiveID(r.PathValue("id"))
	if !ok {
		sendValidationError(w, map[string]string{"id": "invalid id"})
		return
	}
	if err := s.secrets.DeleteByOwner(r.Context(), id, GetOwner(r)); err != nil {
		s.sendError(w, r, err, msgNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reveal consumes the message, malformed tokens are reported as not found without store lookup
func (s *Server) reveal(r *http.Request, token string) (*store.SecretMessage, error) {
	if !validator.IsToken(token) {
		return nil, store.ErrNotFound
	}
	return s.secrets.Reveal(r.Context(), token)
}

func (s *Server) shareLink(token string) string {
	return s.cfg.URL + "/view/" + token
}
