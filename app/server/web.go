package server

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/confessions/app/server/assets"
	"github.com/umputun/confessions/app/server/validator"
	"github.com/umputun/confessions/app/store"
)

// states of the share page
const (
	stateReady   = "ready"
	stateViewed  = "viewed"
	stateExpired = "expired"
	stateMissing = "missing"
)

type viewData struct {
	State   string
	Token   string
	Expires string
}

func parseViewTemplate() (*template.Template, error) {
	return template.ParseFS(assets.Files, "html/view.tmpl.html")
}

// GET /view/{token}
// renders the share page, it only looks the message up and never consumes it
func (s *Server) viewCtrl(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if !validator.IsToken(token) {
		s.renderView(w, http.StatusNotFound, viewData{State: stateMissing})
		return
	}
	msg, err := s.secrets.Get(r.Context(), token)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.renderView(w, http.StatusNotFound, viewData{State: stateMissing})
	case err != nil:
		log.Printf("[WARN] can't load secret for view, %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	case msg.Expired(time.Now()):
		s.renderView(w, http.StatusGone, viewData{State: stateExpired})
	case msg.Viewed:
		s.renderView(w, http.StatusGone, viewData{State: stateViewed})
	default:
		s.renderView(w, http.StatusOK, viewData{
			State:   stateReady,
			Token:   msg.Token,
			Expires: msg.ExpiresAt.UTC().Format("Jan 2, 2006 15:04 MST"),
		})
	}
}

// renderView executes the share page template into a buffer and writes it with status
func (s *Server) renderView(w http.ResponseWriter, status int, data viewData) {
	buf := new(bytes.Buffer)
	if err := s.viewTmpl.ExecuteTemplate(buf, "view", data); err != nil {
		log.Printf("[ERROR] %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[WARN] can't write view page, %v", err)
	}
}
