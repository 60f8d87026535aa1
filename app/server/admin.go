package server

import (
	"crypto/subtle"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"golang.org/x/crypto/bcrypt"
)

const adminUser = "admin" // fixed username for admin basic auth

// adminAuth middleware allows requests with valid admin basic auth credentials only
func (s *Server) adminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.checkBasicAuth(r) {
			w.Header().Set("WWW-Authenticate", `Basic realm="confessions admin"`)
			rest.SendErrorJSON(w, r, log.Default(), http.StatusUnauthorized, errBadCredentials, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBasicAuth validates basic auth credentials against configured bcrypt hash
func (s *Server) checkBasicAuth(r *http.Request) bool {
	username, password, ok := r.BasicAuth()
	if !ok {
		return false
	}

	// constant-time username comparison
	usernameCorrect := subtle.ConstantTimeCompare([]byte(username), []byte(adminUser)) == 1

	// bcrypt password check (already constant-time)
	passwordCorrect := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminHash), []byte(password)) == nil

	return usernameCorrect && passwordCorrect
}

// POST /api/admin/purge
func (s *Server) purgeCtrl(w http.ResponseWriter, r *http.Request) {
	count, err := s.secrets.PurgeExpired(r.Context())
	if err != nil {
		s.sendError(w, r, err, msgNotFound)
		return
	}
	log.Printf("[INFO] admin purge removed %d messages", count)
	rest.RenderJSON(w, rest.JSON{"purged": count})
}
