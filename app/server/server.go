// Package server provides rest-like api for confessions and secret messages
// and serves the share page of secret messages
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/confessions/app/confess"
	"github.com/umputun/confessions/app/email"
	"github.com/umputun/confessions/app/secrets"
	"github.com/umputun/confessions/app/store"
)

//go:generate moq -out secrets_mock.go -fmt goimports . Secrets
//go:generate moq -out confessions_mock.go -fmt goimports . Confessions
//go:generate moq -out email_sender_mock.go -fmt goimports . EmailSender

var (
	errNoOwnerHeader  = errors.New("no owner header")
	errBadCredentials = errors.New("bad admin credentials")
)

// Config is a configuration for the server
type Config struct {
	Listen        string
	URL           string // public url, base of share links
	OwnerHeader   string // request header carrying owner identity
	MaxSecret     int    // max characters in secret message
	MaxConfession int    // max characters in confession
	SecretTTL     time.Duration
	FeedSize      int
	RevealMinTime time.Duration // reveal responses are padded to this duration
	RateLimit     float64       // requests per second per client ip
	Timeout       time.Duration // api request timeout
	AdminHash     string        // bcrypt hash of admin password, admin api disabled if empty
	IPSecret      string        // hmac key for ip anonymization in logs
}

// Secrets is a set of secret message operations
type Secrets interface {
	Create(ctx context.Context, content, owner string) (*store.SecretMessage, error)
	Get(ctx context.Context, token string) (*store.SecretMessage, error)
	Reveal(ctx context.Context, token string) (*store.SecretMessage, error)
	PurgeExpired(ctx context.Context) (int64, error)
	ListByOwner(ctx context.Context, owner string) ([]store.SecretMessage, error)
	DeleteByOwner(ctx context.Context, id int64, owner string) error
}

// Confessions is a set of confession board operations
type Confessions interface {
	Feed(ctx context.Context) ([]store.Confession, error)
	Create(ctx context.Context, content, owner string) (*store.Confession, error)
	ListByOwner(ctx context.Context, owner string) ([]store.Confession, error)
	Update(ctx context.Context, id int64, owner, content string) error
	Delete(ctx context.Context, id int64, owner string) error
}

// EmailSender delivers share links
type EmailSender interface {
	Send(ctx context.Context, req email.Request) error
}

// Server is a rest server for confessions and secret messages
type Server struct {
	secrets  Secrets
	board    Confessions
	emailer  EmailSender
	cfg      Config
	version  string
	viewTmpl *template.Template
}

// New makes Server. Emailer is optional, nil disables email delivery.
func New(sec Secrets, board Confessions, emailer EmailSender, version string, cfg Config) (*Server, error) {
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.OwnerHeader == "" {
		cfg.OwnerHeader = "X-Firebase-Uid"
	}
	if cfg.MaxSecret == 0 {
		cfg.MaxSecret = 5000
	}
	if cfg.MaxConfession == 0 {
		cfg.MaxConfession = 1000
	}
	if cfg.SecretTTL == 0 {
		cfg.SecretTTL = 24 * time.Hour
	}
	if cfg.FeedSize == 0 {
		cfg.FeedSize = 50
	}
	if cfg.RevealMinTime == 0 {
		cfg.RevealMinTime = 100 * time.Millisecond
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 10
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	cfg.URL = strings.TrimSuffix(cfg.URL, "/")

	tmpl, err := parseViewTemplate()
	if err != nil {
		return nil, fmt.Errorf("can't parse view template: %w", err)
	}
	return &Server{secrets: sec, board: board, emailer: emailer, cfg: cfg, version: version, viewTmpl: tmpl}, nil
}

// Run the listener and request's router, activate rest server. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log.Printf("[INFO] activate rest server on %s", s.cfg.Listen)

	httpServer := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[ERROR] failed to shutdown http server, %v", err)
		}
	}()

	err := httpServer.ListenAndServe()
	log.Printf("[WARN] http server terminated, %s", err)

	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	router.Use(rest.RealIP, rest.Recoverer(log.Default()), rest.Trace, rest.Throttle(1000))
	router.Use(rest.AppInfo("confessions", "umputun", s.version), rest.Ping, rest.SizeLimit(64*1024))
	router.Use(StripSlashes, SecurityHeaders(strings.HasPrefix(s.cfg.URL, "https://")))
	router.Use(HashedIP(s.cfg.IPSecret), Logger(log.Default(), s.cfg.IPSecret))

	router.NotFoundHandler(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, errors.New("no route"), "not found")
			return
		}
		s.renderView(w, http.StatusNotFound, viewData{State: stateMissing})
	})

	router.Mount("/api").Route(func(api *routegroup.Bundle) {
		api.Use(RateLimit(s.cfg.RateLimit), Timeout(s.cfg.Timeout), Owner(s.cfg.OwnerHeader))
		api.HandleFunc("GET /params", s.paramsCtrl)
		api.HandleFunc("GET /confessions", s.feedCtrl)
		api.HandleFunc("POST /confessions", s.createConfessionCtrl)
		api.HandleFunc("POST /secrets", s.createSecretCtrl)
		api.HandleFunc("GET /secrets/{token}", s.revealSecretCtrl)

		api.Group().Route(func(owned *routegroup.Bundle) {
			owned.Use(RequireOwner)
			owned.HandleFunc("GET /my/confessions", s.myConfessionsCtrl)
			owned.HandleFunc("PATCH /confessions/{id}", s.updateConfessionCtrl)
			owned.HandleFunc("DELETE /confessions/{id}", s.deleteConfessionCtrl)
			owned.HandleFunc("GET /my/secrets", s.mySecretsCtrl)
			owned.HandleFunc("DELETE /secrets/{id}", s.deleteSecretCtrl)
		})

		if s.cfg.AdminHash != "" {
			api.Group().Route(func(admin *routegroup.Bundle) {
				admin.Use(s.adminAuth)
				admin.HandleFunc("POST /admin/purge", s.purgeCtrl)
			})
		}
	})

	router.HandleFunc("GET /view/{token}", s.viewCtrl)
	router.HandleFunc("GET /robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /api/\nDisallow: /view/\n"))
	})

	return router
}

// GET /api/params
func (s *Server) paramsCtrl(w http.ResponseWriter, _ *http.Request) {
	rest.RenderJSON(w, rest.JSON{
		"maxSecretLength":     s.cfg.MaxSecret,
		"maxConfessionLength": s.cfg.MaxConfession,
		"ttlSeconds":          int(s.cfg.SecretTTL.Seconds()),
		"feedSize":            s.cfg.FeedSize,
		"emailEnabled":        s.emailer != nil,
	})
}

// sendError maps service errors to http status, notFoundMsg is used for store.ErrNotFound
func (s *Server) sendError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, secrets.ErrBadContent), errors.Is(err, confess.ErrBadContent):
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid content")
	case errors.Is(err, secrets.ErrNoOwner), errors.Is(err, confess.ErrNoOwner):
		rest.SendErrorJSON(w, r, log.Default(), http.StatusUnauthorized, err, "authentication required")
	case errors.Is(err, store.ErrNotFound):
		rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, notFoundMsg)
	case errors.Is(err, store.ErrExpired):
		rest.SendErrorJSON(w, r, log.Default(), http.StatusGone, err, "Message has expired")
	case errors.Is(err, store.ErrViewed):
		rest.SendErrorJSON(w, r, log.Default(), http.StatusGone, err, "Message has already been viewed")
	default:
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "internal error")
	}
}

// sendValidationError responds 400 with per-field messages
func sendValidationError(w http.ResponseWriter, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	rest.RenderJSON(w, rest.JSON{"error": "validation failed", "fields": fields})
}
