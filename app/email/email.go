// Package email delivers share links of secret messages by email
package email

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"net/mail"
	"net/url"
	"os"
	"time"

	"github.com/go-pkgz/notify"
)

//go:generate moq -out mocks/notifier_mock.go -pkg mocks -skip-ensure -fmt goimports . Notifier

//go:embed email.tmpl.html
var defaultEmailTemplate string

// Notifier sends text to destination, implemented by notify.Email
type Notifier interface {
	Send(ctx context.Context, destination, text string) error
}

// Request contains all parameters for sending an email
type Request struct {
	To        string    // recipient email address
	FromName  string    // display name for From header, default used if empty
	Link      string    // share link of the secret message
	ExpiresAt time.Time // expiration of the secret message
}

// Config contains SMTP configuration
type Config struct {
	Enabled     bool
	Host        string
	Port        int
	Username    string
	Password    string
	From        string // format: "Display Name <email>" or just "email"
	Subject     string
	TLS         bool
	Timeout     time.Duration
	Template    string // path to custom template file (optional)
	Branding    string
	BrandingURL string
	Notifier    Notifier // optional, made from SMTP params if nil
}

// Sender sends emails with share links using go-pkgz/notify
type Sender struct {
	notifier        Notifier
	cfg             Config
	tmpl            *template.Template
	defaultFromName string
}

// NewSender creates a new email sender, returns nil sender if email is disabled
func NewSender(cfg Config) (*Sender, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	if cfg.Host == "" {
		return nil, fmt.Errorf("email host is required when email is enabled")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("email from address is required when email is enabled")
	}

	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Subject == "" {
		cfg.Subject = "You've received a secret message"
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.NewEmail(notify.SMTPParams{
			Host:        cfg.Host,
			Port:        cfg.Port,
			TLS:         cfg.TLS,
			ContentType: "text/html",
			Charset:     "UTF-8",
			Username:    cfg.Username,
			Password:    cfg.Password,
			TimeOut:     cfg.Timeout,
		})
	}

	// use default template unless custom one configured
	tmplContent := defaultEmailTemplate
	if cfg.Template != "" {
		content, err := os.ReadFile(cfg.Template)
		if err != nil {
			return nil, fmt.Errorf("failed to read email template file: %w", err)
		}
		tmplContent = string(content)
	}
	tmpl, err := template.New("email").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %w", err)
	}

	s := &Sender{notifier: notifier, cfg: cfg, tmpl: tmpl}
	s.defaultFromName = s.computeDefaultFromName()
	return s, nil
}

// Send sends an email with the share link
func (s *Sender) Send(ctx context.Context, req Request) error {
	fromName := req.FromName
	if fromName == "" {
		fromName = s.defaultFromName
	}
	body, err := s.RenderBody(req.Link, fromName, req.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	destination := s.buildMailtoDestination(req.To, s.cfg.Subject, s.buildFromAddress(req.FromName))
	if err := s.notifier.Send(ctx, destination, body); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// RenderBody renders the email body with the given link, sender name and expiration
func (s *Sender) RenderBody(link, fromName string, expiresAt time.Time) (string, error) {
	data := struct {
		Link        string
		From        string
		Expires     string
		Branding    string
		BrandingURL string
	}{
		Link:        link,
		From:        fromName,
		Expires:     expiresAt.UTC().Format("Jan 2, 2006 15:04 MST"),
		Branding:    s.cfg.Branding,
		BrandingURL: s.cfg.BrandingURL,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return buf.String(), nil
}

// GetDefaultFromName returns display name used when request has none
func (s *Sender) GetDefaultFromName() string {
	return s.defaultFromName
}

// buildFromAddress builds the From header value with display name
func (s *Sender) buildFromAddress(displayName string) string {
	if displayName == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%q <%s>", displayName, s.extractEmail(s.cfg.From))
}

// extractEmail extracts just the email address from a From string
func (s *Sender) extractEmail(from string) string {
	addr, err := mail.ParseAddress(from)
	if err != nil {
		return from // already a bare address
	}
	return addr.Address
}

func (s *Sender) computeDefaultFromName() string {
	addr, err := mail.ParseAddress(s.cfg.From)
	if err == nil && addr.Name != "" {
		return addr.Name
	}
	return s.cfg.Branding
}

// buildMailtoDestination builds the mailto URL for go-pkgz/notify
func (s *Sender) buildMailtoDestination(recipient, subject, from string) string {
	mailto := "mailto:" + recipient

	params := url.Values{}
	if subject != "" {
		params.Set("subject", subject)
	}
	if from != "" {
		params.Set("from", from)
	}
	if len(params) > 0 {
		mailto += "?" + params.Encode()
	}
	return mailto
}

// IsValidEmail performs email validation using RFC 5322 parsing
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// no display name allowed
	return addr.Address == email
}
