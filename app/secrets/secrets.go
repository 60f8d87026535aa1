// Package secrets implements one-time secret messages on top of an injected store engine.
// Keeper validates and stamps new messages, the engine is used as a dumb storage except for
// the reveal, which must be atomic per token inside the engine.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/confessions/app/store"
)

//go:generate moq -out engine_mock.go -fmt goimports . Engine

// Errors
var (
	ErrBadContent = errors.New("bad content")
	ErrNoOwner    = errors.New("owner required")
)

// Keeper creates, reveals and purges secret messages
type Keeper struct {
	Params
	engine Engine
	now    func() time.Time
}

// Params to customize limits
type Params struct {
	TTL        time.Duration
	MaxContent int
}

// Engine defines the storage operations used by Keeper
type Engine interface {
	SaveSecret(ctx context.Context, msg *store.SecretMessage) error
	LoadSecret(ctx context.Context, token string) (*store.SecretMessage, error)
	RevealSecret(ctx context.Context, token string, now time.Time) (*store.SecretMessage, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
	ListSecrets(ctx context.Context, owner string) ([]store.SecretMessage, error)
	DeleteSecret(ctx context.Context, id int64, owner string) error
}

// New makes Keeper with the engine
func New(engine Engine, params Params) *Keeper {
	if params.TTL == 0 {
		params.TTL = 24 * time.Hour
	}
	if params.MaxContent == 0 {
		params.MaxContent = 5000
	}
	log.Printf("[INFO] created secrets keeper with %+v", params)
	return &Keeper{Params: params, engine: engine, now: time.Now}
}

// Create validates content and saves a new message expiring after TTL.
// Empty owner makes an anonymous message.
func (k *Keeper) Create(ctx context.Context, content, owner string) (*store.SecretMessage, error) {
	if err := k.validate(content); err != nil {
		log.Printf("[WARN] save rejected, %v", err)
		return nil, err
	}

	now := k.now()
	msg := &store.SecretMessage{
		Token:       store.GenerateToken(),
		Content:     content,
		ExpiresAt:   now.Add(k.TTL),
		CreatedAt:   now,
		FirebaseUID: owner,
		IsAnonymous: owner == "",
	}
	if err := k.engine.SaveSecret(ctx, msg); err != nil {
		return nil, fmt.Errorf("save secret: %w", err)
	}
	log.Printf("[INFO] created secret %d, anonymous=%v, exp=%s", msg.ID, msg.IsAnonymous, msg.ExpiresAt.Format(time.RFC3339))
	return msg, nil
}

// Get returns message by token without consuming it
func (k *Keeper) Get(ctx context.Context, token string) (*store.SecretMessage, error) {
	msg, err := k.engine.LoadSecret(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get secret: %w", err)
	}
	return msg, nil
}

// Reveal consumes message by token and returns its content with expiration.
// Absent token is store.ErrNotFound, expired one is removed and reported as store.ErrExpired,
// already consumed one is store.ErrViewed.
func (k *Keeper) Reveal(ctx context.Context, token string) (*store.SecretMessage, error) {
	msg, err := k.engine.RevealSecret(ctx, token, k.now())
	if err != nil {
		if errors.Is(err, store.ErrExpired) {
			log.Printf("[WARN] reveal of expired secret")
		}
		return nil, fmt.Errorf("reveal secret: %w", err)
	}
	log.Printf("[INFO] revealed secret %d", msg.ID)
	return &store.SecretMessage{Content: msg.Content, ExpiresAt: msg.ExpiresAt}, nil
}

// PurgeExpired removes all messages expired by now, returns number of removed messages
func (k *Keeper) PurgeExpired(ctx context.Context) (int64, error) {
	count, err := k.engine.PurgeExpired(ctx, k.now())
	if err != nil {
		return 0, fmt.Errorf("purge expired: %w", err)
	}
	return count, nil
}

// ListByOwner returns owner's messages, newest first
func (k *Keeper) ListByOwner(ctx context.Context, owner string) ([]store.SecretMessage, error) {
	if owner == "" {
		return nil, ErrNoOwner
	}
	res, err := k.engine.ListSecrets(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list secrets: %w", err)
	}
	return res, nil
}

// DeleteByOwner removes owner's message by id
func (k *Keeper) DeleteByOwner(ctx context.Context, id int64, owner string) error {
	if owner == "" {
		return ErrNoOwner
	}
	if err := k.engine.DeleteSecret(ctx, id, owner); err != nil {
		return fmt.Errorf("delete secret %d: %w", id, err)
	}
	log.Printf("[INFO] secret %d deleted by owner", id)
	return nil
}

func (k *Keeper) validate(content string) error {
	if content == "" {
		return fmt.Errorf("%w: content is empty", ErrBadContent)
	}
	if n := utf8.RuneCountInString(content); n > k.MaxContent {
		return fmt.Errorf("%w: content is %d characters, max %d", ErrBadContent, n, k.MaxContent)
	}
	return nil
}
