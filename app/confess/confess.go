// Package confess implements the public confession board. Anyone can post, owners can list,
// edit and remove their own confessions.
package confess

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

// Engine defines the storage operations used by Board
type Engine interface {
	SaveConfession(ctx context.Context, c *store.Confession) error
	ListConfessions(ctx context.Context, limit int) ([]store.Confession, error)
	ListOwnerConfessions(ctx context.Context, owner string) ([]store.Confession, error)
	UpdateConfession(ctx context.Context, id int64, owner, content string) error
	DeleteConfession(ctx context.Context, id int64, owner string) error
}

// Params to customize limits
type Params struct {
	FeedSize   int
	MaxContent int
}

// Board posts and lists confessions
type Board struct {
	Params
	engine Engine
}

// New makes Board with the engine
func New(engine Engine, params Params) *Board {
	if params.FeedSize == 0 {
		params.FeedSize = 50
	}
	if params.MaxContent == 0 {
		params.MaxContent = 1000
	}
	return &Board{Params: params, engine: engine}
}

// Feed returns the latest confessions, newest first
func (b *Board) Feed(ctx context.Context) ([]store.Confession, error) {
	res, err := b.engine.ListConfessions(ctx, b.FeedSize)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	return res, nil
}

// Create posts a confession, empty owner makes it anonymous
func (b *Board) Create(ctx context.Context, content, owner string) (*store.Confession, error) {
	if err := b.validate(content); err != nil {
		return nil, err
	}
	c := &store.Confession{Content: content, CreatedAt: time.Now(), FirebaseUID: owner, IsAnonymous: owner == ""}
	if err := b.engine.SaveConfession(ctx, c); err != nil {
		return nil, fmt.Errorf("save confession: %w", err)
	}
	log.Printf("[INFO] confession %d posted, anonymous=%v", c.ID, c.IsAnonymous)
	return c, nil
}

// ListByOwner returns owner's confessions, newest first
func (b *Board) ListByOwner(ctx context.Context, owner string) ([]store.Confession, error) {
	if owner == "" {
		return nil, ErrNoOwner
	}
	res, err := b.engine.ListOwnerConfessions(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list confessions: %w", err)
	}
	return res, nil
}

// Update replaces content of owner's confession
func (b *Board) Update(ctx context.Context, id int64, owner, content string) error {
	if owner == "" {
		return ErrNoOwner
	}
	if err := b.validate(content); err != nil {
		return err
	}
	if err := b.engine.UpdateConfession(ctx, id, owner, content); err != nil {
		return fmt.Errorf("update confession %d: %w", id, err)
	}
	return nil
}

// Delete removes owner's confession
func (b *Board) Delete(ctx context.Context, id int64, owner string) error {
	if owner == "" {
		return ErrNoOwner
	}
	if err := b.engine.DeleteConfession(ctx, id, owner); err != nil {
		return fmt.Errorf("delete confession %d: %w", id, err)
	}
	log.Printf("[INFO] confession %d deleted by owner", id)
	return nil
}

func (b *Board) validate(content string) error {
	if content == "" {
		return fmt.Errorf("%w: content is empty", ErrBadContent)
	}
	if n := utf8.RuneCountInString(content); n > b.MaxContent {
		return fmt.Errorf("%w: content is %d characters, max %d", ErrBadContent, n, b.MaxContent)
	}
	return nil
}
