// Package store defines secret messages and confessions along with the storage engines keeping them.
// Engines are dumb keyed containers, the only logic they own is the atomic reveal of a secret
// message, which has to be serialized per token by the engine itself.
package store

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Errors returned by engines
var (
	ErrNotFound     = errors.New("not found")
	ErrExpired      = errors.New("message expired")
	ErrViewed       = errors.New("message already viewed")
	ErrSaveRejected = errors.New("can't save")
)

// SecretMessage is a one-time message addressed by token
type SecretMessage struct {
	ID          int64     `json:"id"`
	Token       string    `json:"token"`
	Content     string    `json:"content"`
	Viewed      bool      `json:"viewed"`
	ExpiresAt   time.Time `json:"expiresAt"`
	CreatedAt   time.Time `json:"createdAt"`
	FirebaseUID string    `json:"firebaseUid,omitempty"`
	IsAnonymous bool      `json:"isAnonymous"`
}

// Expired reports whether the message is past its expiration at the given time
func (m SecretMessage) Expired(now time.Time) bool {
	return !now.Before(m.ExpiresAt)
}

// Confession is a publicly listed text
type Confession struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	FirebaseUID string    `json:"firebaseUid,omitempty"`
	IsAnonymous bool      `json:"isAnonymous"`
}

// TokenSize is the length of generated tokens
const TokenSize = 32

// GenerateToken makes a random token of TokenSize hex characters.
// Backed by uuid v4, i.e. 122 bits from crypto/rand.
func GenerateToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
