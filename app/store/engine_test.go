package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// engine is the method set every store implementation provides
type engine interface {
	SaveSecret(ctx context.Context, msg *SecretMessage) error
	LoadSecret(ctx context.Context, token string) (*SecretMessage, error)
	RevealSecret(ctx context.Context, token string, now time.Time) (*SecretMessage, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
	ListSecrets(ctx context.Context, owner string) ([]SecretMessage, error)
	DeleteSecret(ctx context.Context, id int64, owner string) error
	SaveConfession(ctx context.Context, c *Confession) error
	ListConfessions(ctx context.Context, limit int) ([]Confession, error)
	ListOwnerConfessions(ctx context.Context, owner string) ([]Confession, error)
	UpdateConfession(ctx context.Context, id int64, owner, content string) error
	DeleteConfession(ctx context.Context, id int64, owner string) error
	Close() error
}

var (
	_ engine = (*Memory)(nil)
	_ engine = (*SQLite)(nil)
	_ engine = (*Postgres)(nil)
	_ engine = (*Redis)(nil)
)

// runEngineTests checks behavior shared by all engines, makeEngine returns a fresh empty engine
func runEngineTests(t *testing.T, makeEngine func(t *testing.T) engine) {
	t.Run("save and load", func(t *testing.T) {
		e := makeEngine(t)
		msg := newSecret("hello world", "", time.Hour)
		require.NoError(t, e.SaveSecret(t.Context(), msg))
		assert.NotZero(t, msg.ID)

		loaded, err := e.LoadSecret(t.Context(), msg.Token)
		require.NoError(t, err)
		assert.Equal(t, msg.ID, loaded.ID)
		assert.Equal(t, "hello world", loaded.Content)
		assert.False(t, loaded.Viewed)
		assert.True(t, loaded.IsAnonymous)
		assert.Equal(t, msg.ExpiresAt.UnixMilli(), loaded.ExpiresAt.UnixMilli())

		_, err = e.LoadSecret(t.Context(), "nonexistent")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate token rejected", func(t *testing.T) {
		e := makeEngine(t)
		msg := newSecret("first", "", time.Hour)
		require.NoError(t, e.SaveSecret(t.Context(), msg))
		dup := newSecret("second", "", time.Hour)
		dup.Token = msg.Token
		assert.ErrorIs(t, e.SaveSecret(t.Context(), dup), ErrSaveRejected)
	})

	t.Run("reveal once", func(t *testing.T) {
		e := makeEngine(t)
		msg := newSecret("one time only", "", time.Hour)
		require.NoError(t, e.SaveSecret(t.Context(), msg))

		res, err := e.RevealSecret(t.Context(), msg.Token, time.Now())
		require.NoError(t, err)
		assert.Equal(t, "one time only", res.Content)
		assert.Equal(t, msg.ExpiresAt.UnixMilli(), res.ExpiresAt.UnixMilli())

		_, err = e.RevealSecret(t.Context(), msg.Token, time.Now())
		assert.ErrorIs(t, err, ErrViewed)

		kept, err := e.LoadSecret(t.Context(), msg.Token)
		require.NoError(t, err, "viewed message kept until expiration")
		assert.True(t, kept.Viewed)
		assert.Empty(t, kept.Content, "content wiped on reveal")

		_, err = e.RevealSecret(t.Context(), "nonexistent", time.Now())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("reveal expired removes record", func(t *testing.T) {
		e := makeEngine(t)
		msg := newSecret("too late", "", -time.Minute)
		require.NoError(t, e.SaveSecret(t.Context(), msg))

		_, err := e.RevealSecret(t.Context(), msg.Token, time.Now())
		assert.ErrorIs(t, err, ErrExpired)

		_, err = e.LoadSecret(t.Context(), msg.Token)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("concurrent reveal has single winner", func(t *testing.T) {
		e := makeEngine(t)
		for _, n := range []int{1, 2, 10, 50} {
			msg := newSecret(fmt.Sprintf("race %d", n), "", time.Hour)
			require.NoError(t, e.SaveSecret(t.Context(), msg))

			var wins, losses atomic.Int32
			var wg sync.WaitGroup
			start := make(chan struct{})
			for range n {
				wg.Add(1)
				go func() {
					defer wg.Done()
					<-start
					res, err := e.RevealSecret(context.Background(), msg.Token, time.Now())
					if err == nil {
						assert.Equal(t, fmt.Sprintf("race %d", n), res.Content)
						wins.Add(1)
						return
					}
					assert.ErrorIs(t, err, ErrViewed)
					losses.Add(1)
				}()
			}
			close(start)
			wg.Wait()
			assert.Equal(t, int32(1), wins.Load(), "exactly one winner for n=%d", n)
			assert.Equal(t, int32(n-1), losses.Load(), "all others lose for n=%d", n)
		}
	})

	t.Run("purge expired", func(t *testing.T) {
		e := makeEngine(t)
		expired := newSecret("expired", "", -time.Minute)
		viewedExpired := newSecret("viewed", "owner1", time.Minute)
		fresh := newSecret("fresh", "", time.Hour)
		for _, m := range []*SecretMessage{expired, viewedExpired, fresh} {
			require.NoError(t, e.SaveSecret(t.Context(), m))
		}
		_, err := e.RevealSecret(t.Context(), viewedExpired.Token, time.Now())
		require.NoError(t, err)

		count, err := e.PurgeExpired(t.Context(), time.Now().Add(2*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = e.PurgeExpired(t.Context(), time.Now().Add(2*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(0), count, "second purge is a no-op")

		_, err = e.LoadSecret(t.Context(), expired.Token)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = e.LoadSecret(t.Context(), viewedExpired.Token)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = e.LoadSecret(t.Context(), fresh.Token)
		assert.NoError(t, err)

		list, err := e.ListSecrets(t.Context(), "owner1")
		require.NoError(t, err)
		assert.Empty(t, list, "purged message gone from owner listing")
	})

	t.Run("owner secrets", func(t *testing.T) {
		e := makeEngine(t)
		m1 := newSecret("m1", "owner1", time.Hour)
		m2 := newSecret("m2", "owner1", time.Hour)
		m3 := newSecret("m3", "owner2", time.Hour)
		for _, m := range []*SecretMessage{m1, m2, m3} {
			require.NoError(t, e.SaveSecret(t.Context(), m))
			time.Sleep(2 * time.Millisecond) // distinct created_at
		}

		list, err := e.ListSecrets(t.Context(), "owner1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "m2", list[0].Content, "newest first")
		assert.Equal(t, "m1", list[1].Content)
		assert.False(t, list[0].IsAnonymous)

		assert.ErrorIs(t, e.DeleteSecret(t.Context(), m1.ID, "owner2"), ErrNotFound, "foreign owner can't delete")
		require.NoError(t, e.DeleteSecret(t.Context(), m1.ID, "owner1"))
		assert.ErrorIs(t, e.DeleteSecret(t.Context(), m1.ID, "owner1"), ErrNotFound, "already deleted")

		_, err = e.LoadSecret(t.Context(), m1.Token)
		assert.ErrorIs(t, err, ErrNotFound)
		list, err = e.ListSecrets(t.Context(), "owner1")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("confessions", func(t *testing.T) {
		e := makeEngine(t)
		var saved []*Confession
		for i, owner := range []string{"", "owner1", "owner1", "owner2"} {
			c := &Confession{Content: fmt.Sprintf("c%d", i), CreatedAt: time.Now(), FirebaseUID: owner, IsAnonymous: owner == ""}
			require.NoError(t, e.SaveConfession(t.Context(), c))
			assert.NotZero(t, c.ID)
			saved = append(saved, c)
			time.Sleep(2 * time.Millisecond)
		}

		feed, err := e.ListConfessions(t.Context(), 3)
		require.NoError(t, err)
		require.Len(t, feed, 3)
		assert.Equal(t, []string{"c3", "c2", "c1"}, []string{feed[0].Content, feed[1].Content, feed[2].Content})

		all, err := e.ListConfessions(t.Context(), 0)
		require.NoError(t, err)
		assert.Len(t, all, 4)
		assert.True(t, all[3].IsAnonymous)

		mine, err := e.ListOwnerConfessions(t.Context(), "owner1")
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, "c2", mine[0].Content)

		assert.ErrorIs(t, e.UpdateConfession(t.Context(), saved[1].ID, "owner2", "hijack"), ErrNotFound)
		require.NoError(t, e.UpdateConfession(t.Context(), saved[1].ID, "owner1", "edited"))
		mine, err = e.ListOwnerConfessions(t.Context(), "owner1")
		require.NoError(t, err)
		assert.Equal(t, "edited", mine[1].Content)

		assert.ErrorIs(t, e.DeleteConfession(t.Context(), saved[0].ID, "owner1"), ErrNotFound, "anonymous is nobody's")
		require.NoError(t, e.DeleteConfession(t.Context(), saved[2].ID, "owner1"))
		all, err = e.ListConfessions(t.Context(), 0)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func newSecret(content, owner string, ttl time.Duration) *SecretMessage {
	now := time.Now()
	return &SecretMessage{
		Token:       GenerateToken(),
		Content:     content,
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
		FirebaseUID: owner,
		IsAnonymous: owner == "",
	}
}
