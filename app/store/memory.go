package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory implements engine with plain maps guarded by a single mutex.
// Nothing survives restart, intended for tests and throwaway instances.
type Memory struct {
	lock        sync.Mutex
	secrets     map[string]*SecretMessage // by token
	confessions map[int64]*Confession
	secretSeq   int64
	confessSeq  int64
}

// NewMemory makes an empty in-memory engine
func NewMemory() *Memory {
	return &Memory{
		secrets:     map[string]*SecretMessage{},
		confessions: map[int64]*Confession{},
	}
}

// SaveSecret stores message and sets its ID. Token must be unique.
func (m *Memory) SaveSecret(_ context.Context, msg *SecretMessage) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.secrets[msg.Token]; ok {
		return ErrSaveRejected
	}
	m.secretSeq++
	msg.ID = m.secretSeq
	rec := *msg
	m.secrets[msg.Token] = &rec
	return nil
}

// LoadSecret returns a copy of the message by token
func (m *Memory) LoadSecret(_ context.Context, token string) (*SecretMessage, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	rec, ok := m.secrets[token]
	if !ok {
		return nil, ErrNotFound
	}
	res := *rec
	return &res, nil
}

// RevealSecret consumes message by token, the whole check-then-consume runs under the lock
func (m *Memory) RevealSecret(_ context.Context, token string, now time.Time) (*SecretMessage, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	rec, ok := m.secrets[token]
	if !ok {
		return nil, ErrNotFound
	}
	if rec.Expired(now) {
		delete(m.secrets, token)
		return nil, ErrExpired
	}
	if rec.Viewed {
		return nil, ErrViewed
	}
	res := *rec
	rec.Viewed, rec.Content = true, ""
	return &res, nil
}

// PurgeExpired removes all messages expired at now
func (m *Memory) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	var count int64
	for token, rec := range m.secrets {
		if rec.Expired(now) {
			delete(m.secrets, token)
			count++
		}
	}
	return count, nil
}

// ListSecrets returns owner's messages, newest first
func (m *Memory) ListSecrets(_ context.Context, owner string) ([]SecretMessage, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	res := []SecretMessage{}
	for _, rec := range m.secrets {
		if rec.FirebaseUID == owner {
			res = append(res, *rec)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	return res, nil
}

// DeleteSecret removes message matching both id and owner
func (m *Memory) DeleteSecret(_ context.Context, id int64, owner string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	for token, rec := range m.secrets {
		if rec.ID == id && rec.FirebaseUID == owner {
			delete(m.secrets, token)
			return nil
		}
	}
	return ErrNotFound
}

// SaveConfession stores confession and sets its ID
func (m *Memory) SaveConfession(_ context.Context, c *Confession) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.confessSeq++
	c.ID = m.confessSeq
	rec := *c
	m.confessions[c.ID] = &rec
	return nil
}

// ListConfessions returns up to limit confessions, newest first
func (m *Memory) ListConfessions(_ context.Context, limit int) ([]Confession, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	res := m.sortedConfessions(func(*Confession) bool { return true })
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

// ListOwnerConfessions returns all owner's confessions, newest first
func (m *Memory) ListOwnerConfessions(_ context.Context, owner string) ([]Confession, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.sortedConfessions(func(c *Confession) bool { return c.FirebaseUID == owner }), nil
}

// UpdateConfession replaces content of owner's confession
func (m *Memory) UpdateConfession(_ context.Context, id int64, owner, content string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	rec, ok := m.confessions[id]
	if !ok || rec.FirebaseUID != owner {
		return ErrNotFound
	}
	rec.Content = content
	return nil
}

// DeleteConfession removes owner's confession
func (m *Memory) DeleteConfession(_ context.Context, id int64, owner string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	rec, ok := m.confessions[id]
	if !ok || rec.FirebaseUID != owner {
		return ErrNotFound
	}
	delete(m.confessions, id)
	return nil
}

// Close does nothing, memory engine has no resources to release
func (m *Memory) Close() error { return nil }

// sortedConfessions collects matching confessions, newest first. Caller holds the lock.
func (m *Memory) sortedConfessions(match func(*Confession) bool) []Confession {
	res := []Confession{}
	for _, c := range m.confessions {
		if match(c) {
			res = append(res, *c)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID > res[j].ID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res
}
