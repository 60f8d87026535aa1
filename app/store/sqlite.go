package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	_ "modernc.org/sqlite" // sqlite driver
)

// SQLite implements engine with SQLite database
type SQLite struct {
	db   *sql.DB
	lock sync.RWMutex
}

// NewSQLiteInMemory creates an ephemeral in-memory SQLite store.
// Each call creates an isolated database using a unique URI.
func NewSQLiteInMemory() *SQLite {
	// generate unique URI to isolate each in-memory store instance
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	uri := "file:" + hex.EncodeToString(buf[:]) + "?mode=memory&cache=shared"
	s, err := NewSQLite(uri)
	if err != nil {
		panic("failed to create in-memory sqlite: " + err.Error())
	}
	return s
}

// NewSQLite creates a persistent SQLite-based store
func NewSQLite(dbFile string) (*SQLite, error) {
	log.Printf("[INFO] sqlite (%s) store", dbFile)

	db, err := sql.Open("sqlite", dbFile)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// configure connection pool for SQLite (single writer)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx := context.Background()

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL", "PRAGMA busy_timeout=5000"} {
		if _, err = db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %q: %w", pragma, err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS secret_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			token TEXT NOT NULL UNIQUE,
			content TEXT NOT NULL,
			viewed INTEGER NOT NULL DEFAULT 0,
			expires_at INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			firebase_uid TEXT NOT NULL DEFAULT '',
			is_anonymous INTEGER NOT NULL DEFAULT 1
		);
		CREATE INDEX IF NOT EXISTS idx_secret_messages_exp ON secret_messages(expires_at);
		CREATE TABLE IF NOT EXISTS confessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			content TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			firebase_uid TEXT NOT NULL DEFAULT '',
			is_anonymous INTEGER NOT NULL DEFAULT 1
		);
		CREATE INDEX IF NOT EXISTS idx_confessions_created ON confessions(created_at);
	`
	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	// databases created before accounts existed have no owner columns
	for _, table := range []string{"secret_messages", "confessions"} {
		if err = migrateOwner(ctx, db, table); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate %s: %w", table, err)
		}
		if _, err = db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_"+table+"_owner ON "+table+"(firebase_uid)"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create %s owner index: %w", table, err)
		}
	}

	return &SQLite{db: db}, nil
}

const secretColumns = "id, token, content, viewed, expires_at, created_at, firebase_uid, is_anonymous"

// SaveSecret stores message in the database and sets its ID
func (s *SQLite) SaveSecret(ctx context.Context, msg *SecretMessage) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO secret_messages (token, content, viewed, expires_at, created_at, firebase_uid, is_anonymous) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?)",
		msg.Token, msg.Content, msg.Viewed, msg.ExpiresAt.UnixMilli(), msg.CreatedAt.UnixMilli(), msg.FirebaseUID, msg.IsAnonymous,
	)
	if err != nil {
		log.Printf("[ERROR] failed to save message: %v", err)
		return ErrSaveRejected
	}
	if msg.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("get message id: %w", err)
	}
	log.Printf("[DEBUG] saved secret %d, exp=%v", msg.ID, msg.ExpiresAt.Local().Format(time.RFC3339))
	return nil
}

// LoadSecret retrieves message by token
func (s *SQLite) LoadSecret(ctx context.Context, token string) (*SecretMessage, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return loadSecret(ctx, s.db, token)
}

// RevealSecret consumes message by token. Lookup, expiry check and the viewed mark run in one
// transaction under the write lock, so concurrent reveals of a token are serialized.
func (s *SQLite) RevealSecret(ctx context.Context, token string, now time.Time) (*SecretMessage, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin reveal: %w", err)
	}
	defer tx.Rollback() // nolint

	msg, err := loadSecret(ctx, tx, token)
	if err != nil {
		return nil, err
	}

	if msg.Expired(now) {
		if _, err = tx.ExecContext(ctx, "DELETE FROM secret_messages WHERE id = ?", msg.ID); err != nil {
			return nil, fmt.Errorf("remove expired message: %w", err)
		}
		if err = tx.Commit(); err != nil {
			return nil, fmt.Errorf("commit expired removal: %w", err)
		}
		log.Printf("[INFO] removed expired secret %d", msg.ID)
		return nil, ErrExpired
	}

	if msg.Viewed {
		return nil, ErrViewed
	}

	if _, err = tx.ExecContext(ctx, "UPDATE secret_messages SET viewed = 1, content = '' WHERE id = ?", msg.ID); err != nil {
		return nil, fmt.Errorf("mark message viewed: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reveal: %w", err)
	}
	return msg, nil
}

// PurgeExpired deletes all messages expired at now, viewed or not
func (s *SQLite) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM secret_messages WHERE expires_at <= ?", now.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purge expired: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purged count: %w", err)
	}
	return count, nil
}

// ListSecrets returns owner's messages, newest first
func (s *SQLite) ListSecrets(ctx context.Context, owner string) ([]SecretMessage, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+secretColumns+" FROM secret_messages WHERE firebase_uid = ? ORDER BY created_at DESC, id DESC", owner)
	if err != nil {
		return nil, fmt.Errorf("list secrets: %w", err)
	}
	defer rows.Close()

	res := []SecretMessage{}
	for rows.Next() {
		msg, err := scanSecret(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate secrets: %w", err)
	}
	return res, nil
}

// DeleteSecret removes message matching both id and owner
func (s *SQLite) DeleteSecret(ctx context.Context, id int64, owner string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.deleteOwned(ctx, "secret_messages", id, owner)
}

// SaveConfession stores confession and sets its ID
func (s *SQLite) SaveConfession(ctx context.Context, c *Confession) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO confessions (content, created_at, firebase_uid, is_anonymous) VALUES (?, ?, ?, ?)",
		c.Content, c.CreatedAt.UnixMilli(), c.FirebaseUID, c.IsAnonymous)
	if err != nil {
		log.Printf("[ERROR] failed to save confession: %v", err)
		return ErrSaveRejected
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("get confession id: %w", err)
	}
	return nil
}

// ListConfessions returns up to limit confessions, newest first
func (s *SQLite) ListConfessions(ctx context.Context, limit int) ([]Confession, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if limit <= 0 {
		limit = -1 // no limit in sqlite
	}
	return s.queryConfessions(ctx,
		"SELECT id, content, created_at, firebase_uid, is_anonymous FROM confessions ORDER BY created_at DESC, id DESC LIMIT ?", limit)
}

// ListOwnerConfessions returns all owner's confessions, newest first
func (s *SQLite) ListOwnerConfessions(ctx context.Context, owner string) ([]Confession, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.queryConfessions(ctx,
		"SELECT id, content, created_at, firebase_uid, is_anonymous FROM confessions WHERE firebase_uid = ? ORDER BY created_at DESC, id DESC", owner)
}

// UpdateConfession replaces content of owner's confession
func (s *SQLite) UpdateConfession(ctx context.Context, id int64, owner, content string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE confessions SET content = ? WHERE id = ? AND firebase_uid = ?", content, id, owner)
	if err != nil {
		return fmt.Errorf("update confession: %w", err)
	}
	return affectedOrNotFound(res)
}

// DeleteConfession removes owner's confession
func (s *SQLite) DeleteConfession(ctx context.Context, id int64, owner string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.deleteOwned(ctx, "confessions", id, owner)
}

// Close closes the database connection
func (s *SQLite) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}

func (s *SQLite) deleteOwned(ctx context.Context, table string, id int64, owner string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ? AND firebase_uid = ?", id, owner)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if err = affectedOrNotFound(res); err != nil {
		return err
	}
	log.Printf("[INFO] removed %d from %s", id, table)
	return nil
}

func (s *SQLite) queryConfessions(ctx context.Context, query string, args ...any) ([]Confession, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list confessions: %w", err)
	}
	defer rows.Close()

	res := []Confession{}
	for rows.Next() {
		var c Confession
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.Content, &createdAt, &c.FirebaseUID, &c.IsAnonymous); err != nil {
			return nil, fmt.Errorf("scan confession: %w", err)
		}
		c.CreatedAt = time.UnixMilli(createdAt)
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate confessions: %w", err)
	}
	return res, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func loadSecret(ctx context.Context, q querier, token string) (*SecretMessage, error) {
	msg, err := scanSecret(q.QueryRowContext(ctx, "SELECT "+secretColumns+" FROM secret_messages WHERE token = ?", token))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("[ERROR] failed to load message: %v", err)
		return nil, err
	}
	return msg, nil
}

func scanSecret(row scanner) (*SecretMessage, error) {
	var msg SecretMessage
	var expiresAt, createdAt int64
	err := row.Scan(&msg.ID, &msg.Token, &msg.Content, &msg.Viewed, &expiresAt, &createdAt, &msg.FirebaseUID, &msg.IsAnonymous)
	if err != nil {
		return nil, fmt.Errorf("scan secret: %w", err)
	}
	msg.ExpiresAt = time.UnixMilli(expiresAt)
	msg.CreatedAt = time.UnixMilli(createdAt)
	return &msg, nil
}

func affectedOrNotFound(res sql.Result) error {
	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("affected rows: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// migrateOwner adds firebase_uid and is_anonymous columns to tables created without them
func migrateOwner(ctx context.Context, db *sql.DB, table string) error {
	// check which columns exist using PRAGMA table_info
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+table+")")
	if err != nil {
		return fmt.Errorf("query table info: %w", err)
	}
	defer rows.Close()

	columns := map[string]bool{}
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dfltValue sql.NullString
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scan table info: %w", err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate table info: %w", err)
	}

	if !columns["firebase_uid"] {
		log.Printf("[INFO] migrating database: adding %s.firebase_uid column", table)
		if _, err := db.ExecContext(ctx, "ALTER TABLE "+table+" ADD COLUMN firebase_uid TEXT NOT NULL DEFAULT ''"); err != nil {
			return fmt.Errorf("add firebase_uid column: %w", err)
		}
	}
	if !columns["is_anonymous"] {
		log.Printf("[INFO] migrating database: adding %s.is_anonymous column", table)
		if _, err := db.ExecContext(ctx, "ALTER TABLE "+table+" ADD COLUMN is_anonymous INTEGER NOT NULL DEFAULT 1"); err != nil {
			return fmt.Errorf("add is_anonymous column: %w", err)
		}
	}
	return nil
}
