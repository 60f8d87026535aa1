package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Postgres implements engine with PostgreSQL via gorm
type Postgres struct {
	db *gorm.DB
}

type secretRow struct {
	ID          int64     `gorm:"primaryKey"`
	Token       string    `gorm:"uniqueIndex;not null"`
	Content     string    `gorm:"not null"`
	Viewed      bool      `gorm:"not null;default:false"`
	ExpiresAt   time.Time `gorm:"index;not null"`
	CreatedAt   time.Time `gorm:"not null"`
	FirebaseUID string    `gorm:"column:firebase_uid;index;not null;default:''"`
	IsAnonymous bool      `gorm:"not null"`
}

func (secretRow) TableName() string { return "secret_messages" }

type confessionRow struct {
	ID          int64     `gorm:"primaryKey"`
	Content     string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index;not null"`
	FirebaseUID string    `gorm:"column:firebase_uid;index;not null;default:''"`
	IsAnonymous bool      `gorm:"not null"`
}

func (confessionRow) TableName() string { return "confessions" }

// NewPostgres connects to PostgreSQL with dsn and migrates the schema
func NewPostgres(dsn string) (*Postgres, error) {
	log.Printf("[INFO] postgres store")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err = db.AutoMigrate(&secretRow{}, &confessionRow{}); err != nil {
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return &Postgres{db: db}, nil
}

// SaveSecret stores message and sets its ID
func (p *Postgres) SaveSecret(ctx context.Context, msg *SecretMessage) error {
	row := secretRow{
		Token: msg.Token, Content: msg.Content, Viewed: msg.Viewed, ExpiresAt: msg.ExpiresAt,
		CreatedAt: msg.CreatedAt, FirebaseUID: msg.FirebaseUID, IsAnonymous: msg.IsAnonymous,
	}
	if err := p.db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("[ERROR] failed to save message: %v", err)
		return ErrSaveRejected
	}
	msg.ID = row.ID
	return nil
}

// LoadSecret retrieves message by token
func (p *Postgres) LoadSecret(ctx context.Context, token string) (*SecretMessage, error) {
	var row secretRow
	res := p.db.WithContext(ctx).Where("token = ?", token).Limit(1).Find(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("load secret: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return row.message(), nil
}

// RevealSecret consumes message by token. The row is locked with SELECT ... FOR UPDATE
// for the whole transaction, concurrent revealers wait and then see it viewed or deleted.
func (p *Postgres) RevealSecret(ctx context.Context, token string, now time.Time) (*SecretMessage, error) {
	var result *SecretMessage
	expired := false
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row secretRow
		res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("token = ?", token).Limit(1).Find(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		msg := row.message()
		if msg.Expired(now) {
			expired = true
			return tx.Delete(&secretRow{}, row.ID).Error
		}
		if row.Viewed {
			return ErrViewed
		}
		result = msg
		return tx.Model(&secretRow{}).Where("id = ?", row.ID).
			Updates(map[string]any{"viewed": true, "content": ""}).Error
	})
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrViewed):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("reveal secret: %w", err)
	case expired:
		return nil, ErrExpired
	}
	return result, nil
}

// PurgeExpired deletes all messages expired at now, viewed or not
func (p *Postgres) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := p.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&secretRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge expired: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ListSecrets returns owner's messages, newest first
func (p *Postgres) ListSecrets(ctx context.Context, owner string) ([]SecretMessage, error) {
	var rows []secretRow
	if err := p.db.WithContext(ctx).Where("firebase_uid = ?", owner).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list secrets: %w", err)
	}
	res := make([]SecretMessage, 0, len(rows))
	for _, r := range rows {
		res = append(res, *r.message())
	}
	return res, nil
}

// DeleteSecret removes message matching both id and owner
func (p *Postgres) DeleteSecret(ctx context.Context, id int64, owner string) error {
	res := p.db.WithContext(ctx).Where("id = ? AND firebase_uid = ?", id, owner).Delete(&secretRow{})
	if res.Error != nil {
		return fmt.Errorf("delete secret: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveConfession stores confession and sets its ID
func (p *Postgres) SaveConfession(ctx context.Context, c *Confession) error {
	row := confessionRow{Content: c.Content, CreatedAt: c.CreatedAt, FirebaseUID: c.FirebaseUID, IsAnonymous: c.IsAnonymous}
	if err := p.db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("[ERROR] failed to save confession: %v", err)
		return ErrSaveRejected
	}
	c.ID = row.ID
	return nil
}

// ListConfessions returns up to limit confessions, newest first
func (p *Postgres) ListConfessions(ctx context.Context, limit int) ([]Confession, error) {
	q := p.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return p.findConfessions(q)
}

// ListOwnerConfessions returns all owner's confessions, newest first
func (p *Postgres) ListOwnerConfessions(ctx context.Context, owner string) ([]Confession, error) {
	return p.findConfessions(p.db.WithContext(ctx).Where("firebase_uid = ?", owner).Order("created_at DESC, id DESC"))
}

// UpdateConfession replaces content of owner's confession
func (p *Postgres) UpdateConfession(ctx context.Context, id int64, owner, content string) error {
	res := p.db.WithContext(ctx).Model(&confessionRow{}).Where("id = ? AND firebase_uid = ?", id, owner).Update("content", content)
	if res.Error != nil {
		return fmt.Errorf("update confession: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteConfession removes owner's confession
func (p *Postgres) DeleteConfession(ctx context.Context, id int64, owner string) error {
	res := p.db.WithContext(ctx).Where("id = ? AND firebase_uid = ?", id, owner).Delete(&confessionRow{})
	if res.Error != nil {
		return fmt.Errorf("delete confession: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes underlying connection pool
func (p *Postgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return fmt.Errorf("get postgres pool: %w", err)
	}
	if err = sqlDB.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}
	return nil
}

func (p *Postgres) findConfessions(q *gorm.DB) ([]Confession, error) {
	var rows []confessionRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list confessions: %w", err)
	}
	res := make([]Confession, 0, len(rows))
	for _, r := range rows {
		res = append(res, Confession{ID: r.ID, Content: r.Content, CreatedAt: r.CreatedAt, FirebaseUID: r.FirebaseUID, IsAnonymous: r.IsAnonymous})
	}
	return res, nil
}

func (r secretRow) message() *SecretMessage {
	return &SecretMessage{
		ID: r.ID, Token: r.Token, Content: r.Content, Viewed: r.Viewed, ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt, FirebaseUID: r.FirebaseUID, IsAnonymous: r.IsAnonymous,
	}
}
