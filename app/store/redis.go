package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/redis/go-redis/v9"
)

// Redis implements engine with redis. Records are JSON documents, a sorted set of expiration
// instants drives PurgeExpired and per-owner sorted sets serve owner listings.
type Redis struct {
	client *redis.Client
	prefix string
}

const revealRetries = 5

// NewRedis connects to redis and verifies the connection. All keys are prefixed with "<prefix>:".
func NewRedis(options *redis.Options, prefix string) (*Redis, error) {
	log.Printf("[INFO] redis (%s) store, prefix %q", options.Addr, prefix)
	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client, prefix: prefix}, nil
}

// SaveSecret stores message and sets its ID. Token must be unique.
func (r *Redis) SaveSecret(ctx context.Context, msg *SecretMessage) error {
	id, err := r.client.Incr(ctx, r.key("secrets:seq")).Result()
	if err != nil {
		log.Printf("[ERROR] failed to allocate message id: %v", err)
		return ErrSaveRejected
	}
	msg.ID = id
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.secretKey(msg.Token), data, 0).Result()
	if err != nil || !ok {
		log.Printf("[ERROR] failed to save message %d: %v", id, err)
		return ErrSaveRejected
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, r.key("secrets:exp"), redis.Z{Score: float64(msg.ExpiresAt.UnixMilli()), Member: msg.Token})
		pipe.HSet(ctx, r.key("secrets:ids"), strconv.FormatInt(id, 10), msg.Token)
		if msg.FirebaseUID != "" {
			pipe.ZAdd(ctx, r.ownerKey(msg.FirebaseUID, "secrets"), redis.Z{Score: float64(id), Member: msg.Token})
		}
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] failed to index message %d: %v", id, err)
		_ = r.client.Del(ctx, r.secretKey(msg.Token)).Err()
		return ErrSaveRejected
	}
	log.Printf("[DEBUG] saved secret %d, exp=%v", id, msg.ExpiresAt.Local().Format(time.RFC3339))
	return nil
}

// LoadSecret retrieves message by token
func (r *Redis) LoadSecret(ctx context.Context, token string) (*SecretMessage, error) {
	return r.getSecret(ctx, r.client, token)
}

// RevealSecret consumes message by token. The record key is WATCHed, a concurrent change
// aborts the transaction and the attempt is retried against the new state.
func (r *Redis) RevealSecret(ctx context.Context, token string, now time.Time) (*SecretMessage, error) {
	key := r.secretKey(token)
	var result *SecretMessage

	txf := func(tx *redis.Tx) error {
		msg, err := r.getSecret(ctx, tx, token)
		if err != nil {
			return err
		}
		if msg.Expired(now) {
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				r.removeSecret(ctx, pipe, msg)
				return nil
			})
			if err != nil {
				return err
			}
			return ErrExpired
		}
		if msg.Viewed {
			return ErrViewed
		}

		consumed := *msg
		consumed.Viewed, consumed.Content = true, ""
		data, err := json.Marshal(consumed)
		if err != nil {
			return fmt.Errorf("encode message: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}
		result = msg
		return nil
	}

	for range revealRetries {
		err := r.client.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return result, nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrExpired), errors.Is(err, ErrViewed):
			return nil, err
		default:
			return nil, fmt.Errorf("reveal secret: %w", err)
		}
	}
	return nil, fmt.Errorf("reveal secret: %w", redis.TxFailedErr)
}

// PurgeExpired deletes all messages expired at now, viewed or not
func (r *Redis) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tokens, err := r.client.ZRangeByScore(ctx, r.key("secrets:exp"), &redis.ZRangeBy{
		Min: "-inf", Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("find expired: %w", err)
	}

	var count int64
	for _, token := range tokens {
		msg, err := r.getSecret(ctx, r.client, token)
		if errors.Is(err, ErrNotFound) {
			// already gone, drop the dangling index entry
			_ = r.client.ZRem(ctx, r.key("secrets:exp"), token).Err()
			continue
		}
		if err != nil {
			return count, err
		}
		var del *redis.IntCmd
		_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			del = r.removeSecret(ctx, pipe, msg)
			return nil
		})
		if err != nil {
			return count, fmt.Errorf("remove expired %d: %w", msg.ID, err)
		}
		count += del.Val()
	}
	return count, nil
}

// ListSecrets returns owner's messages, newest first
func (r *Redis) ListSecrets(ctx context.Context, owner string) ([]SecretMessage, error) {
	tokens, err := r.client.ZRevRange(ctx, r.ownerKey(owner, "secrets"), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list owner secrets: %w", err)
	}
	keys := make([]string, 0, len(tokens))
	for _, t := range tokens {
		keys = append(keys, r.secretKey(t))
	}

	res := []SecretMessage{}
	if err := r.mget(ctx, keys, func(data []byte) error {
		var msg SecretMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("decode message: %w", err)
		}
		res = append(res, msg)
		return nil
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteSecret removes message matching both id and owner
func (r *Redis) DeleteSecret(ctx context.Context, id int64, owner string) error {
	token, err := r.client.HGet(ctx, r.key("secrets:ids"), strconv.FormatInt(id, 10)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find secret %d: %w", id, err)
	}
	msg, err := r.getSecret(ctx, r.client, token)
	if err != nil {
		return err
	}
	if msg.FirebaseUID != owner {
		return ErrNotFound
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		r.removeSecret(ctx, pipe, msg)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete secret %d: %w", id, err)
	}
	return nil
}

// SaveConfession stores confession and sets its ID
func (r *Redis) SaveConfession(ctx context.Context, c *Confession) error {
	id, err := r.client.Incr(ctx, r.key("confessions:seq")).Result()
	if err != nil {
		log.Printf("[ERROR] failed to allocate confession id: %v", err)
		return ErrSaveRejected
	}
	c.ID = id
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode confession: %w", err)
	}
	member := strconv.FormatInt(id, 10)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.confessionKey(id), data, 0)
		pipe.ZAdd(ctx, r.key("confessions"), redis.Z{Score: float64(id), Member: member})
		if c.FirebaseUID != "" {
			pipe.ZAdd(ctx, r.ownerKey(c.FirebaseUID, "confessions"), redis.Z{Score: float64(id), Member: member})
		}
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] failed to save confession: %v", err)
		return ErrSaveRejected
	}
	return nil
}

// ListConfessions returns up to limit confessions, newest first
func (r *Redis) ListConfessions(ctx context.Context, limit int) ([]Confession, error) {
	return r.listConfessions(ctx, r.key("confessions"), limit)
}

// ListOwnerConfessions returns all owner's confessions, newest first
func (r *Redis) ListOwnerConfessions(ctx context.Context, owner string) ([]Confession, error) {
	return r.listConfessions(ctx, r.ownerKey(owner, "confessions"), 0)
}

// UpdateConfession replaces content of owner's confession
func (r *Redis) UpdateConfession(ctx context.Context, id int64, owner, content string) error {
	key := r.confessionKey(id)
	txf := func(tx *redis.Tx) error {
		c, err := r.getConfession(ctx, tx, id)
		if err != nil {
			return err
		}
		if c.FirebaseUID != owner {
			return ErrNotFound
		}
		c.Content = content
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("encode confession: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}
	if err := r.client.Watch(ctx, txf, key); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("update confession %d: %w", id, err)
	}
	return nil
}

// DeleteConfession removes owner's confession
func (r *Redis) DeleteConfession(ctx context.Context, id int64, owner string) error {
	c, err := r.getConfession(ctx, r.client, id)
	if err != nil {
		return err
	}
	if c.FirebaseUID != owner {
		return ErrNotFound
	}
	member := strconv.FormatInt(id, 10)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.confessionKey(id))
		pipe.ZRem(ctx, r.key("confessions"), member)
		pipe.ZRem(ctx, r.ownerKey(owner, "confessions"), member)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete confession %d: %w", id, err)
	}
	return nil
}

// Close closes redis client
func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("close redis: %w", err)
	}
	return nil
}

// removeSecret queues deletion of the record with all its index entries, returns the DEL command
func (r *Redis) removeSecret(ctx context.Context, pipe redis.Pipeliner, msg *SecretMessage) *redis.IntCmd {
	del := pipe.Del(ctx, r.secretKey(msg.Token))
	pipe.ZRem(ctx, r.key("secrets:exp"), msg.Token)
	pipe.HDel(ctx, r.key("secrets:ids"), strconv.FormatInt(msg.ID, 10))
	if msg.FirebaseUID != "" {
		pipe.ZRem(ctx, r.ownerKey(msg.FirebaseUID, "secrets"), msg.Token)
	}
	return del
}

func (r *Redis) listConfessions(ctx context.Context, indexKey string, limit int) ([]Confession, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	ids, err := r.client.ZRevRange(ctx, indexKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list confessions: %w", err)
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, r.key("confession:"+id))
	}

	res := []Confession{}
	if err := r.mget(ctx, keys, func(data []byte) error {
		var c Confession
		if err := json.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("decode confession: %w", err)
		}
		res = append(res, c)
		return nil
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// mget loads keys in one round trip and calls fn for each existing value, in order
func (r *Redis) mget(ctx context.Context, keys []string, fn func(data []byte) error) error {
	if len(keys) == 0 {
		return nil
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return fmt.Errorf("mget: %w", err)
	}
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // removed between index read and mget
		}
		if err := fn([]byte(s)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Redis) getSecret(ctx context.Context, c redis.Cmdable, token string) (*SecretMessage, error) {
	data, err := c.Get(ctx, r.secretKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load secret: %w", err)
	}
	var msg SecretMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode secret: %w", err)
	}
	return &msg, nil
}

func (r *Redis) getConfession(ctx context.Context, c redis.Cmdable, id int64) (*Confession, error) {
	data, err := c.Get(ctx, r.confessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load confession: %w", err)
	}
	var res Confession
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode confession: %w", err)
	}
	return &res, nil
}

// key joins prefix and name with a colon, empty prefix leaves name as is
func (r *Redis) key(name string) string {
	if r.prefix == "" {
		return name
	}
	return strings.TrimSuffix(r.prefix, ":") + ":" + name
}

func (r *Redis) secretKey(token string) string { return r.key("secret:" + token) }

func (r *Redis) confessionKey(id int64) string { return r.key("confession:" + strconv.FormatInt(id, 10)) }

func (r *Redis) ownerKey(owner, kind string) string { return r.key("owner:" + owner + ":" + kind) }
