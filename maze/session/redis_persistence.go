package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wricardo/maze-runner/maze/service"
)

const (
	// Redis key prefix for persisted sessions
	sessionKeyPrefix = "maze:session:"

	defaultRedisTimeout = 2 * time.Second
)

// RedisPersistence implements Persistence on a Redis server, one string key
// per session holding the same JSON document FilePersistence writes.
type RedisPersistence struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
}

// RedisOption configures a RedisPersistence instance
type RedisOption func(*RedisPersistence)

// WithTTL expires stored sessions after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(rp *RedisPersistence) {
		rp.ttl = ttl
	}
}

// WithTimeout bounds each Redis round trip
func WithTimeout(timeout time.Duration) RedisOption {
	return func(rp *RedisPersistence) {
		rp.timeout = timeout
	}
}

// NewRedisPersistence constructs a Redis-backed session store. The client
// lifecycle is managed by the caller.
func NewRedisPersistence(client *redis.Client, opts ...RedisOption) *RedisPersistence {
	rp := &RedisPersistence{
		client:  client,
		timeout: defaultRedisTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(rp)
		}
	}
	return rp
}

// NewRedisClient connects to addr, which may be host:port or a redis:// URL,
// and verifies the connection with a ping.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis URL: %w", err)
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Save persists a session under its key
func (rp *RedisPersistence) Save(sess *service.Session) error {
	jsonData, err := encodeSession(sess)
	if err != nil {
		return err
	}

	ctx, cancel := rp.context()
	defer cancel()
	if err := rp.client.Set(ctx, sessionKey(sess.ID), jsonData, rp.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Load retrieves a session by ID
func (rp *RedisPersistence) Load(id string) (*service.Session, error) {
	ctx, cancel := rp.context()
	defer cancel()

	jsonData, err := rp.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	return decodeSession(jsonData)
}

// Delete removes a session key
func (rp *RedisPersistence) Delete(id string) error {
	ctx, cancel := rp.context()
	defer cancel()

	removed, err := rp.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if removed == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll returns all persisted session IDs
func (rp *RedisPersistence) ListAll() ([]string, error) {
	ctx, cancel := rp.context()
	defer cancel()

	var ids []string
	iter := rp.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), sessionKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return ids, nil
}

// Exists checks if a session key exists
func (rp *RedisPersistence) Exists(id string) bool {
	ctx, cancel := rp.context()
	defer cancel()

	n, err := rp.client.Exists(ctx, sessionKey(id)).Result()
	return err == nil && n > 0
}

func (rp *RedisPersistence) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), rp.timeout)
}

func sessionKey(id string) string {
	return sessionKeyPrefix + strings.ToLower(id)
}
