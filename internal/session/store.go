// Package session persists SessionContext snapshots between turns so a
// restarted assistant can resume topic tracking and user memory. The dialogue
// core serializes its own state; this package only moves opaque bytes.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/4lin107/xiaozhi-assistant/internal/core/error"
	logx "github.com/4lin107/xiaozhi-assistant/pkg/logger"
)

// Config selects the snapshot driver.
type Config struct {
	Driver string `envconfig:"SESSION_DRIVER" default:"memory"`
	TTL    string `envconfig:"SESSION_TTL" default:"24h"`
}

// Store saves and loads session state keyed by session id. Load returns
// (nil, nil) when no snapshot exists.
type Store interface {
	Save(ctx context.Context, id string, state []byte) error
	Load(ctx context.Context, id string) ([]byte, error)
	Close() error
}

// NewStore builds a Store for the configured driver. The Redis driver
// requires a client.
func NewStore(cfg Config, client *redis.Client) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return &memoryStore{states: make(map[string][]byte)}, nil
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("session: redis driver requires a client")
		}
		ttl, err := time.ParseDuration(cfg.TTL)
		if err != nil {
			return nil, fmt.Errorf("session: invalid TTL %q: %w", cfg.TTL, err)
		}
		return &redisStore{client: client, ttl: ttl}, nil
	default:
		return nil, fmt.Errorf("session: unknown driver %q", cfg.Driver)
	}
}

type memoryStore struct {
	mu     sync.RWMutex
	states map[string][]byte
}

func (s *memoryStore) Save(ctx context.Context, id string, state []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(state))
	copy(cp, state)
	s.states[id] = cp
	return nil
}

func (s *memoryStore) Load(ctx context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[id]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(state))
	copy(cp, state)
	return cp, nil
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = nil
	return nil
}

type redisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s:context", id)
}

func (s *redisStore) Save(ctx context.Context, id string, state []byte) error {
	key := sessionKey(id)
	if err := s.client.Set(ctx, key, state, s.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save session snapshot")
		return errx.WrapRedis(err)
	}
	return nil
}

func (s *redisStore) Load(ctx context.Context, id string) ([]byte, error) {
	key := sessionKey(id)
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session snapshot")
		return nil, errx.WrapRedis(err)
	}
	// keep the key warm while the session is active
	if s.ttl > 0 {
		_ = s.client.Expire(ctx, key, s.ttl).Err()
	}
	return val, nil
}

func (s *redisStore) Close() error {
	return nil
}
