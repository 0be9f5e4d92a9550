// Package redis keeps wizard sessions as Redis hashes. Each write slides
// the hash TTL, so expired sessions vanish without a sweep.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/polkiloo/onboarding/internal/domain/repository"
)

const keyPrefix = "onboarding:session:"

// Options configures the Redis connection.
type Options struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// Storage is a Redis backed session store.
type Storage struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, opts Options, logger *slog.Logger) (*Storage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Address,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Storage{client: client, ttl: opts.TTL, logger: logger}, nil
}

// Sessions returns the session repository.
func (s *Storage) Sessions() repository.SessionRepository {
	return s
}

func sessionKey(sid string) string {
	return keyPrefix + sid
}

func (s *Storage) Get(ctx context.Context, sid, key string) ([]byte, bool, error) {
	value, err := s.client.HGet(ctx, sessionKey(sid), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, sid, key string, value []byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, sessionKey(sid), key, value)
		if s.ttl > 0 {
			pipe.Expire(ctx, sessionKey(sid), s.ttl)
		}
		return nil
	})
	return err
}

func (s *Storage) Delete(ctx context.Context, sid, key string) error {
	return s.client.HDel(ctx, sessionKey(sid), key).Err()
}

func (s *Storage) Clear(ctx context.Context, sid string) error {
	return s.client.Del(ctx, sessionKey(sid)).Err()
}

// HealthCheck pings Redis.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (s *Storage) Close() {
	if err := s.client.Close(); err != nil {
		s.logger.Warn("failed to close redis client", slog.String("error", err.Error()))
	}
}
