// Package storage selects the session backend named by configuration.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/onboarding/internal/config"
	"github.com/polkiloo/onboarding/internal/domain/repository"
	"github.com/polkiloo/onboarding/internal/storage/memory"
	"github.com/polkiloo/onboarding/internal/storage/postgres"
	"github.com/polkiloo/onboarding/internal/storage/redis"
)

// Backend is a storage backend with an owned lifecycle.
type Backend interface {
	repository.Factory
	HealthCheck(ctx context.Context) error
	Close()
}

// Module wires the configured storage backend and its repositories.
var Module = fx.Options(
	fx.Provide(newBackend),
	fx.Provide(
		func(b Backend) repository.Factory { return b },
		func(b Backend) repository.SessionRepository { return b.Sessions() },
		purger,
	),
	fx.Invoke(registerLifecycle),
)

type backendParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

var (
	newPostgres = func(ctx context.Context, dsn string, logger *slog.Logger) (Backend, error) {
		st, err := postgres.New(ctx, dsn, logger)
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	newRedis = func(ctx context.Context, opts redis.Options, logger *slog.Logger) (Backend, error) {
		st, err := redis.New(ctx, opts, logger)
		if err != nil {
			return nil, err
		}
		return st, nil
	}
)

func newBackend(p backendParams) (Backend, error) {
	logger := p.Logger.With(slog.String("session_backend", p.Config.SessionBackend))

	switch p.Config.SessionBackend {
	case config.SessionBackendMemory:
		return memory.New(), nil
	case config.SessionBackendRedis:
		return newRedis(p.Ctx, redis.Options{
			Address:  p.Config.RedisAddress,
			Password: p.Config.RedisPassword,
			DB:       p.Config.RedisDB,
			TTL:      p.Config.SessionTTL,
		}, logger)
	case config.SessionBackendPostgres:
		return newPostgres(p.Ctx, p.Config.DatabaseURI, logger)
	default:
		return nil, fmt.Errorf("unknown session backend %q", p.Config.SessionBackend)
	}
}

// purger exposes the backend's expiry sweep, or nil when the backend
// expires sessions on its own.
func purger(b Backend) repository.Purger {
	if p, ok := b.(repository.Purger); ok {
		return p
	}
	return nil
}

func registerLifecycle(lc fx.Lifecycle, b Backend) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			b.Close()
			return nil
		},
	})
}
