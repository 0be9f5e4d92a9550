package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polkiloo/onboarding/internal/domain/repository"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage keeps wizard session values in PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type sessionRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Sessions returns the session repository.
func (s *Storage) Sessions() repository.SessionRepository {
	return &sessionRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS wizard_sessions (
            session_id TEXT NOT NULL,
            key TEXT NOT NULL,
            value BYTEA NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (session_id, key)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_wizard_sessions_updated ON wizard_sessions(updated_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func (r *sessionRepository) Get(ctx context.Context, sid, key string) ([]byte, bool, error) {
	const query = `SELECT value FROM wizard_sessions WHERE session_id=$1 AND key=$2`
	var value []byte
	err := r.storage.pool.QueryRow(ctx, query, sid, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Set upserts the value and slides the expiry of the whole session.
func (r *sessionRepository) Set(ctx context.Context, sid, key string, value []byte) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const upsert = `INSERT INTO wizard_sessions (session_id, key, value, updated_at)
                        VALUES ($1, $2, $3, NOW())
                        ON CONFLICT (session_id, key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`
		if _, err := tx.Exec(ctx, upsert, sid, key, value); err != nil {
			return err
		}
		const touch = `UPDATE wizard_sessions SET updated_at=NOW() WHERE session_id=$1`
		_, err := tx.Exec(ctx, touch, sid)
		return err
	})
}

func (r *sessionRepository) Delete(ctx context.Context, sid, key string) error {
	const query = `DELETE FROM wizard_sessions WHERE session_id=$1 AND key=$2`
	_, err := r.storage.pool.Exec(ctx, query, sid, key)
	return err
}

func (r *sessionRepository) Clear(ctx context.Context, sid string) error {
	const query = `DELETE FROM wizard_sessions WHERE session_id=$1`
	_, err := r.storage.pool.Exec(ctx, query, sid)
	return err
}

// Purge removes rows not written since before.
func (s *Storage) Purge(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM wizard_sessions WHERE updated_at < $1`
	tag, err := s.pool.Exec(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
