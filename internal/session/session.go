// Package session binds wizard state to a browser session. Values are
// JSON encoded, sealed and kept in a SessionRepository.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/polkiloo/onboarding/internal/domain/repository"
	"github.com/polkiloo/onboarding/internal/pkg/auth"
)

// Keys under which wizard state is stored.
const (
	KeyLocation               = "location"
	KeyAccount                = "account"
	KeyPayment                = "payment"
	KeyAcknowledgements       = "acknowledgements"
	KeyMedicalDirector        = "medicalDirector"
	KeyIsSubmitted            = "isSubmitted"
	KeyReferenceCode          = "referenceCode"
	KeyAuthorizationSubmitted = "AuthorizationSubmitted"
)

// Manager opens sessions over a shared repository.
type Manager struct {
	repo   repository.SessionRepository
	sealer auth.Sealer
	logger *slog.Logger
}

// NewManager creates a Manager.
func NewManager(repo repository.SessionRepository, sealer auth.Sealer, logger *slog.Logger) *Manager {
	return &Manager{repo: repo, sealer: sealer, logger: logger}
}

// Open returns the session with the given ID.
func (m *Manager) Open(id string) *Session {
	return &Session{
		id:     id,
		repo:   m.repo,
		sealer: m.sealer,
		logger: m.logger.With(slog.String("session_id", id)),
	}
}

// Session is the state of one browser session.
type Session struct {
	id     string
	repo   repository.SessionRepository
	sealer auth.Sealer
	logger *slog.Logger
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// load returns the decrypted JSON stored under key. Failures are logged
// and reported as absence.
func (s *Session) load(ctx context.Context, key string) ([]byte, bool) {
	sealed, ok, err := s.repo.Get(ctx, s.id, key)
	if err != nil {
		s.logger.Error("failed to read session value", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	raw, err := s.sealer.Open(s.id, sealed)
	if err != nil {
		s.logger.Warn("failed to open session value", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	return raw, true
}

// Get returns the value stored under key, or def when it is missing or
// unreadable.
func Get[T any](ctx context.Context, s *Session, key string, def T) T {
	raw, ok := s.load(ctx, key)
	if !ok {
		return def
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		s.logger.Warn("failed to decode session value", slog.String("key", key), slog.String("error", err.Error()))
		return def
	}
	return value
}

// Set stores value under key. The last write wins.
func Set[T any](ctx context.Context, s *Session, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode session value %s: %w", key, err)
	}

	sealed, err := s.sealer.Seal(s.id, raw)
	if err != nil {
		s.logger.Error("failed to seal session value", slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("seal session value %s: %w", key, err)
	}

	if err := s.repo.Set(ctx, s.id, key, sealed); err != nil {
		s.logger.Error("failed to write session value", slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("write session value %s: %w", key, err)
	}
	return nil
}

// HasData reports whether key holds a non-empty value. Missing values,
// null, empty strings, empty objects and empty arrays count as absent.
func (s *Session) HasData(ctx context.Context, key string) bool {
	raw, ok := s.load(ctx, key)
	if !ok {
		return false
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return false
	}

	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// Delete removes one key.
func (s *Session) Delete(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, s.id, key); err != nil {
		return fmt.Errorf("delete session value %s: %w", key, err)
	}
	return nil
}

// Clear removes every key of the session.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx, s.id); err != nil {
		s.logger.Error("failed to clear session", slog.String("error", err.Error()))
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
