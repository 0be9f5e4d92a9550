// Package memory keeps wizard sessions in process memory. It suits a
// single instance and development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/onboarding/internal/domain/repository"
)

type entry struct {
	values    map[string][]byte
	updatedAt time.Time
}

// Storage is an in-process session store.
type Storage struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

// New creates an empty store.
func New() *Storage {
	return &Storage{sessions: make(map[string]*entry), now: time.Now}
}

// Sessions returns the session repository.
func (s *Storage) Sessions() repository.SessionRepository {
	return s
}

func (s *Storage) Get(_ context.Context, sid, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[sid]
	if !ok {
		return nil, false, nil
	}
	v, ok := e.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Storage) Set(_ context.Context, sid, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sid]
	if !ok {
		e = &entry{values: make(map[string][]byte)}
		s.sessions[sid] = e
	}
	e.values[key] = append([]byte(nil), value...)
	e.updatedAt = s.now()
	return nil
}

func (s *Storage) Delete(_ context.Context, sid, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[sid]; ok {
		delete(e.values, key)
	}
	return nil
}

func (s *Storage) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sid)
	return nil
}

// Purge drops sessions not written since before.
func (s *Storage) Purge(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for sid, e := range s.sessions {
		if e.updatedAt.Before(before) {
			delete(s.sessions, sid)
			n++
		}
	}
	return n, nil
}

// HealthCheck always succeeds.
func (s *Storage) HealthCheck(context.Context) error {
	return nil
}

// Close is a no-op.
func (s *Storage) Close() {}
