package test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/onboarding/internal/session"
)

var errInvalidStubToken = errors.New("invalid stub value")

// SessionRepositoryStub stores session values in-memory for tests.
type SessionRepositoryStub struct {
	mu     sync.Mutex
	Values map[string]map[string][]byte
	Err      error
	SetErr   error
	ClearErr error
}

// NewSessionRepositoryStub constructs stub repository with initialized maps.
func NewSessionRepositoryStub() *SessionRepositoryStub {
	return &SessionRepositoryStub{Values: make(map[string]map[string][]byte)}
}

func (s *SessionRepositoryStub) Get(_ context.Context, sid, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, false, s.Err
	}
	v, ok := s.Values[sid][key]
	return v, ok, nil
}

func (s *SessionRepositoryStub) Set(_ context.Context, sid, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.SetErr != nil {
		return s.SetErr
	}
	if s.Values == nil {
		s.Values = make(map[string]map[string][]byte)
	}
	if s.Values[sid] == nil {
		s.Values[sid] = make(map[string][]byte)
	}
	s.Values[sid][key] = value
	return nil
}

func (s *SessionRepositoryStub) Delete(_ context.Context, sid, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.Values[sid], key)
	return nil
}

func (s *SessionRepositoryStub) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.ClearErr != nil {
		return s.ClearErr
	}
	delete(s.Values, sid)
	return nil
}

// Keys returns the keys stored for sid.
func (s *SessionRepositoryStub) Keys(sid string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.Values[sid]))
	for k := range s.Values[sid] {
		keys = append(keys, k)
	}
	return keys
}

// PurgerStub records purge cutoffs.
type PurgerStub struct {
	mu      sync.Mutex
	Cutoffs []time.Time
	Count   int64
	Err     error
}

func (p *PurgerStub) Purge(_ context.Context, before time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Cutoffs = append(p.Cutoffs, before)
	return p.Count, p.Err
}

// Calls returns how many times Purge ran.
func (p *PurgerStub) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Cutoffs)
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// NewSessionManager returns a Manager over repo with SealerStub.
func NewSessionManager(repo *SessionRepositoryStub) *session.Manager {
	return session.NewManager(repo, SealerStub{}, DiscardLogger())
}
