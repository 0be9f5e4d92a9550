package test

import (
	"github.com/polkiloo/onboarding/internal/session"
)

// StrategyStub issues and parses session tokens via function overrides.
type StrategyStub struct {
	IssueFn func(string) (string, error)
	ParseFn func(string) (string, error)
	NameVal string
}

// IssueToken returns the session ID prefixed with "token:".
func (s StrategyStub) IssueToken(sid string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(sid)
	}
	return "token:" + sid, nil
}

// ParseToken reverses IssueToken.
func (s StrategyStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if len(token) > len("token:") && token[:len("token:")] == "token:" {
		return token[len("token:"):], nil
	}
	return "", errInvalidStubToken
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// SealerStub stores values in the clear, prefixed with the session ID.
type SealerStub struct {
	SealErr error
}

func (s SealerStub) Seal(sid string, plaintext []byte) ([]byte, error) {
	if s.SealErr != nil {
		return nil, s.SealErr
	}
	return append([]byte(sid+"|"), plaintext...), nil
}

func (s SealerStub) Open(sid string, sealed []byte) ([]byte, error) {
	prefix := sid + "|"
	if len(sealed) < len(prefix) || string(sealed[:len(prefix)]) != prefix {
		return nil, errInvalidStubToken
	}
	return sealed[len(prefix):], nil
}

// SessionFacadeStub resolves session tokens with StrategyStub and opens
// sessions from Manager.
type SessionFacadeStub struct {
	Strategy StrategyStub
	Manager  *session.Manager
}

func (s SessionFacadeStub) IssueSessionToken(sid string) (string, error) {
	return s.Strategy.IssueToken(sid)
}

func (s SessionFacadeStub) ParseSessionToken(token string) (string, error) {
	return s.Strategy.ParseToken(token)
}

func (s SessionFacadeStub) OpenSession(sid string) *session.Session {
	return s.Manager.Open(sid)
}
