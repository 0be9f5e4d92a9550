package auth

import (
	"time"

	"github.com/google/uuid"
)

// Strategy issues and verifies the token that carries a session ID.
type Strategy interface {
	IssueToken(sid string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}
