package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTStrategyRoundTrip(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Hour})
	sid := NewSessionID()

	token, err := strategy.IssueToken(sid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != sid {
		t.Fatalf("expected %s, got %s", sid, got)
	}
	if strategy.Name() != "jwt" {
		t.Fatalf("unexpected name %q", strategy.Name())
	}
}

func TestJWTStrategyDefaultsTTL(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if strategy.ttl != 2*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestJWTStrategyRejects(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Hour})
	sid := NewSessionID()
	valid, _ := strategy.IssueToken(sid)

	other := NewJWTStrategy("other", Options{TTL: time.Hour})
	foreign, _ := other.IssueToken(sid)

	expired := NewJWTStrategy("secret", Options{TTL: time.Hour})
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _ := expired.IssueToken(sid)

	notUUID, _ := strategy.IssueToken("tab-1")

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   sid,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      stale,
		"bad subject":  notUUID,
		"unsigned":     none,
		"tampered":     valid + "x",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := strategy.ParseToken(token); err != ErrInvalidToken {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
