package auth

import (
	"crypto/sha256"
	"errors"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

var ErrInvalidToken = errors.New("invalid session token")

const tokenIssuer = "onboarding"

// JWTStrategy signs session tokens as HS256 JWTs whose subject is the
// session ID.
type JWTStrategy struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewJWTStrategy builds JWTStrategy with a key derived from secret.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &JWTStrategy{key: deriveKey(secret, "session token", 32), ttl: ttl, now: time.Now}
}

// IssueToken generates a signed token for the session.
func (s *JWTStrategy) IssueToken(sid string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// ParseToken validates token and returns the session ID it carries.
func (s *JWTStrategy) ParseToken(token string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}

func deriveKey(secret, info string, size int) []byte {
	key := make([]byte, size)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("onboarding "+info))
	if _, err := io.ReadFull(r, key); err != nil {
		panic(err)
	}
	return key
}
