package auth

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var ErrInvalidCiphertext = errors.New("invalid sealed value")

// Sealer encrypts values bound to a session ID.
type Sealer interface {
	Seal(sid string, plaintext []byte) ([]byte, error)
	Open(sid string, sealed []byte) ([]byte, error)
}

// AEADSealer seals with XChaCha20-Poly1305. The session ID is used as
// additional data, so a value copied to another session fails to open.
type AEADSealer struct {
	aead cipher.AEAD
}

// NewAEADSealer derives the encryption key from secret.
func NewAEADSealer(secret string) (*AEADSealer, error) {
	aead, err := chacha20poly1305.NewX(deriveKey(secret, "session values", chacha20poly1305.KeySize))
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return &AEADSealer{aead: aead}, nil
}

// Seal returns nonce || ciphertext.
func (s *AEADSealer) Seal(sid string, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, []byte(sid)), nil
}

func (s *AEADSealer) Open(sid string, sealed []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(sealed) < n+s.aead.Overhead() {
		return nil, ErrInvalidCiphertext
	}
	plaintext, err := s.aead.Open(nil, sealed[:n], sealed[n:], []byte(sid))
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	return plaintext, nil
}
