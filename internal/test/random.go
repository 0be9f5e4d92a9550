package test

import (
	"math/rand/v2"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	asciiLetters      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// RandomString returns a string drawn from alphabet whose length lies
// within [minLen, maxLen].
func RandomString(alphabet string, minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen + rand.IntN(maxLen-minLen+1)
	return gonanoid.MustGenerate(alphabet, length)
}

// RandomASCIIString returns a pseudo-random alphanumeric string.
func RandomASCIIString(minLen, maxLen int) string {
	return RandomString(asciiLetters, minLen, maxLen)
}

// RandomReferenceCode returns a code shaped like the ones the backend issues.
func RandomReferenceCode() string {
	return RandomString(referenceAlphabet, 6, 6)
}
