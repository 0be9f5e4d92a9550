package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"invalid location", ErrInvalidLocation},
		{"missing step", ErrMissingStep},
		{"duplicate account", ErrDuplicateAccount},
		{"file too large", ErrFileTooLarge},
		{"unsupported file", ErrUnsupportedFile},
		{"no documents", ErrNoDocuments},
		{"document index", ErrDocumentIndex},
		{"submission in progress", ErrSubmissionInProgress},
		{"application closed", ErrApplicationClosed},
		{"backend unavailable", ErrBackendUnavailable},
		{"invalid session", ErrInvalidSession},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match %v", tc.err)
			}
		})
	}
}

func TestDuplicateAccountMessage(t *testing.T) {
	want := "This email address is already registered. Please use a different email or log in."
	if ErrDuplicateAccount.Error() != want {
		t.Fatalf("expected %q, got %q", want, ErrDuplicateAccount.Error())
	}
}
