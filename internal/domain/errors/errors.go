package errors

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidLocation      = errors.New("invalid location")
	ErrMissingStep          = errors.New("missing wizard step")
	ErrDuplicateAccount     = errors.New("This email address is already registered. Please use a different email or log in.")
	ErrFileTooLarge         = errors.New("file too large")
	ErrUnsupportedFile      = errors.New("unsupported file type")
	ErrNoDocuments          = errors.New("no documents uploaded")
	ErrDocumentIndex        = errors.New("document index out of range")
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrApplicationClosed    = errors.New("application is no longer accepting authorization")
	ErrBackendUnavailable   = errors.New("backend unavailable")
	ErrInvalidSession       = errors.New("invalid session")
)
