package repository

// Factory describes access to the configured storage backend.
type Factory interface {
	Sessions() SessionRepository
}
