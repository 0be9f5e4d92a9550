package dto

// NextResponse tells the client which route to open after a save.
type NextResponse struct {
	Next string `json:"next"`
}

// RedirectResponse accompanies 303 answers of gated routes.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

// ValidationErrorResponse maps field paths to messages.
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// MessageResponse carries a user facing message.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status string `json:"status"`
}
