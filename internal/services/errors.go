package services

// Typed errors the handler layer maps onto HTTP status codes and error
// codes. Every engine failure resolves to one of these.

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// EmptyCollectionError: a study session was started with zero flashcards.
// User-correctable; the frontend shows a "create flashcards first" state.
type EmptyCollectionError struct{ Message string }

func (e *EmptyCollectionError) Error() string { return e.Message }

// SessionNotFoundError: unknown or expired session id. The frontend
// prompts the user to restart.
type SessionNotFoundError struct{ Message string }

func (e *SessionNotFoundError) Error() string { return e.Message }

// SessionCompleteError: an operation was attempted past the last card.
type SessionCompleteError struct{ Message string }

func (e *SessionCompleteError) Error() string { return e.Message }
