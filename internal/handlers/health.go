package handlers

import (
	"context"
	"net/http"

	"flashdeck-backend/internal/services"
)

// Pinger is implemented by the live session store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	flashcards *services.FlashcardService
	sessions   Pinger
}

func NewHealthHandler(flashcards *services.FlashcardService, sessions Pinger) *HealthHandler {
	return &HealthHandler{flashcards: flashcards, sessions: sessions}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	count, err := h.flashcards.Count(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}

	if h.sessions != nil {
		if err := h.sessions.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "healthy",
		"flashcards_count": count,
	})
}
