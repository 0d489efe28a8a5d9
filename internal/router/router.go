package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"flashdeck-backend/internal/handlers"
	"flashdeck-backend/internal/middleware"
)

func New(
	flashcardHandler *handlers.FlashcardHandler,
	studyHandler *handlers.StudyHandler,
	healthHandler *handlers.HealthHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler)

	// Write rate limiter (120 req/min per IP)
	writeLimiter := middleware.NewRateLimiter(120, time.Minute)

	// Health check
	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {

		// ──── Flashcard Routes ────
		r.Route("/flashcards", func(r chi.Router) {
			r.Get("/", flashcardHandler.List)
			r.Get("/{id}", flashcardHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(writeLimiter.Middleware)
				r.Post("/", flashcardHandler.Create)
				r.Put("/{id}", flashcardHandler.Update)
				r.Delete("/{id}", flashcardHandler.Delete)
			})
		})

		// ──── Study Session Routes ────
		r.Route("/study", func(r chi.Router) {
			r.Post("/start", studyHandler.Start)
			r.Get("/recent", studyHandler.Recent)
			r.Get("/{id}/current", studyHandler.Current)
			r.Get("/{id}/current/reveal", studyHandler.Reveal)
			r.Post("/{id}/respond", studyHandler.Respond)
			r.Get("/{id}/progress", studyHandler.Progress)
			r.Post("/{id}/complete", studyHandler.Complete)
		})
	})

	return r
}
