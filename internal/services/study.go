package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"flashdeck-backend/internal/models"
	"flashdeck-backend/internal/repository"
)

// StudyService owns the study-session walk: start over the full flashcard
// collection, show one card at a time, record correct/incorrect responses,
// derive progress, complete with a final snapshot.
type StudyService struct {
	flashcards FlashcardStore
	sessions   SessionStore
	archive    SessionArchive
}

func NewStudyService(flashcards FlashcardStore, sessions SessionStore, archive SessionArchive) *StudyService {
	return &StudyService{
		flashcards: flashcards,
		sessions:   sessions,
		archive:    archive,
	}
}

// CardView is what the frontend sees before revealing: the front only.
// Position is 1-based for display.
type CardView struct {
	Front      string `json:"front"`
	Position   int    `json:"position"`
	TotalCards int    `json:"total_cards"`
}

// RevealedCardView includes the back; served by the explicit reveal call.
type RevealedCardView struct {
	Front      string `json:"front"`
	Back       string `json:"back"`
	Position   int    `json:"position"`
	TotalCards int    `json:"total_cards"`
}

// Start creates a session over all flashcards, in creation order, with the
// card content snapshotted so later edits or deletes never affect the walk.
func (s *StudyService) Start(ctx context.Context) (*models.StudySession, error) {
	flashcards, err := s.flashcards.List(ctx)
	if err != nil {
		return nil, err
	}

	session, err := models.NewStudySession(flashcards)
	if err != nil {
		if errors.Is(err, models.ErrEmptyCollection) {
			return nil, &EmptyCollectionError{Message: "No flashcards available for study"}
		}
		return nil, err
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	log.Printf("Started study session %s with %d flashcards", session.ID, session.TotalCards())
	return session, nil
}

// Current returns the front of the card at the current position. The back
// is never revealed on this call.
func (s *StudyService) Current(ctx context.Context, id uuid.UUID) (*CardView, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	card, err := session.CurrentCard()
	if err != nil {
		return nil, &SessionCompleteError{Message: "Study session is complete"}
	}

	return &CardView{
		Front:      card.Front,
		Position:   session.Position + 1,
		TotalCards: session.TotalCards(),
	}, nil
}

// Reveal returns both sides of the current card.
func (s *StudyService) Reveal(ctx context.Context, id uuid.UUID) (*RevealedCardView, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	card, err := session.CurrentCard()
	if err != nil {
		return nil, &SessionCompleteError{Message: "Study session is complete"}
	}

	return &RevealedCardView{
		Front:      card.Front,
		Back:       card.Back,
		Position:   session.Position + 1,
		TotalCards: session.TotalCards(),
	}, nil
}

// Respond records a correctness judgment for the current card and advances
// the position by one. The card is determined inside the guarded update,
// so when the optimistic save retries after a concurrent write the counter
// increment still hits exactly the card the response was recorded against.
// Returns the advanced session so the caller can immediately detect
// completion.
func (s *StudyService) Respond(ctx context.Context, id uuid.UUID, isCorrect bool, responseTime *float64) (*models.StudySession, error) {
	seconds := 0.0
	if responseTime != nil {
		if *responseTime < 0 {
			return nil, &ValidationError{Fields: map[string]string{
				"response_time_seconds": "response time cannot be negative",
			}}
		}
		seconds = *responseTime
	}

	now := time.Now().UTC()
	var answered models.SessionCard
	updated, err := s.sessions.Update(ctx, id, func(sess *models.StudySession) error {
		card, err := sess.RecordResponse(isCorrect, seconds, now)
		if err != nil {
			return err
		}
		answered = card
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrSessionComplete) {
			return nil, &SessionCompleteError{Message: "Study session is already complete"}
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &SessionNotFoundError{Message: "Study session not found"}
		}
		return nil, err
	}

	// A crash here leaves the session advanced with one study uncounted;
	// counters stay monotone and the walk never re-asks a card.
	if err := s.flashcards.IncrementCounters(ctx, answered.ID, isCorrect); err != nil {
		log.Printf("Failed to update counters for flashcard %s: %v", answered.ID, err)
	}

	return updated, nil
}

// Progress returns the session with its derived statistics. Read-only.
func (s *StudyService) Progress(ctx context.Context, id uuid.UUID) (*models.StudySession, error) {
	return s.load(ctx, id)
}

// Complete marks the session finished and archives the final snapshot.
// Idempotent: completing twice returns the same snapshot and writes no
// second history row. A session with unanswered cards may be completed
// early; the partial statistics are kept.
func (s *StudyService) Complete(ctx context.Context, id uuid.UUID) (*models.StudySession, error) {
	now := time.Now().UTC()
	session, err := s.sessions.Update(ctx, id, func(sess *models.StudySession) error {
		sess.Complete(now)
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &SessionNotFoundError{Message: "Study session not found"}
		}
		return nil, err
	}

	progress := session.Progress()
	if err := s.archive.Archive(ctx, session, progress); err != nil {
		// The session itself is completed; history is best effort.
		log.Printf("Failed to archive study session %s: %v", session.ID, err)
	}

	log.Printf("Completed study session %s: %d/%d correct (%.1f%% accuracy)",
		session.ID, progress.CorrectResponses, progress.CardsCompleted, progress.AccuracyPercentage)
	return session, nil
}

// Recent lists archived sessions, newest first.
func (s *StudyService) Recent(ctx context.Context, limit int) ([]*models.SessionArchive, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.archive.Recent(ctx, limit)
}

func (s *StudyService) load(ctx context.Context, id uuid.UUID) (*models.StudySession, error) {
	session, err := s.sessions.Load(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &SessionNotFoundError{Message: "Study session not found"}
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}
