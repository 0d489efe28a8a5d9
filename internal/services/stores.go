package services

import (
	"context"

	"github.com/google/uuid"

	"flashdeck-backend/internal/models"
)

// Store contracts the engine depends on. The repository package provides
// the pgx and redis implementations; tests use in-memory fakes.

type FlashcardStore interface {
	Create(ctx context.Context, f *models.Flashcard) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Flashcard, error)
	List(ctx context.Context) ([]*models.Flashcard, error)
	Update(ctx context.Context, f *models.Flashcard) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementCounters(ctx context.Context, id uuid.UUID, correct bool) error
	Count(ctx context.Context) (int, error)
}

type SessionStore interface {
	Save(ctx context.Context, s *models.StudySession) error
	Load(ctx context.Context, id uuid.UUID) (*models.StudySession, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*models.StudySession) error) (*models.StudySession, error)
}

type SessionArchive interface {
	Archive(ctx context.Context, s *models.StudySession, p models.StudyProgress) error
	Recent(ctx context.Context, limit int) ([]*models.SessionArchive, error)
}
