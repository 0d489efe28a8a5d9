package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"flashdeck-backend/internal/models"
	"flashdeck-backend/internal/repository"
)

// FlashcardService wraps flashcard CRUD with text validation. Counter
// mutation is reserved for the study engine.
type FlashcardService struct {
	store FlashcardStore
}

func NewFlashcardService(store FlashcardStore) *FlashcardService {
	return &FlashcardService{store: store}
}

func (s *FlashcardService) Create(ctx context.Context, front, back string) (*models.Flashcard, error) {
	front, back, fields := models.ValidateCardText(front, back)
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	card := &models.Flashcard{Front: front, Back: back}
	if err := s.store.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *FlashcardService) List(ctx context.Context) ([]*models.Flashcard, error) {
	return s.store.List(ctx)
}

func (s *FlashcardService) Get(ctx context.Context, id uuid.UUID) (*models.Flashcard, error) {
	card, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: "Flashcard not found"}
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *FlashcardService) Update(ctx context.Context, id uuid.UUID, front, back string) (*models.Flashcard, error) {
	front, back, fields := models.ValidateCardText(front, back)
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	card, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	card.Front = front
	card.Back = back
	if err := s.store.Update(ctx, card); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Message: "Flashcard not found"}
		}
		return nil, err
	}
	return card, nil
}

func (s *FlashcardService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Message: "Flashcard not found"}
	}
	return err
}

func (s *FlashcardService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
