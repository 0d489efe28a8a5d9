package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"flashdeck-backend/internal/models"
)

func newTestSessionRepo(t *testing.T, ttl time.Duration) (*SessionRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSessionRepo(client, ttl), mr
}

func sampleSession(t *testing.T, n int) *models.StudySession {
	t.Helper()

	cards := make([]*models.Flashcard, n)
	for i := range cards {
		cards[i] = &models.Flashcard{
			ID:    uuid.New(),
			Front: fmt.Sprintf("front %d", i),
			Back:  fmt.Sprintf("back %d", i),
		}
	}

	session, err := models.NewStudySession(cards)
	if err != nil {
		t.Fatalf("failed to build session: %v", err)
	}
	return session
}

func TestSessionRepo_SaveLoad(t *testing.T) {
	repo, _ := newTestSessionRepo(t, time.Hour)
	ctx := context.Background()

	session := sampleSession(t, 2)
	if err := repo.Save(ctx, session); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := repo.Load(ctx, session.ID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.ID != session.ID || loaded.TotalCards() != 2 || loaded.Position != 0 {
		t.Errorf("loaded session does not match saved: %+v", loaded)
	}
	if loaded.Cards[0].Front != "front 0" {
		t.Errorf("card snapshot lost on round trip: %+v", loaded.Cards[0])
	}
}

func TestSessionRepo_Load_Unknown(t *testing.T) {
	repo, _ := newTestSessionRepo(t, time.Hour)

	if _, err := repo.Load(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionRepo_IdleExpiry(t *testing.T) {
	repo, mr := newTestSessionRepo(t, time.Hour)
	ctx := context.Background()

	session := sampleSession(t, 1)
	if err := repo.Save(ctx, session); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := repo.Load(ctx, session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session to surface as ErrNotFound, got %v", err)
	}
}

func TestSessionRepo_Update_Advances(t *testing.T) {
	repo, _ := newTestSessionRepo(t, time.Hour)
	ctx := context.Background()

	session := sampleSession(t, 2)
	if err := repo.Save(ctx, session); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	updated, err := repo.Update(ctx, session.ID, func(s *models.StudySession) error {
		_, err := s.RecordResponse(true, 1.0, time.Now().UTC())
		return err
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Position != 1 || len(updated.Responses) != 1 {
		t.Errorf("expected position 1 with 1 response, got %d / %d", updated.Position, len(updated.Responses))
	}

	loaded, _ := repo.Load(ctx, session.ID)
	if loaded.Position != 1 {
		t.Errorf("advance not persisted: position %d", loaded.Position)
	}
}

// A write landing on the session key between the guarded read and the
// save must abort the attempt; the retry then operates on the fresh
// state, so two responds advance the position exactly twice, never both
// from the same starting position.
func TestSessionRepo_Update_ConcurrentWriteRetries(t *testing.T) {
	repo, _ := newTestSessionRepo(t, time.Hour)
	ctx := context.Background()

	session := sampleSession(t, 3)
	if err := repo.Save(ctx, session); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	attempts := 0
	updated, err := repo.Update(ctx, session.ID, func(s *models.StudySession) error {
		attempts++
		if attempts == 1 {
			// Competing respond lands while this attempt is in flight.
			other, err := repo.Load(ctx, session.ID)
			if err != nil {
				t.Fatalf("competing load failed: %v", err)
			}
			if _, err := other.RecordResponse(true, 0, time.Now().UTC()); err != nil {
				t.Fatalf("competing respond failed: %v", err)
			}
			if err := repo.Save(ctx, other); err != nil {
				t.Fatalf("competing save failed: %v", err)
			}
		}
		_, err := s.RecordResponse(false, 0, time.Now().UTC())
		return err
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if attempts != 2 {
		t.Errorf("expected first attempt to abort and retry, got %d attempts", attempts)
	}
	if updated.Position != 2 || len(updated.Responses) != 2 {
		t.Fatalf("expected both responds applied exactly once (position 2), got position %d with %d responses", updated.Position, len(updated.Responses))
	}
	if !updated.Responses[0].IsCorrect || updated.Responses[1].IsCorrect {
		t.Error("retried update lost or reordered the competing response")
	}

	loaded, _ := repo.Load(ctx, session.ID)
	if loaded.Position != 2 {
		t.Errorf("persisted position %d, want 2", loaded.Position)
	}
}

func TestSessionRepo_Update_RetryExhaustion(t *testing.T) {
	repo, _ := newTestSessionRepo(t, time.Hour)
	ctx := context.Background()

	session := sampleSession(t, 1)
	if err := repo.Save(ctx, session); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	attempts := 0
	_, err := repo.Update(ctx, session.ID, func(s *models.StudySession) error {
		attempts++
		// A competing write lands on every attempt.
		fresh, loadErr := repo.Load(ctx, session.ID)
		if loadErr != nil {
			t.Fatalf("competing load failed: %v", loadErr)
		}
		if saveErr := repo.Save(ctx, fresh); saveErr != nil {
			t.Fatalf("competing save failed: %v", saveErr)
		}
		return nil
	})
	if err == nil {
		t.Fatal("expected retry exhaustion error, got nil")
	}
	if !strings.Contains(err.Error(), "too many concurrent updates") {
		t.Errorf("unexpected error: %v", err)
	}
	if attempts != maxUpdateRetries {
		t.Errorf("expected %d attempts, got %d", maxUpdateRetries, attempts)
	}
}

func TestSessionRepo_Update_MutateErrorPropagates(t *testing.T) {
	repo, _ := newTestSessionRepo(t, time.Hour)
	ctx := context.Background()

	session := sampleSession(t, 1)
	session.Position = 1
	session.Responses = append(session.Responses, models.StudyResponse{CardID: session.Cards[0].ID, IsCorrect: true})
	if err := repo.Save(ctx, session); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	_, err := repo.Update(ctx, session.ID, func(s *models.StudySession) error {
		_, err := s.RecordResponse(true, 0, time.Now().UTC())
		return err
	})
	if !errors.Is(err, models.ErrSessionComplete) {
		t.Fatalf("expected ErrSessionComplete from mutate, got %v", err)
	}

	// The failed mutate must not have written anything.
	loaded, _ := repo.Load(ctx, session.ID)
	if loaded.Position != 1 || len(loaded.Responses) != 1 {
		t.Error("failed mutate leaked a write")
	}
}
