package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"flashdeck-backend/internal/models"
)

type FlashcardRepo struct {
	pool *pgxpool.Pool
}

func NewFlashcardRepo(pool *pgxpool.Pool) *FlashcardRepo {
	return &FlashcardRepo{pool: pool}
}

func (r *FlashcardRepo) Create(ctx context.Context, f *models.Flashcard) error {
	f.ID = uuid.New()

	query := `INSERT INTO flashcards (id, front, back)
		VALUES ($1, $2, $3) RETURNING study_count, correct_count, created_at, updated_at`

	return r.pool.QueryRow(ctx, query, f.ID, f.Front, f.Back).Scan(
		&f.StudyCount, &f.CorrectCount, &f.CreatedAt, &f.UpdatedAt,
	)
}

func (r *FlashcardRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Flashcard, error) {
	f := &models.Flashcard{}
	query := `SELECT id, front, back, study_count, correct_count, created_at, updated_at
		FROM flashcards WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.Front, &f.Back, &f.StudyCount, &f.CorrectCount, &f.CreatedAt, &f.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// List returns every flashcard in creation order. Study sessions walk
// cards in exactly this order.
func (r *FlashcardRepo) List(ctx context.Context) ([]*models.Flashcard, error) {
	query := `SELECT id, front, back, study_count, correct_count, created_at, updated_at
		FROM flashcards ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*models.Flashcard
	for rows.Next() {
		f := &models.Flashcard{}
		err := rows.Scan(&f.ID, &f.Front, &f.Back, &f.StudyCount, &f.CorrectCount, &f.CreatedAt, &f.UpdatedAt)
		if err != nil {
			return nil, err
		}
		cards = append(cards, f)
	}
	return cards, rows.Err()
}

func (r *FlashcardRepo) Update(ctx context.Context, f *models.Flashcard) error {
	query := `UPDATE flashcards SET front = $1, back = $2, updated_at = NOW()
		WHERE id = $3 RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query, f.Front, f.Back, f.ID).Scan(&f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *FlashcardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM flashcards WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementCounters bumps study_count (and correct_count when correct) in
// a single statement. A card deleted mid-session matches zero rows, which
// is deliberately not an error: the session walk stays consistent.
func (r *FlashcardRepo) IncrementCounters(ctx context.Context, id uuid.UUID, correct bool) error {
	correctDelta := 0
	if correct {
		correctDelta = 1
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE flashcards SET study_count = study_count + 1, correct_count = correct_count + $1
		 WHERE id = $2`,
		correctDelta, id,
	)
	return err
}

func (r *FlashcardRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM flashcards").Scan(&count)
	return count, err
}
