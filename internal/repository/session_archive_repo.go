package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"flashdeck-backend/internal/models"
)

// SessionArchiveRepo persists the final snapshot of completed sessions.
// Live sessions stay in Redis; only the terminal statistics land here.
type SessionArchiveRepo struct {
	pool *pgxpool.Pool
}

func NewSessionArchiveRepo(pool *pgxpool.Pool) *SessionArchiveRepo {
	return &SessionArchiveRepo{pool: pool}
}

func (r *SessionArchiveRepo) Archive(ctx context.Context, s *models.StudySession, p models.StudyProgress) error {
	completedAt := time.Now().UTC()
	if s.CompletedAt != nil {
		completedAt = *s.CompletedAt
	}

	// Re-completing an already archived session must not duplicate rows.
	query := `INSERT INTO study_session_history
		(id, total_cards, cards_completed, correct_responses, incorrect_responses, accuracy_percentage, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		s.ID, p.TotalCards, p.CardsCompleted, p.CorrectResponses, p.IncorrectResponses,
		p.AccuracyPercentage, s.StartedAt, completedAt,
	)
	return err
}

func (r *SessionArchiveRepo) Recent(ctx context.Context, limit int) ([]*models.SessionArchive, error) {
	query := `SELECT id, total_cards, cards_completed, correct_responses, incorrect_responses,
		accuracy_percentage, started_at, completed_at
		FROM study_session_history ORDER BY completed_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.SessionArchive
	for rows.Next() {
		a := &models.SessionArchive{}
		err := rows.Scan(&a.ID, &a.TotalCards, &a.CardsCompleted, &a.CorrectResponses,
			&a.IncorrectResponses, &a.AccuracyPercentage, &a.StartedAt, &a.CompletedAt)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, a)
	}
	return sessions, rows.Err()
}
