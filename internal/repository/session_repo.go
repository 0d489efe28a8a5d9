package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"flashdeck-backend/internal/models"
)

// maxUpdateRetries bounds optimistic-concurrency retries when two respond
// calls race on the same session key.
const maxUpdateRetries = 5

// SessionRepo keeps live study sessions in Redis. Every save refreshes a
// sliding TTL, so an idle session eventually expires and surfaces as
// ErrNotFound.
type SessionRepo struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepo(client *redis.Client, ttl time.Duration) *SessionRepo {
	return &SessionRepo{client: client, ttl: ttl}
}

func sessionKey(id uuid.UUID) string {
	return "study_session:" + id.String()
}

func (r *SessionRepo) Save(ctx context.Context, s *models.StudySession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.Set(ctx, sessionKey(s.ID), data, r.ttl).Err()
}

func (r *SessionRepo) Load(ctx context.Context, id uuid.UUID) (*models.StudySession, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	s := &models.StudySession{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return s, nil
}

// Update performs a guarded read-modify-write: the session is loaded and
// mutated inside WATCH, and the write aborts if another update landed on
// the same key in between. Two near-simultaneous respond calls therefore
// cannot both advance from the same position.
func (r *SessionRepo) Update(ctx context.Context, id uuid.UUID, mutate func(*models.StudySession) error) (*models.StudySession, error) {
	key := sessionKey(id)

	var updated *models.StudySession
	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		s := &models.StudySession{}
		if err := json.Unmarshal(data, s); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		if err := mutate(s); err != nil {
			return err
		}

		out, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		updated = s
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	return nil, fmt.Errorf("session %s: too many concurrent updates", id)
}

// Ping reports whether the session store is reachable, for health checks.
func (r *SessionRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
