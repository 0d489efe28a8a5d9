package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionComplete is returned by walk operations once every card
	// has been answered. Position never moves past the card count.
	ErrSessionComplete = errors.New("study session is complete")

	// ErrEmptyCollection is returned when a session is started with no
	// flashcards available.
	ErrEmptyCollection = errors.New("cannot start study session with no flashcards")
)

// SessionCard is the content snapshot taken at session start. Editing or
// deleting a flashcard never changes what an in-flight session shows.
type SessionCard struct {
	ID    uuid.UUID `json:"id"`
	Front string    `json:"front"`
	Back  string    `json:"back"`
}

type StudyResponse struct {
	CardID              uuid.UUID `json:"card_id"`
	IsCorrect           bool      `json:"is_correct"`
	ResponseTimeSeconds float64   `json:"response_time_seconds"`
	AnsweredAt          time.Time `json:"answered_at"`
}

type StudyProgress struct {
	CurrentCard        int     `json:"current_card"`
	TotalCards         int     `json:"total_cards"`
	CardsCompleted     int     `json:"cards_completed"`
	CorrectResponses   int     `json:"correct_responses"`
	IncorrectResponses int     `json:"incorrect_responses"`
	AccuracyPercentage float64 `json:"accuracy_percentage"`
}

// StudySession is one ordered pass over a fixed snapshot of flashcards.
//
// Invariants: 0 <= Position <= len(Cards); len(Responses) == Position
// outside an in-progress respond; the session is complete exactly when
// Position == len(Cards). Position never decreases.
type StudySession struct {
	ID          uuid.UUID       `json:"id"`
	Cards       []SessionCard   `json:"cards"`
	Position    int             `json:"position"`
	Responses   []StudyResponse `json:"responses"`
	IsActive    bool            `json:"is_active"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// NewStudySession snapshots the given flashcards, in the order given,
// into a fresh session at position 0.
func NewStudySession(flashcards []*Flashcard) (*StudySession, error) {
	if len(flashcards) == 0 {
		return nil, ErrEmptyCollection
	}

	cards := make([]SessionCard, len(flashcards))
	for i, f := range flashcards {
		cards[i] = SessionCard{ID: f.ID, Front: f.Front, Back: f.Back}
	}

	return &StudySession{
		ID:        uuid.New(),
		Cards:     cards,
		Position:  0,
		Responses: []StudyResponse{},
		IsActive:  true,
		StartedAt: time.Now().UTC(),
	}, nil
}

func (s *StudySession) TotalCards() int {
	return len(s.Cards)
}

func (s *StudySession) IsComplete() bool {
	return s.Position >= len(s.Cards)
}

// CurrentCard returns the card at the current position. It fails once
// every card has been answered or the session was completed early:
// completion is terminal either way.
func (s *StudySession) CurrentCard() (SessionCard, error) {
	if s.CompletedAt != nil || s.IsComplete() {
		return SessionCard{}, ErrSessionComplete
	}
	return s.Cards[s.Position], nil
}

// RecordResponse appends a response for the current card and advances the
// position by exactly one. It fails once the last card has been answered
// or the session was abandoned; there is no silent overflow and no
// transition out of the completed state.
func (s *StudySession) RecordResponse(isCorrect bool, responseTime float64, now time.Time) (SessionCard, error) {
	card, err := s.CurrentCard()
	if err != nil {
		return SessionCard{}, err
	}

	s.Responses = append(s.Responses, StudyResponse{
		CardID:              card.ID,
		IsCorrect:           isCorrect,
		ResponseTimeSeconds: responseTime,
		AnsweredAt:          now,
	})
	s.Position++

	return card, nil
}

// Complete marks the session finished. Idempotent: completing an already
// completed session changes nothing.
func (s *StudySession) Complete(now time.Time) {
	if s.CompletedAt != nil {
		return
	}
	s.IsActive = false
	s.CompletedAt = &now
}

// Progress derives the read-only statistics snapshot. current_card is
// 1-based for display and clamps to total_cards once the session is done.
func (s *StudySession) Progress() StudyProgress {
	correct := 0
	for _, r := range s.Responses {
		if r.IsCorrect {
			correct++
		}
	}
	completed := len(s.Responses)

	accuracy := 0.0
	if completed > 0 {
		accuracy = float64(correct) / float64(completed) * 100
	}

	current := s.Position + 1
	if current > len(s.Cards) {
		current = len(s.Cards)
	}

	return StudyProgress{
		CurrentCard:        current,
		TotalCards:         len(s.Cards),
		CardsCompleted:     completed,
		CorrectResponses:   correct,
		IncorrectResponses: completed - correct,
		AccuracyPercentage: accuracy,
	}
}

// SessionArchive is the history row written when a session completes.
type SessionArchive struct {
	ID                 uuid.UUID `json:"id"`
	TotalCards         int       `json:"total_cards"`
	CardsCompleted     int       `json:"cards_completed"`
	CorrectResponses   int       `json:"correct_responses"`
	IncorrectResponses int       `json:"incorrect_responses"`
	AccuracyPercentage float64   `json:"accuracy_percentage"`
	StartedAt          time.Time `json:"started_at"`
	CompletedAt        time.Time `json:"completed_at"`
}
