package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// Front/back text limits, enforced on create and update.
	CardTextMinLen = 1
	CardTextMaxLen = 500
)

type Flashcard struct {
	ID           uuid.UUID `json:"id"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	StudyCount   int       `json:"study_count"`
	CorrectCount int       `json:"correct_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateFlashcardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type UpdateFlashcardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// ValidateCardText trims both sides and returns per-field validation
// failures. An empty map means the (trimmed) values are usable.
func ValidateCardText(front, back string) (string, string, map[string]string) {
	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)

	fields := map[string]string{}
	if utf8.RuneCountInString(front) < CardTextMinLen {
		fields["front"] = "front text cannot be empty"
	} else if utf8.RuneCountInString(front) > CardTextMaxLen {
		fields["front"] = "front text cannot exceed 500 characters"
	}
	if utf8.RuneCountInString(back) < CardTextMinLen {
		fields["back"] = "back text cannot be empty"
	} else if utf8.RuneCountInString(back) > CardTextMaxLen {
		fields["back"] = "back text cannot exceed 500 characters"
	}

	return front, back, fields
}

// Accuracy is the lifetime fraction of correct answers, 0..1.
func (f *Flashcard) Accuracy() float64 {
	if f.StudyCount == 0 {
		return 0
	}
	return float64(f.CorrectCount) / float64(f.StudyCount)
}
