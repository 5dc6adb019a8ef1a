package models

import (
	"errors"
	"time"
)

// Question types supported by the grading engine.
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeShortAnswer    = "short_answer"
)

// ErrAmbiguousCorrectOption signals a data-integrity fault: a choice
// question with zero or more than one option flagged correct.
var ErrAmbiguousCorrectOption = errors.New("question must have exactly one correct option")

// Question belongs to an assignment and is immutable from this service's
// point of view; the authoring flow owns the catalog.
type Question struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	AssignmentID uint             `gorm:"not null;index" json:"assignment_id"`
	Text         string           `gorm:"type:text;not null" json:"text"`
	Type         string           `gorm:"size:32;not null" json:"type"`
	Points       int              `gorm:"not null" json:"points"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Options      []QuestionOption `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"options,omitempty"`
}

// QuestionOption is one selectable choice of a multiple-choice or
// true/false question. Short-answer questions carry no options.
type QuestionOption struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"is_correct"`
}

// IsChoice reports whether the question is answered by selecting an option.
func (q Question) IsChoice() bool {
	return q.Type == QuestionTypeMultipleChoice || q.Type == QuestionTypeTrueFalse
}

// CorrectOption returns the single option flagged correct. It returns
// ErrAmbiguousCorrectOption when the flag count is not exactly one, so
// callers fail closed instead of guessing.
func (q Question) CorrectOption() (QuestionOption, error) {
	var found *QuestionOption
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			if found != nil {
				return QuestionOption{}, ErrAmbiguousCorrectOption
			}
			found = &q.Options[i]
		}
	}
	if found == nil {
		return QuestionOption{}, ErrAmbiguousCorrectOption
	}
	return *found, nil
}
