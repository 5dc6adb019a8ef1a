package models

import "time"

// Submission statuses. A row only exists from "submitted" onward; the
// conceptual pre-submission state is never persisted. Status moves forward
// only: submitted -> graded, with graded re-enterable on re-grade.
const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusGraded    = "graded"
)

// Submission is one student's single attempt record for one assignment.
// The composite unique index enforces at most one submission per
// (assignment, student) pair at the storage layer, closing the
// check-then-write race between concurrent submits.
type Submission struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	AssignmentID uint            `gorm:"not null;uniqueIndex:idx_submissions_assignment_student" json:"assignment_id"`
	StudentID    uint            `gorm:"not null;uniqueIndex:idx_submissions_assignment_student" json:"student_id"`
	Status       string          `gorm:"size:32;not null" json:"status"`
	Grade        *string         `gorm:"size:64" json:"grade"`
	Feedback     string          `gorm:"type:text" json:"feedback"`
	SubmittedAt  time.Time       `gorm:"not null" json:"submitted_at"`
	GradedBy     *uint           `json:"graded_by"`
	GradedAt     *time.Time      `json:"graded_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Assignment   Assignment      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment"`
	Answers      []StudentAnswer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"answers,omitempty"`
}

// IsGraded reports whether a teacher has recorded a final grade.
func (s Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}

// TotalPoints sums the points awarded across all answers.
func (s Submission) TotalPoints() int {
	total := 0
	for _, answer := range s.Answers {
		total += answer.PointsAwarded
	}
	return total
}

// StudentAnswer is one answer within a submission, tied to one question.
// Exactly one of SelectedOptionID and TextAnswer is populated, matching the
// question's type. IsCorrect and PointsAwarded start as the auto-grader's
// output and may later be overwritten by a teacher override.
type StudentAnswer struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	SubmissionID     uint      `gorm:"not null;index" json:"submission_id"`
	QuestionID       uint      `gorm:"not null;index" json:"question_id"`
	SelectedOptionID *uint     `json:"selected_option_id"`
	TextAnswer       string    `gorm:"type:text" json:"text_answer"`
	IsCorrect        bool      `gorm:"not null;default:false" json:"is_correct"`
	PointsAwarded    int       `gorm:"not null;default:0" json:"points_awarded"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
