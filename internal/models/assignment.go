package models

import (
	"strings"
	"time"
)

// Assignment statuses. Draft assignments are invisible to students and
// cannot receive submissions.
const (
	AssignmentStatusDraft     = "draft"
	AssignmentStatusPublished = "published"
)

// Assignment represents a unit of work (quiz, homework, project) published
// to a grade or class by a teacher.
type Assignment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:32;not null;default:draft" json:"status"`
	ExamType    string     `gorm:"size:64" json:"exam_type"`
	DueDate     time.Time  `json:"due_date"`
	TeacherID   uint       `gorm:"not null;index" json:"teacher_id"`
	SubjectID   *uint      `gorm:"index" json:"subject_id"`
	GradeID     *uint      `gorm:"index" json:"grade_id"`
	ClassID     *uint      `gorm:"index" json:"class_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Subject     *Subject   `json:"subject,omitempty"`
	Questions   []Question `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"questions,omitempty"`
}

// IsPublished reports whether students may see and submit to the assignment.
func (a Assignment) IsPublished() bool {
	return a.Status == AssignmentStatusPublished
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}

// IsQuiz classifies the assignment for dashboard tabs. No stored flag
// distinguishes quizzes from projects; this heuristic is kept for
// compatibility with existing data: anything with questions, an exam type
// of "quiz", or "quiz" in its title counts as a quiz.
func (a Assignment) IsQuiz() bool {
	if len(a.Questions) > 0 {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(a.ExamType), "quiz") {
		return true
	}
	return strings.Contains(strings.ToLower(a.Title), "quiz")
}

// QuestionByID finds one of the assignment's questions.
func (a Assignment) QuestionByID(id uint) (Question, bool) {
	for _, q := range a.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
