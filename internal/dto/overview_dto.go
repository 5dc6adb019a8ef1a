package dto

import (
	"time"

	"github.com/skolara/skolara-api/internal/models"
)

// AssignmentSummary enriches an assignment for overview rows.
type AssignmentSummary struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	ExamType      string    `json:"exam_type"`
	DueDate       time.Time `json:"due_date"`
	TeacherID     uint      `json:"teacher_id"`
	SubjectName   string    `json:"subject_name"`
	QuestionCount int       `json:"question_count"`
}

// SubmissionSummary is the joined submission of an overview row, when one
// exists.
type SubmissionSummary struct {
	ID          uint       `json:"id"`
	Status      string     `json:"status"`
	Grade       *string    `json:"grade"`
	Feedback    string     `json:"feedback"`
	SubmittedAt time.Time  `json:"submitted_at"`
	GradedAt    *time.Time `json:"graded_at"`
	TotalPoints int        `json:"total_points"`
}

// OverviewItem joins one assignment with the subject student's submission.
type OverviewItem struct {
	Assignment AssignmentSummary  `json:"assignment"`
	Submission *SubmissionSummary `json:"submission"`
	IsQuiz     bool               `json:"is_quiz"`
}

// OverviewResponse partitions the joined list for dashboard tabs. Every
// item belongs to exactly one partition.
type OverviewResponse struct {
	Open      []OverviewItem `json:"open"`
	Completed []OverviewItem `json:"completed"`
	Graded    []OverviewItem `json:"graded"`
}

// SubjectStatsResponse aggregates a student's assignment progress per
// subject.
type SubjectStatsResponse struct {
	SubjectID            uint   `json:"subject_id"`
	SubjectName          string `json:"subject_name"`
	TotalAssignments     int    `json:"total_assignments"`
	CompletedAssignments int    `json:"completed_assignments"`
	PendingAssignments   int    `json:"pending_assignments"`
}

// NewAssignmentSummary converts an assignment model into an overview
// summary.
func NewAssignmentSummary(model models.Assignment) AssignmentSummary {
	summary := AssignmentSummary{
		ID:            model.ID,
		Title:         model.Title,
		Description:   model.Description,
		Status:        model.Status,
		ExamType:      model.ExamType,
		DueDate:       model.DueDate,
		TeacherID:     model.TeacherID,
		SubjectName:   "General",
		QuestionCount: len(model.Questions),
	}

	if model.Subject != nil {
		summary.SubjectName = model.Subject.Name
	}

	return summary
}

// NewSubmissionSummary converts a submission model into an overview
// summary.
func NewSubmissionSummary(model models.Submission) SubmissionSummary {
	return SubmissionSummary{
		ID:          model.ID,
		Status:      model.Status,
		Grade:       model.Grade,
		Feedback:    model.Feedback,
		SubmittedAt: model.SubmittedAt,
		GradedAt:    model.GradedAt,
		TotalPoints: model.TotalPoints(),
	}
}
