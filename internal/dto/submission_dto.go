package dto

import (
	"time"

	"github.com/skolara/skolara-api/internal/models"
)

// AnswerInput is one answer in a submit payload. Exactly one of
// SelectedOptionID and TextAnswer must be populated, matching the
// question's type; the service enforces the shape.
type AnswerInput struct {
	QuestionID       uint   `json:"question_id" validate:"required,gt=0"`
	SelectedOptionID *uint  `json:"selected_option_id"`
	TextAnswer       string `json:"text_answer"`
}

// SubmitRequest is the payload for a student submitting an assignment.
type SubmitRequest struct {
	AssignmentID uint          `json:"assignment_id" validate:"required,gt=0"`
	Answers      []AnswerInput `json:"answers" validate:"required,min=1,dive"`
}

// StudentAnswerResponse serializes one graded answer.
type StudentAnswerResponse struct {
	ID               uint   `json:"id"`
	QuestionID       uint   `json:"question_id"`
	SelectedOptionID *uint  `json:"selected_option_id"`
	TextAnswer       string `json:"text_answer"`
	IsCorrect        bool   `json:"is_correct"`
	PointsAwarded    int    `json:"points_awarded"`
}

// AssignmentLite summarizes an assignment in submission responses.
type AssignmentLite struct {
	ID       uint      `json:"id"`
	Title    string    `json:"title"`
	ExamType string    `json:"exam_type"`
	DueDate  time.Time `json:"due_date"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID           uint                    `json:"id"`
	AssignmentID uint                    `json:"assignment_id"`
	StudentID    uint                    `json:"student_id"`
	Status       string                  `json:"status"`
	Grade        *string                 `json:"grade"`
	Feedback     string                  `json:"feedback"`
	SubmittedAt  time.Time               `json:"submitted_at"`
	GradedBy     *uint                   `json:"graded_by"`
	GradedAt     *time.Time              `json:"graded_at"`
	TotalPoints  int                     `json:"total_points"`
	Answers      []StudentAnswerResponse `json:"answers"`
	Assignment   AssignmentLite          `json:"assignment"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:           model.ID,
		AssignmentID: model.AssignmentID,
		StudentID:    model.StudentID,
		Status:       model.Status,
		Grade:        model.Grade,
		Feedback:     model.Feedback,
		SubmittedAt:  model.SubmittedAt,
		GradedBy:     model.GradedBy,
		GradedAt:     model.GradedAt,
		TotalPoints:  model.TotalPoints(),
	}

	if model.Assignment.ID != 0 {
		response.Assignment = AssignmentLite{
			ID:       model.Assignment.ID,
			Title:    model.Assignment.Title,
			ExamType: model.Assignment.ExamType,
			DueDate:  model.Assignment.DueDate,
		}
	}

	answers := make([]StudentAnswerResponse, 0, len(model.Answers))
	for _, answer := range model.Answers {
		answers = append(answers, StudentAnswerResponse{
			ID:               answer.ID,
			QuestionID:       answer.QuestionID,
			SelectedOptionID: answer.SelectedOptionID,
			TextAnswer:       answer.TextAnswer,
			IsCorrect:        answer.IsCorrect,
			PointsAwarded:    answer.PointsAwarded,
		})
	}
	response.Answers = answers

	return response
}
