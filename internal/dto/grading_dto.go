package dto

// QuestionAdjustment overrides the correctness and points of one answer.
type QuestionAdjustment struct {
	QuestionID uint `json:"question_id" validate:"required,gt=0"`
	IsCorrect  bool `json:"is_correct"`
	Points     int  `json:"points" validate:"gte=0"`
}

// GradeSubmissionRequest records a teacher's final grade for a submission.
// Grade is free text: a letter grade, a label, or a numeric string; the
// service never derives it from the recomputed total.
type GradeSubmissionRequest struct {
	Grade       string               `json:"grade" validate:"required"`
	Feedback    string               `json:"feedback"`
	Adjustments []QuestionAdjustment `json:"adjustments" validate:"dive"`
}

// GradeSubmissionResponse returns the graded submission together with the
// recomputed sum of points awarded.
type GradeSubmissionResponse struct {
	Submission      SubmissionResponse `json:"submission"`
	RecomputedTotal int                `json:"recomputed_total"`
}
