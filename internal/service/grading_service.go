package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/skolara/skolara-api/internal/dto"
	"github.com/skolara/skolara-api/internal/models"
	"github.com/skolara/skolara-api/internal/observability"
	"github.com/skolara/skolara-api/internal/repository"
)

// PointsOutOfRangeError reports an adjustment outside [0, question.points].
// Out-of-range values are rejected rather than clamped so teacher input
// errors surface immediately.
type PointsOutOfRangeError struct {
	QuestionID uint
	Points     int
	MaxPoints  int
}

func (e *PointsOutOfRangeError) Error() string {
	return fmt.Sprintf("points %d for question %d outside range [0, %d]", e.Points, e.QuestionID, e.MaxPoints)
}

// UnknownQuestionError reports an adjustment referencing a question that is
// not part of the submission's assignment.
type UnknownQuestionError struct {
	QuestionID uint
}

func (e *UnknownQuestionError) Error() string {
	return fmt.Sprintf("question %d does not belong to the submission's assignment", e.QuestionID)
}

// GradingService lets a teacher adjust per-question correctness and points
// and record a final grade plus feedback. It supersedes the auto-grader's
// initial scoring; the auto score is merely the first snapshot.
type GradingService interface {
	Grade(ctx context.Context, submissionID uint, payload dto.GradeSubmissionRequest, actor ActivityActor) (dto.GradeSubmissionResponse, error)
}

type gradingService struct {
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	logger      zerolog.Logger
	now         func() time.Time
}

// NewGradingService constructs the grading service.
func NewGradingService(subRepo repository.SubmissionRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) GradingService {
	return &gradingService{
		submissions: subRepo,
		validator:   validate,
		activity:    activity,
		logger:      logger.With().Str("component", "grading_service").Logger(),
		now:         time.Now,
	}
}

func (s *gradingService) Grade(ctx context.Context, submissionID uint, payload dto.GradeSubmissionRequest, actor ActivityActor) (dto.GradeSubmissionResponse, error) {
	tracer := otel.Tracer("github.com/skolara/skolara-api/internal/service/grading")
	ctx, span := tracer.Start(ctx, "grading.override")
	span.SetAttributes(
		attribute.Int64("grading.submission_id", int64(submissionID)),
		attribute.Int64("grading.actor_id", int64(actor.ID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.GradeSubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "submission_not_found")
			return dto.GradeSubmissionResponse{}, ErrSubmissionNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_lookup_failed")
		return dto.GradeSubmissionResponse{}, err
	}

	adjusted, err := applyAdjustments(&submission, payload.Adjustments)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "adjustment_rejected")
		return dto.GradeSubmissionResponse{}, err
	}

	grade := strings.TrimSpace(payload.Grade)
	submission.Grade = &grade
	submission.Feedback = strings.TrimSpace(payload.Feedback)
	submission.Status = models.SubmissionStatusGraded
	gradedAt := s.now()
	submission.GradedAt = &gradedAt
	gradedBy := actor.ID
	submission.GradedBy = &gradedBy

	if err := s.submissions.UpdateGraded(ctx, &submission, adjusted); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_update_failed")
		return dto.GradeSubmissionResponse{}, err
	}

	graded, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.GradeSubmissionResponse{}, err
	}

	total := graded.TotalPoints()
	observability.GradesRecorded().Inc()
	s.logger.Info().
		Uint("submission_id", graded.ID).
		Uint("graded_by", actor.ID).
		Str("grade", grade).
		Int("recomputed_total", total).
		Msg("submission graded")

	if s.activity != nil {
		_, _ = s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "submission.graded",
			EntityType: "submission",
			EntityID:   &graded.ID,
			Metadata: map[string]interface{}{
				"assignment_id":    graded.AssignmentID,
				"student_id":       graded.StudentID,
				"grade":            grade,
				"recomputed_total": total,
			},
		})
	}

	span.SetAttributes(
		attribute.Int("grading.recomputed_total", total),
		attribute.String("grading.status", graded.Status),
	)

	return dto.GradeSubmissionResponse{
		Submission:      dto.NewSubmissionResponse(graded),
		RecomputedTotal: total,
	}, nil
}

// applyAdjustments validates every adjustment against the submission's
// question set before mutating anything, so a rejected payload leaves the
// submission untouched. It returns the modified answer rows.
func applyAdjustments(submission *models.Submission, adjustments []dto.QuestionAdjustment) ([]models.StudentAnswer, error) {
	answersByQuestion := make(map[uint]*models.StudentAnswer, len(submission.Answers))
	for i := range submission.Answers {
		answersByQuestion[submission.Answers[i].QuestionID] = &submission.Answers[i]
	}

	for _, adjustment := range adjustments {
		question, ok := submission.Assignment.QuestionByID(adjustment.QuestionID)
		if !ok {
			return nil, &UnknownQuestionError{QuestionID: adjustment.QuestionID}
		}
		if _, ok := answersByQuestion[adjustment.QuestionID]; !ok {
			return nil, &UnknownQuestionError{QuestionID: adjustment.QuestionID}
		}
		if adjustment.Points < 0 || adjustment.Points > question.Points {
			return nil, &PointsOutOfRangeError{
				QuestionID: adjustment.QuestionID,
				Points:     adjustment.Points,
				MaxPoints:  question.Points,
			}
		}
	}

	adjusted := make([]models.StudentAnswer, 0, len(adjustments))
	for _, adjustment := range adjustments {
		answer := answersByQuestion[adjustment.QuestionID]
		answer.IsCorrect = adjustment.IsCorrect
		answer.PointsAwarded = adjustment.Points
		adjusted = append(adjusted, *answer)
	}

	return adjusted, nil
}
