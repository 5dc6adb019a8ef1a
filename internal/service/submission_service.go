package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/skolara/skolara-api/internal/dto"
	"github.com/skolara/skolara-api/internal/models"
	"github.com/skolara/skolara-api/internal/observability"
	"github.com/skolara/skolara-api/internal/repository"
)

// ErrAssignmentNotFound indicates the assignment does not exist.
var ErrAssignmentNotFound = errors.New("assignment not found")

// ErrAssignmentNotPublished indicates the assignment is still a draft and
// cannot receive submissions.
var ErrAssignmentNotPublished = errors.New("assignment is not published")

// ErrSubmissionNotFound indicates a submission could not be found.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrDuplicateSubmission indicates the student already submitted this
// assignment. Terminal: a retry with the same pair can never succeed.
var ErrDuplicateSubmission = errors.New("assignment already submitted")

// IncompleteAnswerSetError reports which questions lack an answer.
type IncompleteAnswerSetError struct {
	MissingQuestionIDs []uint
}

func (e *IncompleteAnswerSetError) Error() string {
	return fmt.Sprintf("answer set incomplete: %d question(s) unanswered", len(e.MissingQuestionIDs))
}

// MalformedAnswerError reports an answer whose shape does not match its
// question's type.
type MalformedAnswerError struct {
	QuestionID uint
	Reason     string
}

func (e *MalformedAnswerError) Error() string {
	return fmt.Sprintf("malformed answer for question %d: %s", e.QuestionID, e.Reason)
}

// SubmissionService owns the submission ledger: it turns a student's
// answers into a recorded, auto-scored submission and enforces the
// one-submission-per-(student, assignment) invariant.
type SubmissionService interface {
	Submit(ctx context.Context, studentID uint, payload dto.SubmitRequest) (dto.SubmissionResponse, error)
	Get(ctx context.Context, id uint) (dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(subRepo repository.SubmissionRepository, assignmentRepo repository.AssignmentRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: subRepo,
		assignments: assignmentRepo,
		validator:   validate,
		activity:    activity,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, studentID uint, payload dto.SubmitRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, payload.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if !assignment.IsPublished() {
		return dto.SubmissionResponse{}, ErrAssignmentNotPublished
	}

	answers, err := s.buildAnswers(assignment, payload.Answers)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    studentID,
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  s.now(),
		Answers:      answers,
	}

	// The unique index on (assignment_id, student_id) makes this safe
	// against a concurrent submit for the same pair: exactly one insert
	// wins, the other surfaces as a duplicate key.
	if err := s.submissions.Create(ctx, &submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.SubmissionResponse{}, ErrDuplicateSubmission
		}
		return dto.SubmissionResponse{}, err
	}

	created, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	observability.SubmissionsScored().Inc()
	s.logger.Info().
		Uint("submission_id", created.ID).
		Uint("assignment_id", assignment.ID).
		Uint("student_id", studentID).
		Int("auto_score", created.TotalPoints()).
		Msg("submission recorded")

	if s.activity != nil {
		_, _ = s.activity.Record(ctx, ActivityEntry{
			ActorID:    studentID,
			ActorRole:  "student",
			Action:     "submission.created",
			EntityType: "submission",
			EntityID:   &created.ID,
			Metadata: map[string]interface{}{
				"assignment_id": assignment.ID,
				"auto_score":    created.TotalPoints(),
			},
		})
	}

	return dto.NewSubmissionResponse(created), nil
}

func (s *submissionService) Get(ctx context.Context, id uint) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission), nil
}

// buildAnswers validates the answer set against the assignment's questions
// and auto-scores each answer. Every question needs exactly one
// well-formed answer; extra answers for unknown questions are rejected.
func (s *submissionService) buildAnswers(assignment models.Assignment, inputs []dto.AnswerInput) ([]models.StudentAnswer, error) {
	byQuestion := make(map[uint]dto.AnswerInput, len(inputs))
	for _, input := range inputs {
		if _, exists := byQuestion[input.QuestionID]; exists {
			return nil, &MalformedAnswerError{QuestionID: input.QuestionID, Reason: "answered more than once"}
		}
		byQuestion[input.QuestionID] = input
	}

	for questionID := range byQuestion {
		if _, ok := assignment.QuestionByID(questionID); !ok {
			return nil, &MalformedAnswerError{QuestionID: questionID, Reason: "question does not belong to assignment"}
		}
	}

	var missing []uint
	for _, question := range assignment.Questions {
		if _, ok := byQuestion[question.ID]; !ok {
			missing = append(missing, question.ID)
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteAnswerSetError{MissingQuestionIDs: missing}
	}

	answers := make([]models.StudentAnswer, 0, len(assignment.Questions))
	for _, question := range assignment.Questions {
		input := byQuestion[question.ID]

		if err := validateAnswerShape(question, input); err != nil {
			return nil, err
		}

		isCorrect, points, fault := AutoScore(question, input.SelectedOptionID)
		if fault != nil {
			// Integrity fault in the catalog: score zero and keep going so
			// one malformed question never blocks the whole submission.
			s.logger.Warn().
				Err(fault).
				Uint("question_id", question.ID).
				Msg("question failed closed during auto-grading")
		}

		answers = append(answers, models.StudentAnswer{
			QuestionID:       question.ID,
			SelectedOptionID: input.SelectedOptionID,
			TextAnswer:       strings.TrimSpace(input.TextAnswer),
			IsCorrect:        isCorrect,
			PointsAwarded:    points,
		})
	}

	return answers, nil
}

func validateAnswerShape(question models.Question, input dto.AnswerInput) error {
	hasOption := input.SelectedOptionID != nil
	hasText := strings.TrimSpace(input.TextAnswer) != ""

	if hasOption && hasText {
		return &MalformedAnswerError{QuestionID: question.ID, Reason: "both option and text answer populated"}
	}

	if question.IsChoice() {
		if !hasOption {
			return &MalformedAnswerError{QuestionID: question.ID, Reason: "choice question requires a selected option"}
		}
		if !optionBelongsToQuestion(question, *input.SelectedOptionID) {
			return &MalformedAnswerError{QuestionID: question.ID, Reason: "selected option does not belong to question"}
		}
		return nil
	}

	if !hasText {
		return &MalformedAnswerError{QuestionID: question.ID, Reason: "short-answer question requires a text answer"}
	}

	return nil
}

func optionBelongsToQuestion(question models.Question, optionID uint) bool {
	for _, option := range question.Options {
		if option.ID == optionID {
			return true
		}
	}
	return false
}
