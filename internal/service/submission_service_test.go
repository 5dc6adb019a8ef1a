package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/skolara/skolara-api/internal/dto"
	"github.com/skolara/skolara-api/internal/models"
)

func newSubmissionServiceForTest(subRepo *fakeSubmissionRepo, assignmentRepo *fakeAssignmentRepo, activity *fakeActivityRecorder) SubmissionService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	var recorder ActivityRecorder
	if activity != nil {
		recorder = activity
	}
	return NewSubmissionService(subRepo, assignmentRepo, validate, recorder, testLogger())
}

func optionID(id uint) *uint {
	return &id
}

func TestSubmitAutoScoresAnswers(t *testing.T) {
	subRepo := newFakeSubmissionRepo()
	assignmentRepo := newFakeAssignmentRepo(twoQuestionQuiz())
	activity := &fakeActivityRecorder{}
	svc := newSubmissionServiceForTest(subRepo, assignmentRepo, activity)

	response, err := svc.Submit(context.Background(), 42, dto.SubmitRequest{
		AssignmentID: 1,
		Answers: []dto.AnswerInput{
			{QuestionID: 1, SelectedOptionID: optionID(11)},
			{QuestionID: 2, SelectedOptionID: optionID(22)},
		},
	})
	require.NoError(t, err)

	require.Equal(t, models.SubmissionStatusSubmitted, response.Status)
	require.Equal(t, uint(42), response.StudentID)
	require.Equal(t, 5, response.TotalPoints)
	require.Len(t, response.Answers, 2)
	require.True(t, response.Answers[0].IsCorrect)
	require.Equal(t, 5, response.Answers[0].PointsAwarded)
	require.False(t, response.Answers[1].IsCorrect)
	require.Equal(t, 0, response.Answers[1].PointsAwarded)
	require.Nil(t, response.Grade)

	require.Len(t, activity.entries, 1)
	require.Equal(t, "submission.created", activity.entries[0].Action)
	require.Equal(t, uint(42), activity.entries[0].ActorID)
}

func TestSubmitDuplicateSubmission(t *testing.T) {
	subRepo := newFakeSubmissionRepo()
	subRepo.createErr = gorm.ErrDuplicatedKey
	svc := newSubmissionServiceForTest(subRepo, newFakeAssignmentRepo(twoQuestionQuiz()), nil)

	_, err := svc.Submit(context.Background(), 42, dto.SubmitRequest{
		AssignmentID: 1,
		Answers: []dto.AnswerInput{
			{QuestionID: 1, SelectedOptionID: optionID(11)},
			{QuestionID: 2, SelectedOptionID: optionID(21)},
		},
	})
	require.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmitSecondAttemptRejected(t *testing.T) {
	subRepo := newFakeSubmissionRepo()
	svc := newSubmissionServiceForTest(subRepo, newFakeAssignmentRepo(twoQuestionQuiz()), nil)

	payload := dto.SubmitRequest{
		AssignmentID: 1,
		Answers: []dto.AnswerInput{
			{QuestionID: 1, SelectedOptionID: optionID(11)},
			{QuestionID: 2, SelectedOptionID: optionID(21)},
		},
	}

	_, err := svc.Submit(context.Background(), 42, payload)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 42, payload)
	require.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmitUnknownAssignment(t *testing.T) {
	svc := newSubmissionServiceForTest(newFakeSubmissionRepo(), newFakeAssignmentRepo(), nil)

	_, err := svc.Submit(context.Background(), 42, dto.SubmitRequest{
		AssignmentID: 99,
		Answers:      []dto.AnswerInput{{QuestionID: 1, SelectedOptionID: optionID(11)}},
	})
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestSubmitDraftAssignmentRejected(t *testing.T) {
	draft := twoQuestionQuiz()
	draft.Status = models.AssignmentStatusDraft
	subRepo := newFakeSubmissionRepo()
	svc := newSubmissionServiceForTest(subRepo, newFakeAssignmentRepo(draft), nil)

	_, err := svc.Submit(context.Background(), 42, dto.SubmitRequest{
		AssignmentID: 1,
		Answers: []dto.AnswerInput{
			{QuestionID: 1, SelectedOptionID: optionID(11)},
			{QuestionID: 2, SelectedOptionID: optionID(21)},
		},
	})
	require.ErrorIs(t, err, ErrAssignmentNotPublished)
	require.Zero(t, subRepo.createCalls)
}

func TestSubmitIncompleteAnswerSet(t *testing.T) {
	svc := newSubmissionServiceForTest(newFakeSubmissionRepo(), newFakeAssignmentRepo(twoQuestionQuiz()), nil)

	_, err := svc.Submit(context.Background(), 42, dto.SubmitRequest{
		AssignmentID: 1,
		Answers:      []dto.AnswerInput{{QuestionID: 1, SelectedOptionID: optionID(11)}},
	})

	var incomplete *IncompleteAnswerSetError
	require.ErrorAs(t, err, &incomplete)
	require.Equal(t, []uint{2}, incomplete.MissingQuestionIDs)
}

func TestSubmitAnswerForUnknownQuestion(t *testing.T) {
	svc := newSubmissionServiceForTest(newFakeSubmissionRepo(), newFakeAssignmentRepo(twoQuestionQuiz()), nil)

	_, err := svc.Submit(context.Background(), 42, dto.SubmitRequest{
		AssignmentID: 1,
		Answers: []dto.AnswerInput{
			{QuestionID: 1, SelectedOptionID: optionID(11)},
			{QuestionID: 2, SelectedOptionID: optionID(21)},
			{QuestionID: 7, SelectedOptionID: optionID(70)},
		},
	})

	var malformed *MalformedAnswerError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, uint(7), malformed.QuestionID)
}

func TestSubmitDuplicateAnswerRejected(t *testing.T) {
	svc := newSubmissionServiceForTest(newFakeSubmissionRepo(), newFakeAssignmentRepo(twoQuestionQuiz()), nil)

	_, err := svc.Submit(context.Background(), 42, dto.SubmitRequest{
		AssignmentID: 1,
		Answers: []dto.AnswerInput{
			{QuestionID: 1, SelectedOptionID: optionID(11)},
			{QuestionID: 1, SelectedOptionID: optionID(12)},
		},
	})

	var malformed *MalformedAnswerError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, uint(1), malformed.QuestionID)
}

func TestSubmitRejectsMixedAnswerShape(t *testing.T) {
	svc := newSubmissionServiceForTest(newFakeSubmissionRepo(), newFakeAssignmentRepo(twoQuestionQuiz()), nil)

	_, err := svc.Submit(context.Background(), 42, dto.SubmitRequest{
		AssignmentID: 1,
		Answers: []dto.AnswerInput{
			{QuestionID: 1, SelectedOptionID: optionID(11), TextAnswer: "four"},
			{QuestionID: 2, SelectedOptionID: optionID(21)},
		},
	})

	var malformed *MalformedAnswerError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, uint(1), malformed.QuestionID)
}

func TestSubmitRejectsForeignOption(t *testing.T) {
	svc := newSubmissionServiceForTest(newFakeSubmissionRepo(), newFakeAssignmentRepo(twoQuestionQuiz()), nil)

	_, err := svc.Submit(context.Background(), 42, dto.SubmitRequest{
		AssignmentID: 1,
		Answers: []dto.AnswerInput{
			{QuestionID: 1, SelectedOptionID: optionID(21)},
			{QuestionID: 2, SelectedOptionID: optionID(22)},
		},
	})

	var malformed *MalformedAnswerError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, uint(1), malformed.QuestionID)
}

func TestSubmitShortAnswerRequiresText(t *testing.T) {
	assignment := twoQuestionQuiz()
	assignment.Questions = append(assignment.Questions, models.Question{
		ID:           3,
		AssignmentID: 1,
		Text:         "Explain the distributive law.",
		Type:         models.QuestionTypeShortAnswer,
		Points:       10,
	})
	svc := newSubmissionServiceForTest(newFakeSubmissionRepo(), newFakeAssignmentRepo(assignment), nil)

	_, err := svc.Submit(context.Background(), 42, dto.SubmitRequest{
		AssignmentID: 1,
		Answers: []dto.AnswerInput{
			{QuestionID: 1, SelectedOptionID: optionID(11)},
			{QuestionID: 2, SelectedOptionID: optionID(21)},
			{QuestionID: 3, TextAnswer: "   "},
		},
	})

	var malformed *MalformedAnswerError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, uint(3), malformed.QuestionID)
}

func TestSubmitShortAnswerScoredZero(t *testing.T) {
	assignment := twoQuestionQuiz()
	assignment.Questions = append(assignment.Questions, models.Question{
		ID:           3,
		AssignmentID: 1,
		Text:         "Explain the distributive law.",
		Type:         models.QuestionTypeShortAnswer,
		Points:       10,
	})
	svc := newSubmissionServiceForTest(newFakeSubmissionRepo(), newFakeAssignmentRepo(assignment), nil)

	response, err := svc.Submit(context.Background(), 42, dto.SubmitRequest{
		AssignmentID: 1,
		Answers: []dto.AnswerInput{
			{QuestionID: 1, SelectedOptionID: optionID(11)},
			{QuestionID: 2, SelectedOptionID: optionID(21)},
			{QuestionID: 3, TextAnswer: "a(b+c) = ab + ac"},
		},
	})
	require.NoError(t, err)

	// Both choice questions are correct; the short answer waits for a
	// teacher override.
	require.Equal(t, 10, response.TotalPoints)
	require.False(t, response.Answers[2].IsCorrect)
	require.Equal(t, 0, response.Answers[2].PointsAwarded)
	require.Equal(t, "a(b+c) = ab + ac", response.Answers[2].TextAnswer)
}

func TestSubmitValidatesPayload(t *testing.T) {
	svc := newSubmissionServiceForTest(newFakeSubmissionRepo(), newFakeAssignmentRepo(twoQuestionQuiz()), nil)

	_, err := svc.Submit(context.Background(), 42, dto.SubmitRequest{AssignmentID: 1})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
}

func TestGetSubmissionNotFound(t *testing.T) {
	svc := newSubmissionServiceForTest(newFakeSubmissionRepo(), newFakeAssignmentRepo(), nil)

	_, err := svc.Get(context.Background(), 123)
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}
