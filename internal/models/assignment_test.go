package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsQuizClassification(t *testing.T) {
	withQuestions := Assignment{Title: "Book Report", Questions: []Question{{ID: 1}}}
	require.True(t, withQuestions.IsQuiz())

	quizExamType := Assignment{Title: "Midterm", ExamType: "Quiz"}
	require.True(t, quizExamType.IsQuiz())

	quizInTitle := Assignment{Title: "Pop Quiz Friday", ExamType: "Homework"}
	require.True(t, quizInTitle.IsQuiz())

	project := Assignment{Title: "Book Report", ExamType: "Homework"}
	require.False(t, project.IsQuiz())
}

func TestIsPastDue(t *testing.T) {
	due := time.Now()
	assignment := Assignment{DueDate: due}

	require.False(t, assignment.IsPastDue(due.Add(-time.Minute)))
	require.True(t, assignment.IsPastDue(due.Add(time.Minute)))
}

func TestQuestionByID(t *testing.T) {
	assignment := Assignment{Questions: []Question{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}}

	question, ok := assignment.QuestionByID(2)
	require.True(t, ok)
	require.Equal(t, "b", question.Text)

	_, ok = assignment.QuestionByID(3)
	require.False(t, ok)
}

func TestSubmissionTotalPoints(t *testing.T) {
	submission := Submission{Answers: []StudentAnswer{
		{PointsAwarded: 5},
		{PointsAwarded: 3},
		{PointsAwarded: 0},
	}}
	require.Equal(t, 8, submission.TotalPoints())
	require.Zero(t, Submission{}.TotalPoints())
}

func TestCorrectOption(t *testing.T) {
	question := Question{
		Type: QuestionTypeMultipleChoice,
		Options: []QuestionOption{
			{ID: 1, Text: "wrong"},
			{ID: 2, Text: "right", IsCorrect: true},
		},
	}
	option, err := question.CorrectOption()
	require.NoError(t, err)
	require.Equal(t, uint(2), option.ID)

	question.Options[0].IsCorrect = true
	_, err = question.CorrectOption()
	require.ErrorIs(t, err, ErrAmbiguousCorrectOption)

	_, err = Question{Type: QuestionTypeMultipleChoice}.CorrectOption()
	require.ErrorIs(t, err, ErrAmbiguousCorrectOption)
}
