package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/skolara/skolara-api/internal/dto"
	"github.com/skolara/skolara-api/internal/models"
	"github.com/skolara/skolara-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type fakeAssignmentRepo struct {
	assignments map[uint]models.Assignment
	listResult  []models.Assignment
	lastFilter  repository.AssignmentFilter
	listCalls   int
}

func newFakeAssignmentRepo(assignments ...models.Assignment) *fakeAssignmentRepo {
	repo := &fakeAssignmentRepo{assignments: make(map[uint]models.Assignment, len(assignments))}
	for _, assignment := range assignments {
		repo.assignments[assignment.ID] = assignment
		repo.listResult = append(repo.listResult, assignment)
	}
	return repo
}

func (f *fakeAssignmentRepo) GetByID(_ context.Context, id uint) (models.Assignment, error) {
	assignment, ok := f.assignments[id]
	if !ok {
		return models.Assignment{}, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (f *fakeAssignmentRepo) List(_ context.Context, filter repository.AssignmentFilter) ([]models.Assignment, error) {
	f.lastFilter = filter
	f.listCalls++
	return f.listResult, nil
}

type fakeSubmissionRepo struct {
	byID        map[uint]*models.Submission
	nextID      uint
	createErr   error
	createCalls int
	updateCalls int
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{byID: make(map[uint]*models.Submission)}
}

func (f *fakeSubmissionRepo) seed(submission models.Submission) {
	stored := cloneSubmission(submission)
	f.byID[stored.ID] = &stored
	if stored.ID > f.nextID {
		f.nextID = stored.ID
	}
}

func cloneSubmission(submission models.Submission) models.Submission {
	clone := submission
	clone.Answers = append([]models.StudentAnswer(nil), submission.Answers...)
	return clone
}

func (f *fakeSubmissionRepo) GetByID(_ context.Context, id uint) (models.Submission, error) {
	submission, ok := f.byID[id]
	if !ok {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return cloneSubmission(*submission), nil
}

func (f *fakeSubmissionRepo) GetByAssignmentAndStudent(_ context.Context, assignmentID, studentID uint) (models.Submission, error) {
	for _, submission := range f.byID {
		if submission.AssignmentID == assignmentID && submission.StudentID == studentID {
			return cloneSubmission(*submission), nil
		}
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (f *fakeSubmissionRepo) ListByStudent(_ context.Context, studentID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	for _, submission := range f.byID {
		if submission.StudentID == studentID {
			submissions = append(submissions, cloneSubmission(*submission))
		}
	}
	return submissions, nil
}

func (f *fakeSubmissionRepo) Create(_ context.Context, submission *models.Submission) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.AssignmentID == submission.AssignmentID && existing.StudentID == submission.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	submission.ID = f.nextID
	for i := range submission.Answers {
		submission.Answers[i].ID = uint(i + 1)
		submission.Answers[i].SubmissionID = submission.ID
	}
	stored := cloneSubmission(*submission)
	f.byID[stored.ID] = &stored
	return nil
}

func (f *fakeSubmissionRepo) UpdateGraded(_ context.Context, submission *models.Submission, answers []models.StudentAnswer) error {
	f.updateCalls++
	stored, ok := f.byID[submission.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = submission.Status
	stored.Grade = submission.Grade
	stored.Feedback = submission.Feedback
	stored.GradedBy = submission.GradedBy
	stored.GradedAt = submission.GradedAt
	for _, answer := range answers {
		for i := range stored.Answers {
			if stored.Answers[i].ID == answer.ID {
				stored.Answers[i].IsCorrect = answer.IsCorrect
				stored.Answers[i].PointsAwarded = answer.PointsAwarded
			}
		}
	}
	return nil
}

type fakeStudentRepo struct {
	students map[uint]models.Student
}

func newFakeStudentRepo(students ...models.Student) *fakeStudentRepo {
	repo := &fakeStudentRepo{students: make(map[uint]models.Student, len(students))}
	for _, student := range students {
		repo.students[student.ID] = student
	}
	return repo
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id uint) (models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return models.Student{}, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (f *fakeStudentRepo) GetByUserID(_ context.Context, userID uint) (models.Student, error) {
	for _, student := range f.students {
		if student.UserID != nil && *student.UserID == userID {
			return student, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

type fakeSubjectRepo struct {
	subjects []models.Subject
}

func (f *fakeSubjectRepo) List(_ context.Context) ([]models.Subject, error) {
	return f.subjects, nil
}

type fakeActivityRecorder struct {
	entries []ActivityEntry
}

func (f *fakeActivityRecorder) Record(_ context.Context, entry ActivityEntry) (dto.ActivityResponse, error) {
	f.entries = append(f.entries, entry)
	return dto.ActivityResponse{}, nil
}

// twoQuestionQuiz builds a published quiz with two multiple-choice
// questions worth five points each. Options 11 and 21 are correct.
func twoQuestionQuiz() models.Assignment {
	return models.Assignment{
		ID:        1,
		Title:     "Algebra Quiz 1",
		Status:    models.AssignmentStatusPublished,
		ExamType:  "Quiz",
		DueDate:   time.Now().Add(24 * time.Hour),
		TeacherID: 9,
		Questions: []models.Question{
			{
				ID:           1,
				AssignmentID: 1,
				Text:         "2 + 2 = ?",
				Type:         models.QuestionTypeMultipleChoice,
				Points:       5,
				Options: []models.QuestionOption{
					{ID: 11, QuestionID: 1, Text: "4", IsCorrect: true},
					{ID: 12, QuestionID: 1, Text: "5"},
				},
			},
			{
				ID:           2,
				AssignmentID: 1,
				Text:         "3 * 3 = ?",
				Type:         models.QuestionTypeMultipleChoice,
				Points:       5,
				Options: []models.QuestionOption{
					{ID: 21, QuestionID: 2, Text: "9", IsCorrect: true},
					{ID: 22, QuestionID: 2, Text: "6"},
				},
			},
		},
	}
}
