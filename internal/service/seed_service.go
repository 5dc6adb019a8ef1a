package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/skolara/skolara-api/internal/models"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService populates a demo catalog for development environments: a
// subject, a published quiz with choice and short-answer questions, a
// draft assignment, a question-less project, and a student to take them.
type SeedService interface {
	SeedDemo(ctx context.Context, token string) (models.Student, error)
}

type seedService struct {
	db      *gorm.DB
	enabled bool
	token   string
	logger  zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(db *gorm.DB, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		db:      db,
		enabled: enabled,
		token:   token,
		logger:  logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) SeedDemo(ctx context.Context, token string) (models.Student, error) {
	if !s.enabled {
		return models.Student{}, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return models.Student{}, ErrSeedUnauthorized
	}

	var student models.Student
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subject := models.Subject{Name: "Mathematics"}
		if err := tx.Create(&subject).Error; err != nil {
			return err
		}

		gradeID := uint(7)
		student = models.Student{
			Name:    "Demo Student",
			Email:   "demo.student@skolara.local",
			GradeID: &gradeID,
		}
		if err := tx.Create(&student).Error; err != nil {
			return err
		}

		quiz := models.Assignment{
			Title:     "Algebra Quiz 1",
			ExamType:  "Quiz",
			Status:    models.AssignmentStatusPublished,
			DueDate:   time.Now().Add(7 * 24 * time.Hour),
			TeacherID: 1,
			SubjectID: &subject.ID,
			GradeID:   &gradeID,
			Questions: []models.Question{
				{
					Text:   "What is 2 + 2?",
					Type:   models.QuestionTypeMultipleChoice,
					Points: 5,
					Options: []models.QuestionOption{
						{Text: "3"},
						{Text: "4", IsCorrect: true},
						{Text: "5"},
					},
				},
				{
					Text:   "7 is a prime number.",
					Type:   models.QuestionTypeTrueFalse,
					Points: 5,
					Options: []models.QuestionOption{
						{Text: "True", IsCorrect: true},
						{Text: "False"},
					},
				},
				{
					Text:   "Explain the distributive law in your own words.",
					Type:   models.QuestionTypeShortAnswer,
					Points: 10,
				},
			},
		}
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}

		draft := models.Assignment{
			Title:     "Geometry Quiz 2",
			ExamType:  "Quiz",
			Status:    models.AssignmentStatusDraft,
			DueDate:   time.Now().Add(14 * 24 * time.Hour),
			TeacherID: 1,
			SubjectID: &subject.ID,
			GradeID:   &gradeID,
		}
		if err := tx.Create(&draft).Error; err != nil {
			return err
		}

		project := models.Assignment{
			Title:     "Book Report",
			ExamType:  "Homework",
			Status:    models.AssignmentStatusPublished,
			DueDate:   time.Now().Add(21 * 24 * time.Hour),
			TeacherID: 1,
			GradeID:   &gradeID,
		}
		return tx.Create(&project).Error
	})
	if err != nil {
		return models.Student{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("demo catalog seeded")

	return student, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	provided := strings.TrimSpace(token)
	if len(expected) != len(provided) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
