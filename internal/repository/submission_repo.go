package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/skolara/skolara-api/internal/models"
)

// SubmissionRepository owns the submission + answers aggregate.
type SubmissionRepository interface {
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (models.Submission, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Submission, error)
	Create(ctx context.Context, submission *models.Submission) error
	UpdateGraded(ctx context.Context, submission *models.Submission, answers []models.StudentAnswer) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Submission{}).
		Preload("Answers").
		Preload("Assignment").
		Preload("Assignment.Questions").
		Preload("Assignment.Questions.Options")
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.baseQuery(ctx).First(&submission, id).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.baseQuery(ctx).
		Where("assignment_id = ?", assignmentID).
		Where("student_id = ?", studentID).
		First(&submission).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.db.WithContext(ctx).Model(&models.Submission{}).
		Preload("Answers").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

// Create persists the submission together with its answers in a single
// transaction, so no partial submission is ever visible. The composite
// unique index on (assignment_id, student_id) turns a concurrent duplicate
// into gorm.ErrDuplicatedKey.
func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

// UpdateGraded applies a grading override atomically: the submission row
// and every adjusted answer row change in one transaction, so concurrent
// readers observe either the pre- or post-grade state, never a mix.
func (r *submissionRepository) UpdateGraded(ctx context.Context, submission *models.Submission, answers []models.StudentAnswer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Submission{ID: submission.ID}).Updates(map[string]interface{}{
			"status":    submission.Status,
			"grade":     submission.Grade,
			"feedback":  submission.Feedback,
			"graded_by": submission.GradedBy,
			"graded_at": submission.GradedAt,
		}).Error; err != nil {
			return err
		}

		for i := range answers {
			if err := tx.Model(&models.StudentAnswer{ID: answers[i].ID}).Updates(map[string]interface{}{
				"is_correct":     answers[i].IsCorrect,
				"points_awarded": answers[i].PointsAwarded,
			}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
