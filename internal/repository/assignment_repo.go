package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/skolara/skolara-api/internal/models"
)

// AssignmentFilter narrows assignment queries for overview views.
type AssignmentFilter struct {
	Status    *string
	TeacherID *uint
	GradeID   *uint
	ClassID   *uint
}

// AssignmentRepository reads the question catalog. The catalog is owned by
// the teacher-authoring flow; this service never writes to it.
type AssignmentRepository interface {
	GetByID(ctx context.Context, id uint) (models.Assignment, error)
	List(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates the repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Assignment{}).
		Preload("Questions").
		Preload("Questions.Options").
		Preload("Subject")
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.baseQuery(ctx).First(&assignment, id).Error; err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error) {
	query := r.baseQuery(ctx)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if filter.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filter.TeacherID)
	}

	if filter.ClassID != nil {
		query = query.Where("class_id = ?", *filter.ClassID)
	} else if filter.GradeID != nil {
		query = query.Where("grade_id = ?", *filter.GradeID)
	}

	var assignments []models.Assignment
	if err := query.Order("due_date DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}
