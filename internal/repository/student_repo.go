package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/skolara/skolara-api/internal/models"
)

// StudentRepository resolves student profiles for visibility scoping.
type StudentRepository interface {
	GetByID(ctx context.Context, id uint) (models.Student, error)
	GetByUserID(ctx context.Context, userID uint) (models.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository instantiates the repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) GetByUserID(ctx context.Context, userID uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}
