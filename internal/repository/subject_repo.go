package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/skolara/skolara-api/internal/models"
)

// SubjectRepository lists subjects for stats aggregation.
type SubjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository instantiates the repository.
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}

	return subjects, nil
}
