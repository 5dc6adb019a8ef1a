package service

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/skolara/skolara-api/internal/dto"
	"github.com/skolara/skolara-api/internal/models"
	"github.com/skolara/skolara-api/internal/repository"
)

// StatsService aggregates a student's assignment progress per subject for
// the grades view.
type StatsService interface {
	SubjectStats(ctx context.Context, studentID uint) ([]dto.SubjectStatsResponse, error)
}

type statsService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	students    repository.StudentRepository
	subjects    repository.SubjectRepository
	logger      zerolog.Logger
}

// NewStatsService constructs the stats aggregator.
func NewStatsService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, students repository.StudentRepository, subjects repository.SubjectRepository, logger zerolog.Logger) StatsService {
	return &statsService{
		assignments: assignments,
		submissions: submissions,
		students:    students,
		subjects:    subjects,
		logger:      logger.With().Str("component", "stats_service").Logger(),
	}
}

func (s *statsService) SubjectStats(ctx context.Context, studentID uint) ([]dto.SubjectStatsResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	published := models.AssignmentStatusPublished
	assignments, err := s.assignments.List(ctx, repository.AssignmentFilter{
		Status:  &published,
		GradeID: student.GradeID,
		ClassID: student.ClassID,
	})
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissions.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	submittedAssignments := make(map[uint]struct{}, len(submissions))
	for _, submission := range submissions {
		submittedAssignments[submission.AssignmentID] = struct{}{}
	}

	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := make(map[uint]*dto.SubjectStatsResponse, len(subjects))
	for _, subject := range subjects {
		stats[subject.ID] = &dto.SubjectStatsResponse{
			SubjectID:   subject.ID,
			SubjectName: subject.Name,
		}
	}

	for _, assignment := range assignments {
		subjectID := uint(0)
		if assignment.SubjectID != nil {
			subjectID = *assignment.SubjectID
		}

		entry, ok := stats[subjectID]
		if !ok {
			name := "General"
			if assignment.Subject != nil {
				name = assignment.Subject.Name
			}
			entry = &dto.SubjectStatsResponse{SubjectID: subjectID, SubjectName: name}
			stats[subjectID] = entry
		}

		entry.TotalAssignments++
		if _, submitted := submittedAssignments[assignment.ID]; submitted {
			entry.CompletedAssignments++
		} else {
			entry.PendingAssignments++
		}
	}

	result := make([]dto.SubjectStatsResponse, 0, len(stats))
	for _, entry := range stats {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubjectID < result[j].SubjectID })

	return result, nil
}
