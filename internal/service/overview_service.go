package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/skolara/skolara-api/internal/dto"
	"github.com/skolara/skolara-api/internal/models"
	"github.com/skolara/skolara-api/internal/repository"
)

// Overview main categories. Empty scope means both.
const (
	MainCategoryQuiz    = "quiz"
	MainCategoryProject = "project"
)

// ErrStudentNotFound indicates no student profile exists for the actor.
var ErrStudentNotFound = errors.New("student profile not found")

// ErrStudentScopeRequired indicates a teacher overview was requested
// without naming the student whose submissions should be joined.
var ErrStudentScopeRequired = errors.New("student id is required for teacher overview")

// OverviewScope narrows an overview request.
type OverviewScope struct {
	// StudentID scopes a teacher's view to one student's submissions.
	// Ignored for student actors, who always see their own.
	StudentID    *uint
	MainCategory string
}

// OverviewService joins assignments with submissions per student and
// partitions them for dashboard tabs.
type OverviewService interface {
	Overview(ctx context.Context, actor ActivityActor, scope OverviewScope) (dto.OverviewResponse, error)
}

type overviewService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	students    repository.StudentRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewOverviewService builds the overview aggregator.
func NewOverviewService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, students repository.StudentRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) OverviewService {
	return &overviewService{
		assignments: assignments,
		submissions: submissions,
		students:    students,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "overview_service").Logger(),
	}
}

func (s *overviewService) Overview(ctx context.Context, actor ActivityActor, scope OverviewScope) (dto.OverviewResponse, error) {
	if actor.Role == "student" {
		return s.studentOverview(ctx, actor.ID, scope.MainCategory)
	}

	return s.teacherOverview(ctx, actor.ID, scope)
}

func (s *overviewService) studentOverview(ctx context.Context, studentID uint, mainCategory string) (dto.OverviewResponse, error) {
	cacheKey := fmt.Sprintf("overview:student:%d:%s", studentID, mainCategory)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.OverviewResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("overview cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read overview cache")
		}
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.OverviewResponse{}, ErrStudentNotFound
		}
		return dto.OverviewResponse{}, err
	}

	published := models.AssignmentStatusPublished
	filter := repository.AssignmentFilter{
		Status:  &published,
		GradeID: student.GradeID,
		ClassID: student.ClassID,
	}

	assignments, err := s.assignments.List(ctx, filter)
	if err != nil {
		return dto.OverviewResponse{}, err
	}

	submissions, err := s.submissions.ListByStudent(ctx, student.ID)
	if err != nil {
		return dto.OverviewResponse{}, err
	}

	response := buildOverview(assignments, submissions, mainCategory)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store overview cache")
			}
		}
	}

	return response, nil
}

func (s *overviewService) teacherOverview(ctx context.Context, teacherID uint, scope OverviewScope) (dto.OverviewResponse, error) {
	if scope.StudentID == nil {
		return dto.OverviewResponse{}, ErrStudentScopeRequired
	}

	filter := repository.AssignmentFilter{TeacherID: &teacherID}
	assignments, err := s.assignments.List(ctx, filter)
	if err != nil {
		return dto.OverviewResponse{}, err
	}

	submissions, err := s.submissions.ListByStudent(ctx, *scope.StudentID)
	if err != nil {
		return dto.OverviewResponse{}, err
	}

	return buildOverview(assignments, submissions, scope.MainCategory), nil
}

// buildOverview joins assignments with submissions and partitions the
// result. Each assignment lands in exactly one of open, completed, or
// graded; there is no extra query per row.
func buildOverview(assignments []models.Assignment, submissions []models.Submission, mainCategory string) dto.OverviewResponse {
	submissionByAssignment := make(map[uint]models.Submission, len(submissions))
	for _, submission := range submissions {
		if _, exists := submissionByAssignment[submission.AssignmentID]; !exists {
			submissionByAssignment[submission.AssignmentID] = submission
		}
	}

	response := dto.OverviewResponse{
		Open:      []dto.OverviewItem{},
		Completed: []dto.OverviewItem{},
		Graded:    []dto.OverviewItem{},
	}

	for _, assignment := range assignments {
		isQuiz := assignment.IsQuiz()
		switch mainCategory {
		case MainCategoryQuiz:
			if !isQuiz {
				continue
			}
		case MainCategoryProject:
			if isQuiz {
				continue
			}
		}

		item := dto.OverviewItem{
			Assignment: dto.NewAssignmentSummary(assignment),
			IsQuiz:     isQuiz,
		}

		submission, submitted := submissionByAssignment[assignment.ID]
		if submitted {
			summary := dto.NewSubmissionSummary(submission)
			item.Submission = &summary
		}

		switch {
		case submitted && submission.Status == models.SubmissionStatusGraded:
			response.Graded = append(response.Graded, item)
		case submitted && submission.Status == models.SubmissionStatusSubmitted:
			response.Completed = append(response.Completed, item)
		default:
			response.Open = append(response.Open, item)
		}
	}

	return response
}
