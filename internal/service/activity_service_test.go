package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skolara/skolara-api/internal/dto"
	"github.com/skolara/skolara-api/internal/models"
	"github.com/skolara/skolara-api/internal/repository"
)

type fakeActivityLogRepo struct {
	entries    []models.ActivityLog
	lastFilter repository.ActivityLogFilter
}

func (f *fakeActivityLogRepo) Create(_ context.Context, entry *models.ActivityLog) error {
	entry.ID = uint(len(f.entries) + 1)
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivityLogRepo) List(_ context.Context, filter repository.ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	f.lastFilter = filter
	return f.entries, int64(len(f.entries)), nil
}

func TestActivityRecord(t *testing.T) {
	repo := &fakeActivityLogRepo{}
	svc := NewActivityService(repo, testLogger())

	entityID := uint(5)
	response, err := svc.Record(context.Background(), ActivityEntry{
		ActorID:    9,
		ActorRole:  "teacher",
		Action:     "submission.graded",
		EntityType: "submission",
		EntityID:   &entityID,
		Metadata:   map[string]interface{}{"grade": "A"},
	})
	require.NoError(t, err)
	require.Equal(t, "submission.graded", response.Action)
	require.Equal(t, uint(9), response.ActorID)
	require.NotNil(t, response.EntityID)
	require.Equal(t, uint(5), *response.EntityID)
	require.Len(t, repo.entries, 1)
}

func TestActivityRecordRequiresAction(t *testing.T) {
	svc := NewActivityService(&fakeActivityLogRepo{}, testLogger())

	_, err := svc.Record(context.Background(), ActivityEntry{EntityType: "submission"})
	require.Error(t, err)

	_, err = svc.Record(context.Background(), ActivityEntry{Action: "submission.graded"})
	require.Error(t, err)
}

func TestActivityListPassesFilter(t *testing.T) {
	repo := &fakeActivityLogRepo{
		entries: []models.ActivityLog{
			{ID: 1, ActorID: 42, ActorRole: "student", Action: "submission.created", EntityType: "submission"},
		},
	}
	svc := NewActivityService(repo, testLogger())

	actorID := uint(42)
	response, err := svc.List(context.Background(), dto.ActivityListRequest{
		Page:     2,
		PageSize: 10,
		ActorID:  &actorID,
		Action:   "submission.created",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), response.Total)
	require.Len(t, response.Items, 1)
	require.Equal(t, "submission.created", response.Items[0].Action)

	require.Equal(t, 2, repo.lastFilter.Page)
	require.Equal(t, 10, repo.lastFilter.PageSize)
	require.NotNil(t, repo.lastFilter.ActorID)
	require.Equal(t, uint(42), *repo.lastFilter.ActorID)
}
