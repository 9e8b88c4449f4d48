package service

import (
	"context"
	"testing"

	"backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssignmentRepo struct {
	assigned map[int64]map[int64]bool // userID -> badanPublikID
}

func (f *fakeAssignmentRepo) CreateAssignment(ctx context.Context, a *models.Assignment) error {
	return nil
}

func (f *fakeAssignmentRepo) AssignmentExists(ctx context.Context, userID, badanPublikID int64) (bool, error) {
	return f.assigned[userID][badanPublikID], nil
}

func (f *fakeAssignmentRepo) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	return nil, nil
}

func (f *fakeAssignmentRepo) ListAssignmentsByUser(ctx context.Context, userID int64) ([]models.Assignment, error) {
	return nil, nil
}

func (f *fakeAssignmentRepo) ListAssignmentHistory(ctx context.Context) ([]models.AssignmentHistory, error) {
	return nil, nil
}

func (f *fakeAssignmentRepo) RecordHistory(ctx context.Context, h *models.AssignmentHistory) error {
	return nil
}

func TestCanAccessBadanPublik(t *testing.T) {
	repo := &fakeAssignmentRepo{assigned: map[int64]map[int64]bool{
		10: {100: true},
	}}
	svc := NewAccessService(repo)

	// Admin bypasses assignments entirely.
	ok, err := svc.CanAccessBadanPublik(context.Background(), 99, models.RoleAdmin, 12345)
	require.NoError(t, err)
	assert.True(t, ok)

	// Assigned user is allowed.
	ok, err = svc.CanAccessBadanPublik(context.Background(), 10, models.RoleUser, 100)
	require.NoError(t, err)
	assert.True(t, ok)

	// Unassigned user is denied.
	ok, err = svc.CanAccessBadanPublik(context.Background(), 10, models.RoleUser, 200)
	require.NoError(t, err)
	assert.False(t, ok)
}
