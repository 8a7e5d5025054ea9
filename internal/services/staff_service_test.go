package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
)

func TestStaffUpdateRoleAndDepartment(t *testing.T) {
	member := &models.StaffMember{ID: uuid.New(), Role: models.RoleViewer, IsActive: true}
	repo := newFakeStaffRepo(member)
	recorder := &fakeRecorder{}
	svc := NewStaffService(repo, recorder)

	actor := uuid.New()
	err := svc.Update(context.Background(), actor, member.ID, models.RoleStaff, "City Records Office")
	require.NoError(t, err)
	require.Equal(t, models.RoleStaff, member.Role)
	require.Equal(t, "City Records Office", member.Department)

	require.Len(t, recorder.records, 1)
	require.Equal(t, models.ActionUpdateStaff, recorder.records[0].Action)
	require.Equal(t, "staff_members", recorder.records[0].Resource.Type)
}

func TestStaffUpdateRejectsUnknownRole(t *testing.T) {
	member := &models.StaffMember{ID: uuid.New(), Role: models.RoleViewer}
	repo := newFakeStaffRepo(member)
	svc := NewStaffService(repo, &fakeRecorder{})

	err := svc.Update(context.Background(), uuid.New(), member.ID, models.StaffRole("superuser"), "")
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, appErrFrom(t, err).StatusCode)
	require.Equal(t, models.RoleViewer, member.Role)
}

func TestStaffToggleActiveFlips(t *testing.T) {
	member := &models.StaffMember{ID: uuid.New(), Role: models.RoleStaff, IsActive: true}
	repo := newFakeStaffRepo(member)
	recorder := &fakeRecorder{}
	svc := NewStaffService(repo, recorder)

	ctx := context.Background()
	actor := uuid.New()

	nowActive, err := svc.ToggleActive(ctx, actor, member.ID)
	require.NoError(t, err)
	require.False(t, nowActive)
	require.False(t, member.IsActive)

	nowActive, err = svc.ToggleActive(ctx, actor, member.ID)
	require.NoError(t, err)
	require.True(t, nowActive)

	require.Len(t, recorder.records, 2)
	require.Equal(t, models.ActionToggleStaffStatus, recorder.records[0].Action)
	require.Equal(t, false, recorder.records[0].Details["new_status"])
	require.Equal(t, true, recorder.records[1].Details["new_status"])
}

func TestStaffToggleActiveNotFound(t *testing.T) {
	svc := NewStaffService(newFakeStaffRepo(), &fakeRecorder{})

	_, err := svc.ToggleActive(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, appErrFrom(t, err).StatusCode)
}
