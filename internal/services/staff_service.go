// internal/services/staff_service.go
package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/repositories"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

const auditResourceStaff = "staff_members"

type StaffService struct {
	staffRepo repositories.StaffMemberRepository
	recorder  ActivityRecorder
}

func NewStaffService(staffRepo repositories.StaffMemberRepository, recorder ActivityRecorder) *StaffService {
	return &StaffService{
		staffRepo: staffRepo,
		recorder:  recorder,
	}
}

func (s *StaffService) List(ctx context.Context) ([]models.StaffMember, error) {
	members, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to fetch staff members", Err: err}
	}
	return members, nil
}

// Update changes a member's role and department. Role must be one of the
// three known values.
func (s *StaffService) Update(ctx context.Context, actorID, id uuid.UUID, role models.StaffRole, department string) error {
	if !role.IsValid() {
		return &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Unknown staff role",
			Err:        utils.ErrInvalidRole,
		}
	}

	if err := s.staffRepo.UpdateRoleAndDepartment(ctx, id, role, department); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Staff member not found"}
		}
		return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to update staff member", Err: err}
	}

	s.recorder.Record(ctx, actorID, models.ActionUpdateStaff,
		&AuditResource{Type: auditResourceStaff, ID: id.String()},
		map[string]any{"new_role": string(role), "new_department": department},
	)
	return nil
}

// ToggleActive flips the active flag. Deactivation does not revoke sessions
// already issued; it only affects future authorization checks.
func (s *StaffService) ToggleActive(ctx context.Context, actorID, id uuid.UUID) (bool, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Staff member not found"}
		}
		return false, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to fetch staff member", Err: err}
	}

	newStatus := !member.IsActive
	if err := s.staffRepo.SetActive(ctx, id, newStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Staff member not found"}
		}
		return false, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to update staff status", Err: err}
	}

	s.recorder.Record(ctx, actorID, models.ActionToggleStaffStatus,
		&AuditResource{Type: auditResourceStaff, ID: id.String()},
		map[string]any{"new_status": newStatus},
	)
	return newStatus, nil
}
