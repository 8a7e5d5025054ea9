package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/middleware"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

// getStaffID pulls the authenticated staff id off the request context.
func getStaffID(r *http.Request) (uuid.UUID, error) {
	ctxStaffID := r.Context().Value(middleware.ContextKeyStaffID)
	if ctxStaffID == nil {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "Missing staff identity in context",
		}
	}
	staffID, err := uuid.Parse(ctxStaffID.(string))
	if err != nil {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Invalid staff identity format",
			Err:        err,
		}
	}
	return staffID, nil
}

// getStaffRole returns the resolved role, degraded to viewer when absent.
func getStaffRole(r *http.Request) models.StaffRole {
	role, ok := r.Context().Value(middleware.ContextKeyStaffRole).(models.StaffRole)
	if !ok || !role.IsValid() {
		return models.RoleViewer
	}
	return role
}
