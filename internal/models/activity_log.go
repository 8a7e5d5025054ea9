package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Recommended action vocabulary for the activity log. The column itself is
// free-form text, so ad hoc labels still round-trip, but all application
// writers go through these constants.
const (
	ActionLogin             = "User Login"
	ActionLogout            = "User Logout"
	ActionViewForm          = "View Submitted Form"
	ActionUpdateForm        = "Update Form"
	ActionViewReport        = "View Report"
	ActionCreateReport      = "Create Report"
	ActionUpdateReport      = "Update Report"
	ActionPublishReport     = "Publish Report"
	ActionViewLogs          = "View Activity Logs"
	ActionUpdateStaff       = "Update Staff Member"
	ActionToggleStaffStatus = "Toggle Staff Status"
	ActionDashboardAccess   = "Dashboard Access"
)

// ActivityLog is an append-only audit record. No update or delete path
// exists anywhere in the application.
type ActivityLog struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	Action       string          `json:"action"`
	ResourceType *string         `json:"resource_type,omitempty"`
	ResourceID   *string         `json:"resource_id,omitempty"`
	Details      json.RawMessage `json:"details,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`

	// Staff is filled in by the readers when actor identity is resolved.
	Staff *ActivityActor `json:"staff_member,omitempty"`
}

// ActivityActor is the slice of staff identity joined onto a log record.
type ActivityActor struct {
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Role       StaffRole `json:"role"`
	Department string    `json:"department,omitempty"`
}
