package models

import (
	"time"

	"github.com/google/uuid"
)

// StaffRole is the closed set of dashboard roles.
type StaffRole string

const (
	RoleAdmin  StaffRole = "admin"
	RoleStaff  StaffRole = "staff"
	RoleViewer StaffRole = "viewer"
)

// ParseStaffRole maps a stored role string onto the enum. Anything
// unrecognized (including empty) degrades to the most restrictive role.
func ParseStaffRole(s string) StaffRole {
	switch StaffRole(s) {
	case RoleAdmin, RoleStaff, RoleViewer:
		return StaffRole(s)
	default:
		return RoleViewer
	}
}

// IsValid reports whether the role is one of the three known values.
func (r StaffRole) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff || r == RoleViewer
}

// StaffMember shares its ID with the identity subject it authenticates as.
// Deactivation only affects future authorization checks; it does not revoke
// sessions that are already issued.
type StaffMember struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         StaffRole `json:"role"`
	Department   string    `json:"department"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
