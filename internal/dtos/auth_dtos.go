// internal/dtos/auth_dtos.go
package dtos

import "github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"

// LoginRequest is the request body for the staff login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the staff profile plus the token pair.
type LoginResponse struct {
	Staff        models.StaffMember `json:"staff_member"`
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type HealthCheckResponse struct {
	Status string `json:"status"`
}
