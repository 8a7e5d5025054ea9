// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/config"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/repositories"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

// AuthService handles staff login, token refresh and logout.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.StaffMember, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, actorID uuid.UUID, refreshToken string) error
}

type authService struct {
	staffRepo    repositories.StaffMemberRepository
	attemptsRepo repositories.LoginAttemptsRepository
	jwtService   JWTService
	recorder     ActivityRecorder
	cfg          *config.Config
}

func NewAuthService(
	staffRepo repositories.StaffMemberRepository,
	attemptsRepo repositories.LoginAttemptsRepository,
	jwtService JWTService,
	recorder ActivityRecorder,
	cfg *config.Config,
) AuthService {
	return &authService{
		staffRepo:    staffRepo,
		attemptsRepo: attemptsRepo,
		jwtService:   jwtService,
		recorder:     recorder,
		cfg:          cfg,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.StaffMember, string, string, error) {
	member, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil || member == nil {
		return nil, "", "", &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeInvalidCredentials,
			Message:    "Invalid email or password",
		}
	}

	if !member.IsActive {
		return nil, "", "", &utils.AppError{
			StatusCode: http.StatusForbidden,
			Code:       utils.ErrCodeForbidden,
			Message:    "This account has been deactivated",
			Err:        utils.ErrAccountInactive,
		}
	}

	if _, err := s.attemptsRepo.GetOrCreate(ctx, member.ID); err != nil {
		utils.Logger.WithError(err).Error("Failed to get or create login attempt record")
		return nil, "", "", &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "An unexpected error occurred", Err: err}
	}

	locked, lockedUntil, err := s.attemptsRepo.IsLocked(ctx, member.ID)
	if err == nil && locked {
		return nil, "", "", &utils.AppError{
			StatusCode: http.StatusForbidden,
			Code:       utils.ErrCodeLockedAccount,
			Message:    fmt.Sprintf("Account locked until %s", lockedUntil.Format(time.RFC3339)),
			Err:        utils.ErrAccountLocked,
		}
	}

	if !utils.CheckPasswordHash(password, member.PasswordHash) {
		if incErr := s.attemptsRepo.Increment(ctx, member.ID, s.cfg.LockDuration, s.cfg.AttemptWindow, s.cfg.MaxLoginAttempts); incErr != nil {
			utils.Logger.WithError(incErr).Error("Failed to increment login attempts")
		}
		return nil, "", "", &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeInvalidCredentials,
			Message:    "Invalid email or password",
		}
	}

	_ = s.attemptsRepo.Reset(ctx, member.ID)

	access, err := s.jwtService.GenerateAccessToken(member.ID, s.cfg.AccessTokenExpiry)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to generate access token")
		return nil, "", "", &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Token generation failed", Err: err}
	}

	refresh, err := s.jwtService.GenerateRefreshToken(ctx, member.ID, s.cfg.RefreshTokenExpiry)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to generate refresh token")
		return nil, "", "", &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Token generation failed", Err: err}
	}

	// Best-effort: a failed login-audit write must never block the login.
	s.recorder.Record(ctx, member.ID, models.ActionLogin, nil, map[string]any{"email": member.Email})

	return member, access, refresh, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	staffID, access, refresh, err := s.jwtService.Rotate(ctx, refreshToken, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return "", "", &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "Invalid or expired refresh token",
			Err:        err,
		}
	}

	// The member may have been deactivated since the session was issued.
	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		utils.Logger.WithError(err).Warn("Failed to check staff status during refresh")
	}
	if member != nil && !member.IsActive {
		return "", "", &utils.AppError{
			StatusCode: http.StatusForbidden,
			Code:       utils.ErrCodeForbidden,
			Message:    "This account has been deactivated",
			Err:        utils.ErrAccountInactive,
		}
	}
	return access, refresh, nil
}

// Logout revokes the presented refresh token. Revocation failures are
// logged but do not fail the call: the client clears its state either way.
func (s *authService) Logout(ctx context.Context, actorID uuid.UUID, refreshToken string) error {
	if refreshToken != "" {
		if err := s.jwtService.Revoke(ctx, refreshToken); err != nil {
			utils.Logger.WithError(err).Warn("Failed to revoke refresh token on logout")
		}
	}
	if actorID != uuid.Nil {
		s.recorder.Record(ctx, actorID, models.ActionLogout, nil, nil)
	}
	return nil
}
