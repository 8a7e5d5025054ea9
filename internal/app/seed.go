package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/config"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/repositories"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

// SystemAdminID is the fixed identity the portal attributes scheduled jobs
// to. It doubles as the bootstrap admin account.
var SystemAdminID = uuid.MustParse("11111111-2222-3333-4444-555555555555")

// SeedSystemAdmin creates the bootstrap admin when credentials are
// configured and the account does not exist yet.
func SeedSystemAdmin(cfg *config.Config, staffRepo repositories.StaffMemberRepository) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		utils.Logger.Info("No seed admin credentials configured; skipping seed.")
		return nil
	}

	ctx := context.Background()
	existing, err := staffRepo.GetByID(ctx, SystemAdminID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("error checking for existing admin: %w", err)
	}
	if existing != nil {
		utils.Logger.Infof("System admin already exists (ID=%s); skipping seed.", existing.ID)
		return nil
	}

	hash, err := utils.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	admin := &models.StaffMember{
		ID:           SystemAdminID,
		Email:        cfg.SeedAdminEmail,
		PasswordHash: hash,
		FullName:     "System Administrator",
		Role:         models.RoleAdmin,
		Department:   "City Admin Office",
		IsActive:     true,
	}
	if err := staffRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to insert system admin: %w", err)
	}

	utils.Logger.Infof("Successfully seeded system admin (ID=%s, email=%s).", admin.ID, admin.Email)
	return nil
}
