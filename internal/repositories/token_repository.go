// internal/repositories/token_repository.go
package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
)

type TokenRepository interface {
	StoreRefreshToken(ctx context.Context, token *models.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	RemoveRefreshTokenByHash(ctx context.Context, hash string) error
	RemoveAllRefreshTokensByStaffID(ctx context.Context, staffID uuid.UUID) error
	CleanupExpiredRefreshTokens(ctx context.Context) error
}

type tokenRepo struct {
	db DB
}

func NewTokenRepository(db DB) TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) StoreRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO refresh_tokens (id, staff_id, token_hash, expires_at)
        VALUES ($1, $2, $3, $4)
    `, token.ID, token.StaffID, token.TokenHash, token.ExpiresAt)
	return err
}

func (r *tokenRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, staff_id, token_hash, expires_at, created_at
        FROM refresh_tokens
        WHERE token_hash=$1
    `, hash)
	token := &models.RefreshToken{}
	err := row.Scan(&token.ID, &token.StaffID, &token.TokenHash, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (r *tokenRepo) RemoveRefreshTokenByHash(ctx context.Context, hash string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash=$1`, hash)
	return err
}

func (r *tokenRepo) RemoveAllRefreshTokensByStaffID(ctx context.Context, staffID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE staff_id=$1`, staffID)
	return err
}

func (r *tokenRepo) CleanupExpiredRefreshTokens(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	return err
}
