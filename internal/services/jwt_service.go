// internal/services/jwt_service.go
package services

import (
	"context"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/config"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/middleware"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/repositories"
)

// JWTService signs short-lived access tokens and manages the stored
// refresh-token rotation.
type JWTService interface {
	GenerateAccessToken(subjectID uuid.UUID, expiry time.Duration) (string, error)
	GenerateRefreshToken(ctx context.Context, subjectID uuid.UUID, expiry time.Duration) (string, error)
	// Rotate validates a refresh token string, revokes it, and issues a
	// fresh access/refresh pair for the same subject.
	Rotate(ctx context.Context, refreshToken string, accessExpiry, refreshExpiry time.Duration) (uuid.UUID, string, string, error)
	Revoke(ctx context.Context, refreshToken string) error
}

type jwtService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	tokenRepo  repositories.TokenRepository
}

func NewJWTService(cfg *config.Config, tokenRepo repositories.TokenRepository) JWTService {
	return &jwtService{
		privateKey: cfg.RSAPrivateKey,
		publicKey:  cfg.RSAPublicKey,
		tokenRepo:  tokenRepo,
	}
}

func (j *jwtService) GenerateAccessToken(subjectID uuid.UUID, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subjectID.String(),
		"iss": middleware.TokenIssuer,
		"iat": now.Unix(),
		"exp": now.Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(j.privateKey)
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (j *jwtService) GenerateRefreshToken(ctx context.Context, subjectID uuid.UUID, expiry time.Duration) (string, error) {
	raw := uuid.New().String() + uuid.New().String()
	token := &models.RefreshToken{
		ID:        uuid.New(),
		StaffID:   subjectID,
		TokenHash: hashRefreshToken(raw),
		ExpiresAt: time.Now().Add(expiry),
	}
	if err := j.tokenRepo.StoreRefreshToken(ctx, token); err != nil {
		return "", err
	}
	return raw, nil
}

func (j *jwtService) Rotate(ctx context.Context, refreshToken string, accessExpiry, refreshExpiry time.Duration) (uuid.UUID, string, string, error) {
	stored, err := j.tokenRepo.GetRefreshTokenByHash(ctx, hashRefreshToken(refreshToken))
	if err != nil {
		return uuid.Nil, "", "", errors.New("invalid refresh token")
	}
	if stored.ExpiresAt.Before(time.Now()) {
		_ = j.tokenRepo.RemoveRefreshTokenByHash(ctx, stored.TokenHash)
		return uuid.Nil, "", "", jwt.ErrTokenExpired
	}

	// Rotation: the presented token is single-use.
	if err := j.tokenRepo.RemoveRefreshTokenByHash(ctx, stored.TokenHash); err != nil {
		return uuid.Nil, "", "", err
	}

	access, err := j.GenerateAccessToken(stored.StaffID, accessExpiry)
	if err != nil {
		return uuid.Nil, "", "", err
	}
	refresh, err := j.GenerateRefreshToken(ctx, stored.StaffID, refreshExpiry)
	if err != nil {
		return uuid.Nil, "", "", err
	}
	return stored.StaffID, access, refresh, nil
}

func (j *jwtService) Revoke(ctx context.Context, refreshToken string) error {
	return j.tokenRepo.RemoveRefreshTokenByHash(ctx, hashRefreshToken(refreshToken))
}
