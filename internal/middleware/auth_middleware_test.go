package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/require"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

type stubStaffRepo struct {
	members map[uuid.UUID]*models.StaffMember
}

func (s *stubStaffRepo) Create(_ context.Context, m *models.StaffMember) error {
	s.members[m.ID] = m
	return nil
}

func (s *stubStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*models.StaffMember, error) {
	m, ok := s.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return m, nil
}

func (s *stubStaffRepo) GetByEmail(_ context.Context, _ string) (*models.StaffMember, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubStaffRepo) List(_ context.Context) ([]models.StaffMember, error) { return nil, nil }

func (s *stubStaffRepo) UpdateRoleAndDepartment(_ context.Context, _ uuid.UUID, _ models.StaffRole, _ string) error {
	return nil
}

func (s *stubStaffRepo) SetActive(_ context.Context, _ uuid.UUID, _ bool) error { return nil }

func signToken(t *testing.T, key *rsa.PrivateKey, subject uuid.UUID, issuer string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject.String(),
		"iss": issuer,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

type capturedIdentity struct {
	staffID string
	role    models.StaffRole
	ua      string
}

func runAuthRequest(t *testing.T, key *rsa.PrivateKey, repo *stubStaffRepo, authHeader string) (*httptest.ResponseRecorder, *capturedIdentity) {
	t.Helper()
	var captured *capturedIdentity
	handler := AuthMiddleware(&key.PublicKey, repo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staffID, _ := r.Context().Value(ContextKeyStaffID).(string)
		role, _ := r.Context().Value(ContextKeyStaffRole).(models.StaffRole)
		captured = &capturedIdentity{
			staffID: staffID,
			role:    role,
			ua:      utils.UserAgentFromContext(r.Context()),
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/forms", nil)
	req.Header.Set("User-Agent", "dashboard-ui/2.1")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, captured
}

func TestAuthMiddlewareResolvesActiveMember(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	member := &models.StaffMember{ID: uuid.New(), Role: models.RoleAdmin, IsActive: true}
	repo := &stubStaffRepo{members: map[uuid.UUID]*models.StaffMember{member.ID: member}}

	token := signToken(t, key, member.ID, TokenIssuer, time.Minute)
	rec, captured := runAuthRequest(t, key, repo, "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	require.Equal(t, member.ID.String(), captured.staffID)
	require.Equal(t, models.RoleAdmin, captured.role)
	require.Equal(t, "dashboard-ui/2.1", captured.ua)
}

func TestAuthMiddlewareDegradesUnresolvedMemberToViewer(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	repo := &stubStaffRepo{members: map[uuid.UUID]*models.StaffMember{}}
	token := signToken(t, key, uuid.New(), TokenIssuer, time.Minute)
	rec, captured := runAuthRequest(t, key, repo, "Bearer "+token)

	// Authenticated but without a staff row: the request passes with the
	// most restrictive role.
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, models.RoleViewer, captured.role)
}

func TestAuthMiddlewareDegradesInactiveMemberToViewer(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	member := &models.StaffMember{ID: uuid.New(), Role: models.RoleAdmin, IsActive: false}
	repo := &stubStaffRepo{members: map[uuid.UUID]*models.StaffMember{member.ID: member}}

	token := signToken(t, key, member.ID, TokenIssuer, time.Minute)
	rec, captured := runAuthRequest(t, key, repo, "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, models.RoleViewer, captured.role)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	repo := &stubStaffRepo{members: map[uuid.UUID]*models.StaffMember{}}
	token := signToken(t, key, uuid.New(), TokenIssuer, -time.Minute)
	rec, captured := runAuthRequest(t, key, repo, "Bearer "+token)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Nil(t, captured)

	var errResp utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	require.Equal(t, utils.ErrCodeTokenExpired, errResp.Code)
}

func TestAuthMiddlewareRejectsWrongIssuer(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	repo := &stubStaffRepo{members: map[uuid.UUID]*models.StaffMember{}}
	token := signToken(t, key, uuid.New(), "someone-else", time.Minute)
	rec, _ := runAuthRequest(t, key, repo, "Bearer "+token)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	repo := &stubStaffRepo{members: map[uuid.UUID]*models.StaffMember{}}
	rec, _ := runAuthRequest(t, key, repo, "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRoles(models.RoleAdmin, models.RoleStaff)(next)

	serve := func(role models.StaffRole) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/logs", nil)
		ctx := context.WithValue(req.Context(), ContextKeyStaffRole, role)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		return rec.Code
	}

	require.Equal(t, http.StatusOK, serve(models.RoleAdmin))
	require.Equal(t, http.StatusOK, serve(models.RoleStaff))
	require.Equal(t, http.StatusForbidden, serve(models.RoleViewer))

	// No role on the context at all.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/logs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
