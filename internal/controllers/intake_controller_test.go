package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/require"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/dtos"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/services"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

type memRequestRepo struct {
	inserted []*models.FOIRequest
}

func (m *memRequestRepo) Insert(_ context.Context, req *models.FOIRequest) (string, error) {
	m.inserted = append(m.inserted, req)
	return "FOI-2026-000007", nil
}

func (m *memRequestRepo) GetByID(_ context.Context, _ uuid.UUID) (*models.FOIRequest, error) {
	return nil, pgx.ErrNoRows
}

func (m *memRequestRepo) List(_ context.Context) ([]models.FOIRequest, error) { return nil, nil }

func (m *memRequestRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ models.RequestStatus) error {
	return nil
}

func (m *memRequestRepo) Refer(_ context.Context, _ uuid.UUID, _ string, _ *string) error {
	return nil
}

func (m *memRequestRepo) CountAll(_ context.Context) (int, error) { return 0, nil }

func (m *memRequestRepo) CountByStatus(_ context.Context, _ models.RequestStatus) (int, error) {
	return 0, nil
}

func (m *memRequestRepo) CountByConcern(_ context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

type noopUploader struct{}

func (noopUploader) Upload(_ context.Context, _ string, _ io.Reader) (string, error) {
	return "https://cdn.example.com/foi-attachments/upload.jpg", nil
}

func newIntakeHandler(repo *memRequestRepo) http.HandlerFunc {
	svc := services.NewIntakeService(repo, noopUploader{})
	return NewIntakeController(svc).SubmitHandler
}

func validPayload() map[string]string {
	return map[string]string{
		"full_name":      "Juan dela Cruz",
		"email":          "juan@example.com",
		"contact_number": "09171234567",
		"barangay":       "Poblacion",
		"street":         "Sayre Highway",
		"concern":        "Document Request",
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/foi/requests", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSubmitHandlerJSON(t *testing.T) {
	repo := &memRequestRepo{}
	rec := postJSON(t, newIntakeHandler(repo), validPayload())

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dtos.SubmitRequestResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Equal(t, "FOI-2026-000007", resp.ReferenceNumber)

	require.Len(t, repo.inserted, 1)
	require.Equal(t, "Document Request", repo.inserted[0].Concern)
}

func TestSubmitHandlerOtherConcernUsesCustomText(t *testing.T) {
	repo := &memRequestRepo{}
	payload := validPayload()
	payload["concern"] = "Other"
	payload["custom_concern"] = "Streetlight out on Sayre Highway"

	rec := postJSON(t, newIntakeHandler(repo), payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, repo.inserted, 1)
	require.Equal(t, "Streetlight out on Sayre Highway", repo.inserted[0].Concern)
}

func TestSubmitHandlerOtherConcernWithoutTextRejected(t *testing.T) {
	repo := &memRequestRepo{}
	payload := validPayload()
	payload["concern"] = "Other"

	rec := postJSON(t, newIntakeHandler(repo), payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, repo.inserted)

	var errResp utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	require.Equal(t, utils.ErrCodeValidation, errResp.Code)
}

func TestSubmitHandlerMissingFieldsRejected(t *testing.T) {
	repo := &memRequestRepo{}
	payload := validPayload()
	delete(payload, "barangay")

	rec := postJSON(t, newIntakeHandler(repo), payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, repo.inserted)
}

func TestSubmitHandlerMalformedJSON(t *testing.T) {
	repo := &memRequestRepo{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/foi/requests", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newIntakeHandler(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitHandlerMultipartWithAttachment(t *testing.T) {
	repo := &memRequestRepo{}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, value := range validPayload() {
		require.NoError(t, mw.WriteField(field, value))
	}
	part, err := mw.CreateFormFile("file", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/foi/requests", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	newIntakeHandler(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.inserted, 1)
	require.NotNil(t, repo.inserted[0].ImageURL)
}
