package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/repositories"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/uploads"
)

// In-memory doubles for the repository interfaces. Each one keeps just
// enough state for the service under test and exposes err fields for
// failure injection.

type fakeRequestRepo struct {
	requests  map[uuid.UUID]*models.FOIRequest
	refNumber string

	insertErr error
	listErr   error

	updateCalls []models.RequestStatus
	referCalls  int
	lastReferTo string
	lastNote    *string
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests:  make(map[uuid.UUID]*models.FOIRequest),
		refNumber: "FOI-2026-000042",
	}
}

func (f *fakeRequestRepo) Insert(_ context.Context, req *models.FOIRequest) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	stored := *req
	stored.ReferenceNumber = f.refNumber
	f.requests[req.ID] = &stored
	return f.refNumber, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id uuid.UUID) (*models.FOIRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *req
	return &copied, nil
}

func (f *fakeRequestRepo) List(_ context.Context) ([]models.FOIRequest, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.FOIRequest
	for _, req := range f.requests {
		out = append(out, *req)
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.RequestStatus) error {
	req, ok := f.requests[id]
	if !ok {
		return pgx.ErrNoRows
	}
	req.Status = status
	f.updateCalls = append(f.updateCalls, status)
	return nil
}

func (f *fakeRequestRepo) Refer(_ context.Context, id uuid.UUID, department string, note *string) error {
	req, ok := f.requests[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	req.ReferredTo = &department
	req.ReferredAt = &now
	req.Notes = note
	req.Status = models.StatusInReview
	f.referCalls++
	f.lastReferTo = department
	f.lastNote = note
	return nil
}

func (f *fakeRequestRepo) CountAll(_ context.Context) (int, error) {
	return len(f.requests), nil
}

func (f *fakeRequestRepo) CountByStatus(_ context.Context, status models.RequestStatus) (int, error) {
	n := 0
	for _, req := range f.requests {
		if req.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeRequestRepo) CountByConcern(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, req := range f.requests {
		counts[req.Concern]++
	}
	return counts, nil
}

var _ repositories.FOIRequestRepository = (*fakeRequestRepo)(nil)

type fakeReportRepo struct {
	reports map[uuid.UUID]*models.Report

	listCalls []bool
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]*models.Report)}
}

func (f *fakeReportRepo) Create(_ context.Context, report *models.Report) error {
	stored := *report
	f.reports[report.ID] = &stored
	return nil
}

func (f *fakeReportRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Report, error) {
	rep, ok := f.reports[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *rep
	return &copied, nil
}

func (f *fakeReportRepo) List(_ context.Context, publishedOnly bool) ([]models.Report, error) {
	f.listCalls = append(f.listCalls, publishedOnly)
	var out []models.Report
	for _, rep := range f.reports {
		if publishedOnly && rep.Status != models.ReportPublished {
			continue
		}
		out = append(out, *rep)
	}
	return out, nil
}

func (f *fakeReportRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.ReportStatus) error {
	rep, ok := f.reports[id]
	if !ok {
		return pgx.ErrNoRows
	}
	rep.Status = status
	return nil
}

var _ repositories.ReportRepository = (*fakeReportRepo)(nil)

// fakeActivityLogRepo is safe for the drainer goroutine to write while the
// test goroutine reads after Close.
type fakeActivityLogRepo struct {
	mu      sync.Mutex
	entries []models.ActivityLog

	// failOn makes Create fail for entries with this action.
	failOn string
	errOut error
}

func (f *fakeActivityLogRepo) Create(_ context.Context, entry *models.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != "" && entry.Action == f.failOn {
		return f.errOut
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivityLogRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]models.ActivityLog, error) {
	if f.errOut != nil {
		return nil, f.errOut
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ActivityLog
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeActivityLogRepo) ListAll(_ context.Context, limit int) ([]models.ActivityLog, error) {
	if f.errOut != nil {
		return nil, f.errOut
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ActivityLog
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.entries[i])
	}
	return out, nil
}

func (f *fakeActivityLogRepo) snapshot() []models.ActivityLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ActivityLog, len(f.entries))
	copy(out, f.entries)
	return out
}

var _ repositories.ActivityLogRepository = (*fakeActivityLogRepo)(nil)

type fakeStaffRepo struct {
	members map[uuid.UUID]*models.StaffMember

	updatedRole models.StaffRole
	updatedDept string
	setActive   *bool
}

func newFakeStaffRepo(members ...*models.StaffMember) *fakeStaffRepo {
	f := &fakeStaffRepo{members: make(map[uuid.UUID]*models.StaffMember)}
	for _, m := range members {
		f.members[m.ID] = m
	}
	return f
}

func (f *fakeStaffRepo) Create(_ context.Context, m *models.StaffMember) error {
	f.members[m.ID] = m
	return nil
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*models.StaffMember, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return m, nil
}

func (f *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*models.StaffMember, error) {
	for _, m := range f.members {
		if m.Email == email {
			return m, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStaffRepo) List(_ context.Context) ([]models.StaffMember, error) {
	var out []models.StaffMember
	for _, m := range f.members {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeStaffRepo) UpdateRoleAndDepartment(_ context.Context, id uuid.UUID, role models.StaffRole, department string) error {
	m, ok := f.members[id]
	if !ok {
		return pgx.ErrNoRows
	}
	m.Role = role
	m.Department = department
	f.updatedRole = role
	f.updatedDept = department
	return nil
}

func (f *fakeStaffRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	m, ok := f.members[id]
	if !ok {
		return pgx.ErrNoRows
	}
	m.IsActive = active
	f.setActive = &active
	return nil
}

var _ repositories.StaffMemberRepository = (*fakeStaffRepo)(nil)

type fakeAttemptsRepo struct {
	locked      bool
	lockedUntil time.Time

	increments int
	resets     int
}

func (f *fakeAttemptsRepo) GetOrCreate(_ context.Context, staffID uuid.UUID) (*repositories.LoginAttempts, error) {
	return &repositories.LoginAttempts{StaffID: staffID}, nil
}

func (f *fakeAttemptsRepo) Increment(_ context.Context, _ uuid.UUID, _, _ time.Duration, _ int) error {
	f.increments++
	return nil
}

func (f *fakeAttemptsRepo) Reset(_ context.Context, _ uuid.UUID) error {
	f.resets++
	return nil
}

func (f *fakeAttemptsRepo) IsLocked(_ context.Context, _ uuid.UUID) (bool, time.Time, error) {
	return f.locked, f.lockedUntil, nil
}

var _ repositories.LoginAttemptsRepository = (*fakeAttemptsRepo)(nil)

type fakeTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (f *fakeTokenRepo) StoreRefreshToken(_ context.Context, token *models.RefreshToken) error {
	f.tokens[token.TokenHash] = token
	return nil
}

func (f *fakeTokenRepo) GetRefreshTokenByHash(_ context.Context, hash string) (*models.RefreshToken, error) {
	tok, ok := f.tokens[hash]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return tok, nil
}

func (f *fakeTokenRepo) RemoveRefreshTokenByHash(_ context.Context, hash string) error {
	delete(f.tokens, hash)
	return nil
}

func (f *fakeTokenRepo) RemoveAllRefreshTokensByStaffID(_ context.Context, staffID uuid.UUID) error {
	for hash, tok := range f.tokens {
		if tok.StaffID == staffID {
			delete(f.tokens, hash)
		}
	}
	return nil
}

func (f *fakeTokenRepo) CleanupExpiredRefreshTokens(_ context.Context) error {
	now := time.Now()
	for hash, tok := range f.tokens {
		if tok.ExpiresAt.Before(now) {
			delete(f.tokens, hash)
		}
	}
	return nil
}

var _ repositories.TokenRepository = (*fakeTokenRepo)(nil)

// fakeRecorder captures audit calls synchronously so tests can assert on
// them without a background drainer.
type recordedAudit struct {
	UserID   uuid.UUID
	Action   string
	Resource *AuditResource
	Details  map[string]any
}

type fakeRecorder struct {
	records []recordedAudit
}

func (f *fakeRecorder) Record(_ context.Context, userID uuid.UUID, action string, resource *AuditResource, details map[string]any) bool {
	f.records = append(f.records, recordedAudit{
		UserID:   userID,
		Action:   action,
		Resource: resource,
		Details:  details,
	})
	return true
}

var _ ActivityRecorder = (*fakeRecorder)(nil)

type fakeUploader struct {
	url     string
	err     error
	calls   int
	lastArg string
}

func (f *fakeUploader) Upload(_ context.Context, filename string, _ io.Reader) (string, error) {
	f.calls++
	f.lastArg = filename
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

var _ uploads.Uploader = (*fakeUploader)(nil)
