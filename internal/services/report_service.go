// internal/services/report_service.go
package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/repositories"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

const auditResourceReports = "reports"

type ReportService struct {
	reportRepo repositories.ReportRepository
	recorder   ActivityRecorder
}

func NewReportService(reportRepo repositories.ReportRepository, recorder ActivityRecorder) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		recorder:   recorder,
	}
}

// Create inserts a new report as a draft with an empty data payload.
func (s *ReportService) Create(ctx context.Context, actorID uuid.UUID, title, description string, reportType models.ReportType) (*models.Report, error) {
	if !reportType.IsValid() {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Unknown report type",
		}
	}

	report := &models.Report{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		ReportType:  reportType,
		Status:      models.ReportDraft,
		CreatedBy:   actorID,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to create report", Err: err}
	}

	s.recorder.Record(ctx, actorID, models.ActionCreateReport,
		&AuditResource{Type: auditResourceReports, ID: report.ID.String()},
		map[string]any{"title": title, "report_type": string(reportType)},
	)
	return report, nil
}

// SetStatus moves a report along draft -> published -> archived. Publishing
// gets its own audit action; every other transition is audited as a plain
// update.
func (s *ReportService) SetStatus(ctx context.Context, actorID, id uuid.UUID, newStatus models.ReportStatus) error {
	current, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Report not found"}
		}
		return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to fetch report", Err: err}
	}

	if err := models.ValidateReportTransition(current.Status, newStatus); err != nil {
		return &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeConflict,
			Message:    err.Error(),
			Err:        utils.ErrInvalidTransition,
		}
	}

	if err := s.reportRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Report not found"}
		}
		return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to update report status", Err: err}
	}

	action := models.ActionUpdateReport
	if newStatus == models.ReportPublished {
		action = models.ActionPublishReport
	}
	s.recorder.Record(ctx, actorID, action,
		&AuditResource{Type: auditResourceReports, ID: id.String()},
		map[string]any{"new_status": string(newStatus)},
	)
	return nil
}

// List returns reports newest first. Viewers only ever see published
// reports; the filter is applied by the repository query.
func (s *ReportService) List(ctx context.Context, viewerRole models.StaffRole) ([]models.Report, error) {
	publishedOnly := models.ParseStaffRole(string(viewerRole)) == models.RoleViewer
	reports, err := s.reportRepo.List(ctx, publishedOnly)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to fetch reports", Err: err}
	}
	return reports, nil
}
