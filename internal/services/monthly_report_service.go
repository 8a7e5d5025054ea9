// internal/services/monthly_report_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/repositories"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

// MonthlyReportService snapshots the dashboard statistics into a draft
// monthly report. It runs on a schedule; the draft still goes through the
// normal review/publish flow by a human.
type MonthlyReportService struct {
	reportRepo repositories.ReportRepository
	stats      *StatsService
	systemID   uuid.UUID
}

func NewMonthlyReportService(reportRepo repositories.ReportRepository, stats *StatsService, systemID uuid.UUID) *MonthlyReportService {
	return &MonthlyReportService{
		reportRepo: reportRepo,
		stats:      stats,
		systemID:   systemID,
	}
}

// GenerateMonthly creates one draft monthly report for the month that just
// ended, with the current overview stats as its data payload.
func (s *MonthlyReportService) GenerateMonthly(ctx context.Context) error {
	overview, err := s.stats.Overview(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(overview)
	if err != nil {
		return err
	}

	lastMonth := time.Now().AddDate(0, -1, 0)
	report := &models.Report{
		ID:          uuid.New(),
		Title:       fmt.Sprintf("Monthly FOI Summary - %s", lastMonth.Format("January 2006")),
		Description: "Automatically generated monthly snapshot of request activity.",
		ReportType:  models.ReportTypeMonthly,
		Status:      models.ReportDraft,
		CreatedBy:   s.systemID,
		Data:        data,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return err
	}
	utils.Logger.WithField("report_id", report.ID).Info("Generated monthly summary report draft")
	return nil
}
