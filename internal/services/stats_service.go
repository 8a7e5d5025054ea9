// internal/services/stats_service.go
package services

import (
	"context"
	"net/http"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/repositories"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

// OverviewStats is the dashboard landing summary.
type OverviewStats struct {
	TotalForms       int            `json:"total_forms"`
	PendingForms     int            `json:"pending_forms"`
	ResolvedConcerns int            `json:"resolved_concerns"`
	TotalReports     int            `json:"total_reports"`
	ConcernBreakdown map[string]int `json:"concern_breakdown"`
}

type StatsService struct {
	requestRepo repositories.FOIRequestRepository
	reportRepo  repositories.ReportRepository
}

func NewStatsService(requestRepo repositories.FOIRequestRepository, reportRepo repositories.ReportRepository) *StatsService {
	return &StatsService{
		requestRepo: requestRepo,
		reportRepo:  reportRepo,
	}
}

// Overview aggregates the dashboard counters. Concerns outside the fixed
// category list (free-text "Other" submissions) are bucketed under "Other".
func (s *StatsService) Overview(ctx context.Context) (*OverviewStats, error) {
	total, err := s.requestRepo.CountAll(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	pending, err := s.requestRepo.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, s.wrap(err)
	}
	resolved, err := s.requestRepo.CountByStatus(ctx, models.StatusResolved)
	if err != nil {
		return nil, s.wrap(err)
	}
	concerns, err := s.requestRepo.CountByConcern(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}

	reports, err := s.reportRepo.List(ctx, false)
	if err != nil {
		return nil, s.wrap(err)
	}

	breakdown := make(map[string]int, len(models.ConcernTypes)+1)
	for _, category := range models.ConcernTypes {
		breakdown[category] = 0
	}
	for concern, n := range concerns {
		if _, known := breakdown[concern]; known {
			breakdown[concern] += n
		} else {
			breakdown["Other"] += n
		}
	}

	return &OverviewStats{
		TotalForms:       total,
		PendingForms:     pending,
		ResolvedConcerns: resolved,
		TotalReports:     len(reports),
		ConcernBreakdown: breakdown,
	}, nil
}

func (s *StatsService) wrap(err error) error {
	return &utils.AppError{
		StatusCode: http.StatusInternalServerError,
		Code:       utils.ErrCodeInternal,
		Message:    "Failed to compute dashboard statistics",
		Err:        err,
	}
}
