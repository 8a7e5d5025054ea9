package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ReportType string

const (
	ReportTypeSummary  ReportType = "summary"
	ReportTypeDetailed ReportType = "detailed"
	ReportTypeMonthly  ReportType = "monthly"
)

func (t ReportType) IsValid() bool {
	return t == ReportTypeSummary || t == ReportTypeDetailed || t == ReportTypeMonthly
}

type ReportStatus string

const (
	ReportDraft     ReportStatus = "draft"
	ReportPublished ReportStatus = "published"
	ReportArchived  ReportStatus = "archived"
)

func (s ReportStatus) IsValid() bool {
	return s == ReportDraft || s == ReportPublished || s == ReportArchived
}

// reportEdges: draft -> published -> archived, with archive also reachable
// straight from draft. Archived is terminal.
var reportEdges = map[ReportStatus][]ReportStatus{
	ReportDraft:     {ReportPublished, ReportArchived},
	ReportPublished: {ReportArchived},
}

// ValidateReportTransition rejects unknown statuses and illegal edges.
func ValidateReportTransition(from, to ReportStatus) error {
	if !to.IsValid() {
		return fmt.Errorf("unknown report status %q", to)
	}
	for _, next := range reportEdges[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("illegal report status transition %s -> %s", from, to)
}

// Report is an internal publication. Only published reports are visible to
// the viewer role; that filter is applied at query time.
type Report struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ReportType  ReportType      `json:"report_type"`
	Status      ReportStatus    `json:"status"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	Data        json.RawMessage `json:"data"`
	CreatedAt   time.Time       `json:"created_at"`
}
