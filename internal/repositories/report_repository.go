// internal/repositories/report_repository.go
package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	// List returns reports newest first. When publishedOnly is set the
	// filter is part of the query itself, not applied after the fetch.
	List(ctx context.Context, publishedOnly bool) ([]models.Report, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) error
}

type reportRepo struct {
	db DB
}

func NewReportRepository(db DB) ReportRepository {
	return &reportRepo{db: db}
}

const baseSelectReport = `
	SELECT id, title, description, report_type, status, created_by, data, created_at
	FROM reports
`

func (r *reportRepo) scan(row pgx.Row) (*models.Report, error) {
	rep := &models.Report{}
	var reportType, status string
	var data []byte
	err := row.Scan(
		&rep.ID,
		&rep.Title,
		&rep.Description,
		&reportType,
		&status,
		&rep.CreatedBy,
		&data,
		&rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rep.ReportType = models.ReportType(reportType)
	rep.Status = models.ReportStatus(status)
	rep.Data = json.RawMessage(data)
	return rep, nil
}

func (r *reportRepo) Create(ctx context.Context, report *models.Report) error {
	data := report.Data
	if len(data) == 0 {
		data = json.RawMessage(`{}`)
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO reports (
            id, title, description, report_type, status, created_by, data
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
    `,
		report.ID, report.Title, report.Description,
		report.ReportType, report.Status, report.CreatedBy, data,
	)
	return err
}

func (r *reportRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	row := r.db.QueryRow(ctx, baseSelectReport+" WHERE id=$1", id)
	return r.scan(row)
}

func (r *reportRepo) List(ctx context.Context, publishedOnly bool) ([]models.Report, error) {
	q := baseSelectReport
	if publishedOnly {
		q += " WHERE status='published'"
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		rep, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *rep)
	}
	return reports, rows.Err()
}

func (r *reportRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE reports
        SET status=$2
        WHERE id=$1
    `, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
