// internal/repositories/foi_request_repository.go
package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
)

type FOIRequestRepository interface {
	// Insert persists a new request and returns the store-generated
	// reference number. The status column is always written as pending.
	Insert(ctx context.Context, req *models.FOIRequest) (string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.FOIRequest, error)
	List(ctx context.Context) ([]models.FOIRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.RequestStatus) error
	// Refer sets the referral fields and forces status to in_review in a
	// single UPDATE, so a concurrent reader never observes one without the
	// other.
	Refer(ctx context.Context, id uuid.UUID, department string, note *string) error
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.RequestStatus) (int, error)
	CountByConcern(ctx context.Context) (map[string]int, error)
}

type foiRequestRepo struct {
	db DB
}

func NewFOIRequestRepository(db DB) FOIRequestRepository {
	return &foiRequestRepo{db: db}
}

const baseSelectRequest = `
	SELECT id, reference_number, full_name, email, contact_number, barangay, street,
	       concern, image_url, status, referred_to, referred_at, notes, created_at, updated_at
	FROM foi_requests
`

func (r *foiRequestRepo) scan(row pgx.Row) (*models.FOIRequest, error) {
	req := &models.FOIRequest{}
	var status string
	err := row.Scan(
		&req.ID,
		&req.ReferenceNumber,
		&req.FullName,
		&req.Email,
		&req.ContactNumber,
		&req.Barangay,
		&req.Street,
		&req.Concern,
		&req.ImageURL,
		&status,
		&req.ReferredTo,
		&req.ReferredAt,
		&req.Notes,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	req.Status = models.RequestStatus(status)
	return req, nil
}

func (r *foiRequestRepo) Insert(ctx context.Context, req *models.FOIRequest) (string, error) {
	// reference_number is filled by a trigger; RETURNING hands it back so
	// the citizen can be shown their reference immediately.
	var refNumber *string
	err := r.db.QueryRow(ctx, `
        INSERT INTO foi_requests (
            id, full_name, email, contact_number, barangay, street, concern, image_url, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending')
        RETURNING reference_number
    `,
		req.ID, req.FullName, req.Email, req.ContactNumber,
		req.Barangay, req.Street, req.Concern, req.ImageURL,
	).Scan(&refNumber)
	if err != nil {
		return "", err
	}
	if refNumber == nil {
		return "", nil
	}
	return *refNumber, nil
}

func (r *foiRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.FOIRequest, error) {
	row := r.db.QueryRow(ctx, baseSelectRequest+" WHERE id=$1", id)
	return r.scan(row)
}

func (r *foiRequestRepo) List(ctx context.Context) ([]models.FOIRequest, error) {
	rows, err := r.db.Query(ctx, baseSelectRequest+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.FOIRequest
	for rows.Next() {
		req, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *foiRequestRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RequestStatus) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE foi_requests
        SET status=$2, updated_at=NOW()
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

func (r *foiRequestRepo) Refer(ctx context.Context, id uuid.UUID, department string, note *string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE foi_requests
        SET referred_to=$2, referred_at=NOW(), status='in_review', notes=$3, updated_at=NOW()
        WHERE id=$1
    `, id, department, note)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *foiRequestRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM foi_requests`).Scan(&n)
	return n, err
}

func (r *foiRequestRepo) CountByStatus(ctx context.Context, status models.RequestStatus) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM foi_requests WHERE status=$1`, status).Scan(&n)
	return n, err
}

func (r *foiRequestRepo) CountByConcern(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `
        SELECT concern, COUNT(*)
        FROM foi_requests
        GROUP BY concern
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var concern string
		var n int
		if err := rows.Scan(&concern, &n); err != nil {
			return nil, err
		}
		counts[concern] = n
	}
	return counts, rows.Err()
}
