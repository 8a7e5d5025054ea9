// internal/repositories/staff_member_repository.go
package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
)

type StaffMemberRepository interface {
	Create(ctx context.Context, m *models.StaffMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.StaffMember, error)
	GetByEmail(ctx context.Context, email string) (*models.StaffMember, error)
	List(ctx context.Context) ([]models.StaffMember, error)
	UpdateRoleAndDepartment(ctx context.Context, id uuid.UUID, role models.StaffRole, department string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type staffMemberRepo struct {
	db DB
}

func NewStaffMemberRepository(db DB) StaffMemberRepository {
	return &staffMemberRepo{db: db}
}

const baseSelectStaff = `
	SELECT id, email, password_hash, full_name, role, department, is_active, created_at, updated_at
	FROM staff_members
`

func (r *staffMemberRepo) scan(row pgx.Row) (*models.StaffMember, error) {
	m := &models.StaffMember{}
	var role string
	err := row.Scan(
		&m.ID,
		&m.Email,
		&m.PasswordHash,
		&m.FullName,
		&role,
		&m.Department,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Role = models.ParseStaffRole(role)
	return m, nil
}

func (r *staffMemberRepo) Create(ctx context.Context, m *models.StaffMember) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO staff_members (
            id, email, password_hash, full_name, role, department, is_active
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
    `,
		m.ID, m.Email, m.PasswordHash, m.FullName, m.Role, m.Department, m.IsActive,
	)
	return err
}

func (r *staffMemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StaffMember, error) {
	row := r.db.QueryRow(ctx, baseSelectStaff+" WHERE id=$1", id)
	return r.scan(row)
}

func (r *staffMemberRepo) GetByEmail(ctx context.Context, email string) (*models.StaffMember, error) {
	row := r.db.QueryRow(ctx, baseSelectStaff+" WHERE email=$1", email)
	return r.scan(row)
}

func (r *staffMemberRepo) List(ctx context.Context) ([]models.StaffMember, error) {
	rows, err := r.db.Query(ctx, baseSelectStaff+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.StaffMember
	for rows.Next() {
		m, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (r *staffMemberRepo) UpdateRoleAndDepartment(ctx context.Context, id uuid.UUID, role models.StaffRole, department string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE staff_members
        SET role=$2, department=$3, updated_at=NOW()
        WHERE id=$1
    `, id, role, department)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffMemberRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE staff_members
        SET is_active=$2, updated_at=NOW()
        WHERE id=$1
    `, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
