// internal/repositories/login_attempts_repository.go
package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type LoginAttempts struct {
	StaffID      uuid.UUID
	AttemptCount int
	LockedUntil  *time.Time
	UpdatedAt    time.Time
	CreatedAt    time.Time
}

type LoginAttemptsRepository interface {
	GetOrCreate(ctx context.Context, staffID uuid.UUID) (*LoginAttempts, error)
	Increment(ctx context.Context, staffID uuid.UUID, lockDuration, window time.Duration, maxAttempts int) error
	Reset(ctx context.Context, staffID uuid.UUID) error
	IsLocked(ctx context.Context, staffID uuid.UUID) (bool, time.Time, error)
}

type loginAttemptsRepo struct {
	db DB
}

func NewLoginAttemptsRepository(db DB) LoginAttemptsRepository {
	return &loginAttemptsRepo{db: db}
}

func (r *loginAttemptsRepo) GetOrCreate(ctx context.Context, staffID uuid.UUID) (*LoginAttempts, error) {
	query := `
        SELECT staff_id, attempt_count, locked_until, updated_at, created_at
        FROM login_attempts
        WHERE staff_id = $1
    `
	row := r.db.QueryRow(ctx, query, staffID)
	la := &LoginAttempts{}
	err := row.Scan(
		&la.StaffID,
		&la.AttemptCount,
		&la.LockedUntil,
		&la.UpdatedAt,
		&la.CreatedAt,
	)
	if err == nil {
		return la, nil
	}

	insert := `
        INSERT INTO login_attempts (staff_id, attempt_count, locked_until, updated_at, created_at)
        VALUES ($1, 0, NULL, NOW(), NOW())
        ON CONFLICT (staff_id) DO UPDATE SET staff_id = EXCLUDED.staff_id
        RETURNING staff_id, attempt_count, locked_until, updated_at, created_at
    `
	row = r.db.QueryRow(ctx, insert, staffID)
	err = row.Scan(
		&la.StaffID,
		&la.AttemptCount,
		&la.LockedUntil,
		&la.UpdatedAt,
		&la.CreatedAt,
	)
	return la, err
}

func (r *loginAttemptsRepo) Increment(
	ctx context.Context,
	staffID uuid.UUID,
	lockDuration, window time.Duration,
	maxAttempts int,
) error {
	query := `
        WITH current AS (
            SELECT staff_id, attempt_count, locked_until, updated_at
            FROM login_attempts
            WHERE staff_id = $1 FOR UPDATE
        )
        UPDATE login_attempts
        SET attempt_count = CASE
            WHEN (current.locked_until IS NOT NULL AND current.locked_until > NOW()) THEN current.attempt_count
            ELSE CASE
                WHEN (NOW() - current.updated_at) > $3 THEN 1
                ELSE current.attempt_count + 1
            END
        END,
        locked_until = CASE
            WHEN (current.locked_until IS NOT NULL AND current.locked_until > NOW()) THEN current.locked_until
            ELSE CASE
                WHEN ((NOW() - current.updated_at) <= $3 AND (current.attempt_count + 1) >= $4) THEN NOW() + $2
                ELSE NULL
            END
        END,
        updated_at = NOW()
        FROM current
        WHERE login_attempts.staff_id = current.staff_id
    `
	_, err := r.db.Exec(ctx, query, staffID, lockDuration, window, maxAttempts)
	return err
}

func (r *loginAttemptsRepo) Reset(ctx context.Context, staffID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        UPDATE login_attempts
        SET attempt_count = 0, locked_until = NULL, updated_at = NOW()
        WHERE staff_id = $1
    `, staffID)
	return err
}

func (r *loginAttemptsRepo) IsLocked(ctx context.Context, staffID uuid.UUID) (bool, time.Time, error) {
	var lockedUntil *time.Time
	err := r.db.QueryRow(ctx, `
        SELECT locked_until FROM login_attempts WHERE staff_id = $1
    `, staffID).Scan(&lockedUntil)
	if err != nil {
		return false, time.Time{}, err
	}
	if lockedUntil != nil && lockedUntil.After(time.Now()) {
		return true, *lockedUntil, nil
	}
	return false, time.Time{}, nil
}
