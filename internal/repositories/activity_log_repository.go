// internal/repositories/activity_log_repository.go
package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
)

// ActivityLogRepository is append-and-read only. There is deliberately no
// update or delete method; the log is immutable once written.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	// ListByUser returns one actor's records newest first, each enriched
	// with staff identity via a join.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ActivityLog, error)
	// ListAll returns records across all actors newest first, without
	// identity enrichment; callers resolve actors separately.
	ListAll(ctx context.Context, limit int) ([]models.ActivityLog, error)
}

type activityLogRepo struct {
	db DB
}

func NewActivityLogRepository(db DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO activity_logs (
            id, user_id, action, resource_type, resource_id, details, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, NOW())
    `,
		entry.ID,
		entry.UserID,
		entry.Action,
		entry.ResourceType,
		entry.ResourceID,
		entry.Details,
	)
	return err
}

func (r *activityLogRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ActivityLog, error) {
	rows, err := r.db.Query(ctx, `
        SELECT l.id, l.user_id, l.action, l.resource_type, l.resource_id, l.details, l.created_at,
               s.full_name, s.email, s.role
        FROM activity_logs l
        JOIN staff_members s ON s.id = l.user_id
        WHERE l.user_id = $1
        ORDER BY l.created_at DESC
        LIMIT $2
    `, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ActivityLog
	for rows.Next() {
		var entry models.ActivityLog
		actor := models.ActivityActor{}
		var role string
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entry.ResourceType,
			&entry.ResourceID,
			&entry.Details,
			&entry.CreatedAt,
			&actor.FullName,
			&actor.Email,
			&role,
		)
		if err != nil {
			return nil, err
		}
		actor.Role = models.ParseStaffRole(role)
		entry.Staff = &actor
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

func (r *activityLogRepo) ListAll(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, action, resource_type, resource_id, details, created_at
        FROM activity_logs
        ORDER BY created_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ActivityLog
	for rows.Next() {
		var entry models.ActivityLog
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entry.ResourceType,
			&entry.ResourceID,
			&entry.Details,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
