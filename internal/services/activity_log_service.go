// internal/services/activity_log_service.go
package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/repositories"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

const (
	// activityQueueSize bounds the in-flight audit backlog. When the queue
	// is full new records are dropped, never blocked on.
	activityQueueSize = 256

	// activityWriteTimeout caps how long the drainer waits on one insert.
	activityWriteTimeout = 10 * time.Second
)

// AuditResource identifies the record an audit entry refers to.
type AuditResource struct {
	Type string
	ID   string
}

// ActivityRecorder is the write half of the audit trail. Implementations
// must never return an error and never block the caller: audit logging is
// strictly best-effort and must not interfere with the primary action.
type ActivityRecorder interface {
	Record(ctx context.Context, userID uuid.UUID, action string, resource *AuditResource, details map[string]any) bool
}

// ActivityLogService owns the audit trail. Writes go through a bounded
// queue drained by a single background goroutine, so insert failures and
// slow storage are isolated from the user-facing mutation that produced
// the entry. Reads resolve actor identity for display.
type ActivityLogService struct {
	logRepo   repositories.ActivityLogRepository
	staffRepo repositories.StaffMemberRepository

	queue chan *models.ActivityLog
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewActivityLogService(
	logRepo repositories.ActivityLogRepository,
	staffRepo repositories.StaffMemberRepository,
) *ActivityLogService {
	return &ActivityLogService{
		logRepo:   logRepo,
		staffRepo: staffRepo,
		queue:     make(chan *models.ActivityLog, activityQueueSize),
		done:      make(chan struct{}),
	}
}

// Start launches the background drainer. Call exactly once.
func (s *ActivityLogService) Start() {
	go s.drain()
}

// Close stops accepting new records, drains what is already queued, and
// returns once the drainer has exited.
func (s *ActivityLogService) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	<-s.done
}

func (s *ActivityLogService) drain() {
	defer close(s.done)
	for entry := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), activityWriteTimeout)
		if err := s.logRepo.Create(ctx, entry); err != nil {
			utils.Logger.WithError(err).WithField("action", entry.Action).
				Warn("Failed to persist activity log entry; dropping")
		}
		cancel()
	}
}

// Record stamps the details payload with the capture time and the client
// User-Agent (taken from ctx) and enqueues the entry. It returns false when
// the entry could not be accepted; callers are free to ignore the result.
func (s *ActivityLogService) Record(
	ctx context.Context,
	userID uuid.UUID,
	action string,
	resource *AuditResource,
	details map[string]any,
) bool {
	stamped := make(map[string]any, len(details)+2)
	for k, v := range details {
		stamped[k] = v
	}
	stamped["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	stamped["user_agent"] = utils.UserAgentFromContext(ctx)

	payload, err := json.Marshal(stamped)
	if err != nil {
		utils.Logger.WithError(err).Warn("Failed to encode activity log details")
		return false
	}

	entry := &models.ActivityLog{
		ID:      uuid.New(),
		UserID:  userID,
		Action:  action,
		Details: payload,
	}
	if resource != nil {
		entry.ResourceType = &resource.Type
		entry.ResourceID = &resource.ID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		utils.Logger.WithField("action", action).Warn("Activity log service closed; dropping entry")
		return false
	}

	select {
	case s.queue <- entry:
		return true
	default:
		utils.Logger.WithField("action", action).Warn("Activity log queue full; dropping entry")
		return false
	}
}

// ListMine returns up to limit records for one actor, newest first, each
// enriched with the actor's identity. An empty slice means "no data or
// transient failure", never a guarantee of zero activity.
func (s *ActivityLogService) ListMine(ctx context.Context, userID uuid.UUID, limit int) []models.ActivityLog {
	if limit <= 0 {
		limit = 100
	}
	logs, err := s.logRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to fetch activity logs")
		return []models.ActivityLog{}
	}
	if logs == nil {
		return []models.ActivityLog{}
	}
	return logs
}

// ListAll returns up to limit records across all actors, newest first.
// Actor identity is resolved with a per-record lookup; record volume is
// bounded by limit so the N+1 cost stays acceptable.
func (s *ActivityLogService) ListAll(ctx context.Context, limit int) []models.ActivityLog {
	if limit <= 0 {
		limit = 100
	}
	logs, err := s.logRepo.ListAll(ctx, limit)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to fetch activity logs")
		return []models.ActivityLog{}
	}

	for i := range logs {
		staff, err := s.staffRepo.GetByID(ctx, logs[i].UserID)
		if err != nil {
			if err != pgx.ErrNoRows {
				utils.Logger.WithError(err).WithField("user_id", logs[i].UserID).
					Warn("Failed to resolve actor for activity log entry")
			}
			continue
		}
		logs[i].Staff = &models.ActivityActor{
			FullName:   staff.FullName,
			Email:      staff.Email,
			Role:       staff.Role,
			Department: staff.Department,
		}
	}
	if logs == nil {
		return []models.ActivityLog{}
	}
	return logs
}
