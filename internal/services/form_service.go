// internal/services/form_service.go
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

// auditResourceForms tags audit entries that reference a submitted form.
const auditResourceForms = "forms"

// FormService drives the request lifecycle on the staff side. Every status
// change goes through the transition table; every mutation is audited on
// the best-effort path.
type FormService struct {
	requestRepo repositories.FOIRequestRepository
	recorder    ActivityRecorder
}

func NewFormService(requestRepo repositories.FOIRequestRepository, recorder ActivityRecorder) *FormService {
	return &FormService{
		requestRepo: requestRepo,
		recorder:    recorder,
	}
}

func (s *FormService) List(ctx context.Context) ([]models.FOIRequest, error) {
	requests, err := s.requestRepo.List(ctx)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusInternalServerError,
			Code:       utils.ErrCodeInternal,
			Message:    "Failed to fetch submitted forms",
			Err:        err,
		}
	}
	return requests, nil
}

func (s *FormService) Get(ctx context.Context, id uuid.UUID) (*models.FOIRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Request not found"}
		}
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to fetch request", Err: err}
	}
	return req, nil
}

// SetStatus transitions a request to newStatus. Illegal edges are rejected
// with a conflict before anything is written.
func (s *FormService) SetStatus(ctx context.Context, actorID, id uuid.UUID, newStatus models.RequestStatus) error {
	current, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Request not found"}
		}
		return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to fetch request", Err: err}
	}

	if err := models.ValidateRequestTransition(current.Status, newStatus); err != nil {
		return &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeConflict,
			Message:    err.Error(),
			Err:        utils.ErrInvalidTransition,
		}
	}

	if err := s.requestRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Request not found"}
		}
		return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to update request status", Err: err}
	}

	s.recorder.Record(ctx, actorID, models.ActionUpdateForm,
		&AuditResource{Type: auditResourceForms, ID: id.String()},
		map[string]any{"new_status": string(newStatus)},
	)
	return nil
}

// Refer routes a request to an internal department. Department is required;
// the referral fields and the forced in_review status land in one UPDATE.
func (s *FormService) Refer(ctx context.Context, actorID, id uuid.UUID, department string, note string) error {
	if department == "" {
		return &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Please select a department",
		}
	}

	current, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Request not found"}
		}
		return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to fetch request", Err: err}
	}

	// Referral forces in_review; that edge must be legal from the current
	// state (pending, or already in_review for a re-referral).
	if current.Status != models.StatusInReview {
		if err := models.ValidateRequestTransition(current.Status, models.StatusInReview); err != nil {
			return &utils.AppError{
				StatusCode: http.StatusConflict,
				Code:       utils.ErrCodeConflict,
				Message:    err.Error(),
				Err:        utils.ErrInvalidTransition,
			}
		}
	}

	var notePtr *string
	if note != "" {
		notePtr = &note
	}
	if err := s.requestRepo.Refer(ctx, id, department, notePtr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Request not found"}
		}
		return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to refer request", Err: err}
	}

	s.recorder.Record(ctx, actorID, models.ActionUpdateForm,
		&AuditResource{Type: auditResourceForms, ID: id.String()},
		map[string]any{"action": "referred", "referred_to": department, "note": note},
	)
	return nil
}
