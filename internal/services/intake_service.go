// internal/services/intake_service.go
package services

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/repositories"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/uploads"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

// IntakeSubmission carries the validated citizen form fields. Concern must
// already be resolved: when the citizen picked "Other" the custom text goes
// here, never the literal category name.
type IntakeSubmission struct {
	FullName      string
	Email         string
	ContactNumber string
	Barangay      string
	Street        string
	Concern       string

	// Optional attachment. Upload is best-effort; a failed upload never
	// blocks the submission.
	AttachmentName    string
	AttachmentContent io.Reader
}

// IntakeResult is what the citizen sees after submitting. The reference
// number may be empty when the store did not return one; callers must show
// fallback messaging rather than fail.
type IntakeResult struct {
	ReferenceNumber string `json:"reference_number"`
}

type IntakeService struct {
	requestRepo repositories.FOIRequestRepository
	uploader    uploads.Uploader
}

func NewIntakeService(requestRepo repositories.FOIRequestRepository, uploader uploads.Uploader) *IntakeService {
	return &IntakeService{
		requestRepo: requestRepo,
		uploader:    uploader,
	}
}

// Submit persists a new citizen request with status pending. The store
// generates the reference number; intake never synthesizes one locally.
func (s *IntakeService) Submit(ctx context.Context, sub IntakeSubmission) (*IntakeResult, error) {
	var imageURL *string
	if sub.AttachmentContent != nil {
		url, err := s.uploader.Upload(ctx, sub.AttachmentName, sub.AttachmentContent)
		if err != nil {
			utils.Logger.WithError(err).Warn("Attachment upload failed; continuing submission without image")
		} else {
			imageURL = &url
		}
	}

	req := &models.FOIRequest{
		ID:            uuid.New(),
		FullName:      sub.FullName,
		Email:         sub.Email,
		ContactNumber: sub.ContactNumber,
		Barangay:      sub.Barangay,
		Street:        sub.Street,
		Concern:       sub.Concern,
		ImageURL:      imageURL,
		Status:        models.StatusPending,
	}

	refNumber, err := s.requestRepo.Insert(ctx, req)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusInternalServerError,
			Code:       utils.ErrCodeInternal,
			Message:    "Failed to submit request",
			Err:        err,
		}
	}

	return &IntakeResult{ReferenceNumber: refNumber}, nil
}
