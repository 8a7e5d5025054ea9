// internal/dtos/request_dtos.go
package dtos

// SubmitRequestRequest is the public intake form payload. When Concern is
// "Other" the CustomConcern text becomes the persisted concern.
type SubmitRequestRequest struct {
	FullName      string `json:"full_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	ContactNumber string `json:"contact_number" validate:"required"`
	Barangay      string `json:"barangay" validate:"required"`
	Street        string `json:"street" validate:"required"`
	Concern       string `json:"concern" validate:"required"`
	CustomConcern string `json:"custom_concern"`
}

// SubmitRequestResponse echoes success plus the store-generated reference
// number. ReferenceNumber may be empty; the frontend shows fallback copy.
type SubmitRequestResponse struct {
	Success         bool   `json:"success"`
	ReferenceNumber string `json:"reference_number,omitempty"`
}

type UpdateFormStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ReferFormRequest struct {
	Department string `json:"department" validate:"required"`
	Note       string `json:"note"`
}
