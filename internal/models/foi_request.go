package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the closed lifecycle of a citizen FOI request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusInReview RequestStatus = "in_review"
	StatusResolved RequestStatus = "resolved"
	StatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// requestEdges is the transition table for request statuses. A record never
// re-enters pending, and a terminal disposition can only be corrected to the
// other terminal state.
var requestEdges = map[RequestStatus][]RequestStatus{
	StatusPending:  {StatusInReview, StatusResolved, StatusRejected},
	StatusInReview: {StatusResolved, StatusRejected},
	StatusResolved: {StatusRejected},
	StatusRejected: {StatusResolved},
}

// ValidateRequestTransition rejects unknown statuses and illegal edges.
func ValidateRequestTransition(from, to RequestStatus) error {
	if !to.IsValid() {
		return fmt.Errorf("unknown request status %q", to)
	}
	for _, next := range requestEdges[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("illegal request status transition %s -> %s", from, to)
}

// ConcernTypes is the fixed category list offered on the public form.
// "Other" is resolved into free text before submission and is never persisted.
var ConcernTypes = []string{
	"General Inquiry",
	"Document Request",
	"Service Complaint",
	"Suggestion",
	"Report",
}

// FOIRequest is a citizen submission. The reference number is generated by
// the database on insert and is never mutated afterwards.
type FOIRequest struct {
	ID              uuid.UUID     `json:"id"`
	ReferenceNumber string        `json:"reference_number"`
	FullName        string        `json:"full_name"`
	Email           string        `json:"email"`
	ContactNumber   string        `json:"contact_number"`
	Barangay        string        `json:"barangay"`
	Street          string        `json:"street"`
	Concern         string        `json:"concern"`
	ImageURL        *string       `json:"image_url,omitempty"`
	Status          RequestStatus `json:"status"`
	ReferredTo      *string       `json:"referred_to,omitempty"`
	ReferredAt      *time.Time    `json:"referred_at,omitempty"`
	Notes           *string       `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
