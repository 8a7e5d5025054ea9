// internal/controllers/intake_controller.go
package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/dtos"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/services"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

// maxIntakeBodyBytes caps the multipart intake payload (attachment included).
const maxIntakeBodyBytes = 10 << 20

type IntakeController struct {
	intakeService *services.IntakeService
	validate      *validator.Validate
}

func NewIntakeController(intakeService *services.IntakeService) *IntakeController {
	return &IntakeController{
		intakeService: intakeService,
		validate:      validator.New(),
	}
}

// POST /api/v1/foi/requests
//
// Accepts either a JSON body or multipart form data; the multipart variant
// may carry a "file" attachment which is uploaded best-effort.
func (c *IntakeController) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SubmitRequestRequest
	sub := services.IntakeSubmission{}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxIntakeBodyBytes)
		if err := r.ParseMultipartForm(maxIntakeBodyBytes); err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid form payload", nil, err)
			return
		}
		req = dtos.SubmitRequestRequest{
			FullName:      r.FormValue("full_name"),
			Email:         r.FormValue("email"),
			ContactNumber: r.FormValue("contact_number"),
			Barangay:      r.FormValue("barangay"),
			Street:        r.FormValue("street"),
			Concern:       r.FormValue("concern"),
			CustomConcern: r.FormValue("custom_concern"),
		}
		if file, header, err := r.FormFile("file"); err == nil {
			defer file.Close()
			sub.AttachmentName = header.Filename
			sub.AttachmentContent = file
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
			return
		}
	}

	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	// "Other" is a UI affordance, not a category: the custom text is what
	// gets persisted.
	concern := req.Concern
	if concern == "Other" {
		if req.CustomConcern == "" {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Please specify your concern", nil)
			return
		}
		concern = req.CustomConcern
	}

	sub.FullName = req.FullName
	sub.Email = req.Email
	sub.ContactNumber = req.ContactNumber
	sub.Barangay = req.Barangay
	sub.Street = req.Street
	sub.Concern = concern

	result, err := c.intakeService.Submit(r.Context(), sub)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.SubmitRequestResponse{
		Success:         true,
		ReferenceNumber: result.ReferenceNumber,
	})
}
