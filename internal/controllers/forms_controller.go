// internal/controllers/forms_controller.go
package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/dtos"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/services"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

type FormsController struct {
	formService *services.FormService
	validate    *validator.Validate
}

func NewFormsController(formService *services.FormService) *FormsController {
	return &FormsController{
		formService: formService,
		validate:    validator.New(),
	}
}

func formID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Invalid request id",
			Err:        err,
		}
	}
	return id, nil
}

// GET /api/v1/dashboard/forms
func (c *FormsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	forms, err := c.formService.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if forms == nil {
		forms = []models.FOIRequest{}
	}
	utils.RespondWithJSON(w, http.StatusOK, forms)
}

// GET /api/v1/dashboard/forms/{id}
func (c *FormsController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := formID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	form, err := c.formService.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, form)
}

// PATCH /api/v1/dashboard/forms/{id}/status
func (c *FormsController) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	actorID, err := getStaffID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := formID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdateFormStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	if err := c.formService.SetStatus(r.Context(), actorID, id, models.RequestStatus(req.Status)); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/dashboard/forms/{id}/refer
func (c *FormsController) ReferHandler(w http.ResponseWriter, r *http.Request) {
	actorID, err := getStaffID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := formID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.ReferFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	if err := c.formService.Refer(r.Context(), actorID, id, req.Department, req.Note); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
