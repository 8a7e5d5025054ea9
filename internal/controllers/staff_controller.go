// internal/controllers/staff_controller.go
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

type StaffController struct {
	staffService *services.StaffService
	validate     *validator.Validate
}

func NewStaffController(staffService *services.StaffService) *StaffController {
	return &StaffController{
		staffService: staffService,
		validate:     validator.New(),
	}
}

// GET /api/v1/dashboard/staff
func (c *StaffController) ListHandler(w http.ResponseWriter, r *http.Request) {
	members, err := c.staffService.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if members == nil {
		members = []models.StaffMember{}
	}
	utils.RespondWithJSON(w, http.StatusOK, members)
}

// PATCH /api/v1/dashboard/staff/{id}
func (c *StaffController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	actorID, err := getStaffID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid staff id", nil, err)
		return
	}

	var req dtos.UpdateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	if err := c.staffService.Update(r.Context(), actorID, id, models.StaffRole(req.Role), req.Department); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/dashboard/staff/{id}/active
func (c *StaffController) ToggleActiveHandler(w http.ResponseWriter, r *http.Request) {
	actorID, err := getStaffID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid staff id", nil, err)
		return
	}

	active, err := c.staffService.ToggleActive(r.Context(), actorID, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ToggleStaffActiveResponse{
		ID:       id.String(),
		IsActive: active,
	})
}
