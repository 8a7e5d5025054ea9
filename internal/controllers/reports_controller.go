// internal/controllers/reports_controller.go
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

type ReportsController struct {
	reportService *services.ReportService
	validate      *validator.Validate
}

func NewReportsController(reportService *services.ReportService) *ReportsController {
	return &ReportsController{
		reportService: reportService,
		validate:      validator.New(),
	}
}

// GET /api/v1/dashboard/reports
func (c *ReportsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	reports, err := c.reportService.List(r.Context(), getStaffRole(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}
	utils.RespondWithJSON(w, http.StatusOK, reports)
}

// POST /api/v1/dashboard/reports
func (c *ReportsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	actorID, err := getStaffID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	report, err := c.reportService.Create(r.Context(), actorID, req.Title, req.Description, models.ReportType(req.ReportType))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, report)
}

// PATCH /api/v1/dashboard/reports/{id}/status
func (c *ReportsController) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	actorID, err := getStaffID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid report id", nil, err)
		return
	}

	var req dtos.UpdateReportStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	if err := c.reportService.SetStatus(r.Context(), actorID, id, models.ReportStatus(req.Status)); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
