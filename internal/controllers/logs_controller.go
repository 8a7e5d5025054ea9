// internal/controllers/logs_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/services"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 500
)

type LogsController struct {
	activityService *services.ActivityLogService
}

func NewLogsController(activityService *services.ActivityLogService) *LogsController {
	return &LogsController{activityService: activityService}
}

func logLimit(r *http.Request) int {
	limit := defaultLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}
	return limit
}

// GET /api/v1/dashboard/logs
//
// Staff see their own trail. Readers always get a list, possibly empty;
// fetch failures are logged server-side only.
func (c *LogsController) ListMineHandler(w http.ResponseWriter, r *http.Request) {
	actorID, err := getStaffID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	c.activityService.Record(r.Context(), actorID, models.ActionViewLogs, nil, nil)
	logs := c.activityService.ListMine(r.Context(), actorID, logLimit(r))
	utils.RespondWithJSON(w, http.StatusOK, logs)
}

// GET /api/v1/dashboard/logs/all (admin only, enforced by route middleware)
func (c *LogsController) ListAllHandler(w http.ResponseWriter, r *http.Request) {
	actorID, err := getStaffID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	c.activityService.Record(r.Context(), actorID, models.ActionViewLogs, nil, nil)
	logs := c.activityService.ListAll(r.Context(), logLimit(r))
	utils.RespondWithJSON(w, http.StatusOK, logs)
}
