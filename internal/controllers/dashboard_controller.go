// internal/controllers/dashboard_controller.go
package controllers

import (
	"net/http"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/services"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

type DashboardController struct {
	statsService    *services.StatsService
	activityService *services.ActivityLogService
}

func NewDashboardController(statsService *services.StatsService, activityService *services.ActivityLogService) *DashboardController {
	return &DashboardController{
		statsService:    statsService,
		activityService: activityService,
	}
}

// GET /api/v1/dashboard/overview
func (c *DashboardController) OverviewHandler(w http.ResponseWriter, r *http.Request) {
	actorID, err := getStaffID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	c.activityService.Record(r.Context(), actorID, models.ActionDashboardAccess, nil, nil)

	stats, err := c.statsService.Overview(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// GET /api/v1/dashboard/menu
func (c *DashboardController) MenuHandler(w http.ResponseWriter, r *http.Request) {
	menu := services.VisibleMenu(getStaffRole(r))
	utils.RespondWithJSON(w, http.StatusOK, menu)
}
