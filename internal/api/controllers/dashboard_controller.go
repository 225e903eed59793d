package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hbnb/internal/services"
	"hbnb/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
// @Summary Get platform statistics
// @Description Record counts per entity, the mean review rating and the best rated places
// @Tags Dashboard
// @Produce json
// @Param top query int false "Number of top places (default: 5, max: 50)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /stats [get]
func (p *DashboardController) GetDashboard(c *gin.Context) {
	top, err := strconv.Atoi(c.DefaultQuery("top", "5"))
	if err != nil || top < 1 || top > 50 {
		utils.RespondError(c, http.StatusBadRequest, "top must be between 1 and 50")
		return
	}

	report, err := p.dashboardService.BuildDashboard(c.Request.Context(), top)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Dashboard fetched successfully")
}
