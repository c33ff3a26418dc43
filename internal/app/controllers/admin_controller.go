package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kisinia/yosa/internal/app/models/dto"
	"github.com/kisinia/yosa/internal/app/services"
	"github.com/kisinia/yosa/internal/middleware"
)

// AdminController handles administrative statistics
type AdminController struct {
	adminService services.IAdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.IAdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// GetDashboard retrieves platform statistics
// @Summary Admin dashboard
// @Description Retrieves platform totals and recent activity; staff only
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminDashboardResponse} "Statistics retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Staff role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/dashboard [get]
func (c *AdminController) GetDashboard(ctx *gin.Context) {
	stats, err := c.adminService.GetDashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      stats,
		Timestamp: time.Now(),
	})
}
