package handler

import (
	"net/http"

	"accounting/internal/middleware"
	"accounting/internal/model"
	"accounting/internal/service"
	"accounting/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	statsGroup := router.Group("/api/statistics")
	{
		statsGroup.GET("/invoices", middleware.RequireRole(model.RoleAdmin, model.RoleAccountant), h.GetInvoiceStatistics)
	}
}

// @Summary      Get invoice statistics
// @Description  Totals per status, output VAT, WHT receivable and top customers for a doc_date range
// @Tags         statistics
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD), defaults to the first of this month"
// @Param        end_date   query string false "End date (YYYY-MM-DD), defaults to today"
// @Success      200 {object} response.Response{data=service.InvoiceStatisticsResponse}
// @Failure      400 {object} response.Response "Invalid date"
// @Failure      401 {object} response.Response "Unauthorized"
// @Security     BearerAuth
// @Router       /api/statistics/invoices [get]
func (h *StatisticsHandler) GetInvoiceStatistics(c *gin.Context) {
	stats, err := h.statisticsService.GetInvoiceStatistics(c.Request.Context(), service.StatisticsFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
