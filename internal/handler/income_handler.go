package handler

import (
	"net/http"

	"accounting/internal/middleware"
	"accounting/internal/model"
	"accounting/internal/service"
	"accounting/pkg/pagination"
	"accounting/pkg/response"

	"github.com/gin-gonic/gin"
)

type IncomeHandler struct {
	incomeService service.IncomeService
}

func NewIncomeHandler(incomeService service.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

func (h *IncomeHandler) RegisterRoutes(router *gin.RouterGroup) {
	readers := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant, model.RoleViewer)
	writers := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant)

	incomes := router.Group("/api/incomes")
	{
		incomes.GET("", readers, h.ListIncomes)
		incomes.GET("/summary", readers, h.GetIncomeSummary)
		incomes.GET("/:id", readers, h.GetIncome)
		incomes.POST("", writers, h.CreateIncome)
		incomes.PUT("/:id", writers, h.UpdateIncome)
		incomes.DELETE("/:id", writers, h.DeleteIncome)
	}
}

// ledgerFilter reads the query shared by the income and expense listings
func ledgerFilter(c *gin.Context, p pagination.Params) service.LedgerFilter {
	return service.LedgerFilter{
		CategoryID: c.Query("category_id"),
		Search:     c.Query("search"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		Page:       p.Page,
		Limit:      p.Limit,
	}
}

// @Summary      List incomes
// @Description  Newest transaction_date first
// @Tags         incomes
// @Security     BearerAuth
// @Produce      json
// @Param        page         query  int     false  "Page number (default 1)"
// @Param        limit        query  int     false  "Items per page (default 10, max 100)"
// @Param        search       query  string  false  "Search in description"
// @Param        category_id  query  int     false  "Filter by category"
// @Param        start_date   query  string  false  "From transaction_date (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "To transaction_date (YYYY-MM-DD)"
// @Success      200  {object}  response.Response{data=response.PaginatedData{items=[]service.IncomeResponse}}
// @Failure      400  {object}  response.Response
// @Router       /api/incomes [get]
func (h *IncomeHandler) ListIncomes(c *gin.Context) {
	p := pagination.Parse(c)

	incomes, total, err := h.incomeService.ListIncomes(c.Request.Context(), ledgerFilter(c, p))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, incomes, p, total))
}

// @Summary      Income summary
// @Description  Total and per-category breakdown for the same filters as the listing
// @Tags         incomes
// @Security     BearerAuth
// @Produce      json
// @Param        category_id  query  int     false  "Filter by category"
// @Param        start_date   query  string  false  "From transaction_date (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "To transaction_date (YYYY-MM-DD)"
// @Success      200  {object}  response.Response{data=service.LedgerSummaryResponse}
// @Router       /api/incomes/summary [get]
func (h *IncomeHandler) GetIncomeSummary(c *gin.Context) {
	summary, err := h.incomeService.GetIncomeSummary(c.Request.Context(), ledgerFilter(c, pagination.Params{}))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// @Summary      Get income
// @Tags         incomes
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Income ID"
// @Success      200  {object}  response.Response{data=service.IncomeResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/incomes/{id} [get]
func (h *IncomeHandler) GetIncome(c *gin.Context) {
	income, err := h.incomeService.GetIncome(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, income))
}

// @Summary      Record income
// @Tags         incomes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateIncomeRequest  true  "Income payload"
// @Success      201  {object}  response.Response{data=service.IncomeResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/incomes [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req service.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	income, err := h.incomeService.CreateIncome(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, income))
}

// @Summary      Update income
// @Tags         incomes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                          true  "Income ID"
// @Param        payload  body  service.UpdateIncomeRequest  true  "Income payload"
// @Success      200  {object}  response.Response{data=service.IncomeResponse}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/incomes/{id} [put]
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req service.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	income, err := h.incomeService.UpdateIncome(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, income))
}

// @Summary      Delete income
// @Tags         incomes
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Income ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/incomes/{id} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	if err := h.incomeService.DeleteIncome(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Income deleted successfully"}))
}
