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

type ExpenseHandler struct {
	expenseService service.ExpenseService
}

func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

func (h *ExpenseHandler) RegisterRoutes(router *gin.RouterGroup) {
	readers := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant, model.RoleViewer)
	writers := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant)

	expenses := router.Group("/api/expenses")
	{
		expenses.GET("", readers, h.ListExpenses)
		expenses.GET("/summary", readers, h.GetExpenseSummary)
		expenses.GET("/budget-alerts", readers, h.GetBudgetAlerts)
		expenses.GET("/:id", readers, h.GetExpense)
		expenses.POST("", writers, h.CreateExpense)
		expenses.PUT("/:id", writers, h.UpdateExpense)
		expenses.DELETE("/:id", writers, h.DeleteExpense)
	}
}

// @Summary      List expenses
// @Description  Newest transaction_date first
// @Tags         expenses
// @Security     BearerAuth
// @Produce      json
// @Param        page         query  int     false  "Page number (default 1)"
// @Param        limit        query  int     false  "Items per page (default 10, max 100)"
// @Param        search       query  string  false  "Search in description"
// @Param        category_id  query  int     false  "Filter by category"
// @Param        start_date   query  string  false  "From transaction_date (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "To transaction_date (YYYY-MM-DD)"
// @Success      200  {object}  response.Response{data=response.PaginatedData{items=[]service.ExpenseResponse}}
// @Failure      400  {object}  response.Response
// @Router       /api/expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	p := pagination.Parse(c)

	expenses, total, err := h.expenseService.ListExpenses(c.Request.Context(), ledgerFilter(c, p))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, expenses, p, total))
}

// @Summary      Expense summary
// @Tags         expenses
// @Security     BearerAuth
// @Produce      json
// @Param        category_id  query  int     false  "Filter by category"
// @Param        start_date   query  string  false  "From transaction_date (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "To transaction_date (YYYY-MM-DD)"
// @Success      200  {object}  response.Response{data=service.LedgerSummaryResponse}
// @Router       /api/expenses/summary [get]
func (h *ExpenseHandler) GetExpenseSummary(c *gin.Context) {
	summary, err := h.expenseService.GetExpenseSummary(c.Request.Context(), ledgerFilter(c, pagination.Params{}))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// @Summary      Budget alerts
// @Description  The caller's budgeted expenses whose limit this month's spending has passed
// @Tags         expenses
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.BudgetAlertResponse}
// @Router       /api/expenses/budget-alerts [get]
func (h *ExpenseHandler) GetBudgetAlerts(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	alerts, err := h.expenseService.GetBudgetAlerts(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, alerts))
}

// @Summary      Get expense
// @Tags         expenses
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Expense ID"
// @Success      200  {object}  response.Response{data=service.ExpenseResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	expense, err := h.expenseService.GetExpense(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, expense))
}

// @Summary      Record expense
// @Description  Reports a budget_alert when the caller's spending for the month passes budget_limit
// @Tags         expenses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateExpenseRequest  true  "Expense payload"
// @Success      201  {object}  response.Response{data=service.ExpenseResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req service.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, expense))
}

// @Summary      Update expense
// @Tags         expenses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                           true  "Expense ID"
// @Param        payload  body  service.UpdateExpenseRequest  true  "Expense payload"
// @Success      200  {object}  response.Response{data=service.ExpenseResponse}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req service.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, expense))
}

// @Summary      Delete expense
// @Tags         expenses
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Expense ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Expense deleted successfully"}))
}
