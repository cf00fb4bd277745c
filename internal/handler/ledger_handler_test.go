package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"accounting/internal/model"
	"accounting/internal/service"
	"accounting/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryService struct {
	lastActor  service.Actor
	lastID     string
	lastFilter service.CategoryFilter
	lastCreate service.CreateCategoryRequest
	err        error
}

func (f *fakeCategoryService) ListCategories(ctx context.Context, filter service.CategoryFilter) ([]service.CategoryResponse, error) {
	f.lastFilter = filter
	return []service.CategoryResponse{{ID: 1, Name: "ค่าเช่า"}}, f.err
}

func (f *fakeCategoryService) GetCategory(ctx context.Context, id string) (service.CategoryResponse, error) {
	f.lastID = id
	return service.CategoryResponse{}, f.err
}

func (f *fakeCategoryService) CreateCategory(ctx context.Context, actor service.Actor, req service.CreateCategoryRequest) (service.CategoryResponse, error) {
	f.lastActor, f.lastCreate = actor, req
	return service.CategoryResponse{ID: 11, Name: req.Name, Type: req.Type}, f.err
}

func (f *fakeCategoryService) UpdateCategory(ctx context.Context, actor service.Actor, id string, req service.UpdateCategoryRequest) (service.CategoryResponse, error) {
	f.lastActor, f.lastID = actor, id
	return service.CategoryResponse{}, f.err
}

func (f *fakeCategoryService) DeleteCategory(ctx context.Context, actor service.Actor, id string) error {
	f.lastActor, f.lastID = actor, id
	return f.err
}

func (f *fakeCategoryService) RestoreCategory(ctx context.Context, actor service.Actor, id string) (service.CategoryResponse, error) {
	f.lastActor, f.lastID = actor, id
	return service.CategoryResponse{IsActive: true}, f.err
}

type fakeIncomeService struct {
	lastActor  service.Actor
	lastID     string
	lastFilter service.LedgerFilter
	lastCreate service.CreateIncomeRequest
	err        error
}

func (f *fakeIncomeService) CreateIncome(ctx context.Context, actor service.Actor, req service.CreateIncomeRequest) (service.IncomeResponse, error) {
	f.lastActor, f.lastCreate = actor, req
	return service.IncomeResponse{ID: 5, Amount: req.Amount.StringFixed(2)}, f.err
}

func (f *fakeIncomeService) UpdateIncome(ctx context.Context, actor service.Actor, id string, req service.UpdateIncomeRequest) (service.IncomeResponse, error) {
	f.lastActor, f.lastID = actor, id
	return service.IncomeResponse{}, f.err
}

func (f *fakeIncomeService) DeleteIncome(ctx context.Context, actor service.Actor, id string) error {
	f.lastActor, f.lastID = actor, id
	return f.err
}

func (f *fakeIncomeService) GetIncome(ctx context.Context, id string) (service.IncomeResponse, error) {
	f.lastID = id
	return service.IncomeResponse{}, f.err
}

func (f *fakeIncomeService) ListIncomes(ctx context.Context, filter service.LedgerFilter) ([]service.IncomeResponse, int64, error) {
	f.lastFilter = filter
	return []service.IncomeResponse{{ID: 2}, {ID: 1}}, 23, f.err
}

func (f *fakeIncomeService) GetIncomeSummary(ctx context.Context, filter service.LedgerFilter) (service.LedgerSummaryResponse, error) {
	f.lastFilter = filter
	return service.LedgerSummaryResponse{Total: "307.35", Count: 3}, f.err
}

type fakeExpenseService struct {
	lastActor  service.Actor
	lastID     string
	lastFilter service.LedgerFilter
	lastCreate service.CreateExpenseRequest
	err        error
}

func (f *fakeExpenseService) CreateExpense(ctx context.Context, actor service.Actor, req service.CreateExpenseRequest) (service.ExpenseResponse, error) {
	f.lastActor, f.lastCreate = actor, req
	return service.ExpenseResponse{ID: 9}, f.err
}

func (f *fakeExpenseService) UpdateExpense(ctx context.Context, actor service.Actor, id string, req service.UpdateExpenseRequest) (service.ExpenseResponse, error) {
	f.lastActor, f.lastID = actor, id
	return service.ExpenseResponse{}, f.err
}

func (f *fakeExpenseService) DeleteExpense(ctx context.Context, actor service.Actor, id string) error {
	f.lastActor, f.lastID = actor, id
	return f.err
}

func (f *fakeExpenseService) GetExpense(ctx context.Context, id string) (service.ExpenseResponse, error) {
	f.lastID = id
	return service.ExpenseResponse{}, f.err
}

func (f *fakeExpenseService) ListExpenses(ctx context.Context, filter service.LedgerFilter) ([]service.ExpenseResponse, int64, error) {
	f.lastFilter = filter
	return []service.ExpenseResponse{{ID: 3}}, 1, f.err
}

func (f *fakeExpenseService) GetExpenseSummary(ctx context.Context, filter service.LedgerFilter) (service.LedgerSummaryResponse, error) {
	f.lastFilter = filter
	return service.LedgerSummaryResponse{}, f.err
}

func (f *fakeExpenseService) GetBudgetAlerts(ctx context.Context, actor service.Actor) ([]service.BudgetAlertResponse, error) {
	f.lastActor = actor
	return []service.BudgetAlertResponse{{ExpenseID: 9, Month: "2025-03", Exceeded: "50.50"}}, f.err
}

func newLedgerRouter(categories service.CategoryService, incomes service.IncomeService, expenses service.ExpenseService) *gin.Engine {
	r := gin.New()
	root := r.Group("")
	NewCategoryHandler(categories).RegisterRoutes(root)
	NewIncomeHandler(incomes).RegisterRoutes(root)
	NewExpenseHandler(expenses).RegisterRoutes(root)
	return r
}

func TestCategoryHandler_Routes(t *testing.T) {
	svc := &fakeCategoryService{}
	r := newLedgerRouter(svc, &fakeIncomeService{}, &fakeExpenseService{})
	userID := uuid.New()

	w, _ := do(t, r, http.MethodGet, "/api/categories?type=expense", signToken(t, userID, model.RoleViewer), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, service.CategoryFilter{Type: "expense"}, svc.lastFilter)

	w, _ = do(t, r, http.MethodGet, "/api/categories?active_only=false", signToken(t, userID, model.RoleViewer), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.lastFilter.IncludeInactive)

	w, env := do(t, r, http.MethodPost, "/api/categories", signToken(t, userID, model.RoleAccountant),
		map[string]string{"name": "ค่าการตลาด", "type": "expense"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created service.CategoryResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.EqualValues(t, 11, created.ID)
	assert.Equal(t, userID, svc.lastActor.UserID)

	w, _ = do(t, r, http.MethodPost, "/api/categories", signToken(t, userID, model.RoleAccountant), map[string]string{"type": "expense"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/categories/4", signToken(t, userID, model.RoleAccountant), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4", svc.lastID)
}

func TestCategoryHandler_RoleChecks(t *testing.T) {
	r := newLedgerRouter(&fakeCategoryService{}, &fakeIncomeService{}, &fakeExpenseService{})

	w, _ := do(t, r, http.MethodPost, "/api/categories", signToken(t, uuid.New(), model.RoleViewer), map[string]string{"name": "x", "type": "income"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, r, http.MethodPatch, "/api/categories/4/restore", signToken(t, uuid.New(), model.RoleAccountant), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, r, http.MethodPatch, "/api/categories/4/restore", signToken(t, uuid.New(), model.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryHandler_DeleteConflict(t *testing.T) {
	r := newLedgerRouter(&fakeCategoryService{err: service.ErrStateConflict}, &fakeIncomeService{}, &fakeExpenseService{})

	w, env := do(t, r, http.MethodDelete, "/api/categories/4", signToken(t, uuid.New(), model.RoleAdmin), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", env.Status)
}

func TestIncomeHandler_ListPassesFilters(t *testing.T) {
	svc := &fakeIncomeService{}
	r := newLedgerRouter(&fakeCategoryService{}, svc, &fakeExpenseService{})

	w, env := do(t, r, http.MethodGet,
		"/api/incomes?category_id=3&search=consult&start_date=2025-03-01&end_date=2025-03-31&page=3",
		signToken(t, uuid.New(), model.RoleViewer), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, service.LedgerFilter{
		CategoryID: "3",
		Search:     "consult",
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-31",
		Page:       3,
		Limit:      pagination.DefaultLimit,
	}, svc.lastFilter)

	var page struct {
		Items      []service.IncomeResponse `json:"items"`
		Pagination pagination.Meta          `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Items, 2)
	assert.Equal(t, pagination.Meta{CurrentPage: 3, TotalPages: 3, TotalItems: 23, ItemsPerPage: 10}, page.Pagination)
}

func TestIncomeHandler_CreateAndSummary(t *testing.T) {
	svc := &fakeIncomeService{}
	r := newLedgerRouter(&fakeCategoryService{}, svc, &fakeExpenseService{})
	userID := uuid.New()

	w, env := do(t, r, http.MethodPost, "/api/incomes", signToken(t, userID, model.RoleAccountant), map[string]interface{}{
		"amount":           "1500.50",
		"description":      "ค่าที่ปรึกษา",
		"transaction_date": "2025-03-14",
		"category_id":      2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "1500.5", svc.lastCreate.Amount.String())
	assert.EqualValues(t, 2, svc.lastCreate.CategoryID)
	assert.Equal(t, userID, svc.lastActor.UserID)

	var created service.IncomeResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "1500.50", created.Amount)

	w, env = do(t, r, http.MethodGet, "/api/incomes/summary?start_date=2025-03-01", signToken(t, userID, model.RoleViewer), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2025-03-01", svc.lastFilter.StartDate)
	var summary service.LedgerSummaryResponse
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, "307.35", summary.Total)

	w, _ = do(t, r, http.MethodPost, "/api/incomes", signToken(t, userID, model.RoleViewer), map[string]interface{}{})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestIncomeHandler_ErrorMapping(t *testing.T) {
	r := newLedgerRouter(&fakeCategoryService{}, &fakeIncomeService{err: service.ErrForbidden}, &fakeExpenseService{})

	w, _ := do(t, r, http.MethodDelete, "/api/incomes/8", signToken(t, uuid.New(), model.RoleAccountant), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = newLedgerRouter(&fakeCategoryService{}, &fakeIncomeService{err: service.NewValidationError("end_date", "must not be before start_date")}, &fakeExpenseService{})
	w, env := do(t, r, http.MethodGet, "/api/incomes?start_date=2025-03-31&end_date=2025-03-01", signToken(t, uuid.New(), model.RoleViewer), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "end_date: must not be before start_date", env.Error)
}

func TestExpenseHandler_BudgetAlertsRoute(t *testing.T) {
	svc := &fakeExpenseService{}
	r := newLedgerRouter(&fakeCategoryService{}, &fakeIncomeService{}, svc)
	userID := uuid.New()

	w, env := do(t, r, http.MethodGet, "/api/expenses/budget-alerts", signToken(t, userID, model.RoleViewer), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, userID, svc.lastActor.UserID)
	assert.Empty(t, svc.lastID, "budget-alerts must not be routed as an id")

	var alerts []service.BudgetAlertResponse
	require.NoError(t, json.Unmarshal(env.Data, &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "50.50", alerts[0].Exceeded)
}

func TestExpenseHandler_CreateBindsRecurrence(t *testing.T) {
	svc := &fakeExpenseService{}
	r := newLedgerRouter(&fakeCategoryService{}, &fakeIncomeService{}, svc)

	w, _ := do(t, r, http.MethodPost, "/api/expenses", signToken(t, uuid.New(), model.RoleAdmin), map[string]interface{}{
		"amount":           "12000",
		"description":      "ค่าเช่าสำนักงาน",
		"category_id":      6,
		"is_recurring":     true,
		"recurring_period": "monthly",
		"budget_limit":     "15000.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, svc.lastCreate.IsRecurring)
	assert.Equal(t, model.RecurringMonthly, svc.lastCreate.RecurringPeriod)
	require.NotNil(t, svc.lastCreate.BudgetLimit)
	assert.Equal(t, "15000", svc.lastCreate.BudgetLimit.String())

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/expenses/17"},
		{http.MethodDelete, "/api/expenses/17"},
	} {
		w, _ := do(t, r, tc.method, tc.path, signToken(t, uuid.New(), model.RoleAdmin), nil)
		assert.Equal(t, http.StatusOK, w.Code, tc.path)
		assert.Equal(t, "17", svc.lastID, tc.path)
	}
}
