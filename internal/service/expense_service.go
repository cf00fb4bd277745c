package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"accounting/internal/logger"
	"accounting/internal/model"
	"accounting/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const EventExpenseBudgetExceeded = "expense.budget_exceeded"

var validRecurringPeriods = map[string]bool{
	model.RecurringDaily:   true,
	model.RecurringWeekly:  true,
	model.RecurringMonthly: true,
	model.RecurringYearly:  true,
}

// --- DTOs ---

type CreateExpenseRequest struct {
	Amount          decimal.Decimal  `json:"amount"`
	Description     string           `json:"description"`
	TransactionDate string           `json:"transaction_date"`
	ReferenceNumber string           `json:"reference_number"`
	PaymentMethod   string           `json:"payment_method"`
	Vendor          string           `json:"vendor"`
	Notes           string           `json:"notes"`
	IsRecurring     bool             `json:"is_recurring"`
	RecurringPeriod string           `json:"recurring_period"`
	BudgetLimit     *decimal.Decimal `json:"budget_limit"`
	CategoryID      uint64           `json:"category_id"`
}

type UpdateExpenseRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	Description     *string          `json:"description"`
	TransactionDate *string          `json:"transaction_date"`
	ReferenceNumber *string          `json:"reference_number"`
	PaymentMethod   *string          `json:"payment_method"`
	Vendor          *string          `json:"vendor"`
	Notes           *string          `json:"notes"`
	IsRecurring     *bool            `json:"is_recurring"`
	RecurringPeriod *string          `json:"recurring_period"`
	BudgetLimit     *decimal.Decimal `json:"budget_limit"`
	ClearBudget     bool             `json:"clear_budget_limit"`
	CategoryID      *uint64          `json:"category_id"`
}

// BudgetAlertResponse reports a month in which the owner spent past an expense's budget limit
type BudgetAlertResponse struct {
	ExpenseID    uint64 `json:"expense_id"`
	Category     string `json:"category"`
	Month        string `json:"month"`
	BudgetLimit  string `json:"budget_limit"`
	MonthlyTotal string `json:"monthly_total"`
	Exceeded     string `json:"exceeded"`
}

type ExpenseResponse struct {
	ID              uint64               `json:"id"`
	Amount          string               `json:"amount"`
	Description     string               `json:"description"`
	TransactionDate string               `json:"transaction_date"`
	ReferenceNumber string               `json:"reference_number"`
	PaymentMethod   string               `json:"payment_method"`
	Vendor          string               `json:"vendor"`
	Notes           string               `json:"notes"`
	IsRecurring     bool                 `json:"is_recurring"`
	RecurringPeriod string               `json:"recurring_period,omitempty"`
	BudgetLimit     *string              `json:"budget_limit"`
	CategoryID      uint64               `json:"category_id"`
	Category        *LedgerCategory      `json:"category,omitempty"`
	UserID          string               `json:"user_id"`
	BudgetAlert     *BudgetAlertResponse `json:"budget_alert,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// --- Interface ---

type ExpenseService interface {
	CreateExpense(ctx context.Context, actor Actor, req CreateExpenseRequest) (ExpenseResponse, error)
	UpdateExpense(ctx context.Context, actor Actor, id string, req UpdateExpenseRequest) (ExpenseResponse, error)
	DeleteExpense(ctx context.Context, actor Actor, id string) error
	GetExpense(ctx context.Context, id string) (ExpenseResponse, error)
	ListExpenses(ctx context.Context, filter LedgerFilter) ([]ExpenseResponse, int64, error)
	GetExpenseSummary(ctx context.Context, filter LedgerFilter) (LedgerSummaryResponse, error)
	GetBudgetAlerts(ctx context.Context, actor Actor) ([]BudgetAlertResponse, error)
}

// --- Implementation ---

type expenseService struct {
	expenseRepo  repository.ExpenseRepository
	categoryRepo repository.CategoryRepository
	audit        AuditService
	events       EventPublisher
	txManager    repository.TransactionManager
	now          func() time.Time
}

func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	categoryRepo repository.CategoryRepository,
	audit AuditService,
	events EventPublisher,
	txManager repository.TransactionManager,
) ExpenseService {
	return &expenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		audit:        audit,
		events:       events,
		txManager:    txManager,
		now:          time.Now,
	}
}

func expenseEntityID(id uint64) string {
	return "expense:" + strconv.FormatUint(id, 10)
}

func validateBudgetLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return NewValidationError("budget_limit", "must not be negative")
	}
	if !limit.Equal(limit.Round(2)) {
		return NewValidationError("budget_limit", "must have at most 2 decimal places")
	}
	return nil
}

// validateRecurrence requires a period exactly when the expense recurs
func validateRecurrence(recurring bool, period string) error {
	if !recurring {
		if period != "" {
			return NewValidationError("recurring_period", "only allowed on recurring expenses")
		}
		return nil
	}
	if !validRecurringPeriods[period] {
		return NewValidationError("recurring_period", "must be one of: daily, weekly, monthly, yearly")
	}
	return nil
}

func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

func (s *expenseService) find(ctx context.Context, id uint64) (*model.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("expense %d not found", id)
		}
		return nil, fmt.Errorf("failed to fetch expense: %w", err)
	}
	return expense, nil
}

// checkBudget compares the owner's spending in the expense's month against its budget limit
func (s *expenseService) checkBudget(ctx context.Context, expense *model.Expense) (*BudgetAlertResponse, error) {
	if expense.BudgetLimit == nil {
		return nil, nil
	}
	start, end := monthBounds(expense.TransactionDate)
	total, err := s.expenseRepo.SumForUser(ctx, expense.UserID, start, end)
	if err != nil {
		return nil, err
	}
	return budgetAlert(expense, start, total), nil
}

func budgetAlert(expense *model.Expense, month time.Time, total decimal.Decimal) *BudgetAlertResponse {
	if !total.GreaterThan(*expense.BudgetLimit) {
		return nil
	}
	alert := &BudgetAlertResponse{
		ExpenseID:    expense.ID,
		Month:        month.Format("2006-01"),
		BudgetLimit:  expense.BudgetLimit.StringFixed(2),
		MonthlyTotal: total.StringFixed(2),
		Exceeded:     total.Sub(*expense.BudgetLimit).StringFixed(2),
	}
	if expense.Category != nil {
		alert.Category = expense.Category.Name
	}
	return alert
}

func (s *expenseService) publishAlert(alert *BudgetAlertResponse) {
	if alert == nil {
		return
	}
	log := logger.WithComponent("expense")
	log.Warn().
		Uint64("expense_id", alert.ExpenseID).
		Str("month", alert.Month).
		Str("budget_limit", alert.BudgetLimit).
		Str("monthly_total", alert.MonthlyTotal).
		Msg("budget exceeded")
	if s.events != nil {
		s.events.Publish(EventExpenseBudgetExceeded, alert)
	}
}

func (s *expenseService) CreateExpense(ctx context.Context, actor Actor, req CreateExpenseRequest) (ExpenseResponse, error) {
	if err := validateAmount("amount", req.Amount); err != nil {
		return ExpenseResponse{}, err
	}
	desc, err := normalizeDescription(req.Description)
	if err != nil {
		return ExpenseResponse{}, err
	}
	txDate, err := parseTransactionDate(req.TransactionDate, s.now())
	if err != nil {
		return ExpenseResponse{}, err
	}
	method, err := normalizePaymentMethod(req.PaymentMethod)
	if err != nil {
		return ExpenseResponse{}, err
	}
	ref := strings.TrimSpace(req.ReferenceNumber)
	if err := validateMaxLen("reference_number", ref, maxReferenceLen); err != nil {
		return ExpenseResponse{}, err
	}
	vendor := strings.TrimSpace(req.Vendor)
	if err := validateMaxLen("vendor", vendor, maxVendorLen); err != nil {
		return ExpenseResponse{}, err
	}
	if err := validateRecurrence(req.IsRecurring, req.RecurringPeriod); err != nil {
		return ExpenseResponse{}, err
	}
	if req.BudgetLimit != nil {
		if err := validateBudgetLimit(*req.BudgetLimit); err != nil {
			return ExpenseResponse{}, err
		}
	}

	expense := &model.Expense{
		Amount:          req.Amount,
		Description:     desc,
		TransactionDate: txDate,
		ReferenceNumber: ref,
		PaymentMethod:   method,
		Vendor:          vendor,
		Notes:           req.Notes,
		IsRecurring:     req.IsRecurring,
		RecurringPeriod: req.RecurringPeriod,
		BudgetLimit:     req.BudgetLimit,
		CategoryID:      req.CategoryID,
		UserID:          actor.UserID,
	}

	var alert *BudgetAlertResponse
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		category, err := requireCategory(txCtx, s.categoryRepo, req.CategoryID, model.CategoryTypeExpense)
		if err != nil {
			return err
		}
		if err := s.expenseRepo.Create(txCtx, expense); err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}
		expense.Category = category
		if alert, err = s.checkBudget(txCtx, expense); err != nil {
			return err
		}
		return s.audit.Record(txCtx, &actor.UserID, model.ActionCreateExpense, expenseEntityID(expense.ID), desc, req)
	})
	if err != nil {
		return ExpenseResponse{}, err
	}

	s.publishAlert(alert)
	res := toExpenseResponse(expense)
	res.BudgetAlert = alert
	return res, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, actor Actor, id string, req UpdateExpenseRequest) (ExpenseResponse, error) {
	expenseID, err := parseEntryID("expense", id)
	if err != nil {
		return ExpenseResponse{}, err
	}

	var expense *model.Expense
	var alert *BudgetAlertResponse
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		expense, err = s.find(txCtx, expenseID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && expense.UserID != actor.UserID {
			return forbidden("you are not allowed to edit this expense")
		}
		if err := s.applyUpdate(txCtx, expense, req); err != nil {
			return err
		}
		if err := s.expenseRepo.Update(txCtx, expense); err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		if alert, err = s.checkBudget(txCtx, expense); err != nil {
			return err
		}
		return s.audit.Record(txCtx, &actor.UserID, model.ActionUpdateExpense, expenseEntityID(expenseID), expense.Description, req)
	})
	if err != nil {
		return ExpenseResponse{}, err
	}

	s.publishAlert(alert)
	res := toExpenseResponse(expense)
	res.BudgetAlert = alert
	return res, nil
}

func (s *expenseService) applyUpdate(ctx context.Context, expense *model.Expense, req UpdateExpenseRequest) error {
	if req.Amount != nil {
		if err := validateAmount("amount", *req.Amount); err != nil {
			return err
		}
		expense.Amount = *req.Amount
	}
	if req.Description != nil {
		desc, err := normalizeDescription(*req.Description)
		if err != nil {
			return err
		}
		expense.Description = desc
	}
	if req.TransactionDate != nil {
		d, err := time.Parse(dateLayout, *req.TransactionDate)
		if err != nil {
			return NewValidationError("transaction_date", "must be YYYY-MM-DD")
		}
		expense.TransactionDate = d
	}
	if req.ReferenceNumber != nil {
		ref := strings.TrimSpace(*req.ReferenceNumber)
		if err := validateMaxLen("reference_number", ref, maxReferenceLen); err != nil {
			return err
		}
		expense.ReferenceNumber = ref
	}
	if req.PaymentMethod != nil {
		method, err := normalizePaymentMethod(*req.PaymentMethod)
		if err != nil {
			return err
		}
		expense.PaymentMethod = method
	}
	if req.Vendor != nil {
		vendor := strings.TrimSpace(*req.Vendor)
		if err := validateMaxLen("vendor", vendor, maxVendorLen); err != nil {
			return err
		}
		expense.Vendor = vendor
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
	}
	if req.IsRecurring != nil {
		expense.IsRecurring = *req.IsRecurring
		if !expense.IsRecurring && req.RecurringPeriod == nil {
			expense.RecurringPeriod = ""
		}
	}
	if req.RecurringPeriod != nil {
		expense.RecurringPeriod = *req.RecurringPeriod
	}
	if err := validateRecurrence(expense.IsRecurring, expense.RecurringPeriod); err != nil {
		return err
	}
	switch {
	case req.ClearBudget:
		expense.BudgetLimit = nil
	case req.BudgetLimit != nil:
		if err := validateBudgetLimit(*req.BudgetLimit); err != nil {
			return err
		}
		expense.BudgetLimit = req.BudgetLimit
	}
	if req.CategoryID != nil && *req.CategoryID != expense.CategoryID {
		category, err := requireCategory(ctx, s.categoryRepo, *req.CategoryID, model.CategoryTypeExpense)
		if err != nil {
			return err
		}
		expense.CategoryID = category.ID
		expense.Category = category
	}
	return nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, actor Actor, id string) error {
	expenseID, err := parseEntryID("expense", id)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		expense, err := s.find(txCtx, expenseID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && expense.UserID != actor.UserID {
			return forbidden("you are not allowed to delete this expense")
		}
		if err := s.expenseRepo.Delete(txCtx, expenseID); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		return s.audit.Record(txCtx, &actor.UserID, model.ActionDeleteExpense, expenseEntityID(expenseID), expense.Description,
			map[string]string{"amount": expense.Amount.StringFixed(2)})
	})
}

func (s *expenseService) GetExpense(ctx context.Context, id string) (ExpenseResponse, error) {
	expenseID, err := parseEntryID("expense", id)
	if err != nil {
		return ExpenseResponse{}, err
	}
	expense, err := s.find(ctx, expenseID)
	if err != nil {
		return ExpenseResponse{}, err
	}
	return toExpenseResponse(expense), nil
}

func (s *expenseService) ListExpenses(ctx context.Context, filter LedgerFilter) ([]ExpenseResponse, int64, error) {
	repoFilter, err := filter.toListFilter()
	if err != nil {
		return nil, 0, err
	}

	expenses, total, err := s.expenseRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	res := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		res = append(res, toExpenseResponse(&expenses[i]))
	}
	return res, total, nil
}

func (s *expenseService) GetExpenseSummary(ctx context.Context, filter LedgerFilter) (LedgerSummaryResponse, error) {
	repoFilter, err := filter.toListFilter()
	if err != nil {
		return LedgerSummaryResponse{}, err
	}

	totals, err := s.expenseRepo.TotalsByCategory(ctx, repoFilter)
	if err != nil {
		return LedgerSummaryResponse{}, err
	}
	return toLedgerSummary(repoFilter, totals), nil
}

// GetBudgetAlerts checks the actor's budgeted expenses against what they spent this month
func (s *expenseService) GetBudgetAlerts(ctx context.Context, actor Actor) ([]BudgetAlertResponse, error) {
	budgeted, err := s.expenseRepo.ListBudgeted(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	alerts := make([]BudgetAlertResponse, 0)
	if len(budgeted) == 0 {
		return alerts, nil
	}

	start, end := monthBounds(s.now())
	total, err := s.expenseRepo.SumForUser(ctx, actor.UserID, start, end)
	if err != nil {
		return nil, err
	}
	for i := range budgeted {
		if alert := budgetAlert(&budgeted[i], start, total); alert != nil {
			alerts = append(alerts, *alert)
		}
	}
	return alerts, nil
}

func toExpenseResponse(e *model.Expense) ExpenseResponse {
	res := ExpenseResponse{
		ID:              e.ID,
		Amount:          e.Amount.StringFixed(2),
		Description:     e.Description,
		TransactionDate: e.TransactionDate.Format(dateLayout),
		ReferenceNumber: e.ReferenceNumber,
		PaymentMethod:   e.PaymentMethod,
		Vendor:          e.Vendor,
		Notes:           e.Notes,
		IsRecurring:     e.IsRecurring,
		RecurringPeriod: e.RecurringPeriod,
		CategoryID:      e.CategoryID,
		Category:        toLedgerCategory(e.Category),
		UserID:          e.UserID.String(),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
	if e.BudgetLimit != nil {
		limit := e.BudgetLimit.StringFixed(2)
		res.BudgetLimit = &limit
	}
	return res
}
