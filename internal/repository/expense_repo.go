package repository

import (
	"context"
	"fmt"
	"time"

	"accounting/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	Update(ctx context.Context, expense *model.Expense) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*model.Expense, error)
	List(ctx context.Context, filter LedgerListFilter) ([]model.Expense, int64, error)
	TotalsByCategory(ctx context.Context, filter LedgerListFilter) ([]model.CategoryTotal, error)
	SumForUser(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
	ListBudgeted(ctx context.Context, userID uuid.UUID) ([]model.Expense, error)
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Create(expense).Error
}

func (r *expenseRepository) Update(ctx context.Context, expense *model.Expense) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uint64) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Expense{}).Error
}

func (r *expenseRepository) FindByID(ctx context.Context, id uint64) (*model.Expense, error) {
	var expense model.Expense
	if err := GetDB(ctx, r.db).Preload("Category").First(&expense, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) List(ctx context.Context, filter LedgerListFilter) ([]model.Expense, int64, error) {
	var expenses []model.Expense
	var total int64

	db := GetDB(ctx, r.db)
	scope := filter.scope("expenses")

	if err := db.Model(&model.Expense{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Scopes(scope).Preload("Category").
		Order("transaction_date DESC").Order("id DESC").
		Offset(filter.offset()).Limit(filter.Limit).
		Find(&expenses).Error; err != nil {
		return nil, 0, err
	}

	return expenses, total, nil
}

func (r *expenseRepository) TotalsByCategory(ctx context.Context, filter LedgerListFilter) ([]model.CategoryTotal, error) {
	return totalsByCategory(GetDB(ctx, r.db), "expenses", filter)
}

// SumForUser totals what userID spent with transaction_date in [start, end]
func (r *expenseRepository) SumForUser(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := GetDB(ctx, r.db).Model(&model.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND transaction_date >= ? AND transaction_date <= ?", userID, start, end).
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}

// ListBudgeted returns userID's expenses that carry a budget limit
func (r *expenseRepository) ListBudgeted(ctx context.Context, userID uuid.UUID) ([]model.Expense, error) {
	var expenses []model.Expense
	err := GetDB(ctx, r.db).Preload("Category").
		Where("user_id = ? AND budget_limit IS NOT NULL", userID).
		Order("transaction_date DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list budgeted expenses: %w", err)
	}
	return expenses, nil
}
