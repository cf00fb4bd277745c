package repository

import (
	"context"

	"accounting/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IncomeRepository interface {
	Create(ctx context.Context, income *model.Income) error
	Update(ctx context.Context, income *model.Income) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*model.Income, error)
	List(ctx context.Context, filter LedgerListFilter) ([]model.Income, int64, error)
	TotalsByCategory(ctx context.Context, filter LedgerListFilter) ([]model.CategoryTotal, error)
}

type incomeRepository struct {
	db *gorm.DB
}

func NewIncomeRepository(db *gorm.DB) IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) Create(ctx context.Context, income *model.Income) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Create(income).Error
}

func (r *incomeRepository) Update(ctx context.Context, income *model.Income) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(income).Error
}

func (r *incomeRepository) Delete(ctx context.Context, id uint64) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Income{}).Error
}

func (r *incomeRepository) FindByID(ctx context.Context, id uint64) (*model.Income, error) {
	var income model.Income
	if err := GetDB(ctx, r.db).Preload("Category").First(&income, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &income, nil
}

func (r *incomeRepository) List(ctx context.Context, filter LedgerListFilter) ([]model.Income, int64, error) {
	var incomes []model.Income
	var total int64

	db := GetDB(ctx, r.db)
	scope := filter.scope("incomes")

	if err := db.Model(&model.Income{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Scopes(scope).Preload("Category").
		Order("transaction_date DESC").Order("id DESC").
		Offset(filter.offset()).Limit(filter.Limit).
		Find(&incomes).Error; err != nil {
		return nil, 0, err
	}

	return incomes, total, nil
}

func (r *incomeRepository) TotalsByCategory(ctx context.Context, filter LedgerListFilter) ([]model.CategoryTotal, error) {
	return totalsByCategory(GetDB(ctx, r.db), "incomes", filter)
}
