package repository

import (
	"context"

	"accounting/internal/model"

	"gorm.io/gorm"
)

// CategoryListFilter narrows List. Zero values mean "no filter".
type CategoryListFilter struct {
	Type       string
	ActiveOnly bool
}

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id uint64) (*model.Category, error)
	FindActiveByName(ctx context.Context, name, categoryType string) (*model.Category, error)
	List(ctx context.Context, filter CategoryListFilter) ([]model.Category, error)
	CountTransactions(ctx context.Context, category *model.Category) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return GetDB(ctx, r.db).Save(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint64) (*model.Category, error) {
	var category model.Category
	if err := GetDB(ctx, r.db).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindActiveByName(ctx context.Context, name, categoryType string) (*model.Category, error) {
	var category model.Category
	err := GetDB(ctx, r.db).
		Where("name = ? AND type = ? AND is_active = ?", name, categoryType, true).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// List puts defaults first, then groups by type and name
func (r *categoryRepository) List(ctx context.Context, filter CategoryListFilter) ([]model.Category, error) {
	var categories []model.Category
	q := GetDB(ctx, r.db).Model(&model.Category{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("is_default DESC").Order("type ASC").Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CountTransactions counts the income or expense entries filed under category
func (r *categoryRepository) CountTransactions(ctx context.Context, category *model.Category) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).Table(category.TransactionTable()).
		Where("category_id = ?", category.ID).
		Count(&n).Error
	return n, err
}
