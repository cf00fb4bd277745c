package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"accounting/internal/model"
	"accounting/internal/repository"

	"gorm.io/gorm"
)

// --- DTOs ---

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// UpdateCategoryRequest changes the fields that were sent. The type is fixed
// once entries may have been filed under the category.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
}

type CategoryFilter struct {
	Type            string
	IncludeInactive bool
}

type CategoryResponse struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Description      string    `json:"description"`
	Color            string    `json:"color"`
	Icon             string    `json:"icon"`
	IsDefault        bool      `json:"is_default"`
	IsActive         bool      `json:"is_active"`
	CreatedBy        string    `json:"created_by,omitempty"`
	TransactionCount *int64    `json:"transaction_count,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// --- Interface ---

type CategoryService interface {
	ListCategories(ctx context.Context, filter CategoryFilter) ([]CategoryResponse, error)
	GetCategory(ctx context.Context, id string) (CategoryResponse, error)
	CreateCategory(ctx context.Context, actor Actor, req CreateCategoryRequest) (CategoryResponse, error)
	UpdateCategory(ctx context.Context, actor Actor, id string, req UpdateCategoryRequest) (CategoryResponse, error)
	DeleteCategory(ctx context.Context, actor Actor, id string) error
	RestoreCategory(ctx context.Context, actor Actor, id string) (CategoryResponse, error)
}

// --- Implementation ---

type categoryService struct {
	repo      repository.CategoryRepository
	audit     AuditService
	txManager repository.TransactionManager
}

func NewCategoryService(repo repository.CategoryRepository, audit AuditService, txManager repository.TransactionManager) CategoryService {
	return &categoryService{repo: repo, audit: audit, txManager: txManager}
}

const maxCategoryNameLen = 100

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func validateCategoryType(t string) error {
	if t != model.CategoryTypeIncome && t != model.CategoryTypeExpense {
		return NewValidationError("type", "must be one of: income, expense")
	}
	return nil
}

func normalizeCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewValidationError("name", "is required")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return "", NewValidationError("name", fmt.Sprintf("must be at most %d characters", maxCategoryNameLen))
	}
	return name, nil
}

func validateColor(color string) error {
	if !colorPattern.MatchString(color) {
		return NewValidationError("color", "must be a hex color like #6B7280")
	}
	return nil
}

func parseCategoryID(id string) (uint64, error) {
	categoryID, err := strconv.ParseUint(id, 10, 64)
	if err != nil || categoryID == 0 {
		return 0, NewValidationError("id", "invalid category id")
	}
	return categoryID, nil
}

func categoryEntityID(id uint64) string {
	return "category:" + strconv.FormatUint(id, 10)
}

// canManage allows admins everywhere and creators on their own non-default categories
func canManage(actor Actor, c *model.Category) bool {
	if actor.IsAdmin() {
		return true
	}
	return !c.IsDefault && c.CreatedBy != nil && *c.CreatedBy == actor.UserID
}

func (s *categoryService) find(ctx context.Context, id uint64) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("category %d not found", id)
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	return category, nil
}

// ensureNameFree rejects a name already used by another active category of the same type
func (s *categoryService) ensureNameFree(ctx context.Context, name, categoryType string, selfID uint64) error {
	existing, err := s.repo.FindActiveByName(ctx, name, categoryType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if existing.ID == selfID {
		return nil
	}
	return conflict("an active %s category named %q already exists", categoryType, name)
}

func (s *categoryService) ListCategories(ctx context.Context, filter CategoryFilter) ([]CategoryResponse, error) {
	if filter.Type != "" {
		if err := validateCategoryType(filter.Type); err != nil {
			return nil, err
		}
	}

	categories, err := s.repo.List(ctx, repository.CategoryListFilter{
		Type:       filter.Type,
		ActiveOnly: !filter.IncludeInactive,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	res := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		res = append(res, toCategoryResponse(&categories[i]))
	}
	return res, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id string) (CategoryResponse, error) {
	categoryID, err := parseCategoryID(id)
	if err != nil {
		return CategoryResponse{}, err
	}
	category, err := s.find(ctx, categoryID)
	if err != nil {
		return CategoryResponse{}, err
	}

	count, err := s.repo.CountTransactions(ctx, category)
	if err != nil {
		return CategoryResponse{}, fmt.Errorf("failed to count transactions: %w", err)
	}

	res := toCategoryResponse(category)
	res.TransactionCount = &count
	return res, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, actor Actor, req CreateCategoryRequest) (CategoryResponse, error) {
	name, err := normalizeCategoryName(req.Name)
	if err != nil {
		return CategoryResponse{}, err
	}
	if err := validateCategoryType(req.Type); err != nil {
		return CategoryResponse{}, err
	}
	if req.Color == "" {
		req.Color = model.DefaultCategoryColor
	}
	if err := validateColor(req.Color); err != nil {
		return CategoryResponse{}, err
	}
	if req.Icon == "" {
		req.Icon = model.DefaultCategoryIcon
	}

	creator := actor.UserID
	category := &model.Category{
		Name:        name,
		Type:        req.Type,
		Description: strings.TrimSpace(req.Description),
		Color:       req.Color,
		Icon:        req.Icon,
		IsActive:    true,
		CreatedBy:   &creator,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ensureNameFree(txCtx, name, req.Type, 0); err != nil {
			return err
		}
		if err := s.repo.Create(txCtx, category); err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		return s.audit.Record(txCtx, &actor.UserID, model.ActionCreateCategory, categoryEntityID(category.ID), category.Name, req)
	})
	if err != nil {
		return CategoryResponse{}, err
	}

	return toCategoryResponse(category), nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, actor Actor, id string, req UpdateCategoryRequest) (CategoryResponse, error) {
	categoryID, err := parseCategoryID(id)
	if err != nil {
		return CategoryResponse{}, err
	}
	category, err := s.find(ctx, categoryID)
	if err != nil {
		return CategoryResponse{}, err
	}
	if !canManage(actor, category) {
		if category.IsDefault {
			return CategoryResponse{}, forbidden("only an admin can edit a default category")
		}
		return CategoryResponse{}, forbidden("you are not allowed to edit this category")
	}

	if req.Name != nil {
		name, err := normalizeCategoryName(*req.Name)
		if err != nil {
			return CategoryResponse{}, err
		}
		category.Name = name
	}
	if req.Color != nil {
		if err := validateColor(*req.Color); err != nil {
			return CategoryResponse{}, err
		}
		category.Color = *req.Color
	}
	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
	}
	if req.Icon != nil && *req.Icon != "" {
		category.Icon = *req.Icon
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if category.IsActive {
			if err := s.ensureNameFree(txCtx, category.Name, category.Type, category.ID); err != nil {
				return err
			}
		}
		if err := s.repo.Update(txCtx, category); err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		return s.audit.Record(txCtx, &actor.UserID, model.ActionUpdateCategory, categoryEntityID(category.ID), category.Name, req)
	})
	if err != nil {
		return CategoryResponse{}, err
	}

	return toCategoryResponse(category), nil
}

// DeleteCategory deactivates the category. Defaults and categories that still
// have entries filed under them stay.
func (s *categoryService) DeleteCategory(ctx context.Context, actor Actor, id string) error {
	categoryID, err := parseCategoryID(id)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		category, err := s.find(txCtx, categoryID)
		if err != nil {
			return err
		}
		if category.IsDefault {
			return forbidden("default categories cannot be deleted")
		}
		if !canManage(actor, category) {
			return forbidden("you are not allowed to delete this category")
		}
		if !category.IsActive {
			return conflict("category %d is already inactive", categoryID)
		}

		count, err := s.repo.CountTransactions(txCtx, category)
		if err != nil {
			return fmt.Errorf("failed to count transactions: %w", err)
		}
		if count > 0 {
			return conflict("category %d still has %d transactions", categoryID, count)
		}

		category.IsActive = false
		if err := s.repo.Update(txCtx, category); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return s.audit.Record(txCtx, &actor.UserID, model.ActionDeleteCategory, categoryEntityID(categoryID), category.Name, nil)
	})
}

// RestoreCategory reactivates a deleted category when its name is still free
func (s *categoryService) RestoreCategory(ctx context.Context, actor Actor, id string) (CategoryResponse, error) {
	if !actor.IsAdmin() {
		return CategoryResponse{}, forbidden("only an admin can restore a category")
	}
	categoryID, err := parseCategoryID(id)
	if err != nil {
		return CategoryResponse{}, err
	}

	var category *model.Category
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		category, err = s.find(txCtx, categoryID)
		if err != nil {
			return err
		}
		if category.IsActive {
			return conflict("category %d is already active", categoryID)
		}
		if err := s.ensureNameFree(txCtx, category.Name, category.Type, category.ID); err != nil {
			return err
		}

		category.IsActive = true
		if err := s.repo.Update(txCtx, category); err != nil {
			return fmt.Errorf("failed to restore category: %w", err)
		}
		return s.audit.Record(txCtx, &actor.UserID, model.ActionRestoreCategory, categoryEntityID(categoryID), category.Name, nil)
	})
	if err != nil {
		return CategoryResponse{}, err
	}

	return toCategoryResponse(category), nil
}

func toCategoryResponse(c *model.Category) CategoryResponse {
	res := CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Type:        c.Type,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		IsDefault:   c.IsDefault,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.CreatedBy != nil {
		res.CreatedBy = c.CreatedBy.String()
	}
	return res
}
