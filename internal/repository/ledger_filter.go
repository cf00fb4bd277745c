package repository

import (
	"fmt"
	"time"

	"accounting/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerListFilter narrows income and expense queries. Zero values mean "no filter".
type LedgerListFilter struct {
	UserID     *uuid.UUID
	CategoryID uint64
	Search     string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

// scope qualifies every column with table so it also works on joins
func (f LedgerListFilter) scope(table string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.UserID != nil {
			q = q.Where(table+".user_id = ?", *f.UserID)
		}
		if f.CategoryID != 0 {
			q = q.Where(table+".category_id = ?", f.CategoryID)
		}
		if f.Search != "" {
			q = q.Where(table+".description ILIKE ?", "%"+f.Search+"%")
		}
		if f.StartDate != nil {
			q = q.Where(table+".transaction_date >= ?", *f.StartDate)
		}
		if f.EndDate != nil {
			q = q.Where(table+".transaction_date <= ?", *f.EndDate)
		}
		return q
	}
}

func (f LedgerListFilter) offset() int {
	return (f.Page - 1) * f.Limit
}

func totalsByCategory(db *gorm.DB, table string, filter LedgerListFilter) ([]model.CategoryTotal, error) {
	var totals []model.CategoryTotal
	err := db.Table(table).
		Select(table + ".category_id, categories.name AS category_name, COUNT(*) AS count, COALESCE(SUM(" + table + ".amount), 0) AS total").
		Joins("JOIN categories ON categories.id = " + table + ".category_id").
		Scopes(filter.scope(table)).
		Group(table + ".category_id, categories.name").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to total %s by category: %w", table, err)
	}
	return totals, nil
}
