package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"accounting/internal/model"
	"accounting/internal/repository"
	"accounting/pkg/pagination"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	maxDescriptionLen = 255
	maxReferenceLen   = 50
	maxVendorLen      = 100
)

var validPaymentMethods = map[string]bool{
	model.PaymentMethodCash:         true,
	model.PaymentMethodBankTransfer: true,
	model.PaymentMethodCheck:        true,
	model.PaymentMethodCreditCard:   true,
	model.PaymentMethodOther:        true,
}

// LedgerFilter is the query side of income and expense listings.
// Dates are YYYY-MM-DD and either bound may be left open.
type LedgerFilter struct {
	CategoryID string
	Search     string
	StartDate  string
	EndDate    string
	Page       int
	Limit      int
}

type LedgerCategory struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type CategoryTotalResponse struct {
	CategoryID   uint64 `json:"category_id"`
	CategoryName string `json:"category_name"`
	Count        int64  `json:"count"`
	Total        string `json:"total"`
}

// LedgerSummaryResponse totals incomes or expenses over a period
type LedgerSummaryResponse struct {
	StartDate  *string                 `json:"start_date,omitempty"`
	EndDate    *string                 `json:"end_date,omitempty"`
	Total      string                  `json:"total"`
	Count      int64                   `json:"count"`
	ByCategory []CategoryTotalResponse `json:"by_category"`
}

// validateAmount accepts positive values that fit the two-decimal column
func validateAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return NewValidationError(field, "must be greater than 0")
	}
	if !amount.Equal(amount.Round(2)) {
		return NewValidationError(field, "must have at most 2 decimal places")
	}
	return nil
}

func normalizeDescription(desc string) (string, error) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return "", NewValidationError("description", "is required")
	}
	if utf8.RuneCountInString(desc) > maxDescriptionLen {
		return "", NewValidationError("description", fmt.Sprintf("must be at most %d characters", maxDescriptionLen))
	}
	return desc, nil
}

func validateMaxLen(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return NewValidationError(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return nil
}

// normalizePaymentMethod defaults to cash
func normalizePaymentMethod(method string) (string, error) {
	if method == "" {
		return model.PaymentMethodCash, nil
	}
	if !validPaymentMethods[method] {
		return "", NewValidationError("payment_method", "must be one of: cash, bank_transfer, check, credit_card, other")
	}
	return method, nil
}

// parseTransactionDate defaults to today
func parseTransactionDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, NewValidationError("transaction_date", "must be YYYY-MM-DD")
	}
	return d, nil
}

func parseEntryID(kind, id string) (uint64, error) {
	entryID, err := strconv.ParseUint(id, 10, 64)
	if err != nil || entryID == 0 {
		return 0, NewValidationError("id", "invalid "+kind+" id")
	}
	return entryID, nil
}

// toListFilter validates the query and clamps pagination
func (f LedgerFilter) toListFilter() (repository.LedgerListFilter, error) {
	p := pagination.New(f.Page, f.Limit)
	out := repository.LedgerListFilter{
		Search: strings.TrimSpace(f.Search),
		Page:   p.Page,
		Limit:  p.Limit,
	}
	if f.CategoryID != "" {
		id, err := strconv.ParseUint(f.CategoryID, 10, 64)
		if err != nil || id == 0 {
			return out, NewValidationError("category_id", "invalid category id")
		}
		out.CategoryID = id
	}
	if f.StartDate != "" {
		d, err := time.Parse(dateLayout, f.StartDate)
		if err != nil {
			return out, NewValidationError("start_date", "must be YYYY-MM-DD")
		}
		out.StartDate = &d
	}
	if f.EndDate != "" {
		d, err := time.Parse(dateLayout, f.EndDate)
		if err != nil {
			return out, NewValidationError("end_date", "must be YYYY-MM-DD")
		}
		out.EndDate = &d
	}
	if out.StartDate != nil && out.EndDate != nil && out.EndDate.Before(*out.StartDate) {
		return out, NewValidationError("end_date", "must not be before start_date")
	}
	return out, nil
}

// requireCategory loads an active category of the wanted type
func requireCategory(ctx context.Context, repo repository.CategoryRepository, id uint64, categoryType string) (*model.Category, error) {
	if id == 0 {
		return nil, NewValidationError("category_id", "is required")
	}
	category, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("category_id", fmt.Sprintf("category %d not found", id))
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	if category.Type != categoryType {
		return nil, NewValidationError("category_id", fmt.Sprintf("category %d is not an %s category", id, categoryType))
	}
	if !category.IsActive {
		return nil, NewValidationError("category_id", fmt.Sprintf("category %d is inactive", id))
	}
	return category, nil
}

func toLedgerCategory(c *model.Category) *LedgerCategory {
	if c == nil {
		return nil
	}
	return &LedgerCategory{ID: c.ID, Name: c.Name, Color: c.Color, Icon: c.Icon}
}

func toLedgerSummary(filter repository.LedgerListFilter, totals []model.CategoryTotal) LedgerSummaryResponse {
	res := LedgerSummaryResponse{
		StartDate:  formatTime(filter.StartDate, dateLayout),
		EndDate:    formatTime(filter.EndDate, dateLayout),
		ByCategory: make([]CategoryTotalResponse, 0, len(totals)),
	}
	var sum decimal.Decimal
	for _, t := range totals {
		sum = sum.Add(t.Total)
		res.Count += t.Count
		res.ByCategory = append(res.ByCategory, CategoryTotalResponse{
			CategoryID:   t.CategoryID,
			CategoryName: t.CategoryName,
			Count:        t.Count,
			Total:        t.Total.StringFixed(2),
		})
	}
	res.Total = sum.StringFixed(2)
	return res
}
