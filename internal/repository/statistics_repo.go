package repository

import (
	"context"
	"fmt"
	"time"

	"accounting/internal/model"

	"gorm.io/gorm"
)

type StatisticsRepository interface {
	InvoiceTotalsByStatus(ctx context.Context, start, end time.Time) ([]model.InvoiceStatusTotal, error)
	TopCustomers(ctx context.Context, start, end time.Time, limit int) ([]model.CustomerRanking, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

// InvoiceTotalsByStatus sums header amounts per status for doc_date in [start, end]
func (r *statisticsRepository) InvoiceTotalsByStatus(ctx context.Context, start, end time.Time) ([]model.InvoiceStatusTotal, error) {
	var totals []model.InvoiceStatusTotal
	if err := GetDB(ctx, r.db).Table("invoices").
		Select("status, COUNT(*) AS count, " +
			"COALESCE(SUM(subtotal), 0) AS subtotal, " +
			"COALESCE(SUM(vat_amount), 0) AS vat_amount, " +
			"COALESCE(SUM(wht_amount), 0) AS wht_amount, " +
			"COALESCE(SUM(grand_total), 0) AS grand_total, " +
			"COALESCE(SUM(paid_amount), 0) AS paid_amount").
		Where("doc_date >= ? AND doc_date <= ?", start, end).
		Group("status").
		Order("status").
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to query invoice totals: %w", err)
	}
	return totals, nil
}

// TopCustomers ranks customers by grand total of issued and paid invoices
func (r *statisticsRepository) TopCustomers(ctx context.Context, start, end time.Time, limit int) ([]model.CustomerRanking, error) {
	var rankings []model.CustomerRanking
	if err := GetDB(ctx, r.db).Table("invoices").
		Select("customer_id, MAX(customer_name) AS customer_name, COUNT(*) AS invoice_count, SUM(grand_total) AS grand_total").
		Where("doc_date >= ? AND doc_date <= ?", start, end).
		Where("status IN ?", []string{model.InvoiceStatusIssued, model.InvoiceStatusPaid}).
		Group("customer_id").
		Order("grand_total DESC").
		Limit(limit).
		Scan(&rankings).Error; err != nil {
		return nil, fmt.Errorf("failed to query top customers: %w", err)
	}
	return rankings, nil
}
