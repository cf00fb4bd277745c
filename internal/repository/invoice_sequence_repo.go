package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// InvoiceSequenceRepository hands out per-period document sequence numbers.
type InvoiceSequenceRepository interface {
	// Next increments and returns the counter for (prefix, period). It must
	// run in the same transaction as the insert that consumes the number so a
	// rollback also gives the number back.
	Next(ctx context.Context, prefix, period string) (int64, error)
}

type invoiceSequenceRepository struct {
	db *gorm.DB
}

func NewInvoiceSequenceRepository(db *gorm.DB) InvoiceSequenceRepository {
	return &invoiceSequenceRepository{db: db}
}

// The first allocation of a period seeds the counter from the highest
// existing doc_no with the same prefix, so invoices numbered before the
// counter table existed are never reused. The upsert row lock serializes
// concurrent writers of the same period until their transaction ends.
const nextSequenceSQL = `
INSERT INTO invoice_sequences (prefix, period, last_value, updated_at)
SELECT @prefix, @period, COALESCE(MAX(CAST(RIGHT(doc_no, 4) AS BIGINT)), 0) + 1, now()
FROM invoices
WHERE doc_no LIKE @pattern
ON CONFLICT (prefix, period)
DO UPDATE SET last_value = invoice_sequences.last_value + 1, updated_at = now()
RETURNING last_value`

func (r *invoiceSequenceRepository) Next(ctx context.Context, prefix, period string) (int64, error) {
	if !InTx(ctx) {
		return 0, ErrNoTransaction
	}

	var next int64
	err := GetDB(ctx, r.db).Raw(nextSequenceSQL, map[string]interface{}{
		"prefix":  prefix,
		"period":  period,
		"pattern": prefix + period + "%",
	}).Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("allocating sequence for %s%s: %w", prefix, period, err)
	}
	return next, nil
}
