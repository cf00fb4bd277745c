package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"accounting/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatisticsRepo struct {
	totals     []model.InvoiceStatusTotal
	rankings   []model.CustomerRanking
	start, end time.Time
	limit      int
	err        error
}

func (f *fakeStatisticsRepo) InvoiceTotalsByStatus(ctx context.Context, start, end time.Time) ([]model.InvoiceStatusTotal, error) {
	f.start, f.end = start, end
	return f.totals, f.err
}

func (f *fakeStatisticsRepo) TopCustomers(ctx context.Context, start, end time.Time, limit int) ([]model.CustomerRanking, error) {
	f.limit = limit
	return f.rankings, f.err
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStatisticsService_Aggregates(t *testing.T) {
	repo := &fakeStatisticsRepo{
		totals: []model.InvoiceStatusTotal{
			{Status: model.InvoiceStatusCancelled, Count: 1, GrandTotal: amount("999"), VATAmount: amount("65.36")},
			{Status: model.InvoiceStatusDraft, Count: 2, GrandTotal: amount("500"), VATAmount: amount("32.71")},
			{Status: model.InvoiceStatusIssued, Count: 3, Subtotal: amount("3000"), VATAmount: amount("210"), WHTAmount: amount("90"), GrandTotal: amount("3210"), PaidAmount: amount("1000")},
			{Status: model.InvoiceStatusPaid, Count: 1, Subtotal: amount("1200"), VATAmount: amount("14"), WHTAmount: amount("30"), GrandTotal: amount("1214"), PaidAmount: amount("1184")},
		},
		rankings: []model.CustomerRanking{
			{CustomerID: 3, CustomerName: "Bangkok Foods", InvoiceCount: 2, GrandTotal: amount("2424.5")},
		},
	}
	svc := NewStatisticsService(repo)

	res, err := svc.GetInvoiceStatistics(context.Background(), StatisticsFilter{StartDate: "2025-01-01", EndDate: "2025-01-31"})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-01", res.StartDate)
	assert.Equal(t, "2025-01-31", res.EndDate)
	assert.Len(t, res.ByStatus, 4)
	assert.Equal(t, "4424.00", res.TotalInvoiced)
	assert.Equal(t, "224.00", res.OutputVAT)
	assert.Equal(t, "120.00", res.WHTReceivable)
	assert.Equal(t, "2184.00", res.TotalCollected)
	assert.Equal(t, "2120.00", res.Outstanding)

	require.Len(t, res.TopCustomers, 1)
	assert.Equal(t, "2424.50", res.TopCustomers[0].GrandTotal)
	assert.Equal(t, topCustomerLimit, repo.limit)
}

func TestStatisticsService_DefaultRange(t *testing.T) {
	repo := &fakeStatisticsRepo{}
	svc := NewStatisticsService(repo).(*statisticsService)
	svc.now = func() time.Time { return time.Date(2025, time.February, 17, 15, 30, 0, 0, time.UTC) }

	res, err := svc.GetInvoiceStatistics(context.Background(), StatisticsFilter{})
	require.NoError(t, err)

	assert.Equal(t, "2025-02-01", res.StartDate)
	assert.Equal(t, "2025-02-17", res.EndDate)
	assert.Equal(t, "0.00", res.TotalInvoiced)
	assert.NotNil(t, res.ByStatus)
	assert.NotNil(t, res.TopCustomers)
}

func TestStatisticsService_RangeValidation(t *testing.T) {
	svc := NewStatisticsService(&fakeStatisticsRepo{})

	tests := []struct {
		name   string
		filter StatisticsFilter
		field  string
	}{
		{"bad start", StatisticsFilter{StartDate: "01/02/2025"}, "start_date"},
		{"bad end", StatisticsFilter{StartDate: "2025-01-01", EndDate: "tomorrow"}, "end_date"},
		{"reversed", StatisticsFilter{StartDate: "2025-02-01", EndDate: "2025-01-01"}, "end_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetInvoiceStatistics(context.Background(), tt.filter)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestStatisticsService_RepositoryError(t *testing.T) {
	svc := NewStatisticsService(&fakeStatisticsRepo{err: errors.New("pq: timeout")})
	_, err := svc.GetInvoiceStatistics(context.Background(), StatisticsFilter{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrValidation))
}
