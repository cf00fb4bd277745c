package service

import (
	"context"
	"fmt"
	"time"

	"accounting/internal/model"
	"accounting/internal/repository"

	"github.com/shopspring/decimal"
)

const topCustomerLimit = 5

// StatisticsFilter takes YYYY-MM-DD bounds; empty means the current month to date
type StatisticsFilter struct {
	StartDate string
	EndDate   string
}

type StatusTotalResponse struct {
	Status     string `json:"status"`
	Count      int64  `json:"count"`
	Subtotal   string `json:"subtotal"`
	VATAmount  string `json:"vat_amount"`
	WHTAmount  string `json:"wht_amount"`
	GrandTotal string `json:"grand_total"`
	PaidAmount string `json:"paid_amount"`
}

type CustomerRankingResponse struct {
	CustomerID   uint64 `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	InvoiceCount int64  `json:"invoice_count"`
	GrandTotal   string `json:"grand_total"`
}

// InvoiceStatisticsResponse is the dashboard view of invoicing over a period.
// Invoiced, output VAT and WHT figures only count issued and paid documents.
type InvoiceStatisticsResponse struct {
	StartDate      string                    `json:"start_date"`
	EndDate        string                    `json:"end_date"`
	ByStatus       []StatusTotalResponse     `json:"by_status"`
	TotalInvoiced  string                    `json:"total_invoiced"`
	OutputVAT      string                    `json:"output_vat"`
	WHTReceivable  string                    `json:"wht_receivable"`
	TotalCollected string                    `json:"total_collected"`
	Outstanding    string                    `json:"outstanding"`
	TopCustomers   []CustomerRankingResponse `json:"top_customers"`
}

type StatisticsService interface {
	GetInvoiceStatistics(ctx context.Context, filter StatisticsFilter) (InvoiceStatisticsResponse, error)
}

type statisticsService struct {
	repo repository.StatisticsRepository
	now  func() time.Time
}

func NewStatisticsService(repo repository.StatisticsRepository) StatisticsService {
	return &statisticsService{repo: repo, now: time.Now}
}

func (s *statisticsService) GetInvoiceStatistics(ctx context.Context, filter StatisticsFilter) (InvoiceStatisticsResponse, error) {
	start, end, err := s.resolveRange(filter)
	if err != nil {
		return InvoiceStatisticsResponse{}, err
	}

	totals, err := s.repo.InvoiceTotalsByStatus(ctx, start, end)
	if err != nil {
		return InvoiceStatisticsResponse{}, fmt.Errorf("invoice totals: %w", err)
	}
	rankings, err := s.repo.TopCustomers(ctx, start, end, topCustomerLimit)
	if err != nil {
		return InvoiceStatisticsResponse{}, fmt.Errorf("top customers: %w", err)
	}

	var invoiced, vat, wht, collected decimal.Decimal
	res := InvoiceStatisticsResponse{
		StartDate:    start.Format(dateLayout),
		EndDate:      end.Format(dateLayout),
		ByStatus:     make([]StatusTotalResponse, 0, len(totals)),
		TopCustomers: make([]CustomerRankingResponse, 0, len(rankings)),
	}
	for _, t := range totals {
		res.ByStatus = append(res.ByStatus, StatusTotalResponse{
			Status:     t.Status,
			Count:      t.Count,
			Subtotal:   t.Subtotal.StringFixed(2),
			VATAmount:  t.VATAmount.StringFixed(2),
			WHTAmount:  t.WHTAmount.StringFixed(2),
			GrandTotal: t.GrandTotal.StringFixed(2),
			PaidAmount: t.PaidAmount.StringFixed(2),
		})
		if t.Status != model.InvoiceStatusIssued && t.Status != model.InvoiceStatusPaid {
			continue
		}
		invoiced = invoiced.Add(t.GrandTotal)
		vat = vat.Add(t.VATAmount)
		wht = wht.Add(t.WHTAmount)
		collected = collected.Add(t.PaidAmount)
	}

	res.TotalInvoiced = invoiced.StringFixed(2)
	res.OutputVAT = vat.StringFixed(2)
	res.WHTReceivable = wht.StringFixed(2)
	res.TotalCollected = collected.StringFixed(2)
	res.Outstanding = invoiced.Sub(wht).Sub(collected).StringFixed(2)

	for _, r := range rankings {
		res.TopCustomers = append(res.TopCustomers, CustomerRankingResponse{
			CustomerID:   r.CustomerID,
			CustomerName: r.CustomerName,
			InvoiceCount: r.InvoiceCount,
			GrandTotal:   r.GrandTotal.StringFixed(2),
		})
	}
	return res, nil
}

func (s *statisticsService) resolveRange(filter StatisticsFilter) (time.Time, time.Time, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var err error
	if filter.StartDate != "" {
		if start, err = time.Parse(dateLayout, filter.StartDate); err != nil {
			return time.Time{}, time.Time{}, NewValidationError("start_date", "must be YYYY-MM-DD")
		}
	}
	if filter.EndDate != "" {
		if end, err = time.Parse(dateLayout, filter.EndDate); err != nil {
			return time.Time{}, time.Time{}, NewValidationError("end_date", "must be YYYY-MM-DD")
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, NewValidationError("end_date", "must not be before start_date")
	}
	return start, end, nil
}
