package service

import (
	"fmt"
	"strings"
	"time"

	"accounting/internal/model"

	"github.com/shopspring/decimal"
)

const (
	DocNoPrefix = "INV"
	DefaultUnit = "ชิ้น"
	dateLayout  = "2006-01-02"
)

var (
	// VATPercent is fixed by law and not configurable per invoice.
	VATPercent       = decimal.NewFromInt(7)
	DefaultWHTRate   = decimal.NewFromInt(3)
	DefaultQuantity  = decimal.NewFromInt(1)
	DefaultUnitPrice = decimal.Zero

	hundred = decimal.NewFromInt(100)
)

// InvoiceLineInput is one submitted line. Nil numeric fields take the
// package defaults.
type InvoiceLineInput struct {
	Description string           `json:"description"`
	Qty         *decimal.Decimal `json:"qty" swaggertype:"number"`
	Unit        string           `json:"unit"`
	UnitPrice   *decimal.Decimal `json:"unit_price" swaggertype:"number"`
	VAT         bool             `json:"vat"`
	WHT         bool             `json:"wht"`
	Kind        string           `json:"kind"` // service or product
	WHTRate     *decimal.Decimal `json:"whtRate" swaggertype:"number"`
}

// InvoiceRequest is the payload of create and update.
type InvoiceRequest struct {
	DocDate    string             `json:"doc_date"` // YYYY-MM-DD
	DueDate    string             `json:"due_date"` // optional, YYYY-MM-DD
	CustomerID uint64             `json:"customer_id"`
	Note       string             `json:"note"`
	Lines      []InvoiceLineInput `json:"lines"`
}

// InvoiceTotals are the document-level figures derived from the lines.
type InvoiceTotals struct {
	Subtotal   decimal.Decimal
	VATRate    decimal.Decimal
	VATAmount  decimal.Decimal
	WHTRate    decimal.Decimal
	WHTAmount  decimal.Decimal
	GrandTotal decimal.Decimal
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// validateInvoiceRequest checks the whole request before anything is computed
// or written. A single bad line rejects the request.
func validateInvoiceRequest(req InvoiceRequest) (time.Time, *time.Time, error) {
	if strings.TrimSpace(req.DocDate) == "" {
		return time.Time{}, nil, NewValidationError("doc_date", "is required")
	}
	docDate, err := time.Parse(dateLayout, req.DocDate)
	if err != nil {
		return time.Time{}, nil, NewValidationError("doc_date", "must be a date in YYYY-MM-DD format")
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return time.Time{}, nil, NewValidationError("due_date", "must be a date in YYYY-MM-DD format")
		}
		if d.Before(docDate) {
			return time.Time{}, nil, NewValidationError("due_date", "cannot be before doc_date")
		}
		dueDate = &d
	}

	if req.CustomerID == 0 {
		return time.Time{}, nil, NewValidationError("customer_id", "is required")
	}
	if err := validateLines(req.Lines); err != nil {
		return time.Time{}, nil, err
	}
	return docDate, dueDate, nil
}

func validateLines(lines []InvoiceLineInput) error {
	if len(lines) == 0 {
		return NewValidationError("lines", "at least one line item is required")
	}

	var missing []string
	for i, line := range lines {
		field := fmt.Sprintf("lines[%d]", i)
		if strings.TrimSpace(line.Description) == "" {
			missing = append(missing, field)
			continue
		}
		if line.Qty != nil && line.Qty.IsNegative() {
			return NewValidationError(field+".qty", "cannot be negative")
		}
		if line.UnitPrice != nil && line.UnitPrice.IsNegative() {
			return NewValidationError(field+".unit_price", "cannot be negative")
		}
		if line.WHTRate != nil && (line.WHTRate.IsNegative() || line.WHTRate.GreaterThan(hundred)) {
			return NewValidationError(field+".whtRate", "must be between 0 and 100")
		}
		switch line.Kind {
		case "", model.LineKindService, model.LineKindProduct:
		default:
			return NewValidationError(field+".kind", "must be service or product")
		}
	}
	if len(missing) > 0 {
		return NewValidationError("lines", "description is required on every line ("+strings.Join(missing, ", ")+")")
	}
	return nil
}

// computeLines derives every line amount and the document totals. Lines keep
// their input order; item_no is the 1-based position.
func computeLines(lines []InvoiceLineInput) ([]model.InvoiceItem, InvoiceTotals) {
	items := make([]model.InvoiceItem, 0, len(lines))
	subtotal := decimal.Zero
	totalVAT := decimal.Zero
	totalWHT := decimal.Zero

	for i, line := range lines {
		qty := DefaultQuantity
		if line.Qty != nil {
			qty = *line.Qty
		}
		price := DefaultUnitPrice
		if line.UnitPrice != nil {
			price = *line.UnitPrice
		}
		unit := line.Unit
		if unit == "" {
			unit = DefaultUnit
		}
		kind := line.Kind
		if kind == "" {
			kind = model.LineKindProduct
		}

		// Stored at two decimals, so compute from the stored values
		qty = round2(qty)
		price = round2(price)
		amount := round2(qty.Mul(price))

		vatRate := decimal.Zero
		vatAmount := decimal.Zero
		if line.VAT {
			vatRate = VATPercent
			vatAmount = round2(amount.Mul(VATPercent).Div(hundred))
		}

		// Goods never carry withholding tax, whatever the flag says
		whtRate := decimal.Zero
		whtAmount := decimal.Zero
		if line.WHT && kind == model.LineKindService {
			whtRate = DefaultWHTRate
			if line.WHTRate != nil {
				whtRate = round2(*line.WHTRate)
			}
			whtAmount = round2(amount.Mul(whtRate).Div(hundred))
		}

		items = append(items, model.InvoiceItem{
			ItemNo:      i + 1,
			Description: strings.TrimSpace(line.Description),
			Kind:        kind,
			Quantity:    qty,
			Unit:        unit,
			UnitPrice:   price,
			Amount:      amount,
			VATRate:     vatRate,
			VATAmount:   vatAmount,
			WHTRate:     whtRate,
			WHTAmount:   whtAmount,
			TotalAmount: amount.Add(vatAmount).Sub(whtAmount),
		})

		subtotal = subtotal.Add(amount)
		totalVAT = totalVAT.Add(vatAmount)
		totalWHT = totalWHT.Add(whtAmount)
	}

	totals := InvoiceTotals{
		Subtotal:   round2(subtotal),
		VATRate:    decimal.Zero,
		VATAmount:  round2(totalVAT),
		WHTRate:    decimal.Zero,
		WHTAmount:  round2(totalWHT),
		GrandTotal: round2(subtotal.Add(totalVAT)),
	}
	// Header rates are labels, not weighted averages, and only show when tax was charged
	if totals.VATAmount.IsPositive() {
		totals.VATRate = VATPercent
	}
	if totals.WHTAmount.IsPositive() {
		totals.WHTRate = DefaultWHTRate
	}
	return items, totals
}

// formatDocNo renders prefix + YYYYMM + four-digit sequence, e.g. INV2025010004.
func formatDocNo(prefix, period string, seq int64) string {
	return fmt.Sprintf("%s%s%04d", prefix, period, seq)
}
