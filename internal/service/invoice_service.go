package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"accounting/internal/logger"
	"accounting/internal/model"
	"accounting/internal/repository"
	"accounting/pkg/pagination"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice event names pushed to live subscribers
const (
	EventInvoiceCreated   = "invoice.created"
	EventInvoiceUpdated   = "invoice.updated"
	EventInvoiceIssued    = "invoice.issued"
	EventInvoiceCancelled = "invoice.cancelled"
	EventInvoicePaid      = "invoice.payment_recorded"
	EventInvoiceDeleted   = "invoice.deleted"
)

// --- DTOs ---

type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

type InvoiceFilter struct {
	Status  string
	DocType string
	Page    int
	Limit   int
}

type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"number"`
}

type InvoiceItemResponse struct {
	ID          uint64 `json:"id"`
	ItemNo      int    `json:"item_no"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	UnitPrice   string `json:"unit_price"`
	Amount      string `json:"amount"`
	VATRate     string `json:"vat_rate"`
	VATAmount   string `json:"vat_amount"`
	WHTRate     string `json:"wht_rate"`
	WHTAmount   string `json:"wht_amount"`
	TotalAmount string `json:"total_amount"`
}

type InvoiceResponse struct {
	ID              uint64                `json:"id"`
	DocNo           string                `json:"doc_no"`
	DocType         string                `json:"doc_type"`
	DocDate         string                `json:"doc_date"`
	DueDate         *string               `json:"due_date"`
	CustomerID      uint64                `json:"customer_id"`
	CustomerName    string                `json:"customer_name"`
	CustomerTaxID   string                `json:"customer_tax_id"`
	CustomerAddress string                `json:"customer_address"`
	CustomerPhone   string                `json:"customer_phone"`
	Subtotal        string                `json:"subtotal"`
	VATRate         string                `json:"vat_rate"`
	VATAmount       string                `json:"vat_amount"`
	WHTRate         string                `json:"wht_rate"`
	WHTAmount       string                `json:"wht_amount"`
	GrandTotal      string                `json:"grand_total"`
	NetPayable      string                `json:"net_payable"`
	PaidAmount      string                `json:"paid_amount"`
	Status          string                `json:"status"`
	PaymentStatus   string                `json:"payment_status"`
	Note            string                `json:"note"`
	IssuedBy        string                `json:"issued_by"`
	IssuerName      string                `json:"issuer_name,omitempty"`
	IssuedAt        *string               `json:"issued_at"`
	CancelledAt     *string               `json:"cancelled_at"`
	Items           []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt       string                `json:"created_at"`
	UpdatedAt       string                `json:"updated_at"`
}

type CreateInvoiceResult struct {
	DocNo     string          `json:"doc_no"`
	InvoiceID uint64          `json:"invoice_id"`
	Invoice   InvoiceResponse `json:"invoice"`
}

// EventPublisher receives changes after they commit
type EventPublisher interface {
	Publish(event string, payload interface{})
}

// --- Interface ---

type InvoiceService interface {
	CreateInvoice(ctx context.Context, actor Actor, req InvoiceRequest) (CreateInvoiceResult, error)
	GetInvoice(ctx context.Context, actor Actor, id string) (InvoiceResponse, error)
	ListInvoices(ctx context.Context, actor Actor, filter InvoiceFilter) ([]InvoiceResponse, int64, error)
	UpdateInvoice(ctx context.Context, actor Actor, id string, req InvoiceRequest) (InvoiceResponse, error)
	IssueInvoice(ctx context.Context, actor Actor, id string) (InvoiceResponse, error)
	CancelInvoice(ctx context.Context, actor Actor, id string) (InvoiceResponse, error)
	RecordPayment(ctx context.Context, actor Actor, id string, req PaymentRequest) (InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, actor Actor, id string) error
}

type invoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	sequenceRepo repository.InvoiceSequenceRepository
	customers    CustomerDirectory
	audit        AuditService
	events       EventPublisher
	txManager    repository.TransactionManager
	now          func() time.Time
	log          zerolog.Logger
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	sequenceRepo repository.InvoiceSequenceRepository,
	customers CustomerDirectory,
	audit AuditService,
	events EventPublisher,
	txManager repository.TransactionManager,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		sequenceRepo: sequenceRepo,
		customers:    customers,
		audit:        audit,
		events:       events,
		txManager:    txManager,
		now:          time.Now,
		log:          logger.WithComponent("invoice-service"),
	}
}

// --- Implementation ---

func (s *invoiceService) CreateInvoice(ctx context.Context, actor Actor, req InvoiceRequest) (CreateInvoiceResult, error) {
	docDate, dueDate, err := validateInvoiceRequest(req)
	if err != nil {
		return CreateInvoiceResult{}, err
	}

	customer, err := s.customers.Lookup(ctx, req.CustomerID)
	if err != nil {
		return CreateInvoiceResult{}, err
	}

	items, totals := computeLines(req.Lines)

	invoice := model.Invoice{
		DocType:       model.DocTypeInvoice,
		DocDate:       docDate,
		DueDate:       dueDate,
		CustomerID:    req.CustomerID,
		Note:          req.Note,
		PaidAmount:    decimal.Zero,
		Status:        model.InvoiceStatusDraft,
		PaymentStatus: model.PaymentUnpaid,
		IssuedBy:      actor.UserID,
	}
	applySnapshot(&invoice, customer)
	applyTotals(&invoice, totals)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		docNo, err := s.nextDocNo(txCtx)
		if err != nil {
			return err
		}
		invoice.DocNo = docNo

		if err := s.invoiceRepo.Create(txCtx, &invoice); err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		if err := s.invoiceRepo.CreateItems(txCtx, items); err != nil {
			return fmt.Errorf("failed to create invoice items: %w", err)
		}

		return s.audit.Record(txCtx, &actor.UserID, model.ActionCreateInvoice, invoiceEntityID(invoice.ID), docNo, req)
	})
	if err != nil {
		return CreateInvoiceResult{}, err
	}

	resp, err := s.reload(ctx, invoice.ID)
	if err != nil {
		return CreateInvoiceResult{}, err
	}

	s.log.Info().Str("doc_no", resp.DocNo).Uint64("invoice_id", resp.ID).Int("lines", len(items)).Msg("invoice created")
	s.publish(EventInvoiceCreated, resp)

	return CreateInvoiceResult{DocNo: resp.DocNo, InvoiceID: resp.ID, Invoice: resp}, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, actor Actor, id string) (InvoiceResponse, error) {
	invoiceID, err := parseInvoiceID(id)
	if err != nil {
		return InvoiceResponse{}, err
	}

	invoice, err := s.invoiceRepo.FindByIDWithItems(ctx, invoiceID)
	if err != nil {
		return InvoiceResponse{}, wrapFindErr(invoiceID, err)
	}
	if !canAccess(actor, invoice) {
		return InvoiceResponse{}, forbidden("you are not allowed to view this invoice")
	}

	return toInvoiceResponse(*invoice), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, actor Actor, filter InvoiceFilter) ([]InvoiceResponse, int64, error) {
	p := pagination.New(filter.Page, filter.Limit)
	repoFilter := repository.InvoiceListFilter{
		Status:  filter.Status,
		DocType: filter.DocType,
		Page:    p.Page,
		Limit:   p.Limit,
	}
	// Non-admins only ever see what they issued
	if !actor.IsAdmin() {
		uid := actor.UserID
		repoFilter.IssuedBy = &uid
	}

	invoices, total, err := s.invoiceRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	result := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, toInvoiceResponse(inv))
	}
	return result, total, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, actor Actor, id string, req InvoiceRequest) (InvoiceResponse, error) {
	invoiceID, err := parseInvoiceID(id)
	if err != nil {
		return InvoiceResponse{}, err
	}

	var lineCount int
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		invoice, err := s.lockForChange(txCtx, actor, invoiceID)
		if err != nil {
			return err
		}
		if invoice.Status != model.InvoiceStatusDraft {
			return conflict("only draft invoices can be edited (invoice %s is %s)", invoice.DocNo, invoice.Status)
		}

		docDate, dueDate, err := validateInvoiceRequest(req)
		if err != nil {
			return err
		}
		customer, err := s.customers.Lookup(txCtx, req.CustomerID)
		if err != nil {
			return err
		}
		items, totals := computeLines(req.Lines)

		invoice.DocDate = docDate
		invoice.DueDate = dueDate
		invoice.CustomerID = req.CustomerID
		invoice.Note = req.Note
		applySnapshot(invoice, customer)
		applyTotals(invoice, totals)

		if err := s.invoiceRepo.Update(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		if err := s.invoiceRepo.DeleteItems(txCtx, invoiceID); err != nil {
			return fmt.Errorf("failed to delete old invoice items: %w", err)
		}
		for i := range items {
			items[i].InvoiceID = invoiceID
		}
		if err := s.invoiceRepo.CreateItems(txCtx, items); err != nil {
			return fmt.Errorf("failed to create invoice items: %w", err)
		}
		lineCount = len(items)

		return s.audit.Record(txCtx, &actor.UserID, model.ActionUpdateInvoice, invoiceEntityID(invoiceID), invoice.DocNo, req)
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	resp, err := s.reload(ctx, invoiceID)
	if err != nil {
		return InvoiceResponse{}, err
	}

	s.log.Info().Str("doc_no", resp.DocNo).Int("lines", lineCount).Msg("invoice updated")
	s.publish(EventInvoiceUpdated, resp)
	return resp, nil
}

func (s *invoiceService) IssueInvoice(ctx context.Context, actor Actor, id string) (InvoiceResponse, error) {
	return s.transition(ctx, actor, id, model.ActionIssueInvoice, EventInvoiceIssued, nil, func(invoice *model.Invoice) error {
		switch invoice.Status {
		case model.InvoiceStatusDraft:
		case model.InvoiceStatusCancelled:
			return conflict("invoice %s is cancelled and cannot be issued", invoice.DocNo)
		default:
			return conflict("invoice %s has already been issued", invoice.DocNo)
		}
		now := s.now()
		invoice.Status = model.InvoiceStatusIssued
		invoice.IssuedAt = &now
		// Nothing to collect, so it is settled on issue
		if !invoice.NetPayable().IsPositive() {
			invoice.Status = model.InvoiceStatusPaid
			invoice.PaymentStatus = model.PaymentPaid
		}
		return nil
	})
}

func (s *invoiceService) CancelInvoice(ctx context.Context, actor Actor, id string) (InvoiceResponse, error) {
	return s.transition(ctx, actor, id, model.ActionCancelInvoice, EventInvoiceCancelled, nil, func(invoice *model.Invoice) error {
		switch invoice.Status {
		case model.InvoiceStatusDraft, model.InvoiceStatusIssued:
		case model.InvoiceStatusCancelled:
			return conflict("invoice %s is already cancelled", invoice.DocNo)
		default:
			return conflict("invoice %s is paid and cannot be cancelled", invoice.DocNo)
		}
		if invoice.PaidAmount.IsPositive() {
			return conflict("invoice %s has recorded payments and cannot be cancelled", invoice.DocNo)
		}
		now := s.now()
		invoice.Status = model.InvoiceStatusCancelled
		invoice.CancelledAt = &now
		return nil
	})
}

func (s *invoiceService) RecordPayment(ctx context.Context, actor Actor, id string, req PaymentRequest) (InvoiceResponse, error) {
	if !req.Amount.IsPositive() {
		return InvoiceResponse{}, NewValidationError("amount", "must be greater than zero")
	}
	amount := round2(req.Amount)

	return s.transition(ctx, actor, id, model.ActionRecordPayment, EventInvoicePaid, req, func(invoice *model.Invoice) error {
		if invoice.Status != model.InvoiceStatusIssued {
			return conflict("payments can only be recorded on issued invoices (invoice %s is %s)", invoice.DocNo, invoice.Status)
		}

		outstanding := invoice.NetPayable().Sub(invoice.PaidAmount)
		if amount.GreaterThan(outstanding) {
			return NewValidationError("amount", "exceeds the outstanding balance of "+outstanding.StringFixed(2))
		}

		invoice.PaidAmount = invoice.PaidAmount.Add(amount)
		if invoice.PaidAmount.Equal(invoice.NetPayable()) {
			invoice.PaymentStatus = model.PaymentPaid
			invoice.Status = model.InvoiceStatusPaid
		} else {
			invoice.PaymentStatus = model.PaymentPartial
		}
		return nil
	})
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, actor Actor, id string) error {
	invoiceID, err := parseInvoiceID(id)
	if err != nil {
		return err
	}

	var docNo string
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		invoice, err := s.lockForChange(txCtx, actor, invoiceID)
		if err != nil {
			return err
		}
		// Issued documents are part of the audit trail and stay forever
		if invoice.Status != model.InvoiceStatusDraft {
			return conflict("only draft invoices can be deleted (invoice %s is %s)", invoice.DocNo, invoice.Status)
		}
		docNo = invoice.DocNo

		if err := s.invoiceRepo.DeleteItems(txCtx, invoiceID); err != nil {
			return fmt.Errorf("failed to delete invoice items: %w", err)
		}
		if err := s.invoiceRepo.Delete(txCtx, invoiceID); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}
		return s.audit.Record(txCtx, &actor.UserID, model.ActionDeleteInvoice, invoiceEntityID(invoiceID), docNo, map[string]string{"doc_no": docNo})
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("doc_no", docNo).Msg("invoice deleted")
	s.publish(EventInvoiceDeleted, map[string]interface{}{"id": invoiceID, "doc_no": docNo})
	return nil
}

// --- Helpers ---

// transition loads and locks an invoice, applies mutate, saves the header and
// records the audit entry in one transaction.
func (s *invoiceService) transition(
	ctx context.Context,
	actor Actor,
	id string,
	action, event string,
	details interface{},
	mutate func(invoice *model.Invoice) error,
) (InvoiceResponse, error) {
	invoiceID, err := parseInvoiceID(id)
	if err != nil {
		return InvoiceResponse{}, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		invoice, err := s.lockForChange(txCtx, actor, invoiceID)
		if err != nil {
			return err
		}
		if err := mutate(invoice); err != nil {
			return err
		}
		if err := s.invoiceRepo.Update(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}

		auditDetails := details
		if auditDetails == nil {
			auditDetails = map[string]string{"status": invoice.Status}
		}
		return s.audit.Record(txCtx, &actor.UserID, action, invoiceEntityID(invoiceID), invoice.DocNo, auditDetails)
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	resp, err := s.reload(ctx, invoiceID)
	if err != nil {
		return InvoiceResponse{}, err
	}

	s.log.Info().Str("doc_no", resp.DocNo).Str("status", resp.Status).Str("action", action).Msg("invoice state changed")
	s.publish(event, resp)
	return resp, nil
}

// lockForChange fetches the header with a row lock and checks that the actor
// may modify it. Only the issuer or an admin may.
func (s *invoiceService) lockForChange(ctx context.Context, actor Actor, id uint64) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, wrapFindErr(id, err)
	}
	if !canAccess(actor, invoice) {
		return nil, forbidden("you are not allowed to modify this invoice")
	}
	return invoice, nil
}

func (s *invoiceService) nextDocNo(ctx context.Context) (string, error) {
	period := s.now().Format("200601")
	seq, err := s.sequenceRepo.Next(ctx, DocNoPrefix, period)
	if err != nil {
		return "", fmt.Errorf("failed to generate document number: %w", err)
	}
	return formatDocNo(DocNoPrefix, period, seq), nil
}

func (s *invoiceService) reload(ctx context.Context, id uint64) (InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to reload invoice: %w", err)
	}
	return toInvoiceResponse(*invoice), nil
}

func (s *invoiceService) publish(event string, payload interface{}) {
	if s.events != nil {
		s.events.Publish(event, payload)
	}
}

func canAccess(actor Actor, invoice *model.Invoice) bool {
	return actor.IsAdmin() || invoice.IssuedBy == actor.UserID
}

func parseInvoiceID(id string) (uint64, error) {
	invoiceID, err := strconv.ParseUint(id, 10, 64)
	if err != nil || invoiceID == 0 {
		return 0, NewValidationError("id", "invalid invoice id")
	}
	return invoiceID, nil
}

func wrapFindErr(id uint64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("invoice %d not found", id)
	}
	return fmt.Errorf("failed to fetch invoice: %w", err)
}

func invoiceEntityID(id uint64) string {
	return "invoice:" + strconv.FormatUint(id, 10)
}

func applySnapshot(invoice *model.Invoice, c CustomerSnapshot) {
	invoice.CustomerName = c.Name
	invoice.CustomerTaxID = c.TaxID
	invoice.CustomerAddress = c.Address
	invoice.CustomerPhone = c.Phone
}

func applyTotals(invoice *model.Invoice, t InvoiceTotals) {
	invoice.Subtotal = t.Subtotal
	invoice.VATRate = t.VATRate
	invoice.VATAmount = t.VATAmount
	invoice.WHTRate = t.WHTRate
	invoice.WHTAmount = t.WHTAmount
	invoice.GrandTotal = t.GrandTotal
}

// --- Mapping ---

func formatTime(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}

func toInvoiceResponse(inv model.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:              inv.ID,
		DocNo:           inv.DocNo,
		DocType:         inv.DocType,
		DocDate:         inv.DocDate.Format(dateLayout),
		DueDate:         formatTime(inv.DueDate, dateLayout),
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		CustomerTaxID:   inv.CustomerTaxID,
		CustomerAddress: inv.CustomerAddress,
		CustomerPhone:   inv.CustomerPhone,
		Subtotal:        inv.Subtotal.StringFixed(2),
		VATRate:         inv.VATRate.StringFixed(2),
		VATAmount:       inv.VATAmount.StringFixed(2),
		WHTRate:         inv.WHTRate.StringFixed(2),
		WHTAmount:       inv.WHTAmount.StringFixed(2),
		GrandTotal:      inv.GrandTotal.StringFixed(2),
		NetPayable:      inv.NetPayable().StringFixed(2),
		PaidAmount:      inv.PaidAmount.StringFixed(2),
		Status:          inv.Status,
		PaymentStatus:   inv.PaymentStatus,
		Note:            inv.Note,
		IssuedBy:        inv.IssuedBy.String(),
		IssuedAt:        formatTime(inv.IssuedAt, time.RFC3339),
		CancelledAt:     formatTime(inv.CancelledAt, time.RFC3339),
		CreatedAt:       inv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       inv.UpdatedAt.Format(time.RFC3339),
	}
	if inv.Issuer != nil {
		resp.IssuerName = inv.Issuer.Username
	}

	for _, item := range inv.Items {
		resp.Items = append(resp.Items, InvoiceItemResponse{
			ID:          item.ID,
			ItemNo:      item.ItemNo,
			Description: item.Description,
			Kind:        item.Kind,
			Quantity:    item.Quantity.StringFixed(2),
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Amount:      item.Amount.StringFixed(2),
			VATRate:     item.VATRate.StringFixed(2),
			VATAmount:   item.VATAmount.StringFixed(2),
			WHTRate:     item.WHTRate.StringFixed(2),
			WHTAmount:   item.WHTAmount.StringFixed(2),
			TotalAmount: item.TotalAmount.StringFixed(2),
		})
	}

	return resp
}
