package handler

import (
	"net/http"

	"accounting/internal/middleware"
	"accounting/internal/model"
	"accounting/internal/service"
	"accounting/pkg/pagination"
	"accounting/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	readers := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant, model.RoleViewer)
	writers := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant)

	invoices := router.Group("/api/invoices")
	{
		invoices.GET("", readers, h.ListInvoices)
		invoices.GET("/:id", readers, h.GetInvoice)
		invoices.POST("", writers, h.CreateInvoice)
		invoices.PUT("/:id", writers, h.UpdateInvoice)
		invoices.PATCH("/:id/issue", writers, h.IssueInvoice)
		invoices.PATCH("/:id/cancel", writers, h.CancelInvoice)
		invoices.POST("/:id/payments", writers, h.RecordPayment)
		invoices.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteInvoice)
	}
}

// CreateInvoice creates a draft invoice with its line items
// @Summary      Create invoice
// @Description  Validates the lines, computes VAT and withholding tax, assigns the next document number and stores the invoice as a draft
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.InvoiceRequest  true  "Invoice Payload"
// @Success      201      {object}  response.Response{data=service.CreateInvoiceResult}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req service.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.invoiceService.CreateInvoice(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// ListInvoices returns a paginated list of invoices
// @Summary      List invoices
// @Description  Non-admin users only see the invoices they issued
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        status    query     string  false  "Filter by status (draft, issued, paid, cancelled)"
// @Param        doc_type  query     string  false  "Filter by document type"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Number of items per page (default 10, max 100)"
// @Success      200       {object}  response.Response{data=response.PaginatedData{items=[]service.InvoiceResponse}}
// @Failure      500       {object}  response.Response
// @Router       /api/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	p := pagination.Parse(c)

	filter := service.InvoiceFilter{
		Status:  c.Query("status"),
		DocType: c.Query("doc_type"),
		Page:    p.Page,
		Limit:   p.Limit,
	}

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), actor, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, invoices, p, total))
}

// GetInvoice returns one invoice with its items
// @Summary      Get invoice
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=service.InvoiceResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// UpdateInvoice replaces the content of a draft invoice
// @Summary      Update invoice
// @Description  Recomputes totals and replaces every line. Only drafts can be edited; the document number never changes.
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                     true  "Invoice ID"
// @Param        payload  body      service.InvoiceRequest  true  "Invoice Payload"
// @Success      200      {object}  response.Response{data=service.InvoiceResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req service.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// IssueInvoice moves a draft invoice to issued
// @Summary      Issue invoice
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=service.InvoiceResponse}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id}/issue [patch]
func (h *InvoiceHandler) IssueInvoice(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.IssueInvoice(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// CancelInvoice cancels a draft or issued invoice without payments
// @Summary      Cancel invoice
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=service.InvoiceResponse}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id}/cancel [patch]
func (h *InvoiceHandler) CancelInvoice(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CancelInvoice(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// RecordPayment adds a payment against an issued invoice
// @Summary      Record payment
// @Description  The paid total may not exceed grand total minus withholding tax
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                     true  "Invoice ID"
// @Param        payload  body      service.PaymentRequest  true  "Payment Payload"
// @Success      200      {object}  response.Response{data=service.InvoiceResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/invoices/{id}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// DeleteInvoice removes a draft invoice and its lines
// @Summary      Delete invoice
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Invoice deleted successfully"}))
}
