package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"accounting/internal/middleware"
	"accounting/internal/model"
	"accounting/internal/service"
	"accounting/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
	middleware.InitJWT(testSecret)
}

func signToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

type fakeInvoiceService struct {
	lastActor  service.Actor
	lastID     string
	lastFilter service.InvoiceFilter
	lastReq    service.InvoiceRequest
	err        error
}

func (f *fakeInvoiceService) CreateInvoice(ctx context.Context, actor service.Actor, req service.InvoiceRequest) (service.CreateInvoiceResult, error) {
	f.lastActor, f.lastReq = actor, req
	if f.err != nil {
		return service.CreateInvoiceResult{}, f.err
	}
	inv := service.InvoiceResponse{ID: 7, DocNo: "INV2025010001", Status: model.InvoiceStatusDraft}
	return service.CreateInvoiceResult{DocNo: inv.DocNo, InvoiceID: inv.ID, Invoice: inv}, nil
}

func (f *fakeInvoiceService) GetInvoice(ctx context.Context, actor service.Actor, id string) (service.InvoiceResponse, error) {
	f.lastActor, f.lastID = actor, id
	return service.InvoiceResponse{DocNo: "INV2025010001"}, f.err
}

func (f *fakeInvoiceService) ListInvoices(ctx context.Context, actor service.Actor, filter service.InvoiceFilter) ([]service.InvoiceResponse, int64, error) {
	f.lastActor, f.lastFilter = actor, filter
	if f.err != nil {
		return nil, 0, f.err
	}
	return []service.InvoiceResponse{{DocNo: "INV2025010002"}, {DocNo: "INV2025010001"}}, 12, nil
}

func (f *fakeInvoiceService) UpdateInvoice(ctx context.Context, actor service.Actor, id string, req service.InvoiceRequest) (service.InvoiceResponse, error) {
	f.lastActor, f.lastID, f.lastReq = actor, id, req
	return service.InvoiceResponse{}, f.err
}

func (f *fakeInvoiceService) IssueInvoice(ctx context.Context, actor service.Actor, id string) (service.InvoiceResponse, error) {
	f.lastActor, f.lastID = actor, id
	return service.InvoiceResponse{Status: model.InvoiceStatusIssued}, f.err
}

func (f *fakeInvoiceService) CancelInvoice(ctx context.Context, actor service.Actor, id string) (service.InvoiceResponse, error) {
	f.lastActor, f.lastID = actor, id
	return service.InvoiceResponse{Status: model.InvoiceStatusCancelled}, f.err
}

func (f *fakeInvoiceService) RecordPayment(ctx context.Context, actor service.Actor, id string, req service.PaymentRequest) (service.InvoiceResponse, error) {
	f.lastActor, f.lastID = actor, id
	return service.InvoiceResponse{}, f.err
}

func (f *fakeInvoiceService) DeleteInvoice(ctx context.Context, actor service.Actor, id string) error {
	f.lastActor, f.lastID = actor, id
	return f.err
}

func newInvoiceRouter(svc service.InvoiceService) *gin.Engine {
	r := gin.New()
	NewInvoiceHandler(svc).RegisterRoutes(r.Group(""))
	return r
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
}

func do(t *testing.T, r http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func TestCreateInvoiceHandler(t *testing.T) {
	svc := &fakeInvoiceService{}
	r := newInvoiceRouter(svc)
	userID := uuid.New()

	body := map[string]interface{}{
		"doc_date":    "2025-01-15",
		"customer_id": 3,
		"lines": []map[string]interface{}{
			{"description": "Consulting", "qty": 2, "unit_price": "1500.50", "vat": true, "wht": true, "kind": "service", "whtRate": 5},
		},
	}
	w, env := do(t, r, http.MethodPost, "/api/invoices", signToken(t, userID, model.RoleAccountant), body)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "success", env.Status)

	var result service.CreateInvoiceResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "INV2025010001", result.DocNo)
	assert.EqualValues(t, 7, result.InvoiceID)

	assert.Equal(t, userID, svc.lastActor.UserID)
	assert.Equal(t, model.RoleAccountant, svc.lastActor.Role)
	require.Len(t, svc.lastReq.Lines, 1)
	line := svc.lastReq.Lines[0]
	require.NotNil(t, line.Qty)
	require.NotNil(t, line.UnitPrice)
	require.NotNil(t, line.WHTRate)
	assert.Equal(t, "2", line.Qty.String())
	assert.Equal(t, "1500.5", line.UnitPrice.String())
	assert.Equal(t, "5", line.WHTRate.String())
}

func TestCreateInvoiceHandler_RoleChecks(t *testing.T) {
	r := newInvoiceRouter(&fakeInvoiceService{})

	w, _ := do(t, r, http.MethodPost, "/api/invoices", "", map[string]interface{}{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/invoices", signToken(t, uuid.New(), model.RoleViewer), map[string]interface{}{})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/invoices/1", signToken(t, uuid.New(), model.RoleAccountant), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInvoiceHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", service.NewValidationError("lines", "at least one line item is required"), http.StatusBadRequest, "lines: at least one line item is required"},
		{"not found", fmt.Errorf("lookup: %w", service.ErrNotFound), http.StatusNotFound, ""},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, ""},
		{"state conflict", service.ErrStateConflict, http.StatusBadRequest, ""},
		{"infrastructure", errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newInvoiceRouter(&fakeInvoiceService{err: tt.err})
			w, env := do(t, r, http.MethodPatch, "/api/invoices/1/issue", signToken(t, uuid.New(), model.RoleAdmin), nil)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, tt.status, env.StatusCode)
			if tt.message != "" {
				assert.Equal(t, tt.message, env.Error)
			}
			assert.NotContains(t, env.Error, "pq:")
		})
	}
}

func TestListInvoicesHandler_Pagination(t *testing.T) {
	svc := &fakeInvoiceService{}
	r := newInvoiceRouter(svc)

	w, env := do(t, r, http.MethodGet, "/api/invoices?status=issued&page=2&limit=500", signToken(t, uuid.New(), model.RoleViewer), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "issued", svc.lastFilter.Status)
	assert.Equal(t, 2, svc.lastFilter.Page)
	assert.Equal(t, 100, svc.lastFilter.Limit)

	var page struct {
		Items      []service.InvoiceResponse `json:"items"`
		Pagination pagination.Meta           `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Items, 2)
	assert.Equal(t, pagination.Meta{CurrentPage: 2, TotalPages: 1, TotalItems: 12, ItemsPerPage: 100}, page.Pagination)
}

func TestInvoiceHandler_PassesPathID(t *testing.T) {
	svc := &fakeInvoiceService{}
	r := newInvoiceRouter(svc)
	token := signToken(t, uuid.New(), model.RoleAdmin)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/invoices/41"},
		{http.MethodPatch, "/api/invoices/41/cancel"},
		{http.MethodDelete, "/api/invoices/41"},
	} {
		w, _ := do(t, r, tc.method, tc.path, token, nil)
		assert.Equal(t, http.StatusOK, w.Code, tc.path)
		assert.Equal(t, "41", svc.lastID, tc.path)
	}

	w, _ := do(t, r, http.MethodPost, "/api/invoices/41/payments", token, map[string]interface{}{"amount": "250.00"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvoiceHandler_RejectsMalformedJSON(t *testing.T) {
	r := newInvoiceRouter(&fakeInvoiceService{})
	req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), model.RoleAdmin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
