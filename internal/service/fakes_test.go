package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"accounting/internal/model"
	"accounting/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// memStore backs every fake repository. The fake transaction manager
// snapshots it before fn runs and restores the snapshot when fn fails.
type memStore struct {
	mu         sync.Mutex
	invoices   map[uint64]model.Invoice
	items      map[uint64][]model.InvoiceItem
	sequences  map[string]int64
	parties    map[uint64]model.Party
	users      map[uuid.UUID]model.User
	categories map[uint64]model.Category
	incomes    map[uint64]model.Income
	expenses   map[uint64]model.Expense
	audits     []model.AuditLog
	nextID     uint64

	// failure injection
	failCreateItems error
	failAudit       error
}

func newMemStore() *memStore {
	return &memStore{
		invoices:   map[uint64]model.Invoice{},
		items:      map[uint64][]model.InvoiceItem{},
		sequences:  map[string]int64{},
		parties:    map[uint64]model.Party{},
		users:      map[uuid.UUID]model.User{},
		categories: map[uint64]model.Category{},
		incomes:    map[uint64]model.Income{},
		expenses:   map[uint64]model.Expense{},
	}
}

type memSnapshot struct {
	invoices   map[uint64]model.Invoice
	items      map[uint64][]model.InvoiceItem
	sequences  map[string]int64
	parties    map[uint64]model.Party
	users      map[uuid.UUID]model.User
	categories map[uint64]model.Category
	incomes    map[uint64]model.Income
	expenses   map[uint64]model.Expense
	audits     []model.AuditLog
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := memSnapshot{
		invoices:   copyMap(s.invoices),
		items:      make(map[uint64][]model.InvoiceItem, len(s.items)),
		sequences:  copyMap(s.sequences),
		parties:    copyMap(s.parties),
		users:      copyMap(s.users),
		categories: copyMap(s.categories),
		incomes:    copyMap(s.incomes),
		expenses:   copyMap(s.expenses),
		audits:     append([]model.AuditLog(nil), s.audits...),
	}
	for k, v := range s.items {
		snap.items[k] = append([]model.InvoiceItem(nil), v...)
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = snap.invoices
	s.items = snap.items
	s.sequences = snap.sequences
	s.parties = snap.parties
	s.users = snap.users
	s.categories = snap.categories
	s.incomes = snap.incomes
	s.expenses = snap.expenses
	s.audits = snap.audits
}

func (s *memStore) id() uint64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) invoiceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invoices)
}

func (s *memStore) itemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, items := range s.items {
		n += len(items)
	}
	return n
}

func (s *memStore) auditActions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := make([]string, 0, len(s.audits))
	for _, a := range s.audits {
		actions = append(actions, a.Action)
	}
	return actions
}

// --- transaction manager ---

type fakeTxKey struct{}

// fakeTxManager runs one transaction at a time, standing in for the row
// locks the database would take.
type fakeTxManager struct {
	store *memStore
	mu    sync.Mutex
}

func (m *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if ctx.Value(fakeTxKey{}) != nil {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, fakeTxKey{}, true)); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

func requireTx(ctx context.Context) error {
	if ctx.Value(fakeTxKey{}) == nil {
		return repository.ErrNoTransaction
	}
	return nil
}

// --- invoice repository ---

type fakeInvoiceRepo struct {
	store *memStore
	now   func() time.Time
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *model.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.invoices {
		if existing.DocNo == invoice.DocNo {
			return errors.New("duplicate key value violates unique constraint \"idx_invoices_doc_no\"")
		}
	}
	invoice.ID = r.store.id()
	invoice.CreatedAt = r.now()
	invoice.UpdatedAt = invoice.CreatedAt
	stored := *invoice
	stored.Items = nil
	stored.Issuer = nil
	r.store.invoices[invoice.ID] = stored
	return nil
}

func (r *fakeInvoiceRepo) CreateItems(ctx context.Context, items []model.InvoiceItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failCreateItems != nil {
		return r.store.failCreateItems
	}
	for i := range items {
		if _, ok := r.store.invoices[items[i].InvoiceID]; !ok {
			return errors.New("violates foreign key constraint \"invoice_items_invoice_id_fkey\"")
		}
		items[i].ID = r.store.id()
		r.store.items[items[i].InvoiceID] = append(r.store.items[items[i].InvoiceID], items[i])
	}
	return nil
}

func (r *fakeInvoiceRepo) FindByID(ctx context.Context, id uint64) (*model.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	inv, ok := r.store.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &inv, nil
}

func (r *fakeInvoiceRepo) FindByIDWithItems(ctx context.Context, id uint64) (*model.Invoice, error) {
	inv, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	items := append([]model.InvoiceItem(nil), r.store.items[id]...)
	sort.Slice(items, func(i, j int) bool { return items[i].ItemNo < items[j].ItemNo })
	inv.Items = items
	if u, ok := r.store.users[inv.IssuedBy]; ok {
		inv.Issuer = &u
	}
	return inv, nil
}

func (r *fakeInvoiceRepo) FindByIDForUpdate(ctx context.Context, id uint64) (*model.Invoice, error) {
	if err := requireTx(ctx); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *fakeInvoiceRepo) List(ctx context.Context, filter repository.InvoiceListFilter) ([]model.Invoice, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var matched []model.Invoice
	for _, inv := range r.store.invoices {
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		if filter.DocType != "" && inv.DocType != filter.DocType {
			continue
		}
		if filter.IssuedBy != nil && inv.IssuedBy != *filter.IssuedBy {
			continue
		}
		matched = append(matched, inv)
	}
	// newest first
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, invoice *model.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.invoices[invoice.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	invoice.UpdatedAt = r.now()
	stored := *invoice
	stored.Items = nil
	stored.Issuer = nil
	r.store.invoices[invoice.ID] = stored
	return nil
}

func (r *fakeInvoiceRepo) DeleteItems(ctx context.Context, invoiceID uint64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.items, invoiceID)
	return nil
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, id uint64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.invoices, id)
	return nil
}

// --- sequence repository ---

type fakeSequenceRepo struct {
	store *memStore
}

// Next mirrors the upsert: the first call of a period seeds from the highest
// existing doc_no carrying the same prefix and period.
func (r *fakeSequenceRepo) Next(ctx context.Context, prefix, period string) (int64, error) {
	if err := requireTx(ctx); err != nil {
		return 0, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := prefix + period
	if last, ok := r.store.sequences[key]; ok {
		r.store.sequences[key] = last + 1
		return last + 1, nil
	}

	var max int64
	for _, inv := range r.store.invoices {
		if !strings.HasPrefix(inv.DocNo, key) || len(inv.DocNo) < 4 {
			continue
		}
		n, err := strconv.ParseInt(inv.DocNo[len(inv.DocNo)-4:], 10, 64)
		if err == nil && n > max {
			max = n
		}
	}
	r.store.sequences[key] = max + 1
	return max + 1, nil
}

// --- party repository ---

type fakePartyRepo struct {
	store *memStore
}

func (r *fakePartyRepo) Create(ctx context.Context, party *model.Party) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	party.ID = r.store.id()
	r.store.parties[party.ID] = *party
	return nil
}

func (r *fakePartyRepo) Update(ctx context.Context, party *model.Party) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.parties[party.ID] = *party
	return nil
}

func (r *fakePartyRepo) Delete(ctx context.Context, id uint64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.parties, id)
	return nil
}

func (r *fakePartyRepo) FindByID(ctx context.Context, id uint64) (*model.Party, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.parties[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakePartyRepo) List(ctx context.Context, filter repository.PartyListFilter) ([]model.Party, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []model.Party
	for _, p := range r.store.parties {
		if filter.PartyType != "" && p.PartyType != filter.PartyType && p.PartyType != model.PartyTypeBoth {
			continue
		}
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, int64(len(matched)), nil
}

// --- user repository ---

type fakeUserRepo struct {
	store *memStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.store.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) find(match func(model.User) bool) (*model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	users := make([]model.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, int64(len(users)), nil
}

func (r *fakeUserRepo) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LastLogin = &at
	r.store.users[id] = u
	return nil
}

// --- audit repository ---

type fakeAuditRepo struct {
	store *memStore
}

func (r *fakeAuditRepo) Log(ctx context.Context, entry *model.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAudit != nil {
		return r.store.failAudit
	}
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	r.store.audits = append(r.store.audits, *entry)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, entityID string, page, limit int) ([]model.AuditLog, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []model.AuditLog
	for i := len(r.store.audits) - 1; i >= 0; i-- {
		a := r.store.audits[i]
		if entityID == "" || a.EntityID == entityID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

// --- event publisher ---

type recordedEvent struct {
	name    string
	payload interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *fakePublisher) Publish(event string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{name: event, payload: payload})
}

func (p *fakePublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.name)
	}
	return names
}

// --- category repository ---

type fakeCategoryRepo struct {
	store *memStore
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	category.ID = r.store.id()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	r.store.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *model.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uint64) (*model.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) FindActiveByName(ctx context.Context, name, categoryType string) (*model.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.categories {
		if c.IsActive && c.Name == name && c.Type == categoryType {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) List(ctx context.Context, filter repository.CategoryListFilter) ([]model.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []model.Category
	for _, c := range r.store.categories {
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		if filter.ActiveOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *fakeCategoryRepo) CountTransactions(ctx context.Context, category *model.Category) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	if category.Type == model.CategoryTypeIncome {
		for _, in := range r.store.incomes {
			if in.CategoryID == category.ID {
				n++
			}
		}
		return n, nil
	}
	for _, e := range r.store.expenses {
		if e.CategoryID == category.ID {
			n++
		}
	}
	return n, nil
}

// ledgerMatch applies the shared income/expense filter
func ledgerMatch(f repository.LedgerListFilter, userID uuid.UUID, categoryID uint64, desc string, date time.Time) bool {
	if f.UserID != nil && *f.UserID != userID {
		return false
	}
	if f.CategoryID != 0 && f.CategoryID != categoryID {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(desc), strings.ToLower(f.Search)) {
		return false
	}
	if f.StartDate != nil && date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && date.After(*f.EndDate) {
		return false
	}
	return true
}

func paginate[T any](items []T, f repository.LedgerListFilter) []T {
	start := (f.Page - 1) * f.Limit
	if start >= len(items) {
		return nil
	}
	end := start + f.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type ledgerEntry struct {
	categoryID uint64
	amount     decimal.Decimal
}

// fakeTotals groups matched entries by category the way the SQL GROUP BY does
func fakeTotals(store *memStore, entries []ledgerEntry) []model.CategoryTotal {
	byID := map[uint64]*model.CategoryTotal{}
	var order []uint64
	for _, e := range entries {
		t, ok := byID[e.categoryID]
		if !ok {
			t = &model.CategoryTotal{CategoryID: e.categoryID, CategoryName: store.categories[e.categoryID].Name}
			byID[e.categoryID] = t
			order = append(order, e.categoryID)
		}
		t.Count++
		t.Total = t.Total.Add(e.amount)
	}
	out := make([]model.CategoryTotal, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out
}

// --- income repository ---

type fakeIncomeRepo struct {
	store *memStore
}

func (r *fakeIncomeRepo) withCategory(in model.Income) model.Income {
	if c, ok := r.store.categories[in.CategoryID]; ok {
		in.Category = &c
	}
	return in
}

func (r *fakeIncomeRepo) Create(ctx context.Context, income *model.Income) error {
	if err := requireTx(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	income.ID = r.store.id()
	income.CreatedAt = time.Now()
	income.UpdatedAt = income.CreatedAt
	stored := *income
	stored.Category = nil
	r.store.incomes[income.ID] = stored
	return nil
}

func (r *fakeIncomeRepo) Update(ctx context.Context, income *model.Income) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := *income
	stored.Category = nil
	r.store.incomes[income.ID] = stored
	return nil
}

func (r *fakeIncomeRepo) Delete(ctx context.Context, id uint64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.incomes, id)
	return nil
}

func (r *fakeIncomeRepo) FindByID(ctx context.Context, id uint64) (*model.Income, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	in, ok := r.store.incomes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	in = r.withCategory(in)
	return &in, nil
}

func (r *fakeIncomeRepo) matching(f repository.LedgerListFilter) []model.Income {
	var out []model.Income
	for _, in := range r.store.incomes {
		if ledgerMatch(f, in.UserID, in.CategoryID, in.Description, in.TransactionDate) {
			out = append(out, r.withCategory(in))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *fakeIncomeRepo) List(ctx context.Context, filter repository.LedgerListFilter) ([]model.Income, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	matched := r.matching(filter)
	return paginate(matched, filter), int64(len(matched)), nil
}

func (r *fakeIncomeRepo) TotalsByCategory(ctx context.Context, filter repository.LedgerListFilter) ([]model.CategoryTotal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var entries []ledgerEntry
	for _, in := range r.matching(filter) {
		entries = append(entries, ledgerEntry{in.CategoryID, in.Amount})
	}
	return fakeTotals(r.store, entries), nil
}

// --- expense repository ---

type fakeExpenseRepo struct {
	store *memStore
}

func (r *fakeExpenseRepo) withCategory(e model.Expense) model.Expense {
	if c, ok := r.store.categories[e.CategoryID]; ok {
		e.Category = &c
	}
	return e
}

func (r *fakeExpenseRepo) Create(ctx context.Context, expense *model.Expense) error {
	if err := requireTx(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	expense.ID = r.store.id()
	expense.CreatedAt = time.Now()
	expense.UpdatedAt = expense.CreatedAt
	stored := *expense
	stored.Category = nil
	r.store.expenses[expense.ID] = stored
	return nil
}

func (r *fakeExpenseRepo) Update(ctx context.Context, expense *model.Expense) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := *expense
	stored.Category = nil
	r.store.expenses[expense.ID] = stored
	return nil
}

func (r *fakeExpenseRepo) Delete(ctx context.Context, id uint64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.expenses, id)
	return nil
}

func (r *fakeExpenseRepo) FindByID(ctx context.Context, id uint64) (*model.Expense, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.expenses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	e = r.withCategory(e)
	return &e, nil
}

func (r *fakeExpenseRepo) matching(f repository.LedgerListFilter) []model.Expense {
	var out []model.Expense
	for _, e := range r.store.expenses {
		if ledgerMatch(f, e.UserID, e.CategoryID, e.Description, e.TransactionDate) {
			out = append(out, r.withCategory(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *fakeExpenseRepo) List(ctx context.Context, filter repository.LedgerListFilter) ([]model.Expense, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	matched := r.matching(filter)
	return paginate(matched, filter), int64(len(matched)), nil
}

func (r *fakeExpenseRepo) TotalsByCategory(ctx context.Context, filter repository.LedgerListFilter) ([]model.CategoryTotal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var entries []ledgerEntry
	for _, e := range r.matching(filter) {
		entries = append(entries, ledgerEntry{e.CategoryID, e.Amount})
	}
	return fakeTotals(r.store, entries), nil
}

func (r *fakeExpenseRepo) SumForUser(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := decimal.Zero
	for _, e := range r.store.expenses {
		if e.UserID == userID && !e.TransactionDate.Before(start) && !e.TransactionDate.After(end) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (r *fakeExpenseRepo) ListBudgeted(ctx context.Context, userID uuid.UUID) ([]model.Expense, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []model.Expense
	for _, e := range r.store.expenses {
		if e.UserID == userID && e.BudgetLimit != nil {
			out = append(out, r.withCategory(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
