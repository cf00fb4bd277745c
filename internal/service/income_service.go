package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"accounting/internal/model"
	"accounting/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateIncomeRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transaction_date"`
	ReferenceNumber string          `json:"reference_number"`
	PaymentMethod   string          `json:"payment_method"`
	Notes           string          `json:"notes"`
	CategoryID      uint64          `json:"category_id"`
}

type UpdateIncomeRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	Description     *string          `json:"description"`
	TransactionDate *string          `json:"transaction_date"`
	ReferenceNumber *string          `json:"reference_number"`
	PaymentMethod   *string          `json:"payment_method"`
	Notes           *string          `json:"notes"`
	CategoryID      *uint64          `json:"category_id"`
}

type IncomeResponse struct {
	ID              uint64          `json:"id"`
	Amount          string          `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transaction_date"`
	ReferenceNumber string          `json:"reference_number"`
	PaymentMethod   string          `json:"payment_method"`
	Notes           string          `json:"notes"`
	CategoryID      uint64          `json:"category_id"`
	Category        *LedgerCategory `json:"category,omitempty"`
	UserID          string          `json:"user_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// --- Interface ---

type IncomeService interface {
	CreateIncome(ctx context.Context, actor Actor, req CreateIncomeRequest) (IncomeResponse, error)
	UpdateIncome(ctx context.Context, actor Actor, id string, req UpdateIncomeRequest) (IncomeResponse, error)
	DeleteIncome(ctx context.Context, actor Actor, id string) error
	GetIncome(ctx context.Context, id string) (IncomeResponse, error)
	ListIncomes(ctx context.Context, filter LedgerFilter) ([]IncomeResponse, int64, error)
	GetIncomeSummary(ctx context.Context, filter LedgerFilter) (LedgerSummaryResponse, error)
}

// --- Implementation ---

type incomeService struct {
	incomeRepo   repository.IncomeRepository
	categoryRepo repository.CategoryRepository
	audit        AuditService
	txManager    repository.TransactionManager
	now          func() time.Time
}

func NewIncomeService(
	incomeRepo repository.IncomeRepository,
	categoryRepo repository.CategoryRepository,
	audit AuditService,
	txManager repository.TransactionManager,
) IncomeService {
	return &incomeService{
		incomeRepo:   incomeRepo,
		categoryRepo: categoryRepo,
		audit:        audit,
		txManager:    txManager,
		now:          time.Now,
	}
}

func incomeEntityID(id uint64) string {
	return "income:" + strconv.FormatUint(id, 10)
}

func (s *incomeService) find(ctx context.Context, id uint64) (*model.Income, error) {
	income, err := s.incomeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("income %d not found", id)
		}
		return nil, fmt.Errorf("failed to fetch income: %w", err)
	}
	return income, nil
}

func (s *incomeService) CreateIncome(ctx context.Context, actor Actor, req CreateIncomeRequest) (IncomeResponse, error) {
	if err := validateAmount("amount", req.Amount); err != nil {
		return IncomeResponse{}, err
	}
	desc, err := normalizeDescription(req.Description)
	if err != nil {
		return IncomeResponse{}, err
	}
	txDate, err := parseTransactionDate(req.TransactionDate, s.now())
	if err != nil {
		return IncomeResponse{}, err
	}
	method, err := normalizePaymentMethod(req.PaymentMethod)
	if err != nil {
		return IncomeResponse{}, err
	}
	ref := strings.TrimSpace(req.ReferenceNumber)
	if err := validateMaxLen("reference_number", ref, maxReferenceLen); err != nil {
		return IncomeResponse{}, err
	}

	income := &model.Income{
		Amount:          req.Amount,
		Description:     desc,
		TransactionDate: txDate,
		ReferenceNumber: ref,
		PaymentMethod:   method,
		Notes:           req.Notes,
		CategoryID:      req.CategoryID,
		UserID:          actor.UserID,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		category, err := requireCategory(txCtx, s.categoryRepo, req.CategoryID, model.CategoryTypeIncome)
		if err != nil {
			return err
		}
		if err := s.incomeRepo.Create(txCtx, income); err != nil {
			return fmt.Errorf("failed to create income: %w", err)
		}
		income.Category = category
		return s.audit.Record(txCtx, &actor.UserID, model.ActionCreateIncome, incomeEntityID(income.ID), desc, req)
	})
	if err != nil {
		return IncomeResponse{}, err
	}

	return toIncomeResponse(income), nil
}

func (s *incomeService) UpdateIncome(ctx context.Context, actor Actor, id string, req UpdateIncomeRequest) (IncomeResponse, error) {
	incomeID, err := parseEntryID("income", id)
	if err != nil {
		return IncomeResponse{}, err
	}

	var income *model.Income
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		income, err = s.find(txCtx, incomeID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && income.UserID != actor.UserID {
			return forbidden("you are not allowed to edit this income")
		}
		if err := s.applyUpdate(txCtx, income, req); err != nil {
			return err
		}
		if err := s.incomeRepo.Update(txCtx, income); err != nil {
			return fmt.Errorf("failed to update income: %w", err)
		}
		return s.audit.Record(txCtx, &actor.UserID, model.ActionUpdateIncome, incomeEntityID(incomeID), income.Description, req)
	})
	if err != nil {
		return IncomeResponse{}, err
	}

	return toIncomeResponse(income), nil
}

func (s *incomeService) applyUpdate(ctx context.Context, income *model.Income, req UpdateIncomeRequest) error {
	if req.Amount != nil {
		if err := validateAmount("amount", *req.Amount); err != nil {
			return err
		}
		income.Amount = *req.Amount
	}
	if req.Description != nil {
		desc, err := normalizeDescription(*req.Description)
		if err != nil {
			return err
		}
		income.Description = desc
	}
	if req.TransactionDate != nil {
		d, err := time.Parse(dateLayout, *req.TransactionDate)
		if err != nil {
			return NewValidationError("transaction_date", "must be YYYY-MM-DD")
		}
		income.TransactionDate = d
	}
	if req.ReferenceNumber != nil {
		ref := strings.TrimSpace(*req.ReferenceNumber)
		if err := validateMaxLen("reference_number", ref, maxReferenceLen); err != nil {
			return err
		}
		income.ReferenceNumber = ref
	}
	if req.PaymentMethod != nil {
		method, err := normalizePaymentMethod(*req.PaymentMethod)
		if err != nil {
			return err
		}
		income.PaymentMethod = method
	}
	if req.Notes != nil {
		income.Notes = *req.Notes
	}
	if req.CategoryID != nil && *req.CategoryID != income.CategoryID {
		category, err := requireCategory(ctx, s.categoryRepo, *req.CategoryID, model.CategoryTypeIncome)
		if err != nil {
			return err
		}
		income.CategoryID = category.ID
		income.Category = category
	}
	return nil
}

func (s *incomeService) DeleteIncome(ctx context.Context, actor Actor, id string) error {
	incomeID, err := parseEntryID("income", id)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		income, err := s.find(txCtx, incomeID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && income.UserID != actor.UserID {
			return forbidden("you are not allowed to delete this income")
		}
		if err := s.incomeRepo.Delete(txCtx, incomeID); err != nil {
			return fmt.Errorf("failed to delete income: %w", err)
		}
		return s.audit.Record(txCtx, &actor.UserID, model.ActionDeleteIncome, incomeEntityID(incomeID), income.Description,
			map[string]string{"amount": income.Amount.StringFixed(2)})
	})
}

func (s *incomeService) GetIncome(ctx context.Context, id string) (IncomeResponse, error) {
	incomeID, err := parseEntryID("income", id)
	if err != nil {
		return IncomeResponse{}, err
	}
	income, err := s.find(ctx, incomeID)
	if err != nil {
		return IncomeResponse{}, err
	}
	return toIncomeResponse(income), nil
}

func (s *incomeService) ListIncomes(ctx context.Context, filter LedgerFilter) ([]IncomeResponse, int64, error) {
	repoFilter, err := filter.toListFilter()
	if err != nil {
		return nil, 0, err
	}

	incomes, total, err := s.incomeRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch incomes: %w", err)
	}

	res := make([]IncomeResponse, 0, len(incomes))
	for i := range incomes {
		res = append(res, toIncomeResponse(&incomes[i]))
	}
	return res, total, nil
}

func (s *incomeService) GetIncomeSummary(ctx context.Context, filter LedgerFilter) (LedgerSummaryResponse, error) {
	repoFilter, err := filter.toListFilter()
	if err != nil {
		return LedgerSummaryResponse{}, err
	}

	totals, err := s.incomeRepo.TotalsByCategory(ctx, repoFilter)
	if err != nil {
		return LedgerSummaryResponse{}, err
	}
	return toLedgerSummary(repoFilter, totals), nil
}

func toIncomeResponse(in *model.Income) IncomeResponse {
	return IncomeResponse{
		ID:              in.ID,
		Amount:          in.Amount.StringFixed(2),
		Description:     in.Description,
		TransactionDate: in.TransactionDate.Format(dateLayout),
		ReferenceNumber: in.ReferenceNumber,
		PaymentMethod:   in.PaymentMethod,
		Notes:           in.Notes,
		CategoryID:      in.CategoryID,
		Category:        toLedgerCategory(in.Category),
		UserID:          in.UserID.String(),
		CreatedAt:       in.CreatedAt,
		UpdatedAt:       in.UpdatedAt,
	}
}
