package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"accounting/internal/model"
	"accounting/internal/repository"
	"accounting/pkg/pagination"

	"gorm.io/gorm"
)

// --- Party DTOs ---

type CreatePartyRequest struct {
	PartyType     string `json:"party_type" binding:"required"`
	Code          string `json:"code"`
	Name          string `json:"name" binding:"required"`
	TaxID         string `json:"tax_id"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	ContactPerson string `json:"contact_person"`
	Note          string `json:"note"`
}

type UpdatePartyRequest struct {
	PartyType     *string `json:"party_type"`
	Code          *string `json:"code"`
	Name          *string `json:"name"`
	TaxID         *string `json:"tax_id"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	ContactPerson *string `json:"contact_person"`
	Note          *string `json:"note"`
	IsActive      *bool   `json:"is_active"`
}

type PartyFilter struct {
	PartyType  string
	Search     string
	ActiveOnly bool
	Page       int
	Limit      int
}

type PartyResponse struct {
	ID            uint64    `json:"id"`
	PartyType     string    `json:"party_type"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	TaxID         string    `json:"tax_id"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	ContactPerson string    `json:"contact_person"`
	IsActive      bool      `json:"is_active"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// --- Interface ---

type PartyService interface {
	CreateParty(ctx context.Context, actor Actor, req CreatePartyRequest) (PartyResponse, error)
	UpdateParty(ctx context.Context, actor Actor, id string, req UpdatePartyRequest) (PartyResponse, error)
	DeleteParty(ctx context.Context, actor Actor, id string) error
	GetParty(ctx context.Context, id string) (PartyResponse, error)
	ListParties(ctx context.Context, filter PartyFilter) ([]PartyResponse, int64, error)
}

// --- Implementation ---

type partyService struct {
	partyRepo repository.PartyRepository
	audit     AuditService
	txManager repository.TransactionManager
}

func NewPartyService(partyRepo repository.PartyRepository, audit AuditService, txManager repository.TransactionManager) PartyService {
	return &partyService{partyRepo: partyRepo, audit: audit, txManager: txManager}
}

// --- Validation helpers ---

var validPartyTypes = map[string]bool{
	model.PartyTypeCustomer: true,
	model.PartyTypeVendor:   true,
	model.PartyTypeBoth:     true,
}

func validatePartyType(t string) error {
	if !validPartyTypes[t] {
		return NewValidationError("party_type", "must be one of: customer, vendor, both")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return NewValidationError("email", "invalid email format")
	}
	return nil
}

// Thai tax ids are 13 digits
func validateTaxID(taxID string) error {
	if taxID == "" {
		return nil
	}
	if len(taxID) != 13 {
		return NewValidationError("tax_id", "must be 13 digits")
	}
	for _, r := range taxID {
		if r < '0' || r > '9' {
			return NewValidationError("tax_id", "must be 13 digits")
		}
	}
	return nil
}

func parsePartyID(id string) (uint64, error) {
	partyID, err := strconv.ParseUint(id, 10, 64)
	if err != nil || partyID == 0 {
		return 0, NewValidationError("id", "invalid party id")
	}
	return partyID, nil
}

func (s *partyService) findParty(ctx context.Context, id uint64) (*model.Party, error) {
	party, err := s.partyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("party %d not found", id)
		}
		return nil, fmt.Errorf("failed to fetch party: %w", err)
	}
	return party, nil
}

// --- CRUD ---

func (s *partyService) CreateParty(ctx context.Context, actor Actor, req CreatePartyRequest) (PartyResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return PartyResponse{}, NewValidationError("name", "is required")
	}
	if err := validatePartyType(req.PartyType); err != nil {
		return PartyResponse{}, err
	}
	if err := validateEmail(req.Email); err != nil {
		return PartyResponse{}, err
	}
	if err := validateTaxID(req.TaxID); err != nil {
		return PartyResponse{}, err
	}

	party := &model.Party{
		PartyType:     req.PartyType,
		Code:          req.Code,
		Name:          req.Name,
		TaxID:         req.TaxID,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		ContactPerson: req.ContactPerson,
		Note:          req.Note,
		IsActive:      true,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.partyRepo.Create(txCtx, party); err != nil {
			return fmt.Errorf("failed to create party: %w", err)
		}
		return s.audit.Record(txCtx, &actor.UserID, model.ActionCreateParty, partyEntityID(party.ID), party.Name, req)
	})
	if err != nil {
		return PartyResponse{}, err
	}

	return toPartyResponse(*party), nil
}

func (s *partyService) UpdateParty(ctx context.Context, actor Actor, id string, req UpdatePartyRequest) (PartyResponse, error) {
	partyID, err := parsePartyID(id)
	if err != nil {
		return PartyResponse{}, err
	}

	party, err := s.findParty(ctx, partyID)
	if err != nil {
		return PartyResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return PartyResponse{}, NewValidationError("name", "cannot be empty")
		}
		party.Name = name
	}
	if req.PartyType != nil {
		if err := validatePartyType(*req.PartyType); err != nil {
			return PartyResponse{}, err
		}
		party.PartyType = *req.PartyType
	}
	if req.Email != nil {
		if err := validateEmail(*req.Email); err != nil {
			return PartyResponse{}, err
		}
		party.Email = *req.Email
	}
	if req.TaxID != nil {
		if err := validateTaxID(*req.TaxID); err != nil {
			return PartyResponse{}, err
		}
		party.TaxID = *req.TaxID
	}
	if req.Code != nil {
		party.Code = *req.Code
	}
	if req.Address != nil {
		party.Address = *req.Address
	}
	if req.Phone != nil {
		party.Phone = *req.Phone
	}
	if req.ContactPerson != nil {
		party.ContactPerson = *req.ContactPerson
	}
	if req.Note != nil {
		party.Note = *req.Note
	}
	if req.IsActive != nil {
		party.IsActive = *req.IsActive
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.partyRepo.Update(txCtx, party); err != nil {
			return fmt.Errorf("failed to update party: %w", err)
		}
		return s.audit.Record(txCtx, &actor.UserID, model.ActionUpdateParty, partyEntityID(party.ID), party.Name, req)
	})
	if err != nil {
		return PartyResponse{}, err
	}

	return toPartyResponse(*party), nil
}

// DeleteParty removes the registry entry. Invoices keep their customer snapshot.
func (s *partyService) DeleteParty(ctx context.Context, actor Actor, id string) error {
	partyID, err := parsePartyID(id)
	if err != nil {
		return err
	}

	party, err := s.findParty(ctx, partyID)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.partyRepo.Delete(txCtx, partyID); err != nil {
			return fmt.Errorf("failed to delete party: %w", err)
		}
		return s.audit.Record(txCtx, &actor.UserID, model.ActionDeleteParty, partyEntityID(partyID), party.Name, nil)
	})
}

func (s *partyService) GetParty(ctx context.Context, id string) (PartyResponse, error) {
	partyID, err := parsePartyID(id)
	if err != nil {
		return PartyResponse{}, err
	}
	party, err := s.findParty(ctx, partyID)
	if err != nil {
		return PartyResponse{}, err
	}
	return toPartyResponse(*party), nil
}

func (s *partyService) ListParties(ctx context.Context, filter PartyFilter) ([]PartyResponse, int64, error) {
	if filter.PartyType != "" {
		if err := validatePartyType(filter.PartyType); err != nil {
			return nil, 0, err
		}
	}
	p := pagination.New(filter.Page, filter.Limit)

	parties, total, err := s.partyRepo.List(ctx, repository.PartyListFilter{
		PartyType:  filter.PartyType,
		Search:     strings.TrimSpace(filter.Search),
		ActiveOnly: filter.ActiveOnly,
		Page:       p.Page,
		Limit:      p.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch parties: %w", err)
	}

	res := make([]PartyResponse, 0, len(parties))
	for _, p := range parties {
		res = append(res, toPartyResponse(p))
	}

	return res, total, nil
}

func partyEntityID(id uint64) string {
	return "party:" + strconv.FormatUint(id, 10)
}

// --- Response mappers ---

func toPartyResponse(p model.Party) PartyResponse {
	return PartyResponse{
		ID:            p.ID,
		PartyType:     p.PartyType,
		Code:          p.Code,
		Name:          p.Name,
		TaxID:         p.TaxID,
		Address:       p.Address,
		Phone:         p.Phone,
		Email:         p.Email,
		ContactPerson: p.ContactPerson,
		IsActive:      p.IsActive,
		Note:          p.Note,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
