package service

import (
	"context"
	"errors"
	"fmt"

	"accounting/internal/model"
	"accounting/internal/repository"

	"gorm.io/gorm"
)

// CustomerSnapshot is the customer data copied onto an invoice.
type CustomerSnapshot struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
}

// CustomerDirectory resolves a customer id into the snapshot stored on invoices.
type CustomerDirectory interface {
	Lookup(ctx context.Context, customerID uint64) (CustomerSnapshot, error)
}

type partyDirectory struct {
	partyRepo repository.PartyRepository
}

// NewPartyDirectory looks customers up in the parties table
func NewPartyDirectory(partyRepo repository.PartyRepository) CustomerDirectory {
	return &partyDirectory{partyRepo: partyRepo}
}

func (d *partyDirectory) Lookup(ctx context.Context, customerID uint64) (CustomerSnapshot, error) {
	party, err := d.partyRepo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CustomerSnapshot{}, NewValidationError("customer_id", fmt.Sprintf("customer %d does not exist", customerID))
		}
		return CustomerSnapshot{}, fmt.Errorf("failed to look up customer: %w", err)
	}
	if party.PartyType == model.PartyTypeVendor {
		return CustomerSnapshot{}, NewValidationError("customer_id", fmt.Sprintf("party %d is a vendor, not a customer", customerID))
	}
	if !party.IsActive {
		return CustomerSnapshot{}, NewValidationError("customer_id", fmt.Sprintf("customer %d is inactive", customerID))
	}

	return CustomerSnapshot{
		Name:    party.Name,
		TaxID:   party.TaxID,
		Address: party.Address,
		Phone:   party.Phone,
	}, nil
}
