package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"accounting/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPartyTestService() (PartyService, *memStore) {
	store := newMemStore()
	svc := NewPartyService(&fakePartyRepo{store: store}, NewAuditService(&fakeAuditRepo{store: store}), &fakeTxManager{store: store})
	return svc, store
}

func strPtr(s string) *string { return &s }

func TestPartyService_CreateAndGet(t *testing.T) {
	svc, store := newPartyTestService()
	actor := Actor{UserID: uuid.New(), Role: model.RoleAccountant}

	created, err := svc.CreateParty(context.Background(), actor, CreatePartyRequest{
		PartyType: model.PartyTypeCustomer,
		Code:      "C001",
		Name:      "  Bangkok Foods  ",
		TaxID:     "0105551234567",
		Email:     "ap@bangkokfoods.co.th",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bangkok Foods", created.Name)
	assert.True(t, created.IsActive)

	got, err := svc.GetParty(context.Background(), strconv.FormatUint(created.ID, 10))
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, []string{model.ActionCreateParty}, store.auditActions())
}

func TestPartyService_CreateValidation(t *testing.T) {
	svc, store := newPartyTestService()
	actor := Actor{UserID: uuid.New(), Role: model.RoleAdmin}

	tests := []struct {
		name  string
		req   CreatePartyRequest
		field string
	}{
		{"blank name", CreatePartyRequest{PartyType: model.PartyTypeCustomer, Name: " "}, "name"},
		{"bad type", CreatePartyRequest{PartyType: "supplier", Name: "X"}, "party_type"},
		{"bad email", CreatePartyRequest{PartyType: model.PartyTypeVendor, Name: "X", Email: "not-an-email"}, "email"},
		{"short tax id", CreatePartyRequest{PartyType: model.PartyTypeVendor, Name: "X", TaxID: "12345"}, "tax_id"},
		{"non-digit tax id", CreatePartyRequest{PartyType: model.PartyTypeVendor, Name: "X", TaxID: "010555123456A"}, "tax_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateParty(context.Background(), actor, tt.req)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
	assert.Empty(t, store.parties)
}

func TestPartyService_UpdatePartial(t *testing.T) {
	svc, _ := newPartyTestService()
	actor := Actor{UserID: uuid.New(), Role: model.RoleAccountant}

	created, err := svc.CreateParty(context.Background(), actor, CreatePartyRequest{
		PartyType: model.PartyTypeCustomer, Name: "Chiang Mai Crafts", Phone: "053-111-222",
	})
	require.NoError(t, err)
	id := strconv.FormatUint(created.ID, 10)

	inactive := false
	updated, err := svc.UpdateParty(context.Background(), actor, id, UpdatePartyRequest{
		PartyType: strPtr(model.PartyTypeBoth),
		IsActive:  &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PartyTypeBoth, updated.PartyType)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Chiang Mai Crafts", updated.Name)
	assert.Equal(t, "053-111-222", updated.Phone)

	_, err = svc.UpdateParty(context.Background(), actor, id, UpdatePartyRequest{Name: strPtr("")})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.UpdateParty(context.Background(), actor, "404", UpdatePartyRequest{})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPartyService_DeleteAndList(t *testing.T) {
	svc, store := newPartyTestService()
	actor := Actor{UserID: uuid.New(), Role: model.RoleAdmin}

	customer, err := svc.CreateParty(context.Background(), actor, CreatePartyRequest{PartyType: model.PartyTypeCustomer, Name: "Alpha"})
	require.NoError(t, err)
	_, err = svc.CreateParty(context.Background(), actor, CreatePartyRequest{PartyType: model.PartyTypeVendor, Name: "Beta"})
	require.NoError(t, err)
	_, err = svc.CreateParty(context.Background(), actor, CreatePartyRequest{PartyType: model.PartyTypeBoth, Name: "Gamma"})
	require.NoError(t, err)

	customers, total, err := svc.ListParties(context.Background(), PartyFilter{PartyType: model.PartyTypeCustomer})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "Alpha", customers[0].Name)
	assert.Equal(t, "Gamma", customers[1].Name)

	_, _, err = svc.ListParties(context.Background(), PartyFilter{PartyType: "partner"})
	assert.True(t, errors.Is(err, ErrValidation))

	require.NoError(t, svc.DeleteParty(context.Background(), actor, strconv.FormatUint(customer.ID, 10)))
	assert.Len(t, store.parties, 2)
	assert.Contains(t, store.auditActions(), model.ActionDeleteParty)

	err = svc.DeleteParty(context.Background(), actor, strconv.FormatUint(customer.ID, 10))
	assert.True(t, errors.Is(err, ErrNotFound))
}
