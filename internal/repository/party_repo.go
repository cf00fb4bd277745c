package repository

import (
	"context"

	"accounting/internal/model"

	"gorm.io/gorm"
)

// PartyListFilter narrows List. Zero values mean "no filter".
type PartyListFilter struct {
	PartyType  string
	Search     string
	ActiveOnly bool
	Page       int
	Limit      int
}

type PartyRepository interface {
	Create(ctx context.Context, party *model.Party) error
	Update(ctx context.Context, party *model.Party) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*model.Party, error)
	List(ctx context.Context, filter PartyListFilter) ([]model.Party, int64, error)
}

type partyRepository struct {
	db *gorm.DB
}

func NewPartyRepository(db *gorm.DB) PartyRepository {
	return &partyRepository{db: db}
}

func (r *partyRepository) Create(ctx context.Context, party *model.Party) error {
	return GetDB(ctx, r.db).Create(party).Error
}

func (r *partyRepository) Update(ctx context.Context, party *model.Party) error {
	return GetDB(ctx, r.db).Save(party).Error
}

func (r *partyRepository) Delete(ctx context.Context, id uint64) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Party{}).Error
}

func (r *partyRepository) FindByID(ctx context.Context, id uint64) (*model.Party, error) {
	var party model.Party
	if err := GetDB(ctx, r.db).First(&party, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &party, nil
}

func (r *partyRepository) List(ctx context.Context, filter PartyListFilter) ([]model.Party, int64, error) {
	var parties []model.Party
	var total int64

	db := GetDB(ctx, r.db)
	scope := func(q *gorm.DB) *gorm.DB {
		if filter.PartyType != "" {
			// "both" parties show up under either side
			q = q.Where("party_type IN ?", []string{filter.PartyType, model.PartyTypeBoth})
		}
		if filter.ActiveOnly {
			q = q.Where("is_active = ?", true)
		}
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			q = q.Where("name ILIKE ? OR code ILIKE ? OR tax_id ILIKE ? OR phone ILIKE ?", like, like, like, like)
		}
		return q
	}

	if err := db.Model(&model.Party{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := db.Scopes(scope).Order("name ASC").Offset(offset).Limit(filter.Limit).Find(&parties).Error; err != nil {
		return nil, 0, err
	}

	return parties, total, nil
}
