package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/types"
)

type BrandRepo interface {
	GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (*types.Brand, error)
	// EnsureForOwner returns the owner's brand, creating it with the
	// given name when none exists. The insert is conflict-safe on the
	// owner_id unique index, so concurrent first requests resolve to a
	// single row.
	EnsureForOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string) (*types.Brand, error)
	Update(ctx context.Context, tx *gorm.DB, brand *types.Brand) error
}

type brandRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBrandRepo(db *gorm.DB, baseLog *logger.Logger) BrandRepo {
	return &brandRepo{db: db, log: baseLog.With("repo", "BrandRepo")}
}

func (br *brandRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (*types.Brand, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var brand types.Brand
	err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (br *brandRepo) EnsureForOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string) (*types.Brand, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	candidate := &types.Brand{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    name,
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoNothing: true,
		}).
		Create(candidate).Error; err != nil {
		return nil, err
	}

	brand, err := br.GetByOwner(ctx, transaction, ownerID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, fmt.Errorf("brand for owner %s missing after upsert", ownerID)
	}
	return brand, nil
}

func (br *brandRepo) Update(ctx context.Context, tx *gorm.DB, brand *types.Brand) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).Save(brand).Error
}
