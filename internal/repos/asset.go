package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/types"
)

type AssetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, asset *types.Asset) (*types.Asset, error)
	GetByID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) (*types.Asset, error)
	ListByBrand(ctx context.Context, tx *gorm.DB, brandID uuid.UUID, projectID *uuid.UUID, limit int) ([]*types.Asset, error)
}

type assetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return &assetRepo{db: db, log: baseLog.With("repo", "AssetRepo")}
}

func (ar *assetRepo) Create(ctx context.Context, tx *gorm.DB, asset *types.Asset) (*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

func (ar *assetRepo) GetByID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) (*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var asset types.Asset
	if err := transaction.WithContext(ctx).
		Where("id = ?", assetID).
		First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (ar *assetRepo) ListByBrand(ctx context.Context, tx *gorm.DB, brandID uuid.UUID, projectID *uuid.UUID, limit int) ([]*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	query := transaction.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Order("created_at DESC")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []*types.Asset
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
