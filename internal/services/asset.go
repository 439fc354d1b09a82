package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/repos"
	"github.com/apexwear/motionstudio-backend/internal/types"
)

const defaultAssetListLimit = 100

type AssetService interface {
	// List returns the caller's generated assets, newest first. A user
	// with no brand yet gets an empty list.
	List(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID, limit int) ([]*types.Asset, error)
}

type assetService struct {
	log    *logger.Logger
	brands repos.BrandRepo
	assets repos.AssetRepo
}

func NewAssetService(log *logger.Logger, brands repos.BrandRepo, assets repos.AssetRepo) AssetService {
	return &assetService{
		log:    log.With("service", "AssetService"),
		brands: brands,
		assets: assets,
	}
}

func (as *assetService) List(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID, limit int) ([]*types.Asset, error) {
	brand, err := as.brands.GetByOwner(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return []*types.Asset{}, nil
	}
	if limit <= 0 {
		limit = defaultAssetListLimit
	}
	return as.assets.ListByBrand(ctx, nil, brand.ID, projectID, limit)
}
