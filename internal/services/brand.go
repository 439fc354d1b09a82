package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/repos"
	"github.com/apexwear/motionstudio-backend/internal/types"
)

// UpdateBrandInput carries the editable brand-profile fields. Nil means
// leave the field unchanged.
type UpdateBrandInput struct {
	Name           *string
	PrimaryColor   *string
	SecondaryColor *string
	MoodPreset     *string
}

type BrandService interface {
	// Get returns the caller's brand, or nil when none exists yet.
	Get(ctx context.Context, userID uuid.UUID) (*types.Brand, error)

	// Update applies the given fields to the caller's brand, creating
	// it first when the caller has none.
	Update(ctx context.Context, userID uuid.UUID, input UpdateBrandInput) (*types.Brand, error)
}

type brandService struct {
	log    *logger.Logger
	brands repos.BrandRepo
}

func NewBrandService(log *logger.Logger, brands repos.BrandRepo) BrandService {
	return &brandService{
		log:    log.With("service", "BrandService"),
		brands: brands,
	}
}

func (bs *brandService) Get(ctx context.Context, userID uuid.UUID) (*types.Brand, error) {
	return bs.brands.GetByOwner(ctx, nil, userID)
}

func (bs *brandService) Update(ctx context.Context, userID uuid.UUID, input UpdateBrandInput) (*types.Brand, error) {
	brand, err := bs.brands.EnsureForOwner(ctx, nil, userID, defaultBrandName)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		brand.Name = *input.Name
	}
	if input.PrimaryColor != nil {
		brand.PrimaryColor = *input.PrimaryColor
	}
	if input.SecondaryColor != nil {
		brand.SecondaryColor = *input.SecondaryColor
	}
	if input.MoodPreset != nil {
		brand.MoodPreset = *input.MoodPreset
	}

	if err := bs.brands.Update(ctx, nil, brand); err != nil {
		return nil, err
	}
	return brand, nil
}
