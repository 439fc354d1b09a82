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

type ProjectRepo interface {
	GetByBrandAndName(ctx context.Context, tx *gorm.DB, brandID uuid.UUID, name string) (*types.Project, error)
	// EnsureForBrand returns the brand's project with the given name,
	// creating it when absent. Conflict-safe on (brand_id, name).
	EnsureForBrand(ctx context.Context, tx *gorm.DB, brandID uuid.UUID, name string) (*types.Project, error)
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return &projectRepo{db: db, log: baseLog.With("repo", "ProjectRepo")}
}

func (pr *projectRepo) GetByBrandAndName(ctx context.Context, tx *gorm.DB, brandID uuid.UUID, name string) (*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var project types.Project
	err := transaction.WithContext(ctx).
		Where("brand_id = ? AND name = ?", brandID, name).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (pr *projectRepo) EnsureForBrand(ctx context.Context, tx *gorm.DB, brandID uuid.UUID, name string) (*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	candidate := &types.Project{
		ID:      uuid.New(),
		BrandID: brandID,
		Name:    name,
		Status:  "active",
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "brand_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(candidate).Error; err != nil {
		return nil, err
	}

	project, err := pr.GetByBrandAndName(ctx, transaction, brandID, name)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %q for brand %s missing after upsert", name, brandID)
	}
	return project, nil
}
