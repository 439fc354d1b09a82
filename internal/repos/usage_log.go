package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/types"
)

type UsageLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.UsageLog) (*types.UsageLog, error)
	ListByBrand(ctx context.Context, tx *gorm.DB, brandID uuid.UUID, limit int) ([]*types.UsageLog, error)
	CountByBrand(ctx context.Context, tx *gorm.DB, brandID uuid.UUID) (int64, error)
}

type usageLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUsageLogRepo(db *gorm.DB, baseLog *logger.Logger) UsageLogRepo {
	return &usageLogRepo{db: db, log: baseLog.With("repo", "UsageLogRepo")}
}

func (ur *usageLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.UsageLog) (*types.UsageLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (ur *usageLogRepo) ListByBrand(ctx context.Context, tx *gorm.DB, brandID uuid.UUID, limit int) ([]*types.UsageLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	query := transaction.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []*types.UsageLog
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *usageLogRepo) CountByBrand(ctx context.Context, tx *gorm.DB, brandID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UsageLog{}).
		Where("brand_id = ?", brandID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
