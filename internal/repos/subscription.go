package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/types"
)

type SubscriptionRepo interface {
	GetByBrand(ctx context.Context, tx *gorm.DB, brandID uuid.UUID) (*types.Subscription, error)
	// IncrementCreditsUsed atomically adds credits to the brand's
	// subscription. Returns the number of rows touched; 0 means the
	// brand has no subscription, which callers treat as non-fatal.
	IncrementCreditsUsed(ctx context.Context, tx *gorm.DB, brandID uuid.UUID, credits int) (int64, error)
}

type subscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	return &subscriptionRepo{db: db, log: baseLog.With("repo", "SubscriptionRepo")}
}

func (sr *subscriptionRepo) GetByBrand(ctx context.Context, tx *gorm.DB, brandID uuid.UUID) (*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var sub types.Subscription
	err := transaction.WithContext(ctx).
		Where("brand_id = ?", brandID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (sr *subscriptionRepo) IncrementCreditsUsed(ctx context.Context, tx *gorm.DB, brandID uuid.UUID, credits int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.Subscription{}).
		Where("brand_id = ?", brandID).
		Update("credits_used", gorm.Expr("credits_used + ?", credits))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
