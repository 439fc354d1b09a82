package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/repos"
	"github.com/apexwear/motionstudio-backend/internal/types"
)

const defaultUsageListLimit = 50

// UsageSummary is the usage-history response: recent log entries plus
// the brand's credit position. Subscription is nil when the brand has
// no subscription row.
type UsageSummary struct {
	Logs         []*types.UsageLog   `json:"logs"`
	TotalActions int64               `json:"total_actions"`
	Subscription *types.Subscription `json:"subscription,omitempty"`
}

type UsageService interface {
	// Summary returns the caller's usage history. A user with no brand
	// yet gets an empty summary.
	Summary(ctx context.Context, userID uuid.UUID) (*UsageSummary, error)
}

type usageService struct {
	log           *logger.Logger
	brands        repos.BrandRepo
	usageLogs     repos.UsageLogRepo
	subscriptions repos.SubscriptionRepo
}

func NewUsageService(log *logger.Logger, brands repos.BrandRepo, usageLogs repos.UsageLogRepo, subscriptions repos.SubscriptionRepo) UsageService {
	return &usageService{
		log:           log.With("service", "UsageService"),
		brands:        brands,
		usageLogs:     usageLogs,
		subscriptions: subscriptions,
	}
}

func (us *usageService) Summary(ctx context.Context, userID uuid.UUID) (*UsageSummary, error) {
	brand, err := us.brands.GetByOwner(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return &UsageSummary{Logs: []*types.UsageLog{}}, nil
	}

	logs, err := us.usageLogs.ListByBrand(ctx, nil, brand.ID, defaultUsageListLimit)
	if err != nil {
		return nil, err
	}
	total, err := us.usageLogs.CountByBrand(ctx, nil, brand.ID)
	if err != nil {
		return nil, err
	}
	sub, err := us.subscriptions.GetByBrand(ctx, nil, brand.ID)
	if err != nil {
		return nil, err
	}

	return &UsageSummary{
		Logs:         logs,
		TotalActions: total,
		Subscription: sub,
	}, nil
}
