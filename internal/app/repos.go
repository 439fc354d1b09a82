package app

import (
	"gorm.io/gorm"

	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/repos"
)

type Repos struct {
	Brand        repos.BrandRepo
	Project      repos.ProjectRepo
	Asset        repos.AssetRepo
	UsageLog     repos.UsageLogRepo
	Subscription repos.SubscriptionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Brand:        repos.NewBrandRepo(db, log),
		Project:      repos.NewProjectRepo(db, log),
		Asset:        repos.NewAssetRepo(db, log),
		UsageLog:     repos.NewUsageLogRepo(db, log),
		Subscription: repos.NewSubscriptionRepo(db, log),
	}
}
