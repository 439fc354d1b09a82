package app

import (
	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/services"
)

type Services struct {
	Motion services.MotionService
	Brand  services.BrandService
	Asset  services.AssetService
	Usage  services.UsageService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, reposet Repos) Services {
	log.Info("Wiring services...")

	analyzer := services.NewGarmentAnalyzer(log, clients.Gateway, cfg.ModelRouter.Analysis)
	physics := services.NewPhysicsEstimator(log, clients.Gateway, cfg.ModelRouter.Physics)
	synthesizer := services.NewImageSynthesizer(log, clients.Gateway, cfg.ModelRouter.ImageGeneration)

	motion := services.NewMotionService(
		log,
		analyzer,
		physics,
		synthesizer,
		cfg.ModelRouter,
		clients.Bucket,
		reposet.Brand,
		reposet.Project,
		reposet.Asset,
		reposet.UsageLog,
		reposet.Subscription,
	)

	return Services{
		Motion: motion,
		Brand:  services.NewBrandService(log, reposet.Brand),
		Asset:  services.NewAssetService(log, reposet.Brand, reposet.Asset),
		Usage:  services.NewUsageService(log, reposet.Brand, reposet.UsageLog, reposet.Subscription),
	}
}
