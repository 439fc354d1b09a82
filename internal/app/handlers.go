package app

import (
	httpH "github.com/apexwear/motionstudio-backend/internal/http/handlers"
	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
)

type Handlers struct {
	Generate *httpH.GenerateHandler
	Asset    *httpH.AssetHandler
	Brand    *httpH.BrandHandler
	Usage    *httpH.UsageHandler
	Health   *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Generate: httpH.NewGenerateHandler(log, serviceset.Motion),
		Asset:    httpH.NewAssetHandler(serviceset.Asset),
		Brand:    httpH.NewBrandHandler(serviceset.Brand),
		Usage:    httpH.NewUsageHandler(serviceset.Usage),
		Health:   httpH.NewHealthHandler(),
	}
}
