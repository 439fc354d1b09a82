package app

import (
	"github.com/gin-gonic/gin"

	httpServer "github.com/apexwear/motionstudio-backend/internal/http"
	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, handlerset Handlers, middleware Middleware) *gin.Engine {
	log.Info("Wiring router...")
	return httpServer.NewRouter(httpServer.RouterConfig{
		Log:            log,
		AuthMiddleware: middleware.Auth,

		GenerateHandler: handlerset.Generate,
		AssetHandler:    handlerset.Asset,
		BrandHandler:    handlerset.Brand,
		UsageHandler:    handlerset.Usage,
		HealthHandler:   handlerset.Health,
	})
}
