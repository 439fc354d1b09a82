package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/apexwear/motionstudio-backend/internal/http/handlers"
	httpMW "github.com/apexwear/motionstudio-backend/internal/http/middleware"
	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware

	GenerateHandler *httpH.GenerateHandler
	AssetHandler    *httpH.AssetHandler
	BrandHandler    *httpH.BrandHandler
	UsageHandler    *httpH.UsageHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Generation pipeline
		if cfg.GenerateHandler != nil {
			protected.POST("/generate/motion", cfg.GenerateHandler.GenerateMotion)
		}

		// Assets
		if cfg.AssetHandler != nil {
			protected.GET("/assets", cfg.AssetHandler.ListAssets)
		}

		// Brand profile
		if cfg.BrandHandler != nil {
			protected.GET("/brand", cfg.BrandHandler.GetBrand)
			protected.PUT("/brand", cfg.BrandHandler.UpdateBrand)
		}

		// Usage history
		if cfg.UsageHandler != nil {
			protected.GET("/usage", cfg.UsageHandler.GetUsage)
		}
	}

	return r
}
