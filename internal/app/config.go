package app

import (
	"github.com/apexwear/motionstudio-backend/internal/platform/envutil"
	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/services"
)

type Config struct {
	JWTSecretKey string
	Port         string
	ModelRouter  services.ModelRouter
}

func LoadConfig(log *logger.Logger) Config {
	defaults := services.DefaultModelRouter()
	return Config{
		JWTSecretKey: envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		Port:         envutil.GetEnv("PORT", "8080", log),
		ModelRouter: services.ModelRouter{
			Analysis:        envutil.GetEnv("MODEL_ANALYSIS", defaults.Analysis, log),
			Physics:         envutil.GetEnv("MODEL_PHYSICS", defaults.Physics, log),
			ImageGeneration: envutil.GetEnv("MODEL_IMAGE_GENERATION", defaults.ImageGeneration, log),
		},
	}
}
