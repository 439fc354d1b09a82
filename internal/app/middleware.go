package app

import (
	httpMW "github.com/apexwear/motionstudio-backend/internal/http/middleware"
	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, clients Clients) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, clients.Identity),
	}
}
