package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apexwear/motionstudio-backend/internal/http/middleware"
	"github.com/apexwear/motionstudio-backend/internal/http/response"
	"github.com/apexwear/motionstudio-backend/internal/services"
)

type UsageHandler struct {
	usageService services.UsageService
}

func NewUsageHandler(usageService services.UsageService) *UsageHandler {
	return &UsageHandler{usageService: usageService}
}

// GET /api/usage
func (uh *UsageHandler) GetUsage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := uh.usageService.Summary(c.Request.Context(), userID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, summary)
}
