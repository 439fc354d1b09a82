package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/apexwear/motionstudio-backend/internal/http/middleware"
	"github.com/apexwear/motionstudio-backend/internal/http/response"
	"github.com/apexwear/motionstudio-backend/internal/services"
)

type AssetHandler struct {
	assetService services.AssetService
}

func NewAssetHandler(assetService services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// GET /api/assets?project_id=<uuid>&limit=<n>
func (ah *AssetHandler) ListAssets(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var projectID *uuid.UUID
	if raw := c.Query("project_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid project_id")
			return
		}
		projectID = &parsed
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	assets, err := ah.assetService.List(c.Request.Context(), userID, projectID, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"assets": assets})
}
