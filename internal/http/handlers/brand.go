package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apexwear/motionstudio-backend/internal/http/middleware"
	"github.com/apexwear/motionstudio-backend/internal/http/response"
	"github.com/apexwear/motionstudio-backend/internal/services"
)

type BrandHandler struct {
	brandService services.BrandService
}

func NewBrandHandler(brandService services.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// GET /api/brand
func (bh *BrandHandler) GetBrand(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	brand, err := bh.brandService.Get(c.Request.Context(), userID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if brand == nil {
		response.RespondError(c, http.StatusNotFound, "brand not found")
		return
	}
	response.RespondOK(c, gin.H{"brand": brand})
}

// PUT /api/brand
// body: { "name": "...", "primary_color": "...", "secondary_color": "...", "mood_preset": "..." }
func (bh *BrandHandler) UpdateBrand(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name           *string `json:"name"`
		PrimaryColor   *string `json:"primary_color"`
		SecondaryColor *string `json:"secondary_color"`
		MoodPreset     *string `json:"mood_preset"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Name != nil && *req.Name == "" {
		response.RespondError(c, http.StatusBadRequest, "name cannot be empty")
		return
	}

	brand, err := bh.brandService.Update(c.Request.Context(), userID, services.UpdateBrandInput{
		Name:           req.Name,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		MoodPreset:     req.MoodPreset,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"brand": brand})
}
