package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apexwear/motionstudio-backend/internal/http/middleware"
	"github.com/apexwear/motionstudio-backend/internal/http/response"
	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/services"
	"github.com/apexwear/motionstudio-backend/internal/types"
)

type GenerateHandler struct {
	log           *logger.Logger
	motionService services.MotionService
}

func NewGenerateHandler(log *logger.Logger, motionService services.MotionService) *GenerateHandler {
	return &GenerateHandler{
		log:           log.With("handler", "GenerateHandler"),
		motionService: motionService,
	}
}

type generateMotionRequest struct {
	GarmentName   string `json:"garmentName"`
	GarmentBase64 string `json:"garmentBase64"`
	Gender        string `json:"gender"`
	Size          string `json:"size"`
	BodyType      string `json:"bodyType"`
	Movement      string `json:"movement"`
	Intensity     int    `json:"intensity"`
	LogoBase64    string `json:"logoBase64"`
}

// POST /api/generate/motion
func (gh *GenerateHandler) GenerateMotion(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req generateMotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.GarmentName == "" || req.Movement == "" {
		response.RespondError(c, http.StatusBadRequest, "garmentName and movement are required")
		return
	}

	result, err := gh.motionService.Generate(c.Request.Context(), userID, services.GenerateMotionInput{
		GarmentName:  req.GarmentName,
		GarmentImage: req.GarmentBase64,
		Logo:         req.LogoBase64,
		Athlete: types.AthleteParams{
			Gender:   req.Gender,
			Size:     req.Size,
			BodyType: req.BodyType,
		},
		Motion: types.MotionParams{
			Movement:  req.Movement,
			Intensity: req.Intensity,
		},
	})
	if err != nil {
		gh.log.Error("Motion generation failed", "error", err)
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, result)
}
