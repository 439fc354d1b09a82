package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apexwear/motionstudio-backend/internal/clients/gateway"
	"github.com/apexwear/motionstudio-backend/internal/pkg/jsonx"
	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/types"
)

const garmentAnalysisSystemPrompt = "You are an expert sportswear analyst. Analyze the garment image and return a brief JSON with: fabric_type, garment_category, color_palette (array of hex), stretch_rating (1-10), breathability_rating (1-10). Return ONLY valid JSON."

// GarmentAnalyzer runs the first pipeline stage: describe the garment
// from its name and optional photo.
type GarmentAnalyzer interface {
	// Analyze returns the structured analysis. Transport errors are
	// returned to the caller (so quota signals can surface); content
	// that cannot be parsed degrades to the default record with a nil
	// error.
	Analyze(ctx context.Context, garmentName, garmentImage string) (types.GarmentAnalysis, error)
}

// DefaultGarmentAnalysis is the fallback record used when the analysis
// stage fails or its output cannot be parsed.
func DefaultGarmentAnalysis() types.GarmentAnalysis {
	return types.GarmentAnalysis{
		FabricType:          "polyester-elastane blend",
		GarmentCategory:     "activewear",
		ColorPalette:        []string{"#1a1a1a", "#00FF85"},
		StretchRating:       8,
		BreathabilityRating: 7,
	}
}

type garmentAnalyzer struct {
	log     *logger.Logger
	gateway gateway.Client
	model   string
}

func NewGarmentAnalyzer(log *logger.Logger, gw gateway.Client, model string) GarmentAnalyzer {
	return &garmentAnalyzer{
		log:     log.With("service", "GarmentAnalyzer"),
		gateway: gw,
		model:   model,
	}
}

func (ga *garmentAnalyzer) Analyze(ctx context.Context, garmentName, garmentImage string) (types.GarmentAnalysis, error) {
	messages := []gateway.Message{
		{Role: "system", Content: garmentAnalysisSystemPrompt},
		ga.userMessage(garmentName, garmentImage),
	}

	text, err := ga.gateway.ChatText(ctx, ga.model, messages)
	if err != nil {
		return types.GarmentAnalysis{}, err
	}

	obj, ok := jsonx.ExtractObject(text)
	if !ok {
		ga.log.Warn("Garment analysis returned no parseable JSON, using defaults", "garment", garmentName)
		return DefaultGarmentAnalysis(), nil
	}

	analysis := DefaultGarmentAnalysis()
	raw, _ := json.Marshal(obj)
	if uErr := json.Unmarshal(raw, &analysis); uErr != nil {
		ga.log.Warn("Garment analysis JSON did not match contract, using defaults", "garment", garmentName, "error", uErr)
		return DefaultGarmentAnalysis(), nil
	}
	return analysis, nil
}

func (ga *garmentAnalyzer) userMessage(garmentName, garmentImage string) gateway.Message {
	if garmentImage != "" {
		return gateway.Message{
			Role: "user",
			Content: []gateway.ContentPart{
				gateway.TextPart(fmt.Sprintf("Analyze this sportswear garment called %q.", garmentName)),
				gateway.ImagePart(garmentImage),
			},
		}
	}
	return gateway.Message{
		Role:    "user",
		Content: fmt.Sprintf("Analyze a sportswear garment called %q. It's a typical activewear piece. Return analysis JSON.", garmentName),
	}
}
