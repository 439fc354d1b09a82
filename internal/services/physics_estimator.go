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

const physicsSystemPrompt = "You are a sportswear physics engine. Given garment details and movement, return JSON with: stretch_factor (e.g. '4x'), compression_percentage (0-100), sweat_absorption (0-100), breathability_score (0-100), stress_zones (array of strings), performance_notes (string, 1-2 sentences). Return ONLY valid JSON."

// PhysicsEstimator runs the second pipeline stage: estimate fabric
// behavior for the garment under the requested movement.
type PhysicsEstimator interface {
	// Estimate returns the physics metrics. Transport errors are
	// returned to the caller; unparseable content degrades to the
	// defaults, and parseable content is merged field-by-field over
	// them so a partial answer never loses the baseline values.
	Estimate(ctx context.Context, analysis types.GarmentAnalysis, athlete types.AthleteParams, motion types.MotionParams) (types.PhysicsMetrics, error)
}

// DefaultPhysicsMetrics is the baseline record the estimator merges
// model output into.
func DefaultPhysicsMetrics() types.PhysicsMetrics {
	return types.PhysicsMetrics{
		StretchFactor:         "4×",
		CompressionPercentage: 85,
		SweatAbsorption:       92,
		BreathabilityScore:    78,
		StressZones:           []string{"knees", "glutes", "waistband"},
		PerformanceNotes:      "Good stretch recovery under load. Compression zones maintain support during dynamic movement.",
	}
}

type physicsEstimator struct {
	log     *logger.Logger
	gateway gateway.Client
	model   string
}

func NewPhysicsEstimator(log *logger.Logger, gw gateway.Client, model string) PhysicsEstimator {
	return &physicsEstimator{
		log:     log.With("service", "PhysicsEstimator"),
		gateway: gw,
		model:   model,
	}
}

func (pe *physicsEstimator) Estimate(ctx context.Context, analysis types.GarmentAnalysis, athlete types.AthleteParams, motion types.MotionParams) (types.PhysicsMetrics, error) {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return types.PhysicsMetrics{}, err
	}
	userPrompt := fmt.Sprintf(
		"Garment: %s. Athlete: %s, size %s, %s build. Movement: %s at %d%% intensity. Calculate realistic physics metrics.",
		string(analysisJSON), athlete.Gender, athlete.Size, athlete.BodyType, motion.Movement, motion.Intensity,
	)

	text, err := pe.gateway.ChatText(ctx, pe.model, []gateway.Message{
		{Role: "system", Content: physicsSystemPrompt},
		{Role: "user", Content: userPrompt},
	})
	if err != nil {
		return types.PhysicsMetrics{}, err
	}

	metrics := DefaultPhysicsMetrics()
	obj, ok := jsonx.ExtractObject(text)
	if !ok {
		pe.log.Warn("Physics estimate returned no parseable JSON, using defaults", "movement", motion.Movement)
		return metrics, nil
	}
	raw, _ := json.Marshal(obj)
	if uErr := json.Unmarshal(raw, &metrics); uErr != nil {
		pe.log.Warn("Physics estimate JSON did not match contract, using defaults", "movement", motion.Movement, "error", uErr)
		return DefaultPhysicsMetrics(), nil
	}
	return metrics, nil
}
