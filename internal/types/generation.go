package types

// AthleteParams describes the athlete the caller wants rendered.
type AthleteParams struct {
	Gender   string `json:"gender"`
	Size     string `json:"size"`
	BodyType string `json:"bodyType"`
}

// MotionParams describes the movement being performed.
type MotionParams struct {
	Movement  string `json:"movement"`
	Intensity int    `json:"intensity"`
}

// GarmentAnalysis is the structured output of the garment-analysis
// stage. Every field is always present; on upstream failure the stage
// substitutes a fixed default record.
type GarmentAnalysis struct {
	FabricType          string   `json:"fabric_type"`
	GarmentCategory     string   `json:"garment_category"`
	ColorPalette        []string `json:"color_palette"`
	StretchRating       float64  `json:"stretch_rating"`
	BreathabilityRating float64  `json:"breathability_rating"`
}

// PhysicsMetrics is the structured output of the physics-estimation
// stage. The values are model-inferred, not simulated; the contract is
// only that every field is always present and numeric fields stay in
// range.
type PhysicsMetrics struct {
	StretchFactor         string   `json:"stretch_factor"`
	CompressionPercentage float64  `json:"compression_percentage"`
	SweatAbsorption       float64  `json:"sweat_absorption"`
	BreathabilityScore    float64  `json:"breathability_score"`
	StressZones           []string `json:"stress_zones"`
	PerformanceNotes      string   `json:"performance_notes"`
}
