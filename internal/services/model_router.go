package services

// ModelRouter maps each pipeline stage to the gateway model that serves
// it. The mapping is static configuration injected at startup; the
// pipeline itself never picks models.
type ModelRouter struct {
	Analysis        string `json:"analysis"`
	Physics         string `json:"physics"`
	ImageGeneration string `json:"image_generation"`
}

// DefaultModelRouter returns the stock stage-to-model mapping: a fast
// text/vision model for garment analysis, a cheap text model for
// physics narration, and an image-capable model for view synthesis.
func DefaultModelRouter() ModelRouter {
	return ModelRouter{
		Analysis:        "google/gemini-3-flash-preview",
		Physics:         "google/gemini-2.5-flash",
		ImageGeneration: "google/gemini-3-pro-image-preview",
	}
}
