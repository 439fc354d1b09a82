package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/apexwear/motionstudio-backend/internal/platform/apierr"
	"github.com/apexwear/motionstudio-backend/internal/platform/gcp"
	"github.com/apexwear/motionstudio-backend/internal/platform/httpx"
	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/repos"
	"github.com/apexwear/motionstudio-backend/internal/types"
)

const (
	defaultBrandName   = "My Brand"
	defaultProjectName = "Default Project"

	rateLimitMessage  = "Rate limit reached. Please wait a moment and try again."
	creditsOutMessage = "AI credits exhausted. Please add credits in Settings → Workspace → Usage."
)

// GenerateMotionInput is the validated request for one pipeline run.
// GarmentImage and Logo are data URIs when present.
type GenerateMotionInput struct {
	GarmentName  string
	GarmentImage string
	Logo         string
	Athlete      types.AthleteParams
	Motion       types.MotionParams
}

// GenerateMotionResult is the pipeline's response body. Images keeps
// the raw per-angle results, nulls included; StoredURLs holds only the
// angles whose image made it into object storage.
type GenerateMotionResult struct {
	Success         bool                  `json:"success"`
	GarmentAnalysis types.GarmentAnalysis `json:"garment_analysis"`
	Physics         types.PhysicsMetrics  `json:"physics"`
	Images          map[string]*string    `json:"images"`
	StoredURLs      map[string]string     `json:"stored_urls"`
	ModelRouter     ModelRouter           `json:"model_router"`
}

// MotionService orchestrates the four pipeline stages: analysis,
// physics, image synthesis, persistence.
type MotionService interface {
	Generate(ctx context.Context, userID uuid.UUID, input GenerateMotionInput) (*GenerateMotionResult, error)
}

type motionService struct {
	log           *logger.Logger
	analyzer      GarmentAnalyzer
	physics       PhysicsEstimator
	synthesizer   ImageSynthesizer
	router        ModelRouter
	bucket        gcp.BucketService
	brands        repos.BrandRepo
	projects      repos.ProjectRepo
	assets        repos.AssetRepo
	usageLogs     repos.UsageLogRepo
	subscriptions repos.SubscriptionRepo
}

func NewMotionService(
	log *logger.Logger,
	analyzer GarmentAnalyzer,
	physics PhysicsEstimator,
	synthesizer ImageSynthesizer,
	router ModelRouter,
	bucket gcp.BucketService,
	brands repos.BrandRepo,
	projects repos.ProjectRepo,
	assets repos.AssetRepo,
	usageLogs repos.UsageLogRepo,
	subscriptions repos.SubscriptionRepo,
) MotionService {
	return &motionService{
		log:           log.With("service", "MotionService"),
		analyzer:      analyzer,
		physics:       physics,
		synthesizer:   synthesizer,
		router:        router,
		bucket:        bucket,
		brands:        brands,
		projects:      projects,
		assets:        assets,
		usageLogs:     usageLogs,
		subscriptions: subscriptions,
	}
}

func (ms *motionService) Generate(ctx context.Context, userID uuid.UUID, input GenerateMotionInput) (*GenerateMotionResult, error) {
	ms.log.Info("Starting motion generation",
		"user_id", userID.String(),
		"garment", input.GarmentName,
		"movement", input.Motion.Movement,
		"intensity", input.Motion.Intensity)

	analysis, err := ms.analyzer.Analyze(ctx, input.GarmentName, input.GarmentImage)
	if err != nil {
		if qErr := quotaError(err); qErr != nil {
			return nil, qErr
		}
		ms.log.Error("Garment analysis failed, using defaults", "error", err)
		analysis = DefaultGarmentAnalysis()
	}

	physics, err := ms.physics.Estimate(ctx, analysis, input.Athlete, input.Motion)
	if err != nil {
		if qErr := quotaError(err); qErr != nil {
			return nil, qErr
		}
		ms.log.Error("Physics estimation failed, using defaults", "error", err)
		physics = DefaultPhysicsMetrics()
	}

	images, err := ms.synthesizer.Synthesize(ctx, input.Athlete, input.Motion)
	if err != nil {
		if qErr := quotaError(err); qErr != nil {
			return nil, qErr
		}
		return nil, err
	}

	brand, project := ms.resolveWorkspace(ctx, userID, input)

	storedURLs := ms.storeImages(ctx, userID, images)

	if brand != nil && project != nil {
		ms.writeAsset(ctx, brand, project, input, analysis, physics, storedURLs)
	}

	return &GenerateMotionResult{
		Success:         true,
		GarmentAnalysis: analysis,
		Physics:         physics,
		Images:          images,
		StoredURLs:      storedURLs,
		ModelRouter:     ms.router,
	}, nil
}

// resolveWorkspace lazily materializes the caller's brand and default
// project, then records usage against them. Failures here degrade to
// non-persisted results rather than aborting the pipeline.
func (ms *motionService) resolveWorkspace(ctx context.Context, userID uuid.UUID, input GenerateMotionInput) (*types.Brand, *types.Project) {
	brand, err := ms.brands.EnsureForOwner(ctx, nil, userID, defaultBrandName)
	if err != nil {
		ms.log.Error("Brand resolution failed, results will not be persisted", "user_id", userID.String(), "error", err)
		return nil, nil
	}

	project, err := ms.projects.EnsureForBrand(ctx, nil, brand.ID, defaultProjectName)
	if err != nil {
		ms.log.Error("Project resolution failed, results will not be persisted", "brand_id", brand.ID.String(), "error", err)
		project = nil
	}

	metadata, _ := json.Marshal(map[string]any{
		"movement":    input.Motion.Movement,
		"intensity":   input.Motion.Intensity,
		"gender":      input.Athlete.Gender,
		"size":        input.Athlete.Size,
		"bodyType":    input.Athlete.BodyType,
		"garmentName": input.GarmentName,
	})
	if _, err := ms.usageLogs.Create(ctx, nil, &types.UsageLog{
		UserID:      userID,
		BrandID:     brand.ID,
		Action:      types.ActionGenerateMotion,
		CreditsUsed: 1,
		Metadata:    datatypes.JSON(metadata),
	}); err != nil {
		ms.log.Error("Usage log write failed", "brand_id", brand.ID.String(), "error", err)
	}

	rows, err := ms.subscriptions.IncrementCreditsUsed(ctx, nil, brand.ID, 1)
	if err != nil {
		ms.log.Error("Credit increment failed", "brand_id", brand.ID.String(), "error", err)
	} else if rows == 0 {
		ms.log.Debug("No subscription row for brand, credit increment skipped", "brand_id", brand.ID.String())
	}

	if input.Logo != "" && brand.LogoURL == "" {
		ms.attachLogo(ctx, brand, input.Logo)
	}

	return brand, project
}

// attachLogo uploads a caller-provided logo for a brand that has none
// yet. Best effort; the pipeline result does not depend on it.
func (ms *motionService) attachLogo(ctx context.Context, brand *types.Brand, logo string) {
	data, ok := decodeDataURI(logo)
	if !ok {
		return
	}
	key := fmt.Sprintf("%s/logo_%d.png", brand.ID, time.Now().UnixMilli())
	if err := ms.bucket.UploadFile(ctx, gcp.BucketCategoryBrand, key, bytes.NewReader(data)); err != nil {
		ms.log.Error("Logo upload failed", "brand_id", brand.ID.String(), "error", err)
		return
	}
	brand.LogoURL = ms.bucket.GetPublicURL(gcp.BucketCategoryBrand, key)
	if err := ms.brands.Update(ctx, nil, brand); err != nil {
		ms.log.Error("Logo URL update failed", "brand_id", brand.ID.String(), "error", err)
	}
}

// storeImages uploads every non-null data-URI image and resolves its
// public URL. A failed upload logs and skips that angle.
func (ms *motionService) storeImages(ctx context.Context, userID uuid.UUID, images map[string]*string) map[string]string {
	storedURLs := make(map[string]string)
	for angle, image := range images {
		if image == nil || !strings.HasPrefix(*image, "data:") {
			continue
		}
		data, ok := decodeDataURI(*image)
		if !ok {
			ms.log.Error("Generated image has malformed data URI", "angle", angle)
			continue
		}
		key := fmt.Sprintf("%s/%d_%s.png", userID, time.Now().UnixMilli(), angle)
		if err := ms.bucket.UploadFile(ctx, gcp.BucketCategoryGenerated, key, bytes.NewReader(data)); err != nil {
			ms.log.Error("Image upload failed", "angle", angle, "error", err)
			continue
		}
		storedURLs[angle] = ms.bucket.GetPublicURL(gcp.BucketCategoryGenerated, key)
	}
	return storedURLs
}

func (ms *motionService) writeAsset(
	ctx context.Context,
	brand *types.Brand,
	project *types.Project,
	input GenerateMotionInput,
	analysis types.GarmentAnalysis,
	physics types.PhysicsMetrics,
	storedURLs map[string]string,
) {
	physicsJSON, _ := json.Marshal(physics)
	motionJSON, _ := json.Marshal(input.Motion)
	metadataJSON, _ := json.Marshal(map[string]any{
		"garment_analysis": analysis,
		"athlete":          input.Athlete,
		"images":           storedURLs,
	})

	asset := &types.Asset{
		BrandID:         brand.ID,
		ProjectID:       project.ID,
		Name:            fmt.Sprintf("%s - %s", input.GarmentName, input.Motion.Movement),
		Type:            types.AssetTypeGenerated,
		Status:          types.AssetStatusCompleted,
		Version:         1,
		PhysicsSettings: datatypes.JSON(physicsJSON),
		MotionSettings:  datatypes.JSON(motionJSON),
		Metadata:        datatypes.JSON(metadataJSON),
	}
	if _, err := ms.assets.Create(ctx, nil, asset); err != nil {
		ms.log.Error("Asset write failed", "brand_id", brand.ID.String(), "error", err)
	}
}

// isQuotaSignal reports whether err is an upstream 429 or 402, the two
// statuses that abort a pipeline run instead of degrading locally.
func isQuotaSignal(err error) bool {
	status := httpx.StatusFromError(err)
	return status == http.StatusTooManyRequests || status == http.StatusPaymentRequired
}

// quotaError maps upstream quota signals to their user-facing errors,
// or nil when err is not one.
func quotaError(err error) *apierr.Error {
	switch httpx.StatusFromError(err) {
	case http.StatusTooManyRequests:
		return apierr.New(http.StatusTooManyRequests, rateLimitMessage, err)
	case http.StatusPaymentRequired:
		return apierr.New(http.StatusPaymentRequired, creditsOutMessage, err)
	}
	return nil
}

// decodeDataURI returns the decoded payload of a base64 data URI.
func decodeDataURI(s string) ([]byte, bool) {
	idx := strings.Index(s, ",")
	if idx < 0 {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(s[idx+1:])
	if err != nil {
		return nil, false
	}
	return data, true
}
