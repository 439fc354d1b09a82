package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/apexwear/motionstudio-backend/internal/clients/gateway"
	"github.com/apexwear/motionstudio-backend/internal/platform/apierr"
	"github.com/apexwear/motionstudio-backend/internal/platform/gcp"
	"github.com/apexwear/motionstudio-backend/internal/repos"
	"github.com/apexwear/motionstudio-backend/internal/types"
)

type stubBucket struct {
	mu       sync.Mutex
	uploads  map[string][]byte
	failKeys []string
}

func newStubBucket() *stubBucket {
	return &stubBucket{uploads: map[string][]byte{}}
}

func (s *stubBucket) UploadFile(ctx context.Context, category gcp.BucketCategory, key string, file io.Reader) error {
	for _, frag := range s.failKeys {
		if strings.Contains(key, frag) {
			return errors.New("upload refused")
		}
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[string(category)+"/"+key] = data
	return nil
}

func (s *stubBucket) DeleteFile(ctx context.Context, category gcp.BucketCategory, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.uploads, string(category)+"/"+key)
	return nil
}

func (s *stubBucket) DownloadFile(ctx context.Context, category gcp.BucketCategory, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.uploads[string(category)+"/"+key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (s *stubBucket) ListKeys(ctx context.Context, category gcp.BucketCategory, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for k := range s.uploads {
		if strings.HasPrefix(k, string(category)+"/"+prefix) {
			keys = append(keys, strings.TrimPrefix(k, string(category)+"/"))
		}
	}
	return keys, nil
}

func (s *stubBucket) GetPublicURL(category gcp.BucketCategory, key string) string {
	return fmt.Sprintf("https://cdn.test/%s/%s", category, key)
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.Brand{},
		&types.Project{},
		&types.Asset{},
		&types.UsageLog{},
		&types.Subscription{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func happyGateway() *stubGateway {
	return &stubGateway{
		textFn: func(model string, messages []gateway.Message) (string, error) {
			if strings.Contains(fmt.Sprint(messages[0].Content), "physics engine") {
				return `{"stretch_factor":"3×","compression_percentage":70}`, nil
			}
			return `{"fabric_type":"nylon mesh","stretch_rating":9}`, nil
		},
		imageFn: func(model, prompt string) (string, error) {
			return "data:image/png;base64," + "QUJDREVG", nil
		},
	}
}

func newTestMotionService(t *testing.T, db *gorm.DB, gw *stubGateway, bucket *stubBucket) MotionService {
	t.Helper()
	log := testLogger(t)
	router := DefaultModelRouter()
	return NewMotionService(
		log,
		NewGarmentAnalyzer(log, gw, router.Analysis),
		NewPhysicsEstimator(log, gw, router.Physics),
		NewImageSynthesizer(log, gw, router.ImageGeneration),
		router,
		bucket,
		repos.NewBrandRepo(db, log),
		repos.NewProjectRepo(db, log),
		repos.NewAssetRepo(db, log),
		repos.NewUsageLogRepo(db, log),
		repos.NewSubscriptionRepo(db, log),
	)
}

func testInput() GenerateMotionInput {
	return GenerateMotionInput{
		GarmentName: "Aero Tight",
		Athlete:     testAthlete(),
		Motion:      testMotion(),
	}
}

func TestGenerateFirstRequestCreatesWorkspace(t *testing.T) {
	db := testDB(t)
	bucket := newStubBucket()
	svc := newTestMotionService(t, db, happyGateway(), bucket)
	userID := uuid.New()

	result, err := svc.Generate(context.Background(), userID, testInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !result.Success {
		t.Fatal("expected success")
	}
	if result.GarmentAnalysis.FabricType != "nylon mesh" {
		t.Fatalf("FabricType = %q", result.GarmentAnalysis.FabricType)
	}
	if result.Physics.StretchFactor != "3×" || result.Physics.SweatAbsorption != 92 {
		t.Fatalf("Physics = %+v", result.Physics)
	}
	if result.ModelRouter != DefaultModelRouter() {
		t.Fatalf("ModelRouter = %+v", result.ModelRouter)
	}
	if len(result.StoredURLs) != 3 {
		t.Fatalf("StoredURLs = %v", result.StoredURLs)
	}

	var brands []types.Brand
	if err := db.Find(&brands).Error; err != nil {
		t.Fatal(err)
	}
	if len(brands) != 1 || brands[0].OwnerID != userID || brands[0].Name != "My Brand" {
		t.Fatalf("brands = %+v", brands)
	}

	var projects []types.Project
	if err := db.Find(&projects).Error; err != nil {
		t.Fatal(err)
	}
	if len(projects) != 1 || projects[0].BrandID != brands[0].ID || projects[0].Name != "Default Project" {
		t.Fatalf("projects = %+v", projects)
	}

	var logs []types.UsageLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].Action != types.ActionGenerateMotion || logs[0].CreditsUsed != 1 {
		t.Fatalf("usage logs = %+v", logs)
	}
	if logs[0].UserID != userID || logs[0].BrandID != brands[0].ID {
		t.Fatalf("usage log ownership = %+v", logs[0])
	}

	var assets []types.Asset
	if err := db.Find(&assets).Error; err != nil {
		t.Fatal(err)
	}
	if len(assets) != 1 {
		t.Fatalf("assets = %+v", assets)
	}
	asset := assets[0]
	if asset.Name != "Aero Tight - sprint" || asset.Type != types.AssetTypeGenerated || asset.Status != types.AssetStatusCompleted {
		t.Fatalf("asset = %+v", asset)
	}

	var physics types.PhysicsMetrics
	if err := json.Unmarshal(asset.PhysicsSettings, &physics); err != nil {
		t.Fatalf("physics settings: %v", err)
	}
	if physics.StretchFactor != "3×" || physics.CompressionPercentage != 70 {
		t.Fatalf("physics = %+v", physics)
	}

	var motion types.MotionParams
	if err := json.Unmarshal(asset.MotionSettings, &motion); err != nil {
		t.Fatalf("motion settings: %v", err)
	}
	if motion.Movement != "sprint" || motion.Intensity != 80 {
		t.Fatalf("motion = %+v", motion)
	}

	var metadata struct {
		GarmentAnalysis types.GarmentAnalysis `json:"garment_analysis"`
		Athlete         types.AthleteParams   `json:"athlete"`
		Images          map[string]string     `json:"images"`
	}
	if err := json.Unmarshal(asset.Metadata, &metadata); err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if metadata.Athlete != testAthlete() {
		t.Fatalf("athlete = %+v", metadata.Athlete)
	}
	for angle, url := range metadata.Images {
		if result.StoredURLs[angle] != url {
			t.Fatalf("metadata image %s = %q, stored %q", angle, url, result.StoredURLs[angle])
		}
	}

	keys, err := bucket.ListKeys(context.Background(), gcp.BucketCategoryGenerated, userID.String()+"/")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 3 {
		t.Fatalf("stored keys = %v", keys)
	}
	for _, key := range keys {
		if !strings.HasSuffix(key, ".png") {
			t.Fatalf("key %q not a png", key)
		}
	}
}

func TestGenerateSecondRequestReusesWorkspace(t *testing.T) {
	db := testDB(t)
	svc := newTestMotionService(t, db, happyGateway(), newStubBucket())
	userID := uuid.New()

	for i := 0; i < 2; i++ {
		if _, err := svc.Generate(context.Background(), userID, testInput()); err != nil {
			t.Fatalf("Generate #%d: %v", i+1, err)
		}
	}

	var brandCount, projectCount, logCount, assetCount int64
	db.Model(&types.Brand{}).Count(&brandCount)
	db.Model(&types.Project{}).Count(&projectCount)
	db.Model(&types.UsageLog{}).Count(&logCount)
	db.Model(&types.Asset{}).Count(&assetCount)
	if brandCount != 1 || projectCount != 1 {
		t.Fatalf("brands = %d, projects = %d", brandCount, projectCount)
	}
	if logCount != 2 || assetCount != 2 {
		t.Fatalf("logs = %d, assets = %d", logCount, assetCount)
	}
}

func TestGenerateIncrementsSubscriptionCredits(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	userID := uuid.New()

	brandRepo := repos.NewBrandRepo(db, log)
	brand, err := brandRepo.EnsureForOwner(context.Background(), nil, userID, "My Brand")
	if err != nil {
		t.Fatal(err)
	}
	sub := types.Subscription{
		ID:           uuid.New(),
		BrandID:      brand.ID,
		Plan:         "free",
		Status:       "active",
		CreditsTotal: 100,
		CreditsUsed:  4,
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatal(err)
	}

	svc := newTestMotionService(t, db, happyGateway(), newStubBucket())
	if _, err := svc.Generate(context.Background(), userID, testInput()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var got types.Subscription
	if err := db.First(&got, "brand_id = ?", brand.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.CreditsUsed != 5 {
		t.Fatalf("CreditsUsed = %d", got.CreditsUsed)
	}
}

func TestGenerateQuotaSignalAbortsBeforePersistence(t *testing.T) {
	db := testDB(t)
	gw := &stubGateway{textFn: func(model string, messages []gateway.Message) (string, error) {
		return "", &gateway.HTTPError{StatusCode: http.StatusTooManyRequests}
	}}
	svc := newTestMotionService(t, db, gw, newStubBucket())

	_, err := svc.Generate(context.Background(), uuid.New(), testInput())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T", err)
	}
	if apiErr.Status != http.StatusTooManyRequests {
		t.Fatalf("status = %d", apiErr.Status)
	}
	if apiErr.Code != "Rate limit reached. Please wait a moment and try again." {
		t.Fatalf("message = %q", apiErr.Code)
	}

	var brandCount, logCount int64
	db.Model(&types.Brand{}).Count(&brandCount)
	db.Model(&types.UsageLog{}).Count(&logCount)
	if brandCount != 0 || logCount != 0 {
		t.Fatalf("brands = %d, logs = %d", brandCount, logCount)
	}
}

func TestGenerateCreditsExhaustedMessage(t *testing.T) {
	db := testDB(t)
	gw := happyGateway()
	gw.imageFn = func(model, prompt string) (string, error) {
		return "", &gateway.HTTPError{StatusCode: http.StatusPaymentRequired}
	}
	svc := newTestMotionService(t, db, gw, newStubBucket())

	_, err := svc.Generate(context.Background(), uuid.New(), testInput())
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v", err)
	}
	if apiErr.Status != http.StatusPaymentRequired {
		t.Fatalf("status = %d", apiErr.Status)
	}
	if apiErr.Code != "AI credits exhausted. Please add credits in Settings → Workspace → Usage." {
		t.Fatalf("message = %q", apiErr.Code)
	}
}

func TestGenerateStageFailuresDegradeToDefaults(t *testing.T) {
	db := testDB(t)
	gw := &stubGateway{
		textFn: func(model string, messages []gateway.Message) (string, error) {
			return "", errors.New("gateway unreachable")
		},
		imageFn: func(model, prompt string) (string, error) {
			return "", errors.New("gateway unreachable")
		},
	}
	svc := newTestMotionService(t, db, gw, newStubBucket())
	userID := uuid.New()

	result, err := svc.Generate(context.Background(), userID, testInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	wantAnalysis := DefaultGarmentAnalysis()
	if result.GarmentAnalysis.FabricType != wantAnalysis.FabricType ||
		result.GarmentAnalysis.StretchRating != wantAnalysis.StretchRating {
		t.Fatalf("analysis = %+v", result.GarmentAnalysis)
	}
	if result.Physics.StretchFactor != "4×" {
		t.Fatalf("physics = %+v", result.Physics)
	}
	for _, angle := range ViewAngles {
		if result.Images[angle] != nil {
			t.Fatalf("%s image should be null", angle)
		}
	}
	if len(result.StoredURLs) != 0 {
		t.Fatalf("StoredURLs = %v", result.StoredURLs)
	}

	var assetCount int64
	db.Model(&types.Asset{}).Count(&assetCount)
	if assetCount != 1 {
		t.Fatalf("assets = %d", assetCount)
	}
}

func TestGenerateUploadFailureSkipsAngle(t *testing.T) {
	db := testDB(t)
	bucket := newStubBucket()
	bucket.failKeys = []string{"_side.png"}
	svc := newTestMotionService(t, db, happyGateway(), bucket)

	result, err := svc.Generate(context.Background(), uuid.New(), testInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, ok := result.StoredURLs["side"]; ok {
		t.Fatal("side should be skipped")
	}
	if len(result.StoredURLs) != 2 {
		t.Fatalf("StoredURLs = %v", result.StoredURLs)
	}
	if result.Images["side"] == nil {
		t.Fatal("raw side image should still be present")
	}
}

func TestGenerateNonDataURIImageIsNotUploaded(t *testing.T) {
	db := testDB(t)
	gw := happyGateway()
	gw.imageFn = func(model, prompt string) (string, error) {
		return "https://images.example.com/render.png", nil
	}
	bucket := newStubBucket()
	svc := newTestMotionService(t, db, gw, bucket)

	result, err := svc.Generate(context.Background(), uuid.New(), testInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.StoredURLs) != 0 {
		t.Fatalf("StoredURLs = %v", result.StoredURLs)
	}
	for _, angle := range ViewAngles {
		if result.Images[angle] == nil || *result.Images[angle] != "https://images.example.com/render.png" {
			t.Fatalf("raw image lost for %s", angle)
		}
	}
}

func TestGenerateAttachesLogoOnce(t *testing.T) {
	db := testDB(t)
	bucket := newStubBucket()
	svc := newTestMotionService(t, db, happyGateway(), bucket)
	userID := uuid.New()

	input := testInput()
	input.Logo = "data:image/png;base64,QUJD"
	if _, err := svc.Generate(context.Background(), userID, input); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var brand types.Brand
	if err := db.First(&brand, "owner_id = ?", userID).Error; err != nil {
		t.Fatal(err)
	}
	if brand.LogoURL == "" {
		t.Fatal("logo url not set")
	}
	keys, _ := bucket.ListKeys(context.Background(), gcp.BucketCategoryBrand, brand.ID.String()+"/")
	if len(keys) != 1 {
		t.Fatalf("brand keys = %v", keys)
	}

	// Second run must not replace the existing logo.
	if _, err := svc.Generate(context.Background(), userID, input); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	keys, _ = bucket.ListKeys(context.Background(), gcp.BucketCategoryBrand, brand.ID.String()+"/")
	if len(keys) != 1 {
		t.Fatalf("brand keys after second run = %v", keys)
	}
}
