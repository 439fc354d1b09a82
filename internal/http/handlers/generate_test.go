package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	internalhttp "github.com/apexwear/motionstudio-backend/internal/http"
	httpH "github.com/apexwear/motionstudio-backend/internal/http/handlers"
	httpMW "github.com/apexwear/motionstudio-backend/internal/http/middleware"
	"github.com/apexwear/motionstudio-backend/internal/platform/apierr"
	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/services"
)

type stubVerifier struct {
	userID uuid.UUID
}

func (s *stubVerifier) UserIDFromToken(tokenString string) (uuid.UUID, error) {
	if tokenString != "good-token" {
		return uuid.Nil, errors.New("invalid token")
	}
	return s.userID, nil
}

type stubMotionService struct {
	calls  int
	lastID uuid.UUID
	result *services.GenerateMotionResult
	err    error
}

func (s *stubMotionService) Generate(ctx context.Context, userID uuid.UUID, input services.GenerateMotionInput) (*services.GenerateMotionResult, error) {
	s.calls++
	s.lastID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func testRouter(t *testing.T, motion *stubMotionService, verifier *stubVerifier) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		Log:             log,
		AuthMiddleware:  httpMW.NewAuthMiddleware(log, verifier),
		GenerateHandler: httpH.NewGenerateHandler(log, motion),
		HealthHandler:   httpH.NewHealthHandler(),
	})
}

const validBody = `{"garmentName":"Aero Tight","gender":"female","size":"M","bodyType":"athletic","movement":"sprint","intensity":80}`

func TestGenerateMotionRequiresAuth(t *testing.T) {
	motion := &stubMotionService{}
	router := testRouter(t, motion, &stubVerifier{userID: uuid.New()})

	for _, header := range []string{"", "Bearer bad-token", "NotBearer good-token"} {
		req := httptest.NewRequest(http.MethodPost, "/api/generate/motion", strings.NewReader(validBody))
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d", header, w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body["error"] != "Unauthorized" {
			t.Fatalf("body = %v", body)
		}
	}
	if motion.calls != 0 {
		t.Fatalf("pipeline ran %d times for unauthenticated requests", motion.calls)
	}
}

func TestGenerateMotionSuccess(t *testing.T) {
	userID := uuid.New()
	front := "data:image/png;base64,QUJD"
	motion := &stubMotionService{result: &services.GenerateMotionResult{
		Success:         true,
		GarmentAnalysis: services.DefaultGarmentAnalysis(),
		Physics:         services.DefaultPhysicsMetrics(),
		Images:          map[string]*string{"front": &front, "side": nil, "back": nil},
		StoredURLs:      map[string]string{"front": "https://cdn.test/generated/x.png"},
		ModelRouter:     services.DefaultModelRouter(),
	}}
	router := testRouter(t, motion, &stubVerifier{userID: userID})

	req := httptest.NewRequest(http.MethodPost, "/api/generate/motion", strings.NewReader(validBody))
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if motion.lastID != userID {
		t.Fatalf("user id = %s", motion.lastID)
	}

	var body struct {
		Success     bool               `json:"success"`
		Images      map[string]*string `json:"images"`
		StoredURLs  map[string]string  `json:"stored_urls"`
		ModelRouter struct {
			Analysis        string `json:"analysis"`
			Physics         string `json:"physics"`
			ImageGeneration string `json:"image_generation"`
		} `json:"model_router"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Success {
		t.Fatal("success = false")
	}
	if body.Images["side"] != nil {
		t.Fatalf("side = %v", body.Images["side"])
	}
	if body.StoredURLs["front"] == "" {
		t.Fatalf("stored_urls = %v", body.StoredURLs)
	}
	if body.ModelRouter.Analysis == "" || body.ModelRouter.ImageGeneration == "" {
		t.Fatalf("model_router = %+v", body.ModelRouter)
	}
}

func TestGenerateMotionQuotaStatusMapping(t *testing.T) {
	cases := []struct {
		status  int
		message string
	}{
		{http.StatusTooManyRequests, "Rate limit reached. Please wait a moment and try again."},
		{http.StatusPaymentRequired, "AI credits exhausted. Please add credits in Settings → Workspace → Usage."},
	}
	for _, tc := range cases {
		motion := &stubMotionService{err: apierr.New(tc.status, tc.message, errors.New("upstream"))}
		router := testRouter(t, motion, &stubVerifier{userID: uuid.New()})

		req := httptest.NewRequest(http.MethodPost, "/api/generate/motion", strings.NewReader(validBody))
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != tc.status {
			t.Fatalf("status = %d, want %d", w.Code, tc.status)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body["error"] != tc.message {
			t.Fatalf("error = %v", body["error"])
		}
	}
}

func TestGenerateMotionUnexpectedErrorIs500(t *testing.T) {
	motion := &stubMotionService{err: errors.New("db down")}
	router := testRouter(t, motion, &stubVerifier{userID: uuid.New()})

	req := httptest.NewRequest(http.MethodPost, "/api/generate/motion", strings.NewReader(validBody))
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGenerateMotionRejectsBadBody(t *testing.T) {
	motion := &stubMotionService{}
	router := testRouter(t, motion, &stubVerifier{userID: uuid.New()})

	for _, body := range []string{"not json", `{"gender":"female"}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/generate/motion", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d", body, w.Code)
		}
	}
	if motion.calls != 0 {
		t.Fatalf("pipeline ran %d times for bad bodies", motion.calls)
	}
}

func TestHealthcheckIsPublic(t *testing.T) {
	router := testRouter(t, &stubMotionService{}, &stubVerifier{userID: uuid.New()})

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Fatalf("body = %q", w.Body.String())
	}
}
