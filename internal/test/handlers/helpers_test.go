package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"closet-backend/internal/classifier"
	"closet-backend/internal/closet"
	"closet-backend/internal/handlers"
	"closet-backend/internal/metrics"
	"closet-backend/internal/models"
	"closet-backend/internal/search"
	"closet-backend/internal/services"
)

const testSecret = "test-secret-key-for-jwt-signing-must-be-long-enough"

type stubClassifier struct {
	text string
	err  error
	got  string
}

func (s *stubClassifier) Classify(ctx context.Context, base64Image string) (string, error) {
	s.got = base64Image
	return s.text, s.err
}

type stubSource struct {
	name     string
	products []models.ProductResult
	err      error
	queries  []string
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Search(ctx context.Context, query string) ([]models.ProductResult, error) {
	s.queries = append(s.queries, query)
	return s.products, s.err
}

type stubBarcode struct {
	product *models.ProductResult
}

func (s *stubBarcode) Name() string { return "rakuten" }

func (s *stubBarcode) LookupBarcode(ctx context.Context, barcode string) (*models.ProductResult, error) {
	return s.product, nil
}

type memoryImages struct{}

func (memoryImages) Put(ctx context.Context, path, contentType string, data []byte) (string, error) {
	return "https://images.example.com/" + path, nil
}

type testDeps struct {
	classifier classifier.Classifier
	barcode    search.BarcodeSource
	text       []search.TextSource
	store      closet.Store
	images     *services.ImageService
	services   map[string]bool
}

func newTestRouter(t *testing.T, deps testDeps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if deps.classifier == nil {
		deps.classifier = &stubClassifier{text: "{}"}
	}
	if deps.store == nil {
		deps.store = closet.NewMemoryStore()
	}
	if deps.services == nil {
		deps.services = map[string]bool{"openai": true, "gemini": false, "serpapi": false, "rakuten": true}
	}
	collector := metrics.NewCollector()

	router := gin.New()
	handlers.Router{
		Health:    handlers.NewHealthHandler(deps.services),
		Analyze:   handlers.NewAnalyzeHandler(classifier.NewAnalyzer(deps.classifier, collector)),
		Search:    handlers.NewSearchHandler(search.NewAggregator(deps.barcode, deps.text, collector)),
		Closet:    handlers.NewClosetHandler(closet.NewRegistry(deps.store)),
		Images:    handlers.NewImagesHandler(deps.images),
		Metrics:   collector.Handler(),
		JWTSecret: testSecret,
	}.Register(router)
	return router
}

func bearer(t *testing.T, owner string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": owner}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return "Bearer " + token
}

func do(router *gin.Engine, method, path, body, authorization string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func ptr[T any](v T) *T { return &v }
