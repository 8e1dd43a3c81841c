// @title           Closet Backend API
// @version         1.0.0
// @description     Backend for the closet app. Classifies clothing photos with a vision model, searches Rakuten Ichiba and Google Shopping for purchasable matches, and stores each signed-in user's closet and outfits.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a Supabase access token.

package main

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"closet-backend/internal/brands"
	"closet-backend/internal/classifier"
	"closet-backend/internal/closet"
	"closet-backend/internal/config"
	"closet-backend/internal/database"
	"closet-backend/internal/handlers"
	"closet-backend/internal/metrics"
	"closet-backend/internal/rakuten"
	"closet-backend/internal/search"
	"closet-backend/internal/serpapi"
	"closet-backend/internal/services"
	"closet-backend/internal/supabase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	collector := metrics.NewCollector()
	dict := brands.Default()

	vision, closeVision := newClassifier(ctx, cfg)
	defer closeVision()

	rakutenClient := rakuten.NewClient(cfg.RakutenAPIBaseURL, cfg.RakutenAppID, dict)
	serpClient := serpapi.NewClient(cfg.SerpAPIBaseURL, cfg.SerpAPIKey, dict)
	if !rakutenClient.Configured() {
		log.Println("Warning: RAKUTEN_APP_ID not set. Rakuten search and barcode lookup are disabled.")
	}
	if !serpClient.Configured() {
		log.Println("Warning: SERPAPI_KEY not set. Google Shopping search is disabled.")
	}
	aggregator := search.NewAggregator(rakutenClient, []search.TextSource{serpClient, rakutenClient}, collector)

	store, closeStore := newClosetStore(ctx, cfg)
	defer closeStore()

	var imageService *services.ImageService
	if imageStore := newImageStore(ctx, cfg); imageStore != nil {
		imageService = services.NewImageService(imageStore)
	} else {
		log.Println("Warning: IMAGE_STORE not set. Item photo uploads are disabled.")
	}

	if cfg.SupabaseJWTSecret == "" {
		log.Println("Warning: SUPABASE_JWT_SECRET not set. Closet routes will reject every request.")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	handlers.Router{
		Health:    handlers.NewHealthHandler(cfg.Services()),
		Analyze:   handlers.NewAnalyzeHandler(classifier.NewAnalyzer(vision, collector)),
		Search:    handlers.NewSearchHandler(aggregator),
		Closet:    handlers.NewClosetHandler(closet.NewRegistry(store)),
		Images:    handlers.NewImagesHandler(imageService),
		Metrics:   collector.Handler(),
		JWTSecret: cfg.SupabaseJWTSecret,
	}.Register(router)

	log.Printf("Server starting on port %s (classifier=%s, closet store=%s)", cfg.Port, cfg.ClassifierProvider, cfg.ClosetStore)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newClassifier(ctx context.Context, cfg *config.Config) (classifier.Classifier, func()) {
	noop := func() {}

	switch cfg.ClassifierProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Println("Warning: GEMINI_API_KEY not set. Image analysis will fail.")
			return classifier.Unconfigured("GEMINI_API_KEY"), noop
		}
		gemini, err := classifier.NewGeminiClassifier(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini classifier: %v", err)
		}
		return gemini, func() { gemini.Close() }
	default:
		if cfg.OpenAIAPIKey == "" {
			log.Println("Warning: OPENAI_API_KEY not set. Image analysis will fail.")
			return classifier.Unconfigured("OPENAI_API_KEY"), noop
		}
		openai, err := classifier.NewOpenAIClassifier(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			log.Fatalf("Failed to initialize OpenAI classifier: %v", err)
		}
		return openai, noop
	}
}

func newClosetStore(ctx context.Context, cfg *config.Config) (closet.Store, func()) {
	switch cfg.ClosetStore {
	case "memory":
		log.Println("Warning: memory closet store selected. Closets are lost on restart.")
		return closet.NewMemoryStore(), func() {}
	case "postgres":
		store, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to open postgres closet store: %v", err)
		}
		return store, closer(store)
	case "supabase":
		client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey)
		if err != nil {
			log.Fatalf("Failed to initialize Supabase client: %v", err)
		}
		return supabase.NewKVStore(client, cfg.ClosetTable), func() {}
	default:
		store, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open sqlite closet store: %v", err)
		}
		return store, closer(store)
	}
}

func newImageStore(ctx context.Context, cfg *config.Config) services.ImageStore {
	switch cfg.ImageStore {
	case "supabase":
		return supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	case "s3":
		s3, err := services.NewS3Storage(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL, cfg.S3PublicURL)
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Fatalf("Failed to prepare S3 bucket: %v", err)
		}
		return s3
	default:
		return nil
	}
}

func closer(c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Printf("Warning: failed to close closet store: %v", err)
		}
	}
}
