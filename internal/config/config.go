package config

import (
	"fmt"
	"os"
)

type Config struct {
	// Classifier
	ClassifierProvider string
	OpenAIAPIKey       string
	OpenAIModel        string
	GeminiAPIKey       string
	GeminiModel        string

	// Product search
	SerpAPIKey        string
	SerpAPIBaseURL    string
	RakutenAppID      string
	RakutenAPIBaseURL string

	// Closet
	ClosetStore string
	SQLitePath  string
	DatabaseURL string
	ClosetTable string // PostgREST table, supabase store only

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Item images
	ImageStore  string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string
	S3UseSSL    bool
	S3PublicURL string

	// Server
	Port        string
	Environment string
}

func Load() (*Config, error) {
	cfg := &Config{
		ClassifierProvider: getEnv("CLASSIFIER_PROVIDER", "openai"),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o"),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		SerpAPIKey:        getEnv("SERPAPI_KEY", ""),
		SerpAPIBaseURL:    getEnv("SERPAPI_BASE_URL", "https://serpapi.com/search"),
		RakutenAppID:      getEnv("RAKUTEN_APP_ID", ""),
		RakutenAPIBaseURL: getEnv("RAKUTEN_API_BASE_URL", "https://app.rakuten.co.jp/services/api/IchibaItem/Search/20220601"),

		ClosetStore: getEnv("CLOSET_STORE", "sqlite"),
		SQLitePath:  getEnv("SQLITE_PATH", "closet.db"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		ClosetTable: getEnv("CLOSET_TABLE", "closet_kv"),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "closet-images"),

		ImageStore:  getEnv("IMAGE_STORE", ""),
		S3Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Bucket:    getEnv("S3_BUCKET", "closet-images"),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3UseSSL:    getEnv("S3_USE_SSL", "false") == "true",
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),

		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate only checks settings a selected backend cannot start without.
// Vendor credentials stay optional: a missing key disables that source.
func (c *Config) Validate() error {
	switch c.ClassifierProvider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("CLASSIFIER_PROVIDER must be openai or gemini, got %q", c.ClassifierProvider)
	}

	switch c.ClosetStore {
	case "memory":
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite closet store")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres closet store")
		}
	case "supabase":
		if c.SupabaseURL == "" || c.SupabasePublishableKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_PUBLISHABLE_KEY are required for the supabase closet store")
		}
	default:
		return fmt.Errorf("CLOSET_STORE must be memory, sqlite, postgres or supabase, got %q", c.ClosetStore)
	}

	switch c.ImageStore {
	case "":
	case "supabase":
		if c.SupabaseURL == "" || c.SupabasePublishableKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_PUBLISHABLE_KEY are required for the supabase image store")
		}
	case "s3":
		if c.S3AccessKey == "" || c.S3SecretKey == "" {
			return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required for the s3 image store")
		}
	default:
		return fmt.Errorf("IMAGE_STORE must be empty, supabase or s3, got %q", c.ImageStore)
	}

	return nil
}

// Services reports which third-party credentials are present.
func (c *Config) Services() map[string]bool {
	return map[string]bool{
		"openai":  c.OpenAIAPIKey != "",
		"gemini":  c.GeminiAPIKey != "",
		"serpapi": c.SerpAPIKey != "",
		"rakuten": c.RakutenAppID != "",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
