package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendFile     = "file"
)

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string
	Seed     bool

	// Storage
	StorageBackend string
	DatabaseURL    string
	DBMaxConns     int
	DataDir        string

	// Generation
	MaxGenerateDays           int
	TimeSeriesIntervalMinutes int
	SleepCycleMinutes         int
	AwakeProbability          float64

	// Largest accepted Apple Health upload, in megabytes
	MaxImportMB int

	// OpenAI configuration
	OpenAIAPIKey               string
	OpenAIRecommendationsModel string

	// Langfuse configuration
	LangfuseBaseURL         string
	LangfusePublicKey       string
	LangfuseSecretKey       string
	LangfuseEnv             string
	LangfusePromptName      string
	LangfusePromptLabel     string
	LangfusePromptCachePath string

	// Tracing
	OTLPEndpoint      string
	OTLPAuthorization string
	ServiceName       string
}

func Load() *Config {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8001"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Seed:     getEnvBool("SEED", false),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBMaxConns:     getEnvInt("DB_MAX_CONNS", 10),
		DataDir:        getEnv("DATA_DIR", "data/sleep"),

		MaxGenerateDays:           getEnvInt("MAX_GENERATE_DAYS", 366),
		TimeSeriesIntervalMinutes: getEnvInt("TIME_SERIES_INTERVAL_MINUTES", 10),
		SleepCycleMinutes:         getEnvInt("SLEEP_CYCLE_MINUTES", 90),
		AwakeProbability:          getEnvFloat("AWAKE_PROBABILITY", 0.03),

		MaxImportMB: getEnvInt("MAX_IMPORT_MB", 256),

		OpenAIAPIKey:               getEnv("OPENAI_API_KEY", ""),
		OpenAIRecommendationsModel: getEnv("OPENAI_RECOMMENDATIONS_MODEL", "gpt-4o-mini"),

		LangfuseBaseURL:         getEnv("LANGFUSE_BASE_URL", ""),
		LangfusePublicKey:       getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:       getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseEnv:             getEnv("LANGFUSE_ENV", "development"),
		LangfusePromptName:      getEnv("LANGFUSE_RECOMMENDATIONS_PROMPT", ""),
		LangfusePromptLabel:     getEnv("LANGFUSE_PROMPT_LABEL", "production"),
		LangfusePromptCachePath: getEnv("LANGFUSE_PROMPT_CACHE_PATH", ""),

		OTLPEndpoint:      getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPAuthorization: getEnv("OTEL_EXPORTER_OTLP_AUTHORIZATION", ""),
		ServiceName:       getEnv("OTEL_SERVICE_NAME", "sleep-data-service"),
	}
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.StorageBackend {
	case BackendFile:
		if c.DataDir == "" {
			errs = append(errs, errors.New("DATA_DIR is required for the file backend"))
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
		if c.DBMaxConns <= 0 {
			errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}

	if c.MaxGenerateDays <= 0 {
		errs = append(errs, fmt.Errorf("MAX_GENERATE_DAYS must be positive, got %d", c.MaxGenerateDays))
	}
	if c.TimeSeriesIntervalMinutes <= 0 {
		errs = append(errs, fmt.Errorf("TIME_SERIES_INTERVAL_MINUTES must be positive, got %d", c.TimeSeriesIntervalMinutes))
	}
	if c.SleepCycleMinutes <= 0 {
		errs = append(errs, fmt.Errorf("SLEEP_CYCLE_MINUTES must be positive, got %d", c.SleepCycleMinutes))
	}
	if c.MaxImportMB <= 0 {
		errs = append(errs, fmt.Errorf("MAX_IMPORT_MB must be positive, got %d", c.MaxImportMB))
	}
	if c.AwakeProbability < 0 || c.AwakeProbability > 1 {
		errs = append(errs, fmt.Errorf("AWAKE_PROBABILITY must be within [0,1], got %v", c.AwakeProbability))
	}

	return errors.Join(errs...)
}

// MaxImportBytes is MaxImportMB expressed in bytes.
func (c *Config) MaxImportBytes() int64 {
	return int64(c.MaxImportMB) << 20
}

// IsProduction reports whether APP_ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}
