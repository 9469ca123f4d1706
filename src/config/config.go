package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	Port     string
	LogLevel string

	// Data file paths
	DataDir string

	// AI provider settings
	AIProvider       string
	AIModel          string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	AIRequestTimeout time.Duration

	// Frontend URL for CORS
	FrontendOrigin string
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
// It centralizes all configuration logic for the application.
func LoadConfig() {
	// 1. Try loading from the current directory (standard behavior)
	errEnv := godotenv.Load()

	// 2. If not found, try loading from the parent directory (common when running from /backend)
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found in current or parent directory. Relying on OS environment variables (expected in production).")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	Cfg = &AppConfig{
		// Core
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Data
		DataDir: getEnv("DATA_DIR", "./data"),

		// AI provider
		AIProvider:       strings.ToLower(getEnv("AI_PROVIDER", "mock")),
		AIModel:          getEnv("AI_MODEL", "gpt-4.1-mini"),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		AIRequestTimeout: getEnvAsDuration("AI_REQUEST_TIMEOUT", 30*time.Second),

		// CORS
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", ""),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DataDir=%s, AIProvider=%s, AIModel=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DataDir, Cfg.AIProvider, Cfg.AIModel)
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

// AllowedOrigins returns the set of origins the CORS middleware should accept.
// FRONTEND_ORIGIN is added on top of the local development defaults.
func (c *AppConfig) AllowedOrigins() map[string]bool {
	origins := map[string]bool{
		"http://localhost:5173": true,
		"http://127.0.0.1:5173": true,
	}
	if c.FrontendOrigin != "" {
		for _, origin := range strings.Split(c.FrontendOrigin, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				origins[origin] = true
			}
		}
	}
	return origins
}
