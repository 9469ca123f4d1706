package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "DATA_DIR", "AI_PROVIDER", "AI_MODEL",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "AI_REQUEST_TIMEOUT", "FRONTEND_ORIGIN"} {
		// t.Setenv registers the restore; unset so LookupEnv misses entirely.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	LoadConfig()

	assert.Equal(t, "8080", Cfg.Port)
	assert.Equal(t, "info", Cfg.LogLevel)
	assert.Equal(t, "./data", Cfg.DataDir)

	assert.Equal(t, "mock", Cfg.AIProvider)
	assert.Equal(t, "gpt-4.1-mini", Cfg.AIModel)
	assert.Equal(t, "https://api.openai.com/v1", Cfg.OpenAIBaseURL)
	assert.Equal(t, 30*time.Second, Cfg.AIRequestTimeout)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AI_PROVIDER", "OpenAI")
	t.Setenv("AI_MODEL", "gpt-custom")
	t.Setenv("AI_REQUEST_TIMEOUT", "45s")

	LoadConfig()

	assert.Equal(t, "9090", Cfg.Port)
	assert.Equal(t, "openai", Cfg.AIProvider, "provider name is lowercased")
	assert.Equal(t, "gpt-custom", Cfg.AIModel)
	assert.Equal(t, 45*time.Second, Cfg.AIRequestTimeout)
}

func TestLoadConfig_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("AI_REQUEST_TIMEOUT", "not-a-duration")

	LoadConfig()

	assert.Equal(t, 30*time.Second, Cfg.AIRequestTimeout)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &AppConfig{FrontendOrigin: "https://coach.example.com, https://staging.example.com"}

	origins := cfg.AllowedOrigins()

	assert.True(t, origins["http://localhost:5173"], "dev defaults always allowed")
	assert.True(t, origins["https://coach.example.com"])
	assert.True(t, origins["https://staging.example.com"])
	assert.False(t, origins["https://evil.example.com"])
}
