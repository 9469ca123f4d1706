// Package ai abstracts chat-completion backends behind a single Provider
// interface. The active backend is selected by configuration at request time;
// adding a backend means adding a Provider implementation and a ProviderFor
// branch, callers stay untouched.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/username/financecoach/backend/src/config"
	"github.com/username/financecoach/backend/src/models"
)

// Supported provider names.
const (
	ProviderMock   = "mock"
	ProviderOpenAI = "openai"
)

// Provider is a backend capable of producing a chat completion given a
// message history and a system prompt.
type Provider interface {
	// Name returns the provider identifier (e.g. "mock", "openai").
	Name() string

	// GenerateChat returns the assistant reply for the given history. The
	// system prompt becomes the leading system-role message. model overrides
	// the configured default when non-empty.
	GenerateChat(ctx context.Context, messages []models.ChatMessage, systemPrompt, model string) (string, error)
}

// Config is the resolved runtime configuration for the provider layer.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// LoadProviderConfig resolves provider settings from the application config.
// It is cheap and is called once per request; there is nothing to cache.
func LoadProviderConfig() Config {
	return Config{
		Provider: config.Cfg.AIProvider,
		Model:    config.Cfg.AIModel,
		APIKey:   config.Cfg.OpenAIAPIKey,
		BaseURL:  config.Cfg.OpenAIBaseURL,
		Timeout:  config.Cfg.AIRequestTimeout,
	}
}

// ProviderFor resolves a configuration into a concrete Provider. An
// unsupported provider name or a hosted provider without a credential fails
// with a *ConfigError.
func ProviderFor(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderMock:
		return &MockProvider{}, nil
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	}
	return nil, NewConfigError(fmt.Sprintf("unsupported AI_PROVIDER %q; supported providers: %s, %s",
		cfg.Provider, ProviderMock, ProviderOpenAI))
}
