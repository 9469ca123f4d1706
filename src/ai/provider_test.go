package ai

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/financecoach/backend/src/logger"
	"github.com/username/financecoach/backend/src/models"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func TestMockProvider_AlwaysReplies(t *testing.T) {
	provider := &MockProvider{}

	inputs := [][]models.ChatMessage{
		nil,
		{},
		{{ID: "1", Role: models.RoleUser, Content: "anything"}},
	}
	for _, messages := range inputs {
		reply, err := provider.GenerateChat(context.Background(), messages, "system", "any-model")
		require.NoError(t, err)
		assert.NotEmpty(t, reply)
		assert.Contains(t, strings.ToLower(reply), "mock")
	}
}

func TestProviderFor_Mock(t *testing.T) {
	provider, err := ProviderFor(Config{Provider: ProviderMock})
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, provider.Name())
}

func TestProviderFor_OpenAIWithoutKey(t *testing.T) {
	_, err := ProviderFor(Config{Provider: ProviderOpenAI, Model: "gpt-test"})

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY is required")
}

func TestProviderFor_OpenAIWithKey(t *testing.T) {
	provider, err := ProviderFor(Config{
		Provider: ProviderOpenAI,
		Model:    "gpt-test",
		APIKey:   "test-key",
		Timeout:  time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, provider.Name())
}

func TestProviderFor_UnsupportedName(t *testing.T) {
	_, err := ProviderFor(Config{Provider: "carrier-pigeon"})

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, err.Error(), "carrier-pigeon")
	assert.Contains(t, err.Error(), "supported providers")
}
