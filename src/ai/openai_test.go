package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/financecoach/backend/src/models"
)

func newTestOpenAIProvider(t *testing.T, baseURL string) *OpenAIProvider {
	t.Helper()
	provider, err := NewOpenAIProvider(Config{
		Provider: ProviderOpenAI,
		Model:    "gpt-test",
		APIKey:   "test-key",
		BaseURL:  baseURL,
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)
	return provider
}

func completionResponse(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func TestOpenAIProvider_GenerateChat(t *testing.T) {
	var gotRequest chatCompletionRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionResponse("Consider meal planning to cut grocery spend."))
	}))
	defer server.Close()

	provider := newTestOpenAIProvider(t, server.URL)

	history := []models.ChatMessage{
		{ID: "1", Role: models.RoleUser, Content: "Hello"},
		{ID: "2", Role: models.RoleAssistant, Content: "Hi there"},
	}
	reply, err := provider.GenerateChat(context.Background(), history, "system prompt here", "")
	require.NoError(t, err)
	assert.Equal(t, "Consider meal planning to cut grocery spend.", reply)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-test", gotRequest.Model, "empty model falls back to the configured default")
	assert.Equal(t, openAIMaxTokens, gotRequest.MaxTokens)
	assert.Equal(t, openAITemperature, gotRequest.Temperature)

	require.Len(t, gotRequest.Messages, 3)
	assert.Equal(t, models.RoleSystem, gotRequest.Messages[0].Role, "system prompt is always the first message")
	assert.Equal(t, "system prompt here", gotRequest.Messages[0].Content)
	assert.Equal(t, "Hello", gotRequest.Messages[1].Content)
	assert.Equal(t, "Hi there", gotRequest.Messages[2].Content)
}

func TestOpenAIProvider_ModelOverride(t *testing.T) {
	var gotRequest chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotRequest)
		json.NewEncoder(w).Encode(completionResponse("ok"))
	}))
	defer server.Close()

	provider := newTestOpenAIProvider(t, server.URL)

	_, err := provider.GenerateChat(context.Background(), nil, "sp", "gpt-override")
	require.NoError(t, err)
	assert.Equal(t, "gpt-override", gotRequest.Model)
}

func TestOpenAIProvider_RemoteFailuresAreUniform(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
			},
		},
		{
			name: "invalid json body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			provider := newTestOpenAIProvider(t, server.URL)
			_, err := provider.GenerateChat(context.Background(), nil, "sp", "")

			var unavailable *UnavailableError
			require.ErrorAs(t, err, &unavailable)
			assert.Contains(t, err.Error(), "AI provider unavailable")
		})
	}
}

func TestOpenAIProvider_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Immediately close so the call cannot connect.

	provider := newTestOpenAIProvider(t, server.URL)
	_, err := provider.GenerateChat(context.Background(), nil, "sp", "")

	var unavailable *UnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestOpenAIProvider_EndpointNormalization(t *testing.T) {
	provider := newTestOpenAIProvider(t, "https://example.com/v1/")
	assert.Equal(t, "https://example.com/v1/chat/completions", provider.endpoint())

	provider = newTestOpenAIProvider(t, "https://example.com/v1/chat/completions")
	assert.Equal(t, "https://example.com/v1/chat/completions", provider.endpoint())

	provider = newTestOpenAIProvider(t, "")
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", provider.endpoint())
}
