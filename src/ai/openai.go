package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/username/financecoach/backend/src/logger"
	"github.com/username/financecoach/backend/src/models"
)

// Fixed generation parameters for the hosted model.
const (
	openAIMaxTokens   = 600
	openAITemperature = 0.4
)

// maxResponseSize bounds the response body read to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// OpenAIProvider talks to the OpenAI Chat Completions API (or any
// OpenAI-compatible endpoint reachable at BaseURL).
type OpenAIProvider struct {
	apiKey       string
	baseURL      string
	defaultModel string
	httpClient   *http.Client
}

// NewOpenAIProvider validates the credential and builds the hosted provider.
// A missing API key is a construction-time ConfigError.
func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, NewConfigError("OPENAI_API_KEY is required when AI_PROVIDER is 'openai'")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIProvider{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		defaultModel: cfg.Model,
		httpClient:   &http.Client{Timeout: timeout},
	}, nil
}

func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// chatCompletionRequest is the OpenAI chat completions request format.
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the subset of the response format we consume.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (p *OpenAIProvider) endpoint() string {
	base := strings.TrimSuffix(p.baseURL, "/")
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	if strings.HasSuffix(base, "/chat/completions") {
		return base
	}
	return base + "/chat/completions"
}

// GenerateChat forwards the system prompt as the leading system message
// followed by the full supplied history. Every transport, auth or HTTP-status
// failure surfaces uniformly as an UnavailableError.
func (p *OpenAIProvider) GenerateChat(ctx context.Context, messages []models.ChatMessage, systemPrompt, model string) (string, error) {
	apiMessages := make([]chatMessage, 0, len(messages)+1)
	apiMessages = append(apiMessages, chatMessage{Role: models.RoleSystem, Content: systemPrompt})
	for _, msg := range messages {
		apiMessages = append(apiMessages, chatMessage{Role: msg.Role, Content: msg.Content})
	}

	selectedModel := model
	if selectedModel == "" {
		selectedModel = p.defaultModel
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model:       selectedModel,
		Messages:    apiMessages,
		MaxTokens:   openAIMaxTokens,
		Temperature: openAITemperature,
	})
	if err != nil {
		return "", NewUnavailableError("AI provider unavailable. Please try again later.", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", NewUnavailableError("AI provider unavailable. Please try again later.", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		logger.L.Error("OpenAI chat completion request failed", "error", err)
		return "", NewUnavailableError("AI provider unavailable. Please try again later.", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", NewUnavailableError("AI provider unavailable. Please try again later.", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.L.Error("OpenAI chat completion returned non-OK status",
			"status", resp.StatusCode, "body", truncateForLog(respBody))
		return "", NewUnavailableError("AI provider unavailable. Please try again later.",
			fmt.Errorf("openai returned status %d", resp.StatusCode))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", NewUnavailableError("AI provider unavailable. Please try again later.",
			fmt.Errorf("failed to parse openai response: %w", err))
	}
	if len(completion.Choices) == 0 {
		return "", NewUnavailableError("AI provider unavailable. Please try again later.",
			fmt.Errorf("no choices in openai response"))
	}

	return completion.Choices[0].Message.Content, nil
}

func truncateForLog(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
