package ai

import (
	"context"

	"github.com/username/financecoach/backend/src/logger"
	"github.com/username/financecoach/backend/src/models"
)

// MockReply is the canned response returned by the mock provider. The reply
// is clearly labeled so smoke checks can assert on the "mock" marker.
const MockReply = "This is a mock Smart Finance Coach reply for demo purposes only. " +
	"The conversation and finance data are fictional."

// MockProvider is a deterministic offline backend for demos and tests.
// It ignores the input content and never fails.
type MockProvider struct{}

func (p *MockProvider) Name() string {
	return ProviderMock
}

func (p *MockProvider) GenerateChat(ctx context.Context, messages []models.ChatMessage, systemPrompt, model string) (string, error) {
	logger.L.Debug("MockProvider invoked", "messageCount", len(messages))
	return MockReply, nil
}
