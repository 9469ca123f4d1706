// backend/src/services/chat_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/username/financecoach/backend/src/ai"
	"github.com/username/financecoach/backend/src/logger"
	"github.com/username/financecoach/backend/src/models"
	"github.com/username/financecoach/backend/src/security/validation"
)

// Request validation limits.
const (
	// MaxRequestMessages is the hard cap on messages accepted in one request.
	MaxRequestMessages = 50
	// MaxHistoryMessages is how much conversation history is forwarded to the
	// provider after filtering.
	MaxHistoryMessages = 12
)

// FallbackReply substitutes a blank provider response so the client never
// renders an empty assistant bubble.
const FallbackReply = "I don't have a good answer for that right now. Could you rephrase the question?"

// Chat validation errors, surfaced to the HTTP layer for status mapping.
var (
	ErrTooManyMessages = fmt.Errorf("too many messages in request (max %d)", MaxRequestMessages)
	ErrEmptyHistory    = errors.New("request contains no user or assistant messages")
	ErrPersonaNotFound = errors.New("persona not found")
)

// providerResolver turns a runtime config into a concrete provider. Swappable
// in tests.
type providerResolver func(ai.Config) (ai.Provider, error)

// ChatService validates chat requests, assembles the persona/finance context
// and forwards the conversation to the configured AI provider.
type ChatService struct {
	dataSource FinanceDataSource
	summaries  *SummaryService
	loadConfig func() ai.Config
	resolve    providerResolver
}

// NewChatService creates a ChatService over the given collaborators.
func NewChatService(dataSource FinanceDataSource, summaries *SummaryService) *ChatService {
	return &ChatService{
		dataSource: dataSource,
		summaries:  summaries,
		loadConfig: ai.LoadProviderConfig,
		resolve:    ai.ProviderFor,
	}
}

// HandleChat runs the full chat pipeline: validate, resolve context, build
// the system prompt, call the provider and shape the response. Provider
// errors pass through unchanged so the handler can map them to statuses.
func (s *ChatService) HandleChat(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	if len(req.Messages) > MaxRequestMessages {
		return models.ChatResponse{}, ErrTooManyMessages
	}

	persona, found := s.lookupPersona(req.PersonaID)
	if !found {
		return models.ChatResponse{}, fmt.Errorf("%w: %q", ErrPersonaNotFound, req.PersonaID)
	}

	history := filterHistory(req.Messages)
	if len(history) == 0 {
		return models.ChatResponse{}, ErrEmptyHistory
	}

	// A client-supplied summary is trusted verbatim; only recompute when absent.
	var summary models.FinanceSummary
	if req.Summary != nil {
		summary = *req.Summary
	} else {
		var err error
		summary, err = s.summaries.GetSummary(req.PersonaID)
		if err != nil {
			return models.ChatResponse{}, err
		}
	}

	cfg := s.loadConfig()
	provider, err := s.resolve(cfg)
	if err != nil {
		return models.ChatResponse{}, err
	}

	systemPrompt := buildSystemPrompt(persona, summary)

	start := time.Now()
	reply, err := provider.GenerateChat(ctx, history, systemPrompt, cfg.Model)
	latency := time.Since(start)
	if err != nil {
		return models.ChatResponse{}, err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = FallbackReply
	}

	logger.FromContext(ctx).Info("Chat reply generated",
		"personaID", req.PersonaID, "provider", provider.Name(),
		"model", cfg.Model, "latencyMs", latency.Milliseconds())

	return models.ChatResponse{
		Message: models.ChatMessage{
			ID:      uuid.New().String(),
			Role:    models.RoleAssistant,
			Content: reply,
		},
		Metadata: models.ChatMetadata{
			Provider:  provider.Name(),
			Model:     cfg.Model,
			LatencyMS: latency.Milliseconds(),
		},
	}, nil
}

func (s *ChatService) lookupPersona(personaID string) (models.Persona, bool) {
	for _, persona := range s.dataSource.ListPersonas() {
		if persona.ID == personaID {
			return persona, true
		}
	}
	return models.Persona{}, false
}

// filterHistory keeps only user/assistant messages, truncates to the most
// recent MaxHistoryMessages entries preserving relative order, and sanitizes
// each message's content before it can reach a prompt.
func filterHistory(messages []models.ChatMessage) []models.ChatMessage {
	filtered := make([]models.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.Role != models.RoleUser && msg.Role != models.RoleAssistant {
			continue
		}
		msg.Content = validation.SanitizeChatContent(msg.Content)
		filtered = append(filtered, msg)
	}
	if len(filtered) > MaxHistoryMessages {
		filtered = filtered[len(filtered)-MaxHistoryMessages:]
	}
	return filtered
}

// buildSystemPrompt assembles the persona block, the finance-summary block
// and the behavioral instruction block, in that order. The structure is a
// contract; the wording is not.
func buildSystemPrompt(persona models.Persona, summary models.FinanceSummary) string {
	var b strings.Builder

	b.WriteString("You are the Smart Finance Coach, a personal finance assistant.\n\n")

	b.WriteString("Persona:\n")
	fmt.Fprintf(&b, "- id: %s\n", persona.ID)
	fmt.Fprintf(&b, "- name: %s\n", persona.Name)
	fmt.Fprintf(&b, "- description: %s\n\n", persona.Description)

	b.WriteString("Finance summary:\n")
	b.WriteString("Monthly overview (month, expenses, income, savings):\n")
	for _, m := range summary.MonthlyOverview {
		fmt.Fprintf(&b, "- %s: expenses %.2f, income %.2f, savings %.2f\n", m.Month, m.Total, m.Income, m.Savings)
	}
	b.WriteString("Latest month spending by category:\n")
	for _, c := range summary.Categories {
		essential := "discretionary"
		if c.Essential {
			essential = "essential"
		}
		fmt.Fprintf(&b, "- %s: %.2f (%s)\n", c.Name, c.Latest, essential)
	}
	fmt.Fprintf(&b, "Savings goal: current rate %.4f, target rate %.4f\n\n",
		summary.Goals.CurrentSavingsRate, summary.Goals.TargetSavingsRate)

	b.WriteString("Instructions:\n")
	b.WriteString("- Be concise and practical.\n")
	b.WriteString("- Ground every statement in the finance summary above.\n")
	b.WriteString("- Never fabricate transactions, amounts or trends.\n")
	b.WriteString("- If the context is insufficient to answer, ask a clarifying question instead.\n")

	return b.String()
}
