// backend/src/models/finance.go
package models

import "time"

// Persona is a demo user profile exposed to the frontend persona selector.
type Persona struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Transaction types as they appear in the CSV datasets.
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// TransactionRecord is a normalized row from a persona's CSV dataset.
// Records are immutable once loaded and belong to exactly one persona.
type TransactionRecord struct {
	PersonaID   string    `json:"persona_id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"` // "income" or "expense"
	Essential   bool      `json:"essential"`
}

// MonthlyOverview holds aggregated totals for one YYYY-MM month.
// Total is the expense sum, Savings = Income - Total.
type MonthlyOverview struct {
	Month   string  `json:"month"`
	Total   float64 `json:"total"`
	Income  float64 `json:"income"`
	Savings float64 `json:"savings"`
}

// CategorySummary is the spend snapshot for one expense category in the
// latest month. Essential is true if any record in that category and month
// was flagged essential.
type CategorySummary struct {
	Name      string  `json:"name"`
	Latest    float64 `json:"latest"`
	Essential bool    `json:"essential"`
}

// GoalsSummary compares the persona's configured savings target against the
// rate achieved in the latest month. CurrentSavingsRate is unclamped and may
// be negative.
type GoalsSummary struct {
	TargetSavingsRate  float64 `json:"target_savings_rate"`
	CurrentSavingsRate float64 `json:"current_savings_rate"`
}

// FinanceSummary is the full computed snapshot for one persona.
type FinanceSummary struct {
	MonthlyOverview []MonthlyOverview `json:"monthly_overview"`
	Categories      []CategorySummary `json:"categories"`
	Goals           GoalsSummary      `json:"goals"`
}

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage mirrors the frontend chat message shape.
type ChatMessage struct {
	ID      string `json:"id"`
	Role    string `json:"role"` // "user", "assistant" or "system"
	Content string `json:"content"`
}

// ChatRequest is the incoming chat payload. Summary is optional: when the
// client supplies one it is used verbatim, otherwise the server resolves it
// from the summary cache.
type ChatRequest struct {
	PersonaID string          `json:"personaId"`
	Messages  []ChatMessage   `json:"messages"`
	Summary   *FinanceSummary `json:"summary,omitempty"`
}

// ChatMetadata records which backend produced a reply and how long the
// provider call took.
type ChatMetadata struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	LatencyMS int64  `json:"latency_ms"`
}

// ChatResponse is the assistant reply returned to the chat panel.
type ChatResponse struct {
	Message  ChatMessage  `json:"message"`
	Metadata ChatMetadata `json:"metadata"`
}

// HealthStatus is the payload returned by the health endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
