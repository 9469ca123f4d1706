// backend/src/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/financecoach/backend/src/ai"
	"github.com/username/financecoach/backend/src/logger"
	"github.com/username/financecoach/backend/src/models"
	"github.com/username/financecoach/backend/src/services"
	"github.com/username/financecoach/backend/src/utils"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// HandleChat decodes the chat request, runs the orchestration pipeline and
// maps domain errors onto HTTP statuses. Error bodies carry the originating
// message text verbatim for diagnostics.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.chatService.HandleChat(r.Context(), req)
	if err != nil {
		status := statusForChatError(err)
		if status == http.StatusInternalServerError {
			ctxLogger.Error("Chat request failed", "personaID", req.PersonaID, "error", err)
		} else {
			ctxLogger.Warn("Chat request rejected", "personaID", req.PersonaID, "status", status, "error", err)
		}
		utils.SendJSONError(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		ctxLogger.Error("Error encoding chat response", "error", err)
	}
}

// statusForChatError translates the chat error taxonomy into HTTP statuses.
func statusForChatError(err error) int {
	var configErr *ai.ConfigError
	var unavailableErr *ai.UnavailableError
	var dataErr *services.DataSourceError

	switch {
	case errors.Is(err, services.ErrTooManyMessages),
		errors.Is(err, services.ErrEmptyHistory),
		errors.As(err, &configErr):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrPersonaNotFound),
		errors.Is(err, services.ErrUnknownPersona):
		return http.StatusNotFound
	case errors.As(err, &unavailableErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &dataErr):
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
